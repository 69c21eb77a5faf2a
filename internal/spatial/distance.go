package spatial

import (
	"github.com/golang/geo/s2"
)

// Constants
const (
	EarthRadiusMeters = 6371000.0 // Earth's mean radius in meters
	EarthRadiusKm     = 6371.0    // Earth's mean radius in kilometers
)

// HaversineDistance calculates the great-circle distance between two points in meters
// using the Haversine formula
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * EarthRadiusMeters
}

// Distance is HaversineDistance for two Points.
func Distance(a, b Point) float64 {
	return HaversineDistance(a.Lat, a.Lon, b.Lat, b.Lon)
}

// MinDistanceToPath returns the distance in meters from p to the closest vertex of path.
// ok is false for an empty path.
func MinDistanceToPath(p Point, path []Point) (float64, bool) {
	if len(path) == 0 {
		return 0, false
	}

	minDist := Distance(p, path[0])
	for _, q := range path[1:] {
		if d := Distance(p, q); d < minDist {
			minDist = d
		}
	}
	return minDist, true
}
