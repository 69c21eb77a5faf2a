package models

import "github.com/jengzang/chokepoint-planner/internal/spatial"

// LatLon is a WGS84 (latitude, longitude) pair. It serializes as a two-element array.
type LatLon [2]float64

// NewLatLon builds a LatLon from latitude and longitude in degrees.
func NewLatLon(lat, lon float64) LatLon {
	return LatLon{lat, lon}
}

// Lat returns the latitude in degrees.
func (ll LatLon) Lat() float64 { return ll[0] }

// Lon returns the longitude in degrees.
func (ll LatLon) Lon() float64 { return ll[1] }

// Point converts to the spatial package representation.
func (ll LatLon) Point() spatial.Point {
	return spatial.Point{Lat: ll[0], Lon: ll[1]}
}

// Waypoint is a caller-supplied fixed coordinate (start, via or end).
type Waypoint = LatLon

// Points converts a coordinate sequence.
func Points(path []LatLon) []spatial.Point {
	pts := make([]spatial.Point, len(path))
	for i, ll := range path {
		pts[i] = ll.Point()
	}
	return pts
}
