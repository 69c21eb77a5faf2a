package models

// POICategory classifies a point of interest.
type POICategory string

// POICategory constants
const (
	POIAmbush       POICategory = "ambush_location"
	POISurveillance POICategory = "surveillance_point"
	POIObservation  POICategory = "enemy_observation_point"
	POIFiring       POICategory = "enemy_firing_point"
)

// POICategories lists the categories in processing order.
var POICategories = []POICategory{POIAmbush, POISurveillance, POIObservation, POIFiring}

// PointOfInterest is a threat or surveillance location derived from routes and chokepoints.
type PointOfInterest struct {
	ID                string      `json:"id"`
	Type              POICategory `json:"type"`
	Location          LatLon      `json:"location"`
	RelatedRoute      *string     `json:"related_route"`
	RelatedChokepoint *string     `json:"related_chokepoint"`
	Description       string      `json:"description"`
	PriorityScore     float64     `json:"priority_score"`
}
