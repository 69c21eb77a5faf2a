package models

// ChokepointTypeIntersection is the only chokepoint type the scorer produces.
const ChokepointTypeIntersection = "intersection"

// Chokepoint is a node shared by two or more routes, or a merged cluster of such nodes.
type Chokepoint struct {
	ID                 string   `json:"id"`
	Location           LatLon   `json:"location"`
	Type               string   `json:"type"`
	RoutesAffected     []string `json:"routes_affected"`
	VulnerabilityScore float64  `json:"vulnerability_score"`
	Factors            []string `json:"factors"`
	Description        string   `json:"description"`
}

// Chokepoint factor tags
const (
	FactorCommonToAllRoutes = "common_to_all_routes"
	FactorSharedByMultiple  = "shared_by_multiple_routes"
	FactorMajorIntersection = "major_intersection"
	FactorNearTunnel        = "near_tunnel_or_underpass"
	FactorBridge            = "bridge_or_viaduct"
	FactorDenseUrban        = "dense_or_complex_urban_area"
)
