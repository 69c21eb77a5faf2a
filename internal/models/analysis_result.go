package models

// AnalysisResult is the assembled output of a full analysis.
type AnalysisResult struct {
	Routes      RouteSet                          `json:"routes"`
	Chokepoints map[string]*Chokepoint            `json:"chokepoints"`
	POIs        map[string]*PointOfInterest       `json:"pois"`
	Teams       map[string]*SecurityTeamPlacement `json:"teams"`
	Summary     *AnalysisSummary                  `json:"summary,omitempty"`

	Scenario *ScenarioInfo `json:"scenario,omitempty"`
	Outcome  string        `json:"outcome,omitempty"`
	RunID    string        `json:"run_id,omitempty"`
}

// ScenarioInfo echoes the waypoints an analysis ran with.
type ScenarioInfo struct {
	Name  string   `json:"name"`
	Start Waypoint `json:"start"`
	Via   Waypoint `json:"via"`
	End   Waypoint `json:"end"`
}

// AnalysisSummary aggregates headline figures of a result.
type AnalysisSummary struct {
	MeanRouteLengthM     float64             `json:"mean_route_length_m"`
	ShortestRouteLengthM float64             `json:"shortest_route_length_m"`
	LongestRouteLengthM  float64             `json:"longest_route_length_m"`
	MeanVulnerability    float64             `json:"mean_vulnerability"`
	MaxVulnerability     float64             `json:"max_vulnerability"`
	HighRiskChokepoints  int                 `json:"high_risk_chokepoints"`
	POIsByCategory       map[POICategory]int `json:"pois_by_category"`
	AssignedTeams        int                 `json:"assigned_teams"`
}
