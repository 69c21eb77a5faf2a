package models

import "time"

// AnalysisRun is a persisted analysis. Result is omitted from listings.
type AnalysisRun struct {
	ID              string          `json:"id"`
	Scenario        string          `json:"scenario"`
	Outcome         string          `json:"outcome"`
	RouteCount      int             `json:"route_count"`
	ChokepointCount int             `json:"chokepoint_count"`
	POICount        int             `json:"poi_count"`
	TeamCount       int             `json:"team_count"`
	Result          *AnalysisResult `json:"result,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// NewAnalysisRun summarises result under the given run id.
func NewAnalysisRun(id string, result *AnalysisResult) *AnalysisRun {
	run := &AnalysisRun{
		ID:              id,
		Outcome:         result.Outcome,
		RouteCount:      len(result.Routes),
		ChokepointCount: len(result.Chokepoints),
		POICount:        len(result.POIs),
		TeamCount:       len(result.Teams),
		Result:          result,
	}
	if result.Scenario != nil {
		run.Scenario = result.Scenario.Name
	}
	return run
}
