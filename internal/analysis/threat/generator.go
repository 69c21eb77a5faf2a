// Package threat derives points of interest from routes and chokepoints.
package threat

import (
	"sort"

	"go.uber.org/zap"

	"github.com/jengzang/chokepoint-planner/internal/config"
	"github.com/jengzang/chokepoint-planner/internal/logging"
	"github.com/jengzang/chokepoint-planner/internal/models"
)

// Generator produces ambush, surveillance, observation and firing points.
type Generator struct {
	threat     config.ThreatTuning
	speeds     config.SpeedTuning
	clustering config.ClusterTuning

	ambushClasses       map[string]bool
	surveillanceClasses map[string]bool

	logger *zap.Logger
}

// NewGenerator creates a generator from the threat, speed and clustering
// sections of tuning.
func NewGenerator(tuning *config.Tuning, logger *zap.Logger) *Generator {
	if tuning == nil {
		tuning = config.DefaultTuning()
	}
	return &Generator{
		threat:              tuning.Threat,
		speeds:              tuning.Speeds,
		clustering:          tuning.Clustering,
		ambushClasses:       set(tuning.Threat.AmbushClasses),
		surveillanceClasses: set(tuning.Threat.SurveillanceClasses),
		logger:              logging.OrNop(logger),
	}
}

// Generate returns the clustered POIs keyed by ID.
func (g *Generator) Generate(routes models.RouteSet, chokepoints map[string]*models.Chokepoint) map[string]*models.PointOfInterest {
	var pois []*models.PointOfInterest
	for _, r := range routes.Ordered() {
		pois = append(pois, g.ambushPoints(r)...)
		pois = append(pois, g.surveillancePoints(r)...)
	}
	pois = append(pois, g.chokepointPoints(routes, chokepoints)...)

	clustered := g.cluster(pois)
	g.logger.Debug("generated points of interest",
		zap.Int("candidates", len(pois)), zap.Int("kept", len(clustered)))

	out := make(map[string]*models.PointOfInterest, len(clustered))
	for _, p := range clustered {
		out[p.ID] = p
	}
	return out
}

// byPriority sorts highest priority first, ties by ID.
func byPriority(pois []*models.PointOfInterest) {
	sort.SliceStable(pois, func(i, j int) bool {
		if pois[i].PriorityScore != pois[j].PriorityScore {
			return pois[i].PriorityScore > pois[j].PriorityScore
		}
		return pois[i].ID < pois[j].ID
	})
}

func capped(pois []*models.PointOfInterest, limit int) []*models.PointOfInterest {
	byPriority(pois)
	if len(pois) > limit {
		pois = pois[:limit]
	}
	return pois
}

func set(values []string) map[string]bool {
	m := make(map[string]bool, len(values))
	for _, v := range values {
		m[v] = true
	}
	return m
}

func ptr(s string) *string { return &s }
