// Package chokepoint finds nodes shared by several routes and scores how
// vulnerable they are.
package chokepoint

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/jengzang/chokepoint-planner/internal/config"
	"github.com/jengzang/chokepoint-planner/internal/logging"
	"github.com/jengzang/chokepoint-planner/internal/models"
	"github.com/jengzang/chokepoint-planner/internal/spatial"
)

// Scorer turns a route set into scored chokepoints.
type Scorer struct {
	tuning config.ChokepointTuning
	dense  map[string]bool
	logger *zap.Logger
}

// NewScorer creates a scorer.
func NewScorer(tuning config.ChokepointTuning, logger *zap.Logger) *Scorer {
	dense := make(map[string]bool, len(tuning.DenseClasses))
	for _, c := range tuning.DenseClasses {
		dense[c] = true
	}
	return &Scorer{tuning: tuning, dense: dense, logger: logging.OrNop(logger)}
}

// usage is what the route set says about one node.
type usage struct {
	routes       map[string]struct{}
	location     *models.LatLon
	intersection bool
	edges        []models.EdgeMeta
}

func buildUsage(routes models.RouteSet) map[int64]*usage {
	index := make(map[int64]*usage)
	get := func(id int64) *usage {
		u, ok := index[id]
		if !ok {
			u = &usage{routes: make(map[string]struct{})}
			index[id] = u
		}
		return u
	}

	for _, r := range routes.Ordered() {
		for i, nodeID := range r.Nodes {
			u := get(nodeID)
			u.routes[r.ID] = struct{}{}
			if i < len(r.NodesMeta) && r.NodesMeta[i].IsIntersection {
				u.intersection = true
			}
			if u.location == nil {
				if loc, ok := r.NodeLocation(i); ok {
					u.location = &loc
				}
			}
		}
		// Edge endpoints are indexed too; hazard flags may only surface here.
		for _, e := range r.EdgesMeta {
			get(e.U).edges = append(get(e.U).edges, e)
			get(e.V).edges = append(get(e.V).edges, e)
		}
	}
	return index
}

// Score returns the chokepoints of routes keyed by ID. Nodes without a
// resolvable location are dropped. Sets larger than the configured threshold
// are clustered.
func (s *Scorer) Score(routes models.RouteSet) map[string]*models.Chokepoint {
	index := buildUsage(routes)
	total := len(routes)

	ids := make([]int64, 0, len(index))
	for id := range index {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var candidates []*models.Chokepoint
	dropped := 0
	for _, id := range ids {
		u := index[id]
		if len(u.routes) < 2 {
			continue
		}
		if u.location == nil {
			dropped++
			continue
		}
		candidates = append(candidates, s.scoreNode(id, u, total))
	}
	if dropped > 0 {
		s.logger.Debug("dropped chokepoint candidates without location", zap.Int("count", dropped))
	}

	out := make(map[string]*models.Chokepoint, len(candidates))
	for _, cp := range s.recluster(candidates) {
		out[cp.ID] = cp
	}
	return out
}

// recluster orders chokepoints by score, highest first with ties by ID, and
// collapses them when there are more than the configured threshold. The
// highest-scoring member of each cluster is its seed.
func (s *Scorer) recluster(cps []*models.Chokepoint) []*models.Chokepoint {
	sorted := append([]*models.Chokepoint(nil), cps...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].VulnerabilityScore != sorted[j].VulnerabilityScore {
			return sorted[i].VulnerabilityScore > sorted[j].VulnerabilityScore
		}
		return sorted[i].ID < sorted[j].ID
	})

	if len(sorted) <= s.tuning.ClusterAbove {
		return sorted
	}
	clustered := spatial.Collapse(sorted, locate, s.tuning.ClusterRadiusM, merge)
	s.logger.Debug("clustered chokepoints", zap.Int("before", len(sorted)), zap.Int("after", len(clustered)))
	return clustered
}

func (s *Scorer) scoreNode(id int64, u *usage, total int) *models.Chokepoint {
	t := s.tuning
	score := t.BaseScore
	var factors []string

	if len(u.routes) == total {
		score += t.AllRoutesBonus
		factors = append(factors, models.FactorCommonToAllRoutes)
	} else {
		score += t.SharedBonus
		factors = append(factors, models.FactorSharedByMultiple)
	}

	if u.intersection {
		score += t.IntersectionBonus
		factors = append(factors, models.FactorMajorIntersection)
	}

	var tunnel, bridge, dense bool
	for _, e := range u.edges {
		tunnel = tunnel || e.IsTunnel
		bridge = bridge || e.IsBridge
		dense = dense || s.dense[e.Highway]
	}
	if tunnel {
		score += t.TunnelBonus
		factors = append(factors, models.FactorNearTunnel)
	}
	if bridge {
		score += t.BridgeBonus
		factors = append(factors, models.FactorBridge)
	}
	if dense {
		score += t.DenseBonus
		factors = append(factors, models.FactorDenseUrban)
	}

	score = math.Max(t.MinScore, math.Min(t.MaxScore, score))

	routeIDs := make([]string, 0, len(u.routes))
	for r := range u.routes {
		routeIDs = append(routeIDs, r)
	}
	sort.Strings(routeIDs)

	desc := fmt.Sprintf("Node used by %d of %d routes.", len(routeIDs), total)
	desc += " Factors: " + strings.Join(factors, ", ") + "."

	return &models.Chokepoint{
		ID:                 fmt.Sprintf("cp_%d", id),
		Location:           *u.location,
		Type:               models.ChokepointTypeIntersection,
		RoutesAffected:     routeIDs,
		VulnerabilityScore: score,
		Factors:            factors,
		Description:        desc,
	}
}

func locate(cp *models.Chokepoint) spatial.Point { return cp.Location.Point() }

// merge keeps the seed as representative. Routes are unioned, the score is the
// maximum and factors are unioned in first-seen order.
func merge(idx int, members []*models.Chokepoint) *models.Chokepoint {
	rep := members[0]

	routeSet := make(map[string]struct{})
	seenFactor := make(map[string]bool)
	var factors []string
	score := rep.VulnerabilityScore
	for _, cp := range members {
		for _, r := range cp.RoutesAffected {
			routeSet[r] = struct{}{}
		}
		for _, f := range cp.Factors {
			if !seenFactor[f] {
				seenFactor[f] = true
				factors = append(factors, f)
			}
		}
		score = math.Max(score, cp.VulnerabilityScore)
	}
	routeIDs := make([]string, 0, len(routeSet))
	for r := range routeSet {
		routeIDs = append(routeIDs, r)
	}
	sort.Strings(routeIDs)

	first, _, _ := strings.Cut(rep.Description, ".")
	return &models.Chokepoint{
		ID:                 spatial.ClusterID(rep.ID, idx),
		Location:           rep.Location,
		Type:               rep.Type,
		RoutesAffected:     routeIDs,
		VulnerabilityScore: score,
		Factors:            factors,
		Description: fmt.Sprintf("%s. (Merged cluster of %d nearby chokepoints covering %d routes)",
			first, len(members), len(routeIDs)),
	}
}
