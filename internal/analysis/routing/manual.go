package routing

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/jengzang/chokepoint-planner/internal/models"
	"github.com/jengzang/chokepoint-planner/internal/roadgraph"
	"github.com/jengzang/chokepoint-planner/internal/spatial"
)

// manualSafeRoute stitches start → named segments in order → via → end. For
// each name the segment whose tail is nearest to the current position is
// reached by a shortest path and then traversed. Names without a matching or
// reachable segment are skipped.
func (s *Searcher) manualSafeRoute(wp waypoints, names []string) (*models.Route, error) {
	path := []int64{wp.start}
	current := wp.start
	var matched []string

	for _, name := range names {
		seg := s.nearestSegment(current, s.graph.EdgesNamed(name))
		if seg == nil {
			s.logger.Debug("no segment matches road name", zap.String("road", name))
			continue
		}
		approach, err := s.shortestPath(current, seg.From)
		if err != nil {
			s.logger.Debug("road segment unreachable", zap.String("road", name), zap.Error(err))
			continue
		}
		path = joinLegs(path, approach)
		path = append(path, seg.To)
		current = seg.To
		matched = append(matched, name)
	}

	toVia, err := s.shortestPath(current, wp.via)
	if err != nil {
		return nil, fmt.Errorf("manual route to via: %w", err)
	}
	toEnd, err := s.shortestPath(wp.via, wp.end)
	if err != nil {
		return nil, fmt.Errorf("manual route to end: %w", err)
	}
	path = joinLegs(joinLegs(path, toVia), toEnd)

	route, err := buildRoute(s.graph, s.tuning.Speeds, path,
		models.RouteIDSafeManual, "Safe route (manual)", models.RouteKindSafeManual)
	if err != nil {
		return nil, err
	}
	if len(matched) == 0 {
		route.Description += " No named road segments matched; shortest path used."
	} else {
		route.Description += " Follows " + strings.Join(matched, ", ") + "."
	}
	return route, nil
}

// nearestSegment picks the edge whose tail is closest to node from. Ties keep
// the first edge.
func (s *Searcher) nearestSegment(from int64, edges []*roadgraph.Edge) *roadgraph.Edge {
	origin, ok := s.graph.Node(from)
	if !ok {
		return nil
	}
	var best *roadgraph.Edge
	bestDist := 0.0
	for _, e := range edges {
		tail, ok := s.graph.Node(e.From)
		if !ok {
			continue
		}
		d := spatial.Distance(origin.Point(), tail.Point())
		if best == nil || d < bestDist {
			best, bestDist = e, d
		}
	}
	return best
}
