// Package routing computes diverse vehicle routes over a road graph.
package routing

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/jengzang/chokepoint-planner/internal/config"
	"github.com/jengzang/chokepoint-planner/internal/logging"
	"github.com/jengzang/chokepoint-planner/internal/models"
	"github.com/jengzang/chokepoint-planner/internal/roadgraph"
	"github.com/jengzang/chokepoint-planner/internal/spatial"
)

// ErrGraphUnavailable indicates that no road graph was loaded.
var ErrGraphUnavailable = errors.New("routing: road graph unavailable")

// RoadGraph is the read-only road network the search runs on.
type RoadGraph interface {
	NearestNode(p spatial.Point) (int64, error)
	Node(id int64) (roadgraph.Node, bool)
	Degree(id int64) int
	Edge(u, v int64) (*roadgraph.Edge, bool)
	AStarPath(from, to int64, cost roadgraph.CostFunc) ([]int64, error)
	DijkstraPath(from, to int64, cost roadgraph.CostFunc) ([]int64, error)
	EdgesNamed(name string) []*roadgraph.Edge
}

// Outcome tags whether a Result was computed or is the built-in fallback.
type Outcome string

// Outcome values
const (
	OutcomeComputed Outcome = "computed"
	OutcomeFallback Outcome = "fallback"
)

// Result is the output of a route search. Err holds the failure that caused
// a fallback and is nil for computed results.
type Result struct {
	Routes  models.RouteSet
	Outcome Outcome
	Err     error
}

// Degraded reports whether the routes are the built-in fallback.
func (r Result) Degraded() bool { return r.Outcome == OutcomeFallback }

// Options adjusts a single search.
type Options struct {
	// SafeRoads enables the manual safe route along these road names, in order.
	SafeRoads []string
}

// Searcher computes the shortest, logical and safest routes. It holds no
// per-request state and is safe for concurrent use.
type Searcher struct {
	graph  RoadGraph
	tuning *config.Tuning
	logger *zap.Logger
}

// NewSearcher creates a searcher. A nil graph makes every search fall back.
func NewSearcher(graph RoadGraph, tuning *config.Tuning, logger *zap.Logger) *Searcher {
	if tuning == nil {
		tuning = config.DefaultTuning()
	}
	return &Searcher{
		graph:  graph,
		tuning: tuning,
		logger: logging.OrNop(logger),
	}
}

// Compute returns routes from start through via to end. Graph and search
// failures never surface as errors; they yield the fallback route set.
func (s *Searcher) Compute(start, via, end models.Waypoint, opts Options) Result {
	routes, err := s.compute(start, via, end, opts)
	if err != nil {
		s.logger.Warn("routing failed, returning fallback routes", zap.Error(err))
		return Result{Routes: FallbackRoutes(), Outcome: OutcomeFallback, Err: err}
	}
	s.logger.Info("route computation finished", zap.Int("routes", len(routes)))
	return Result{Routes: routes, Outcome: OutcomeComputed}
}

type waypoints struct {
	start, via, end int64
}

func (s *Searcher) compute(start, via, end models.Waypoint, opts Options) (models.RouteSet, error) {
	if s.graph == nil {
		return nil, ErrGraphUnavailable
	}

	wp, err := s.resolve(start, via, end)
	if err != nil {
		return nil, err
	}
	s.logger.Info("graph nodes resolved",
		zap.Int64("start_node", wp.start),
		zap.Int64("via_node", wp.via),
		zap.Int64("end_node", wp.end))

	s.logger.Debug("computing shortest route")
	shortest, err := s.shortestVia(wp)
	if err != nil {
		return nil, fmt.Errorf("shortest route: %w", err)
	}
	shortestEdges := EdgesOf(shortest)

	s.logger.Debug("computing logical route")
	logical, err := s.weightedVia(wp, LogicalCost(s.tuning.Routing, shortestEdges))
	if err != nil {
		return nil, fmt.Errorf("logical route: %w", err)
	}

	s.logger.Debug("computing safest route")
	avoid := shortestEdges.Union(EdgesOf(logical))
	safest, err := s.weightedVia(wp, SafestCost(s.tuning.Routing, s.graph.Degree, avoid))
	if err != nil {
		return nil, fmt.Errorf("safest route: %w", err)
	}

	routes := make(models.RouteSet, 4)
	for _, p := range []struct {
		path  []int64
		id    string
		label string
		kind  models.RouteKind
	}{
		{shortest, models.RouteIDShortest, "Shortest route", models.RouteKindShortest},
		{logical, models.RouteIDLogical, "Most logical route", models.RouteKindLogical},
		{safest, models.RouteIDSafest, "Safest route", models.RouteKindSafest},
	} {
		route, err := buildRoute(s.graph, s.tuning.Speeds, p.path, p.id, p.label, p.kind)
		if err != nil {
			return nil, err
		}
		routes[p.id] = route
	}

	if len(opts.SafeRoads) > 0 {
		manual, err := s.manualSafeRoute(wp, opts.SafeRoads)
		if err != nil {
			s.logger.Warn("manual safe route skipped", zap.Error(err))
		} else {
			routes[manual.ID] = manual
		}
	}

	return routes, nil
}

func (s *Searcher) resolve(start, via, end models.Waypoint) (waypoints, error) {
	var wp waypoints
	for _, r := range []struct {
		name string
		at   models.Waypoint
		dst  *int64
	}{
		{"start", start, &wp.start},
		{"via", via, &wp.via},
		{"end", end, &wp.end},
	} {
		id, err := s.graph.NearestNode(r.at.Point())
		if err != nil {
			return wp, fmt.Errorf("resolve %s waypoint: %w", r.name, err)
		}
		*r.dst = id
	}
	return wp, nil
}

// shortestPath runs A* and falls back to Dijkstra when A* fails.
func (s *Searcher) shortestPath(from, to int64) ([]int64, error) {
	path, err := s.graph.AStarPath(from, to, roadgraph.LengthCost)
	if err == nil {
		return path, nil
	}
	s.logger.Debug("a* failed, retrying with dijkstra",
		zap.Int64("from", from), zap.Int64("to", to), zap.Error(err))
	return s.graph.DijkstraPath(from, to, roadgraph.LengthCost)
}

func (s *Searcher) shortestVia(wp waypoints) ([]int64, error) {
	first, err := s.shortestPath(wp.start, wp.via)
	if err != nil {
		return nil, err
	}
	second, err := s.shortestPath(wp.via, wp.end)
	if err != nil {
		return nil, err
	}
	return joinLegs(first, second), nil
}

// weightedVia uses Dijkstra: cost multipliers below one make a straight-line
// heuristic inadmissible.
func (s *Searcher) weightedVia(wp waypoints, cost roadgraph.CostFunc) ([]int64, error) {
	first, err := s.graph.DijkstraPath(wp.start, wp.via, cost)
	if err != nil {
		return nil, err
	}
	second, err := s.graph.DijkstraPath(wp.via, wp.end, cost)
	if err != nil {
		return nil, err
	}
	return joinLegs(first, second), nil
}
