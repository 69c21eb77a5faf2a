// Package analysis sequences route search, chokepoint scoring, threat point
// generation and asset allocation.
package analysis

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/jengzang/chokepoint-planner/internal/analysis/assets"
	"github.com/jengzang/chokepoint-planner/internal/analysis/chokepoint"
	"github.com/jengzang/chokepoint-planner/internal/analysis/routing"
	"github.com/jengzang/chokepoint-planner/internal/analysis/threat"
	"github.com/jengzang/chokepoint-planner/internal/config"
	"github.com/jengzang/chokepoint-planner/internal/logging"
	"github.com/jengzang/chokepoint-planner/internal/models"
)

// ErrInvalidRoutes indicates route metadata inconsistent with its node sequence.
var ErrInvalidRoutes = errors.New("analysis: invalid routes")

// Engine runs the analysis pipeline over a shared read-only road graph. Each
// call works on its own intermediate state, so an Engine is safe for
// concurrent use.
type Engine struct {
	searcher  *routing.Searcher
	scorer    *chokepoint.Scorer
	generator *threat.Generator
	logger    *zap.Logger
}

// NewEngine creates an engine. A nil graph makes ComputeRoutes return the
// fallback route set; a nil tuning uses the defaults.
func NewEngine(graph routing.RoadGraph, tuning *config.Tuning, logger *zap.Logger) *Engine {
	if tuning == nil {
		tuning = config.DefaultTuning()
	}
	logger = logging.OrNop(logger)
	return &Engine{
		searcher:  routing.NewSearcher(graph, tuning, logger.Named("routing")),
		scorer:    chokepoint.NewScorer(tuning.Chokepoint, logger.Named("chokepoint")),
		generator: threat.NewGenerator(tuning, logger.Named("threat")),
		logger:    logger,
	}
}

// ComputeRoutes returns the diverse routes from start through via to end.
func (e *Engine) ComputeRoutes(start, via, end models.Waypoint, opts routing.Options) routing.Result {
	e.logger.Info("computing routes",
		zap.Float64s("start", start[:]),
		zap.Float64s("via", via[:]),
		zap.Float64s("end", end[:]))
	return e.searcher.Compute(start, via, end, opts)
}

// FullAnalysis scores chokepoints, derives points of interest and allocates
// teams for routes. Malformed routes are rejected with ErrInvalidRoutes.
func (e *Engine) FullAnalysis(routes models.RouteSet) (*models.AnalysisResult, error) {
	if err := routes.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRoutes, err)
	}

	chokepoints := e.scorer.Score(routes)
	pois := e.generator.Generate(routes, chokepoints)
	teams := assets.Allocate(chokepoints)

	e.logger.Info("analysis finished",
		zap.Int("routes", len(routes)),
		zap.Int("chokepoints", len(chokepoints)),
		zap.Int("pois", len(pois)),
		zap.Int("teams", len(teams)))

	result := &models.AnalysisResult{
		Routes:      routes,
		Chokepoints: chokepoints,
		POIs:        pois,
		Teams:       teams,
	}
	result.Summary = Summarize(result)
	return result, nil
}
