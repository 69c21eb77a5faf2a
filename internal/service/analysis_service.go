package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jengzang/chokepoint-planner/internal/analysis"
	"github.com/jengzang/chokepoint-planner/internal/analysis/routing"
	"github.com/jengzang/chokepoint-planner/internal/config"
	"github.com/jengzang/chokepoint-planner/internal/logging"
	"github.com/jengzang/chokepoint-planner/internal/models"
	"github.com/jengzang/chokepoint-planner/internal/repository"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// AnalysisService resolves scenarios, runs the engine and records each run.
type AnalysisService struct {
	engine *analysis.Engine
	repo   *repository.AnalysisRunRepository
	logger *zap.Logger
}

// NewAnalysisService creates a new analysis service
func NewAnalysisService(engine *analysis.Engine, repo *repository.AnalysisRunRepository, logger *zap.Logger) *AnalysisService {
	return &AnalysisService{
		engine: engine,
		repo:   repo,
		logger: logging.OrNop(logger),
	}
}

// Analyze runs the full pipeline for the named scenario and persists the
// result. Unknown names run the default scenario.
func (s *AnalysisService) Analyze(ctx context.Context, scenarioName string) (*models.AnalysisResult, error) {
	scenario, known := config.LookupScenario(scenarioName)
	if !known && scenarioName != "" {
		s.logger.Warn("unknown scenario, using default",
			zap.String("requested", scenarioName),
			zap.String("scenario", scenario.Name))
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	routes := s.engine.ComputeRoutes(scenario.Start, scenario.Via, scenario.End, routing.Options{
		SafeRoads: scenario.SafeRoads,
	})
	if routes.Degraded() {
		s.logger.Warn("route search degraded to fallback routes", zap.Error(routes.Err))
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result, err := s.engine.FullAnalysis(routes.Routes)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze scenario %s: %w", scenario.Name, err)
	}

	result.Scenario = &models.ScenarioInfo{
		Name:  scenario.Name,
		Start: scenario.Start,
		Via:   scenario.Via,
		End:   scenario.End,
	}
	result.Outcome = string(routes.Outcome)
	result.RunID = uuid.NewString()

	if err := s.repo.Save(models.NewAnalysisRun(result.RunID, result)); err != nil {
		return nil, fmt.Errorf("failed to record analysis run: %w", err)
	}

	s.logger.Info("analysis run recorded",
		zap.String("run_id", result.RunID),
		zap.String("scenario", scenario.Name),
		zap.String("outcome", result.Outcome))

	return result, nil
}

// GetRun retrieves a recorded run with its result
func (s *AnalysisService) GetRun(id string) (*models.AnalysisRun, error) {
	return s.repo.GetByID(id)
}

// RunPage is one page of run summaries with the bounds actually applied.
type RunPage struct {
	Runs   []*models.AnalysisRun
	Total  int
	Limit  int
	Offset int
}

// ListRuns returns run summaries. Non-positive limits use the default page
// size, large ones are capped and negative offsets start at zero.
func (s *AnalysisService) ListRuns(limit, offset int) (*RunPage, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	runs, total, err := s.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	return &RunPage{Runs: runs, Total: total, Limit: limit, Offset: offset}, nil
}

// Scenarios lists the scenarios Analyze accepts.
func (s *AnalysisService) Scenarios() []config.Scenario {
	return config.Scenarios()
}
