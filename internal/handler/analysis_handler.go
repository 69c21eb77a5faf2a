package handler

import (
	"errors"
	"io"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jengzang/chokepoint-planner/internal/logging"
	"github.com/jengzang/chokepoint-planner/internal/repository"
	"github.com/jengzang/chokepoint-planner/internal/service"
	"github.com/jengzang/chokepoint-planner/pkg/response"
)

// AnalysisHandler handles HTTP requests for analysis runs
type AnalysisHandler struct {
	service *service.AnalysisService
	logger  *zap.Logger
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(service *service.AnalysisService, logger *zap.Logger) *AnalysisHandler {
	return &AnalysisHandler{service: service, logger: logging.OrNop(logger)}
}

// AnalyzeRequest is the optional body of an analysis request
type AnalyzeRequest struct {
	Scenario string `json:"scenario"`
}

// Analyze runs an analysis for a scenario
// POST /api/v1/analyze
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.service.Analyze(c.Request.Context(), req.Scenario)
	if err != nil {
		h.logger.Error("analysis failed", zap.String("scenario", req.Scenario), zap.Error(err))
		response.InternalError(c, "Analysis failed")
		return
	}

	response.Success(c, result)
}

// ListScenarios lists the available scenarios
// GET /api/v1/scenarios
func (h *AnalysisHandler) ListScenarios(c *gin.Context) {
	response.Success(c, h.service.Scenarios())
}

// ListRuns lists recorded analysis runs
// GET /api/v1/runs
func (h *AnalysisHandler) ListRuns(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil {
		response.BadRequest(c, "Invalid limit")
		return
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil {
		response.BadRequest(c, "Invalid offset")
		return
	}

	page, err := h.service.ListRuns(limit, offset)
	if err != nil {
		h.logger.Error("failed to list runs", zap.Error(err))
		response.InternalError(c, "Failed to list runs")
		return
	}

	response.Paged(c, page.Runs, page.Total, page.Limit, page.Offset)
}

// GetRun retrieves a recorded run by ID
// GET /api/v1/runs/:id
func (h *AnalysisHandler) GetRun(c *gin.Context) {
	run, err := h.service.GetRun(c.Param("id"))
	if errors.Is(err, repository.ErrRunNotFound) {
		response.NotFound(c, "Run not found")
		return
	}
	if err != nil {
		h.logger.Error("failed to get run", zap.String("id", c.Param("id")), zap.Error(err))
		response.InternalError(c, "Failed to get run")
		return
	}

	response.Success(c, run)
}
