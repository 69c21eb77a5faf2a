package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jengzang/chokepoint-planner/internal/config"
	"github.com/jengzang/chokepoint-planner/internal/handler"
	"github.com/jengzang/chokepoint-planner/internal/logging"
	"github.com/jengzang/chokepoint-planner/internal/middleware"
	"github.com/jengzang/chokepoint-planner/internal/service"
)

// SetupRouter wires the HTTP routes.
func SetupRouter(cfg *config.Config, svc *service.AnalysisService, logger *zap.Logger) *gin.Engine {
	logger = logging.OrNop(logger)
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.Recovery(logger), middleware.Logger(logger.Named("http")))

	// CORS
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Chokepoint planner API is running",
		})
	})

	analysisHandler := handler.NewAnalysisHandler(svc, logger.Named("handler"))

	api := r.Group("/api/v1")
	{
		api.GET("/scenarios", analysisHandler.ListScenarios)
		api.POST("/analyze", middleware.RateLimit(cfg.AnalyzeRateLimit, time.Minute), analysisHandler.Analyze)

		runs := api.Group("/runs")
		{
			runs.GET("", analysisHandler.ListRuns)
			runs.GET("/:id", analysisHandler.GetRun)
		}
	}

	return r
}
