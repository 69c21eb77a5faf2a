package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/jengzang/chokepoint-planner/internal/analysis"
	"github.com/jengzang/chokepoint-planner/internal/analysis/routing"
	"github.com/jengzang/chokepoint-planner/internal/api"
	"github.com/jengzang/chokepoint-planner/internal/config"
	"github.com/jengzang/chokepoint-planner/internal/database"
	"github.com/jengzang/chokepoint-planner/internal/logging"
	"github.com/jengzang/chokepoint-planner/internal/repository"
	"github.com/jengzang/chokepoint-planner/internal/roadgraph"
	"github.com/jengzang/chokepoint-planner/internal/service"
)

func main() {
	cfg := config.Load()

	logger, err := logging.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	tuning := config.DefaultTuning()
	if cfg.TuningPath != "" {
		tuning, err = config.LoadTuning(cfg.TuningPath)
		if err != nil {
			logger.Fatal("failed to load tuning", zap.String("path", cfg.TuningPath), zap.Error(err))
		}
		logger.Info("tuning loaded", zap.String("path", cfg.TuningPath))
	}

	// A missing graph is not fatal: every analysis then runs on the fallback routes.
	var graph routing.RoadGraph
	if g, err := roadgraph.LoadJSON(cfg.GraphPath); err != nil {
		logger.Warn("road graph unavailable, serving fallback routes",
			zap.String("path", cfg.GraphPath), zap.Error(err))
	} else {
		logger.Info("road graph loaded",
			zap.String("path", cfg.GraphPath),
			zap.Int("nodes", g.NodeCount()),
			zap.Int("edges", g.EdgeCount()))
		graph = g
	}

	db, err := database.Open(database.Config{Path: cfg.DBPath, Logger: logger.Named("database")})
	if err != nil {
		logger.Fatal("failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	engine := analysis.NewEngine(graph, tuning, logger.Named("analysis"))
	svc := service.NewAnalysisService(engine, repository.NewAnalysisRunRepository(db), logger.Named("service"))
	router := api.SetupRouter(cfg, svc, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server := &http.Server{
		Addr:    cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("server starting", zap.String("addr", cfg.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down HTTP server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", zap.Error(err))
	}
	logger.Info("graceful shutdown complete")
}
