// cmd/server/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shopexio/backend-go/internal/api"
	"github.com/shopexio/backend-go/internal/cache"
	"github.com/shopexio/backend-go/internal/config"
	"github.com/shopexio/backend-go/internal/engine"
	"github.com/shopexio/backend-go/internal/insights"
	"github.com/shopexio/backend-go/internal/repository/postgres"
	"github.com/shopexio/backend-go/internal/scheduler"
	"github.com/shopexio/backend-go/internal/service"
	"github.com/shopexio/backend-go/pkg/logger"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database
	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	// Initialize cache (noop when disabled)
	engineCache, err := cache.NewEngineCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Cache unavailable, running without memoization")
		engineCache = cache.NewNoopEngineCache()
	}

	// Initialize engine and services
	engineCfg := engine.ConfigFrom(cfg.Engine)
	eng := engine.New(engineCfg)

	productRepo := postgres.NewProductRepository(db.DB)
	auditRepo := postgres.NewAuditRepository(db.DB)
	ruleRepo := postgres.NewPriceRuleRepository(db)
	predictionRepo := postgres.NewPredictionRepository(db.DB)

	priorityService := service.NewPriorityService(productRepo, auditRepo, ruleRepo, engineCache, eng)
	insightsService := service.NewInsightsService(productRepo, predictionRepo, insights.NewAnalyzer(engineCfg))
	catalogService := service.NewCatalogService(productRepo, ruleRepo, priorityService)

	// Start the cache-warming scheduler if enabled
	var sched *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		sched = scheduler.New()
		if err := sched.AddRefreshJob(cfg.Scheduler.RefreshSpec, priorityService); err != nil {
			logger.Log.Fatal().Err(err).Msg("Failed to schedule priority refresh")
		}
		sched.Start()
		logger.Log.Info().Str("spec", cfg.Scheduler.RefreshSpec).Msg("Priority refresh scheduled")
	}

	// Initialize HTTP server
	router := api.NewRouter(&api.Services{
		PriorityService: priorityService,
		InsightsService: insightsService,
		CatalogService:  catalogService,
	}, cfg.Server.AllowedOrigins)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	if sched != nil {
		sched.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}
