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
	"github.com/rakapradana/supplychain-opt/internal/api"
	"github.com/rakapradana/supplychain-opt/internal/cache"
	"github.com/rakapradana/supplychain-opt/internal/config"
	"github.com/rakapradana/supplychain-opt/internal/forecast"
	"github.com/rakapradana/supplychain-opt/internal/inventory"
	"github.com/rakapradana/supplychain-opt/internal/repository"
	"github.com/rakapradana/supplychain-opt/internal/repository/csvfile"
	"github.com/rakapradana/supplychain-opt/internal/repository/postgres"
	"github.com/rakapradana/supplychain-opt/internal/service"
	"github.com/rakapradana/supplychain-opt/pkg/logger"
)

func main() {
	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Log.Fatal().Err(err).Msg("Invalid configuration")
	}

	// Initialize logger
	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Pick the sales data source
	var salesRepo repository.SalesRepository
	if cfg.App.SalesCSVPath != "" {
		logger.Log.Info().Str("path", cfg.App.SalesCSVPath).Msg("Using CSV sales source")
		salesRepo = csvfile.NewSalesRepository(cfg.App.SalesCSVPath)
	} else {
		db, err := postgres.NewDB(&cfg.Database)
		if err != nil {
			logger.Log.Fatal().Err(err).Msg("Failed to connect to database")
		}
		defer db.Close()
		salesRepo = postgres.NewSalesRepository(db)
	}

	// Initialize cache (noop unless enabled)
	dashboardCache, err := cache.NewDashboardCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Cache unavailable, continuing without it")
		dashboardCache = cache.NewNoopDashboardCache()
	}

	// Initialize engines and service
	forecaster := forecast.NewEngine(cfg.Forecast)
	calculator := inventory.NewCalculator(cfg.Inventory, nil)
	dashboard := service.NewDashboardService(salesRepo, dashboardCache, forecaster, calculator)

	// Initialize HTTP server
	router := api.NewRouter(dashboard, cfg.Server.AllowedOrigins)
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

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}
