package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"attorney_directory_go/config"
	"attorney_directory_go/db"
	"attorney_directory_go/handlers"
	"attorney_directory_go/middleware"
	"attorney_directory_go/services"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

func main() {
	// Load configuration
	cfg := config.Load()
	logger := services.NewLogger(cfg.LogLevel, cfg.Environment)

	// Initialize storage and the attorney document
	storage := services.InitializeStorage(cfg)
	if err := db.Initialize(storage, cfg.AttorneysFile); err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize attorney document")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := services.EnsureAttorneyFile(ctx, db.Attorneys, cfg.SeedSampleData); err != nil {
		cancel()
		logger.Fatal().Err(err).Msg("Failed to prepare attorney document")
	}
	cancel()

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = handlers.HTTPErrorHandler

	// Middleware
	e.Use(middleware.RequestID())
	e.Use(middleware.Metrics())
	e.Use(middleware.RequestLogger(logger))
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
	}))
	e.Use(middleware.Locale(cfg))
	e.Use(middleware.AuditContext())

	writeLimiter := middleware.NewWriteRateLimiter(cfg.WriteRateLimit)
	defer writeLimiter.Stop()

	// Routes
	e.GET("/healthz", handlers.HealthHandler)
	e.GET("/metrics", echo.WrapHandler(services.MetricsHandler()))
	handlers.RegisterAttorneyRoutes(e, writeLimiter.Middleware())

	// Start server
	go func() {
		logger.Info().
			Str("port", cfg.ServerPort).
			Str("storage", storage.Describe()).
			Str("document", db.Attorneys.Key()).
			Msg("Server starting")
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Server shutdown failed")
	}
	logger.Info().Msg("Server stopped")
}
