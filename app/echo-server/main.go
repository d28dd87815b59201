package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fourthandshort/app/echo-server/router"
	"fourthandshort/business/decision"
	"fourthandshort/internal/cache"
	"fourthandshort/internal/modelstore"
	psqlRepo "fourthandshort/internal/repository/postgres"
	"fourthandshort/internal/rest"
	"fourthandshort/pkg/config"
	"fourthandshort/pkg/database"
	"fourthandshort/pkg/logger"
	"fourthandshort/pkg/metrics"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting decision service", "version", cfg.App.Version)

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	metrics.Init()

	// Init shared state: one artifact store and one result cache for the
	// whole process, passed by reference to the handlers. No ambient
	// globals.
	store := modelstore.New(cfg.Decision.ModelsDir)
	resultCache, err := cache.NewResultCache(cfg.Decision.CacheCapacity)
	if err != nil {
		logger.Fatal("Failed to create result cache", "error", err)
	}

	// Init repo
	ledgerRepo := psqlRepo.NewModelLedgerRepository(db)
	requestRepo := psqlRepo.NewRequestLogRepository(db)

	// Init service
	decisionService := decision.NewDecisionService(store, resultCache, requestRepo, cfg.Decision.ModelVersion)

	// Init handler
	decisionHandler := rest.NewDecisionHandler(decisionService)
	adminHandler := rest.NewAdminHandler(ledgerRepo, store)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, "X-Model-Version"},
	}))

	// Setup routes
	router.SetDecisionRoutes(e, decisionHandler)
	router.SetOpsRoutes(e)
	api := e.Group("/api/v1")
	router.SetAdminRoutes(api, adminHandler)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}
