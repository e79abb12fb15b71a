package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/user/seo-console/internal/api"
	"github.com/user/seo-console/internal/config"
	"github.com/user/seo-console/internal/enrich"
	"github.com/user/seo-console/internal/indexnow"
	"github.com/user/seo-console/internal/monitoring"
	"github.com/user/seo-console/internal/search"
	"github.com/user/seo-console/internal/storage"
)

func main() {
	// Initialize structured logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("could not load config", zap.Error(err))
	}

	// Apply schema migrations before opening the pool
	if err := storage.RunMigrations(cfg.PostgresURL); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	// Initialize Storage Layer
	websiteStore, err := storage.NewWebsiteStore(cfg.PostgresURL)
	if err != nil {
		logger.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer websiteStore.Close()
	settingsStore := storage.NewSettingsStore(cfg.RedisAddr)
	defer settingsStore.Close()

	// Initialize Monitoring
	metrics := monitoring.NewMetrics()

	// Initialize external clients and the enrichment job
	httpTimeout := time.Duration(cfg.HTTPClientTimeout) * time.Second
	checker := search.NewGoogleClient(cfg.GoogleAPIURL, httpTimeout, logger)
	scraper := search.NewScraper(cfg.GoogleSearchURL, httpTimeout)
	pusher := indexnow.NewClient(cfg.IndexNowEndpoint, cfg.IndexNowKey, httpTimeout, logger)
	enricher := enrich.New(websiteStore, time.Duration(cfg.EnrichTimeout)*time.Second, logger)
	defer enricher.Close()

	// Initialize API Server
	server := api.NewServer(cfg, websiteStore, settingsStore, checker, scraper, pusher, enricher, metrics, logger)

	// Graceful Shutdown
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("could not start server", zap.Error(err))
		}
	}()

	logger.Info("server started", zap.String("port", cfg.ServerPort))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exiting")
}
