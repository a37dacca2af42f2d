package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caresync/portal-api/aiassist"
	"github.com/caresync/portal-api/config"
	"github.com/caresync/portal-api/data"
	"github.com/caresync/portal-api/handlers"
	"github.com/caresync/portal-api/health"
	"github.com/caresync/portal-api/logging"
	"github.com/caresync/portal-api/scheduler"
	"github.com/caresync/portal-api/server"
	"github.com/caresync/portal-api/store"
	"github.com/caresync/portal-api/validation"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env if present; environment variables win either way
	if err := godotenv.Load(); err != nil {
		logging.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		logging.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.InitLogger("logs", cfg.LogRetentionWeeks, cfg.MaxLogFileSize)

	ctx := context.Background()
	documents, err := store.Connect(ctx, cfg)
	if err != nil {
		logging.Error("Failed to connect to the document store", "error", err)
		os.Exit(1)
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := documents.Disconnect(disconnectCtx); err != nil {
			logging.Error("Failed to disconnect from the document store", "error", err)
		}
	}()

	analytics := data.NewAnalyticsContainer()
	analytics.SetServerStartTime(time.Now())

	analyticsScheduler := scheduler.NewScheduler(analytics, documents)
	if err := analyticsScheduler.Start(); err != nil {
		logging.Error("Failed to start the analytics scheduler", "error", err)
		os.Exit(1)
	}
	defer analyticsScheduler.Stop()

	generator := aiassist.NewClient(cfg)
	if generator.Configured() {
		logging.Info("AI text generation enabled", "model", cfg.AIModel)
	} else {
		logging.Info("AI text generation disabled, using deterministic fallbacks")
	}

	handler := handlers.NewHTTPHandler(
		documents,
		analytics,
		aiassist.NewEnhancer(generator),
		validation.NewRequestValidator(),
		health.NewHealthChecker(documents, analytics, generator),
	)

	srv := server.NewServer(cfg, handler)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error("Shutdown failed", "error", err)
		os.Exit(1)
	}
}
