package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"spendsight/internal/amqp"
	"spendsight/internal/config"
	applog "spendsight/internal/log"
	"spendsight/internal/rates"
	"spendsight/internal/storage"
	"spendsight/internal/upstream"
	"spendsight/internal/upstream/memory"
	"spendsight/internal/upstream/rest"
	"spendsight/internal/worker"
)

// The worker keeps the SQLite rate archive fresh on a schedule and
// tells running servers to drop cached summaries after each refresh.
func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig())
	applog.SetDefault(logger)

	logger.Info("Starting spendsight-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", applog.FieldError, err)
		os.Exit(1)
	}

	var backend upstream.Backend
	switch cfg.DataBackend {
	case "rest":
		backend = rest.NewClient(cfg.APIBaseURL, logger, rest.WithToken(cfg.APIToken))
	default:
		backend = memory.NewSeeded()
	}

	store, err := storage.NewRateStore(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to open rate store", applog.FieldError, err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer store.Close()

	rateSvc := rates.NewService(backend, logger,
		rates.WithMaxAge(cfg.RateMaxAge),
		rates.WithArchive(store))
	refresher := worker.NewRefreshWorker(rateSvc, logger).WithPruner(store)

	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" {
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", applog.FieldError, err)
			os.Exit(1)
		}
		defer amqpClient.Close()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	refresher.StartupRefresh(ctx)

	ticker := time.NewTicker(cfg.RefreshInterval)
	defer ticker.Stop()

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := refresher.RefreshRates(ctx); err != nil {
					logger.Error("Scheduled rate refresh failed", applog.FieldError, err)
					continue
				}
				if amqpClient != nil {
					if err := amqpClient.PublishRefresh(ctx, amqp.ScopeReports, "rates refreshed"); err != nil {
						logger.Warn("Publishing refresh event failed", applog.FieldError, err)
					}
				}
			}
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("Shutdown signal received", "signal", sig.String())
	case <-ctx.Done():
		logger.Info("Context cancelled")
	}

	cancel()
	logger.Info("Worker shutdown complete")
}
