package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"spendsight/internal/amqp"
	"spendsight/internal/config"
	apphttp "spendsight/internal/http"
	applog "spendsight/internal/log"
	"spendsight/internal/rates"
	"spendsight/internal/report"
	"spendsight/internal/storage"
	"spendsight/internal/upstream"
	"spendsight/internal/upstream/memory"
	"spendsight/internal/upstream/rest"
	"spendsight/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig())
	applog.SetDefault(logger)

	logger.Info("Starting spendsight")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", applog.FieldError, err)
		os.Exit(1)
	}

	var backend upstream.Backend
	switch cfg.DataBackend {
	case "rest":
		backend = rest.NewClient(cfg.APIBaseURL, logger, rest.WithToken(cfg.APIToken))
		logger.Info("Initialized rest backend", "base_url", cfg.APIBaseURL)
	default:
		backend = memory.NewDemo()
		logger.Info("Initialized memory backend")
	}

	// Persistent rate archive is optional; without it conversions
	// degrade to identity whenever the currency endpoint is down.
	var store *storage.RateStore
	if cfg.SQLiteDBPath != "" {
		var err error
		store, err = storage.NewRateStore(cfg.SQLiteDBPath)
		if err != nil {
			logger.Error("Failed to open rate store", applog.FieldError, err, "path", cfg.SQLiteDBPath)
			os.Exit(1)
		}
		defer store.Close()
	}

	rateOpts := []rates.Option{rates.WithMaxAge(cfg.RateMaxAge)}
	if store != nil {
		rateOpts = append(rateOpts, rates.WithArchive(store))
	}
	rateSvc := rates.NewService(backend, logger, rateOpts...)

	reconciler := report.New(backend, logger,
		report.WithRates(rateSvc),
		report.WithPerPage(cfg.FetchPerPage))

	srv := apphttp.NewServer(":"+cfg.Port, reconciler, logger,
		apphttp.WithSummaryCache(cfg.SummaryCacheSize, cfg.SummaryCacheTTL),
		apphttp.WithBaseCurrency(cfg.BaseCurrency),
		apphttp.WithDefaultLocale(cfg.Locale))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	refresher := worker.NewRefreshWorker(rateSvc, logger, srv.SummaryCache())
	if store != nil {
		refresher.WithPruner(store)
	}

	// Warm the rate snapshot in the background so startup never blocks
	// on the backend.
	go refresher.StartupRefresh(ctx)

	// Listen for refresh events when a broker is configured.
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", applog.FieldError, err)
			os.Exit(1)
		}
		defer amqpClient.Close()

		go func() {
			err := amqpClient.ConsumeRefresh(ctx, func(msg *amqp.RefreshMessage) error {
				return refresher.HandleRefreshMessage(ctx, msg)
			})
			if err != nil && err != context.Canceled {
				logger.Error("Refresh consumption stopped", applog.FieldError, err)
			}
		}()
		logger.Info("Listening for refresh events", "queue", cfg.AMQPQueue)
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", applog.FieldError, err)
		}
		cancel()
	}()

	logger.Info("Starting spendsight server", "port", cfg.Port, "backend", cfg.DataBackend)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", applog.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
