package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"outlay/internal/amqp"
	"outlay/internal/config"
	"outlay/internal/gateway"
	filegw "outlay/internal/gateway/file"
	restgw "outlay/internal/gateway/rest"
	sqlitegw "outlay/internal/gateway/sqlite"
	applog "outlay/internal/log"
	"outlay/internal/sheets"
	"outlay/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(applog.Config{
		Level:     slog.LevelInfo,
		Component: applog.ComponentWorker,
	})
	applog.SetDefault(logger)

	logger.Info("Starting outlay-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	if cfg.GoogleSpreadsheetID == "" {
		logger.Error("Mirror worker requires GOOGLE_SPREADSHEET_ID")
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		logger.Error("Mirror worker requires AMQP_URL")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The worker reads snapshots from the same gateway the server writes to.
	var (
		gw      gateway.Gateway
		closeGW func() error
	)
	switch cfg.DataBackend {
	case "sqlite":
		st, err := sqlitegw.New(cfg.SQLiteDBPath)
		if err != nil {
			logger.Error("Failed to open SQLite gateway", "error", err, "path", cfg.SQLiteDBPath)
			os.Exit(1)
		}
		gw, closeGW = st, st.Close
	case "rest":
		cli, err := restgw.New(cfg.RESTBaseURL, cfg.RESTToken)
		if err != nil {
			logger.Error("Failed to initialize REST gateway", "error", err, "base_url", cfg.RESTBaseURL)
			os.Exit(1)
		}
		gw = cli
	default:
		st, err := filegw.New(cfg.DataDir)
		if err != nil {
			logger.Error("Failed to open file gateway", "error", err, "dir", cfg.DataDir)
			os.Exit(1)
		}
		gw = st
	}
	if closeGW != nil {
		defer func() {
			if err := closeGW(); err != nil {
				logger.Error("Failed to close gateway", "error", err)
			}
		}()
	}

	mirror, err := sheets.NewFromEnv(ctx)
	if err != nil {
		logger.Error("Failed to initialize Google Sheets client", "error", err)
		os.Exit(1)
	}
	logger.Info("Google Sheets client initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID)

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	mirrorWorker := worker.NewMirrorWorker(gw, mirror)

	// Catch up on anything missed while the worker was down.
	if err := mirrorWorker.StartupSync(ctx); err != nil {
		logger.Error("Startup sync failed", "error", err)
		// Don't exit - the consume loop and periodic resync will retry
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return amqpClient.ConsumeExpenseChanged(gctx, func(msg *amqp.ExpenseEvent) error {
			return mirrorWorker.HandleEvent(gctx, msg)
		})
	})

	g.Go(func() error {
		ticker := time.NewTicker(cfg.MirrorResyncInterval)
		defer ticker.Stop()

		for {
			select {
			case <-gctx.Done():
				return gctx.Err()
			case <-ticker.C:
				if err := mirrorWorker.Resync(gctx); err != nil {
					logger.Error("Periodic resync failed", "error", err)
				}
			}
		}
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker stopped with error", "error", err)
		os.Exit(1)
	}

	logger.Info("Worker shutdown complete")
}
