package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"outlay/internal/amqp"
	"outlay/internal/config"
	"outlay/internal/gateway"
	filegw "outlay/internal/gateway/file"
	restgw "outlay/internal/gateway/rest"
	sqlitegw "outlay/internal/gateway/sqlite"
	apphttp "outlay/internal/http"
	applog "outlay/internal/log"
	"outlay/internal/store"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(applog.Config{
		Level:     slog.LevelInfo,
		Component: applog.ComponentApp,
	})
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	// Choose the persistence gateway.
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
	logger.Info("Initialized persistence gateway", "backend", cfg.DataBackend)

	// Publish change events when AMQP is configured; the store treats a
	// missing publisher as a no-op.
	var storeOpts []store.Option
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", "error", err)
			os.Exit(1)
		}
		defer amqpClient.Close()
		storeOpts = append(storeOpts, store.WithPublisher(amqpClient))
		logger.Info("AMQP change events enabled", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	} else {
		logger.Info("AMQP disabled - no AMQP_URL provided")
	}

	st := store.New(gw, storeOpts...)
	if err := st.Load(context.Background()); err != nil {
		logger.Error("Failed to load expense store", "error", err)
		os.Exit(1)
	}

	srv := apphttp.NewServer(":"+cfg.Port, st, apphttp.Options{
		CacheTTL:     cfg.CacheTTL,
		CacheMaxSize: cfg.CacheMaxSize,
	})

	// Configure server timeouts and limits
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 30 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	// Graceful shutdown handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		cancel()
	}()

	logger.Info("Starting outlay server", "port", cfg.Port, "backend", cfg.DataBackend)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
