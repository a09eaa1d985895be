package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"igdb-games-service/internal/config"
	"igdb-games-service/internal/logging"
	"igdb-games-service/internal/server"
)

const appVersion = "dev"

func main() {
	if os.Getenv("SKIP_SERVER_RUN") == "1" {
		return
	}

	envFile, envErr := config.LoadEnvFile()
	cfg := config.Load()
	logger := logging.NewLogger(logging.Config{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: cfg.Metrics.ServiceName,
		Version: appVersion,
	})

	if envErr != nil {
		logger.Error("failed to load env file", "path", envFile, "error", envErr)
		os.Exit(1)
	}
	if envFile != "" {
		logger.Info("loaded env file", "path", envFile)
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Error("failed to build server", "error", err)
		os.Exit(1)
	}
	logger.Info("serving games", "gateway", cfg.Gateway)
	srv.Run(ctx, stop)
}
