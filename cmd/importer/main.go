package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/riskibarqy/league-registry/internal/app"
	"github.com/riskibarqy/league-registry/internal/config"
	"github.com/riskibarqy/league-registry/internal/interfaces/cli"
	"github.com/riskibarqy/league-registry/internal/observability"
	"github.com/riskibarqy/league-registry/internal/platform/logging"
)

func main() {
	os.Exit(run())
}

func run() int {
	if err := config.LoadDotEnv(os.Getenv("APP_ENV_FILE")); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return cli.ExitError
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: load config: %v\n", err)
		return cli.ExitError
	}

	logger := logging.NewJSON(os.Stderr, cfg.LogLevel).With(
		"service", cfg.ServiceName,
		"version", cfg.ServiceVersion,
		"env", cfg.AppEnv,
	)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	shutdownTracing, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		logger.Error("init uptrace", "error", err)
		return cli.ExitError
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			logger.Warn("shutdown uptrace", "error", err)
		}
	}()

	stopProfiling, err := observability.InitPyroscope(cfg, logger)
	if err != nil {
		logger.Error("init pyroscope", "error", err)
		return cli.ExitError
	}
	defer func() {
		if err := stopProfiling(); err != nil {
			logger.Warn("stop pyroscope", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmd := cli.NewImportCommand(app.NewImporterFactory(cfg, logger), os.Stdout)
	return cli.Execute(ctx, cmd, os.Stderr)
}
