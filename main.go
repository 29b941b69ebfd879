package main

import (
	"EatBefore/cmd/config"
	"EatBefore/internal/utils"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := utils.LoadConfig(utils.ConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	time.Local = cfg.Location()

	logger := utils.NewLogger(cfg.Logger)
	logger.Info().Str("store", cfg.Store.Driver).Msg("starting EatBefore API server")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := config.ConnectStore(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error().Err(err).Msg("failed to close store")
		}
	}()

	app, cleanup, err := config.NewApp(cfg, store, logger)
	if err != nil {
		return fmt.Errorf("failed to build app: %w", err)
	}
	defer cleanup()

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info().Str("address", cfg.Server.Address()).Msg("HTTP server started")
		serverErrors <- app.Listen(cfg.Server.Address())
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().Str("signal", sig.String()).Msg("shutdown signal received, starting graceful shutdown")

		if err := app.ShutdownWithTimeout(30 * time.Second); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
