package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/devchen-org/stock-monitor/internal/config"
	"github.com/devchen-org/stock-monitor/internal/logger"
	"github.com/devchen-org/stock-monitor/internal/watcher"
)

func main() {
	// .env is optional; system environment wins either way.
	_ = godotenv.Load()
	env := config.LoadEnv()

	log := logger.New(env.LogLevel, env.LogFile, env.MaxLogSizeMB, env.MaxLogBackups)

	cfg, err := config.Load(env.PortfolioPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Error().Err(err).Msg("could not load portfolio file")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().
		Str("provider", cfg.Settings.Provider).
		Int("holdings", len(cfg.Holdings)).
		Int("interval", cfg.Settings.Interval).
		Msg("monitor starting")

	w := watcher.New(env.PortfolioPath, cfg, log, os.Stdout)
	if err := w.Run(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		log.Error().Err(err).Msg("monitor terminated")
		os.Exit(1)
	}
}
