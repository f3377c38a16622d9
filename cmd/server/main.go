package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/GuotongWu/CookNote/internal/app"
	"github.com/GuotongWu/CookNote/internal/config"
	"github.com/GuotongWu/CookNote/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Logging is not configured yet; fall back to the default handler.
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}
	logging.SetupWithLevel(logging.ParseLevel(cfg.LogLevel))

	a, err := app.Open(cfg)
	if err != nil {
		slog.Error("Failed to initialize journal", "error", err)
		os.Exit(1)
	}
	defer a.Close()
	slog.Info("Journal opened", "database", cfg.DBPath, "orphan_policy", cfg.OrphanPolicy)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.Serve(ctx); err != nil {
		slog.Error("Server failed", "error", err)
		a.Close()
		os.Exit(1)
	}
}
