package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/nekosui/petbot/internal/catalog"
	"github.com/nekosui/petbot/internal/config"
	"github.com/nekosui/petbot/internal/logger"
	"github.com/nekosui/petbot/internal/petgame"
	"github.com/nekosui/petbot/internal/reward"
	"github.com/nekosui/petbot/internal/server"
	"github.com/nekosui/petbot/internal/store"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}
	if err := config.ValidateEnv(config.RequiredEnvVars); err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	logger.Init(logger.NewConfig(cfg.LogLevel, cfg.LogFormat, logger.DefaultServiceName, Version, cfg.Environment, false))

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		slog.Error("Invalid timezone", "timezone", cfg.Timezone, "error", err)
		os.Exit(1)
	}

	cat, err := catalog.Load(cfg.ConfigDir)
	if err != nil {
		slog.Error("Failed to load catalogs", "dir", cfg.ConfigDir, "error", err)
		os.Exit(1)
	}
	slog.Info("Catalogs loaded", "collectibles", cat.TotalCapacity(), "achievements", len(cat.Achievements()))

	if err := os.MkdirAll(filepath.Dir(cfg.StatePath), 0o755); err != nil {
		slog.Error("Failed to create state directory", "error", err)
		os.Exit(1)
	}

	st := store.NewFileStore(cfg.StatePath)
	if err := st.Load(context.Background()); err != nil {
		slog.Error("Failed to load state", "path", cfg.StatePath, "error", err)
		os.Exit(1)
	}

	svc := petgame.NewService(st, cat, reward.NewSampler(), loc)
	srv := server.NewServer(cfg.Port, cfg.APIKey, Version, svc)

	// Serve until interrupted, then drain and flush state once more.
	errCh := make(chan error, 1)
	go func() {
		slog.Info("Starting server", "port", cfg.Port, "environment", cfg.Environment)
		errCh <- srv.Start()
	}()

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	case sig := <-sc:
		slog.Info("Shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Shutdown failed", "error", err)
	}

	if err := st.Save(shutdownCtx); err != nil {
		slog.Error("Final state save failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Shutdown complete")
}
