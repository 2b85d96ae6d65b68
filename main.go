package main

import (
	"fmt"
	"net/http"
	"os"

	"go.uber.org/zap"

	"template-widgets/api"
	"template-widgets/config"
	"template-widgets/template"
	"template-widgets/workspace"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync() // Flushes buffer, if any

	store, err := template.LoadSeed(cfg.SeedFile)
	if err != nil {
		logger.Fatal("failed to load template seed", zap.String("path", cfg.SeedFile), zap.Error(err))
	}

	ws := workspace.New(store, cfg.ReconcileDelay, logger)
	defer ws.Close()

	router := api.RegisterRoutes(ws, staticFiles, logger.Named("api"))

	logger.Info("template-widgets listening",
		zap.String("addr", cfg.Addr()),
		zap.Int("templates", store.Len()),
		zap.Duration("reconcile_delay", cfg.ReconcileDelay))
	if err := http.ListenAndServe(cfg.Addr(), router); err != nil {
		logger.Error("server error", zap.Error(err))
	}
}

func newLogger(level string) (*zap.Logger, error) {
	if level == "debug" {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	cfg.Level = lvl
	return cfg.Build()
}
