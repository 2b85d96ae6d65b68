// Package config reads process settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	defaultPort           = "8080"
	defaultReconcileDelay = 100 * time.Millisecond
	defaultLogLevel       = "info"
)

type Config struct {
	Port           string
	SeedFile       string
	ReconcileDelay time.Duration
	LogLevel       string
}

// FromEnv reads PORT, SEED_FILE, RECONCILE_DELAY and LOG_LEVEL, applying
// defaults for unset values.
func FromEnv() (Config, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (Config, error) {
	cfg := Config{
		Port:           defaultPort,
		SeedFile:       getenv("SEED_FILE"),
		ReconcileDelay: defaultReconcileDelay,
		LogLevel:       defaultLogLevel,
	}

	if port := getenv("PORT"); port != "" {
		if n, err := strconv.Atoi(port); err != nil || n <= 0 || n > 65535 {
			return Config{}, fmt.Errorf("invalid PORT %q", port)
		}
		cfg.Port = port
	}

	if v := getenv("RECONCILE_DELAY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid RECONCILE_DELAY %q: %w", v, err)
		}
		if d <= 0 {
			return Config{}, fmt.Errorf("invalid RECONCILE_DELAY %q: must be positive", v)
		}
		cfg.ReconcileDelay = d
	}

	if v := getenv("LOG_LEVEL"); v != "" {
		switch v {
		case "debug", "info", "warn", "error":
			cfg.LogLevel = v
		default:
			return Config{}, fmt.Errorf("invalid LOG_LEVEL %q", v)
		}
	}
	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}
