// Package cli provides common initialization shared by cmd/spendlog and
// cmd/spendlog-worker.
package cli

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"spendlog/internal/backend"
	"spendlog/internal/config"
	applog "spendlog/internal/log"
	"spendlog/internal/storage"
)

// SetupLogger initializes structured logging and sets the process-wide
// default.
func SetupLogger() *applog.Logger {
	logger := applog.New(applog.DefaultConfig())
	slog.SetDefault(logger.Logger)
	return logger
}

// LoadEnvFile loads the .env file for local development. Errors are
// ignored as the file is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it, exiting the
// process on validation failure.
func LoadAndValidateConfig(logger *applog.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

// OpenBackend creates the configured key-value store, exiting the process
// on failure. The returned cleanup releases the store.
func OpenBackend(logger *applog.Logger, cfg *config.Config) (storage.KV, func() error) {
	kv, cleanup, err := backend.Open(logger.Logger, cfg)
	if err != nil {
		logger.Error("Failed to initialize storage backend", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	return kv, cleanup
}
