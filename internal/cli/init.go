// Package cli holds the initialization shared by cmd/fatture and
// cmd/fatture-backup.
package cli

import (
	"os"

	"github.com/joho/godotenv"

	"fatture/internal/backend"
	"fatture/internal/config"
	"fatture/internal/ledger"
	"fatture/internal/log"
	"fatture/internal/store"
)

// SetupLogger initializes structured logging and installs it as the slog
// default.
func SetupLogger() *log.Logger {
	logger := log.New(log.Config{})
	log.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development. Missing files are
// fine; env vars win in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration or exits the process when it is
// invalid.
func LoadAndValidateConfig(logger *log.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}
	return cfg
}

// OpenStore builds the configured storage backend or exits on failure.
func OpenStore(logger *log.Logger, cfg *config.Config) store.Store {
	s, err := backend.Open(cfg)
	if err != nil {
		logger.Error("Failed to open storage backend",
			log.FieldError, err, log.FieldBackend, cfg.DataBackend)
		os.Exit(1)
	}
	logger.Info("Storage backend ready", log.FieldBackend, cfg.DataBackend)
	return s
}

// NewLedger wires the ledger over an open store.
func NewLedger(logger *log.Logger, s store.Store) *ledger.Ledger {
	return ledger.New(s, logger)
}
