// Package cli provides common initialization utilities for the
// cmd/financeiro entrypoint.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Glindemberg/Controle-Finaceiro-v2/internal/backend"
	"github.com/Glindemberg/Controle-Finaceiro-v2/internal/config"
	"github.com/Glindemberg/Controle-Finaceiro-v2/internal/log"
	"github.com/Glindemberg/Controle-Finaceiro-v2/internal/storage"
)

// SetupLogger initializes structured logging at the given level and sets
// it as the process default.
func SetupLogger(level string) *log.Logger {
	logger := log.New(log.Config{
		Level:     log.ParseLevel(level),
		Component: log.ComponentApp,
	}).WithComponent(log.ComponentApp)
	log.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *log.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}
	return cfg
}

// InitStore builds the persistence store selected by the configuration.
// Returns the store or exits the process on failure.
func InitStore(logger *log.Logger, cfg *config.Config) storage.Store {
	store, err := backend.New(cfg, logger.Logger)
	if err != nil {
		logger.Error("Failed to initialize storage backend",
			log.FieldError, err,
			log.FieldBackend, cfg.DataBackend)
		os.Exit(1)
	}
	return store
}

// NotifyShutdown returns a context cancelled on SIGINT or SIGTERM.
func NotifyShutdown() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

// ShutdownTimeout bounds graceful HTTP server shutdown.
const ShutdownTimeout = 10 * time.Second
