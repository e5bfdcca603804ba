// Package main implements the entry point for the kana API server, which
// drives per-learner spaced-repetition study sessions over the kana catalog
// and persists review progress to Postgres.
package main

import (
	"fmt"
	"log"
	"log/slog"

	"github.com/kanacompanion/kana-api/internal/config"
	"github.com/kanacompanion/kana-api/internal/platform/logger"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}

// run wires configuration, logging, storage and services, applies pending
// migrations, and serves HTTP until a shutdown signal arrives.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	slog.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	db, err := setupDatabase(cfg, appLogger)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			appLogger.Error("failed to close database", "error", err)
		}
	}()

	if err := runMigrations(db, appLogger); err != nil {
		return err
	}

	app := newApplication(cfg, appLogger, db)
	defer app.cleanup()

	return app.serve()
}
