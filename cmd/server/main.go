// Package main implements the entry point for the Libra API server,
// a digital library service handling the book catalog, lending, reviews
// and per-reader shelves.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/openshelf/libra-api/internal/config"
	"github.com/openshelf/libra-api/internal/platform/logger"
)

func main() {
	migrateCmd := flag.String("migrate", "", "run database migrations (up, down, status) and exit")
	migrationsDir := flag.String("migrations-dir", "migrations", "directory holding migration files")
	flag.Parse()

	cfg, appLogger, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if *migrateCmd != "" {
		if err := runMigrations(cfg, *migrateCmd, *migrationsDir); err != nil {
			appLogger.Error("migration failed", "command", *migrateCmd, "error", err)
			os.Exit(1)
		}
		appLogger.Info("migration completed", "command", *migrateCmd)
		return
	}

	ctx := context.Background()

	db, err := setupAppDatabase(cfg, appLogger)
	if err != nil {
		appLogger.Error("failed to set up database", "error", err)
		os.Exit(1)
	}

	app, err := newApplication(ctx, cfg, appLogger, db)
	if err != nil {
		appLogger.Error("failed to initialize application", "error", err)
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		appLogger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initializeApp loads configuration and sets up structured logging.
func initializeApp() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	return cfg, appLogger, nil
}
