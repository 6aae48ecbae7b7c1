// Package main implements the entry point for the academy API server, which
// manages courses, their sessions and attendees, and user karma.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/phrazzld/academy-api/internal/config"
	"github.com/phrazzld/academy-api/internal/platform/logger"
)

func main() {
	migrateCmd := flag.String("migrate", "", "run a database migration command: up, down, status, version")
	flag.Parse()

	// A missing .env file is normal outside local development.
	_ = godotenv.Load()

	cfg, log, err := initializeApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize application: %v\n", err)
		os.Exit(1)
	}

	if *migrateCmd != "" {
		if err := runMigrations(cfg, log, *migrateCmd); err != nil {
			log.Error("Migration failed", "command", *migrateCmd, "error", err)
			os.Exit(1)
		}
		return
	}

	db, err := setupAppDatabase(cfg, log)
	if err != nil {
		log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	app, err := newApplication(cfg, log, db)
	if err != nil {
		log.Error("Failed to initialize application", "error", err)
		_ = db.Close()
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		log.Error("Application error", "error", err)
		os.Exit(1)
	}
}

// initializeApp loads configuration and sets up structured logging.
func initializeApp() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"strict_capacity", cfg.Rules.StrictCapacity)

	return cfg, log, nil
}
