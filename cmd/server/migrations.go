package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/academy-api/internal/config"
	"github.com/phrazzld/academy-api/internal/platform/postgres"
	"github.com/pressly/goose/v3"
)

// migrationCommands are the goose commands accepted by -migrate.
var migrationCommands = map[string]struct{}{
	"up":      {},
	"down":    {},
	"status":  {},
	"version": {},
}

// slogGooseLogger adapts the goose logger interface to use slog
type slogGooseLogger struct {
	logger *slog.Logger
}

// Printf implements the goose.Logger Printf method by forwarding messages to slog.Info
func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, v...))
}

// Fatalf implements goose.Logger. It logs at error level and does not exit;
// the error is returned to main, which decides how to exit.
func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, v...))
}

// runMigrations executes a goose command against the configured database
// using the migrations embedded in the postgres package.
func runMigrations(cfg *config.Config, logger *slog.Logger, command string) error {
	if _, ok := migrationCommands[command]; !ok {
		return fmt.Errorf("unknown migration command %q", command)
	}

	migrationLogger := logger.With(
		"component", "migrations",
		"command", command)

	startTime := time.Now()
	migrationLogger.Info("Starting migration operation",
		"url", maskDatabaseURL(cfg.Database.URL))

	db, err := setupAppDatabase(cfg, migrationLogger)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			migrationLogger.Error("Error closing database connection", "error", err)
		}
	}()

	goose.SetLogger(&slogGooseLogger{logger: migrationLogger})
	goose.SetBaseFS(postgres.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.RunContext(context.Background(), command, db, postgres.MigrationsDir); err != nil {
		return fmt.Errorf("goose %s failed: %w", command, err)
	}

	migrationLogger.Info("Migration operation completed",
		"duration_ms", time.Since(startTime).Milliseconds())
	return nil
}
