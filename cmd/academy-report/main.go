// Command academy-report prints the seat occupancy of every session, grouped
// by course, and flags sessions whose seat settings raise a warning.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	"github.com/joho/godotenv"
	"github.com/phrazzld/academy-api/internal/config"
	"github.com/phrazzld/academy-api/internal/domain"
	"github.com/phrazzld/academy-api/internal/platform/logger"
	"github.com/phrazzld/academy-api/internal/platform/postgres"
	"github.com/phrazzld/academy-api/internal/store"
)

func main() {
	includeArchived := flag.Bool("archived", false, "include archived sessions")
	courseFlag := flag.String("course", "", "only report the course with this ID")
	flag.Parse()

	_ = godotenv.Load()

	if err := run(*courseFlag, *includeArchived); err != nil {
		color.Red("academy-report: %v", err)
		os.Exit(1)
	}
}

func run(courseFlag string, includeArchived bool) error {
	var courseID uuid.NullUUID
	if courseFlag != "" {
		id, err := uuid.Parse(courseFlag)
		if err != nil {
			return fmt.Errorf("invalid course ID %q: %w", courseFlag, err)
		}
		courseID = uuid.NullUUID{UUID: id, Valid: true}
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Log lines go to stderr so they do not interleave with the table.
	log, err := logger.SetupWithWriter(cfg.Server, os.Stderr)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}
	defer func() { _ = db.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	courseStore := postgres.NewPostgresCourseStore(db, log)
	sessionStore := postgres.NewPostgresSessionStore(db, log)

	var courses []*domain.Course
	if courseID.Valid {
		c, err := courseStore.GetByID(ctx, courseID.UUID)
		if err != nil {
			return err
		}
		courses = []*domain.Course{c}
	} else {
		courses, err = courseStore.List(ctx)
		if err != nil {
			return err
		}
	}

	sessions, err := sessionStore.List(ctx, store.SessionFilter{
		CourseID:        courseID,
		IncludeArchived: includeArchived,
	})
	if err != nil {
		return err
	}

	rows := buildRows(ctx, courses, sessions)
	renderReport(os.Stdout, rows)
	return nil
}
