package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/academy-api/internal/api"
	"github.com/phrazzld/academy-api/internal/config"
	"github.com/phrazzld/academy-api/internal/platform/postgres"
	"github.com/phrazzld/academy-api/internal/rules"
	"github.com/phrazzld/academy-api/internal/service"
	"github.com/phrazzld/academy-api/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores
	courseStore  store.CourseStore
	sessionStore store.SessionStore
	partnerStore store.PartnerStore
	userStore    store.UserStore

	// Services
	courseService  service.CourseService
	sessionService service.SessionService
	partnerService service.PartnerService
	userService    service.UserService
}

// newApplication creates a new application instance with all dependencies initialized.
// The database connection must be established before application initialization.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	app.courseStore = postgres.NewPostgresCourseStore(db, logger)
	app.sessionStore = postgres.NewPostgresSessionStore(db, logger)
	app.partnerStore = postgres.NewPostgresPartnerStore(db, logger)
	app.userStore = postgres.NewPostgresUserStore(db, logger)

	var err error
	app.courseService, err = service.NewCourseService(app.courseStore, app.sessionStore, app.userStore, db, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create course service: %w", err)
	}

	app.sessionService, err = service.NewSessionService(
		app.sessionStore,
		app.courseStore,
		app.partnerStore,
		rules.SessionOptions{StrictCapacity: cfg.Rules.StrictCapacity},
		db,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create session service: %w", err)
	}

	app.partnerService, err = service.NewPartnerService(app.partnerStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create partner service: %w", err)
	}

	app.userService, err = service.NewUserService(app.userStore, db, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// handlers builds the API handlers from the application services.
func (app *application) handlers() api.Handlers {
	return api.Handlers{
		Courses:  api.NewCourseHandler(app.courseService, app.logger),
		Sessions: api.NewSessionHandler(app.sessionService, app.logger),
		Partners: api.NewPartnerHandler(app.partnerService, app.logger),
		Users:    api.NewUserHandler(app.userService, app.logger),
	}
}

// Run starts the HTTP server and blocks until it shuts down.
func (app *application) Run(ctx context.Context) error {
	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
