package main

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/academy-api/internal/api"
	apiMiddleware "github.com/phrazzld/academy-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	return newRouter(app.logger, app.handlers())
}

// newRouter mounts the API under /api and the health check at /health.
func newRouter(logger *slog.Logger, handlers api.Handlers) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(logger))

	r.Route("/api", func(r chi.Router) {
		api.RegisterRoutes(r, handlers)
	})

	r.Get("/health", api.HealthCheck)

	return r
}
