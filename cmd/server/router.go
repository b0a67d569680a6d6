package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/tutor-api/internal/api"
	apiMiddleware "github.com/phrazzld/tutor-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))
	r.Use(apiMiddleware.CORS)
	if timeout := app.config.Server.RequestTimeoutSeconds; timeout > 0 {
		r.Use(middleware.Timeout(time.Duration(timeout) * time.Second))
	}

	tutorHandler := api.NewTutorHandler(app.service)

	r.Post("/build-plan-spec", tutorHandler.BuildPlanSpec)
	r.Post("/lesson-chat", tutorHandler.LessonChat)

	// Health check endpoint
	r.Get("/health", api.Health)

	return r
}
