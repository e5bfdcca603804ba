package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/kanacompanion/kana-api/internal/api"
	apiMiddleware "github.com/kanacompanion/kana-api/internal/api/middleware"
)

// setupRouter creates the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(
		app.userStore,
		app.jwtService,
		app.passwords,
		app.passwords,
	)
	sessionHandler := api.NewSessionHandler(app.reviewService, app.logger)
	progressHandler := api.NewProgressHandler(app.reviewService, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Study session endpoints
			r.Get("/session", sessionHandler.GetSession)
			r.Post("/session/reset", sessionHandler.ResetSession)
			r.Post("/session/mode", sessionHandler.SetMode)
			r.Post("/session/grade", sessionHandler.SubmitGrade)

			// Progress endpoints
			r.Get("/progress/summary", progressHandler.GetSummary)
			r.Get("/progress/breakdown", progressHandler.GetBreakdown)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
