package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter creates a new router with all routes configured
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware (all routes)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(LoggingMiddleware)
	r.Use(RecoveryMiddleware)

	r.Route("/api/v1", func(r chi.Router) {
		// Public routes (no auth required)
		r.Get("/health", h.Health)

		// Protected routes (auth required)
		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(h.apiKey))

			r.Get("/events", h.Events)

			r.Route("/languages", func(r chi.Router) {
				r.Get("/", h.ListLanguages)
				r.Post("/", h.BootstrapLanguage)

				r.Route("/{name}", func(r chi.Router) {
					r.Get("/", h.GetLanguage)
					r.Delete("/", h.DeleteLanguage)
					r.Post("/messages", h.SendMessage)
					r.Get("/history", h.History)
					r.Get("/vocabulary", h.Vocabulary)
					r.Get("/grammar", h.Grammar)
					r.Get("/overrides", h.Overrides)
				})
			})
		})
	})

	return r
}
