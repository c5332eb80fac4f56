package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// NewRouter creates a new HTTP router with all status endpoints.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()

	// Apply middleware
	r.Use(Recovery)
	r.Use(Logger)
	r.Use(PrivateSubnetOnly)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteNotFound(w, r.URL.Path)
	})

	r.Get("/health", h.CheckHealth)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", h.CheckHealth)
		r.Get("/status", h.GetStatus)
		r.Get("/config", h.GetConfig)
	})

	return r
}

// NewHTTPServer wraps handler in a server with conservative timeouts.
func NewHTTPServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
