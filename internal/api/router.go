package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// buildRouter creates the HTTP router with all routes and middleware.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)
	r.Use(s.bodySizeLimitMiddleware)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		// Preset document read
		r.Get("/presets", s.handleGetPresets)

		// Command invocation
		r.Post("/services/{name}", s.handleService)

		// WebSocket event stream
		r.Get("/ws", s.handleWebSocket)
	})

	return r
}

// handleHealth returns the server health status, including per-dependency
// checks when configured.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	deps := make(map[string]string, len(s.checks))
	for name, check := range s.checks {
		if err := check.HealthCheck(r.Context()); err != nil {
			status = "degraded"
			deps[name] = err.Error()
		} else {
			deps[name] = "ok"
		}
	}

	payload := map[string]any{
		"status":  status,
		"version": s.version,
	}
	if len(deps) > 0 {
		payload["dependencies"] = deps
	}
	writeJSON(w, http.StatusOK, payload)
}
