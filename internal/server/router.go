package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// RouterDependencies collects handler dependencies.
type RouterDependencies struct {
	Health           HealthService
	API              *APIHandlers
	AllowedOrigins   []string
	AllowCredentials bool
}

// NewRouter wires the HTTP routes exposed by the path service.
func NewRouter(logger *slog.Logger, deps RouterDependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(loggingMiddleware(logger))
	if len(deps.AllowedOrigins) > 0 {
		r.Use(corsMiddleware(deps.AllowedOrigins, deps.AllowCredentials))
	}

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		ctx, cancel := context.WithTimeout(req.Context(), 2*time.Second)
		defer cancel()

		if deps.Health != nil {
			if err := deps.Health.Probe(ctx); err != nil {
				logger.Error("health probe failed", "error", err)
				respondJSON(w, http.StatusServiceUnavailable, map[string]string{
					"status": "degraded",
					"detail": err.Error(),
				})
				return
			}
		}

		respondJSON(w, http.StatusOK, map[string]string{
			"status":  "healthy",
			"message": "Server is running",
		})
	})

	if deps.API != nil {
		r.Post("/get_paths", deps.API.handleGetPaths)
		r.Get("/graph", deps.API.handleGraph)
	}

	return r
}
