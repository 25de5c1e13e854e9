package api

import (
	"courier-tracking-service/internal/api/handlers"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// metrics may be nil, in which case /metrics is not served.
func NewRouter(svc handlers.Tracker, metrics http.Handler) http.Handler {
	h := &handlers.TrackingHandler{Svc: svc}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(loggingMiddleware)
	r.Use(middleware.Recoverer)

	r.Get("/health", handlers.Health)
	r.Post("/login", h.Login)
	r.Get("/state", h.State)
	r.Get("/state/at/{tick}", h.StateAt)
	r.Get("/configuration", h.Configuration)
	r.Get("/paths", h.Paths)

	if metrics != nil {
		r.Method(http.MethodGet, "/metrics", metrics)
	}

	return r
}
