package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

// ServiceName is the identifier reported by the health endpoints.
const ServiceName = "ariaforge-api"

// DatabaseChecker runs a trivial query through the session provider.
type DatabaseChecker interface {
	CheckConnection(ctx context.Context) error
}

// CachePinger verifies connectivity to the cache store.
type CachePinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves liveness and readiness endpoints. The liveness
// responses are unconditional; the /db and /cache checks report actual
// dependency state, always with HTTP 200 so the check itself stays
// reachable.
type HealthHandler struct {
	db      DatabaseChecker
	cache   CachePinger
	version string
	logger  *slog.Logger
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(db DatabaseChecker, cache CachePinger, version string, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		db:      db,
		cache:   cache,
		version: version,
		logger:  logger.With(slog.String("handler", "health")),
	}
}

// Routes returns the router for the /api/v1/health group.
func (h *HealthHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Check)
	r.Get("/db", h.DatabaseCheck)
	r.Get("/cache", h.CacheCheck)
	return r
}

// Root handles GET / with a welcome message and links.
func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{
		"message": "Welcome to AriaForge API",
		"health":  "/health",
		"api":     "/api/v1",
	})
}

// Check handles the unconditional liveness endpoints (GET /health and
// GET /api/v1/health/). It reports healthy regardless of dependency
// state.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{
		"status":  "healthy",
		"service": ServiceName,
		"version": h.version,
	})
}

// DatabaseCheck handles GET /api/v1/health/db. It executes a trivial
// query through the session provider and reports the outcome inline
// instead of failing the HTTP call.
func (h *HealthHandler) DatabaseCheck(w http.ResponseWriter, r *http.Request) {
	if err := h.db.CheckConnection(r.Context()); err != nil {
		h.logger.ErrorContext(r.Context(), "database health check failed",
			slog.String("error", err.Error()))
		render.JSON(w, r, map[string]string{
			"status":   "unhealthy",
			"database": "disconnected",
			"error":    err.Error(),
		})
		return
	}

	render.JSON(w, r, map[string]string{
		"status":   "healthy",
		"database": "connected",
	})
}

// CacheCheck handles GET /api/v1/health/cache, mirroring the database
// check for the cache store.
func (h *HealthHandler) CacheCheck(w http.ResponseWriter, r *http.Request) {
	if err := h.cache.Ping(r.Context()); err != nil {
		h.logger.ErrorContext(r.Context(), "cache health check failed",
			slog.String("error", err.Error()))
		render.JSON(w, r, map[string]string{
			"status": "unhealthy",
			"cache":  "disconnected",
			"error":  err.Error(),
		})
		return
	}

	render.JSON(w, r, map[string]string{
		"status": "healthy",
		"cache":  "connected",
	})
}
