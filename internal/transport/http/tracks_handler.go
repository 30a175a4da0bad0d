package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

// TracksHandler serves the /api/v1/tracks endpoint group.
type TracksHandler struct {
	logger *slog.Logger
}

// NewTracksHandler creates a new tracks handler.
func NewTracksHandler(logger *slog.Logger) *TracksHandler {
	return &TracksHandler{
		logger: logger.With(slog.String("handler", "tracks")),
	}
}

// Routes returns the router for the /api/v1/tracks group.
func (h *TracksHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	return r
}

// Get handles GET /api/v1/tracks/{id}.
func (h *TracksHandler) Get(w http.ResponseWriter, r *http.Request) {
	trackID := chi.URLParam(r, "id")
	h.logger.InfoContext(r.Context(), "track retrieval requested",
		slog.String("track_id", trackID))
	render.JSON(w, r, stubFor("Get track", "track_id", trackID))
}

// Update handles PUT /api/v1/tracks/{id}.
func (h *TracksHandler) Update(w http.ResponseWriter, r *http.Request) {
	trackID := chi.URLParam(r, "id")
	h.logger.InfoContext(r.Context(), "track update requested",
		slog.String("track_id", trackID))
	render.JSON(w, r, stubFor("Update track", "track_id", trackID))
}

// Delete handles DELETE /api/v1/tracks/{id}.
func (h *TracksHandler) Delete(w http.ResponseWriter, r *http.Request) {
	trackID := chi.URLParam(r, "id")
	h.logger.InfoContext(r.Context(), "track deletion requested",
		slog.String("track_id", trackID))
	render.JSON(w, r, stubFor("Delete track", "track_id", trackID))
}
