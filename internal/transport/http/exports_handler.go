package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

// ExportsHandler serves the /api/v1/exports endpoint group.
type ExportsHandler struct {
	logger *slog.Logger
}

// NewExportsHandler creates a new exports handler.
func NewExportsHandler(logger *slog.Logger) *ExportsHandler {
	return &ExportsHandler{
		logger: logger.With(slog.String("handler", "exports")),
	}
}

// Routes returns the router for the /api/v1/exports group.
func (h *ExportsHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/{id}", h.Get)
	return r
}

// Get handles GET /api/v1/exports/{id}.
func (h *ExportsHandler) Get(w http.ResponseWriter, r *http.Request) {
	exportID := chi.URLParam(r, "id")
	h.logger.InfoContext(r.Context(), "export retrieval requested",
		slog.String("export_id", exportID))
	render.JSON(w, r, stubFor("Get export", "export_id", exportID))
}
