package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

// ProjectsHandler serves the /api/v1/projects endpoint group.
type ProjectsHandler struct {
	logger *slog.Logger
}

// NewProjectsHandler creates a new projects handler.
func NewProjectsHandler(logger *slog.Logger) *ProjectsHandler {
	return &ProjectsHandler{
		logger: logger.With(slog.String("handler", "projects")),
	}
}

// Routes returns the router for the /api/v1/projects group.
func (h *ProjectsHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	return r
}

// List handles GET /api/v1/projects/.
func (h *ProjectsHandler) List(w http.ResponseWriter, r *http.Request) {
	h.logger.InfoContext(r.Context(), "project list requested")
	render.JSON(w, r, stub("List projects"))
}

// Create handles POST /api/v1/projects/.
func (h *ProjectsHandler) Create(w http.ResponseWriter, r *http.Request) {
	h.logger.InfoContext(r.Context(), "project creation requested")
	render.JSON(w, r, stub("Create project"))
}

// Get handles GET /api/v1/projects/{id}.
func (h *ProjectsHandler) Get(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "id")
	h.logger.InfoContext(r.Context(), "project retrieval requested",
		slog.String("project_id", projectID))
	render.JSON(w, r, stubFor("Get project", "project_id", projectID))
}

// Update handles PUT /api/v1/projects/{id}.
func (h *ProjectsHandler) Update(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "id")
	h.logger.InfoContext(r.Context(), "project update requested",
		slog.String("project_id", projectID))
	render.JSON(w, r, stubFor("Update project", "project_id", projectID))
}

// Delete handles DELETE /api/v1/projects/{id}.
func (h *ProjectsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "id")
	h.logger.InfoContext(r.Context(), "project deletion requested",
		slog.String("project_id", projectID))
	render.JSON(w, r, stubFor("Delete project", "project_id", projectID))
}
