package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

// AuthHandler serves the /api/v1/auth endpoint group. All operations
// are scaffolding placeholders pending the real authentication flow.
type AuthHandler struct {
	logger *slog.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		logger: logger.With(slog.String("handler", "auth")),
	}
}

// Routes returns the router for the /api/v1/auth group.
func (h *AuthHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/login", h.Login)
	r.Post("/refresh", h.Refresh)
	r.Post("/logout", h.Logout)
	return r
}

// Login handles POST /api/v1/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	h.logger.InfoContext(r.Context(), "login requested")
	render.JSON(w, r, stub("Login"))
}

// Refresh handles POST /api/v1/auth/refresh.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	h.logger.InfoContext(r.Context(), "token refresh requested")
	render.JSON(w, r, stub("Refresh token"))
}

// Logout handles POST /api/v1/auth/logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.logger.InfoContext(r.Context(), "logout requested")
	render.JSON(w, r, stub("Logout"))
}
