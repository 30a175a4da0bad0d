package http

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	gorilla "github.com/gorilla/websocket"

	"ariaforge/internal/middleware"
	"ariaforge/internal/websocket"
)

// SessionsHandler serves the /api/v1/sessions endpoint group,
// including the real-time updates WebSocket endpoint.
type SessionsHandler struct {
	hub      *websocket.Hub
	upgrader gorilla.Upgrader
	logger   *slog.Logger
}

// NewSessionsHandler creates a new sessions handler. Upgrade requests
// are accepted only from the configured origins, or from any origin
// when the list contains "*".
func NewSessionsHandler(hub *websocket.Hub, allowedOrigins []string, logger *slog.Logger) *SessionsHandler {
	h := &SessionsHandler{
		hub:    hub,
		logger: logger.With(slog.String("handler", "sessions")),
	}
	h.upgrader = gorilla.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     originChecker(allowedOrigins),
	}
	return h
}

func originChecker(allowed []string) func(r *http.Request) bool {
	allowAll := false
	origins := make(map[string]struct{}, len(allowed))
	for _, origin := range allowed {
		if origin == "*" {
			allowAll = true
		}
		origins[strings.ToLower(origin)] = struct{}{}
	}

	return func(r *http.Request) bool {
		if allowAll {
			return true
		}
		origin := r.Header.Get("Origin")
		if origin == "" {
			// Same-origin clients and non-browser agents omit the header.
			return true
		}
		_, ok := origins[strings.ToLower(origin)]
		return ok
	}
}

// Routes returns the router for the /api/v1/sessions group.
func (h *SessionsHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/{id}", h.Get)
	r.Get("/{id}/ws", h.WebSocket)
	return r
}

// Get handles GET /api/v1/sessions/{id}.
func (h *SessionsHandler) Get(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	h.logger.InfoContext(r.Context(), "session retrieval requested",
		slog.String("session_id", sessionID))
	render.JSON(w, r, stubFor("Get session", "session_id", sessionID))
}

// WebSocket handles GET /api/v1/sessions/{id}/ws. The connection is
// registered with the hub and kept alive on heartbeats, but no domain
// protocol is spoken yet. Clients receive a connection acknowledgment
// and any broadcasts addressed to their session.
func (h *SessionsHandler) WebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error response.
		h.logger.ErrorContext(r.Context(), "websocket upgrade failed",
			slog.String("session_id", sessionID),
			slog.String("error", err.Error()))
		return
	}

	traceID := middleware.GetRequestID(r.Context())
	client := websocket.NewClient(h.hub, websocket.NewConnectionWrapper(conn), sessionID, traceID, h.logger)
	h.hub.Register(client)

	h.logger.InfoContext(r.Context(), "websocket client connected",
		slog.String("session_id", sessionID),
		slog.String("client_id", client.ID()))

	go client.WritePump()
	go client.ReadPump()
}
