// Package websocket holds the real-time connection registry for
// collaboration sessions. The wire protocol for session updates is not
// designed yet; the hub accepts connections, acknowledges them, keeps
// them alive and fans out broadcasts, nothing more.
package websocket

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"ariaforge/internal/infrastructure"
)

// Message type constants.
const (
	TypeConnection = "connection"
	TypeSession    = "session_update"
	TypeError      = "error"
)

// Hub maintains the set of active clients and broadcasts messages to them.
type Hub struct {
	// Registered clients
	clients map[*Client]bool

	// Inbound messages destined for all clients
	broadcast chan []byte

	// Register requests from the clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	mu     sync.RWMutex
	logger *slog.Logger

	// Counters
	totalConnections int64
	messagesSent     int64

	quit    chan struct{}
	running bool
}

// NewHub creates a new Hub instance.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		broadcast:  make(chan []byte, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		logger:     logger.With(slog.String("component", "websocket.hub")),
		quit:       make(chan struct{}),
	}
}

// Start starts the hub's main loop.
func (h *Hub) Start() {
	h.mu.Lock()
	if h.running {
		h.mu.Unlock()
		return
	}
	h.running = true
	h.mu.Unlock()

	go h.Run()
}

// Run processes register, unregister and broadcast events until stopped.
func (h *Hub) Run() {
	for {
		select {
		case <-h.quit:
			h.logger.Info("hub shutting down")
			return

		case client := <-h.register:
			h.mu.Lock()
			if !h.running {
				h.mu.Unlock()
				client.conn.Close()
				continue
			}
			h.clients[client] = true
			count := len(h.clients)
			h.totalConnections++
			h.mu.Unlock()

			ctx := contextWithClientTrace(client)
			h.logger.InfoContext(ctx, "client registered",
				slog.Int("total_clients", count),
				slog.String("client_id", client.id),
				slog.String("session_id", client.sessionID),
				slog.String("remote_addr", client.remoteAddr))

			h.sendConnectionAck(ctx, client)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				count := len(h.clients)
				h.mu.Unlock()

				ctx := contextWithClientTrace(client)
				h.logger.InfoContext(ctx, "client unregistered",
					slog.Int("total_clients", count),
					slog.String("client_id", client.id),
					slog.Duration("connection_duration", time.Since(client.connectedAt)))
			} else {
				h.mu.Unlock()
			}

		case message := <-h.broadcast:
			h.fanOut(message, "")
		}
	}
}

// fanOut delivers message to all clients, or to the clients of one
// session when sessionID is non-empty. Slow clients are evicted.
// Sends happen under the read lock so a client's send channel can
// never be closed (Stop, unregister) between the membership check and
// the send.
func (h *Hub) fanOut(message []byte, sessionID string) {
	var slow []*Client
	sent := 0

	h.mu.RLock()
	for client := range h.clients {
		if sessionID != "" && client.sessionID != sessionID {
			continue
		}
		select {
		case client.send <- message:
			sent++
		default:
			slow = append(slow, client)
		}
	}
	h.mu.RUnlock()

	h.mu.Lock()
	h.messagesSent += int64(sent)
	for _, client := range slow {
		if _, ok := h.clients[client]; ok {
			delete(h.clients, client)
			close(client.send)
		}
	}
	h.mu.Unlock()

	for _, client := range slow {
		h.logger.WarnContext(contextWithClientTrace(client), "client send buffer full, disconnecting",
			slog.String("client_id", client.id))
	}

	if len(slow) > 0 {
		h.logger.Warn("some clients failed to receive broadcast",
			slog.Int("delivered", sent),
			slog.Int("dropped", len(slow)))
	}
}

// sendConnectionAck tells a newly connected client it is registered.
func (h *Hub) sendConnectionAck(ctx context.Context, client *Client) {
	ack := map[string]interface{}{
		"type": TypeConnection,
		"data": map[string]interface{}{
			"status":     "connected",
			"client_id":  client.id,
			"session_id": client.sessionID,
		},
		"timestamp": time.Now().Format(time.RFC3339),
	}

	jsonData, err := json.Marshal(ack)
	if err != nil {
		h.logger.ErrorContext(ctx, "error marshaling connection ack", slog.String("error", err.Error()))
		return
	}

	delivered := false
	h.mu.RLock()
	if _, ok := h.clients[client]; ok {
		select {
		case client.send <- jsonData:
			delivered = true
		default:
		}
	}
	h.mu.RUnlock()

	if !delivered {
		h.logger.WarnContext(ctx, "failed to send connection ack - client buffer full",
			slog.String("client_id", client.id))
	}
}

// Broadcast queues a message for delivery to all connected clients.
func (h *Hub) Broadcast(messageType string, data interface{}) {
	message := map[string]interface{}{
		"type":      messageType,
		"data":      data,
		"timestamp": time.Now().Format(time.RFC3339),
	}

	jsonData, err := json.Marshal(message)
	if err != nil {
		h.logger.Error("error marshaling broadcast message",
			slog.String("error", err.Error()),
			slog.String("message_type", messageType))
		return
	}

	select {
	case h.broadcast <- jsonData:
	case <-h.quit:
	}
}

// BroadcastToSession delivers a message to the clients of one session.
func (h *Hub) BroadcastToSession(sessionID, messageType string, data interface{}) {
	message := map[string]interface{}{
		"type":       messageType,
		"session_id": sessionID,
		"data":       data,
		"timestamp":  time.Now().Format(time.RFC3339),
	}

	jsonData, err := json.Marshal(message)
	if err != nil {
		h.logger.Error("error marshaling session message",
			slog.String("error", err.Error()),
			slog.String("session_id", sessionID))
		return
	}

	h.fanOut(jsonData, sessionID)
}

// Register adds a client to the hub. A registration racing shutdown
// closes the connection instead of blocking forever.
func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.quit:
		client.conn.Close()
	}
}

// Unregister removes a client from the hub. Safe to call after Stop.
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.quit:
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// SessionClientCount returns the number of clients attached to a session.
func (h *Hub) SessionClientCount(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	count := 0
	for client := range h.clients {
		if client.sessionID == sessionID {
			count++
		}
	}
	return count
}

// Stop gracefully stops the hub and closes all client connections.
func (h *Hub) Stop() {
	h.mu.Lock()
	if !h.running {
		h.mu.Unlock()
		return
	}
	h.running = false
	h.mu.Unlock()

	close(h.quit)

	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		close(client.send)
		delete(h.clients, client)
	}
}

func contextWithClientTrace(client *Client) context.Context {
	ctx := context.Background()
	if client.traceID != "" {
		ctx = infrastructure.WithTraceID(ctx, client.traceID)
	}
	return ctx
}
