package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// EventsHandler pushes dispatched gestures to WebSocket clients. Unlike the
// camera stream this is push driven: the pipeline calls Broadcast when a
// gesture fires and idle connections carry no traffic.
type EventsHandler struct {
	clients map[*websocket.Conn]bool
	mu      sync.RWMutex
}

// NewEventsHandler creates a new EventsHandler.
func NewEventsHandler() *EventsHandler {
	return &EventsHandler{
		clients: make(map[*websocket.Conn]bool),
	}
}

// ServeHTTP handles WebSocket upgrade requests.
func (h *EventsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
	}()

	// Keep connection alive by reading messages
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *EventsHandler) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast sends a dispatched gesture to all connected clients. Clients
// whose write fails are dropped immediately rather than lingering until
// their read loop notices the close.
func (h *EventsHandler) Broadcast(gesture, phrase string) {
	msg, err := json.Marshal(map[string]any{
		"type":      "phrase",
		"gesture":   gesture,
		"phrase":    phrase,
		"timestamp": time.Now().UnixMilli(),
	})
	if err != nil {
		return
	}

	var dead []*websocket.Conn

	h.mu.RLock()
	for conn := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			dead = append(dead, conn)
		}
	}
	h.mu.RUnlock()

	if len(dead) == 0 {
		return
	}

	h.mu.Lock()
	for _, conn := range dead {
		if h.clients[conn] {
			delete(h.clients, conn)
			conn.Close()
		}
	}
	h.mu.Unlock()
}
