// server/internal/socket/hub.go
package socket

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// Event is one entry on the live feed: an order was created or closed, or
// an asset was retired. Open dashboards refresh on these instead of polling.
type Event struct {
	Tipo    string      `json:"tipo"`
	Payload interface{} `json:"payload,omitempty"`
}

const (
	EventOrderCreated = "orden_creada"
	EventOrderClosed  = "orden_cerrada"
	EventAssetRetired = "activo_baja"
)

// Hub tracks connected clients, keyed by user id.
type Hub struct {
	clients map[string]*websocket.Conn
	mu      sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*websocket.Conn),
	}
}

// Register adds a client connection. A reconnect replaces the old one.
func (h *Hub) Register(userID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[userID] = conn
	log.Printf("WebSocket client registered: %s", userID)
}

// Unregister removes a client connection.
func (h *Hub) Unregister(userID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[userID]; ok {
		delete(h.clients, userID)
		log.Printf("WebSocket client unregistered: %s", userID)
	}
}

// Broadcast sends an event to every connected client. Send failures only
// log; a stale connection is cleaned up when its read loop exits.
//
// Broadcast takes the write lock: gorilla connections support only one
// concurrent writer, so concurrent broadcasts must not interleave writes on
// the same connection.
func (h *Hub) Broadcast(event Event) {
	message, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal event %q: %v", event.Tipo, err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for userID, conn := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
			log.Printf("Failed to send event to %s: %v", userID, err)
		}
	}
}
