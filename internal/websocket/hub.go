// Package websocket streams practice recorder snapshots to the browser
package websocket

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/gungunaswani/GroomifyAI/internal/services/practice"
)

// MessageSnapshot is the only message type on the stream
const MessageSnapshot = "snapshot"

// Message is one frame pushed to a client
type Message struct {
	Type     string            `json:"type"`
	Snapshot practice.Snapshot `json:"snapshot"`
}

// NewMessage wraps a recorder snapshot
func NewMessage(snap practice.Snapshot) Message {
	return Message{Type: MessageSnapshot, Snapshot: snap}
}

// Hub tracks connected clients per account and fans snapshots out to them
type Hub struct {
	mu      sync.RWMutex
	clients map[uuid.UUID]map[*Client]struct{}
	logger  *slog.Logger
}

// NewHub creates a new Hub.
func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		clients: make(map[uuid.UUID]map[*Client]struct{}),
		logger:  logger,
	}
}

// Register adds a client to the hub.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	set, ok := h.clients[c.accountID]
	if !ok {
		set = make(map[*Client]struct{})
		h.clients[c.accountID] = set
	}
	set[c] = struct{}{}
	h.mu.Unlock()
}

// Unregister removes a client from the hub and closes its send channel.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if set, ok := h.clients[c.accountID]; ok {
		if _, ok := set[c]; ok {
			delete(set, c)
			close(c.send)
		}
		if len(set) == 0 {
			delete(h.clients, c.accountID)
		}
	}
	h.mu.Unlock()
}

// Publish sends a snapshot to every client of the account. It never blocks;
// a client with a full buffer misses the frame and catches up on the next.
func (h *Hub) Publish(accountID uuid.UUID, snap practice.Snapshot) {
	data, err := json.Marshal(NewMessage(snap))
	if err != nil {
		h.logger.Error("marshal snapshot", "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients[accountID] {
		select {
		case c.send <- data:
		default:
		}
	}
}

// ClientCount returns the number of clients connected for an account.
func (h *Hub) ClientCount(accountID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[accountID])
}

var _ practice.Publisher = (*Hub)(nil)
