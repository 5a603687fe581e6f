package realtime

import (
	"sync"

	"go.uber.org/zap"
)

// Client is a live realtime subscriber. The websocket transport
// implements it; tests substitute their own.
type Client interface {
	Send(message []byte) error
	Close() error
}

// Hub keeps the transient registry of connected clients. Delivery is
// fire-and-forget, at-most-once: a client that is disconnected at
// publish time never receives the event and re-fetches on reconnect.
type Hub struct {
	mu      sync.RWMutex
	clients map[Client]struct{}
	logger  *zap.Logger
}

// NewHub creates an empty hub.
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients: make(map[Client]struct{}),
		logger:  logger,
	}
}

// Register adds a client to the registry.
func (h *Hub) Register(client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client] = struct{}{}
}

// Unregister removes a client and closes it.
func (h *Hub) Unregister(client Client) {
	h.mu.Lock()
	_, ok := h.clients[client]
	delete(h.clients, client)
	h.mu.Unlock()
	if ok {
		_ = client.Close()
	}
}

// Broadcast sends the message to every connected client. Failed sends
// evict the client; they are not retried.
func (h *Hub) Broadcast(message []byte) {
	h.mu.RLock()
	targets := make([]Client, 0, len(h.clients))
	for client := range h.clients {
		targets = append(targets, client)
	}
	h.mu.RUnlock()

	for _, client := range targets {
		if err := client.Send(message); err != nil {
			h.logger.Debug("dropping unreachable realtime client", zap.Error(err))
			h.Unregister(client)
		}
	}
}

// Count returns the number of connected clients.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
