package handlers

import (
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"github.com/insureline/helpdesk/internal/realtime"
)

// wsClient adapts a websocket connection to the hub's client
// interface. Writes are serialized because the hub may broadcast from
// multiple goroutines.
type wsClient struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *wsClient) Send(message []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, message)
}

func (c *wsClient) Close() error {
	return c.conn.Close()
}

// WSHandler upgrades authenticated callers onto the broadcast channel.
type WSHandler struct {
	hub *realtime.Hub
}

// NewWSHandler constructs the handler.
func NewWSHandler(hub *realtime.Hub) *WSHandler {
	return &WSHandler{hub: hub}
}

// Upgrade gates non-websocket requests off the endpoint.
func (h *WSHandler) Upgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// Subscribe keeps the connection registered until the client goes
// away. The server only broadcasts; inbound frames are drained and
// discarded.
func (h *WSHandler) Subscribe() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		client := &wsClient{conn: conn}
		h.hub.Register(client)
		defer h.hub.Unregister(client)

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})
}
