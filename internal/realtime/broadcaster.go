package realtime

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/insureline/helpdesk/internal/events"
)

// Broadcaster pushes an event toward every connected client. The
// notification bridge depends on this interface, not on a transport,
// so a targeted-delivery implementation can replace the broadcast one
// without touching the lifecycle engine.
type Broadcaster interface {
	Broadcast(ctx context.Context, event events.Event) error
}

// RedisBroadcaster publishes events on a Redis channel so the clients
// of every running instance receive them, and pumps the subscription
// into the local hub.
type RedisBroadcaster struct {
	client  *redis.Client
	channel string
	hub     *Hub
	logger  *zap.Logger
}

// NewRedisBroadcaster wires the broadcaster to a hub and a channel.
func NewRedisBroadcaster(client *redis.Client, channel string, hub *Hub, logger *zap.Logger) *RedisBroadcaster {
	return &RedisBroadcaster{client: client, channel: channel, hub: hub, logger: logger}
}

// Broadcast serializes the event and publishes it on the channel.
func (b *RedisBroadcaster) Broadcast(ctx context.Context, event events.Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}
	if b.client == nil {
		// No Redis configured: deliver to local clients only.
		b.hub.Broadcast(body)
		return nil
	}
	return b.client.Publish(ctx, b.channel, body).Err()
}

// Run subscribes to the channel and forwards every message to the
// local hub until ctx is cancelled. Intended to run in its own
// goroutine.
func (b *RedisBroadcaster) Run(ctx context.Context) {
	if b.client == nil {
		return
	}
	sub := b.client.Subscribe(ctx, b.channel)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			b.hub.Broadcast([]byte(msg.Payload))
		}
	}
}
