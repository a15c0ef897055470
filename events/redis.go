package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"
)

const DefaultChannel = "qa:events"

// RedisRelay fans events out through a Redis channel so every server
// instance delivers them to its own Hub, including the instance that
// published.
type RedisRelay struct {
	client  *redis.Client
	channel string
	hub     *Hub
}

func NewRedisRelay(client *redis.Client, channel string, hub *Hub) *RedisRelay {
	if channel == "" {
		channel = DefaultChannel
	}
	return &RedisRelay{client: client, channel: channel, hub: hub}
}

func (r *RedisRelay) Publish(ctx context.Context, ev Event) error {
	frame, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	if err := r.client.Publish(ctx, r.channel, frame).Err(); err != nil {
		return fmt.Errorf("publish %s: %w", ev.Type, err)
	}
	return nil
}

// Run forwards channel messages to the hub until ctx is done.
func (r *RedisRelay) Run(ctx context.Context) error {
	sub := r.client.Subscribe(ctx, r.channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe %s: %w", r.channel, err)
	}
	log.Printf("events: relaying redis channel %q", r.channel)

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			if !json.Valid([]byte(msg.Payload)) {
				log.Printf("events: skipping malformed frame on %q", r.channel)
				continue
			}
			_ = r.hub.Broadcast([]byte(msg.Payload))
		}
	}
}
