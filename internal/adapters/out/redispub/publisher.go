// Package redispub publishes real-time events over Redis pub/sub. Each topic
// maps to one Redis channel; the gateway processes that hold the websocket
// connections subscribe to the channels of their connected users and relay
// events downstream. Delivery is at-most-once: a message published while a
// subscriber is away is gone.
package redispub

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
)

// envelope is the wire format of one published event.
type envelope struct {
	Event   string `json:"event"`
	Payload any    `json:"payload"`
}

// RedisEventPublisher implements EventPublisher over Redis pub/sub.
type RedisEventPublisher struct {
	rdb *redis.Client
}

// NewRedisEventPublisher creates a publisher over the given Redis client.
func NewRedisEventPublisher(rdb *redis.Client) *RedisEventPublisher {
	return &RedisEventPublisher{rdb: rdb}
}

// Publish sends one event to every current subscriber of the topic.
func (p *RedisEventPublisher) Publish(ctx context.Context, topic, event string, payload any) error {
	raw, err := json.Marshal(envelope{
		Event:   event,
		Payload: payload,
	})
	if err != nil {
		return err
	}

	return p.rdb.Publish(ctx, topic, raw).Err()
}
