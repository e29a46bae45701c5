package board

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// Event channels published on application activity. Consumers (notification
// workers, SSE forwarders) subscribe via Redis pub/sub.
const (
	EventApplicationSubmitted = "EVENT_APPLICATION_SUBMITTED"
	EventApplicationStatus    = "EVENT_APPLICATION_STATUS"
)

// Publisher emits domain events. Publishing is best-effort: a failed publish
// is logged and never fails the operation that triggered it.
type Publisher interface {
	Publish(ctx context.Context, channel string, payload any)
}

// NewRedisPublisher returns a Publisher backed by Redis pub/sub.
func NewRedisPublisher(rdb *redis.Client) Publisher {
	return &redisPublisher{rdb: rdb}
}

type redisPublisher struct {
	rdb *redis.Client
}

func (p *redisPublisher) Publish(ctx context.Context, channel string, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		slog.Warn("event marshal failed", "channel", channel, "err", err)
		return
	}
	if err := p.rdb.Publish(ctx, channel, body).Err(); err != nil {
		slog.Warn("event publish failed", "channel", channel, "err", err)
	}
}

// NopPublisher discards every event. Used in tests and when Redis is not
// configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, any) {}
