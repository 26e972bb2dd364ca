package realtime

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"helpdesk/internal/shared/logger"
)

// RedisSource reads push frames published on a Redis channel.
type RedisSource struct {
	client  *redis.Client
	channel string
	logger  logger.Interface
}

func NewRedisSource(client *redis.Client, channel string, log logger.Interface) *RedisSource {
	return &RedisSource{
		client:  client,
		channel: channel,
		logger:  log,
	}
}

func (s *RedisSource) Name() string {
	return "redis"
}

func (s *RedisSource) Run(ctx context.Context, onConnected func(), deliver func([]byte)) error {
	pubsub := s.client.Subscribe(ctx, s.channel)
	defer pubsub.Close()

	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to channel %s: %w", s.channel, err)
	}

	s.logger.Infow("subscribed to comment channel", "channel", s.channel)
	if onConnected != nil {
		onConnected()
	}

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case msg, ok := <-ch:
			if !ok {
				return fmt.Errorf("channel %s closed", s.channel)
			}
			deliver([]byte(msg.Payload))
		}
	}
}
