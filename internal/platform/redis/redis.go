// Package redis provides the Redis-backed pieces of the platform layer.
// Redis holds short-lived state that does not belong in PostgreSQL, currently
// the set of revoked JWT IDs consulted by the authentication middleware.
package redis

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/openshelf/libra-api/internal/config"
)

// NewClient creates a Redis client from the given configuration and verifies
// the connection with a ping before returning it.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return client, nil
}
