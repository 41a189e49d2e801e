// Package cache provides the Redis connection shared by the rate limiter.
package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gestao-consultoria/backend/config"
)

// NewRedisClient connects to Redis and verifies the connection.
// Password and DB from the config override the ones embedded in the URL when set.
func NewRedisClient(cfg *config.RedisConfig) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	if cfg.Password != "" {
		opts.Password = cfg.Password
	}
	if cfg.DB != 0 {
		opts.DB = cfg.DB
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	slog.Info("Redis connection established", "addr", opts.Addr, "db", opts.DB)
	return client, nil
}

// HealthCheck returns a checker that pings client.
func HealthCheck(client redis.UniversalClient) func(ctx context.Context) bool {
	return func(ctx context.Context) bool {
		if err := client.Ping(ctx).Err(); err != nil {
			slog.Warn("Redis health check failed", "error", err)
			return false
		}
		return true
	}
}
