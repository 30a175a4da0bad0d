// Package cache wraps the Redis client used as the cache store.
package cache

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-redis/redis/v8"

	"ariaforge/internal/config"
)

// Client is a thin wrapper around the Redis client. The connection is
// established lazily on first use; Ping reports actual connectivity.
type Client struct {
	rdb    *redis.Client
	logger *slog.Logger
}

// New creates a cache client from the configured store URL.
func New(cfg config.CacheConfig, logger *slog.Logger) (*Client, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid cache store URL: %w", err)
	}

	return &Client{
		rdb:    redis.NewClient(opts),
		logger: logger.With(slog.String("component", "cache")),
	}, nil
}

// Ping verifies connectivity to the cache store.
func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Close releases the client's connection resources.
func (c *Client) Close() error {
	return c.rdb.Close()
}
