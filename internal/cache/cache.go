package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client wraps redis.Client but fails safe by swallowing connectivity errors.
// A nil *Client is valid and behaves as an always-empty cache.
type Client struct {
	client *redis.Client
}

// New creates a new Redis client. An empty addr disables caching and returns nil.
func New(addr, password string, db int) *Client {
	if addr == "" {
		return nil
	}
	opts := &redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	}
	return &Client{client: redis.NewClient(opts)}
}

// Enabled reports whether a Redis backend is configured.
func (c *Client) Enabled() bool {
	return c != nil && c.client != nil
}

// Get returns value or nil if missing or redis unavailable.
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	if !c.Enabled() {
		return nil, nil
	}
	res, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		// fail safe: behave like cache miss
		return nil, nil
	}
	return res, nil
}

// Set stores value with TTL, ignoring redis errors.
func (c *Client) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if !c.Enabled() {
		return nil
	}
	_ = c.client.Set(ctx, key, value, ttl).Err()
	return nil
}

// Delete removes a key, ignoring redis errors.
func (c *Client) Delete(ctx context.Context, key string) error {
	if !c.Enabled() {
		return nil
	}
	_ = c.client.Del(ctx, key).Err()
	return nil
}

// Ping reports whether Redis is reachable. A disabled cache is always healthy.
func (c *Client) Ping(ctx context.Context) error {
	if !c.Enabled() {
		return nil
	}
	return c.client.Ping(ctx).Err()
}

// Close releases the connection pool.
func (c *Client) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.client.Close()
}
