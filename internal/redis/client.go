// Package redis wraps the go-redis client behind the small surface the
// player repository needs, so tests can run against miniredis.
package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client is the subset of redis operations used by this service.
type Client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Ping(ctx context.Context) *redis.StatusCmd
	Close() error
}

// Options configures client behavior.
type Options struct {
	PoolSize     int
	MinIdleConns int
	MaxRetries   int
}

// NewClient creates a client for a single redis instance. Connection is
// lazy; call Ping to verify reachability.
func NewClient(endpoint string, opts *Options) (Client, error) {
	if endpoint == "" {
		return nil, errors.New("redis: endpoint is required")
	}
	if opts == nil {
		opts = &Options{}
	}
	return redis.NewClient(&redis.Options{
		Addr:         endpoint,
		PoolSize:     opts.PoolSize,
		MinIdleConns: opts.MinIdleConns,
		MaxRetries:   opts.MaxRetries,
	}), nil
}
