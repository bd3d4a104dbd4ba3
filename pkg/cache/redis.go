package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisAddr is used when no address is configured.
const DefaultRedisAddr = "localhost:6379"

// RedisOptions configures [NewRedisCache].
type RedisOptions struct {
	Address  string
	Password string
	DB       int
	// Prefix is prepended to every key.
	Prefix string
	// Connect governs how the initial PING is retried.
	Connect Backoff
}

type RedisOption func(*RedisOptions)

func WithAddress(addr string) RedisOption {
	return func(o *RedisOptions) {
		if addr != "" {
			o.Address = addr
		}
	}
}

func WithPassword(pass string) RedisOption {
	return func(o *RedisOptions) { o.Password = pass }
}

func WithDB(db int) RedisOption {
	return func(o *RedisOptions) { o.DB = db }
}

// WithConnectBackoff replaces [DefaultBackoff] for the initial connection.
func WithConnectBackoff(b Backoff) RedisOption {
	return func(o *RedisOptions) { o.Connect = b }
}

func WithPrefix(prefix string) RedisOption {
	return func(o *RedisOptions) { o.Prefix = prefix }
}

// RedisCache stores entries in Redis with native key expiry.
type RedisCache struct {
	client *redis.Client
	prefix string
}

// NewRedisCache connects to Redis and verifies the connection with PING.
// Connection failures are retried with backoff before giving up.
func NewRedisCache(ctx context.Context, opts ...RedisOption) (*RedisCache, error) {
	o := RedisOptions{Address: DefaultRedisAddr, Prefix: "feedscope:", Connect: DefaultBackoff}
	for _, opt := range opts {
		opt(&o)
	}

	client := redis.NewClient(&redis.Options{
		Addr:     o.Address,
		Password: o.Password,
		DB:       o.DB,
	})

	err := o.Connect.Retry(ctx, func() error {
		return Retryable(client.Ping(ctx).Err())
	})
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("connect to redis at %s: %w", o.Address, err)
	}
	return &RedisCache{client: client, prefix: o.Prefix}, nil
}

// Get implements [Cache]. A missing key is a miss, not an error.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Set implements [Cache]. A non-positive ttl never expires.
func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	return c.client.Set(ctx, c.prefix+key, data, ttl).Err()
}

// Delete implements [Cache].
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, c.prefix+key).Err()
}

// Clear deletes every key under the cache prefix and returns how many were removed.
func (c *RedisCache) Clear(ctx context.Context) (int, error) {
	removed := 0
	iter := c.client.Scan(ctx, 0, c.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, iter.Err()
}

// Close closes the Redis client.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

var _ Cache = (*RedisCache)(nil)
