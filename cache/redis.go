// Package cache keeps metadata lookups (sites, job types, countries) between runs.
// Only static service metadata is cached; search results and session state never are.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"jobspy-client/models"
)

const keyPrefix = "jobspy:meta:"

// MetadataCache stores option lists by name.
type MetadataCache interface {
	Get(ctx context.Context, name string) ([]models.Option, bool, error)
	Set(ctx context.Context, name string, opts []models.Option) error
}

// NewRedisClient parses redisURL and verifies connectivity.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis.ParseURL(%q): %w", redisURL, err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return client, nil
}

// RedisCache is a MetadataCache backed by Redis string keys with a TTL.
type RedisCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisCache wraps rdb. A non-positive ttl stores entries without expiry.
func NewRedisCache(rdb *redis.Client, ttl time.Duration) *RedisCache {
	if ttl < 0 {
		ttl = 0
	}
	return &RedisCache{rdb: rdb, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context, name string) ([]models.Option, bool, error) {
	raw, err := c.rdb.Get(ctx, keyPrefix+name).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get %s: %w", name, err)
	}

	var opts []models.Option
	if err := json.Unmarshal(raw, &opts); err != nil {
		return nil, false, fmt.Errorf("cache decode %s: %w", name, err)
	}
	return opts, true, nil
}

func (c *RedisCache) Set(ctx context.Context, name string, opts []models.Option) error {
	raw, err := json.Marshal(opts)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", name, err)
	}
	if err := c.rdb.Set(ctx, keyPrefix+name, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", name, err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (c *RedisCache) Close() error {
	return c.rdb.Close()
}

// Nop never hits and discards writes.
type Nop struct{}

func (Nop) Get(context.Context, string) ([]models.Option, bool, error) { return nil, false, nil }

func (Nop) Set(context.Context, string, []models.Option) error { return nil }
