package simulation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	redisKeyPrefix = "quantum:simulation:"
	redisScanBatch = 100
)

// RedisCache stores JSON-encoded results so they survive restarts and are
// shared between server instances.
type RedisCache struct {
	client *redis.Client
	logger *slog.Logger
}

var _ Cache = (*RedisCache)(nil)

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{
		client: client,
		logger: slog.With("component", "redis_cache"),
	}
}

func (c *RedisCache) Get(ctx context.Context, key string) (*Result, bool, error) {
	data, err := c.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}

	var result Result
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, false, fmt.Errorf("decode cached result: %w", err)
	}
	return &result, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, result *Result, ttl time.Duration) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}

	if ttl < 0 {
		ttl = 0
	}
	if err := c.client.Set(ctx, redisKeyPrefix+key, data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}

	c.logger.Debug("Cached simulation result", "key", key, "size_bytes", len(data), "ttl", ttl)
	return nil
}

// Purge deletes every cached result under the simulation key prefix.
func (c *RedisCache) Purge(ctx context.Context) (int, error) {
	var (
		keys    []string
		removed int
	)

	flush := func() error {
		if len(keys) == 0 {
			return nil
		}
		n, err := c.client.Del(ctx, keys...).Result()
		if err != nil {
			return fmt.Errorf("redis del: %w", err)
		}
		removed += int(n)
		keys = keys[:0]
		return nil
	}

	iter := c.client.Scan(ctx, 0, redisKeyPrefix+"*", redisScanBatch).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
		if len(keys) >= redisScanBatch {
			if err := flush(); err != nil {
				return removed, err
			}
		}
	}
	if err := iter.Err(); err != nil {
		return removed, fmt.Errorf("redis scan: %w", err)
	}

	if err := flush(); err != nil {
		return removed, err
	}
	return removed, nil
}
