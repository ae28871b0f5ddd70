package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/avelsk/bankledger/pkg/config"
	"github.com/redis/go-redis/v9"
)

// RedisCache implements cache.Cache over a Redis instance. All keys carry a
// configured prefix so several deployments can share one Redis.
type RedisCache struct {
	client *redis.Client
	prefix string
	logger *slog.Logger
}

// NewRedisCache creates a RedisCache from configuration.
func NewRedisCache(cfg config.Redis, logger *slog.Logger) *RedisCache {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return &RedisCache{client: client, prefix: cfg.Prefix, logger: logger}
}

func (r *RedisCache) key(key string) string {
	return r.prefix + key
}

// Get returns the cached value, or (nil, nil) on a miss.
func (r *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		r.logger.Debug("redis cache miss", "key", key)
		return nil, nil
	}
	if err != nil {
		r.logger.Error("redis cache get error", "key", key, "error", err)
		return nil, err
	}
	return val, nil
}

// Set stores value under key for ttl.
func (r *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return r.client.Set(ctx, r.key(key), value, ttl).Err()
}

// DeletePrefix evicts every key sharing the given prefix, scanning in
// batches to avoid blocking Redis.
func (r *RedisCache) DeletePrefix(ctx context.Context, prefix string) error {
	iter := r.client.Scan(ctx, 0, r.key(prefix)+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
		if len(keys) >= 100 {
			if err := r.client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
			keys = keys[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) > 0 {
		return r.client.Del(ctx, keys...).Err()
	}
	return nil
}
