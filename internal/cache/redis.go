// Registhor - Training Registration and Offering Analytics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/registhor

package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/tomtom215/registhor/internal/logging"
	"github.com/tomtom215/registhor/internal/metrics"
)

// opTimeout bounds a single Redis round trip so a dead cache cannot stall
// a request that could be answered from the database.
const opTimeout = 250 * time.Millisecond

// RedisCache is a Store shared between API replicas. All keys carry the
// configured prefix so Clear never touches foreign keys.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// NewRedis creates a Redis-backed store. The connection is lazy; an
// unreachable server shows up as cache misses, not a startup failure.
func NewRedis(cfg Config) *RedisCache {
	return &RedisCache{
		client: redis.NewClient(&redis.Options{
			Addr:        cfg.RedisAddr,
			Password:    cfg.RedisPassword,
			DB:          cfg.RedisDB,
			DialTimeout: time.Second,
			MaxRetries:  1,
		}),
		ttl:    cfg.TTL,
		prefix: cfg.KeyPrefix,
	}
}

// Backend implements Store.
func (r *RedisCache) Backend() string { return BackendRedis }

func (r *RedisCache) key(k string) string { return r.prefix + k }

// Get implements Store.
func (r *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	data, err := r.client.Get(ctx, r.key(key)).Bytes()
	switch {
	case err == nil:
		metrics.RecordCacheLookup(BackendRedis, "hit")
		return data, true
	case errors.Is(err, redis.Nil):
		metrics.RecordCacheLookup(BackendRedis, "miss")
	default:
		metrics.RecordCacheLookup(BackendRedis, "error")
		logging.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("redis get failed")
	}
	return nil, false
}

// Set implements Store.
func (r *RedisCache) Set(ctx context.Context, key string, value []byte) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if err := r.client.Set(ctx, r.key(key), value, r.ttl).Err(); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("redis set failed")
	}
}

// Clear deletes every key under the prefix.
func (r *RedisCache) Clear(ctx context.Context) error {
	iter := r.client.Scan(ctx, 0, r.prefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scan cache keys: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("delete cache keys: %w", err)
	}
	return nil
}

// Ping reports whether the Redis server is reachable.
func (r *RedisCache) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close implements Store.
func (r *RedisCache) Close() error {
	return r.client.Close()
}
