// Registhor - Training Registration and Offering Analytics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/registhor

package cache

import (
	"context"
	"fmt"
	"time"
)

// Store is the response cache used by the API layer. Values are encoded
// response bodies so memory and Redis backends behave the same.
//
// Get never returns an error: a backend failure is reported as a miss and
// the caller falls through to the database.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte)
	Clear(ctx context.Context) error
	Backend() string
	Close() error
}

// Backend names accepted by NewStore.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Config holds configuration for creating a Store.
type Config struct {
	Backend       string
	TTL           time.Duration
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	KeyPrefix     string
}

// NewStore creates the backend named in cfg. An empty backend selects the
// in-memory cache.
func NewStore(cfg Config) (Store, error) {
	if cfg.TTL <= 0 {
		cfg.TTL = 10 * time.Minute
	}

	switch cfg.Backend {
	case "", BackendMemory:
		return New(cfg.TTL), nil
	case BackendRedis:
		return NewRedis(cfg), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}

// Verify interface implementations at compile time
var (
	_ Store = (*Cache)(nil)
	_ Store = (*RedisCache)(nil)
)
