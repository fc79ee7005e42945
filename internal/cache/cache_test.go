// Registhor - Training Registration and Offering Analytics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/registhor

package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/registhor/internal/metrics"
)

func TestCacheBasicOperations(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := New(time.Minute)
	defer c.Close()

	c.Set(ctx, "key1", []byte("value1"))
	value, exists := c.Get(ctx, "key1")
	if !exists {
		t.Fatal("Expected key1 to exist")
	}
	if string(value) != "value1" {
		t.Errorf("Expected value1, got %q", value)
	}

	if _, exists = c.Get(ctx, "key2"); exists {
		t.Error("Expected key2 to not exist")
	}
}

func TestCacheExpiration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := New(100 * time.Millisecond)
	defer c.Close()

	c.Set(ctx, "key1", []byte("value1"))
	if _, exists := c.Get(ctx, "key1"); !exists {
		t.Error("Expected key1 to exist immediately after set")
	}

	time.Sleep(150 * time.Millisecond)

	if _, exists := c.Get(ctx, "key1"); exists {
		t.Error("Expected key1 to be expired")
	}
}

func TestCacheClear(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := New(time.Minute)
	defer c.Close()

	for _, k := range []string{"a", "b", "c"} {
		c.Set(ctx, k, []byte(k))
	}
	if err := c.Clear(ctx); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	for _, k := range []string{"a", "b", "c"} {
		if _, exists := c.Get(ctx, k); exists {
			t.Errorf("Expected %s to be cleared", k)
		}
	}
}

func TestCacheCleanupRemovesExpired(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := New(time.Minute)
	defer c.Close()

	c.setWithTTL("short", []byte("x"), time.Millisecond)
	c.Set(ctx, "long", []byte("y"))
	time.Sleep(5 * time.Millisecond)

	if evicted := c.cleanup(); evicted != 1 {
		t.Errorf("cleanup() evicted %d, want 1", evicted)
	}
	if _, ok := c.Get(ctx, "long"); !ok {
		t.Error("unexpired entry was swept")
	}
}

// Runs serially: it reads the package-level counters.
func TestCacheMetrics(t *testing.T) {
	ctx := context.Background()
	c := New(time.Minute)
	defer c.Close()

	hits := metrics.CacheRequests.WithLabelValues(BackendMemory, "hit")
	misses := metrics.CacheRequests.WithLabelValues(BackendMemory, "miss")
	hitsBefore, missesBefore := testutil.ToFloat64(hits), testutil.ToFloat64(misses)
	evictionsBefore := testutil.ToFloat64(metrics.CacheEvictions)

	c.Get(ctx, "missing")
	c.Set(ctx, "k1", []byte("v"))
	c.Set(ctx, "k2", []byte("v"))
	c.Get(ctx, "k1")
	c.Get(ctx, "k1")

	if got := testutil.ToFloat64(hits) - hitsBefore; got != 2 {
		t.Errorf("hit delta = %v, want 2", got)
	}
	if got := testutil.ToFloat64(misses) - missesBefore; got != 1 {
		t.Errorf("miss delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(metrics.CacheEntries); got != 2 {
		t.Errorf("entries = %v, want 2", got)
	}

	if err := c.Clear(ctx); err != nil {
		t.Fatal(err)
	}
	if got := testutil.ToFloat64(metrics.CacheEntries); got != 0 {
		t.Errorf("entries after Clear = %v, want 0", got)
	}
	if got := testutil.ToFloat64(metrics.CacheEvictions) - evictionsBefore; got != 2 {
		t.Errorf("eviction delta = %v, want 2", got)
	}
}

func TestCacheConcurrentAccess(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := New(time.Minute)
	defer c.Close()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := fmt.Sprintf("key%d", n%5)
			c.Set(ctx, key, []byte(key))
			c.Get(ctx, key)
		}(i)
	}
	wg.Wait()
}

func TestCacheCloseIdempotent(t *testing.T) {
	t.Parallel()
	c := New(time.Minute)
	if err := c.Close(); err != nil {
		t.Fatal(err)
	}
	if err := c.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestGenerateKey(t *testing.T) {
	t.Parallel()

	a := GenerateKey("offerings", map[string]string{"lang": "en", "date_1": "2024-01-01"})
	b := GenerateKey("offerings", map[string]string{"date_1": "2024-01-01", "lang": "en"})
	if a != b {
		t.Errorf("map key order changed the cache key: %s vs %s", a, b)
	}

	c := GenerateKey("offerings", map[string]string{"lang": "fr", "date_1": "2024-01-01"})
	if a == c {
		t.Error("different params produced the same key")
	}
	if d := GenerateKey("registrations", map[string]string{"lang": "en", "date_1": "2024-01-01"}); d == a {
		t.Error("different methods produced the same key")
	}
}

func TestNewStore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		backend string
		want    string
		wantErr bool
	}{
		{"default", "", BackendMemory, false},
		{"memory", "memory", BackendMemory, false},
		{"redis", "redis", BackendRedis, false},
		{"unknown", "memcached", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s, err := NewStore(Config{Backend: tt.backend, RedisAddr: "127.0.0.1:1"})
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewStore() error = %v", err)
			}
			defer s.Close()
			if s.Backend() != tt.want {
				t.Errorf("Backend() = %q, want %q", s.Backend(), tt.want)
			}
		})
	}
}

func TestRedisCache_UnreachableIsMiss(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	r := NewRedis(Config{RedisAddr: "127.0.0.1:1", TTL: time.Minute, KeyPrefix: "test:"})
	defer r.Close()

	r.Set(ctx, "k", []byte("v"))
	if _, ok := r.Get(ctx, "k"); ok {
		t.Error("expected miss from unreachable redis")
	}
	if err := r.Ping(ctx); err == nil {
		t.Error("expected ping error from unreachable redis")
	}
	if r.key("k") != "test:k" {
		t.Errorf("key() = %q, want test:k", r.key("k"))
	}
}
