// Registhor - Training Registration and Offering Analytics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/registhor

package cache

import (
	"context"
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/registhor/internal/metrics"
)

// Entry represents a cached item with expiration
type Entry struct {
	Data      []byte
	ExpiresAt time.Time
}

// Cache is the in-memory Store with a single TTL for all entries. Its
// size and evictions are published through the metrics package.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]Entry
	ttl     time.Duration

	stopOnce sync.Once
	stop     chan struct{}
}

// New creates an in-memory cache whose entries live for ttl. A background
// goroutine sweeps expired entries until Close is called.
//
// Example:
//
//	c := cache.New(10 * time.Minute)
//	defer c.Close()
//	c.Set(ctx, "offerings:...", body)
func New(ttl time.Duration) *Cache {
	c := &Cache{
		entries: make(map[string]Entry),
		ttl:     ttl,
		stop:    make(chan struct{}),
	}

	go c.cleanupLoop(cleanupInterval(ttl))

	return c
}

func cleanupInterval(ttl time.Duration) time.Duration {
	if ttl < 5*time.Minute {
		return ttl
	}
	return 5 * time.Minute
}

// Backend implements Store.
func (c *Cache) Backend() string { return BackendMemory }

// Get returns the cached bytes for key. Expired entries are removed and
// counted as a miss.
func (c *Cache) Get(_ context.Context, key string) ([]byte, bool) {
	c.mu.RLock()
	entry, exists := c.entries[key]
	c.mu.RUnlock()

	if !exists {
		metrics.RecordCacheLookup(BackendMemory, "miss")
		return nil, false
	}

	if time.Now().After(entry.ExpiresAt) {
		c.mu.Lock()
		evicted := 0
		if cur, ok := c.entries[key]; ok && time.Now().After(cur.ExpiresAt) {
			delete(c.entries, key)
			evicted = 1
		}
		size := len(c.entries)
		c.mu.Unlock()
		metrics.RecordCacheSize(size, evicted)
		metrics.RecordCacheLookup(BackendMemory, "miss")
		return nil, false
	}

	metrics.RecordCacheLookup(BackendMemory, "hit")
	return entry.Data, true
}

// Set stores value under key with the cache's TTL, overwriting any
// existing entry.
func (c *Cache) Set(_ context.Context, key string, value []byte) {
	c.setWithTTL(key, value, c.ttl)
}

func (c *Cache) setWithTTL(key string, value []byte, ttl time.Duration) {
	c.mu.Lock()
	c.entries[key] = Entry{
		Data:      value,
		ExpiresAt: time.Now().Add(ttl),
	}
	size := len(c.entries)
	c.mu.Unlock()

	metrics.RecordCacheSize(size, 0)
}

// Clear removes all entries. Mandatory course writes call it so the next
// course-code listing reflects the change.
func (c *Cache) Clear(_ context.Context) error {
	c.mu.Lock()
	evicted := len(c.entries)
	c.entries = make(map[string]Entry)
	c.mu.Unlock()

	metrics.RecordCacheSize(0, evicted)
	return nil
}

// Close stops the cleanup goroutine. It is safe to call more than once.
func (c *Cache) Close() error {
	c.stopOnce.Do(func() { close(c.stop) })
	return nil
}

func (c *Cache) cleanupLoop(interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.cleanup()
		case <-c.stop:
			return
		}
	}
}

// cleanup removes all expired entries and reports how many it dropped.
func (c *Cache) cleanup() int {
	now := time.Now()
	c.mu.Lock()
	evicted := 0
	for key, entry := range c.entries {
		if now.After(entry.ExpiresAt) {
			delete(c.entries, key)
			evicted++
		}
	}
	size := len(c.entries)
	c.mu.Unlock()

	metrics.RecordCacheSize(size, evicted)
	return evicted
}

// GenerateKey creates a cache key from a route name and its parameters.
// Parameters are JSON encoded so map and struct inputs yield stable keys.
func GenerateKey(method string, params interface{}) string {
	data, err := json.Marshal(params)
	if err != nil {
		return fmt.Sprintf("%s:%v", method, params)
	}

	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%x", method, hash[:16])
}
