// Registhor - Training Registration and Offering Analytics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/registhor

package auth

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// FailureLimiter tracks failed key attempts per client IP with a token
// bucket. Each failure spends a token; once the bucket is empty the client
// is blocked until it refills. Successful requests never touch it.
type FailureLimiter struct {
	limiters  map[string]*limiterEntry
	mu        sync.RWMutex
	rate      rate.Limit
	burst     int
	stopClean chan struct{}
	stopOnce  sync.Once
}

type limiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// NewFailureLimiter allows attempts failures per window before blocking.
// The bucket refills completely over one window.
func NewFailureLimiter(attempts int, window time.Duration) *FailureLimiter {
	if attempts < 1 {
		attempts = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	fl := &FailureLimiter{
		limiters:  make(map[string]*limiterEntry),
		rate:      rate.Limit(float64(attempts) / window.Seconds()),
		burst:     attempts,
		stopClean: make(chan struct{}),
	}
	go fl.startCleanup(10 * time.Minute)
	return fl
}

// Blocked reports whether ip has exhausted its failure budget.
func (fl *FailureLimiter) Blocked(ip string) bool {
	fl.mu.RLock()
	entry, exists := fl.limiters[ip]
	fl.mu.RUnlock()
	if !exists {
		return false
	}
	return entry.limiter.Tokens() < 1
}

// Fail records a failed attempt from ip. It returns false when the attempt
// exceeded the budget.
func (fl *FailureLimiter) Fail(ip string) bool {
	fl.mu.Lock()
	entry, exists := fl.limiters[ip]
	if !exists {
		entry = &limiterEntry{limiter: rate.NewLimiter(fl.rate, fl.burst)}
		fl.limiters[ip] = entry
	}
	entry.lastAccess = time.Now()
	limiter := entry.limiter
	fl.mu.Unlock()

	return limiter.Allow()
}

func (fl *FailureLimiter) startCleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			fl.cleanup(time.Hour)
		case <-fl.stopClean:
			return
		}
	}
}

// cleanup forgets clients idle for longer than maxIdle.
func (fl *FailureLimiter) cleanup(maxIdle time.Duration) {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	threshold := time.Now().Add(-maxIdle)
	for ip, entry := range fl.limiters {
		if entry.lastAccess.Before(threshold) {
			delete(fl.limiters, ip)
		}
	}
}

// Stop stops the cleanup goroutine
func (fl *FailureLimiter) Stop() {
	fl.stopOnce.Do(func() { close(fl.stopClean) })
}
