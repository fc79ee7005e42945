// Registhor - Training Registration and Offering Analytics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/registhor

package config

import (
	"fmt"
	"time"
)

const (
	minRateLimitRequests = 1
	maxRateLimitRequests = 100000
	minRateLimitWindow   = time.Second
	maxRateLimitWindow   = time.Hour
	maxClusterDigits     = 6
)

var validLogLevels = map[string]bool{
	"trace": true, "debug": true, "info": true, "warn": true, "error": true,
}

// Validate checks every section and returns the first problem found.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateDatabase(); err != nil {
		return err
	}
	if err := c.validateAuth(); err != nil {
		return err
	}
	if err := c.validateRateLimits(); err != nil {
		return err
	}
	if err := c.validateCache(); err != nil {
		return err
	}
	if err := c.validateClustering(); err != nil {
		return err
	}
	if err := c.validateOfferings(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("SERVER_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateDatabase() error {
	switch c.Database.Driver {
	case "duckdb":
		if c.Database.Path == "" {
			return fmt.Errorf("DATABASE_PATH is required when DATABASE_DRIVER=duckdb")
		}
	case "pgx":
		if c.Database.DSN == "" {
			return fmt.Errorf("DATABASE_DSN is required when DATABASE_DRIVER=pgx")
		}
	default:
		return fmt.Errorf("DATABASE_DRIVER must be one of: duckdb, pgx (got %q)", c.Database.Driver)
	}

	if c.Database.MaxOpenConns < 1 {
		return fmt.Errorf("DATABASE_MAX_OPEN_CONNS must be at least 1")
	}
	if c.Database.QueryTimeout <= 0 {
		return fmt.Errorf("DATABASE_QUERY_TIMEOUT must be positive")
	}
	if c.Database.HealthInterval <= 0 {
		return fmt.Errorf("DATABASE_HEALTH_INTERVAL must be positive")
	}
	if c.Database.Breaker.Enabled && c.Database.Breaker.FailureThreshold == 0 {
		return fmt.Errorf("DATABASE_BREAKER_FAILURES must be at least 1 when the breaker is enabled")
	}
	return nil
}

// validateAuth refuses to start in production without a key; every
// /api/v1 request would be denied.
func (c *Config) validateAuth() error {
	if c.IsProduction() && len(c.Keys()) == 0 {
		return fmt.Errorf("REGISTHOR_API_KEY or API_KEYS must be set in production")
	}
	if c.Auth.FailedAttempts < 1 {
		return fmt.Errorf("AUTH_FAILED_ATTEMPTS must be at least 1")
	}
	if c.Auth.FailedWindow <= 0 {
		return fmt.Errorf("AUTH_FAILED_WINDOW must be positive")
	}
	return nil
}

func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

func (c *Config) validateCache() error {
	if !c.Cache.Enabled {
		return nil
	}
	switch c.Cache.Backend {
	case "memory":
	case "redis":
		if c.Cache.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR is required when CACHE_BACKEND=redis")
		}
	default:
		return fmt.Errorf("CACHE_BACKEND must be one of: memory, redis (got %q)", c.Cache.Backend)
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive")
	}
	return nil
}

func (c *Config) validateClustering() error {
	if c.Clustering.Digits < 0 || c.Clustering.Digits > maxClusterDigits {
		return fmt.Errorf("CLUSTER_DIGITS must be between 0 and %d", maxClusterDigits)
	}
	return nil
}

func (c *Config) validateOfferings() error {
	if c.Offerings.ConfirmedThreshold < 0 {
		return fmt.Errorf("OFFERINGS_CONFIRMED_THRESHOLD must not be negative")
	}
	if c.Offerings.UpcomingDays < 0 {
		return fmt.Errorf("OFFERINGS_UPCOMING_DAYS must not be negative")
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}
