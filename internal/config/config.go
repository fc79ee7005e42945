// Registhor - Training Registration and Offering Analytics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/registhor

package config

import "time"

// Config is the complete service configuration.
type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Database   DatabaseConfig   `koanf:"database"`
	Auth       AuthConfig       `koanf:"auth"`
	Security   SecurityConfig   `koanf:"security"`
	Cache      CacheConfig      `koanf:"cache"`
	Clustering ClusteringConfig `koanf:"clustering"`
	Offerings  OfferingsConfig  `koanf:"offerings"`
	Lookups    LookupsConfig    `koanf:"lookups"`
	Features   FeaturesConfig   `koanf:"features"`
	Logging    LoggingConfig    `koanf:"logging"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"` // development, staging, production
}

// DatabaseConfig selects and tunes the relational store.
type DatabaseConfig struct {
	Driver          string        `koanf:"driver"` // duckdb or pgx
	Path            string        `koanf:"path"`   // DuckDB file, or ":memory:"
	DSN             string        `koanf:"dsn"`    // PostgreSQL connection string for pgx
	MaxMemory       string        `koanf:"max_memory"`
	Threads         int           `koanf:"threads"` // DuckDB threads, 0 = NumCPU
	MaxOpenConns    int           `koanf:"max_open_conns"`
	MaxIdleConns    int           `koanf:"max_idle_conns"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
	QueryTimeout    time.Duration `koanf:"query_timeout"`
	Migrate         bool          `koanf:"migrate"`
	HealthInterval  time.Duration `koanf:"health_interval"` // store monitor ping period
	Breaker         BreakerConfig `koanf:"breaker"`
}

// BreakerConfig tunes the circuit breaker around store queries.
type BreakerConfig struct {
	Enabled          bool          `koanf:"enabled"`
	FailureThreshold uint32        `koanf:"failure_threshold"` // consecutive failures before opening
	MaxRequests      uint32        `koanf:"max_requests"`      // probes allowed while half-open
	Interval         time.Duration `koanf:"interval"`
	Timeout          time.Duration `koanf:"timeout"` // open -> half-open
}

// AuthConfig holds the API keys accepted on ?key=.
type AuthConfig struct {
	APIKeys        []string      `koanf:"api_keys"`
	APIKey         string        `koanf:"api_key"` // single key, REGISTHOR_API_KEY
	FailedAttempts int           `koanf:"failed_attempts"`
	FailedWindow   time.Duration `koanf:"failed_window"`
}

// SecurityConfig holds request throttling and CORS settings
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// CacheConfig selects the response cache backend.
type CacheConfig struct {
	Enabled       bool          `koanf:"enabled"`
	Backend       string        `koanf:"backend"` // memory or redis
	TTL           time.Duration `koanf:"ttl"`
	RedisAddr     string        `koanf:"redis_addr"`
	RedisPassword string        `koanf:"redis_password"`
	RedisDB       int           `koanf:"redis_db"`
	KeyPrefix     string        `koanf:"key_prefix"`
}

// ClusteringConfig controls map marker merging.
type ClusteringConfig struct {
	Digits int `koanf:"digits"`
}

// OfferingsConfig holds the offering colour rules.
type OfferingsConfig struct {
	ConfirmedThreshold int64 `koanf:"confirmed_threshold"`
	UpcomingDays       int   `koanf:"upcoming_days"`
	DefaultLimit       int   `koanf:"default_limit"`
}

// LookupsConfig lists placeholder values filtered out of lookup lists.
type LookupsConfig struct {
	JunkDepartmentCodes []string `koanf:"junk_department_codes"`
	JunkDepartments     []string `koanf:"junk_departments"`
	JunkCities          []string `koanf:"junk_cities"`
}

// FeaturesConfig toggles optional route groups.
type FeaturesConfig struct {
	Comments bool `koanf:"comments"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Load reads configuration from defaults, an optional YAML file and the
// environment, then validates it.
func Load() (*Config, error) {
	return LoadWithKoanf()
}

// Keys returns every accepted API key, the single legacy key included.
func (c *Config) Keys() []string {
	keys := make([]string, 0, len(c.Auth.APIKeys)+1)
	keys = append(keys, c.Auth.APIKeys...)
	if c.Auth.APIKey != "" {
		keys = append(keys, c.Auth.APIKey)
	}
	return keys
}

// IsProduction reports whether ENVIRONMENT=production.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// IsDevelopment reports whether the service runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == "" || c.Server.Environment == "development"
}
