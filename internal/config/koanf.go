// Registhor - Training Registration and Offering Analytics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/registhor

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths are searched in order when CONFIG_PATH is unset.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/registhor/config.yaml",
	"/etc/registhor/config.yml",
}

// ConfigPathEnvVar names the variable pointing at an explicit config file.
const ConfigPathEnvVar = "CONFIG_PATH"

// Default returns the built-in configuration before any file or
// environment overrides.
func Default() *Config {
	return defaultConfig()
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			Host:            "0.0.0.0",
			Timeout:         30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			Environment:     "development",
		},
		Database: DatabaseConfig{
			Driver:          "duckdb",
			Path:            "/data/registhor.duckdb",
			MaxMemory:       "1GB",
			Threads:         0,
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 30 * time.Minute,
			QueryTimeout:    15 * time.Second,
			Migrate:         true,
			HealthInterval:  30 * time.Second,
			Breaker: BreakerConfig{
				Enabled:          true,
				FailureThreshold: 5,
				MaxRequests:      1,
				Interval:         time.Minute,
				Timeout:          30 * time.Second,
			},
		},
		Auth: AuthConfig{
			APIKeys:        []string{},
			FailedAttempts: 20,
			FailedWindow:   time.Minute,
		},
		Security: SecurityConfig{
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"*"}, // dashboards call the API cross-origin
		},
		Cache: CacheConfig{
			Enabled:   true,
			Backend:   "memory",
			TTL:       10 * time.Minute,
			RedisAddr: "localhost:6379",
			KeyPrefix: "registhor:",
		},
		Clustering: ClusteringConfig{
			Digits: 1,
		},
		Offerings: OfferingsConfig{
			ConfirmedThreshold: 10,
			UpcomingDays:       30,
			DefaultLimit:       999999,
		},
		Lookups: LookupsConfig{
			JunkDepartmentCodes: []string{"", "UNKNOWN", "NULL", "(BLANK)"},
			JunkDepartments:     []string{"", "Unknown", "Inconnu", "(blank)"},
			JunkCities:          []string{", ", "Unknown", "Inconnu", "Iconnu", "(blank)"},
		},
		Features: FeaturesConfig{
			Comments: false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf layers struct defaults, an optional YAML file and
// environment variables, in that order of increasing precedence.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths accept comma-separated strings from the environment.
var sliceConfigPaths = []string{
	"auth.api_keys",
	"security.cors_origins",
	"lookups.junk_department_codes",
	"lookups.junk_departments",
	"lookups.junk_cities",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps lower-cased environment variable names to config keys.
// Anything not listed is ignored so unrelated variables cannot leak in.
var envMappings = map[string]string{
	"http_port":               "server.port",
	"http_host":               "server.host",
	"server_timeout":          "server.timeout",
	"server_shutdown_timeout": "server.shutdown_timeout",
	"environment":             "server.environment",

	"database_driver":            "database.driver",
	"database_path":              "database.path",
	"duckdb_path":                "database.path",
	"database_dsn":               "database.dsn",
	"database_url":               "database.dsn",
	"duckdb_max_memory":          "database.max_memory",
	"duckdb_threads":             "database.threads",
	"database_max_open_conns":    "database.max_open_conns",
	"database_max_idle_conns":    "database.max_idle_conns",
	"database_conn_max_lifetime": "database.conn_max_lifetime",
	"database_query_timeout":     "database.query_timeout",
	"database_migrate":           "database.migrate",
	"database_health_interval":   "database.health_interval",
	"database_breaker_enabled":   "database.breaker.enabled",
	"database_breaker_failures":  "database.breaker.failure_threshold",
	"database_breaker_timeout":   "database.breaker.timeout",

	"registhor_api_key":    "auth.api_key",
	"api_keys":             "auth.api_keys",
	"auth_failed_attempts": "auth.failed_attempts",
	"auth_failed_window":   "auth.failed_window",

	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
	"cors_origins":        "security.cors_origins",

	"cache_enabled":  "cache.enabled",
	"cache_backend":  "cache.backend",
	"cache_ttl":      "cache.ttl",
	"redis_addr":     "cache.redis_addr",
	"redis_password": "cache.redis_password",
	"redis_db":       "cache.redis_db",

	"cluster_digits": "clustering.digits",

	"offerings_confirmed_threshold": "offerings.confirmed_threshold",
	"offerings_upcoming_days":       "offerings.upcoming_days",

	"junk_department_codes": "lookups.junk_department_codes",
	"junk_departments":      "lookups.junk_departments",
	"junk_cities":           "lookups.junk_cities",

	"enable_comments": "features.comments",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
