// Registhor - Training Registration and Offering Analytics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/registhor

// Command server runs the Registhor API.
//
// Startup order:
//
//  1. .env (optional), then configuration through koanf: defaults,
//     config.yaml, environment
//  2. Logging (zerolog)
//  3. Store: DuckDB file or PostgreSQL through pgx, schema created when
//     DATABASE_MIGRATE=true
//  4. Response cache: in-memory or Redis
//  5. API key auth and the chi router
//  6. Supervisor tree with the store monitor and the HTTP server
//
// SIGINT and SIGTERM drain in-flight requests for SERVER_SHUTDOWN_TIMEOUT,
// then close the cache and the store.
//
// Example:
//
//	export REGISTHOR_API_KEY=$(openssl rand -hex 32)
//	export DATABASE_DRIVER=pgx
//	export DATABASE_DSN=postgres://registhor:secret@db:5432/registhor
//	export CACHE_BACKEND=redis REDIS_ADDR=redis:6379
//	./registhor
//
// The version string is set at build time:
//
//	go build -ldflags "-X github.com/tomtom215/registhor/internal/api.Version=1.4.0" ./cmd/server
package main
