// Registhor - Training Registration and Offering Analytics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/registhor

/*
Package config loads Registhor's configuration with koanf.

Sources, lowest to highest precedence:

 1. Built-in defaults (defaultConfig)
 2. A YAML file: $CONFIG_PATH, else config.yaml / /etc/registhor/config.yaml
 3. Environment variables listed in envMappings

Example config.yaml:

	server:
	  port: 8080
	database:
	  driver: pgx
	  dsn: postgres://registhor:secret@db:5432/registhor
	auth:
	  api_keys: [dashboard-key, ops-key]
	cache:
	  backend: redis
	  redis_addr: redis:6379

Environment equivalents: HTTP_PORT, DATABASE_DRIVER, DATABASE_DSN,
API_KEYS (comma-separated), REGISTHOR_API_KEY, CACHE_BACKEND, REDIS_ADDR.
*/
package config
