// Registhor - Training Registration and Offering Analytics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/registhor

/*
Package cache holds encoded API responses between identical requests.

Two Store backends exist:

  - Cache: in-process map with TTL expiry and a background sweeper
  - RedisCache: go-redis client for deployments running several replicas

Keys come from GenerateKey, which hashes the route name and its arguments.
Backend failures degrade to misses; the database remains the source of
truth. Writes to mandatory courses call Clear on the active store.
*/
package cache
