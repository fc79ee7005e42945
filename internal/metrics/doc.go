// Registhor - Training Registration and Offering Analytics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/registhor

/*
Package metrics defines Registhor's Prometheus instruments.

All collectors register on the default registry through promauto and are
exposed by promhttp at /metrics. Families:

  - registhor_api_*: request counts, latency and in-flight requests
  - registhor_db_*: store query latency and errors per driver
  - registhor_circuit_breaker_*: store breaker state and rejections
  - registhor_cache_requests_total: response cache hits and misses
  - registhor_cluster_*: records in and markers out of the clustering pass
*/
package metrics
