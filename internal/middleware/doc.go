// Registhor - Training Registration and Offering Analytics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/registhor

// Package middleware provides the HTTP middleware shared by every route.
//
// All middleware has the func(http.Handler) http.Handler shape used by the
// chi router:
//
//   - RequestID: X-Request-ID propagation into the logging context
//   - RequestLogger: per-request debug log, warn on slow requests
//   - PrometheusMetrics: request count, latency and in-flight gauge,
//     labelled by chi route pattern
//   - Compression: gzip for clients that send Accept-Encoding: gzip
//
// CORS, per-IP rate limiting and panic recovery come from go-chi/cors,
// go-chi/httprate and chi's own middleware package and are assembled in
// the api package.
package middleware
