// Registhor - Training Registration and Offering Analytics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/registhor

package middleware

import (
	"net/http"
	"time"

	"github.com/tomtom215/registhor/internal/logging"
)

// DefaultSlowRequestThreshold is used when RequestLogger gets zero.
const DefaultSlowRequestThreshold = time.Second

// RequestLogger logs each completed request at debug level and requests
// slower than threshold at warn level. Query strings are never logged
// because they carry the API key.
func RequestLogger(threshold time.Duration) func(http.Handler) http.Handler {
	if threshold <= 0 {
		threshold = DefaultSlowRequestThreshold
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapper := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapper, r)

			duration := time.Since(start)
			logger := logging.Ctx(r.Context())
			event := logger.Debug()
			if duration > threshold {
				event = logger.Warn().Dur("threshold", threshold)
			}
			event.
				Str("method", r.Method).
				Str("route", routeLabel(r)).
				Str("path", r.URL.Path).
				Int("status", wrapper.statusCode).
				Int64("bytes", wrapper.bytes).
				Dur("duration", duration).
				Msg(requestMessage(duration > threshold))
		})
	}
}

func requestMessage(slow bool) string {
	if slow {
		return "Slow request detected"
	}
	return "Request completed"
}

// responseWriter wraps http.ResponseWriter to capture status code and size
type responseWriter struct {
	http.ResponseWriter
	statusCode  int
	bytes       int64
	wroteHeader bool
}

func (rw *responseWriter) WriteHeader(code int) {
	if !rw.wroteHeader {
		rw.statusCode = code
		rw.wroteHeader = true
	}
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	rw.wroteHeader = true
	n, err := rw.ResponseWriter.Write(b)
	rw.bytes += int64(n)
	return n, err
}
