// Registhor - Training Registration and Offering Analytics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/registhor

package auth

import (
	"crypto/subtle"
	"net"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/tomtom215/registhor/internal/logging"
	"github.com/tomtom215/registhor/internal/metrics"
	"github.com/tomtom215/registhor/internal/models"
)

// Rejection messages returned in the error envelope.
const (
	MsgKeyMissing = "You must use an API key to authenticate each request to Registhor."
	MsgKeyInvalid = "The provided API key is invalid."
	MsgThrottled  = "Too many requests with an invalid API key. Try again later."
)

// KeyParam is the query parameter carrying the API key.
const KeyParam = "key"

// APIKeyAuth checks the ?key= parameter against the configured keys.
type APIKeyAuth struct {
	keys     [][]byte
	failures *FailureLimiter
	access   *logging.AccessLogger
}

// NewAPIKeyAuth creates the key check. failures may be nil to disable
// throttling of repeated bad keys.
func NewAPIKeyAuth(keys []string, failures *FailureLimiter) *APIKeyAuth {
	a := &APIKeyAuth{
		failures: failures,
		access:   logging.NewAccessLogger(),
	}
	for _, k := range keys {
		if k != "" {
			a.keys = append(a.keys, []byte(k))
		}
	}
	return a
}

// Valid reports whether key matches one of the configured keys. Every key
// is compared so the timing does not reveal which one matched.
func (a *APIKeyAuth) Valid(key string) bool {
	if key == "" {
		return false
	}
	candidate := []byte(key)
	match := 0
	for _, k := range a.keys {
		match |= subtle.ConstantTimeCompare(candidate, k)
	}
	return match == 1
}

// Middleware rejects requests without a valid key.
func (a *APIKeyAuth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		key := r.URL.Query().Get(KeyParam)

		if a.failures != nil && a.failures.Blocked(ip) && !a.Valid(key) {
			a.access.Throttled(ip, r.URL.Path)
			metrics.RecordAuthRejection("throttled")
			deny(w, http.StatusTooManyRequests, models.StatusOverQueryLimit, MsgThrottled)
			return
		}

		if key == "" {
			a.access.KeyMissing(ip, r.URL.Path)
			metrics.RecordAuthRejection("missing")
			deny(w, http.StatusForbidden, models.StatusRequestDenied, MsgKeyMissing)
			return
		}

		if !a.Valid(key) {
			a.access.KeyInvalid(ip, r.URL.Path, key)
			metrics.RecordAuthRejection("invalid")
			if a.failures != nil {
				a.failures.Fail(ip)
			}
			deny(w, http.StatusForbidden, models.StatusRequestDenied, MsgKeyInvalid)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func deny(w http.ResponseWriter, code int, status, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(models.Failure(status, msg)); err != nil {
		logging.Error().Err(err).Msg("failed to encode auth rejection")
	}
}

// clientIP returns the host part of RemoteAddr. chi's RealIP middleware
// runs first and rewrites RemoteAddr from proxy headers.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
