// Registhor - Training Registration and Offering Analytics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/registhor

package logging

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// SanitizeKey masks an API key for logging. Short keys are fully hidden.
func SanitizeKey(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 12 {
		return "***"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

// SanitizeValue escapes control characters in a user-supplied string so it
// cannot forge or split log lines.
func SanitizeValue(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			fmt.Fprintf(&b, "\\x%02x", r)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// AccessLogger records authentication outcomes under the "security"
// component so they can be filtered out of the general request log.
type AccessLogger struct {
	logger zerolog.Logger
}

// NewAccessLogger derives an AccessLogger from the global logger.
func NewAccessLogger() *AccessLogger {
	return &AccessLogger{logger: WithComponent("security")}
}

// NewAccessLoggerWithLogger is used by tests to capture output.
func NewAccessLoggerWithLogger(logger zerolog.Logger) *AccessLogger {
	return &AccessLogger{logger: logger.With().Str("component", "security").Logger()}
}

// KeyMissing logs a request that arrived without a key.
func (l *AccessLogger) KeyMissing(ip, path string) {
	l.logger.Warn().
		Str("event", "api_key_missing").
		Str("ip", ip).
		Str("path", SanitizeValue(path)).
		Msg("Request rejected: no API key")
}

// KeyInvalid logs a request with an unknown key. The key is masked.
func (l *AccessLogger) KeyInvalid(ip, path, key string) {
	l.logger.Warn().
		Str("event", "api_key_invalid").
		Str("ip", ip).
		Str("path", SanitizeValue(path)).
		Str("key", SanitizeKey(key)).
		Msg("Request rejected: invalid API key")
}

// Throttled logs a client that exceeded its failed-attempt budget.
func (l *AccessLogger) Throttled(ip, path string) {
	l.logger.Error().
		Str("event", "api_key_throttled").
		Str("ip", ip).
		Str("path", SanitizeValue(path)).
		Msg("Request rejected: too many invalid API keys")
}
