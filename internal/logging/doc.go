// Registhor - Training Registration and Offering Analytics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/registhor

// Package logging provides the process-wide zerolog logger for Registhor.
//
// JSON output is the default; "console" gives colourised output for local
// development. Request-scoped loggers carry the request ID assigned by the
// HTTP middleware:
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//	logging.Info().Str("addr", addr).Msg("Server listening")
//	logging.Ctx(r.Context()).Error().Err(err).Msg("Query failed")
//
// NewSlogLogger bridges log/slog so the suture supervisor tree logs into
// the same stream. SanitizeKey masks API keys before they reach a log line.
package logging
