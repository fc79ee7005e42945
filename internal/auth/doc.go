// Registhor - Training Registration and Offering Analytics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/registhor

// Package auth guards /api/v1 with a shared API key passed as ?key=.
//
// Keys are compared in constant time against every configured key.
// Clients that keep sending bad keys are throttled per IP by a
// FailureLimiter and receive OVER_QUERY_LIMIT until their bucket refills.
package auth
