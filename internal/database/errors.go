// Registhor - Training Registration and Offering Analytics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/registhor

package database

import (
	"errors"
	"io"
	"strings"

	"github.com/duckdb/duckdb-go/v2"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound is returned when a single-record lookup matches nothing.
	ErrNotFound = errors.New("record not found")
	// ErrUnavailable is returned while the circuit breaker rejects queries.
	ErrUnavailable = errors.New("database unavailable")
	// ErrInactiveDepartment rejects mandatory courses for unknown departments.
	ErrInactiveDepartment = errors.New("the department code provided is not for an active department")
	// ErrInactiveCourse rejects mandatory courses for unknown courses.
	ErrInactiveCourse = errors.New("the course code provided is not for an active course")
)

// pgUniqueViolation is the SQLSTATE for unique_violation.
const pgUniqueViolation = "23505"

// IsDuplicate reports whether err is a primary key or unique constraint
// violation from either driver.
func IsDuplicate(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	// DuckDB has one error type for every constraint kind, NOT NULL and
	// CHECK included, so the message still decides which one fired.
	var duckErr *duckdb.Error
	if errors.As(err, &duckErr) {
		return duckErr.Type == duckdb.ErrorTypeConstraint && isDuplicateMessage(duckErr.Msg)
	}
	return isDuplicateMessage(err.Error())
}

func isDuplicateMessage(msg string) bool {
	msg = strings.ToLower(msg)
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "primary key constraint")
}

// closeQuietly closes a resource and explicitly ignores any error
// Use this for cleanup operations in error paths where Close() errors are not actionable
func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close()
	}
}
