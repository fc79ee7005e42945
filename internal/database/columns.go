// Registhor - Training Registration and Offering Analytics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/registhor

package database

import (
	"database/sql"

	"github.com/tomtom215/registhor/internal/normalize"
)

// col returns the language variant of a bilingual column. lang is forced to
// en or fr so it is safe to splice into SQL.
func col(base, lang string) string {
	return base + "_" + normalize.Lang(lang)
}

// str returns the value or "" for NULL.
func str(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

// num returns the value or 0 for NULL.
func num(ni sql.NullInt64) int64 {
	if ni.Valid {
		return ni.Int64
	}
	return 0
}
