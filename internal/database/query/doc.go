// Registhor - Training Registration and Offering Analytics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/registhor

// Package query provides SQL query building utilities for the database package.
//
// The WhereBuilder provides a fluent interface for parameterized WHERE
// clauses. Helpers skip empty filter values so optional request arguments
// simply add nothing:
//
//	wb := query.NewWhereBuilder()
//	wb.AddDateOverlap("a.start_date", "a.end_date", from, to)
//	wb.AddEquals("a.course_code", "")      // skipped
//	wb.AddContains("a.instructor_names", "Smith")
//	whereClause, args := wb.Build()
//
// Queries are written once with "?" placeholders. DuckDB accepts them as
// is; PostgreSQL queries pass through Rebind first.
package query
