// Registhor - Training Registration and Offering Analytics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/registhor

/*
Package database provides read access to the registration analytics store
and write access to the mandatory course table.

# Drivers

Two database/sql drivers are supported and selected by config:

  - duckdb (default): embedded DuckDB, either ":memory:" or a file path
  - pgx: PostgreSQL through github.com/jackc/pgx/v5/stdlib

Queries are written with "?" placeholders and rebound to "$n" for pgx by
query.Rebind. Column types in the schema are limited to those both engines
share, so the same statements run unchanged on either.

# Tables

  - offerings: one row per course offering, bilingual location columns
  - lsr_this_year, lsr_last_year: learner registrations per fiscal year
  - departments: department codes and bilingual names
  - product_info: course catalogue (tombstone) entries
  - mandatory_courses: (dept_code, course_code) pairs, the only writable table
  - comments: survey free-text answers with ratings

Columns with a language variant end in _en or _fr; callers pass a language
and the package picks the column.

# Resilience

Every query runs through run, which applies the configured query timeout,
the circuit breaker (github.com/sony/gobreaker/v2) and the Prometheus query
metrics. While the breaker is open, queries fail fast with ErrUnavailable.
Missing rows, duplicate inserts and canceled requests do not count as
failures.

# Values

Queries return raw stored values. Cleaning titles and department names,
filtering junk codes and localizing labels happen in the normalize package
at the API layer. NULL text reads as "", NULL counts as 0 and NULL
coordinates as an invalid models.Coordinate.
*/
package database
