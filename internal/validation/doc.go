// Registhor - Training Registration and Offering Analytics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/registhor

// Package validation wraps go-playground/validator for request arguments.
//
// Request structs declare rules in `validate` tags and name their wire
// argument in a `query` or `json` tag:
//
//	type offeringQuery struct {
//	    Date1 string `query:"date_1" validate:"required,datetime=2006-01-02"`
//	    Limit string `query:"limit" validate:"number"`
//	}
//
// RequestValidationError separates missing arguments (HTTP 400) from
// malformed ones (HTTP 406).
package validation
