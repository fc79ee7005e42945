// Registhor - Training Registration and Offering Analytics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/registhor

// Package normalize cleans and localizes values read from the registration
// store before they reach the wire: course titles, department names,
// learner cities, offering vocabulary, background colours and comment
// fields.
package normalize
