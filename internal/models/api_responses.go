// Registhor - Training Registration and Offering Analytics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/registhor

package models

import "time"

// Envelope statuses returned in the "status" field.
const (
	StatusOK                  = "OK"
	StatusInvalidRequest      = "INVALID_REQUEST"
	StatusRequestDenied       = "REQUEST_DENIED"
	StatusNotFound            = "NOT FOUND"
	StatusUnprocessableEntity = "UNPROCESSABLE ENTITY"
	StatusOverQueryLimit      = "OVER_QUERY_LIMIT"
	StatusUnknownError        = "UNKNOWN_ERROR"
)

// Envelope wraps every /api/v1 read. Successful reads carry Results;
// failures carry ErrorMessage and an empty Results array.
type Envelope struct {
	ErrorMessage string      `json:"error_message,omitempty"`
	Results      interface{} `json:"results"`
	Status       string      `json:"status"`
}

// OK builds a successful read envelope. Callers pass empty, non-nil slices
// so an empty list encodes as [] rather than null.
func OK(results interface{}) Envelope {
	return Envelope{Results: results, Status: StatusOK}
}

// Failure builds an error envelope with an empty results array.
func Failure(status, message string) Envelope {
	return Envelope{ErrorMessage: message, Results: []interface{}{}, Status: status}
}

// WriteStatus acknowledges a write. It has no results field.
type WriteStatus struct {
	ErrorMessage string `json:"error_message,omitempty"`
	Status       string `json:"status"`
}

// Ack builds a status-only write acknowledgement.
func Ack(status string) WriteStatus {
	return WriteStatus{Status: status}
}

// HealthResponse is served by /health outside the API envelope.
type HealthResponse struct {
	Status   string       `json:"status"`
	Data     HealthStatus `json:"data"`
	Metadata Metadata     `json:"metadata"`
}

// HealthStatus reports liveness of the service and its store.
type HealthStatus struct {
	Status    string  `json:"status"`
	Database  string  `json:"database"`
	Driver    string  `json:"driver"`
	Version   string  `json:"version"`
	Uptime    float64 `json:"uptime_seconds"`
	Breaker   string  `json:"circuit_breaker"`
	CacheType string  `json:"cache"`
}

// Metadata accompanies the health response.
type Metadata struct {
	Timestamp time.Time `json:"timestamp"`
}
