// Registhor - Training Registration and Offering Analytics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/registhor

package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/registhor/internal/database"
	"github.com/tomtom215/registhor/internal/logging"
	"github.com/tomtom215/registhor/internal/models"
	"github.com/tomtom215/registhor/internal/validation"
)

// Error messages returned in the envelope. Internal details are logged,
// never sent.
const (
	msgUnknownError = "An unknown error occurred."
	msgUnavailable  = "The database is temporarily unavailable. Please try again later."
	msgNotFound     = "No record matches the provided course code."
)

// generateETag creates a simple ETag from data using FNV-1a hash
func generateETag(data []byte) string {
	hash := uint32(2166136261)
	for _, b := range data {
		hash ^= uint32(b)
		hash *= 16777619
	}
	return `"` + strconv.FormatUint(uint64(hash), 16) + `"`
}

// writeBody sends an encoded envelope. Successful bodies carry an ETag.
func writeBody(w http.ResponseWriter, status int, data []byte) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if status == http.StatusOK {
		w.Header().Set("ETag", generateETag(data))
	}
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Debug().Err(err).Msg("Failed to write JSON response")
	}
}

// respondJSON encodes env and sends it with status.
func respondJSON(w http.ResponseWriter, status int, env interface{}) {
	data, err := json.Marshal(env)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		http.Error(w, `{"status":"UNKNOWN_ERROR"}`, http.StatusInternalServerError)
		return
	}
	writeBody(w, status, data)
}

func respondOK(w http.ResponseWriter, results interface{}) {
	respondJSON(w, http.StatusOK, models.OK(results))
}

// respondMissing answers 400 listing the absent arguments the way the
// dashboards expect: ['a', 'b'].
func respondMissing(w http.ResponseWriter, names ...string) {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = "'" + n + "'"
	}
	msg := "Invalid request. Missing one or more arguments: [" + strings.Join(quoted, ", ") + "]"
	respondJSON(w, http.StatusBadRequest, models.Failure(models.StatusInvalidRequest, msg))
}

// respondInvalid answers 406 for a present but unusable argument.
func respondInvalid(w http.ResponseWriter, msg string) {
	respondJSON(w, http.StatusNotAcceptable, models.Failure(models.StatusInvalidRequest, "Error: "+msg))
}

// respondValidation maps a validation failure to 400 (missing arguments
// first) or 406.
func respondValidation(w http.ResponseWriter, verr *validation.RequestValidationError) {
	if missing := verr.Missing(); len(missing) > 0 {
		respondMissing(w, missing...)
		return
	}
	if fe, ok := verr.Invalid(); ok {
		respondInvalid(w, fe.Message)
		return
	}
	respondInvalid(w, verr.Error())
}

// respondStoreError logs err and answers with the matching status.
func respondStoreError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, database.ErrNotFound):
		respondJSON(w, http.StatusNotFound, models.Failure(models.StatusNotFound, msgNotFound))
	case errors.Is(err, database.ErrUnavailable):
		logging.Ctx(r.Context()).Warn().Str("path", r.URL.Path).Msg("Store unavailable, circuit open")
		respondJSON(w, http.StatusServiceUnavailable, models.Failure(models.StatusUnknownError, msgUnavailable))
	default:
		logging.Ctx(r.Context()).Error().
			Str("path", r.URL.Path).
			Str("error", logging.SanitizeValue(err.Error())).
			Msg("Store query failed")
		respondJSON(w, http.StatusInternalServerError, models.Failure(models.StatusUnknownError, msgUnknownError))
	}
}

// respondWriteFailure answers 422 for a rejected mandatory course change.
func respondWriteFailure(w http.ResponseWriter, msg string) {
	respondJSON(w, http.StatusUnprocessableEntity, models.WriteStatus{
		ErrorMessage: msg,
		Status:       models.StatusUnprocessableEntity,
	})
}
