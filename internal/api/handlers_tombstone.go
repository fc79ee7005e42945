// Registhor - Training Registration and Offering Analytics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/registhor

package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/registhor/internal/database"
)

// Tombstone returns a course's catalogue entry.
func (h *Handler) Tombstone(w http.ResponseWriter, r *http.Request) {
	code := upperCode(chi.URLParam(r, "course_code"))
	h.serveCached(w, r, "tombstone", map[string]string{"course_code": code},
		func(ctx context.Context) (interface{}, error) {
			return h.db.Tombstone(ctx, code)
		})
}

// TombstoneAttr returns one catalogue attribute of a course.
func (h *Handler) TombstoneAttr(w http.ResponseWriter, r *http.Request) {
	code := upperCode(chi.URLParam(r, "course_code"))
	attr := chi.URLParam(r, "course_attr")
	if _, ok := database.TombstoneColumn(attr); !ok {
		respondInvalid(w, "Invalid tombstone_value.")
		return
	}

	h.serveCached(w, r, "tombstone/attr", map[string]string{"course_code": code, "attr": attr},
		func(ctx context.Context) (interface{}, error) {
			return h.db.TombstoneAttr(ctx, code, attr)
		})
}
