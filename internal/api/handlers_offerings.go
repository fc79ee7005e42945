// Registhor - Training Registration and Offering Analytics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/registhor

package api

import (
	"net/http"

	"github.com/tomtom215/registhor/internal/cluster"
	"github.com/tomtom215/registhor/internal/metrics"
	"github.com/tomtom215/registhor/internal/models"
	"github.com/tomtom215/registhor/internal/normalize"
)

// OfferingInformation lists the offerings overlapping [date_1, date_2],
// each with its dashboard background colour.
func (h *Handler) OfferingInformation(w http.ResponseWriter, r *http.Request) {
	f, ok := h.parseOfferingFilter(w, r, true)
	if !ok {
		return
	}

	rows, err := h.db.Offerings(r.Context(), f)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}

	today := h.now()
	results := make([]models.Offering, len(rows))
	for i, row := range rows {
		o := row.Offering
		// Colour from the stored status before it is translated.
		o.BackgroundColor = normalize.BackgroundColor(row.Start, row.End, o.ConfirmedCount, o.OfferingStatus, today, h.colors)
		normalize.LocalizeOffering(&o, f.Lang)
		results[i] = o
	}
	respondOK(w, results)
}

// OfferingCountsByCity counts the matching offerings per city, merged into
// map clusters.
func (h *Handler) OfferingCountsByCity(w http.ResponseWriter, r *http.Request) {
	f, ok := h.parseOfferingFilter(w, r, false)
	if !ok {
		return
	}

	counts, err := h.db.OfferingCountsByCity(r.Context(), f)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	respondOK(w, h.combine("offerings", counts))
}

// combine clusters location counts at the configured precision.
func (h *Handler) combine(source string, locs []models.LocationCount) []models.LocationCount {
	out := cluster.Combine(locs, h.config.Clustering.Digits)
	metrics.RecordClustering(source, len(locs), len(out))
	return out
}
