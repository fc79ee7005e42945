// Registhor - Training Registration and Offering Analytics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/registhor

package api

import (
	"context"
	"net/http"

	"github.com/tomtom215/registhor/internal/normalize"
)

// Evalhalla endpoints feed the survey dashboard's filter dropdowns.

// LearnerCities lists "city, province" for every learner location.
func (h *Handler) LearnerCities(w http.ResponseWriter, r *http.Request) {
	lang := requestLang(r)
	h.serveCached(w, r, "evalhalla/cities", map[string]string{"lang": lang},
		func(ctx context.Context) (interface{}, error) {
			cities, err := h.db.LearnerCities(ctx, lang)
			if err != nil {
				return nil, err
			}
			labels := make([]string, 0, len(cities))
			for _, c := range cities {
				label := normalize.CityProvince(c.City, c.Province)
				if !h.junkCities.Contains(label) {
					labels = append(labels, label)
				}
			}
			return normalize.UniqueSorted(labels), nil
		})
}

// LearnerClassifications lists the learner classifications.
func (h *Handler) LearnerClassifications(w http.ResponseWriter, r *http.Request) {
	h.serveCached(w, r, "evalhalla/classifications", nil,
		func(ctx context.Context) (interface{}, error) {
			classifs, err := h.db.LearnerClassifications(ctx)
			if err != nil {
				return nil, err
			}
			kept := make([]string, 0, len(classifs))
			for _, c := range classifs {
				if c != "" {
					kept = append(kept, c)
				}
			}
			return normalize.UniqueSorted(kept), nil
		})
}

// BillingDepartments lists the billing department names with junk and
// archive annotations removed.
func (h *Handler) BillingDepartments(w http.ResponseWriter, r *http.Request) {
	lang := requestLang(r)
	h.serveCached(w, r, "evalhalla/departments", map[string]string{"lang": lang},
		func(ctx context.Context) (interface{}, error) {
			names, err := h.db.BillingDepartments(ctx, lang)
			if err != nil {
				return nil, err
			}
			kept := make([]string, 0, len(names))
			for _, n := range names {
				if h.junkDepartments.Contains(n) {
					continue
				}
				kept = append(kept, normalize.DepartmentName(n))
			}
			return normalize.UniqueSorted(kept), nil
		})
}
