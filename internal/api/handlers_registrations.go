// Registhor - Training Registration and Offering Analytics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/registhor

package api

import (
	"context"
	"net/http"
	"sort"

	"github.com/tomtom215/registhor/internal/models"
	"github.com/tomtom215/registhor/internal/normalize"
)

// CourseCodes lists every registered course with its cleaned title.
func (h *Handler) CourseCodes(w http.ResponseWriter, r *http.Request) {
	lang := requestLang(r)
	h.serveCached(w, r, "registrations/course-codes", map[string]string{"lang": lang},
		func(ctx context.Context) (interface{}, error) {
			return h.courseCodes(ctx, lang)
		})
}

func (h *Handler) courseCodes(ctx context.Context, lang string) ([]models.CourseCode, error) {
	codes, err := h.db.CourseCodes(ctx, lang)
	if err != nil {
		return nil, err
	}
	for i := range codes {
		codes[i].CourseTitle = normalize.CourseTitle(codes[i].CourseTitle)
	}
	return codes, nil
}

// DepartmentCodes lists the real departments sorted by cleaned name.
func (h *Handler) DepartmentCodes(w http.ResponseWriter, r *http.Request) {
	lang := requestLang(r)
	h.serveCached(w, r, "registrations/department-codes", map[string]string{"lang": lang},
		func(ctx context.Context) (interface{}, error) {
			depts, err := h.db.Departments(ctx, lang)
			if err != nil {
				return nil, err
			}
			results := make([]models.DepartmentCode, 0, len(depts))
			for _, d := range depts {
				if h.junkDeptCodes.Contains(d.DepartmentCode) {
					continue
				}
				d.DepartmentName = normalize.DepartmentName(d.DepartmentName)
				results = append(results, d)
			}
			sort.SliceStable(results, func(i, j int) bool {
				if results[i].DepartmentName != results[j].DepartmentName {
					return results[i].DepartmentName < results[j].DepartmentName
				}
				return results[i].DepartmentCode < results[j].DepartmentCode
			})
			return results, nil
		})
}

// TrainingLocations maps where a department's learners took training.
func (h *Handler) TrainingLocations(w http.ResponseWriter, r *http.Request) {
	dept, ok := parseDepartment(w, r)
	if !ok {
		return
	}

	locs, err := h.db.TrainingLocations(r.Context(), requestLang(r), dept)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	respondOK(w, h.combine("training_locations", locs))
}
