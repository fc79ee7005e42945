// Registhor - Training Registration and Offering Analytics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/registhor

package api

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/registhor/internal/database"
	"github.com/tomtom215/registhor/internal/logging"
	"github.com/tomtom215/registhor/internal/models"
	"github.com/tomtom215/registhor/internal/validation"
)

// maxBodyBytes bounds the mandatory course request body.
const maxBodyBytes = 4 << 10

// MandatoryCourses lists every active course with whether the department
// marked it mandatory.
func (h *Handler) MandatoryCourses(w http.ResponseWriter, r *http.Request) {
	dept, ok := parseDepartment(w, r)
	if !ok {
		return
	}
	lang := requestLang(r)

	var (
		courses   []models.CourseCode
		mandatory []string
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		courses, err = h.courseCodes(ctx, lang)
		return err
	})
	g.Go(func() error {
		var err error
		mandatory, err = h.db.MandatoryCourseCodes(ctx, dept)
		return err
	})
	if err := g.Wait(); err != nil {
		respondStoreError(w, r, err)
		return
	}

	marked := make(map[string]struct{}, len(mandatory))
	for _, c := range mandatory {
		marked[c] = struct{}{}
	}
	results := make([]models.MandatoryCourse, len(courses))
	for i, c := range courses {
		_, isMandatory := marked[c.CourseCode]
		results[i] = models.MandatoryCourse{
			CourseCode:  c.CourseCode,
			CourseTitle: c.CourseTitle,
			Mandatory:   isMandatory,
		}
	}
	respondOK(w, results)
}

// AddMandatoryCourse marks a course mandatory for a department.
func (h *Handler) AddMandatoryCourse(w http.ResponseWriter, r *http.Request) {
	body, ok := decodeMandatoryBody(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	if err := h.checkActive(ctx, body); err != nil {
		switch {
		case errors.Is(err, database.ErrInactiveDepartment), errors.Is(err, database.ErrInactiveCourse):
			respondWriteFailure(w, err.Error())
		default:
			respondStoreError(w, r, err)
		}
		return
	}

	err := h.db.AddMandatoryCourse(ctx, body.DepartmentCode, body.CourseCode)
	switch {
	case err == nil, database.IsDuplicate(err):
		// A repeated insert leaves the pair in place, which is what was asked.
	case errors.Is(err, database.ErrUnavailable):
		respondStoreError(w, r, err)
		return
	default:
		logging.Ctx(ctx).Error().Err(err).
			Str("department_code", logging.SanitizeValue(body.DepartmentCode)).
			Str("course_code", logging.SanitizeValue(body.CourseCode)).
			Msg("Failed to add mandatory course")
		respondWriteFailure(w, "The mandatory course could not be saved.")
		return
	}

	h.ClearCache(ctx)
	respondJSON(w, http.StatusOK, models.Ack(models.StatusOK))
}

// RemoveMandatoryCourse clears a department's mandatory mark on a course.
// Removing a pair that does not exist succeeds.
func (h *Handler) RemoveMandatoryCourse(w http.ResponseWriter, r *http.Request) {
	body, ok := decodeMandatoryBody(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	if err := h.db.RemoveMandatoryCourse(ctx, body.DepartmentCode, body.CourseCode); err != nil {
		if errors.Is(err, database.ErrUnavailable) {
			respondStoreError(w, r, err)
			return
		}
		logging.Ctx(ctx).Error().Err(err).
			Str("department_code", logging.SanitizeValue(body.DepartmentCode)).
			Str("course_code", logging.SanitizeValue(body.CourseCode)).
			Msg("Failed to remove mandatory course")
		respondWriteFailure(w, "The mandatory course could not be removed.")
		return
	}

	h.ClearCache(ctx)
	respondJSON(w, http.StatusOK, models.Ack(models.StatusOK))
}

// checkActive verifies the department and the course concurrently.
// Placeholder department codes are never active, even when present in the
// lookup table.
func (h *Handler) checkActive(ctx context.Context, body MandatoryCourseBody) error {
	if h.junkDeptCodes.Contains(body.DepartmentCode) {
		return database.ErrInactiveDepartment
	}

	var deptOK, courseOK bool
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		deptOK, err = h.db.DepartmentExists(gctx, body.DepartmentCode)
		return err
	})
	g.Go(func() error {
		var err error
		courseOK, err = h.db.CourseExists(gctx, body.CourseCode)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}
	if !deptOK {
		return database.ErrInactiveDepartment
	}
	if !courseOK {
		return database.ErrInactiveCourse
	}
	return nil
}

// decodeMandatoryBody reads and validates the JSON body shared by POST and
// DELETE.
func decodeMandatoryBody(w http.ResponseWriter, r *http.Request) (MandatoryCourseBody, bool) {
	var body MandatoryCourseBody
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		respondInvalid(w, "Request body must be a JSON object.")
		return body, false
	}

	body.DepartmentCode = upperCode(body.DepartmentCode)
	body.CourseCode = upperCode(body.CourseCode)
	if verr := validation.ValidateStruct(body); verr != nil {
		respondValidation(w, verr)
		return body, false
	}
	return body, true
}
