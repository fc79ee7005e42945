// Registhor - Training Registration and Offering Analytics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/registhor

package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/registhor/internal/database"
	"github.com/tomtom215/registhor/internal/normalize"
	"github.com/tomtom215/registhor/internal/validation"
)

// parseCommentFilter resolves the question slug and the shared comment
// arguments. withLimit makes limit required and applies limit and offset.
func parseCommentFilter(w http.ResponseWriter, r *http.Request, withLimit bool) (database.CommentFilter, bool) {
	question, ok := database.CommentQuestion(chi.URLParam(r, "short_question"))
	if !ok {
		respondInvalid(w, "Invalid question type.")
		return database.CommentFilter{}, false
	}

	q := r.URL.Query()
	req := CommentsRequest{
		DepartmentCode: strings.TrimSpace(q.Get("department_code")),
		CourseCode:     q.Get("course_code"),
		FiscalYear:     strings.TrimSpace(q.Get("fiscal_year")),
		Stars:          q.Get("stars"),
		Limit:          q.Get("limit"),
		Offset:         q.Get("offset"),
	}
	if verr := validation.ValidateStruct(req); verr != nil {
		respondValidation(w, verr)
		return database.CommentFilter{}, false
	}

	f := database.CommentFilter{
		Question:       question,
		DepartmentCode: upperCode(req.DepartmentCode),
		CourseCode:     upperCode(req.CourseCode),
		FiscalYear:     req.FiscalYear,
		Lang:           requestLang(r),
	}
	if req.Stars != "" {
		f.Stars, _ = strconv.Atoi(req.Stars) // oneof=1..5 already checked
	}
	if withLimit {
		if req.Limit == "" {
			respondMissing(w, "limit")
			return database.CommentFilter{}, false
		}
		limit, okLimit := parseCount(req.Limit, 0)
		offset, okOffset := parseCount(req.Offset, 0)
		if !okLimit || !okOffset {
			respondInvalid(w, "Invalid limit and/or offset.")
			return database.CommentFilter{}, false
		}
		f.Limit, f.Offset = limit, offset
	}
	return f, true
}

// CommentCourseCodes lists the courses with comments for a question.
func (h *Handler) CommentCourseCodes(w http.ResponseWriter, r *http.Request) {
	f, ok := parseCommentFilter(w, r, false)
	if !ok {
		return
	}
	codes, err := h.db.CommentCourseCodes(r.Context(), f)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	respondOK(w, codes)
}

// CommentStarCounts counts comments per star rating.
func (h *Handler) CommentStarCounts(w http.ResponseWriter, r *http.Request) {
	f, ok := parseCommentFilter(w, r, false)
	if !ok {
		return
	}
	counts, err := h.db.CommentStarCounts(r.Context(), f)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	respondOK(w, counts)
}

// Comments returns a page of comment text, newest fiscal quarter first.
func (h *Handler) Comments(w http.ResponseWriter, r *http.Request) {
	f, ok := parseCommentFilter(w, r, true)
	if !ok {
		return
	}
	comments, err := h.db.Comments(r.Context(), f)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}

	for i := range comments {
		c := &comments[i]
		c.CourseCode = strings.ToUpper(c.CourseCode)
		c.LearnerClassification = normalize.LearnerClassification(c.LearnerClassification, f.Lang)
		c.OfferingCity = normalize.CommentCity(c.OfferingCity, f.Lang)
		c.OfferingQuarter = normalize.Quarter(c.OfferingQuarter, f.Lang)
	}
	respondOK(w, comments)
}
