// Registhor - Training Registration and Offering Analytics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/registhor

package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/registhor/internal/database"
	"github.com/tomtom215/registhor/internal/normalize"
	"github.com/tomtom215/registhor/internal/validation"
)

// Request structs carry raw query values. The `validate` tags reject
// malformed input before anything is parsed or sent to the store.

// OfferingsRequest holds the offerings dashboard parameters.
type OfferingsRequest struct {
	Date1            string `query:"date_1" validate:"required,datetime=2006-01-02"`
	Date2            string `query:"date_2" validate:"omitempty,datetime=2006-01-02"`
	ExcludeCancelled string `query:"exclude_cancelled" validate:"max=10"`
	CourseCode       string `query:"course_code" validate:"max=20"`
	InstructorName   string `query:"instructor_name" validate:"max=200"`
	BusinessLine     string `query:"business_line" validate:"max=200"`
	ClientsOnly      string `query:"clients_only" validate:"max=10"`
	Limit            string `query:"limit" validate:"omitempty,number"`
	Offset           string `query:"offset" validate:"omitempty,number"`
}

// DepartmentRequest is any lookup keyed by a billing department.
type DepartmentRequest struct {
	DepartmentCode string `query:"department_code" validate:"required,max=20"`
}

// MandatoryCourseBody is the JSON body of the mandatory course writes.
type MandatoryCourseBody struct {
	DepartmentCode string `json:"department_code" validate:"required,max=20"`
	CourseCode     string `json:"course_code" validate:"required,max=20"`
}

// CommentsRequest holds the comment filters. Limit is checked by the text
// endpoint only.
type CommentsRequest struct {
	DepartmentCode string `query:"department_code" validate:"required,max=20"`
	CourseCode     string `query:"course_code" validate:"max=20"`
	FiscalYear     string `query:"fiscal_year" validate:"max=9"`
	Stars          string `query:"stars" validate:"omitempty,oneof=1 2 3 4 5"`
	Limit          string `query:"limit" validate:"omitempty,number"`
	Offset         string `query:"offset" validate:"omitempty,number"`
}

// requestLang reads ?lang=.
func requestLang(r *http.Request) string {
	return normalize.Lang(r.URL.Query().Get("lang"))
}

// upperCode normalises a course or department code from a query or path.
func upperCode(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// parseCount reads an all-digit limit or offset. An empty value yields def.
// Digit strings too large for an int are rejected rather than wrapped.
func parseCount(s string, def int) (int, bool) {
	if s == "" {
		return def, true
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// parseOfferingFilter validates the offerings parameters and writes the
// error response itself when they are unusable.
func (h *Handler) parseOfferingFilter(w http.ResponseWriter, r *http.Request, paged bool) (database.OfferingFilter, bool) {
	q := r.URL.Query()
	req := OfferingsRequest{
		Date1:            q.Get("date_1"),
		Date2:            q.Get("date_2"),
		ExcludeCancelled: q.Get("exclude_cancelled"),
		CourseCode:       q.Get("course_code"),
		InstructorName:   q.Get("instructor_name"),
		BusinessLine:     q.Get("business_line"),
		ClientsOnly:      q.Get("clients_only"),
	}
	if paged {
		req.Limit = q.Get("limit")
		req.Offset = q.Get("offset")
	}
	if verr := validation.ValidateStruct(req); verr != nil {
		respondValidation(w, verr)
		return database.OfferingFilter{}, false
	}

	from, err := time.Parse(normalize.DateLayout, req.Date1)
	if err != nil {
		respondInvalid(w, "date_1 must be a date in YYYY-MM-DD format")
		return database.OfferingFilter{}, false
	}
	to := from
	if req.Date2 != "" {
		if to, err = time.Parse(normalize.DateLayout, req.Date2); err != nil {
			respondInvalid(w, "date_2 must be a date in YYYY-MM-DD format")
			return database.OfferingFilter{}, false
		}
	}
	if to.Before(from) {
		respondInvalid(w, "date_2 must not be before date_1.")
		return database.OfferingFilter{}, false
	}

	f := database.OfferingFilter{
		From:             from,
		To:               to,
		ExcludeCancelled: req.ExcludeCancelled == "true",
		CourseCode:       upperCode(req.CourseCode),
		InstructorName:   strings.TrimSpace(req.InstructorName),
		BusinessLine:     strings.TrimSpace(req.BusinessLine),
		ClientsOnly:      req.ClientsOnly == "true",
		Lang:             requestLang(r),
	}
	if paged {
		limit, okLimit := parseCount(req.Limit, h.config.Offerings.DefaultLimit)
		offset, okOffset := parseCount(req.Offset, 0)
		if !okLimit || !okOffset {
			respondInvalid(w, "Invalid limit and/or offset.")
			return database.OfferingFilter{}, false
		}
		f.Limit, f.Offset = limit, offset
	}
	return f, true
}

// parseDepartment reads the required department_code argument.
func parseDepartment(w http.ResponseWriter, r *http.Request) (string, bool) {
	req := DepartmentRequest{DepartmentCode: strings.TrimSpace(r.URL.Query().Get("department_code"))}
	if verr := validation.ValidateStruct(req); verr != nil {
		respondValidation(w, verr)
		return "", false
	}
	return upperCode(req.DepartmentCode), true
}
