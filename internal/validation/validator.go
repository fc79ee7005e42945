// Registhor - Training Registration and Offering Analytics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/registhor

package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// FieldError describes one failed rule on one request field.
type FieldError struct {
	Field   string
	Tag     string
	Param   string
	Message string
}

func (e FieldError) Error() string {
	return e.Message
}

// RequestValidationError collects the failures for one request. Missing
// arguments are kept apart from malformed ones because they map to
// different HTTP statuses.
type RequestValidationError struct {
	errors []FieldError
}

// Errors returns every failure in struct field order.
func (ve *RequestValidationError) Errors() []FieldError {
	return ve.errors
}

// Missing returns the names of required arguments that were absent.
func (ve *RequestValidationError) Missing() []string {
	var missing []string
	for _, e := range ve.errors {
		if e.Tag == "required" {
			missing = append(missing, e.Field)
		}
	}
	return missing
}

// Invalid returns the first failure that is not a missing argument.
func (ve *RequestValidationError) Invalid() (FieldError, bool) {
	for _, e := range ve.errors {
		if e.Tag != "required" {
			return e, true
		}
	}
	return FieldError{}, false
}

func (ve *RequestValidationError) Error() string {
	if len(ve.errors) == 0 {
		return "validation failed"
	}
	messages := make([]string, len(ve.errors))
	for i, e := range ve.errors {
		messages[i] = e.Message
	}
	return strings.Join(messages, "; ")
}

// GetValidator returns the shared validator. Field names in messages come
// from the `query` or `json` tag so they match what clients sent.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, tag := range []string{"query", "json"} {
				name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
				if name != "" && name != "-" {
					return name
				}
			}
			return fld.Name
		})
	})
	return validate
}

// ValidateStruct runs the `validate` tags on s.
func ValidateStruct(s interface{}) *RequestValidationError {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return &RequestValidationError{errors: []FieldError{{Field: "unknown", Tag: "unknown", Message: err.Error()}}}
	}

	fieldErrors := make([]FieldError, len(validationErrs))
	for i, fe := range validationErrs {
		fieldErrors[i] = FieldError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Param:   fe.Param(),
			Message: translateError(fe),
		}
	}
	return &RequestValidationError{errors: fieldErrors}
}

// fieldMessages override the generic message for specific arguments.
var fieldMessages = map[string]string{
	"limit":  "Invalid limit and/or offset.",
	"offset": "Invalid limit and/or offset.",
}

var errorMessageTemplates = map[string]string{
	"required": "%s is required",
	"number":   "%s must contain only digits",
	"alphanum": "%s must be alphanumeric",
}

var errorMessageWithParam = map[string]string{
	"oneof": "%s must be one of: %s",
	"max":   "%s must be at most %s characters",
	"min":   "%s must be at least %s characters",
}

func translateError(fe validator.FieldError) string {
	field := fe.Field()

	if fe.Tag() != "required" {
		if msg, ok := fieldMessages[field]; ok {
			return msg
		}
	}

	if fe.Tag() == "datetime" {
		return fmt.Sprintf("%s must be a date in YYYY-MM-DD format", field)
	}
	if template, ok := errorMessageTemplates[fe.Tag()]; ok {
		return fmt.Sprintf(template, field)
	}
	if template, ok := errorMessageWithParam[fe.Tag()]; ok {
		return fmt.Sprintf(template, field, fe.Param())
	}
	return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
}
