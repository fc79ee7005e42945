// Registhor - Training Registration and Offering Analytics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/registhor

package normalize

import (
	"time"

	"github.com/tomtom215/registhor/internal/models"
)

// Background colours used by the offerings dashboard.
const (
	ColorGreen  = "#d4edda"
	ColorGrey   = "#ddd"
	ColorOrange = "#fff3cd"
	ColorRed    = "#f8d7da"
)

// DateLayout is the ISO date format used on the wire.
const DateLayout = "2006-01-02"

// ColorRules configures when an upcoming offering counts as safe (green).
type ColorRules struct {
	// ConfirmedThreshold is the confirmed registrations at which an
	// offering will not be cancelled.
	ConfirmedThreshold int64
	// UpcomingDays is how far ahead an offering must start to be green
	// regardless of registrations.
	UpcomingDays int
}

// DefaultColorRules returns the thresholds used by the programs team.
func DefaultColorRules() ColorRules {
	return ColorRules{ConfirmedThreshold: 10, UpcomingDays: 30}
}

// BackgroundColor classifies an offering for display. Dates compare as
// calendar days in today's location.
//
// Cancelled is checked first so past cancelled offerings stay red.
func BackgroundColor(start, end time.Time, confirmed int64, status string, today time.Time, rules ColorRules) string {
	if status == models.OfferingCancelled {
		return ColorRed
	}
	day := truncateDay(today)
	if truncateDay(end).Before(day) {
		return ColorGrey
	}
	horizon := day.AddDate(0, 0, rules.UpcomingDays)
	if !truncateDay(start).Before(horizon) || confirmed >= rules.ConfirmedThreshold {
		return ColorGreen
	}
	return ColorOrange
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

var (
	businessTypeFR = map[string]string{
		"Events":         "Événement",
		"Instructor-Led": "Salle de classe",
	}
	offeringLanguageFR = map[string]string{
		"Bilingual": "Bilingue",
		"English":   "Anglais",
		"French":    "Français",
	}
	offeringStatusFR = map[string]string{
		models.OfferingCancelled: "Annulée",
		models.OfferingDelivered: "Livrée",
		models.OfferingOpen:      "Ouverte",
	}
)

func translate(m map[string]string, v string) string {
	if t, ok := m[v]; ok {
		return t
	}
	return v
}

// LocalizeOffering translates the stored English vocabulary of an offering
// when lang is French. Unknown values pass through unchanged.
func LocalizeOffering(o *models.Offering, lang string) {
	if lang != LangFR {
		return
	}
	o.BusinessType = translate(businessTypeFR, o.BusinessType)
	o.OfferingLanguage = translate(offeringLanguageFR, o.OfferingLanguage)
	o.OfferingStatus = translate(offeringStatusFR, o.OfferingStatus)
}
