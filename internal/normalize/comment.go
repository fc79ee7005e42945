// Registhor - Training Registration and Offering Analytics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/registhor

package normalize

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	cityFixesEN = strings.NewReplacer(
		"(Ncr)", "(NCR)",
		"'S", "'s",
	)
	cityFixesFR = strings.NewReplacer(
		"Région De La Capitale Nationale (Rcn)", "Région de la capitale nationale (RCN)",
		"En Ligne", "En ligne",
		"'S", "'s",
	)
)

// CommentCity title-cases an offering city as shown next to a comment and
// restores acronyms the casing destroys.
func CommentCity(city, lang string) string {
	// A Caser holds state and must not be shared between goroutines.
	if lang == LangFR {
		return cityFixesFR.Replace(cases.Title(language.French).String(city))
	}
	return cityFixesEN.Replace(cases.Title(language.English).String(city))
}

// LearnerClassification drops the unknown sub-level and translates the
// remaining "Unknown" in French.
func LearnerClassification(classif, lang string) string {
	classif = strings.ReplaceAll(classif, " - Unknown", "")
	if lang == LangFR {
		classif = strings.ReplaceAll(classif, "Unknown", "Inconnu")
	}
	return classif
}

// Quarter renders a fiscal quarter; French uses T (trimestre) for Q.
func Quarter(q, lang string) string {
	if lang == LangFR {
		return strings.ReplaceAll(q, "Q", "T")
	}
	return q
}
