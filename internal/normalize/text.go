// Registhor - Training Registration and Offering Analytics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/registhor

package normalize

import (
	"regexp"
	"sort"
	"strings"
)

// Languages accepted by the API.
const (
	LangEN = "en"
	LangFR = "fr"
)

// Lang returns "fr" only for exactly "fr"; anything else is English.
func Lang(s string) string {
	if s == LangFR {
		return LangFR
	}
	return LangEN
}

// embeddedCode matches course codes such as "(G123)" or "[A230]" that
// catalogue titles sometimes carry.
var embeddedCode = regexp.MustCompile(`[(\[]?[a-zA-Z]\d{3}[)\]]?`)

// CourseTitle removes embedded course codes from a title and trims it.
func CourseTitle(title string) string {
	return strings.TrimSpace(embeddedCode.ReplaceAllString(title, ""))
}

var departmentAnnotations = strings.NewReplacer(
	"_archive_", "",
	"_obsolete_", "",
	"_Obsolete_", "",
	"Obsolete_", "",
)

// DepartmentName strips internal archive annotations from a department name.
func DepartmentName(name string) string {
	return departmentAnnotations.Replace(name)
}

var provinceSuffixes = strings.NewReplacer(
	", Outside Canada", "",
	", Hors du Canada", "",
	", Unknown", "",
	", Iconnu", "",
)

// CityProvince joins a learner city and province as "city, province",
// dropping provinces that carry no information.
func CityProvince(city, province string) string {
	return provinceSuffixes.Replace(city + ", " + province)
}

// Junk is a set of placeholder values to drop from lookup lists.
type Junk map[string]struct{}

// NewJunk builds a Junk set from configured values.
func NewJunk(values []string) Junk {
	j := make(Junk, len(values))
	for _, v := range values {
		j[v] = struct{}{}
	}
	return j
}

// Contains reports whether v is a junk value.
func (j Junk) Contains(v string) bool {
	_, ok := j[v]
	return ok
}

// UniqueSorted returns the distinct values of in, sorted ascending.
func UniqueSorted(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
