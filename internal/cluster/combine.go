// Registhor - Training Registration and Offering Analytics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/registhor

package cluster

import (
	"strconv"

	"github.com/tomtom215/registhor/internal/models"
)

// DefaultDigits rounds coordinates to one decimal degree, roughly 11 km
// of latitude.
const DefaultDigits = 1

// MaxDigits bounds the configurable precision.
const MaxDigits = 6

// key identifies a cluster. Geocoded records are keyed by their rounded
// coordinates; the rest by exact city name.
type key struct {
	geocoded bool
	lat, lng float64
	name     string
}

func keyOf(loc models.LocationCount, digits int) key {
	if !loc.Geocoded() {
		return key{name: loc.City}
	}
	return key{
		geocoded: true,
		lat:      RoundHalfEven(loc.Latitude.Value, digits),
		lng:      RoundHalfEven(loc.Longitude.Value, digits),
	}
}

// RoundHalfEven rounds v to the given number of decimal digits. The
// result is the nearest decimal to the exact binary value of v, with exact
// ties going to the even digit (45.25 -> 45.2, 45.35 -> 45.4 because the
// float64 nearest 45.35 lies slightly above it).
func RoundHalfEven(v float64, digits int) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', digits, 64), 64)
	if err != nil {
		return v
	}
	return r
}

// Combine merges map markers that land on the same rounded coordinate
// pair (or, without coordinates, share a city name) and sums their
// counts.
//
// The input must already be sorted by Count descending: the first record
// of each cluster becomes its representative and keeps its unrounded
// coordinates and name, so the largest city absorbs its smaller
// neighbours. Output order is first-seen order. The input slice is not
// modified.
func Combine(locations []models.LocationCount, digits int) []models.LocationCount {
	if digits < 0 {
		digits = 0
	}
	if digits > MaxDigits {
		digits = MaxDigits
	}

	merged := make([]models.LocationCount, 0, len(locations))
	index := make(map[key]int, len(locations))

	for _, loc := range locations {
		k := keyOf(loc, digits)
		if i, seen := index[k]; seen {
			merged[i].Count += loc.Count
			continue
		}
		index[k] = len(merged)
		merged = append(merged, loc)
	}

	return merged
}
