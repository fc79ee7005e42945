// Registhor - Training Registration and Offering Analytics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/registhor

package models

import (
	"database/sql"
	"strconv"

	"github.com/goccy/go-json"
)

// Coordinate is an optional decimal degree. Absent coordinates serialise
// as "" so non-geocoded rows (webcasts, online sessions) keep the shape
// the dashboards expect.
type Coordinate struct {
	Value float64
	Valid bool
}

// Coord returns a present coordinate.
func Coord(v float64) Coordinate {
	return Coordinate{Value: v, Valid: true}
}

// CoordinateFromNull converts a nullable column value.
func CoordinateFromNull(n sql.NullFloat64) Coordinate {
	return Coordinate{Value: n.Float64, Valid: n.Valid}
}

func (c Coordinate) MarshalJSON() ([]byte, error) {
	if !c.Valid {
		return []byte(`""`), nil
	}
	return strconv.AppendFloat(nil, c.Value, 'f', -1, 64), nil
}

func (c *Coordinate) UnmarshalJSON(data []byte) error {
	if string(data) == `""` || string(data) == "null" {
		*c = Coordinate{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*c = Coord(v)
	return nil
}

// LocationCount is one map marker: a place and the number of offerings or
// registrations recorded there.
type LocationCount struct {
	City      string     `json:"offering_city"`
	Latitude  Coordinate `json:"offering_lat"`
	Longitude Coordinate `json:"offering_lng"`
	Count     int64      `json:"count"`
}

// Geocoded reports whether both coordinates are present.
func (l LocationCount) Geocoded() bool {
	return l.Latitude.Valid && l.Longitude.Valid
}
