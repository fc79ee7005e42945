// Registhor - Training Registration and Offering Analytics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/registhor

package database

import (
	"context"
	"reflect"
	"testing"

	"github.com/tomtom215/registhor/internal/models"
)

func offeringIDs(rows []OfferingRow) []int64 {
	ids := make([]int64, len(rows))
	for i, r := range rows {
		ids[i] = r.OfferingID
	}
	return ids
}

func januaryFilter() OfferingFilter {
	return OfferingFilter{
		From:  date("2024-01-01"),
		To:    date("2024-01-31"),
		Lang:  "en",
		Limit: 100,
	}
}

func TestOfferings_Filters(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		modify func(*OfferingFilter)
		want   []int64
	}{
		{"date overlap", func(*OfferingFilter) {}, []int64{3, 2, 1, 6, 4}},
		{"exclude cancelled", func(f *OfferingFilter) { f.ExcludeCancelled = true }, []int64{3, 1, 6, 4}},
		{"course code", func(f *OfferingFilter) { f.CourseCode = "G101" }, []int64{2, 1, 6}},
		{"instructor substring", func(f *OfferingFilter) { f.InstructorName = "Alice" }, []int64{3, 1}},
		{"business line", func(f *OfferingFilter) { f.BusinessLine = "Leadership" }, []int64{3, 4}},
		{"clients only", func(f *OfferingFilter) { f.ClientsOnly = true }, []int64{3, 2}},
		{"limit and offset", func(f *OfferingFilter) { f.Limit, f.Offset = 2, 1 }, []int64{2, 1}},
		{"march only", func(f *OfferingFilter) {
			f.From, f.To = date("2024-03-01"), date("2024-03-01")
		}, []int64{5}},
		{"outside every offering", func(f *OfferingFilter) {
			f.From, f.To = date("2025-01-01"), date("2025-12-31")
		}, []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f := januaryFilter()
			tt.modify(&f)
			rows, err := db.Offerings(ctx, f)
			if err != nil {
				t.Fatalf("Offerings() error = %v", err)
			}
			if got := offeringIDs(rows); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Offerings() ids = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOfferings_Columns(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	ctx := context.Background()

	rows, err := db.Offerings(ctx, januaryFilter())
	if err != nil {
		t.Fatalf("Offerings() error = %v", err)
	}
	byID := make(map[int64]OfferingRow, len(rows))
	for _, r := range rows {
		byID[r.OfferingID] = r
	}

	gatineau := byID[3]
	if gatineau.ClientDeptName != "Health Canada" || gatineau.ClientDeptCode != "HC" {
		t.Errorf("client = %q/%q", gatineau.ClientDeptCode, gatineau.ClientDeptName)
	}
	if gatineau.StartDate != "2023-12-20" || gatineau.EndDate != "2024-02-05" {
		t.Errorf("dates = %s..%s", gatineau.StartDate, gatineau.EndDate)
	}
	if !gatineau.Start.Equal(date("2023-12-20")) {
		t.Errorf("Start = %v", gatineau.Start)
	}
	if gatineau.BusinessLine != "Leadership" || gatineau.OfferingProvince != "Quebec" {
		t.Errorf("business line/province = %q/%q", gatineau.BusinessLine, gatineau.OfferingProvince)
	}
	if !gatineau.OfferingLat.Valid || gatineau.OfferingLat.Value != 45.4765 {
		t.Errorf("OfferingLat = %+v", gatineau.OfferingLat)
	}

	webcast := byID[4]
	if webcast.OfferingLat.Valid || webcast.OfferingLng.Valid {
		t.Errorf("webcast coordinates should be null: %+v %+v", webcast.OfferingLat, webcast.OfferingLng)
	}
	if webcast.ClientDeptCode != "" || webcast.OfferingRegion != "" {
		t.Errorf("webcast client/region = %q/%q, want empty", webcast.ClientDeptCode, webcast.OfferingRegion)
	}

	ottawa := byID[1]
	if ottawa.ConfirmedCount != 12 || ottawa.WaitlistedCount != 1 {
		t.Errorf("counts = %d/%d", ottawa.ConfirmedCount, ottawa.WaitlistedCount)
	}
	if ottawa.CourseTitle != "Orientation" {
		t.Errorf("CourseTitle = %q", ottawa.CourseTitle)
	}
}

func TestOfferings_French(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	f := januaryFilter()
	f.Lang = "fr"

	rows, err := db.Offerings(context.Background(), f)
	if err != nil {
		t.Fatalf("Offerings() error = %v", err)
	}
	if len(rows) != 5 {
		t.Fatalf("Offerings() returned %d rows, want 5", len(rows))
	}

	last := rows[len(rows)-1]
	if last.OfferingCity != "Webdiffusion" {
		t.Errorf("last city = %q, want Webdiffusion", last.OfferingCity)
	}
	for _, r := range rows {
		switch r.OfferingID {
		case 1:
			if r.BusinessLine != "Apprentissage de base" || r.CourseTitle != "Orientation FR" {
				t.Errorf("offering 1 = %q/%q", r.BusinessLine, r.CourseTitle)
			}
		case 3:
			if r.ClientDeptName != "Santé Canada" || r.OfferingProvince != "Québec" {
				t.Errorf("offering 3 = %q/%q", r.ClientDeptName, r.OfferingProvince)
			}
		}
	}
}

func TestOfferingCountsByCity(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	ctx := context.Background()

	got, err := db.OfferingCountsByCity(ctx, januaryFilter())
	if err != nil {
		t.Fatalf("OfferingCountsByCity() error = %v", err)
	}

	want := []struct {
		city  string
		count int64
		valid bool
	}{
		{"Ottawa", 2, true},
		{"Gatineau", 1, true},
		{"Kanata", 1, true},
		{"Webcast", 1, false},
	}
	if len(got) != len(want) {
		t.Fatalf("OfferingCountsByCity() = %+v", got)
	}
	for i, w := range want {
		if got[i].City != w.city || got[i].Count != w.count || got[i].Latitude.Valid != w.valid {
			t.Errorf("row %d = %+v, want %s/%d", i, got[i], w.city, w.count)
		}
	}

	f := januaryFilter()
	f.ExcludeCancelled = true
	f.BusinessLine = "Core Learning"
	got, err = db.OfferingCountsByCity(ctx, f)
	if err != nil {
		t.Fatalf("OfferingCountsByCity() error = %v", err)
	}
	wantFiltered := []models.LocationCount{{
		City:      "Ottawa",
		Latitude:  models.Coordinate{Value: 45.4215, Valid: true},
		Longitude: models.Coordinate{Value: -75.6972, Valid: true},
		Count:     2,
	}}
	if !reflect.DeepEqual(got, wantFiltered) {
		t.Errorf("OfferingCountsByCity() filtered = %+v, want %+v", got, wantFiltered)
	}
}
