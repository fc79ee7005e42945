// Registhor - Training Registration and Offering Analytics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/registhor

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tomtom215/registhor/internal/database/query"
	"github.com/tomtom215/registhor/internal/models"
)

// OfferingFilter holds the offerings dashboard criteria.
type OfferingFilter struct {
	From             time.Time
	To               time.Time
	ExcludeCancelled bool
	CourseCode       string
	InstructorName   string // substring of instructor_names
	BusinessLine     string
	ClientsOnly      bool // only offerings requested by a client department
	Lang             string
	Limit            int
	Offset           int
}

// OfferingRow is an offering plus the raw dates used for colouring.
type OfferingRow struct {
	models.Offering
	Start time.Time
	End   time.Time
}

// statuses returns the offering statuses the filter admits.
func (f *OfferingFilter) statuses() []string {
	if f.ExcludeCancelled {
		return []string{models.OfferingDelivered, models.OfferingOpen}
	}
	return []string{models.OfferingCancelled, models.OfferingDelivered, models.OfferingOpen}
}

// buildFilterConditions returns the WHERE clause shared by the offering
// list and the counts by city. The query aliases offerings as a and
// product_info as c.
func (f *OfferingFilter) buildFilterConditions() (string, []interface{}) {
	wb := query.NewWhereBuilder()
	wb.AddDateOverlap("a.start_date", "a.end_date", f.From, f.To)
	wb.AddIn("a.offering_status", f.statuses())
	wb.AddEquals("a.course_code", f.CourseCode)
	wb.AddContains("a.instructor_names", f.InstructorName)
	wb.AddEquals("c."+col("business_line", f.Lang), f.BusinessLine)
	if f.ClientsOnly {
		wb.AddClause("(a.client IS NOT NULL AND a.client != '')")
	}
	return wb.BuildWithPrefix()
}

// Offerings returns the offerings matching f, ordered by city then course
// code.
func (db *DB) Offerings(ctx context.Context, f OfferingFilter) ([]OfferingRow, error) {
	where, args := f.buildFilterConditions()
	lang := f.Lang

	q := fmt.Sprintf(`
		SELECT a.offering_id, a.%s, a.course_code, a.instructor_names,
			a.confirmed_count, a.cancelled_count, a.waitlisted_count, a.no_show_count,
			a.business_type, a.event_description, a.start_date, a.end_date,
			c.%s, a.client, b.%s, a.offering_status, a.offering_language,
			a.%s, a.%s, a.%s, a.offering_lat, a.offering_lng
		FROM offerings AS a
		LEFT OUTER JOIN departments AS b ON a.client = b.dept_code
		LEFT OUTER JOIN product_info AS c ON a.course_code = c.course_code
		%s
		ORDER BY a.%s ASC, a.course_code ASC, a.offering_id ASC
		LIMIT ? OFFSET ?`,
		col("course_title", lang), col("business_line", lang), col("dept_name", lang),
		col("offering_region", lang), col("offering_province", lang), col("offering_city", lang),
		where, col("offering_city", lang))
	args = append(args, f.Limit, f.Offset)

	results := []OfferingRow{}
	err := db.queryRows(ctx, "offerings", q, args, func(rows *sql.Rows) error {
		var (
			id                                       int64
			title, code, instructors                 sql.NullString
			confirmed, cancelled, waitlisted, noShow sql.NullInt64
			businessType, description                sql.NullString
			start, end                               sql.NullTime
			businessLine, client, clientName         sql.NullString
			status, language, region, province, city sql.NullString
			lat, lng                                 sql.NullFloat64
		)
		if err := rows.Scan(&id, &title, &code, &instructors,
			&confirmed, &cancelled, &waitlisted, &noShow,
			&businessType, &description, &start, &end,
			&businessLine, &client, &clientName, &status, &language,
			&region, &province, &city, &lat, &lng); err != nil {
			return err
		}

		row := OfferingRow{
			Offering: models.Offering{
				OfferingID:       id,
				CourseTitle:      str(title),
				CourseCode:       str(code),
				InstructorNames:  str(instructors),
				ConfirmedCount:   num(confirmed),
				CancelledCount:   num(cancelled),
				WaitlistedCount:  num(waitlisted),
				NoShowCount:      num(noShow),
				BusinessType:     str(businessType),
				EventDescription: str(description),
				BusinessLine:     str(businessLine),
				ClientDeptCode:   str(client),
				ClientDeptName:   str(clientName),
				OfferingStatus:   str(status),
				OfferingLanguage: str(language),
				OfferingRegion:   str(region),
				OfferingProvince: str(province),
				OfferingCity:     str(city),
				OfferingLat:      models.CoordinateFromNull(lat),
				OfferingLng:      models.CoordinateFromNull(lng),
			},
		}
		if start.Valid {
			row.Start = start.Time
			row.StartDate = start.Time.Format("2006-01-02")
		}
		if end.Valid {
			row.End = end.Time
			row.EndDate = end.Time.Format("2006-01-02")
		}
		results = append(results, row)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// OfferingCountsByCity counts matching offerings per (city, lat, lng),
// largest first. Cities sharing a name in different provinces stay apart.
func (db *DB) OfferingCountsByCity(ctx context.Context, f OfferingFilter) ([]models.LocationCount, error) {
	where, args := f.buildFilterConditions()
	city := col("offering_city", f.Lang)

	q := fmt.Sprintf(`
		SELECT a.%s, a.offering_lat, a.offering_lng, COUNT(a.offering_id)
		FROM offerings AS a
		LEFT OUTER JOIN product_info AS c ON a.course_code = c.course_code
		%s
		GROUP BY 1, 2, 3
		ORDER BY 4 DESC, 1 ASC`, city, where)

	return db.locationCounts(ctx, "offering_counts", q, args)
}

// locationCounts scans (city, lat, lng, count) rows.
func (db *DB) locationCounts(ctx context.Context, operation, q string, args []interface{}) ([]models.LocationCount, error) {
	results := []models.LocationCount{}
	err := db.queryRows(ctx, operation, q, args, func(rows *sql.Rows) error {
		var (
			city     sql.NullString
			lat, lng sql.NullFloat64
			count    int64
		)
		if err := rows.Scan(&city, &lat, &lng, &count); err != nil {
			return err
		}
		results = append(results, models.LocationCount{
			City:      str(city),
			Latitude:  models.CoordinateFromNull(lat),
			Longitude: models.CoordinateFromNull(lng),
			Count:     count,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}
