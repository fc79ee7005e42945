// Registhor - Training Registration and Offering Analytics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/registhor

package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tomtom215/registhor/internal/models"
)

// CourseCodes lists the distinct (course code, title) pairs seen in this
// year's and last year's registrations, ordered by code. Titles are raw.
func (db *DB) CourseCodes(ctx context.Context, lang string) ([]models.CourseCode, error) {
	title := col("course_title", lang)
	q := fmt.Sprintf(`
		SELECT a.course_code, a.%[1]s
		FROM (
			SELECT DISTINCT course_code, %[1]s FROM lsr_last_year
			UNION
			SELECT DISTINCT course_code, %[1]s FROM lsr_this_year
		) AS a
		WHERE a.course_code IS NOT NULL
		ORDER BY 1 ASC, 2 ASC`, title)

	results := []models.CourseCode{}
	err := db.queryRows(ctx, "course_codes", q, nil, func(rows *sql.Rows) error {
		var code, name sql.NullString
		if err := rows.Scan(&code, &name); err != nil {
			return err
		}
		results = append(results, models.CourseCode{CourseCode: str(code), CourseTitle: str(name)})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// Departments lists every row of the departments table. Names are raw and
// unordered; callers clean and sort them.
func (db *DB) Departments(ctx context.Context, lang string) ([]models.DepartmentCode, error) {
	q := fmt.Sprintf(`SELECT dept_code, %s FROM departments`, col("dept_name", lang))

	results := []models.DepartmentCode{}
	err := db.queryRows(ctx, "departments", q, nil, func(rows *sql.Rows) error {
		var code, name sql.NullString
		if err := rows.Scan(&code, &name); err != nil {
			return err
		}
		results = append(results, models.DepartmentCode{DepartmentCode: str(code), DepartmentName: str(name)})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// TrainingLocations counts a department's confirmed registrations this
// year per offering (city, lat, lng), largest first.
func (db *DB) TrainingLocations(ctx context.Context, lang, departmentCode string) ([]models.LocationCount, error) {
	q := fmt.Sprintf(`
		SELECT %s, offering_lat, offering_lng, COUNT(reg_id)
		FROM lsr_this_year
		WHERE billing_dept_code = ? AND reg_status = 'Confirmed'
		GROUP BY 1, 2, 3
		ORDER BY 4 DESC, 1 ASC`, col("offering_city", lang))

	return db.locationCounts(ctx, "training_locations", q, []interface{}{departmentCode})
}

// DepartmentExists reports whether code is in the departments table.
func (db *DB) DepartmentExists(ctx context.Context, code string) (bool, error) {
	return db.exists(ctx, "department_exists",
		`SELECT 1 FROM departments WHERE dept_code = ? LIMIT 1`, code)
}

// CourseExists reports whether code appears in either registration year.
func (db *DB) CourseExists(ctx context.Context, code string) (bool, error) {
	return db.exists(ctx, "course_exists", `
		SELECT 1 FROM lsr_this_year WHERE course_code = ?
		UNION ALL
		SELECT 1 FROM lsr_last_year WHERE course_code = ?
		LIMIT 1`, code, code)
}

func (db *DB) exists(ctx context.Context, operation, q string, args ...interface{}) (bool, error) {
	found := false
	err := db.queryRows(ctx, operation, q, args, func(_ *sql.Rows) error {
		found = true
		return nil
	})
	return found, err
}
