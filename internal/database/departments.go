// Registhor - Training Registration and Offering Analytics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/registhor

package database

import (
	"context"
	"database/sql"
)

// MandatoryCourseCodes returns the course codes a department marked as
// mandatory.
func (db *DB) MandatoryCourseCodes(ctx context.Context, departmentCode string) ([]string, error) {
	results := []string{}
	err := db.queryRows(ctx, "mandatory_courses",
		`SELECT course_code FROM mandatory_courses WHERE dept_code = ? ORDER BY course_code`,
		[]interface{}{departmentCode},
		func(rows *sql.Rows) error {
			var code string
			if err := rows.Scan(&code); err != nil {
				return err
			}
			results = append(results, code)
			return nil
		})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// AddMandatoryCourse marks a course mandatory for a department. Inserting
// an existing pair fails with an error for which IsDuplicate is true.
func (db *DB) AddMandatoryCourse(ctx context.Context, departmentCode, courseCode string) error {
	_, err := db.exec(ctx, "add_mandatory_course",
		`INSERT INTO mandatory_courses (dept_code, course_code) VALUES (?, ?)`,
		departmentCode, courseCode)
	return err
}

// RemoveMandatoryCourse deletes the pair. Removing a pair that does not
// exist is not an error.
func (db *DB) RemoveMandatoryCourse(ctx context.Context, departmentCode, courseCode string) error {
	_, err := db.exec(ctx, "remove_mandatory_course",
		`DELETE FROM mandatory_courses WHERE dept_code = ? AND course_code = ?`,
		departmentCode, courseCode)
	return err
}
