// Registhor - Training Registration and Offering Analytics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/registhor

package database

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"github.com/tomtom215/registhor/internal/models"
)

// tombstoneColumns maps the public attribute names to product_info columns.
// Only these columns can ever be spliced into a tombstone query.
var tombstoneColumns = map[string]string{
	"course-title-en":       "course_title_en",
	"course-title-fr":       "course_title_fr",
	"course-description-en": "course_description_en",
	"course-description-fr": "course_description_fr",
	"business-type":         "business_type",
	"provider":              "provider",
	"business-line-en":      "business_line_en",
	"business-line-fr":      "business_line_fr",
	"main-topic":            "main_topic",
	"duration":              "duration",
	"required-training":     "required_training",
	"displayed-on-gccampus": "displayed_on_gccampus",
	"point-of-contact":      "point_of_contact",
	"director-general":      "director_general",
	"program-manager":       "program_manager",
	"project-lead":          "project_lead",
}

// TombstoneColumn resolves a public attribute name.
func TombstoneColumn(attr string) (string, bool) {
	c, ok := tombstoneColumns[attr]
	return c, ok
}

// TombstoneAttributes lists the accepted attribute names, sorted.
func TombstoneAttributes() []string {
	names := make([]string, 0, len(tombstoneColumns))
	for k := range tombstoneColumns {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Tombstone returns the catalogue entry for a course, or ErrNotFound.
func (db *DB) Tombstone(ctx context.Context, courseCode string) (*models.CourseTombstone, error) {
	var result *models.CourseTombstone
	err := db.queryRows(ctx, "tombstone", `
		SELECT course_code, course_title_en, course_title_fr,
			course_description_en, course_description_fr, business_type, provider,
			business_line_en, business_line_fr, main_topic, duration, required_training,
			displayed_on_gccampus, point_of_contact, director_general, program_manager, project_lead
		FROM product_info
		WHERE course_code = ?
		LIMIT 1`,
		[]interface{}{courseCode},
		func(rows *sql.Rows) error {
			var v [17]sql.NullString
			dest := make([]interface{}, len(v))
			for i := range v {
				dest[i] = &v[i]
			}
			if err := rows.Scan(dest...); err != nil {
				return err
			}
			result = &models.CourseTombstone{
				CourseCode:          str(v[0]),
				CourseTitleEN:       str(v[1]),
				CourseTitleFR:       str(v[2]),
				CourseDescriptionEN: str(v[3]),
				CourseDescriptionFR: str(v[4]),
				BusinessType:        str(v[5]),
				Provider:            str(v[6]),
				BusinessLineEN:      str(v[7]),
				BusinessLineFR:      str(v[8]),
				MainTopic:           str(v[9]),
				Duration:            str(v[10]),
				RequiredTraining:    str(v[11]),
				DisplayedOnGCCampus: str(v[12]),
				PointOfContact:      str(v[13]),
				DirectorGeneral:     str(v[14]),
				ProgramManager:      str(v[15]),
				ProjectLead:         str(v[16]),
			}
			return nil
		})
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, fmt.Errorf("tombstone %s: %w", courseCode, ErrNotFound)
	}
	return result, nil
}

// TombstoneAttr returns one attribute of a course's catalogue entry. A
// missing course or a NULL value yields "".
func (db *DB) TombstoneAttr(ctx context.Context, courseCode, attr string) (string, error) {
	column, ok := TombstoneColumn(attr)
	if !ok {
		return "", fmt.Errorf("unknown tombstone attribute %q", attr)
	}

	var value sql.NullString
	err := db.queryRows(ctx, "tombstone_attr",
		fmt.Sprintf(`SELECT %s FROM product_info WHERE course_code = ? LIMIT 1`, column),
		[]interface{}{courseCode},
		func(rows *sql.Rows) error {
			return rows.Scan(&value)
		})
	if err != nil {
		return "", err
	}
	return str(value), nil
}
