// Registhor - Training Registration and Offering Analytics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/registhor

package database

import (
	"context"
	"fmt"
)

// Column types are restricted to those DuckDB and PostgreSQL share.
const lsrColumns = `
	reg_id VARCHAR NOT NULL,
	course_code VARCHAR,
	course_title_en VARCHAR,
	course_title_fr VARCHAR,
	billing_dept_code VARCHAR,
	billing_dept_name_en VARCHAR,
	billing_dept_name_fr VARCHAR,
	reg_status VARCHAR,
	learner_classif VARCHAR,
	learner_city_en VARCHAR,
	learner_city_fr VARCHAR,
	learner_province_en VARCHAR,
	learner_province_fr VARCHAR,
	offering_city_en VARCHAR,
	offering_city_fr VARCHAR,
	offering_lat FLOAT8,
	offering_lng FLOAT8`

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS departments (
		dept_code VARCHAR PRIMARY KEY,
		dept_name_en VARCHAR,
		dept_name_fr VARCHAR
	)`,
	`CREATE TABLE IF NOT EXISTS product_info (
		course_code VARCHAR PRIMARY KEY,
		course_title_en VARCHAR,
		course_title_fr VARCHAR,
		course_description_en VARCHAR,
		course_description_fr VARCHAR,
		business_type VARCHAR,
		provider VARCHAR,
		business_line_en VARCHAR,
		business_line_fr VARCHAR,
		main_topic VARCHAR,
		duration VARCHAR,
		required_training VARCHAR,
		displayed_on_gccampus VARCHAR,
		point_of_contact VARCHAR,
		director_general VARCHAR,
		program_manager VARCHAR,
		project_lead VARCHAR
	)`,
	`CREATE TABLE IF NOT EXISTS offerings (
		offering_id BIGINT PRIMARY KEY,
		course_code VARCHAR,
		course_title_en VARCHAR,
		course_title_fr VARCHAR,
		instructor_names VARCHAR,
		confirmed_count BIGINT,
		cancelled_count BIGINT,
		waitlisted_count BIGINT,
		no_show_count BIGINT,
		business_type VARCHAR,
		event_description VARCHAR,
		start_date DATE,
		end_date DATE,
		client VARCHAR,
		offering_status VARCHAR,
		offering_language VARCHAR,
		offering_region_en VARCHAR,
		offering_region_fr VARCHAR,
		offering_province_en VARCHAR,
		offering_province_fr VARCHAR,
		offering_city_en VARCHAR,
		offering_city_fr VARCHAR,
		offering_lat FLOAT8,
		offering_lng FLOAT8
	)`,
	`CREATE TABLE IF NOT EXISTS lsr_this_year (` + lsrColumns + `
	)`,
	`CREATE TABLE IF NOT EXISTS lsr_last_year (` + lsrColumns + `
	)`,
	`CREATE TABLE IF NOT EXISTS mandatory_courses (
		dept_code VARCHAR NOT NULL,
		course_code VARCHAR NOT NULL,
		PRIMARY KEY (dept_code, course_code)
	)`,
	`CREATE TABLE IF NOT EXISTS comments (
		survey_id VARCHAR,
		course_code VARCHAR,
		short_question VARCHAR,
		text_answer VARCHAR,
		learner_classif VARCHAR,
		learner_dept_code VARCHAR,
		offering_city_en VARCHAR,
		offering_city_fr VARCHAR,
		fiscal_year VARCHAR,
		quarter VARCHAR,
		overall_satisfaction INTEGER,
		stars INTEGER,
		magnitude FLOAT8,
		nanos BIGINT
	)`,
}

var indexStatements = []string{
	`CREATE INDEX IF NOT EXISTS idx_offerings_dates ON offerings(start_date, end_date)`,
	`CREATE INDEX IF NOT EXISTS idx_lsr_this_year_dept ON lsr_this_year(billing_dept_code)`,
	`CREATE INDEX IF NOT EXISTS idx_comments_question ON comments(short_question, learner_dept_code)`,
}

// createTables creates every table and index if missing.
func (db *DB) createTables(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}
	for _, stmt := range indexStatements {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}
	return nil
}
