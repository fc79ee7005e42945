// Registhor - Training Registration and Offering Analytics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/registhor

package database

import (
	"context"
	"database/sql"
	"fmt"
)

// LearnerCity is a city and province as entered by a learner.
type LearnerCity struct {
	City     string
	Province string
}

// LearnerCities returns the distinct learner (city, province) pairs across
// both registration years.
func (db *DB) LearnerCities(ctx context.Context, lang string) ([]LearnerCity, error) {
	city, province := col("learner_city", lang), col("learner_province", lang)
	q := fmt.Sprintf(`
		SELECT DISTINCT %[1]s, %[2]s FROM lsr_this_year
		UNION
		SELECT DISTINCT %[1]s, %[2]s FROM lsr_last_year`, city, province)

	results := []LearnerCity{}
	err := db.queryRows(ctx, "learner_cities", q, nil, func(rows *sql.Rows) error {
		var c, p sql.NullString
		if err := rows.Scan(&c, &p); err != nil {
			return err
		}
		results = append(results, LearnerCity{City: str(c), Province: str(p)})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// LearnerClassifications returns the distinct learner classifications
// across both registration years.
func (db *DB) LearnerClassifications(ctx context.Context) ([]string, error) {
	return db.distinctStrings(ctx, "learner_classifications", "learner_classif")
}

// BillingDepartments returns the distinct billing department names across
// both registration years. Names are raw.
func (db *DB) BillingDepartments(ctx context.Context, lang string) ([]string, error) {
	return db.distinctStrings(ctx, "billing_departments", col("billing_dept_name", lang))
}

// distinctStrings unions one column of both registration years. NULL
// reads as "".
func (db *DB) distinctStrings(ctx context.Context, operation, column string) ([]string, error) {
	q := fmt.Sprintf(`
		SELECT DISTINCT %[1]s FROM lsr_this_year
		UNION
		SELECT DISTINCT %[1]s FROM lsr_last_year`, column)

	results := []string{}
	err := db.queryRows(ctx, operation, q, nil, func(rows *sql.Rows) error {
		var v sql.NullString
		if err := rows.Scan(&v); err != nil {
			return err
		}
		results = append(results, str(v))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}
