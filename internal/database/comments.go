// Registhor - Training Registration and Offering Analytics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/registhor

package database

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/tomtom215/registhor/internal/database/query"
	"github.com/tomtom215/registhor/internal/models"
)

// commentQuestions maps URL question slugs to stored short_question values.
var commentQuestions = map[string]string{
	"general":     "General Comment",
	"technical":   "Technical Comment",
	"language":    "OL Comment",
	"performance": "Performance Comment",
	"reason":      "Reason to Participate",
}

// CommentQuestion resolves a question slug.
func CommentQuestion(slug string) (string, bool) {
	q, ok := commentQuestions[slug]
	return q, ok
}

// CommentFilter selects survey comments. Empty strings and a zero Stars
// mean "any".
type CommentFilter struct {
	Question       string // stored short_question
	DepartmentCode string
	CourseCode     string
	FiscalYear     string
	Stars          int
	Lang           string
	Limit          int
	Offset         int
}

func (f *CommentFilter) buildFilterConditions() (string, []interface{}) {
	wb := query.NewWhereBuilder()
	wb.AddClause("short_question = ?", f.Question)
	wb.AddEquals("course_code", f.CourseCode)
	wb.AddEquals("fiscal_year", f.FiscalYear)
	wb.AddEquals("learner_dept_code", f.DepartmentCode)
	if f.Stars > 0 {
		wb.AddClause("stars = ?", f.Stars)
	}
	return wb.BuildWithPrefix()
}

// CommentCourseCodes lists the distinct course codes with comments for the
// question, fiscal year and department.
func (db *DB) CommentCourseCodes(ctx context.Context, f CommentFilter) ([]string, error) {
	f.CourseCode, f.Stars = "", 0
	where, args := f.buildFilterConditions()
	q := fmt.Sprintf(`SELECT DISTINCT course_code FROM comments %s ORDER BY 1 ASC`, where)

	results := []string{}
	err := db.queryRows(ctx, "comment_course_codes", q, args, func(rows *sql.Rows) error {
		var code sql.NullString
		if err := rows.Scan(&code); err != nil {
			return err
		}
		results = append(results, str(code))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// CommentStarCounts counts comments per star rating. Ratings "1" to "5"
// are always present.
func (db *DB) CommentStarCounts(ctx context.Context, f CommentFilter) (models.StarCounts, error) {
	f.Stars = 0
	where, args := f.buildFilterConditions()
	q := fmt.Sprintf(`SELECT stars, COUNT(survey_id) FROM comments %s GROUP BY 1`, where)

	counts := models.StarCounts{"1": 0, "2": 0, "3": 0, "4": 0, "5": 0}
	err := db.queryRows(ctx, "comment_star_counts", q, args, func(rows *sql.Rows) error {
		var (
			stars sql.NullInt64
			n     int64
		)
		if err := rows.Scan(&stars, &n); err != nil {
			return err
		}
		if stars.Valid && stars.Int64 >= 1 && stars.Int64 <= 5 {
			counts[strconv.FormatInt(stars.Int64, 10)] = n
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return counts, nil
}

// Comments returns raw comment rows, newest fiscal year and quarter first.
// Null satisfaction, stars and sentiment read as zero.
func (db *DB) Comments(ctx context.Context, f CommentFilter) ([]models.Comment, error) {
	where, args := f.buildFilterConditions()
	q := fmt.Sprintf(`
		SELECT text_answer, course_code, learner_classif, %s, fiscal_year, quarter,
			overall_satisfaction, stars, magnitude, nanos
		FROM comments
		%s
		ORDER BY fiscal_year DESC, quarter DESC, survey_id ASC
		LIMIT ? OFFSET ?`, col("offering_city", f.Lang), where)
	args = append(args, f.Limit, f.Offset)

	results := []models.Comment{}
	err := db.queryRows(ctx, "comments", q, args, func(rows *sql.Rows) error {
		var (
			text, code, classif, city, year, quarter sql.NullString
			satisfaction, stars, nanos               sql.NullInt64
			magnitude                                sql.NullFloat64
		)
		if err := rows.Scan(&text, &code, &classif, &city, &year, &quarter,
			&satisfaction, &stars, &magnitude, &nanos); err != nil {
			return err
		}
		results = append(results, models.Comment{
			CommentText:           str(text),
			CourseCode:            str(code),
			LearnerClassification: str(classif),
			OfferingCity:          str(city),
			OfferingFiscalYear:    str(year),
			OfferingQuarter:       str(quarter),
			OverallSatisfaction:   num(satisfaction),
			Stars:                 num(stars),
			Magnitude:             magnitude.Float64,
			Nanos:                 num(nanos),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}
