// Registhor - Training Registration and Offering Analytics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/registhor

package database

import (
	"context"
	"testing"
	"time"

	"github.com/tomtom215/registhor/internal/config"
)

// testConfig returns an in-memory DuckDB configuration with a fast
// tripping breaker.
func testConfig() *config.DatabaseConfig {
	return &config.DatabaseConfig{
		Driver:       DriverDuckDB,
		Path:         ":memory:",
		Threads:      1,
		MaxOpenConns: 4,
		QueryTimeout: 10 * time.Second,
		Migrate:      true,
		Breaker: config.BreakerConfig{
			Enabled:          true,
			FailureThreshold: 3,
			MaxRequests:      1,
			Timeout:          time.Minute,
		},
	}
}

// setupTestDB opens a migrated in-memory database, seeds it and closes it
// when the test ends.
func setupTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(testConfig())
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("Failed to close test database: %v", err)
		}
	})
	seedTestData(t, db)
	return db
}

// seedStatements describes a small dataset:
//   - departments: HC (Health Canada), PCH (archived), UNKNOWN (junk)
//   - product_info: G101 and A230
//   - offerings in Ottawa, Kanata, Gatineau and online through Jan 2024
//   - registrations for HC and PCH over two years
//   - comments for G101 and A230
var seedStatements = []string{
	`INSERT INTO departments VALUES
		('HC', 'Health Canada', 'Santé Canada'),
		('PCH', '_archive_Canadian Heritage', '_archive_Patrimoine canadien'),
		('UNKNOWN', 'Unknown', 'Inconnu')`,

	`INSERT INTO product_info VALUES
		('G101', 'Orientation (G101)', 'Orientation (G101)', 'Intro course', 'Cours d''intro',
		 'Instructor-Led', 'School', 'Core Learning', 'Apprentissage de base', 'Government', '2 days',
		 'Yes', 'Yes', 'Pat Lee', 'DG One', 'PM One', NULL),
		('A230', 'Leadership [A230]', 'Leadership [A230]', NULL, NULL,
		 'Events', 'School', 'Leadership', 'Leadership', 'Leadership', '1 day',
		 'No', 'No', '', '', '', '')`,

	`INSERT INTO offerings VALUES
		(1, 'G101', 'Orientation', 'Orientation FR', 'Alice Smith', 12, 0, 1, 0, 'Instructor-Led', 'Regular',
		 DATE '2024-01-10', DATE '2024-01-11', '', 'Open - Normal', 'English',
		 'NCR', 'RCN', 'Ontario', 'Ontario', 'Ottawa', 'Ottawa', 45.4215, -75.6972),
		(2, 'G101', 'Orientation', 'Orientation FR', 'Bob Jones', 3, 2, 0, 1, 'Instructor-Led', 'Regular',
		 DATE '2024-01-15', DATE '2024-01-16', 'HC', 'Cancelled - Normal', 'French',
		 'NCR', 'RCN', 'Ontario', 'Ontario', 'Kanata', 'Kanata', 45.3088, -75.8987),
		(3, 'A230', 'Leadership', 'Leadership FR', 'Alice Smith', 5, 0, 0, 0, 'Events', 'Client',
		 DATE '2023-12-20', DATE '2024-02-05', 'HC', 'Delivered - Normal', 'Bilingual',
		 'NCR', 'RCN', 'Quebec', 'Québec', 'Gatineau', 'Gatineau', 45.4765, -75.7013),
		(4, 'A230', 'Leadership', 'Leadership FR', 'Carol White', 8, 0, 0, 0, 'Events', 'Webcast',
		 DATE '2024-01-20', DATE '2024-01-20', NULL, 'Open - Normal', 'English',
		 NULL, NULL, NULL, NULL, 'Webcast', 'Webdiffusion', NULL, NULL),
		(5, 'G101', 'Orientation', 'Orientation FR', 'Alice Smith', 9, 0, 0, 0, 'Instructor-Led', 'Regular',
		 DATE '2024-03-01', DATE '2024-03-02', '', 'Open - Normal', 'English',
		 'Pacific', 'Pacifique', 'British Columbia', 'Colombie-Britannique', 'Vancouver', 'Vancouver', 49.2827, -123.1207),
		(6, 'G101', 'Orientation', 'Orientation FR', 'Dan Brown', 4, 0, 0, 0, 'Instructor-Led', 'Regular',
		 DATE '2024-01-22', DATE '2024-01-22', '', 'Open - Normal', 'English',
		 'NCR', 'RCN', 'Ontario', 'Ontario', 'Ottawa', 'Ottawa', 45.4215, -75.6972)`,

	`INSERT INTO lsr_this_year VALUES
		('r1', 'G101', 'Orientation (G101)', 'Orientation (G101)', 'HC', 'Health Canada', 'Santé Canada',
		 'Confirmed', 'EC-04', 'Ottawa', 'Ottawa', 'Ontario', 'Ontario', 'Ottawa', 'Ottawa', 45.4215, -75.6972),
		('r2', 'G101', 'Orientation (G101)', 'Orientation (G101)', 'HC', 'Health Canada', 'Santé Canada',
		 'Confirmed', 'EC-05', 'Vanier', 'Vanier', 'Ontario', 'Ontario', 'Vanier', 'Vanier', 45.4380, -75.6650),
		('r3', 'G101', 'Orientation (G101)', 'Orientation (G101)', 'HC', 'Health Canada', 'Santé Canada',
		 'Cancelled', 'EC-05', 'Ottawa', 'Ottawa', 'Ontario', 'Ontario', 'Ottawa', 'Ottawa', 45.4215, -75.6972),
		('r4', 'A230', 'Leadership [A230]', 'Leadership [A230]', 'HC', 'Health Canada', 'Santé Canada',
		 'Confirmed', 'AS-02', 'Paris', 'Paris', 'Outside Canada', 'Hors du Canada', 'Webcast', 'Webdiffusion', NULL, NULL),
		('r5', 'G101', 'Orientation (G101)', 'Orientation (G101)', 'PCH', '_archive_Canadian Heritage', '_archive_Patrimoine canadien',
		 'Confirmed', 'PM-01', 'Ottawa', 'Ottawa', 'Ontario', 'Ontario', 'Ottawa', 'Ottawa', 45.4215, -75.6972)`,

	`INSERT INTO lsr_last_year VALUES
		('q1', 'Z999', 'Old Course Z999', 'Ancien cours Z999', 'HC', 'Health Canada', 'Santé Canada',
		 'Confirmed', 'EC-04', 'Ottawa', 'Ottawa', 'Ontario', 'Ontario', 'Ottawa', 'Ottawa', 45.4215, -75.6972),
		('q2', 'G101', 'Orientation (G101)', 'Orientation (G101)', 'UNKNOWN', 'Unknown', 'Inconnu',
		 'Confirmed', 'Unknown', 'Unknown', 'Iconnu', 'Unknown', 'Iconnu', 'Toronto', 'Toronto', 43.6532, -79.3832)`,

	`INSERT INTO comments VALUES
		('s1', 'G101', 'General Comment', 'Great course', 'EC - Unknown', 'HC', 'OTTAWA (NCR)', 'RÉGION DE LA CAPITALE NATIONALE (RCN)', '2023-2024', 'Q3', 5, 5, 0.9, 100),
		('s2', 'G101', 'General Comment', 'Too long', 'AS', 'HC', 'ottawa (ncr)', 'région de la capitale nationale (rcn)', '2023-2024', 'Q4', 3, 3, 0.4, 200),
		('s3', 'A230', 'General Comment', 'Useful', 'Unknown', 'HC', 'en ligne', 'en ligne', '2022-2023', 'Q1', NULL, NULL, NULL, NULL),
		('s4', 'G101', 'Technical Comment', 'Audio issues', 'EC', 'HC', 'ottawa', 'ottawa', '2023-2024', 'Q2', 2, 2, 0.1, 300),
		('s5', 'G101', 'General Comment', 'Other dept', 'EC', 'PCH', 'ottawa', 'ottawa', '2023-2024', 'Q1', 4, 4, 0.5, 400)`,
}

func seedTestData(t *testing.T, db *DB) {
	t.Helper()
	ctx := context.Background()
	for _, stmt := range seedStatements {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			t.Fatalf("Failed to seed test data: %v", err)
		}
	}
}

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}
