// Registhor - Training Registration and Offering Analytics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/registhor

package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/registhor/internal/auth"
	"github.com/tomtom215/registhor/internal/cache"
	"github.com/tomtom215/registhor/internal/config"
	"github.com/tomtom215/registhor/internal/database"
)

const testKey = "test-key-123"

// testToday is the clock used for offering colours: Friday 12 January 2024.
var testToday = time.Date(2024, 1, 12, 9, 0, 0, 0, time.UTC)

// testConfig returns the default configuration with an in-memory store,
// one API key and no rate limit.
func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Database.Path = ":memory:"
	cfg.Database.Threads = 1
	cfg.Database.MaxOpenConns = 4
	cfg.Auth.APIKeys = []string{testKey}
	cfg.Security.RateLimitDisabled = true
	return cfg
}

// testServer is a seeded store behind the full router.
type testServer struct {
	handler *Handler
	db      *database.DB
	http    http.Handler
}

// newTestServer builds the router over a seeded in-memory database.
// mutate may adjust the configuration first.
func newTestServer(t *testing.T, mutate func(*config.Config)) *testServer {
	t.Helper()
	cfg := testConfig()
	if mutate != nil {
		mutate(cfg)
	}

	db, err := database.New(&cfg.Database)
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	for _, stmt := range apiSeed {
		if _, err := db.Conn().ExecContext(ctx, stmt); err != nil {
			t.Fatalf("Failed to seed test data: %v", err)
		}
	}

	store := cache.New(time.Minute)
	t.Cleanup(func() { _ = store.Close() })

	return newTestServerWithStore(t, cfg, db, store, db)
}

// newTestServerWithStore wires an arbitrary Store. db may be nil.
func newTestServerWithStore(t *testing.T, cfg *config.Config, store Store, c cache.Store, db *database.DB) *testServer {
	t.Helper()
	h := NewHandler(store, cfg, c)
	h.now = func() time.Time { return testToday }
	router := NewRouter(h, auth.NewAPIKeyAuth(cfg.Keys(), nil), nil)
	return &testServer{handler: h, db: db, http: router.SetupChi()}
}

// do sends a request with the test key appended to the query string.
func (s *testServer) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	sep := "?"
	if strings.Contains(target, "?") {
		sep = "&"
	}
	return s.doRaw(t, method, target+sep+"key="+testKey, body)
}

// doRaw sends a request exactly as given.
func (s *testServer) doRaw(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rdr)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.http.ServeHTTP(rec, req)
	return rec
}

// envelope mirrors models.Envelope with raw results for decoding.
type envelope struct {
	ErrorMessage string          `json:"error_message"`
	Results      json.RawMessage `json:"results"`
	Status       string          `json:"status"`
}

// decode checks the HTTP status and decodes the envelope. When results is
// non-nil the results field is decoded into it.
func decode(t *testing.T, rec *httptest.ResponseRecorder, wantCode int, results interface{}) envelope {
	t.Helper()
	if rec.Code != wantCode {
		t.Fatalf("status code = %d, want %d; body: %s", rec.Code, wantCode, rec.Body.String())
	}
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("Failed to decode envelope: %v; body: %s", err, rec.Body.String())
	}
	if results != nil {
		if err := json.Unmarshal(env.Results, results); err != nil {
			t.Fatalf("Failed to decode results: %v; results: %s", err, env.Results)
		}
	}
	return env
}

func decodeJSON(t *testing.T, data []byte, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(data, v); err != nil {
		t.Fatalf("Failed to decode %s: %v", data, err)
	}
}

// expectError asserts an error envelope.
func expectError(t *testing.T, rec *httptest.ResponseRecorder, wantCode int, wantStatus, wantMsg string) {
	t.Helper()
	env := decode(t, rec, wantCode, nil)
	if env.Status != wantStatus {
		t.Errorf("status = %q, want %q", env.Status, wantStatus)
	}
	if wantMsg != "" && env.ErrorMessage != wantMsg {
		t.Errorf("error_message = %q, want %q", env.ErrorMessage, wantMsg)
	}
}

// apiSeed mirrors the database package fixtures:
//   - departments: HC, PCH (archived), UNKNOWN (junk)
//   - product_info: G101 and A230
//   - offerings in Ottawa, Kanata, Gatineau, online (Jan 2024) and Vancouver (Mar 2024)
//   - registrations for HC and PCH over two years
//   - comments for G101 and A230
var apiSeed = []string{
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
