// Registhor - Training Registration and Offering Analytics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/registhor

package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/registhor/internal/logging"
)

// Not parallel: swaps the global logger and level.
func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	original := logging.Logger()
	originalLevel := zerolog.GlobalLevel()
	logging.SetLogger(zerolog.New(&buf))
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	t.Cleanup(func() {
		logging.SetLogger(original)
		zerolog.SetGlobalLevel(originalLevel)
	})

	tests := []struct {
		name      string
		delay     time.Duration
		status    int
		wantLevel string
		wantMsg   string
	}{
		{"fast request", 0, http.StatusOK, `"level":"debug"`, "Request completed"},
		{"slow request", 80 * time.Millisecond, http.StatusInternalServerError, `"level":"warn"`, "Slow request detected"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			handler := RequestLogger(50 * time.Millisecond)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				time.Sleep(tt.delay)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte("hello"))
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/v1/offerings?key=secret-key", nil)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			out := buf.String()
			for _, want := range []string{tt.wantLevel, tt.wantMsg, `"bytes":5`, `"path":"/api/v1/offerings"`} {
				if !strings.Contains(out, want) {
					t.Errorf("log output missing %s: %s", want, out)
				}
			}
			if strings.Contains(out, "secret-key") {
				t.Errorf("log output leaked the query string: %s", out)
			}
		})
	}
}

func TestResponseWriter_FirstStatusWins(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	rw := &responseWriter{ResponseWriter: rec, statusCode: http.StatusOK}
	_, _ = rw.Write([]byte("body"))
	rw.WriteHeader(http.StatusTeapot)

	if rw.statusCode != http.StatusOK {
		t.Errorf("statusCode = %d, want 200", rw.statusCode)
	}
	if rw.bytes != 4 {
		t.Errorf("bytes = %d, want 4", rw.bytes)
	}
}
