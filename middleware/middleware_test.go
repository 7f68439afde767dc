// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/quickly-vote/models"
)

// captureLogs routes the default slog logger into a buffer for one test
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestWithLogging(t *testing.T) {
	testCases := []struct {
		name          string
		status        int
		expectedLevel string
	}{
		{"scan ok", http.StatusOK, "INFO"},
		{"vote created", http.StatusCreated, "INFO"},
		{"scan in progress", http.StatusConflict, "WARN"},
		{"vote not recorded", http.StatusInternalServerError, "ERROR"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			logs := captureLogs(t)

			handler := WithLogging("247-A", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
			})

			w := httptest.NewRecorder()
			handler(w, httptest.NewRequest("POST", "/session/scan", nil))

			if w.Code != tc.status {
				t.Errorf("Expected status %d, got %d", tc.status, w.Code)
			}

			var entry map[string]interface{}
			if err := json.Unmarshal(logs.Bytes(), &entry); err != nil {
				t.Fatalf("Expected one JSON log line, got %q: %v", logs.String(), err)
			}
			if entry["booth_id"] != "247-A" {
				t.Errorf("Expected booth_id '247-A', got %v", entry["booth_id"])
			}
			if entry["path"] != "/session/scan" {
				t.Errorf("Expected path '/session/scan', got %v", entry["path"])
			}
			if entry["status"] != float64(tc.status) {
				t.Errorf("Expected status %d in log, got %v", tc.status, entry["status"])
			}
			if entry["level"] != tc.expectedLevel {
				t.Errorf("Expected level %s, got %v", tc.expectedLevel, entry["level"])
			}
		})
	}
}

func TestWithLogging_ImplicitOK(t *testing.T) {
	logs := captureLogs(t)

	handler := WithLogging("247-A", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})
	handler(httptest.NewRecorder(), httptest.NewRequest("GET", "/session", nil))

	if !strings.Contains(logs.String(), `"status":200`) {
		t.Errorf("Expected status 200 when handler never calls WriteHeader, got %s", logs.String())
	}
}

// TestErrorResponse covers the bodies the booth handlers send for session errors
func TestErrorResponse(t *testing.T) {
	testCases := []struct {
		name          string
		statusCode    int
		message       string
		expectedError string
	}{
		{"unknown candidate", http.StatusBadRequest, "Unknown candidate", "Bad Request"},
		{"scan in progress", http.StatusConflict, "Scan already in progress", "Conflict"},
		{"already voted race", http.StatusInternalServerError, "Vote not recorded: voter was already marked as voted", "Internal Server Error"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			ErrorResponse(w, tc.statusCode, tc.message)

			if w.Code != tc.statusCode {
				t.Errorf("Expected status %d, got %d", tc.statusCode, w.Code)
			}
			if w.Header().Get("Content-Type") != "application/json" {
				t.Error("Expected Content-Type 'application/json'")
			}

			var resp models.ErrorResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("Failed to decode error response: %v", err)
			}
			if resp.Error != tc.expectedError {
				t.Errorf("Expected error '%s', got '%s'", tc.expectedError, resp.Error)
			}
			if resp.Message != tc.message {
				t.Errorf("Expected message '%s', got '%s'", tc.message, resp.Message)
			}
		})
	}
}

func TestParseJSONBody(t *testing.T) {
	testCases := []struct {
		name       string
		body       string
		expectErr  bool
		expectedID string
	}{
		{"vote request", `{"candidate_id":"INC001"}`, false, "INC001"},
		{"unknown fields ignored", `{"candidate_id":"AAP001","voter_id":"IND001"}`, false, "AAP001"},
		{"malformed", `{candidate_id}`, true, ""},
		{"empty body", ``, true, ""},
		{"oversized", `{"candidate_id":"` + strings.Repeat("x", MaxBodyBytes) + `"}`, true, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/session/vote", strings.NewReader(tc.body))

			var parsed models.SubmitVoteRequest
			err := ParseJSONBody(req, &parsed)

			if tc.expectErr {
				if err == nil {
					t.Errorf("Expected error, got candidate %q", parsed.CandidateID)
				}
				return
			}
			if err != nil {
				t.Fatalf("Expected no error, got: %v", err)
			}
			if parsed.CandidateID != tc.expectedID {
				t.Errorf("Expected candidate_id '%s', got '%s'", tc.expectedID, parsed.CandidateID)
			}
		})
	}
}

func TestCORS(t *testing.T) {
	called := false
	handler := CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}))

	for _, path := range []string{"/session/scan", "/session/vote", "/session/reset"} {
		t.Run("preflight "+path, func(t *testing.T) {
			called = false
			req := httptest.NewRequest("OPTIONS", path, nil)
			req.Header.Set("Origin", "http://kiosk.local")
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			if w.Code != http.StatusNoContent {
				t.Errorf("Expected status 204, got %d", w.Code)
			}
			if called {
				t.Error("Preflight must not reach the booth handler")
			}
			if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://kiosk.local" {
				t.Errorf("Expected origin to be reflected, got '%s'", got)
			}
			if got := w.Header().Get("Access-Control-Allow-Methods"); !strings.Contains(got, "POST") {
				t.Errorf("Expected POST to be allowed, got '%s'", got)
			}
			if w.Header().Get("Access-Control-Allow-Credentials") != "" {
				t.Error("Credentials must not be allowed")
			}
		})
	}

	t.Run("request without origin", func(t *testing.T) {
		called = false
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("GET", "/session", nil))

		if !called {
			t.Error("Expected booth handler to be called")
		}
		if w.Header().Get("Access-Control-Allow-Origin") != "*" {
			t.Error("Expected wildcard origin")
		}
	})
}
