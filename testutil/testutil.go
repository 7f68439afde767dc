// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/quickly-vote/alert"
	"github.com/danielhkuo/quickly-vote/biometric"
	"github.com/danielhkuo/quickly-vote/cliparse"
	"github.com/danielhkuo/quickly-vote/db"
	"github.com/danielhkuo/quickly-vote/engine"
	"github.com/danielhkuo/quickly-vote/models"
	"github.com/danielhkuo/quickly-vote/registry"
	"github.com/danielhkuo/quickly-vote/roster"
	"github.com/danielhkuo/quickly-vote/session"
	"github.com/danielhkuo/quickly-vote/stats"
)

// TestBoothID is the booth id used by fixtures
const TestBoothID = "test-booth"

// TestRefSalt is the voter reference salt used by fixtures
const TestRefSalt = "test-ref-salt"

// SetupTestJournal creates a fresh in-memory journal with the full schema
func SetupTestJournal(t *testing.T) *db.Journal {
	t.Helper()

	conn, err := db.Open(db.TypeSQLite, ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn, db.TypeSQLite); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return db.NewJournal(conn)
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:             3318,
		BoothID:          TestBoothID,
		DatabaseType:     db.TypeSQLite,
		DatabaseURL:      ":memory:",
		ChallengeTimeout: time.Second,
		MatchRate:        1,
		AlertTTL:         time.Minute,
		VoterRefSalt:     TestRefSalt,
	}
}

// DiscardLogger keeps test output quiet
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Booth bundles every collaborator of one booth session
type Booth struct {
	Registry   *registry.Registry
	Resolver   *CountingResolver
	Stats      *stats.Aggregator
	Alerts     *alert.Board
	Journal    *db.Journal
	Engine     *engine.Engine
	Machine    *session.Machine
	Candidates []models.Candidate
}

type boothOptions struct {
	voted    []string
	autoOpen bool
	clock    func() time.Time
}

type BoothOption func(*boothOptions)

// WithVoted marks voters as having voted before the booth opens
func WithVoted(ids ...string) BoothOption {
	return func(o *boothOptions) { o.voted = append(o.voted, ids...) }
}

// WithAutoOpen opens the ballot straight after authentication
func WithAutoOpen() BoothOption {
	return func(o *boothOptions) { o.autoOpen = true }
}

func WithClock(now func() time.Time) BoothOption {
	return func(o *boothOptions) { o.clock = now }
}

// NewTestBooth wires a booth over the demo roster with a simulated scanner
// driven by source and voters resolved by resolver
func NewTestBooth(t *testing.T, source biometric.ChallengeSource, resolver registry.Resolver, opts ...BoothOption) *Booth {
	t.Helper()

	var o boothOptions
	for _, opt := range opts {
		opt(&o)
	}

	demo := roster.Demo()
	counting := &CountingResolver{Resolver: resolver}
	reg, err := registry.New(demo.Voters, counting)
	if err != nil {
		t.Fatalf("Failed to create registry: %v", err)
	}
	for _, id := range o.voted {
		if err := reg.MarkVoted(id); err != nil {
			t.Fatalf("Failed to mark %s voted: %v", id, err)
		}
	}

	logger := DiscardLogger()
	agg := stats.New(reg.Len())
	board := alert.NewBoard(time.Minute)
	journal := SetupTestJournal(t)
	eng := engine.New(reg, biometric.NewSimulated(source, 0),
		engine.WithTimeout(time.Second),
		engine.WithLogger(logger),
	)
	machine := session.New(session.Dependencies{
		Engine:         eng,
		Votes:          reg,
		Stats:          agg,
		Alerts:         board,
		Journal:        journal,
		Candidates:     demo.Candidates,
		BoothID:        TestBoothID,
		RefSalt:        TestRefSalt,
		AutoOpenBallot: o.autoOpen,
		Clock:          o.clock,
		Logger:         logger,
	})

	return &Booth{
		Registry:   reg,
		Resolver:   counting,
		Stats:      agg,
		Alerts:     board,
		Journal:    journal,
		Engine:     eng,
		Machine:    machine,
		Candidates: demo.Candidates,
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
