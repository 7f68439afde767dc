// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/quickly-vote/biometric"
	"github.com/danielhkuo/quickly-vote/models"
	"github.com/danielhkuo/quickly-vote/registry"
	"github.com/danielhkuo/quickly-vote/testutil"
)

func newBoothHandler(b *testutil.Booth) *BoothHandler {
	return NewBoothHandler(b.Machine, b.Alerts)
}

func TestStartScan(t *testing.T) {
	tests := []struct {
		name          string
		source        biometric.ChallengeSource
		resolver      registry.Resolver
		voted         []string
		expectOutcome models.OutcomeKind
		expectState   models.StateName
		expectVoter   string
		expectAlert   string
	}{
		{
			name:          "success opens ballot",
			source:        testutil.AlwaysMatch(),
			resolver:      registry.FixedResolver{ID: "IND001"},
			expectOutcome: models.OutcomeSuccess,
			expectState:   models.StateBallotOpen,
			expectVoter:   "IND001",
			expectAlert:   "Authentication Successful",
		},
		{
			name:          "duplicate returns to idle",
			source:        testutil.AlwaysMatch(),
			resolver:      registry.FixedResolver{ID: "IND002"},
			voted:         []string{"IND002"},
			expectOutcome: models.OutcomeDuplicate,
			expectState:   models.StateIdle,
			expectVoter:   "IND002",
			expectAlert:   "Duplicate Vote Detected!",
		},
		{
			name:          "biometric mismatch",
			source:        testutil.NewSequenceSource(false),
			resolver:      registry.FixedResolver{ID: "IND001"},
			expectOutcome: models.OutcomeFailure,
			expectState:   models.StateIdle,
			expectAlert:   "Authentication Failed",
		},
		{
			name:          "unregistered capture",
			source:        testutil.AlwaysMatch(),
			resolver:      registry.FixedResolver{ID: "IND999"},
			expectOutcome: models.OutcomeFailure,
			expectState:   models.StateIdle,
			expectAlert:   "Authentication Failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := testutil.NewTestBooth(t, tt.source, tt.resolver, testutil.WithVoted(tt.voted...), testutil.WithAutoOpen())
			handler := newBoothHandler(b)

			req := testutil.MakeRequest("POST", "/session/scan", nil, nil)
			w := httptest.NewRecorder()
			handler.StartScan(w, req)

			testutil.AssertStatus(t, w, http.StatusOK)

			// Failure reasons never leave the booth
			body := w.Body.String()
			if strings.Contains(body, string(models.ReasonBiometricMismatch)) ||
				strings.Contains(body, string(models.ReasonNoRegistryMatch)) {
				t.Errorf("Response leaked failure reason: %s", body)
			}

			var resp models.ScanResponse
			testutil.AssertJSON(t, w, &resp)

			if resp.Outcome != tt.expectOutcome {
				t.Errorf("Expected outcome %s, got %s", tt.expectOutcome, resp.Outcome)
			}
			if resp.State.Name != tt.expectState {
				t.Errorf("Expected state %s, got %s", tt.expectState, resp.State.Name)
			}

			if tt.expectVoter == "" {
				if resp.Voter != nil {
					t.Errorf("Expected no voter, got %+v", resp.Voter)
				}
			} else if resp.Voter == nil || resp.Voter.ID != tt.expectVoter {
				t.Errorf("Expected voter %s, got %+v", tt.expectVoter, resp.Voter)
			}

			if resp.Alert == nil {
				t.Fatal("Expected an alert")
			}
			if resp.Alert.Title != tt.expectAlert {
				t.Errorf("Expected alert %q, got %q", tt.expectAlert, resp.Alert.Title)
			}
		})
	}
}

func TestStartScan_NotIdle(t *testing.T) {
	b := testutil.NewTestBooth(t, testutil.AlwaysMatch(), registry.FixedResolver{ID: "IND001"}, testutil.WithAutoOpen())
	handler := newBoothHandler(b)

	w := httptest.NewRecorder()
	handler.StartScan(w, testutil.MakeRequest("POST", "/session/scan", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	// Ballot is open; a second scan must be refused
	w = httptest.NewRecorder()
	handler.StartScan(w, testutil.MakeRequest("POST", "/session/scan", nil, nil))
	testutil.AssertStatus(t, w, http.StatusConflict)

	var resp models.ErrorResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Error != "Conflict" {
		t.Errorf("Expected error 'Conflict', got '%s'", resp.Error)
	}
}

func TestSubmitVote(t *testing.T) {
	tests := []struct {
		name           string
		scan           bool
		requestBody    interface{}
		expectedStatus int
		expectVoted    bool
	}{
		{
			name:           "valid vote",
			scan:           true,
			requestBody:    models.SubmitVoteRequest{CandidateID: "INC001"},
			expectedStatus: http.StatusCreated,
			expectVoted:    true,
		},
		{
			name:           "missing candidate",
			scan:           true,
			requestBody:    models.SubmitVoteRequest{},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown candidate",
			scan:           true,
			requestBody:    models.SubmitVoteRequest{CandidateID: "XYZ999"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid JSON",
			scan:           true,
			requestBody:    "not-an-object",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "no authenticated voter",
			scan:           false,
			requestBody:    models.SubmitVoteRequest{CandidateID: "INC001"},
			expectedStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := testutil.NewTestBooth(t, testutil.AlwaysMatch(), registry.FixedResolver{ID: "IND003"}, testutil.WithAutoOpen())
			handler := newBoothHandler(b)

			if tt.scan {
				w := httptest.NewRecorder()
				handler.StartScan(w, testutil.MakeRequest("POST", "/session/scan", nil, nil))
				testutil.AssertStatus(t, w, http.StatusOK)
			}

			w := httptest.NewRecorder()
			handler.SubmitVote(w, testutil.MakeRequest("POST", "/session/vote", tt.requestBody, nil))

			testutil.AssertStatus(t, w, tt.expectedStatus)

			if b.Registry.HasVoted("IND003") != tt.expectVoted {
				t.Errorf("Expected voted=%v", tt.expectVoted)
			}

			if tt.expectedStatus == http.StatusCreated {
				var resp models.SubmitVoteResponse
				testutil.AssertJSON(t, w, &resp)
				if resp.Record.ReceiptID == "" {
					t.Error("Expected a receipt id")
				}
				if resp.Record.CandidateID != "INC001" {
					t.Errorf("Expected candidate INC001, got %s", resp.Record.CandidateID)
				}
				if resp.State.Name != models.StateComplete {
					t.Errorf("Expected state complete, got %s", resp.State.Name)
				}
			}
		})
	}
}

func TestSubmitVote_AlreadyVotedRace(t *testing.T) {
	b := testutil.NewTestBooth(t, testutil.AlwaysMatch(), registry.FixedResolver{ID: "IND004"}, testutil.WithAutoOpen())
	handler := newBoothHandler(b)

	w := httptest.NewRecorder()
	handler.StartScan(w, testutil.MakeRequest("POST", "/session/scan", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	if err := b.Registry.MarkVoted("IND004"); err != nil {
		t.Fatalf("Failed to mark voter: %v", err)
	}

	w = httptest.NewRecorder()
	handler.SubmitVote(w, testutil.MakeRequest("POST", "/session/vote", models.SubmitVoteRequest{CandidateID: "BJP001"}, nil))
	testutil.AssertStatus(t, w, http.StatusInternalServerError)

	var resp models.ErrorResponse
	testutil.AssertJSON(t, w, &resp)
	if !strings.Contains(resp.Message, "already marked") {
		t.Errorf("Expected distinct race message, got '%s'", resp.Message)
	}

	if state := b.Machine.State(); state.Name != models.StateIdle {
		t.Errorf("Expected idle after race, got %s", state.Name)
	}
}

func TestReset(t *testing.T) {
	b := testutil.NewTestBooth(t, testutil.AlwaysMatch(), registry.FixedResolver{ID: "IND005"}, testutil.WithAutoOpen())
	handler := newBoothHandler(b)

	w := httptest.NewRecorder()
	handler.StartScan(w, testutil.MakeRequest("POST", "/session/scan", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	w = httptest.NewRecorder()
	handler.Reset(w, testutil.MakeRequest("POST", "/session/reset", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var state models.SessionState
	testutil.AssertJSON(t, w, &state)
	if state.Name != models.StateIdle {
		t.Errorf("Expected idle, got %s", state.Name)
	}
	if state.Voter != nil {
		t.Error("Expected voter to be cleared")
	}

	// Walking away before voting keeps the voter eligible
	if b.Registry.HasVoted("IND005") {
		t.Error("Reset must not mark the voter")
	}
}

func TestGetSession(t *testing.T) {
	b := testutil.NewTestBooth(t, testutil.AlwaysMatch(), registry.FixedResolver{ID: "IND001"})
	handler := newBoothHandler(b)

	w := httptest.NewRecorder()
	handler.GetSession(w, testutil.MakeRequest("GET", "/session", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var state models.SessionState
	testutil.AssertJSON(t, w, &state)
	if state.Name != models.StateIdle {
		t.Errorf("Expected idle, got %s", state.Name)
	}

	w = httptest.NewRecorder()
	handler.StartScan(w, testutil.MakeRequest("POST", "/session/scan", nil, nil))

	w = httptest.NewRecorder()
	handler.GetSession(w, testutil.MakeRequest("GET", "/session", nil, nil))
	testutil.AssertJSON(t, w, &state)
	if state.Name != models.StateAuthenticated {
		t.Errorf("Expected authenticated, got %s", state.Name)
	}
	if state.Voter == nil || state.Voter.ID != "IND001" {
		t.Errorf("Expected voter IND001, got %+v", state.Voter)
	}
}
