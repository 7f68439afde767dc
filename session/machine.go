// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/quickly-vote/auth"
	"github.com/danielhkuo/quickly-vote/models"
	"github.com/danielhkuo/quickly-vote/registry"
)

var (
	ErrScanInProgress    = errors.New("scan already in progress")
	ErrInvalidTransition = errors.New("invalid session transition")
	ErrUnknownCandidate  = errors.New("unknown candidate")
	// ErrAlreadyVotedRace means the voter was marked between authentication
	// and vote submission. It is never an ordinary duplicate.
	ErrAlreadyVotedRace = errors.New("voter already marked as voted")
)

// Authenticator runs one authentication attempt.
type Authenticator interface {
	Attempt(ctx context.Context) models.Outcome
}

// VoteRecorder marks a voter and creates the vote record in one step.
type VoteRecorder interface {
	CastVote(voterID, candidateID string, at time.Time) (models.CastVoteRecord, error)
}

type Counter interface {
	OnOutcome(o models.Outcome)
	OnVoteCast()
}

type AlertSink interface {
	Raise(a models.Alert)
	Clear()
}

// Journal receives the outcome and vote stream. Write failures are logged
// and never change a session outcome.
type Journal interface {
	RecordEvent(ctx context.Context, e models.BoothEvent) error
	RecordVote(ctx context.Context, boothID, voterRef string, rec models.CastVoteRecord) error
}

type Dependencies struct {
	Engine     Authenticator
	Votes      VoteRecorder
	Stats      Counter
	Alerts     AlertSink
	Journal    Journal
	Candidates []models.Candidate

	BoothID string

	// RefSalt keys the voter references written to logs and the journal
	RefSalt string

	// AutoOpenBallot opens the ballot as soon as authentication succeeds
	AutoOpenBallot bool

	Clock  func() time.Time
	Logger *slog.Logger
}

// Machine is the booth session state machine:
//
//	Idle -> Scanning -> Authenticated -> BallotOpen -> Complete -> Idle
//
// Duplicate and failure outcomes return Scanning to Idle. Only one scan may
// be outstanding at a time.
type Machine struct {
	mu sync.Mutex

	state     models.StateName
	sessionID string
	voter     *models.VoterIdentity
	record    *models.CastVoteRecord

	deps       Dependencies
	candidates map[string]models.Candidate
	now        func() time.Time
	logger     *slog.Logger
}

func New(deps Dependencies) *Machine {
	candidates := make(map[string]models.Candidate, len(deps.Candidates))
	for _, c := range deps.Candidates {
		candidates[c.ID] = c
	}

	now := deps.Clock
	if now == nil {
		now = time.Now
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Machine{
		state:      models.StateIdle,
		deps:       deps,
		candidates: candidates,
		now:        now,
		logger:     logger.With("booth_id", deps.BoothID),
	}
}

// State returns a snapshot of the current session.
func (m *Machine) State() models.SessionState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

func (m *Machine) snapshotLocked() models.SessionState {
	s := models.SessionState{SessionID: m.sessionID, Name: m.state}
	if m.voter != nil {
		v := *m.voter
		s.Voter = &v
	}
	if m.record != nil {
		r := *m.record
		s.Record = &r
	}
	return s
}

// StartScan runs one authentication attempt from Idle. The challenge is the
// only suspension point; it runs to completion even if ctx is cancelled.
func (m *Machine) StartScan(ctx context.Context) (models.Outcome, error) {
	m.mu.Lock()
	switch m.state {
	case models.StateIdle:
	case models.StateScanning:
		m.mu.Unlock()
		return models.Outcome{}, ErrScanInProgress
	default:
		state := m.state
		m.mu.Unlock()
		return models.Outcome{}, fmt.Errorf("%w: scan from %s", ErrInvalidTransition, state)
	}
	m.state = models.StateScanning
	m.sessionID = uuid.NewString()
	sessionID := m.sessionID
	m.mu.Unlock()

	m.logger.Info("scan started", "session_id", sessionID)
	ctx = context.WithoutCancel(ctx)
	outcome := m.deps.Engine.Attempt(ctx)

	m.mu.Lock()
	m.deps.Stats.OnOutcome(outcome)
	switch outcome.Kind {
	case models.OutcomeSuccess:
		v := outcome.Voter
		m.voter = &v
		m.state = models.StateAuthenticated
		if m.deps.AutoOpenBallot {
			m.state = models.StateBallotOpen
		}
	default:
		m.state = models.StateIdle
		m.voter = nil
	}
	m.mu.Unlock()

	m.report(ctx, sessionID, outcome)
	return outcome, nil
}

func (m *Machine) report(ctx context.Context, sessionID string, outcome models.Outcome) {
	event := models.BoothEvent{
		SessionID:  sessionID,
		OccurredAt: m.now(),
	}

	switch outcome.Kind {
	case models.OutcomeSuccess:
		event.Kind = models.EventSuccess
		event.VoterRef = m.voterRef(outcome.Voter.ID)
		m.logger.Info("voter authenticated", "session_id", sessionID, "voter_ref", event.VoterRef)
		m.raise(authenticatedAlert(outcome.Voter))
	case models.OutcomeDuplicate:
		event.Kind = models.EventDuplicate
		event.VoterRef = m.voterRef(outcome.Voter.ID)
		m.logger.Warn("duplicate vote attempt", "session_id", sessionID, "voter_id", outcome.Voter.ID)
		m.raise(duplicateAlert(outcome.Voter))
	default:
		event.Kind = models.EventFailure
		event.Reason = string(outcome.Reason)
		m.logger.Info("authentication failed", "session_id", sessionID, "reason", outcome.Reason)
		m.raise(failedAlert())
	}

	m.journalEvent(ctx, event)
}

// OpenBallot moves an authenticated voter to the ballot.
func (m *Machine) OpenBallot() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != models.StateAuthenticated {
		return fmt.Errorf("%w: open ballot from %s", ErrInvalidTransition, m.state)
	}
	m.state = models.StateBallotOpen
	return nil
}

// SubmitVote casts the active voter's vote. Marking the voter, creating the
// record and counting the vote happen together or not at all.
func (m *Machine) SubmitVote(ctx context.Context, candidateID string) (models.CastVoteRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != models.StateBallotOpen || m.voter == nil {
		return models.CastVoteRecord{}, fmt.Errorf("%w: submit from %s", ErrInvalidTransition, m.state)
	}
	if _, ok := m.candidates[candidateID]; !ok {
		return models.CastVoteRecord{}, fmt.Errorf("%w: %s", ErrUnknownCandidate, candidateID)
	}

	voter := *m.voter
	sessionID := m.sessionID
	rec, err := m.deps.Votes.CastVote(voter.ID, candidateID, m.now())
	if err != nil {
		m.state = models.StateIdle
		m.voter = nil
		m.sessionID = ""

		if errors.Is(err, registry.ErrAlreadyVoted) {
			m.logger.Error("voter already marked at vote submission",
				"event", "already_voted_race",
				"session_id", sessionID,
				"voter_ref", m.voterRef(voter.ID),
			)
			m.raise(raceAlert())
			return models.CastVoteRecord{}, fmt.Errorf("%w: %w", ErrAlreadyVotedRace, err)
		}
		m.logger.Error("failed to cast vote", "session_id", sessionID, "error", err)
		m.raise(notRecordedAlert())
		return models.CastVoteRecord{}, fmt.Errorf("cast vote: %w", err)
	}

	m.deps.Stats.OnVoteCast()
	m.state = models.StateComplete
	m.record = &rec

	m.logger.Info("vote recorded", "session_id", sessionID, "receipt_id", rec.ReceiptID)
	m.raise(recordedAlert())

	ref := m.voterRef(voter.ID)
	if m.deps.Journal != nil {
		if err := m.deps.Journal.RecordVote(ctx, m.deps.BoothID, ref, rec); err != nil {
			m.logger.Warn("failed to journal vote", "session_id", sessionID, "error", err)
		}
	}
	m.journalEvent(ctx, models.BoothEvent{
		SessionID:  sessionID,
		Kind:       models.EventVoteCast,
		VoterRef:   ref,
		OccurredAt: rec.Timestamp,
	})
	return rec, nil
}

// Reset returns the booth to Idle and forgets the active voter. A voter who
// leaves before voting stays eligible.
func (m *Machine) Reset() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == models.StateScanning {
		return ErrScanInProgress
	}
	if m.state != models.StateIdle && m.state != models.StateComplete {
		m.logger.Info("session abandoned before vote", "session_id", m.sessionID, "state", m.state)
	}
	m.state = models.StateIdle
	m.sessionID = ""
	m.voter = nil
	m.record = nil
	if m.deps.Alerts != nil {
		m.deps.Alerts.Clear()
	}
	return nil
}

func (m *Machine) raise(a models.Alert) {
	if m.deps.Alerts != nil {
		m.deps.Alerts.Raise(a)
	}
}

func (m *Machine) journalEvent(ctx context.Context, e models.BoothEvent) {
	if m.deps.Journal == nil {
		return
	}
	id, err := auth.GenerateID(16)
	if err != nil {
		m.logger.Warn("failed to generate event id", "error", err)
		return
	}
	e.ID = id
	e.BoothID = m.deps.BoothID
	if err := m.deps.Journal.RecordEvent(ctx, e); err != nil {
		m.logger.Warn("failed to journal event", "kind", e.Kind, "session_id", e.SessionID, "error", err)
	}
}

func (m *Machine) voterRef(id string) string {
	return auth.HashVoterID(id, m.deps.RefSalt)
}
