// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Session state names
const (
	StateIdle          StateName = "idle"
	StateScanning      StateName = "scanning"
	StateAuthenticated StateName = "authenticated"
	StateBallotOpen    StateName = "ballot_open"
	StateComplete      StateName = "complete"
)

// Outcome kinds
const (
	OutcomeSuccess   OutcomeKind = "success"
	OutcomeDuplicate OutcomeKind = "duplicate"
	OutcomeFailure   OutcomeKind = "failure"
)

// Failure reasons. Internal only; never sent to the kiosk UI.
const (
	ReasonBiometricMismatch FailureReason = "biometric-mismatch"
	ReasonNoRegistryMatch   FailureReason = "no-registry-match"
)

// Alert kinds
const (
	AlertSuccess AlertKind = "success"
	AlertError   AlertKind = "error"
	AlertWarning AlertKind = "warning"
	AlertInfo    AlertKind = "info"
)

// Booth event kinds written to the audit journal
const (
	EventSuccess   = "success"
	EventDuplicate = "duplicate"
	EventFailure   = "failure"
	EventVoteCast  = "vote_cast"
)

type StateName string

type OutcomeKind string

type FailureReason string

type AlertKind string

// Domain types

// VoterIdentity is immutable once registered.
type VoterIdentity struct {
	ID          string `json:"id" yaml:"id"`
	DisplayName string `json:"display_name" yaml:"display_name"`
}

type Candidate struct {
	ID     string `json:"id" yaml:"id"`
	Name   string `json:"name" yaml:"name"`
	Party  string `json:"party" yaml:"party"`
	Symbol string `json:"symbol,omitempty" yaml:"symbol"`
}

// Outcome is the classified result of one authentication attempt.
// Voter is set for success and duplicate, Reason only for failure.
type Outcome struct {
	Kind   OutcomeKind
	Voter  VoterIdentity
	Reason FailureReason
}

func Success(v VoterIdentity) Outcome {
	return Outcome{Kind: OutcomeSuccess, Voter: v}
}

func Duplicate(v VoterIdentity) Outcome {
	return Outcome{Kind: OutcomeDuplicate, Voter: v}
}

func Failure(reason FailureReason) Outcome {
	return Outcome{Kind: OutcomeFailure, Reason: reason}
}

type CastVoteRecord struct {
	ReceiptID   string    `json:"receipt_id"`
	VoterID     string    `json:"voter_id"`
	CandidateID string    `json:"candidate_id"`
	Timestamp   time.Time `json:"timestamp"`
}

// SessionState is a snapshot of the booth session. Voter is nil in Idle and
// Scanning; Record is only set in Complete.
type SessionState struct {
	SessionID string          `json:"session_id"`
	Name      StateName       `json:"state"`
	Voter     *VoterIdentity  `json:"voter,omitempty"`
	Record    *CastVoteRecord `json:"record,omitempty"`
}

type StatsCounters struct {
	TotalRegistered      int `json:"total_registered"`
	VotedCount           int `json:"voted_count"`
	DuplicateAttempts    int `json:"duplicate_attempts"`
	VerificationFailures int `json:"verification_failures"`
}

type Alert struct {
	Kind     AlertKind `json:"kind"`
	Title    string    `json:"title"`
	Message  string    `json:"message"`
	RaisedAt time.Time `json:"raised_at"`
}

// BoothEvent is one entry in the outcome/vote stream.
type BoothEvent struct {
	ID         string    `json:"id"`
	BoothID    string    `json:"booth_id"`
	SessionID  string    `json:"session_id"`
	Kind       string    `json:"kind"`
	VoterRef   string    `json:"voter_ref,omitempty"`
	Reason     string    `json:"reason,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Request types

type SubmitVoteRequest struct {
	CandidateID string `json:"candidate_id"`
}

// Response types

// ScanResponse deliberately has no failure reason field.
type ScanResponse struct {
	Outcome OutcomeKind    `json:"outcome"`
	Voter   *VoterIdentity `json:"voter,omitempty"`
	State   SessionState   `json:"state"`
	Alert   *Alert         `json:"alert,omitempty"`
}

type SubmitVoteResponse struct {
	Record CastVoteRecord `json:"record"`
	State  SessionState   `json:"state"`
}

type StatsResponse struct {
	Counters         StatsCounters `json:"counters"`
	TurnoutRate      float64       `json:"turnout_rate"`
	VerificationRate float64       `json:"verification_rate"`
	Cards            StatCards     `json:"cards"`
}

// StatCards holds display-ready strings for the stat dashboard.
type StatCards struct {
	Registered       string `json:"registered"`
	Voted            string `json:"voted"`
	Turnout          string `json:"turnout"`
	DuplicateAlerts  string `json:"duplicate_alerts"`
	VerificationRate string `json:"verification_rate"`
}

type CandidatesResponse struct {
	BoothID    string      `json:"booth_id"`
	Candidates []Candidate `json:"candidates"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
