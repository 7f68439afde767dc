// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the booth.

# Request Types

Types for parsing incoming JSON:

  - SubmitVoteRequest: candidate_id

# Response Types

Types for JSON responses:

  - ScanResponse: outcome, voter, state, alert
  - SubmitVoteResponse: record, state
  - StatsResponse: counters, rates, display cards
  - CandidatesResponse: booth_id, candidates
  - ErrorResponse: error, message

# Domain Types

Internal data structures:

  - VoterIdentity: registered voter (id, display name)
  - Candidate: ballot entry (id, name, party, symbol)
  - Outcome: classified authentication attempt
  - SessionState: snapshot of the booth session
  - CastVoteRecord: receipt for one cast vote
  - StatsCounters: process-wide counters
  - Alert: transient message for the kiosk screen
  - BoothEvent: audit journal entry

# Constants

Session states:

	StateIdle          = "idle"
	StateScanning      = "scanning"
	StateAuthenticated = "authenticated"
	StateBallotOpen    = "ballot_open"
	StateComplete      = "complete"

Outcomes:

	OutcomeSuccess   = "success"
	OutcomeDuplicate = "duplicate"
	OutcomeFailure   = "failure"

Failure reasons (never exposed over HTTP):

	ReasonBiometricMismatch = "biometric-mismatch"
	ReasonNoRegistryMatch   = "no-registry-match"

Alert kinds:

	AlertSuccess, AlertError, AlertWarning, AlertInfo
*/
package models
