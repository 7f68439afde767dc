// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the booth kiosk API.

# Handler Types

  - BoothHandler: session lifecycle (scan, vote, reset, current state)
  - StatsHandler: stat dashboard, ballot candidates, current alert

Handlers are created via constructor functions that take the booth
collaborators; StatsHandler also takes Config for the booth id:

	booth := handlers.NewBoothHandler(machine, board)
	dashboard := handlers.NewStatsHandler(agg, board, candidates, cfg)

# Session Flow

	POST /session/scan  → StartScan (blocks for the biometric challenge)
	POST /session/vote  → SubmitVote {candidate_id}
	POST /session/reset → Reset
	GET  /session       → GetSession

Status codes:

	409 scan already in progress, or action not allowed in the current state
	400 unknown or missing candidate
	500 voter was marked between authentication and submission

A failed scan reports only outcome "failure". Whether the fingerprint did
not match or matched nobody on the roll is never sent to the kiosk.

# Dashboard

	GET /stats      → counters, rates, formatted cards
	GET /candidates → ballot for this booth
	GET /alert      → current alert, 204 when none
*/
package handlers
