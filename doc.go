// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Quickly Vote booth server.

Quickly Vote runs one polling-booth kiosk: a voter scans a fingerprint, is
matched against the electoral roll, casts exactly one vote, and the booth
resets for the next voter. Duplicate attempts are caught before a ballot is
ever shown.

# Starting the Server

	VOTER_REF_SALT=... go run .

Or with flags:

	go run . -p 3318 -booth 247-A -roster roll.yaml -ref-salt ...

# Configuration

Required settings:

  - VOTER_REF_SALT (-ref-salt): Secret for hashing voter ids in logs and the journal

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - BOOTH_ID (-booth): Booth identifier (default: 247-A)
  - ROSTER_FILE (-roster): YAML or JSON roll; the demo roll is used when empty
  - DATABASE_TYPE (-t), DATABASE_URL (-d): sqlite (default, :memory:) or postgres
  - SCAN_DELAY, CHALLENGE_TIMEOUT, MATCH_RATE, ALERT_TTL: scanner and UI tuning

A .env file is read when present (-env to point elsewhere).

# Architecture

  - biometric: capability check and challenge providers
  - registry: electoral roll and voted flags
  - engine: classifies one attempt as success, duplicate or failure
  - session: booth state machine
  - stats: counters, rates and stat cards
  - alert: transient kiosk message
  - roster: roll file loading and the demo roll
  - db: audit journal (sqlite or postgres)
  - handlers, router, middleware: HTTP surface
  - models: shared types
  - auth: ids, challenges, voter references
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main
