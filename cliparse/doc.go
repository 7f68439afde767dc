// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - BoothID: Booth identifier shown on receipts and in logs (default: 247-A)
  - RosterFile: Voter/candidate roster (.yaml or .json); built-in demo roster if empty
  - DatabaseType: Journal database, sqlite or postgres (default: sqlite)
  - DatabaseURL: Journal connection string (default: in-memory SQLite)
  - ScanDelay: Simulated scanner delay (default: 2s)
  - ChallengeTimeout: Biometric challenge timeout (default: 30s)
  - MatchRate: Simulated match probability (default: 0.85)
  - AlertTTL: How long kiosk alerts stay visible (default: 5s)
  - VoterRefSalt: Secret for voter references in logs (required)

# CLI Flags

	-env               Env file (default .env, ignored if missing)
	-p                 Server port
	-booth             Booth identifier
	-roster            Roster file
	-t                 Database type
	-d                 Database URL
	-scan-delay        Simulated scan delay
	-challenge-timeout Challenge timeout
	-match-rate        Simulated match rate
	-alert-ttl         Alert display time
	-ref-salt          Voter reference salt

# Environment Variables

Flags fall back to environment variables:

	PORT              → -p
	BOOTH_ID          → -booth
	ROSTER_FILE       → -roster
	DATABASE_TYPE     → -t
	DATABASE_URL      → -d
	SCAN_DELAY        → -scan-delay
	CHALLENGE_TIMEOUT → -challenge-timeout
	MATCH_RATE        → -match-rate
	ALERT_TTL         → -alert-ttl
	VOTER_REF_SALT    → -ref-salt

CLI flags take precedence over environment variables. Variables in the env
file never override variables already set in the process environment.

# Validation

ParseFlags returns an error if:

  - VOTER_REF_SALT is missing
  - MatchRate is outside [0, 1]
  - a duration is malformed, ChallengeTimeout or AlertTTL is not positive
  - DatabaseType is not sqlite or postgres, or postgres has no URL
*/
package cliparse
