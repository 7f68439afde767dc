// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the audit journal.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB, dbType string) error {
	var seqColumn string
	switch dbType {
	case TypeSQLite:
		seqColumn = "seq INTEGER PRIMARY KEY AUTOINCREMENT"
	case TypePostgres:
		seqColumn = "seq BIGSERIAL PRIMARY KEY"
	default:
		return fmt.Errorf("unsupported database type %q", dbType)
	}

	_, err := db.Exec(fmt.Sprintf(schema, seqColumn))
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// seq is assigned by the database so ordering holds across restarts
const schema = `
-- Outcome and vote events, in booth order
CREATE TABLE IF NOT EXISTS booth_event (
    %s,
    id TEXT NOT NULL UNIQUE,
    booth_id TEXT NOT NULL,
    session_id TEXT NOT NULL,
    kind TEXT NOT NULL CHECK (kind IN ('success', 'duplicate', 'failure', 'vote_cast')),
    voter_ref TEXT,
    reason TEXT,
    occurred_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_booth_event_booth_seq ON booth_event(booth_id, seq);

-- Cast votes, one per voter. voter_ref is an HMAC of the voter id.
CREATE TABLE IF NOT EXISTS cast_vote (
    receipt_id TEXT PRIMARY KEY,
    booth_id TEXT NOT NULL,
    voter_ref TEXT NOT NULL UNIQUE,
    candidate_id TEXT NOT NULL,
    cast_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_cast_vote_candidate ON cast_vote(candidate_id);
`
