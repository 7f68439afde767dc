// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db holds the booth's append-only audit journal.

# Connecting

Open supports SQLite (modernc.org/sqlite, pure Go) and PostgreSQL (lib/pq):

	conn, err := db.Open(db.TypeSQLite, ":memory:")
	conn, err := db.Open(db.TypePostgres, "postgres://...")

In-memory SQLite is the default, so nothing outlives the process unless an
operator points the journal at a file or a server.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn, db.TypeSQLite); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - booth_event: one row per resolved authentication outcome or cast vote
  - cast_vote: one row per cast vote; voter_ref is UNIQUE

voter_ref in both tables holds an HMAC of the voter id, never the id itself.
booth_event.seq is assigned by the database (AUTOINCREMENT or BIGSERIAL), so
events from successive runs against the same database stay in write order.
booth_event.reason keeps the internal failure reason for auditors; it is
never surfaced to the kiosk.

# Journal

	j := db.NewJournal(conn)
	j.RecordEvent(ctx, event)
	j.RecordVote(ctx, boothID, voterRef, record)
	events, err := j.Events(ctx, boothID)

Events come back in the order they were written, which is what stats.Replay
needs to rebuild the booth counters.
*/
package db
