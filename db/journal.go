// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/quickly-vote/models"
)

// Supported database types
const (
	TypeSQLite   = "sqlite"
	TypePostgres = "postgres"
)

var ErrDuplicateVote = errors.New("vote already journaled for voter")

// Open connects to the journal database and verifies the connection.
func Open(dbType, url string) (*sql.DB, error) {
	var driver string
	switch dbType {
	case TypeSQLite:
		driver = "sqlite"
	case TypePostgres:
		driver = "postgres"
	default:
		return nil, fmt.Errorf("unsupported database type %q", dbType)
	}

	conn, err := sql.Open(driver, url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if dbType == TypeSQLite {
		// Every connection to :memory: is a separate database
		conn.SetMaxOpenConns(1)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}
	return conn, nil
}

// Journal appends booth events and cast votes. It is write-only while the
// booth runs; nothing is restored from it at startup.
type Journal struct {
	db *sql.DB
}

func NewJournal(db *sql.DB) *Journal {
	return &Journal{db: db}
}

func (j *Journal) RecordEvent(ctx context.Context, e models.BoothEvent) error {
	_, err := j.db.ExecContext(ctx, `
		INSERT INTO booth_event (id, booth_id, session_id, kind, voter_ref, reason, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, e.ID, e.BoothID, e.SessionID, e.Kind, nullString(e.VoterRef), nullString(e.Reason), e.OccurredAt)
	if err != nil {
		return fmt.Errorf("failed to insert booth event: %w", err)
	}
	return nil
}

// RecordVote journals a cast vote under voterRef. The raw voter id in rec is
// never written.
func (j *Journal) RecordVote(ctx context.Context, boothID, voterRef string, rec models.CastVoteRecord) error {
	_, err := j.db.ExecContext(ctx, `
		INSERT INTO cast_vote (receipt_id, booth_id, voter_ref, candidate_id, cast_at)
		VALUES ($1, $2, $3, $4, $5)
	`, rec.ReceiptID, boothID, voterRef, rec.CandidateID, rec.Timestamp)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %s", ErrDuplicateVote, voterRef)
	}
	if err != nil {
		return fmt.Errorf("failed to insert cast vote: %w", err)
	}
	return nil
}

// Events returns a booth's events in the order they were journaled.
func (j *Journal) Events(ctx context.Context, boothID string) ([]models.BoothEvent, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT id, booth_id, session_id, kind, voter_ref, reason, occurred_at
		FROM booth_event
		WHERE booth_id = $1
		ORDER BY seq
	`, boothID)
	if err != nil {
		return nil, fmt.Errorf("failed to query booth events: %w", err)
	}
	defer rows.Close()

	var events []models.BoothEvent
	for rows.Next() {
		var e models.BoothEvent
		var voterRef, reason sql.NullString
		if err := rows.Scan(&e.ID, &e.BoothID, &e.SessionID, &e.Kind, &voterRef, &reason, &e.OccurredAt); err != nil {
			return nil, fmt.Errorf("failed to scan booth event: %w", err)
		}
		e.VoterRef = voterRef.String
		e.Reason = reason.String
		events = append(events, e)
	}
	return events, rows.Err()
}

// VoteCount returns the number of journaled votes for a booth.
func (j *Journal) VoteCount(ctx context.Context, boothID string) (int, error) {
	var n int
	err := j.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM cast_vote WHERE booth_id = $1`, boothID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count votes: %w", err)
	}
	return n, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
