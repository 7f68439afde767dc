// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package registry

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/quickly-vote/biometric"
	"github.com/danielhkuo/quickly-vote/models"
)

var (
	ErrAlreadyVoted = errors.New("voter has already voted")
	ErrUnknownVoter = errors.New("voter is not registered")
	ErrDuplicateID  = errors.New("duplicate voter id")
	ErrEmptyID      = errors.New("voter id is required")
)

// Registry is the authoritative set of eligible voters and the subset that
// has voted. The voted set only grows.
type Registry struct {
	mu sync.RWMutex

	// order and eligible are fixed after New
	order    []models.VoterIdentity
	eligible map[string]models.VoterIdentity

	voted   map[string]struct{}
	records []models.CastVoteRecord

	resolver Resolver
}

// New registers voters. The only validation is a non-empty, unique id.
// A nil resolver falls back to RandomResolver.
func New(voters []models.VoterIdentity, resolver Resolver) (*Registry, error) {
	if resolver == nil {
		resolver = RandomResolver{}
	}

	r := &Registry{
		order:    make([]models.VoterIdentity, 0, len(voters)),
		eligible: make(map[string]models.VoterIdentity, len(voters)),
		voted:    make(map[string]struct{}),
		resolver: resolver,
	}
	for _, v := range voters {
		id := strings.TrimSpace(v.ID)
		if id == "" {
			return nil, ErrEmptyID
		}
		if _, exists := r.eligible[id]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, id)
		}
		v.ID = id
		r.eligible[id] = v
		r.order = append(r.order, v)
	}
	return r, nil
}

func (r *Registry) IsEligible(id string) bool {
	_, ok := r.eligible[id]
	return ok
}

func (r *Registry) HasVoted(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.voted[id]
	return ok
}

// MarkVoted fails with ErrAlreadyVoted on the second call for an id.
func (r *Registry) MarkVoted(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.markLocked(id)
}

func (r *Registry) markLocked(id string) error {
	if _, ok := r.eligible[id]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownVoter, id)
	}
	if _, ok := r.voted[id]; ok {
		return fmt.Errorf("%w: %s", ErrAlreadyVoted, id)
	}
	r.voted[id] = struct{}{}
	return nil
}

// CastVote marks the voter and creates the vote record under one lock, so a
// record never exists without the mark and vice versa.
func (r *Registry) CastVote(voterID, candidateID string, at time.Time) (models.CastVoteRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.markLocked(voterID); err != nil {
		return models.CastVoteRecord{}, err
	}
	rec := models.CastVoteRecord{
		ReceiptID:   uuid.NewString(),
		VoterID:     voterID,
		CandidateID: candidateID,
		Timestamp:   at,
	}
	r.records = append(r.records, rec)
	return rec, nil
}

// ResolveMatchedVoter maps a successful capture to exactly one registered
// voter, or none. An id the resolver invents is treated as no match.
func (r *Registry) ResolveMatchedVoter(capture biometric.Capture) (models.VoterIdentity, bool) {
	id, ok := r.resolver.Resolve(capture, r.order)
	if !ok {
		return models.VoterIdentity{}, false
	}
	v, ok := r.eligible[id]
	return v, ok
}

// Voters returns the roster in registration order.
func (r *Registry) Voters() []models.VoterIdentity {
	out := make([]models.VoterIdentity, len(r.order))
	copy(out, r.order)
	return out
}

func (r *Registry) Len() int {
	return len(r.order)
}

func (r *Registry) VotedCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.voted)
}

// Records returns the cast vote records in the order they were created.
func (r *Registry) Records() []models.CastVoteRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.CastVoteRecord, len(r.records))
	copy(out, r.records)
	return out
}
