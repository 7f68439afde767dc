// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package registry

import (
	"math/rand/v2"
	"sync"

	"github.com/danielhkuo/quickly-vote/biometric"
	"github.com/danielhkuo/quickly-vote/models"
)

// Resolver turns an opaque capture into a voter id. Returning an id that is
// not in eligible is allowed; the registry reports it as no match.
type Resolver interface {
	Resolve(capture biometric.Capture, eligible []models.VoterIdentity) (string, bool)
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(capture biometric.Capture, eligible []models.VoterIdentity) (string, bool)

func (f ResolverFunc) Resolve(capture biometric.Capture, eligible []models.VoterIdentity) (string, bool) {
	return f(capture, eligible)
}

// RandomResolver picks uniformly among all eligible voters, voted or not.
// Stand-in for template matching on the demo kiosk.
type RandomResolver struct{}

func (RandomResolver) Resolve(_ biometric.Capture, eligible []models.VoterIdentity) (string, bool) {
	if len(eligible) == 0 {
		return "", false
	}
	return eligible[rand.IntN(len(eligible))].ID, true
}

// FixedResolver always resolves to ID.
type FixedResolver struct {
	ID string
}

func (f FixedResolver) Resolve(biometric.Capture, []models.VoterIdentity) (string, bool) {
	return f.ID, f.ID != ""
}

// MapResolver resolves by capture token.
type MapResolver map[string]string

func (m MapResolver) Resolve(capture biometric.Capture, _ []models.VoterIdentity) (string, bool) {
	id, ok := m[capture.Token]
	return id, ok
}

// SequenceResolver hands out IDs in order, one per call, then reports no
// match once exhausted.
type SequenceResolver struct {
	mu   sync.Mutex
	ids  []string
	next int
}

func NewSequenceResolver(ids ...string) *SequenceResolver {
	return &SequenceResolver{ids: ids}
}

func (s *SequenceResolver) Resolve(biometric.Capture, []models.VoterIdentity) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.next >= len(s.ids) {
		return "", false
	}
	id := s.ids[s.next]
	s.next++
	return id, true
}
