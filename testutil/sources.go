// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"math/rand/v2"
	"sync"
	"sync/atomic"

	"github.com/danielhkuo/quickly-vote/biometric"
	"github.com/danielhkuo/quickly-vote/models"
	"github.com/danielhkuo/quickly-vote/registry"
)

// SequenceSource returns scripted match results in order, then no match
type SequenceSource struct {
	mu      sync.Mutex
	results []bool
	calls   int
}

func NewSequenceSource(results ...bool) *SequenceSource {
	return &SequenceSource{results: results}
}

// AlwaysMatch returns a source that matches every scan
func AlwaysMatch() biometric.ChallengeSource {
	return biometric.RandomSource{Rate: 1}
}

func (s *SequenceSource) Match() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.calls
	s.calls++
	if i >= len(s.results) {
		return false
	}
	return s.results[i]
}

func (s *SequenceSource) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// BlockingSource holds every scan until Release is closed
type BlockingSource struct {
	Started chan struct{}
	Release chan struct{}
	Result  bool

	once sync.Once
}

func NewBlockingSource(result bool) *BlockingSource {
	return &BlockingSource{
		Started: make(chan struct{}),
		Release: make(chan struct{}),
		Result:  result,
	}
}

func (b *BlockingSource) Match() bool {
	b.once.Do(func() { close(b.Started) })
	<-b.Release
	return b.Result
}

// CountingResolver counts resolution calls
type CountingResolver struct {
	Resolver registry.Resolver
	calls    atomic.Int32
}

func (c *CountingResolver) Resolve(capture biometric.Capture, eligible []models.VoterIdentity) (string, bool) {
	c.calls.Add(1)
	if c.Resolver == nil {
		return "", false
	}
	return c.Resolver.Resolve(capture, eligible)
}

func (c *CountingResolver) Calls() int {
	return int(c.calls.Load())
}

// PreferVotedResolver re-selects voters who already voted with probability
// Bias, so duplicate detection gets exercised often. Test fixture only.
type PreferVotedResolver struct {
	HasVoted func(id string) bool
	Bias     float64
}

func (p PreferVotedResolver) Resolve(capture biometric.Capture, eligible []models.VoterIdentity) (string, bool) {
	if len(eligible) == 0 {
		return "", false
	}
	var voted []models.VoterIdentity
	for _, v := range eligible {
		if p.HasVoted != nil && p.HasVoted(v.ID) {
			voted = append(voted, v)
		}
	}
	if len(voted) > 0 && rand.Float64() < p.Bias {
		return voted[rand.IntN(len(voted))].ID, true
	}
	return registry.RandomResolver{}.Resolve(capture, eligible)
}
