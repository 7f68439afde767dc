// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package biometric

import (
	"context"
	"math/rand/v2"
	"time"
)

// DefaultMatchRate is the share of simulated scans that match
const DefaultMatchRate = 0.85

// ChallengeSource decides whether a simulated scan matches.
type ChallengeSource interface {
	Match() bool
}

// RandomSource matches with probability Rate.
type RandomSource struct {
	Rate float64
}

func (s RandomSource) Match() bool {
	return rand.Float64() < s.Rate
}

// Simulated stands in for a sensor: it waits Delay, then asks Source.
type Simulated struct {
	Source ChallengeSource
	Delay  time.Duration
}

func NewSimulated(source ChallengeSource, delay time.Duration) *Simulated {
	return &Simulated{Source: source, Delay: delay}
}

func (s *Simulated) CheckAvailability(_ context.Context) bool {
	return s.Source != nil
}

func (s *Simulated) Authenticate(ctx context.Context, challenge []byte) (Result, error) {
	if s.Source == nil {
		return Result{Method: MethodSimulated}, ErrUnavailable
	}

	if s.Delay > 0 {
		timer := time.NewTimer(s.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return Result{Method: MethodSimulated}, ctx.Err()
		case <-timer.C:
		}
	}

	if !s.Source.Match() {
		return Result{Method: MethodSimulated}, nil
	}
	return matched(MethodSimulated, challengeToken(challenge)), nil
}
