// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package stats

import (
	"fmt"
	"sync"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/quickly-vote/models"
)

// Aggregator owns the process-wide booth counters. Counters only move
// through OnOutcome and OnVoteCast and never decrease.
type Aggregator struct {
	mu       sync.RWMutex
	counters models.StatsCounters
}

func New(totalRegistered int) *Aggregator {
	return &Aggregator{counters: models.StatsCounters{TotalRegistered: totalRegistered}}
}

// OnOutcome counts failures and duplicates. Success is a no-op: turnout moves
// only when a vote is cast.
func (a *Aggregator) OnOutcome(o models.Outcome) {
	a.mu.Lock()
	defer a.mu.Unlock()
	apply(&a.counters, o.Kind)
}

func (a *Aggregator) OnVoteCast() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.counters.VotedCount++
}

func (a *Aggregator) Snapshot() models.StatsCounters {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.counters
}

func apply(c *models.StatsCounters, kind models.OutcomeKind) {
	switch kind {
	case models.OutcomeFailure:
		c.VerificationFailures++
	case models.OutcomeDuplicate:
		c.DuplicateAttempts++
	}
}

// Replay rebuilds counters from a booth event stream.
func Replay(totalRegistered int, events []models.BoothEvent) models.StatsCounters {
	c := models.StatsCounters{TotalRegistered: totalRegistered}
	for _, e := range events {
		switch e.Kind {
		case models.EventFailure:
			apply(&c, models.OutcomeFailure)
		case models.EventDuplicate:
			apply(&c, models.OutcomeDuplicate)
		case models.EventVoteCast:
			c.VotedCount++
		}
	}
	return c
}

// TurnoutRate is votedCount / totalRegistered, 0 with no registered voters.
func TurnoutRate(c models.StatsCounters) float64 {
	if c.TotalRegistered <= 0 {
		return 0
	}
	return float64(c.VotedCount) / float64(c.TotalRegistered)
}

// VerificationRate is votedCount / (votedCount + verificationFailures),
// 0 when both are zero.
func VerificationRate(c models.StatsCounters) float64 {
	denom := c.VotedCount + c.VerificationFailures
	if denom == 0 {
		return 0
	}
	return float64(c.VotedCount) / float64(denom)
}

// Format renders the stat dashboard cards.
func Format(c models.StatsCounters) models.StatCards {
	return models.StatCards{
		Registered:       humanize.Comma(int64(c.TotalRegistered)),
		Voted:            humanize.Comma(int64(c.VotedCount)),
		Turnout:          percent(TurnoutRate(c)),
		DuplicateAlerts:  humanize.Comma(int64(c.DuplicateAttempts)),
		VerificationRate: percent(VerificationRate(c)),
	}
}

func percent(ratio float64) string {
	return fmt.Sprintf("%.1f%%", ratio*100)
}
