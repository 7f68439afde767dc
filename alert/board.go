// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package alert

import (
	"sync"
	"time"

	"github.com/danielhkuo/quickly-vote/models"
)

// DefaultTTL is how long an alert stays on the kiosk screen
const DefaultTTL = 5 * time.Second

// Board holds the alert currently shown on the kiosk. A newer alert replaces
// the previous one; alerts expire after the TTL.
type Board struct {
	mu      sync.Mutex
	current *models.Alert
	ttl     time.Duration
	now     func() time.Time
}

func NewBoard(ttl time.Duration) *Board {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Board{ttl: ttl, now: time.Now}
}

// WithClock replaces the board's time source. Used by tests.
func (b *Board) WithClock(now func() time.Time) *Board {
	b.now = now
	return b
}

func (b *Board) Raise(a models.Alert) {
	b.mu.Lock()
	defer b.mu.Unlock()
	a.RaisedAt = b.now()
	b.current = &a
}

// Current returns the live alert, if any.
func (b *Board) Current() (models.Alert, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.current == nil {
		return models.Alert{}, false
	}
	if b.now().Sub(b.current.RaisedAt) >= b.ttl {
		b.current = nil
		return models.Alert{}, false
	}
	return *b.current, true
}

func (b *Board) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.current = nil
}
