// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/danielhkuo/quickly-vote/auth"
	"github.com/danielhkuo/quickly-vote/biometric"
	"github.com/danielhkuo/quickly-vote/models"
)

// DefaultTimeout bounds one biometric challenge
const DefaultTimeout = 30 * time.Second

// Registry is the part of the voter registry the engine reads. The engine
// never marks voters.
type Registry interface {
	ResolveMatchedVoter(capture biometric.Capture) (models.VoterIdentity, bool)
	HasVoted(id string) bool
}

// Engine runs authentication attempts.
type Engine struct {
	registry Registry
	primary  biometric.Provider
	fallback biometric.Provider
	timeout  time.Duration
	logger   *slog.Logger
}

type Option func(*Engine)

// WithFallback sets the provider used when the primary is unavailable.
func WithFallback(p biometric.Provider) Option {
	return func(e *Engine) { e.fallback = p }
}

func WithTimeout(d time.Duration) Option {
	return func(e *Engine) { e.timeout = d }
}

func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

func New(registry Registry, primary biometric.Provider, opts ...Option) *Engine {
	e := &Engine{
		registry: registry,
		primary:  primary,
		timeout:  DefaultTimeout,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	return e
}

// Attempt classifies one capture attempt. Biometric matching is evaluated
// strictly before any registry lookup, and provider errors fail closed.
func (e *Engine) Attempt(ctx context.Context) models.Outcome {
	provider := e.selectProvider(ctx)
	if provider == nil {
		e.logger.Warn("no biometric provider available")
		return models.Failure(models.ReasonBiometricMismatch)
	}

	challenge, err := auth.GenerateChallenge()
	if err != nil {
		e.logger.Error("failed to generate challenge", "error", err)
		return models.Failure(models.ReasonBiometricMismatch)
	}

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	res, err := provider.Authenticate(ctx, challenge)
	if err != nil {
		e.logger.Warn("biometric challenge failed", "method", res.Method, "error", err)
		return models.Failure(models.ReasonBiometricMismatch)
	}
	if !res.Matched {
		e.logger.Info("biometric mismatch", "method", res.Method)
		return models.Failure(models.ReasonBiometricMismatch)
	}

	voter, ok := e.registry.ResolveMatchedVoter(res.Capture)
	if !ok {
		e.logger.Info("capture matched no registered voter", "method", res.Method)
		return models.Failure(models.ReasonNoRegistryMatch)
	}

	if e.registry.HasVoted(voter.ID) {
		return models.Duplicate(voter)
	}
	return models.Success(voter)
}

func (e *Engine) selectProvider(ctx context.Context) biometric.Provider {
	if e.primary != nil && e.primary.CheckAvailability(ctx) {
		return e.primary
	}
	if e.fallback != nil && e.fallback.CheckAvailability(ctx) {
		return e.fallback
	}
	return nil
}
