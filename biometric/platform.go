// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package biometric

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Sensor is a native fingerprint capability.
type Sensor interface {
	Available(ctx context.Context) bool
	Verify(ctx context.Context, challenge []byte) (bool, error)
}

// Platform authenticates against a native sensor.
type Platform struct {
	Sensor Sensor
}

func (p *Platform) CheckAvailability(ctx context.Context) bool {
	return p.Sensor != nil && p.Sensor.Available(ctx)
}

func (p *Platform) Authenticate(ctx context.Context, challenge []byte) (Result, error) {
	if p.Sensor == nil {
		return Result{Method: MethodPlatform}, ErrUnavailable
	}

	ok, err := p.Sensor.Verify(ctx, challenge)
	if errors.Is(err, ErrUserDeclined) {
		return Result{Method: MethodPlatform}, nil
	}
	if err != nil {
		return Result{Method: MethodPlatform}, fmt.Errorf("platform verify: %w", err)
	}
	if !ok {
		return Result{Method: MethodPlatform}, nil
	}
	return matched(MethodPlatform, challengeToken(challenge)), nil
}

// DefaultCredentialTimeout bounds a single credential request
const DefaultCredentialTimeout = 30 * time.Second

// CredentialRequest mirrors a platform-attached, user-verified public key
// credential creation.
type CredentialRequest struct {
	Challenge        []byte
	RelyingParty     string
	UserName         string
	Attachment       string
	UserVerification string
	Timeout          time.Duration
}

type Credential struct {
	ID string
}

// CredentialAuthenticator creates credentials on a platform authenticator.
type CredentialAuthenticator interface {
	Supported(ctx context.Context) bool
	Create(ctx context.Context, req CredentialRequest) (*Credential, error)
}

// WebCredential authenticates by asking a platform authenticator to create a
// user-verified credential.
type WebCredential struct {
	Authenticator CredentialAuthenticator
	RelyingParty  string
	Timeout       time.Duration
}

func (w *WebCredential) CheckAvailability(ctx context.Context) bool {
	return w.Authenticator != nil && w.Authenticator.Supported(ctx)
}

func (w *WebCredential) Authenticate(ctx context.Context, challenge []byte) (Result, error) {
	if w.Authenticator == nil {
		return Result{Method: MethodWebCredential}, ErrUnavailable
	}

	timeout := w.Timeout
	if timeout <= 0 {
		timeout = DefaultCredentialTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cred, err := w.Authenticator.Create(ctx, CredentialRequest{
		Challenge:        challenge,
		RelyingParty:     w.RelyingParty,
		UserName:         "voter",
		Attachment:       "platform",
		UserVerification: "required",
		Timeout:          timeout,
	})
	if errors.Is(err, ErrUserDeclined) {
		return Result{Method: MethodWebCredential}, nil
	}
	if err != nil {
		return Result{Method: MethodWebCredential}, fmt.Errorf("credential create: %w", err)
	}
	if cred == nil {
		return Result{Method: MethodWebCredential}, nil
	}
	return matched(MethodWebCredential, cred.ID), nil
}
