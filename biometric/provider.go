// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package biometric

import (
	"context"
	"encoding/hex"
	"errors"
)

// Method names the path that produced a match result
type Method string

const (
	MethodPlatform      Method = "platform"
	MethodWebCredential Method = "web-credential"
	MethodSimulated     Method = "simulated"
)

var (
	// ErrUnavailable means the provider has no usable capability behind it.
	ErrUnavailable = errors.New("biometric capability unavailable")
	// ErrUserDeclined is returned by sensors and authenticators when the
	// voter cancels the prompt. Providers report it as matched=false.
	ErrUserDeclined = errors.New("user declined verification")
)

// Capture is the opaque product of a successful match. Only the voter
// registry's resolver interprets it.
type Capture struct {
	Token  string
	Method Method
}

type Result struct {
	Matched bool
	Method  Method
	Capture Capture
}

// Provider abstracts a biometric capability check and challenge.
//
// A voter failing to match is a normal Result with Matched=false. Only
// infrastructure failures come back as an error.
type Provider interface {
	CheckAvailability(ctx context.Context) bool
	Authenticate(ctx context.Context, challenge []byte) (Result, error)
}

func matched(method Method, token string) Result {
	return Result{
		Matched: true,
		Method:  method,
		Capture: Capture{Token: token, Method: method},
	}
}

func challengeToken(challenge []byte) string {
	return hex.EncodeToString(challenge)
}
