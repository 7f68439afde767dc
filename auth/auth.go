// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
)

// ChallengeSize is the byte length of a credential challenge
const ChallengeSize = 32

var ErrInvalidLength = errors.New("length must be positive")

// GenerateID creates a random hex ID of the specified byte length
func GenerateID(byteLen int) (string, error) {
	if byteLen <= 0 {
		return "", ErrInvalidLength
	}
	b := make([]byte, byteLen)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// GenerateChallenge creates a fresh random challenge for a credential request
// A challenge is never reused across attempts
func GenerateChallenge() ([]byte, error) {
	b := make([]byte, ChallengeSize)
	_, err := rand.Read(b)
	if err != nil {
		return nil, fmt.Errorf("failed to generate challenge: %w", err)
	}
	return b, nil
}

// HashVoterID creates a one-way reference to a voter id for logs and the journal
// Includes salt so refs can't be reversed by enumerating the roster
func HashVoterID(voterID, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(voterID))
	sum := h.Sum(nil)
	// First 16 hex chars (64 bits) - enough to correlate log lines
	return hex.EncodeToString(sum[:8])
}
