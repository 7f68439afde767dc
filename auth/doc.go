// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides random identifiers, credential challenges, and voter
reference hashing.

# Challenges

Each web-credential attempt gets a fresh 32-byte random challenge:

	challenge, err := auth.GenerateChallenge()

# Voter References

Logs and the audit journal never carry raw voter ids. They carry a salted
HMAC-SHA256 reference instead:

	ref := auth.HashVoterID(voter.ID, cfg.VoterRefSalt)

Returns first 8 bytes (16 hex chars). The same id and salt always produce the
same reference, so log lines for one voter can still be correlated.

# ID Generation

Random hex IDs for journal records:

	id, err := auth.GenerateID(16)  // 32 hex characters
*/
package auth
