// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"fmt"

	"github.com/danielhkuo/quickly-vote/models"
)

// Kiosk copy. Failure text is the same for every failure reason so the
// screen never reveals whether a fingerprint is registered.

func authenticatedAlert(v models.VoterIdentity) models.Alert {
	return models.Alert{
		Kind:    models.AlertSuccess,
		Title:   "Authentication Successful",
		Message: fmt.Sprintf("Welcome %s! Your identity has been verified. Please proceed to cast your vote.", v.DisplayName),
	}
}

func failedAlert() models.Alert {
	return models.Alert{
		Kind:    models.AlertError,
		Title:   "Authentication Failed",
		Message: "Fingerprint verification failed. Please ensure your finger is clean and properly placed on the scanner.",
	}
}

func duplicateAlert(v models.VoterIdentity) models.Alert {
	return models.Alert{
		Kind:    models.AlertWarning,
		Title:   "Duplicate Vote Detected!",
		Message: fmt.Sprintf("Voter ID %s has already cast their vote. Multiple voting attempts are strictly prohibited.", v.ID),
	}
}

func recordedAlert() models.Alert {
	return models.Alert{
		Kind:    models.AlertSuccess,
		Title:   "Vote Recorded Successfully!",
		Message: "Your vote has been recorded. Thank you for participating in the democratic process.",
	}
}

func raceAlert() models.Alert {
	return models.Alert{
		Kind:    models.AlertError,
		Title:   "Vote Not Recorded",
		Message: "This voter is already marked as having voted. Please contact the presiding officer.",
	}
}

// notRecordedAlert covers submission failures other than the race. The voter
// is not marked and may scan again.
func notRecordedAlert() models.Alert {
	return models.Alert{
		Kind:    models.AlertError,
		Title:   "Vote Not Recorded",
		Message: "Your vote could not be recorded. Please scan again or contact the presiding officer.",
	}
}
