// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the booth kiosk API.

# Route Registration

	mux := router.NewRouter(router.Booth{
		Machine:    machine,
		Stats:      agg,
		Alerts:     board,
		Candidates: roll.Candidates,
	}, cfg)

# Endpoints

Health:

	GET /health

Session:

	POST /session/scan  - Run one biometric authentication attempt
	POST /session/vote  - Cast the authenticated voter's vote
	POST /session/reset - Return the booth to idle
	GET  /session       - Current session state

Dashboard:

	GET /stats      - Counters, rates and stat cards
	GET /candidates - Ballot
	GET /alert      - Current alert (204 when none)

GET /alert is polled by the kiosk and is not request-logged.
*/
package router
