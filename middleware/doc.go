// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

	mux.HandleFunc("POST /session/scan", middleware.WithLogging(cfg.BoothID, handler))

One line per request: booth_id, method, path, status, duration_ms. 4xx
responses log at Warn, 5xx at Error.

# CORS

The kiosk UI may be served from another origin:

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Preflight requests get 204 without reaching a handler. Only GET, POST and
the Content-Type header are allowed; credentials never are.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusConflict, "Scan already in progress")

	var req models.SubmitVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

ParseJSONBody reads at most MaxBodyBytes.
*/
package middleware
