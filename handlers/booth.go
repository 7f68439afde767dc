// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/quickly-vote/alert"
	"github.com/danielhkuo/quickly-vote/middleware"
	"github.com/danielhkuo/quickly-vote/models"
	"github.com/danielhkuo/quickly-vote/session"
)

type BoothHandler struct {
	machine *session.Machine
	alerts  *alert.Board
}

func NewBoothHandler(machine *session.Machine, alerts *alert.Board) *BoothHandler {
	return &BoothHandler{machine: machine, alerts: alerts}
}

// StartScan handles POST /session/scan
func (h *BoothHandler) StartScan(w http.ResponseWriter, r *http.Request) {
	outcome, err := h.machine.StartScan(r.Context())
	if err != nil {
		writeSessionError(w, err)
		return
	}

	resp := models.ScanResponse{
		Outcome: outcome.Kind,
		State:   h.machine.State(),
	}
	if outcome.Kind != models.OutcomeFailure {
		v := outcome.Voter
		resp.Voter = &v
	}
	if a, ok := h.alerts.Current(); ok {
		resp.Alert = &a
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// SubmitVote handles POST /session/vote
func (h *BoothHandler) SubmitVote(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	req.CandidateID = strings.TrimSpace(req.CandidateID)
	if req.CandidateID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "candidate_id is required")
		return
	}

	rec, err := h.machine.SubmitVote(r.Context(), req.CandidateID)
	if err != nil {
		writeSessionError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.SubmitVoteResponse{
		Record: rec,
		State:  h.machine.State(),
	})
}

// Reset handles POST /session/reset
func (h *BoothHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.machine.Reset(); err != nil {
		writeSessionError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, h.machine.State())
}

// GetSession handles GET /session
func (h *BoothHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, h.machine.State())
}

func writeSessionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, session.ErrScanInProgress):
		middleware.ErrorResponse(w, http.StatusConflict, "Scan already in progress")
	case errors.Is(err, session.ErrInvalidTransition):
		middleware.ErrorResponse(w, http.StatusConflict, "Action not allowed in the current session state")
	case errors.Is(err, session.ErrUnknownCandidate):
		middleware.ErrorResponse(w, http.StatusBadRequest, "Unknown candidate")
	case errors.Is(err, session.ErrAlreadyVotedRace):
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Vote not recorded: voter was already marked as voted")
	default:
		slog.Error("session operation failed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to record vote")
	}
}
