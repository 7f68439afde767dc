// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/quickly-vote/alert"
	"github.com/danielhkuo/quickly-vote/cliparse"
	"github.com/danielhkuo/quickly-vote/middleware"
	"github.com/danielhkuo/quickly-vote/models"
	"github.com/danielhkuo/quickly-vote/stats"
)

type StatsHandler struct {
	stats      *stats.Aggregator
	alerts     *alert.Board
	candidates []models.Candidate
	cfg        cliparse.Config
}

func NewStatsHandler(agg *stats.Aggregator, alerts *alert.Board, candidates []models.Candidate, cfg cliparse.Config) *StatsHandler {
	return &StatsHandler{stats: agg, alerts: alerts, candidates: candidates, cfg: cfg}
}

// GetStats handles GET /stats
func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	c := h.stats.Snapshot()
	middleware.JSONResponse(w, http.StatusOK, models.StatsResponse{
		Counters:         c,
		TurnoutRate:      stats.TurnoutRate(c),
		VerificationRate: stats.VerificationRate(c),
		Cards:            stats.Format(c),
	})
}

// GetCandidates handles GET /candidates
func (h *StatsHandler) GetCandidates(w http.ResponseWriter, r *http.Request) {
	candidates := h.candidates
	if candidates == nil {
		candidates = []models.Candidate{}
	}
	middleware.JSONResponse(w, http.StatusOK, models.CandidatesResponse{
		BoothID:    h.cfg.BoothID,
		Candidates: candidates,
	})
}

// GetAlert handles GET /alert. No live alert means 204.
func (h *StatsHandler) GetAlert(w http.ResponseWriter, r *http.Request) {
	a, ok := h.alerts.Current()
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, a)
}
