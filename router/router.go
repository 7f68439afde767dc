// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/quickly-vote/alert"
	"github.com/danielhkuo/quickly-vote/cliparse"
	"github.com/danielhkuo/quickly-vote/handlers"
	"github.com/danielhkuo/quickly-vote/middleware"
	"github.com/danielhkuo/quickly-vote/models"
	"github.com/danielhkuo/quickly-vote/session"
	"github.com/danielhkuo/quickly-vote/stats"
)

// Booth holds the collaborators the routes are served from
type Booth struct {
	Machine    *session.Machine
	Stats      *stats.Aggregator
	Alerts     *alert.Board
	Candidates []models.Candidate
}

func NewRouter(booth Booth, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	boothHandler := handlers.NewBoothHandler(booth.Machine, booth.Alerts)
	statsHandler := handlers.NewStatsHandler(booth.Stats, booth.Alerts, booth.Candidates, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Session lifecycle
	mux.HandleFunc("POST /session/scan", middleware.WithLogging(cfg.BoothID, boothHandler.StartScan))
	mux.HandleFunc("POST /session/vote", middleware.WithLogging(cfg.BoothID, boothHandler.SubmitVote))
	mux.HandleFunc("POST /session/reset", middleware.WithLogging(cfg.BoothID, boothHandler.Reset))
	mux.HandleFunc("GET /session", middleware.WithLogging(cfg.BoothID, boothHandler.GetSession))

	// Dashboard
	mux.HandleFunc("GET /stats", middleware.WithLogging(cfg.BoothID, statsHandler.GetStats))
	mux.HandleFunc("GET /candidates", middleware.WithLogging(cfg.BoothID, statsHandler.GetCandidates))
	mux.HandleFunc("GET /alert", statsHandler.GetAlert)

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("quickly-vote booth " + cfg.BoothID))
	})

	return mux
}
