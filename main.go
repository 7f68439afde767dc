// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/danielhkuo/quickly-vote/alert"
	"github.com/danielhkuo/quickly-vote/biometric"
	"github.com/danielhkuo/quickly-vote/cliparse"
	"github.com/danielhkuo/quickly-vote/db"
	"github.com/danielhkuo/quickly-vote/engine"
	"github.com/danielhkuo/quickly-vote/middleware"
	"github.com/danielhkuo/quickly-vote/registry"
	"github.com/danielhkuo/quickly-vote/roster"
	"github.com/danielhkuo/quickly-vote/router"
	"github.com/danielhkuo/quickly-vote/session"
	"github.com/danielhkuo/quickly-vote/stats"
)

func main() {
	var err error

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Load the electoral roll
	roll := roster.Demo()
	if cfg.RosterFile != "" {
		roll, err = roster.Load(cfg.RosterFile)
		if err != nil {
			slog.Error("roster load failed", "path", cfg.RosterFile, "error", err)
			os.Exit(1)
		}
	}
	slog.Info("Roster loaded", "voters", len(roll.Voters), "candidates", len(roll.Candidates))

	reg, err := registry.New(roll.Voters, registry.RandomResolver{})
	if err != nil {
		slog.Error("registry setup failed", "error", err)
		os.Exit(1)
	}

	// Open the audit journal
	dbConn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "type", cfg.DatabaseType, "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	if err := db.CreateSchema(dbConn, cfg.DatabaseType); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready")

	// Wire the booth
	agg := stats.New(reg.Len())
	board := alert.NewBoard(cfg.AlertTTL)
	// Native sensor and WebAuthn capture live on the kiosk client; the server
	// scans through the simulated source.
	scanner := biometric.NewSimulated(biometric.RandomSource{Rate: cfg.MatchRate}, cfg.ScanDelay)
	eng := engine.New(reg, scanner, engine.WithTimeout(cfg.ChallengeTimeout))

	machine := session.New(session.Dependencies{
		Engine:         eng,
		Votes:          reg,
		Stats:          agg,
		Alerts:         board,
		Journal:        db.NewJournal(dbConn),
		Candidates:     roll.Candidates,
		BoothID:        cfg.BoothID,
		RefSalt:        cfg.VoterRefSalt,
		AutoOpenBallot: true,
	})

	// Create router
	mux := router.NewRouter(router.Booth{
		Machine:    machine,
		Stats:      agg,
		Alerts:     board,
		Candidates: roll.Candidates,
	}, cfg)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port, "booth_id", cfg.BoothID)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
