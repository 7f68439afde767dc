// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package roster

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/danielhkuo/quickly-vote/models"
)

var (
	ErrDuplicateID   = errors.New("duplicate id")
	ErrMissingID     = errors.New("id is required")
	ErrNoCandidates  = errors.New("roster has no candidates")
	ErrUnknownFormat = errors.New("unknown roster format")
)

// Roster is the eligible voter list and ballot handed to the booth at startup.
type Roster struct {
	Voters     []models.VoterIdentity `json:"voters" yaml:"voters"`
	Candidates []models.Candidate     `json:"candidates" yaml:"candidates"`
}

// Load reads a roster from a .yaml, .yml or .json file.
func Load(path string) (Roster, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Roster{}, fmt.Errorf("read roster: %w", err)
	}
	r, err := Parse(data, strings.TrimPrefix(filepath.Ext(path), "."))
	if err != nil {
		return Roster{}, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

func Parse(data []byte, format string) (Roster, error) {
	var r Roster
	switch strings.ToLower(format) {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &r); err != nil {
			return Roster{}, fmt.Errorf("parse yaml: %w", err)
		}
	case "json":
		if err := json.Unmarshal(data, &r); err != nil {
			return Roster{}, fmt.Errorf("parse json: %w", err)
		}
	default:
		return Roster{}, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err := r.Validate(); err != nil {
		return Roster{}, err
	}
	return r, nil
}

// Validate checks id presence and uniqueness. Nothing else about the roster
// is second-guessed.
func (r Roster) Validate() error {
	seen := make(map[string]bool, len(r.Voters))
	for i, v := range r.Voters {
		id := strings.TrimSpace(v.ID)
		if id == "" {
			return fmt.Errorf("voter %d: %w", i, ErrMissingID)
		}
		if seen[id] {
			return fmt.Errorf("voter %s: %w", id, ErrDuplicateID)
		}
		seen[id] = true
	}

	if len(r.Candidates) == 0 {
		return ErrNoCandidates
	}
	seen = make(map[string]bool, len(r.Candidates))
	for i, c := range r.Candidates {
		id := strings.TrimSpace(c.ID)
		if id == "" {
			return fmt.Errorf("candidate %d: %w", i, ErrMissingID)
		}
		if seen[id] {
			return fmt.Errorf("candidate %s: %w", id, ErrDuplicateID)
		}
		seen[id] = true
	}
	return nil
}

// Demo is the built-in roster for a kiosk started without a roster file.
func Demo() Roster {
	return Roster{
		Voters: []models.VoterIdentity{
			{ID: "IND001", DisplayName: "Rajesh Kumar"},
			{ID: "IND002", DisplayName: "Priya Sharma"},
			{ID: "IND003", DisplayName: "Amit Singh"},
			{ID: "IND004", DisplayName: "Sunita Devi"},
			{ID: "IND005", DisplayName: "Arjun Patel"},
		},
		Candidates: []models.Candidate{
			{ID: "BJP001", Name: "Dr. Rajesh Gupta", Party: "Bharatiya Janata Party", Symbol: "🪷"},
			{ID: "INC001", Name: "Smt. Priya Mehta", Party: "Indian National Congress", Symbol: "✋"},
			{ID: "AAP001", Name: "Sh. Vikram Singh", Party: "Aam Aadmi Party", Symbol: "🧹"},
			{ID: "BSP001", Name: "Km. Sunita Devi", Party: "Bahujan Samaj Party", Symbol: "🐘"},
		},
	}
}
