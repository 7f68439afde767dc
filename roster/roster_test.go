// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package roster

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlRoster = `
voters:
  - id: V1
    display_name: First Voter
  - id: V2
    display_name: Second Voter
candidates:
  - id: C1
    name: Candidate One
    party: Party A
  - id: C2
    name: Candidate Two
    party: Party B
`

const jsonRoster = `{
  "voters": [{"id": "V1", "display_name": "First Voter"}],
  "candidates": [{"id": "C1", "name": "Candidate One", "party": "Party A", "symbol": "*"}]
}`

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "booth.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(yamlRoster), 0o644))
	r, err := Load(yamlPath)
	require.NoError(t, err)
	require.Len(t, r.Voters, 2)
	assert.Equal(t, "Second Voter", r.Voters[1].DisplayName)
	require.Len(t, r.Candidates, 2)
	assert.Equal(t, "Party B", r.Candidates[1].Party)

	jsonPath := filepath.Join(dir, "booth.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(jsonRoster), 0o644))
	r, err = Load(jsonPath)
	require.NoError(t, err)
	require.Len(t, r.Voters, 1)
	assert.Equal(t, "*", r.Candidates[0].Symbol)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	txt := filepath.Join(dir, "booth.txt")
	require.NoError(t, os.WriteFile(txt, []byte(yamlRoster), 0o644))
	_, err = Load(txt)
	assert.ErrorIs(t, err, ErrUnknownFormat)

	bad := filepath.Join(dir, "bad.yml")
	require.NoError(t, os.WriteFile(bad, []byte("voters: [\n"), 0o644))
	_, err = Load(bad)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr error
	}{
		{
			name:    "duplicate voter",
			data:    "voters: [{id: V1}, {id: V1}]\ncandidates: [{id: C1}]",
			wantErr: ErrDuplicateID,
		},
		{
			name:    "duplicate candidate",
			data:    "voters: [{id: V1}]\ncandidates: [{id: C1}, {id: C1}]",
			wantErr: ErrDuplicateID,
		},
		{
			name:    "blank voter id",
			data:    "voters: [{id: ' '}]\ncandidates: [{id: C1}]",
			wantErr: ErrMissingID,
		},
		{
			name:    "no candidates",
			data:    "voters: [{id: V1}]",
			wantErr: ErrNoCandidates,
		},
		{
			name: "empty voter list is allowed",
			data: "candidates: [{id: C1}]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), "yaml")
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDemo(t *testing.T) {
	d := Demo()
	require.NoError(t, d.Validate())
	assert.Len(t, d.Voters, 5)
	assert.Len(t, d.Candidates, 4)
}
