package main

import (
	"bytes"
	"testing"

	"github.com/plus3/shiftri/planner"
	"github.com/plus3/shiftri/sim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReport(t *testing.T) {
	cfg := sim.DefaultConfig()
	cfg.PieceLimit = 3
	cfg.Policy = sim.PolicyFirst

	result, err := play(cfg, false)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Stats.Pieces)
	assert.Positive(t, result.Cache.Misses)

	counts := result.ActionCounts()
	require.NotEmpty(t, counts)
	assert.Equal(t, planner.ActionPlan, counts[0].Action)

	report := &Report{Config: cfg, ShowBoard: true, Matches: []MatchResult{result}}
	assert.Equal(t, 3, report.TotalPieces())

	var buf bytes.Buffer
	require.NoError(t, report.Generate(&buf))
	out := buf.String()
	assert.Contains(t, out, "# Shiftri Simulation Report")
	assert.Contains(t, out, "**Policy:** first")
	assert.Contains(t, out, "## Match 1 (seed 1)")
	assert.Contains(t, out, "lock=3")
	assert.Contains(t, out, "**Forced Locks:** 0")
	assert.Contains(t, out, "SpawnSystem")
	assert.Contains(t, out, "##")
}
