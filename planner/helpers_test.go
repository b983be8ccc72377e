package planner_test

import (
	"math/rand/v2"
	"testing"

	"github.com/plus3/shiftri/planner"
	"github.com/plus3/shiftri/sim"
	"github.com/plus3/shiftri/tetromino"
	"github.com/stretchr/testify/require"
)

// parseMatrix builds a matrix from rows drawn top row first, '#' filled.
func parseMatrix(rows ...string) *sim.Matrix {
	m := sim.NewMatrix(len(rows[0]), len(rows))
	for i, row := range rows {
		y := len(rows) - 1 - i
		for x, ch := range row {
			if ch == '#' {
				m.Fill(planner.Cell{X: x, Y: y})
			}
		}
	}
	return m
}

// randomMatrix fills the lower rows of a width by height matrix with noise,
// leaving the top four rows clear for spawning.
func randomMatrix(seed uint64, width, height int, density float64) *sim.Matrix {
	rng := rand.New(rand.NewPCG(seed, seed*31+7))
	m := sim.NewMatrix(width, height)
	for y := 0; y < height-4; y++ {
		for x := 0; x < width; x++ {
			if rng.Float64() < density*float64(height-4-y)/float64(height-4) {
				m.Fill(planner.Cell{X: x, Y: y})
			}
		}
	}
	return m
}

// noFingerprint hides the Fingerprint method of a board.
type noFingerprint struct {
	planner.Board
}

// recordingPiece wraps a live piece and fails the test as soon as an
// action leaves it in an invalid state.
type recordingPiece struct {
	*sim.ActivePiece
	t       *testing.T
	matrix  *sim.Matrix
	actions []string
}

func newRecordingPiece(t *testing.T, matrix *sim.Matrix, kind tetromino.Kind, extremeGravity bool) *recordingPiece {
	t.Helper()
	piece := sim.NewActivePiece(matrix)
	piece.SetExtremeGravity(extremeGravity)
	require.True(t, piece.Spawn(kind), "spawn of %v blocked", kind)
	return &recordingPiece{ActivePiece: piece, t: t, matrix: matrix}
}

func (p *recordingPiece) check(name string) {
	p.actions = append(p.actions, name)
	if p.Locked() {
		return
	}
	require.True(p.t, planner.IsValidState(p.matrix, p.ActivePiece.Cells(), p.State()),
		"invalid state %v after %s", p.State(), name)
}

func (p *recordingPiece) SlideLeft()           { p.ActivePiece.SlideLeft(); p.check("L") }
func (p *recordingPiece) SlideRight()          { p.ActivePiece.SlideRight(); p.check("R") }
func (p *recordingPiece) SoftDropStep()        { p.ActivePiece.SoftDropStep(); p.check("D") }
func (p *recordingPiece) InstantDrop()         { p.ActivePiece.InstantDrop(); p.check("!") }
func (p *recordingPiece) Rotate(direction int) { p.ActivePiece.Rotate(direction); p.check("rot") }
func (p *recordingPiece) Lock()                { p.ActivePiece.Lock(); p.check(".") }

// replayEntries applies a queue entry by entry, without the actuator's run
// compression, and returns the state the piece ends in. It checks that
// every long soft drop run that ends at rest carries UseInstantDrop.
func replayEntries(t *testing.T, matrix *sim.Matrix, kind tetromino.Kind, extremeGravity bool, queue planner.Queue) planner.State {
	t.Helper()
	piece := sim.NewActivePiece(matrix)
	piece.SetExtremeGravity(extremeGravity)
	require.True(t, piece.Spawn(kind))

	run := 0
	for i, entry := range queue {
		if entry != planner.Entry(planner.SoftDropOne) && run >= 3 && piece.Resting() {
			require.Equal(t, planner.UseInstantDrop, entry,
				"run of %d drops at rest not marked in %v", run, queue)
		}
		if entry != planner.Entry(planner.SoftDropOne) {
			run = 0
		}

		before := piece.State()
		switch entry {
		case planner.Entry(planner.ShiftLeft):
			piece.SlideLeft()
		case planner.Entry(planner.ShiftRight):
			piece.SlideRight()
		case planner.Entry(planner.SoftDropOne):
			piece.SoftDropStep()
			run++
		case planner.Entry(planner.RotateCW):
			piece.Rotate(1)
		case planner.Entry(planner.RotateCCW):
			piece.Rotate(-1)
		case planner.Entry(planner.Rotate180):
			piece.Rotate(2)
		case planner.UseInstantDrop:
			require.True(t, piece.Resting(), "instant drop marker above a free row in %v", queue)
			piece.InstantDrop()
		case planner.EndOfQueue:
			require.Equal(t, len(queue)-1, i, "EndOfQueue before the end of %v", queue)
			require.True(t, piece.Resting(), "lock above a free row in %v", queue)
			return piece.State()
		}

		if m, ok := entry.Move(); ok {
			require.NotEqual(t, before, piece.State(), "move %v at %d had no effect in %v", m, i, queue)
		}
		require.True(t, planner.IsValidState(matrix, piece.Cells(), piece.State()))
	}
	t.Fatalf("queue %v has no EndOfQueue", queue)
	return planner.State{}
}

// pick returns a selector that always chooses the placement at state.
func pick(t *testing.T, state planner.State) planner.Selector {
	return planner.SelectorFunc(func(set *planner.PlacementSet) planner.Placement {
		p, ok := set.Lookup(state)
		require.True(t, ok, "placement %v not in set", state)
		return p
	})
}

// fixed returns a selector that always returns p.
func fixed(p planner.Placement) planner.Selector {
	return planner.SelectorFunc(func(*planner.PlacementSet) planner.Placement {
		return p
	})
}
