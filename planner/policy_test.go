package planner_test

import (
	"testing"

	"github.com/plus3/shiftri/planner"
	"github.com/plus3/shiftri/sim"
	"github.com/plus3/shiftri/tetromino"
	"github.com/stretchr/testify/assert"
)

func TestSelectors(t *testing.T) {
	set, _ := spawnedSearch(t, randomMatrix(17, 10, 20, 0.5), tetromino.J, false)

	t.Run("first", func(t *testing.T) {
		assert.Equal(t, set.At(0), planner.FirstSelector{}.Select(set))
	})

	t.Run("lowest", func(t *testing.T) {
		got := planner.LowestSelector{}.Select(set)
		for p := range set.All() {
			assert.GreaterOrEqual(t, p.State.Y, got.State.Y)
		}
	})

	t.Run("random is seeded", func(t *testing.T) {
		a := planner.NewRandomSelector(42)
		b := planner.NewRandomSelector(42)
		for range 20 {
			pa, pb := a.Select(set), b.Select(set)
			assert.Equal(t, pa.State, pb.State)
			assert.True(t, set.Contains(pa.State))
		}
	})

	t.Run("zero random selector", func(t *testing.T) {
		var r planner.RandomSelector
		assert.True(t, set.Contains(r.Select(set).State))
	})

	t.Run("random covers the set", func(t *testing.T) {
		r := planner.NewRandomSelector(7)
		seen := map[planner.State]bool{}
		for range set.Len() * 40 {
			seen[r.Select(set).State] = true
		}
		assert.Len(t, seen, set.Len())
	})
}

func TestSelectorsPanicOnEmpty(t *testing.T) {
	selectors := map[string]planner.Selector{
		"first":  planner.FirstSelector{},
		"lowest": planner.LowestSelector{},
		"random": planner.NewRandomSelector(1),
	}
	for name, s := range selectors {
		t.Run(name, func(t *testing.T) {
			assert.Panics(t, func() { s.Select(nil) })
		})
	}
}

func TestPlacementSetOrder(t *testing.T) {
	set, _ := spawnedSearch(t, sim.NewMatrix(10, 20), tetromino.O, false)

	states := set.States()
	i := 0
	for p := range set.All() {
		assert.Equal(t, states[i], p.State)
		assert.Equal(t, set.At(i), p)
		i++
	}
	assert.Equal(t, set.Len(), i)

	// O fits nine columns and never changes shape.
	assert.Len(t, states, 9*4)
}
