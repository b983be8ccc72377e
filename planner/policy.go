package planner

import (
	"math/rand/v2"
	"sync"
)

// Selector picks one placement out of a non-empty set. Implementations
// are the pluggable "which placement is best" policy.
type Selector interface {
	Select(set *PlacementSet) Placement
}

// SelectorFunc adapts a function to the Selector interface.
type SelectorFunc func(set *PlacementSet) Placement

// Select calls f(set).
func (f SelectorFunc) Select(set *PlacementSet) Placement {
	return f(set)
}

func mustHavePlacements(set *PlacementSet) {
	if set == nil || set.Len() == 0 {
		panic("planner: select from empty placement set")
	}
}

// RandomSelector picks uniformly at random.
type RandomSelector struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomSelector returns a RandomSelector seeded with seed.
func NewRandomSelector(seed uint64) *RandomSelector {
	return &RandomSelector{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Select returns a uniformly random placement.
func (r *RandomSelector) Select(set *PlacementSet) Placement {
	mustHavePlacements(set)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.rng == nil {
		return set.At(rand.IntN(set.Len()))
	}
	return set.At(r.rng.IntN(set.Len()))
}

// FirstSelector picks the first placement the search discovered, which is
// one of those with the shortest queue.
type FirstSelector struct{}

// Select returns set.At(0).
func (FirstSelector) Select(set *PlacementSet) Placement {
	mustHavePlacements(set)
	return set.At(0)
}

// LowestSelector picks the placement with the lowest origin row, breaking
// ties by discovery order.
type LowestSelector struct{}

// Select returns the lowest placement.
func (LowestSelector) Select(set *PlacementSet) Placement {
	mustHavePlacements(set)

	best := set.At(0)
	for p := range set.All() {
		if p.State.Y < best.State.Y {
			best = p
		}
	}
	return best
}
