package planner

import (
	"iter"

	"github.com/kamstrup/intmap"
)

// Placement is a reachable resting state and the queue that reaches it.
type Placement struct {
	State State
	Queue Queue
}

// PlacementSet holds one placement per distinct resting state, in the order
// the search discovered them.
type PlacementSet struct {
	items []Placement
	index *intmap.Map[uint64, int]

	explored int
}

func newPlacementSet() *PlacementSet {
	return &PlacementSet{
		index: intmap.New[uint64, int](64),
	}
}

// add appends a placement unless its state is already present.
func (p *PlacementSet) add(state State, queue Queue) bool {
	if p.index.Has(state.Key()) {
		return false
	}
	p.index.Put(state.Key(), len(p.items))
	p.items = append(p.items, Placement{State: state, Queue: queue})
	return true
}

// Len returns the number of placements.
func (p *PlacementSet) Len() int {
	return len(p.items)
}

// Explored returns how many distinct states the search visited to build
// the set, the start state included.
func (p *PlacementSet) Explored() int {
	return p.explored
}

// At returns the i-th placement in discovery order.
func (p *PlacementSet) At(i int) Placement {
	return p.items[i]
}

// Lookup returns the placement for a state.
func (p *PlacementSet) Lookup(state State) (Placement, bool) {
	i, ok := p.index.Get(state.Key())
	if !ok {
		return Placement{}, false
	}
	return p.items[i], true
}

// Contains reports whether state is one of the placements.
func (p *PlacementSet) Contains(state State) bool {
	return p.index.Has(state.Key())
}

// All iterates the placements in discovery order.
func (p *PlacementSet) All() iter.Seq[Placement] {
	return func(yield func(Placement) bool) {
		for _, item := range p.items {
			if !yield(item) {
				return
			}
		}
	}
}

// States returns the placement states in discovery order.
func (p *PlacementSet) States() []State {
	states := make([]State, len(p.items))
	for i, item := range p.items {
		states[i] = item.State
	}
	return states
}

// VisitedMap records, for each explored state, the queue that first reached
// it. Breadth-first order makes that queue a shortest one by move count.
type VisitedMap struct {
	queues *intmap.Map[uint64, Queue]
}

// NewVisitedMap returns an empty map sized for a typical board.
func NewVisitedMap() *VisitedMap {
	return &VisitedMap{
		queues: intmap.New[uint64, Queue](1024),
	}
}

// Visited reports whether state has been recorded.
func (v *VisitedMap) Visited(state State) bool {
	return v.queues.Has(state.Key())
}

// RecordVisited stores the queue for a newly reached state. A state that is
// already present keeps its first queue; the return value reports whether
// the record was taken.
func (v *VisitedMap) RecordVisited(state State, queue Queue) bool {
	if v.queues.Has(state.Key()) {
		return false
	}
	v.queues.Put(state.Key(), queue)
	return true
}

// Queue returns the queue recorded for state.
func (v *VisitedMap) Queue(state State) (Queue, bool) {
	return v.queues.Get(state.Key())
}

// Len returns the number of recorded states.
func (v *VisitedMap) Len() int {
	return v.queues.Len()
}
