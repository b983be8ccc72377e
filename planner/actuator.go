package planner

import "fmt"

// Piece is the live, falling piece the actuator drives. Every action is
// applied immediately and must leave the piece in a valid state.
type Piece interface {
	Cells() []Cell
	State() State
	Shape() Shape

	SlideLeft()
	SlideRight()
	SoftDropStep()
	// InstantDrop moves the piece straight down to rest without locking.
	InstantDrop()
	Rotate(direction int)
	// Lock drops the piece to rest and locks it into the board.
	Lock()
}

// Action identifies what a single Advance did.
type Action uint8

const (
	// ActionNone is the zero Action. Advance always does something, so it
	// never returns ActionNone; it marks an unset Action.
	ActionNone Action = iota
	ActionPlan
	ActionSlideLeft
	ActionSlideRight
	ActionSoftDrop
	ActionInstantDrop
	ActionRotateCW
	ActionRotateCCW
	ActionRotate180
	ActionLock
)

func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionPlan:
		return "plan"
	case ActionSlideLeft:
		return "slide-left"
	case ActionSlideRight:
		return "slide-right"
	case ActionSoftDrop:
		return "soft-drop"
	case ActionInstantDrop:
		return "instant-drop"
	case ActionRotateCW:
		return "rotate-cw"
	case ActionRotateCCW:
		return "rotate-ccw"
	case ActionRotate180:
		return "rotate-180"
	case ActionLock:
		return "lock"
	}
	return fmt.Sprintf("Action(%d)", uint8(a))
}

// Option configures an Actuator.
type Option func(*Actuator)

// WithSelector replaces the default uniform random selection policy.
func WithSelector(selector Selector) Option {
	return func(a *Actuator) {
		a.selector = selector
	}
}

// WithSearchCache memoises searches in cache.
func WithSearchCache(cache *SearchCache) Option {
	return func(a *Actuator) {
		a.cache = cache
	}
}

// WithSearchOptions overrides the search options.
func WithSearchOptions(options Options) Option {
	return func(a *Actuator) {
		a.options = options
	}
}

// Actuator replays a chosen move queue on a live piece, one atomic action
// per tick. It is not safe for concurrent use; the driver ticks it from a
// single goroutine.
type Actuator struct {
	board    Board
	piece    Piece
	selector Selector
	cache    *SearchCache
	options  Options

	needsTarget     bool
	pendingDescents int
	target          Placement
	queue           Queue
}

// NewActuator returns an actuator that plans on its first tick.
func NewActuator(board Board, piece Piece, opts ...Option) *Actuator {
	a := &Actuator{
		board:       board,
		piece:       piece,
		selector:    &RandomSelector{},
		options:     DefaultOptions(),
		needsTarget: true,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// NeedsTarget reports whether the next tick plans.
func (a *Actuator) NeedsTarget() bool {
	return a.needsTarget
}

// PendingDescents returns the soft drops still owed by the current run.
func (a *Actuator) PendingDescents() int {
	return a.pendingDescents
}

// Target returns the current target placement, if one is being replayed.
func (a *Actuator) Target() (Placement, bool) {
	return a.target, !a.needsTarget
}

// Remaining returns a copy of the unconsumed queue entries.
func (a *Actuator) Remaining() Queue {
	return a.queue.Clone()
}

// Reset drops the current plan; the next tick plans from the live piece.
func (a *Actuator) Reset() {
	a.needsTarget = true
	a.pendingDescents = 0
	a.target = Placement{}
	a.queue = nil
}

// Advance performs one tick: it either plans, applies one owed soft drop,
// or consumes the next queue entry.
func (a *Actuator) Advance(extremeGravity bool) Action {
	if a.needsTarget {
		set := a.search(a.piece.State(), extremeGravity)
		a.adopt(a.selector.Select(set))
		return ActionPlan
	}

	if a.pendingDescents > 0 {
		a.piece.SoftDropStep()
		a.pendingDescents--
		return ActionSoftDrop
	}

	entry := a.queue.Dequeue()
	switch entry {
	case Entry(ShiftLeft):
		a.piece.SlideLeft()
		return ActionSlideLeft
	case Entry(ShiftRight):
		a.piece.SlideRight()
		return ActionSlideRight
	case Entry(SoftDropOne):
		return a.descend()
	case Entry(RotateCW):
		a.piece.Rotate(1)
		return ActionRotateCW
	case Entry(RotateCCW):
		a.piece.Rotate(-1)
		return ActionRotateCCW
	case Entry(Rotate180):
		a.piece.Rotate(2)
		return ActionRotate180
	case UseInstantDrop:
		a.piece.InstantDrop()
		return ActionInstantDrop
	case EndOfQueue:
		return a.lock()
	}
	panic(fmt.Sprintf("planner: unknown queue entry %d", uint8(entry)))
}

// descend handles the first SoftDropOne of a run. It consumes the rest of
// the run: a run closed by UseInstantDrop or EndOfQueue becomes a single
// instant drop or lock, otherwise one soft drop is applied now and the
// remainder is owed to the following ticks.
func (a *Actuator) descend() Action {
	descents := 1

scan:
	for {
		next, ok := a.queue.Peek()
		if !ok {
			break
		}
		switch next {
		case Entry(SoftDropOne):
			a.queue.Dequeue()
			descents++
		case UseInstantDrop:
			a.queue.Dequeue()
			a.pendingDescents = 0
			a.piece.InstantDrop()
			return ActionInstantDrop
		case EndOfQueue:
			a.queue.Dequeue()
			a.pendingDescents = 0
			return a.lock()
		default:
			break scan
		}
	}

	a.piece.SoftDropStep()
	a.pendingDescents = descents - 1
	return ActionSoftDrop
}

func (a *Actuator) lock() Action {
	a.piece.Lock()
	a.needsTarget = true
	a.pendingDescents = 0
	a.queue = nil
	return ActionLock
}

// Replan searches again from a state the live piece was forced into. The
// previous target is kept when it is still reachable; otherwise the
// selector picks a new one. The actuator always holds a target afterwards.
func (a *Actuator) Replan(from State, extremeGravity bool) {
	from.Rotation = Wrap(from.Rotation, 0, 4)
	set := a.search(from, extremeGravity)

	if !a.needsTarget {
		if p, ok := set.Lookup(a.target.State); ok {
			a.adopt(p)
			return
		}
		// The search never lists its own start, so a piece forced straight
		// onto its target would otherwise lose it.
		if a.target.State == from && !CanDescend(a.board, a.cellsAt(from.Rotation), from) {
			a.adopt(Placement{State: from, Queue: Queue{EndOfQueue}})
			return
		}
	}
	a.adopt(a.selector.Select(set))
}

// cellsAt returns the live piece cells turned to the given rotation index.
func (a *Actuator) cellsAt(rotation int) []Cell {
	piece := a.piece.State()
	return Orientations(a.piece.Shape().Kind, a.piece.Cells(), piece.Rotation)[Wrap(rotation, 0, 4)]
}

func (a *Actuator) search(from State, extremeGravity bool) *PlacementSet {
	searcher := &Searcher{
		Board:   a.board,
		Shape:   a.piece.Shape(),
		Options: a.options,
	}
	cells := a.cellsAt(from.Rotation)
	if a.cache != nil {
		return a.cache.Search(searcher, cells, from, extremeGravity)
	}
	return searcher.Search(cells, from, extremeGravity)
}

func (a *Actuator) adopt(p Placement) {
	a.target = p
	a.queue = p.Queue.Clone()
	a.pendingDescents = 0
	a.needsTarget = false
}
