package planner

// Options tunes the placement search.
type Options struct {
	// PruneInverse skips a move that undoes the last recorded move. The
	// visited map alone already guarantees termination.
	PruneInverse bool
}

// DefaultOptions returns the options used by Search and new actuators.
func DefaultOptions() Options {
	return Options{PruneInverse: true}
}

// Searcher enumerates the resting placements a piece can reach on a board.
// A Searcher holds no per-search state; every search allocates its own
// visited map and frontier.
type Searcher struct {
	Board   Board
	Shape   Shape
	Options Options
}

// NewSearcher returns a Searcher with default options.
func NewSearcher(board Board, shape Shape) *Searcher {
	return &Searcher{
		Board:   board,
		Shape:   shape,
		Options: DefaultOptions(),
	}
}

// Search is shorthand for NewSearcher(board, shape).Search(...).
func Search(board Board, shape Shape, cells []Cell, initial State, extremeGravity bool) *PlacementSet {
	return NewSearcher(board, shape).Search(cells, initial, extremeGravity)
}

// Search runs a breadth-first exploration from initial, where cells are
// the piece cells at initial.Rotation. With extremeGravity every move is
// followed by an instant fall to rest. The returned set is never empty: a
// piece that cannot move locks where it stands.
func (s *Searcher) Search(cells []Cell, initial State, extremeGravity bool) *PlacementSet {
	initial.Rotation = Wrap(initial.Rotation, 0, 4)
	orient := Orientations(s.Shape.Kind, cells, initial.Rotation)

	visited := NewVisitedMap()
	visited.RecordVisited(initial, Queue{})

	result := newPlacementSet()
	frontier := []State{initial}

	// The frontier holds states only; each queue lives in the visited map.
	for len(frontier) > 0 {
		var next []State

		for _, from := range frontier {
			fromQueue, _ := visited.Queue(from)
			for _, move := range Moves {
				if s.Options.PruneInverse && undoesLast(move, fromQueue) {
					continue
				}

				to, ok := s.step(orient, from, move, extremeGravity)
				if !ok || visited.Visited(to) {
					continue
				}

				queue := s.extend(orient, fromQueue, to, move)
				visited.RecordVisited(to, queue)
				next = append(next, to)

				if !CanDescend(s.Board, orient[to.Rotation], to) {
					result.add(to, queue.Terminated())
				}
			}
		}

		frontier = next
	}

	if result.Len() == 0 {
		result.add(initial, Queue{EndOfQueue})
	}
	result.explored = visited.Len()
	return result
}

// step applies one move to a state. It never mutates shared data.
func (s *Searcher) step(orient [4][]Cell, from State, move Move, extremeGravity bool) (State, bool) {
	var to State

	if move.IsRotation() {
		kicked, _, ok := TryRotate(s.Board, s.Shape, orient[from.Rotation], from, move.Direction())
		if !ok {
			return from, false
		}
		to = kicked
	} else {
		dx, dy := move.Delta()
		to = from.Translate(dx, dy)
		if !IsValidState(s.Board, orient[to.Rotation], to) {
			return from, false
		}
	}

	if extremeGravity {
		to = DropToRest(s.Board, orient[to.Rotation], to)
	}
	return to, true
}

// extend records move on a copy of queue. A soft drop that ends a run of
// three or more at rest is followed by UseInstantDrop so replay can finish
// the run in one action.
func (s *Searcher) extend(orient [4][]Cell, queue Queue, to State, move Move) Queue {
	if move == SoftDropOne && queue.trailingDrops() >= 2 && !CanDescend(s.Board, orient[to.Rotation], to) {
		return queue.Append(move.Entry(), UseInstantDrop)
	}
	return queue.Append(move.Entry())
}

func undoesLast(move Move, queue Queue) bool {
	last, ok := queue.LastMove()
	if !ok {
		return false
	}
	inverse, ok := last.Inverse()
	return ok && inverse == move
}
