package planner

import "fmt"

// KickTable lists, per transition index, the translations to try after a
// rotation. Column order is priority order.
type KickTable [][]Cell

// Rows returns the number of transition rows in the table.
func (t KickTable) Rows() int {
	return len(t)
}

// Candidates returns the ordered translations for a transition index.
func (t KickTable) Candidates(index int) []Cell {
	return t[index]
}

// Shape bundles the immutable per-piece-type rotation data.
type Shape struct {
	Name     string
	Kind     ShapeKind
	Kicks    KickTable // quarter turns
	Kicks180 KickTable // half turns
}

// table returns the kick table that serves the given direction.
func (s Shape) table(direction int) KickTable {
	if direction == 2 {
		return s.Kicks180
	}
	return s.Kicks
}

// KickIndex maps a rotation transition onto a row of the matching kick
// table. Quarter turns use from*2, minus one for counter-clockwise; half
// turns use from. The result is always in [0, rows).
func KickIndex(shape Shape, from, direction int) int {
	table := shape.table(direction)
	if table.Rows() == 0 {
		panic(fmt.Sprintf("planner: no kick rows for direction %d", direction))
	}

	var index int
	if direction == 2 {
		index = from
	} else {
		index = from * 2
		if direction < 0 {
			index--
		}
	}
	return Wrap(index, 0, table.Rows())
}

// TryRotate rotates cells by direction and tries each kick candidate in
// table order. It returns the first valid kicked state and its rotated
// cells. The caller's cells are never modified; on failure ok is false and
// the returned cells are nil.
func TryRotate(board Board, shape Shape, cells []Cell, state State, direction int) (State, []Cell, bool) {
	rotated := Rotate(shape.Kind, cells, direction)
	index := KickIndex(shape, state.Rotation, direction)

	turned := state
	turned.Rotation = Wrap(state.Rotation+direction, 0, 4)

	for _, kick := range shape.table(direction).Candidates(index) {
		candidate := turned.Translate(kick.X, kick.Y)
		if IsValidState(board, rotated, candidate) {
			return candidate, rotated, true
		}
	}
	return state, nil, false
}
