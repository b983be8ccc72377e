package planner

import (
	"fmt"
	"math"
)

// ShapeKind selects the pivot convention used when rotating a piece.
type ShapeKind int

const (
	// CenteredOnCell pieces pivot on a grid intersection and round rotated
	// coordinates to the nearest integer (J, L, S, T, Z).
	CenteredOnCell ShapeKind = iota
	// CenteredOnHalfCell pieces pivot on (0.5, 0.5) and round rotated
	// coordinates toward positive infinity (I, O).
	CenteredOnHalfCell
)

func (k ShapeKind) String() string {
	switch k {
	case CenteredOnCell:
		return "CenteredOnCell"
	case CenteredOnHalfCell:
		return "CenteredOnHalfCell"
	}
	return fmt.Sprintf("ShapeKind(%d)", int(k))
}

// RotationMatrix holds the 2x2 matrix, row major, applied for a single
// clockwise quarter turn and scaled by the direction. With y pointing up,
// {0, 1, -1, 0} maps (x, y) to (y, -x).
var RotationMatrix = [4]float64{0, 1, -1, 0}

// Rotate returns a rotated copy of cells. Direction is -1 (counter-clockwise),
// +1 (clockwise) or +2 (half turn, applied as two clockwise quarter turns).
func Rotate(kind ShapeKind, cells []Cell, direction int) []Cell {
	out := make([]Cell, len(cells))
	copy(out, cells)

	switch direction {
	case -1, 1:
		rotateQuarter(kind, out, direction)
	case 2:
		rotateQuarter(kind, out, 1)
		rotateQuarter(kind, out, 1)
	default:
		panic(fmt.Sprintf("planner: invalid rotation direction %d", direction))
	}
	return out
}

func rotateQuarter(kind ShapeKind, cells []Cell, direction int) {
	m := RotationMatrix
	d := float64(direction)

	for i, c := range cells {
		x, y := float64(c.X), float64(c.Y)

		switch kind {
		case CenteredOnHalfCell:
			x -= 0.5
			y -= 0.5
			cells[i] = Cell{
				X: int(math.Ceil(x*m[0]*d + y*m[1]*d)),
				Y: int(math.Ceil(x*m[2]*d + y*m[3]*d)),
			}
		default:
			cells[i] = Cell{
				X: int(math.Round(x*m[0]*d + y*m[1]*d)),
				Y: int(math.Round(x*m[2]*d + y*m[3]*d)),
			}
		}
	}
}

// Orientations returns the cell set for every rotation index, given cells
// that are currently at rotation index rotation.
func Orientations(kind ShapeKind, cells []Cell, rotation int) [4][]Cell {
	var out [4][]Cell

	r := Wrap(rotation, 0, 4)
	current := make([]Cell, len(cells))
	copy(current, cells)
	for range 4 {
		out[r] = current
		current = Rotate(kind, current, 1)
		r = Wrap(r+1, 0, 4)
	}
	return out
}

// IsValidState reports whether every cell, translated by the state origin,
// lies inside the board bounds on an unoccupied cell. The rotation of the
// state is assumed to be baked into cells already.
func IsValidState(board Board, cells []Cell, state State) bool {
	bounds := board.Bounds()
	origin := Cell{X: state.X, Y: state.Y}

	for _, c := range cells {
		p := c.Add(origin)
		if !bounds.Contains(p) || board.IsOccupied(p) {
			return false
		}
	}
	return true
}

// CanDescend reports whether the state one row lower is valid.
func CanDescend(board Board, cells []Cell, state State) bool {
	return IsValidState(board, cells, state.Below())
}

// DropToRest lowers the state while the row below stays valid.
func DropToRest(board Board, cells []Cell, state State) State {
	for CanDescend(board, cells, state) {
		state = state.Below()
	}
	return state
}
