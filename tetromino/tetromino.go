// Package tetromino holds the configuration data for the seven standard
// pieces: spawn cells, pivot conventions and SRS wall kick tables.
package tetromino

import (
	"fmt"

	"github.com/plus3/shiftri/planner"
)

// Kind identifies one of the seven tetrominoes.
type Kind int

const (
	I Kind = iota
	O
	T
	S
	Z
	J
	L
)

// Count is the number of distinct kinds.
const Count = 7

// Kinds lists every kind in bag order.
var Kinds = [Count]Kind{I, O, T, S, Z, J, L}

func (k Kind) String() string {
	if k < 0 || int(k) >= Count {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return names[k]
}

var names = [Count]string{"I", "O", "T", "S", "Z", "J", "L"}

// Parse returns the kind named by a single letter.
func Parse(name string) (Kind, bool) {
	for i, n := range names {
		if n == name {
			return Kind(i), true
		}
	}
	return 0, false
}

// spawnCells are the rotation 0 offsets of every kind around its origin.
var spawnCells = [Count][4]planner.Cell{
	I: {{X: -1, Y: 1}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 1}},
	O: {{X: 0, Y: 1}, {X: 1, Y: 1}, {X: 0, Y: 0}, {X: 1, Y: 0}},
	T: {{X: 0, Y: 1}, {X: -1, Y: 0}, {X: 0, Y: 0}, {X: 1, Y: 0}},
	S: {{X: 0, Y: 1}, {X: 1, Y: 1}, {X: -1, Y: 0}, {X: 0, Y: 0}},
	Z: {{X: -1, Y: 1}, {X: 0, Y: 1}, {X: 0, Y: 0}, {X: 1, Y: 0}},
	J: {{X: -1, Y: 1}, {X: -1, Y: 0}, {X: 0, Y: 0}, {X: 1, Y: 0}},
	L: {{X: 1, Y: 1}, {X: -1, Y: 0}, {X: 0, Y: 0}, {X: 1, Y: 0}},
}

// Cells returns a fresh copy of the spawn (rotation 0) cells of k.
func Cells(k Kind) []planner.Cell {
	src := spawnCells[k]
	cells := make([]planner.Cell, len(src))
	copy(cells, src[:])
	return cells
}

// ShapeKind returns the pivot convention of k. I and O turn around the
// centre of a cell block of even size.
func ShapeKind(k Kind) planner.ShapeKind {
	if k == I || k == O {
		return planner.CenteredOnHalfCell
	}
	return planner.CenteredOnCell
}

// WallKickTable returns the quarter turn kick table for k.
func WallKickTable(k Kind) planner.KickTable {
	if k == I {
		return kicksI
	}
	return kicksJLOSTZ
}

// WallKickTable180 returns the half turn kick table for k.
func WallKickTable180(k Kind) planner.KickTable {
	return kicks180
}

// Shape bundles the rotation data of k for the planner.
func Shape(k Kind) planner.Shape {
	return planner.Shape{
		Name:     k.String(),
		Kind:     ShapeKind(k),
		Kicks:    WallKickTable(k),
		Kicks180: WallKickTable180(k),
	}
}

// Rows are ordered 0>1, 1>0, 1>2, 2>1, 2>3, 3>2, 3>0, 0>3 so that the row
// for a quarter turn from r is r*2 (clockwise) or r*2-1 (counter-clockwise).
var kicksI = planner.KickTable{
	{{X: 0, Y: 0}, {X: -2, Y: 0}, {X: 1, Y: 0}, {X: -2, Y: -1}, {X: 1, Y: 2}},
	{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: -1, Y: 0}, {X: 2, Y: 1}, {X: -1, Y: -2}},
	{{X: 0, Y: 0}, {X: -1, Y: 0}, {X: 2, Y: 0}, {X: -1, Y: 2}, {X: 2, Y: -1}},
	{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: -2, Y: 0}, {X: 1, Y: -2}, {X: -2, Y: 1}},
	{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: -1, Y: 0}, {X: 2, Y: 1}, {X: -1, Y: -2}},
	{{X: 0, Y: 0}, {X: -2, Y: 0}, {X: 1, Y: 0}, {X: -2, Y: -1}, {X: 1, Y: 2}},
	{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: -2, Y: 0}, {X: 1, Y: -2}, {X: -2, Y: 1}},
	{{X: 0, Y: 0}, {X: -1, Y: 0}, {X: 2, Y: 0}, {X: -1, Y: 2}, {X: 2, Y: -1}},
}

var kicksJLOSTZ = planner.KickTable{
	{{X: 0, Y: 0}, {X: -1, Y: 0}, {X: -1, Y: 1}, {X: 0, Y: -2}, {X: -1, Y: -2}},
	{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: -1}, {X: 0, Y: 2}, {X: 1, Y: 2}},
	{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: -1}, {X: 0, Y: 2}, {X: 1, Y: 2}},
	{{X: 0, Y: 0}, {X: -1, Y: 0}, {X: -1, Y: 1}, {X: 0, Y: -2}, {X: -1, Y: -2}},
	{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: -2}, {X: 1, Y: -2}},
	{{X: 0, Y: 0}, {X: -1, Y: 0}, {X: -1, Y: -1}, {X: 0, Y: 2}, {X: -1, Y: 2}},
	{{X: 0, Y: 0}, {X: -1, Y: 0}, {X: -1, Y: -1}, {X: 0, Y: 2}, {X: -1, Y: 2}},
	{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: -2}, {X: 1, Y: -2}},
}

// One row per starting rotation: 0>2, 1>3, 2>0, 3>1.
var kicks180 = planner.KickTable{
	{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: -1, Y: 1}, {X: 1, Y: 0}, {X: -1, Y: 0}},
	{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 2}, {X: 1, Y: 1}, {X: 0, Y: 2}, {X: 0, Y: 1}},
	{{X: 0, Y: 0}, {X: 0, Y: -1}, {X: -1, Y: -1}, {X: 1, Y: -1}, {X: -1, Y: 0}, {X: 1, Y: 0}},
	{{X: 0, Y: 0}, {X: -1, Y: 0}, {X: -1, Y: 2}, {X: -1, Y: 1}, {X: 0, Y: 2}, {X: 0, Y: 1}},
}
