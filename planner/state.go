package planner

import "fmt"

// Cell is an integer offset from a piece's local origin, or an absolute
// board coordinate once translated by a State. Y grows upward.
type Cell struct {
	X, Y int
}

// Add returns the cell translated by o.
func (c Cell) Add(o Cell) Cell {
	return Cell{X: c.X + o.X, Y: c.Y + o.Y}
}

// State is the placement of a piece: its origin on the board and its
// rotation index in [0,4).
type State struct {
	X, Y     int
	Rotation int
}

// Key packs the state into a single integer suitable for intmap keys.
// X keeps its full 32 bits, Y the low 30 bits and Rotation 2 bits.
func (s State) Key() uint64 {
	return uint64(uint32(int32(s.X)))<<32 |
		uint64(uint32(int32(s.Y))&0x3fffffff)<<2 |
		uint64(s.Rotation&3)
}

// Translate returns the state moved by (dx, dy) with the same rotation.
func (s State) Translate(dx, dy int) State {
	s.X += dx
	s.Y += dy
	return s
}

// Below returns the state one row lower.
func (s State) Below() State {
	return s.Translate(0, -1)
}

func (s State) String() string {
	return fmt.Sprintf("(%d,%d r%d)", s.X, s.Y, s.Rotation)
}

// Rect is an axis-aligned rectangle of cells. Contains is half-open on the
// upper edges.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Contains reports whether c lies inside the rectangle.
func (r Rect) Contains(c Cell) bool {
	return c.X >= r.X && c.X < r.X+r.Width && c.Y >= r.Y && c.Y < r.Y+r.Height
}

// Board is the read-only occupancy oracle the planner validates against.
type Board interface {
	Bounds() Rect
	IsOccupied(c Cell) bool
}

// Wrap folds input into [min, max).
func Wrap(input, min, max int) int {
	span := max - min
	if span <= 0 {
		panic(fmt.Sprintf("planner: empty wrap range [%d,%d)", min, max))
	}
	v := (input - min) % span
	if v < 0 {
		v += span
	}
	return min + v
}
