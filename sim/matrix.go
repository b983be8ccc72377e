package sim

import (
	"encoding/binary"
	"hash/fnv"
	"math/bits"
	"strings"

	"github.com/plus3/shiftri/planner"
)

// MaxWidth is the widest matrix a row bitmask can hold.
const MaxWidth = 64

// Matrix is the playfield occupancy. Row y is a bitmask whose bit x is set
// when cell (x, y) is filled; row 0 is the floor row.
type Matrix struct {
	width  int
	height int
	rows   []uint64
}

// NewMatrix returns an empty width by height matrix.
func NewMatrix(width, height int) *Matrix {
	if width <= 0 || width > MaxWidth || height <= 0 {
		panic("sim: invalid matrix size")
	}
	return &Matrix{
		width:  width,
		height: height,
		rows:   make([]uint64, height),
	}
}

// Width returns the number of columns.
func (m *Matrix) Width() int { return m.width }

// Height returns the number of rows.
func (m *Matrix) Height() int { return m.height }

// Bounds implements planner.Board.
func (m *Matrix) Bounds() planner.Rect {
	return planner.Rect{Width: m.width, Height: m.height}
}

// IsOccupied implements planner.Board. Cells outside the matrix read as
// empty; bounds are checked separately.
func (m *Matrix) IsOccupied(c planner.Cell) bool {
	if c.Y < 0 || c.Y >= m.height || c.X < 0 || c.X >= m.width {
		return false
	}
	return m.rows[c.Y]>>uint(c.X)&1 != 0
}

// Fill marks cells as occupied. Cells outside the matrix are ignored.
func (m *Matrix) Fill(cells ...planner.Cell) {
	for _, c := range cells {
		if c.Y < 0 || c.Y >= m.height || c.X < 0 || c.X >= m.width {
			continue
		}
		m.rows[c.Y] |= 1 << uint(c.X)
	}
}

// FillRow fills row y except for the listed holes.
func (m *Matrix) FillRow(y int, holes ...int) {
	row := uint64(1)<<uint(m.width) - 1
	if m.width == MaxWidth {
		row = ^uint64(0)
	}
	for _, x := range holes {
		row &^= 1 << uint(x)
	}
	m.rows[y] = row
}

// Merge fills the cells of a piece at state.
func (m *Matrix) Merge(cells []planner.Cell, state planner.State) {
	origin := planner.Cell{X: state.X, Y: state.Y}
	for _, c := range cells {
		m.Fill(c.Add(origin))
	}
}

// Clear empties the matrix.
func (m *Matrix) Clear() {
	clear(m.rows)
}

// StackHeight returns the index above the highest non-empty row.
func (m *Matrix) StackHeight() int {
	for y := m.height - 1; y >= 0; y-- {
		if m.rows[y] != 0 {
			return y + 1
		}
	}
	return 0
}

// Filled returns the number of occupied cells.
func (m *Matrix) Filled() int {
	n := 0
	for _, row := range m.rows {
		n += bits.OnesCount64(row)
	}
	return n
}

// Fingerprint implements planner.Fingerprinter with FNV-1a over the rows.
func (m *Matrix) Fingerprint() uint64 {
	h := fnv.New64a()
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(m.width))
	h.Write(buf[:])
	for _, row := range m.rows {
		binary.LittleEndian.PutUint64(buf[:], row)
		h.Write(buf[:])
	}
	return h.Sum64()
}

// Render draws the matrix top row first, with an optional piece overlay.
func (m *Matrix) Render(piece []planner.Cell) string {
	overlay := make(map[planner.Cell]bool, len(piece))
	for _, c := range piece {
		overlay[c] = true
	}

	var sb strings.Builder
	for y := m.height - 1; y >= 0; y-- {
		sb.WriteByte('|')
		for x := 0; x < m.width; x++ {
			c := planner.Cell{X: x, Y: y}
			switch {
			case overlay[c]:
				sb.WriteString("[]")
			case m.IsOccupied(c):
				sb.WriteString("##")
			default:
				sb.WriteString("  ")
			}
		}
		sb.WriteString("|\n")
	}
	sb.WriteByte('+')
	sb.WriteString(strings.Repeat("--", m.width))
	sb.WriteString("+\n")
	return sb.String()
}

func (m *Matrix) String() string {
	return m.Render(nil)
}
