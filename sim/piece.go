package sim

import (
	"github.com/plus3/shiftri/planner"
	"github.com/plus3/shiftri/tetromino"
)

// ActivePiece is the live falling piece. It implements planner.Piece and
// applies every action against its matrix with the same kick rules the
// planner uses, so a replayed queue lands where it was planned.
type ActivePiece struct {
	matrix *Matrix
	kind   tetromino.Kind
	shape  planner.Shape
	cells  []planner.Cell
	state  planner.State

	extremeGravity bool
	active         bool
	locked         bool
}

// NewActivePiece returns an inactive piece bound to matrix.
func NewActivePiece(matrix *Matrix) *ActivePiece {
	return &ActivePiece{matrix: matrix}
}

// SpawnState returns the origin a new piece takes: horizontally centred
// with its top row on the top row of the matrix.
func SpawnState(matrix *Matrix) planner.State {
	return planner.State{X: (matrix.Width() - 1) / 2, Y: matrix.Height() - 2}
}

// Spawn resets the piece to kind at the spawn origin. It reports false,
// leaving the piece inactive, when the spawn cells are blocked.
func (p *ActivePiece) Spawn(kind tetromino.Kind) bool {
	return p.SpawnAt(kind, SpawnState(p.matrix))
}

// SpawnAt resets the piece to kind at an explicit rotation 0 state.
func (p *ActivePiece) SpawnAt(kind tetromino.Kind, state planner.State) bool {
	p.kind = kind
	p.shape = tetromino.Shape(kind)
	p.cells = tetromino.Cells(kind)
	p.state = planner.State{X: state.X, Y: state.Y}
	p.locked = false
	p.active = planner.IsValidState(p.matrix, p.cells, p.state)
	if p.active {
		p.settle()
	}
	return p.active
}

// Kind returns the current tetromino.
func (p *ActivePiece) Kind() tetromino.Kind { return p.kind }

// Active reports whether the piece is falling.
func (p *ActivePiece) Active() bool { return p.active }

// Locked reports whether the piece locked since its last spawn.
func (p *ActivePiece) Locked() bool { return p.locked }

// Deactivate clears the active flag after a lock has been accounted for.
func (p *ActivePiece) Deactivate() {
	p.active = false
}

// SetExtremeGravity toggles the environment where every action is followed
// by an instant fall to rest.
func (p *ActivePiece) SetExtremeGravity(on bool) {
	p.extremeGravity = on
}

// Cells returns a copy of the cells at the current rotation.
func (p *ActivePiece) Cells() []planner.Cell {
	out := make([]planner.Cell, len(p.cells))
	copy(out, p.cells)
	return out
}

// Absolute returns the board cells the piece covers.
func (p *ActivePiece) Absolute() []planner.Cell {
	origin := planner.Cell{X: p.state.X, Y: p.state.Y}
	out := make([]planner.Cell, len(p.cells))
	for i, c := range p.cells {
		out[i] = c.Add(origin)
	}
	return out
}

func (p *ActivePiece) State() planner.State { return p.state }

func (p *ActivePiece) Shape() planner.Shape { return p.shape }

func (p *ActivePiece) SlideLeft() {
	p.shift(-1, 0)
	p.settle()
}

func (p *ActivePiece) SlideRight() {
	p.shift(1, 0)
	p.settle()
}

func (p *ActivePiece) SoftDropStep() {
	p.shift(0, -1)
	p.settle()
}

// Fall moves the piece down one row under normal gravity and reports
// whether it moved.
func (p *ActivePiece) Fall() bool {
	return p.shift(0, -1)
}

func (p *ActivePiece) InstantDrop() {
	if !p.active || p.locked {
		return
	}
	p.state = planner.DropToRest(p.matrix, p.cells, p.state)
}

func (p *ActivePiece) Rotate(direction int) {
	if !p.active || p.locked {
		return
	}
	state, cells, ok := planner.TryRotate(p.matrix, p.shape, p.cells, p.state, direction)
	if !ok {
		return
	}
	p.state, p.cells = state, cells
	p.settle()
}

// Lock hard drops the piece and merges it into the matrix.
func (p *ActivePiece) Lock() {
	if !p.active || p.locked {
		return
	}
	p.InstantDrop()
	p.matrix.Merge(p.cells, p.state)
	p.locked = true
}

// BottomRow returns the lowest board row the piece covers.
func (p *ActivePiece) BottomRow() int {
	row := p.state.Y
	for i, c := range p.cells {
		if y := c.Y + p.state.Y; i == 0 || y < row {
			row = y
		}
	}
	return row
}

// Resting reports whether the piece cannot fall further.
func (p *ActivePiece) Resting() bool {
	return !planner.CanDescend(p.matrix, p.cells, p.state)
}

func (p *ActivePiece) shift(dx, dy int) bool {
	if !p.active || p.locked {
		return false
	}
	next := p.state.Translate(dx, dy)
	if !planner.IsValidState(p.matrix, p.cells, next) {
		return false
	}
	p.state = next
	return true
}

func (p *ActivePiece) settle() {
	if p.extremeGravity {
		p.InstantDrop()
	}
}
