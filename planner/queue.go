package planner

import (
	"fmt"
	"slices"
	"strings"
)

// Move is one atomic input applied to a piece.
type Move uint8

// Moves in search enumeration order.
const (
	ShiftLeft Move = iota
	ShiftRight
	SoftDropOne
	RotateCW
	RotateCCW
	Rotate180
)

// Moves is the fixed order in which the search expands a state.
var Moves = [...]Move{ShiftLeft, ShiftRight, SoftDropOne, RotateCW, RotateCCW, Rotate180}

// IsRotation reports whether the move needs kick resolution.
func (m Move) IsRotation() bool {
	return m == RotateCW || m == RotateCCW || m == Rotate180
}

// Delta returns the translation of a shift or drop move.
func (m Move) Delta() (dx, dy int) {
	switch m {
	case ShiftLeft:
		return -1, 0
	case ShiftRight:
		return 1, 0
	case SoftDropOne:
		return 0, -1
	}
	return 0, 0
}

// Direction returns the rotation direction of a rotation move, 0 otherwise.
func (m Move) Direction() int {
	switch m {
	case RotateCW:
		return 1
	case RotateCCW:
		return -1
	case Rotate180:
		return 2
	}
	return 0
}

// Inverse returns the move that undoes m, if one exists among the moves.
// A half turn has no inverse in the enumeration (its negation is -2) and
// nothing undoes a drop.
func (m Move) Inverse() (Move, bool) {
	switch m {
	case ShiftLeft:
		return ShiftRight, true
	case ShiftRight:
		return ShiftLeft, true
	case RotateCW:
		return RotateCCW, true
	case RotateCCW:
		return RotateCW, true
	}
	return 0, false
}

// Entry returns the queue entry that records m.
func (m Move) Entry() Entry {
	return Entry(m)
}

func (m Move) String() string {
	switch m {
	case ShiftLeft:
		return "ShiftLeft"
	case ShiftRight:
		return "ShiftRight"
	case SoftDropOne:
		return "SoftDropOne"
	case RotateCW:
		return "RotateCW"
	case RotateCCW:
		return "RotateCCW"
	case Rotate180:
		return "Rotate180"
	}
	return fmt.Sprintf("Move(%d)", uint8(m))
}

// Entry is a queued Move or one of the replay markers.
type Entry uint8

const (
	// UseInstantDrop follows a run of soft drops that ends at rest; replay
	// may replace the rest of the run with a single instant drop.
	UseInstantDrop Entry = Entry(Rotate180) + 1 + iota
	// EndOfQueue tells replay to lock the piece where it is.
	EndOfQueue
)

// Move returns the move an entry records; ok is false for markers.
func (e Entry) Move() (m Move, ok bool) {
	if e <= Entry(Rotate180) {
		return Move(e), true
	}
	return 0, false
}

// Symbol returns the one-character notation used by Queue.String.
func (e Entry) Symbol() string {
	switch e {
	case Entry(ShiftLeft):
		return "L"
	case Entry(ShiftRight):
		return "R"
	case Entry(SoftDropOne):
		return "D"
	case Entry(RotateCW):
		return "C"
	case Entry(RotateCCW):
		return "A"
	case Entry(Rotate180):
		return "F"
	case UseInstantDrop:
		return "!"
	case EndOfQueue:
		return "."
	}
	return "?"
}

func (e Entry) String() string {
	if m, ok := e.Move(); ok {
		return m.String()
	}
	switch e {
	case UseInstantDrop:
		return "UseInstantDrop"
	case EndOfQueue:
		return "EndOfQueue"
	}
	return fmt.Sprintf("Entry(%d)", uint8(e))
}

// Queue is an ordered sequence of entries. It is append-only while a path
// is built and consumed front to back during replay. Append and Terminated
// never alias the receiver's backing array.
type Queue []Entry

// Append returns a new queue holding q followed by entries.
func (q Queue) Append(entries ...Entry) Queue {
	return slices.Concat(q, entries)
}

// Terminated returns a copy of q closed by EndOfQueue.
func (q Queue) Terminated() Queue {
	return q.Append(EndOfQueue)
}

// Clone returns an independent copy of q.
func (q Queue) Clone() Queue {
	return slices.Clone(q)
}

// Len returns the number of entries, markers included.
func (q Queue) Len() int {
	return len(q)
}

// LastMove returns the most recently recorded move, skipping markers.
func (q Queue) LastMove() (Move, bool) {
	for i := len(q) - 1; i >= 0; i-- {
		if m, ok := q[i].Move(); ok {
			return m, true
		}
	}
	return 0, false
}

// trailingDrops counts the SoftDropOne entries at the end of q.
func (q Queue) trailingDrops() int {
	n := 0
	for i := len(q) - 1; i >= 0 && q[i] == Entry(SoftDropOne); i-- {
		n++
	}
	return n
}

// Peek returns the front entry without consuming it.
func (q Queue) Peek() (Entry, bool) {
	if len(q) == 0 {
		return 0, false
	}
	return q[0], true
}

// Dequeue removes and returns the front entry. Dequeuing an empty queue
// means the queue was not closed by EndOfQueue and panics.
func (q *Queue) Dequeue() Entry {
	if len(*q) == 0 {
		panic("planner: dequeue from empty move queue (missing EndOfQueue)")
	}
	e := (*q)[0]
	*q = (*q)[1:]
	return e
}

// Terminates reports whether q ends with exactly one EndOfQueue and
// contains no other.
func (q Queue) Terminates() bool {
	if len(q) == 0 || q[len(q)-1] != EndOfQueue {
		return false
	}
	return !slices.Contains(q[:len(q)-1], EndOfQueue)
}

func (q Queue) String() string {
	parts := make([]string, len(q))
	for i, e := range q {
		parts[i] = e.Symbol()
	}
	return strings.Join(parts, " ")
}
