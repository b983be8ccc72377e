package sim

import (
	"math/rand/v2"

	"github.com/plus3/shiftri/tetromino"
)

// Bag deals tetrominoes from shuffled sets of all seven kinds.
type Bag struct {
	rng  *rand.Rand
	next []tetromino.Kind
}

// NewBag returns a bag whose order is fully determined by seed.
func NewBag(seed uint64) *Bag {
	return &Bag{rng: rand.New(rand.NewPCG(seed, seed+1))}
}

// Next deals the next kind, refilling the bag when it runs out.
func (b *Bag) Next() tetromino.Kind {
	if len(b.next) == 0 {
		b.next = append(b.next, tetromino.Kinds[:]...)
		b.rng.Shuffle(len(b.next), func(i, j int) {
			b.next[i], b.next[j] = b.next[j], b.next[i]
		})
	}
	kind := b.next[0]
	b.next = b.next[1:]
	return kind
}

// Preview returns the kinds left in the current set without dealing them.
func (b *Bag) Preview() []tetromino.Kind {
	out := make([]tetromino.Kind, len(b.next))
	copy(out, b.next)
	return out
}
