// Package sim is a headless Tetris playfield that drives a planner
// actuator: it owns the board, the live piece and the tick loop that the
// planner treats as external collaborators.
package sim

import (
	"github.com/plus3/shiftri/planner"
	"github.com/plus3/shiftri/tetromino"
)

// MatchStats counts what happened during a match.
type MatchStats struct {
	Pieces  int
	Replans int
	// ForcedLocks counts pieces locked by the lock delay rather than by
	// the bot reaching the end of its queue.
	ForcedLocks int
	Actions     map[planner.Action]int
	Spawned     map[tetromino.Kind]int
	TopOut      bool
	MaxStack    int
}

// Match is the state shared by the systems of one game.
type Match struct {
	Config Config
	Matrix *Matrix
	Piece  *ActivePiece
	Bag    *Bag
	Bot    *planner.Actuator
	Cache  *planner.SearchCache
	Stats  MatchStats

	gameOver bool
	// stall counts ticks since the live piece last reached a new lowest
	// row; lowestRow is that row.
	stall     int
	lowestRow int
}

// NewMatch builds an empty match from cfg.
func NewMatch(cfg Config) (*Match, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	selector, err := NewSelector(cfg.Policy, cfg.Seed)
	if err != nil {
		return nil, err
	}

	matrix := NewMatrix(cfg.Width, cfg.Height)
	piece := NewActivePiece(matrix)
	piece.SetExtremeGravity(cfg.ExtremeGravity)

	opts := []planner.Option{
		planner.WithSelector(selector),
		planner.WithSearchOptions(planner.Options{PruneInverse: cfg.PruneInverse}),
	}

	m := &Match{
		Config: cfg,
		Matrix: matrix,
		Piece:  piece,
		Bag:    NewBag(cfg.Seed),
		Stats: MatchStats{
			Actions: make(map[planner.Action]int),
			Spawned: make(map[tetromino.Kind]int),
		},
	}
	if cfg.CacheSize > 0 {
		m.Cache = planner.NewSearchCache(cfg.CacheSize)
		opts = append(opts, planner.WithSearchCache(m.Cache))
	}
	m.Bot = planner.NewActuator(matrix, piece, opts...)
	return m, nil
}

// GameOver reports whether a spawn was blocked.
func (m *Match) GameOver() bool {
	return m.gameOver
}

// Stalled returns the ticks the live piece has spent without reaching a
// new lowest row.
func (m *Match) Stalled() int {
	return m.stall
}

// Done reports whether the match should stop ticking.
func (m *Match) Done() bool {
	if m.gameOver {
		return true
	}
	return m.Config.PieceLimit > 0 && m.Stats.Pieces >= m.Config.PieceLimit
}

// NewDefaultScheduler returns a scheduler with the standard systems in
// tick order.
func NewDefaultScheduler(m *Match) *Scheduler {
	s := NewScheduler(m)
	s.Register(&SpawnSystem{})
	s.Register(&BotSystem{})
	s.Register(&GravitySystem{Every: m.Config.GravityEvery})
	s.Register(&LockSystem{})
	return s
}
