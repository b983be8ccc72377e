package sim

// SpawnSystem deals the next piece when none is falling. A blocked spawn
// ends the match.
type SpawnSystem struct{}

func (s *SpawnSystem) Execute(frame *Frame) {
	m := frame.Match
	if m.gameOver || m.Piece.Active() || m.Done() {
		return
	}

	kind := m.Bag.Next()
	if !m.Piece.Spawn(kind) {
		m.gameOver = true
		m.Stats.TopOut = true
		return
	}
	m.Stats.Spawned[kind]++
	m.stall = 0
	m.lowestRow = m.Piece.BottomRow()
}

// BotSystem advances the actuator by one action per tick.
type BotSystem struct{}

func (s *BotSystem) Execute(frame *Frame) {
	m := frame.Match
	if !m.Piece.Active() || m.Piece.Locked() {
		return
	}

	action := m.Bot.Advance(m.Config.ExtremeGravity)
	m.Stats.Actions[action]++
}

// GravitySystem drops the live piece one row every Every ticks. The fall
// moves the piece away from where the plan expects it, so the bot replans
// from the new state. It also runs the lock delay: a piece that goes
// LockDelay ticks without reaching a new lowest row is due to lock, which
// stops a replanned path that climbs by wall kicks from racing gravity
// forever.
type GravitySystem struct {
	Every int

	counter int
}

func (s *GravitySystem) Execute(frame *Frame) {
	m := frame.Match
	if s.Every <= 0 || m.Config.ExtremeGravity {
		return
	}
	if !m.Piece.Active() || m.Piece.Locked() {
		s.counter = 0
		return
	}

	s.counter++
	if s.counter >= s.Every {
		s.counter = 0
		if m.Piece.Fall() {
			m.Bot.Replan(m.Piece.State(), m.Config.ExtremeGravity)
			m.Stats.Replans++
		}
	}

	if row := m.Piece.BottomRow(); row < m.lowestRow {
		m.lowestRow = row
		m.stall = 0
	} else {
		m.stall++
	}
}

// LockSystem locks a piece whose lock delay ran out, accounts for a
// locked piece and frees the slot for the next spawn.
type LockSystem struct{}

func (s *LockSystem) Execute(frame *Frame) {
	m := frame.Match
	if !m.Piece.Active() {
		return
	}
	if !m.Piece.Locked() {
		if m.Config.LockDelay <= 0 || m.stall < m.Config.LockDelay {
			return
		}
		m.Piece.Lock()
		m.Bot.Reset()
		m.Stats.ForcedLocks++
	}

	m.Stats.Pieces++
	if h := m.Matrix.StackHeight(); h > m.Stats.MaxStack {
		m.Stats.MaxStack = h
	}
	m.Piece.Deactivate()
}
