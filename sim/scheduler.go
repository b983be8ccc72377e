package sim

import (
	"context"
	"reflect"
	"time"
)

// System is one stage of a simulation tick. Systems hold their own state
// between ticks and act on the shared match through the frame.
type System interface {
	Execute(frame *Frame)
}

// Frame is handed to every system during one tick.
type Frame struct {
	Tick      uint64
	DeltaTime float64
	Match     *Match
}

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	Ticks           uint64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

// Scheduler runs the registered systems in order, once per tick. It is the
// external clock that paces the bot: one Once call is one tick.
type Scheduler struct {
	match       *Match
	systems     []System
	systemStats []*systemStatsInternal
	tick        uint64
}

// NewScheduler creates a scheduler for the given match.
func NewScheduler(match *Match) *Scheduler {
	return &Scheduler{
		match:   match,
		systems: make([]System, 0),
	}
}

// Register appends a system to the tick order.
func (s *Scheduler) Register(system System) {
	s.systems = append(s.systems, system)

	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}

	s.systemStats = append(s.systemStats, &systemStatsInternal{
		name:        systemType.Name(),
		minDuration: time.Duration(1<<63 - 1),
	})
}

// Once executes all registered systems once with the given delta time.
func (s *Scheduler) Once(dt float64) {
	s.tick++
	frame := &Frame{
		Tick:      s.tick,
		DeltaTime: dt,
		Match:     s.match,
	}

	for i, system := range s.systems {
		start := time.Now()
		system.Execute(frame)
		duration := time.Since(start)

		stats := s.systemStats[i]
		stats.executionCount++
		stats.lastDuration = duration
		stats.totalDuration += duration

		if duration < stats.minDuration {
			stats.minDuration = duration
		}
		if duration > stats.maxDuration {
			stats.maxDuration = duration
		}
	}
}

// Run ticks at the given interval until the context is cancelled or the
// match is over.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for !s.match.Done() {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			s.Once(dt)
		}
	}
}

// RunFor ticks as fast as possible until the match is over or maxTicks
// ticks have run. A zero maxTicks means no limit. It returns the number of
// ticks executed.
func (s *Scheduler) RunFor(maxTicks uint64) uint64 {
	var n uint64
	for !s.match.Done() && (maxTicks == 0 || n < maxTicks) {
		s.Once(0)
		n++
	}
	return n
}

// GetStats returns statistics about system execution.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Ticks:       s.tick,
		Systems:     make([]SystemStats, len(s.systemStats)),
	}

	var totalExecs int64
	for i, internal := range s.systemStats {
		avgDuration := time.Duration(0)
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
		}

		stats.Systems[i] = SystemStats{
			Name:           internal.name,
			ExecutionCount: internal.executionCount,
			MinDuration:    internal.minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		totalExecs += internal.executionCount
	}

	stats.TotalExecutions = totalExecs
	return stats
}
