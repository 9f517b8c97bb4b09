package internal

import "sync/atomic"

// Tick identifies one apply cycle. Zero means "never updated".
type Tick uint64

type Scheduler struct {
	// incremented each time an apply cycle starts
	// compared against a node's last update for staleness detection
	clock atomic.Uint64

	// source of modify importance for animations, strictly increasing
	importance atomic.Uint64
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Advance starts a new cycle and returns its tick.
func (s *Scheduler) Advance() Tick {
	return Tick(s.clock.Add(1))
}

func (s *Scheduler) Time() Tick {
	return Tick(s.clock.Load())
}

// NextImportance returns a modify importance greater than any returned before.
func (s *Scheduler) NextImportance() uint64 {
	return s.importance.Add(1)
}
