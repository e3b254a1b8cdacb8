// Package scheduler drives a controller from wall clock time: timers tick
// at a fixed 60 Hz and instructions run at a configurable rate, both
// independent of the frame rate of the caller.
package scheduler

import (
	"time"

	"github.com/crumblingstatue/crusty-chip/internal/timer"
)

const (
	// DefaultSpeed is the default number of instructions per second.
	DefaultSpeed = 700
	// MaxElapsed limits the time that is caught up in a single Advance
	// call, for example after the window was dragged or the host was suspended.
	MaxElapsed = 250 * time.Millisecond
)

// Target is driven by the scheduler.
type Target interface {
	Paused() bool
	RunCycle() error
	TickTimers()
}

// Scheduler converts elapsed time into timer ticks and instruction cycles.
type Scheduler struct {
	target Target
	period time.Duration // time per instruction

	timerAcc time.Duration
	cycleAcc time.Duration
}

// New returns a scheduler running speed instructions per second. A speed
// of 0 or less selects DefaultSpeed.
func New(target Target, speed int) *Scheduler {
	if speed <= 0 {
		speed = DefaultSpeed
	}
	return &Scheduler{
		target: target,
		period: time.Second / time.Duration(speed),
	}
}

// Advance runs all timer ticks and instructions that are due after elapsed
// time has passed. A failing instruction stops execution for the rest of
// the call and its error is returned, timers are still ticked.
func (s *Scheduler) Advance(elapsed time.Duration) error {
	if elapsed > MaxElapsed {
		elapsed = MaxElapsed
	}
	if elapsed < 0 {
		elapsed = 0
	}

	s.timerAcc += elapsed
	for s.timerAcc >= timer.Interval {
		s.timerAcc -= timer.Interval
		s.target.TickTimers()
	}

	if s.target.Paused() {
		s.cycleAcc = 0
		return nil
	}

	s.cycleAcc += elapsed
	for s.cycleAcc >= s.period {
		s.cycleAcc -= s.period
		if err := s.target.RunCycle(); err != nil {
			s.cycleAcc = 0
			return err
		}
		if s.target.Paused() {
			s.cycleAcc = 0
			break
		}
	}
	return nil
}

// Period returns the time one instruction takes at the configured speed.
func (s *Scheduler) Period() time.Duration {
	return s.period
}
