// Package timer implements the CHIP-8 delay and sound timers.
package timer

import "time"

// Rate is the fixed frequency both timers count down at.
const Rate = 60

// Interval is the time between two timer ticks.
const Interval = time.Second / Rate

// Timers holds the delay and sound timer counters.
type Timers struct {
	Delay uint8
	Sound uint8
}

// Tick decrements every nonzero timer by one.
func (t *Timers) Tick() {
	if t.Delay > 0 {
		t.Delay--
	}
	if t.Sound > 0 {
		t.Sound--
	}
}

// SoundActive returns whether the tone should be audible.
func (t *Timers) SoundActive() bool {
	return t.Sound > 0
}

// Reset zeroes both timers.
func (t *Timers) Reset() {
	t.Delay = 0
	t.Sound = 0
}
