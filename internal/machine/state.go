package machine

import (
	"time"

	"github.com/crumblingstatue/crusty-chip/internal/display"
	"github.com/crumblingstatue/crusty-chip/internal/keypad"
	"github.com/crumblingstatue/crusty-chip/internal/memory"
	"github.com/crumblingstatue/crusty-chip/internal/registers"
	"github.com/crumblingstatue/crusty-chip/internal/timer"
)

// State is the complete mutable state of a machine. All members are value
// types, assigning a State produces an independent copy.
type State struct {
	Memory    memory.Memory
	Registers registers.Registers
	Timers    timer.Timers
	Display   display.Display
	Keypad    keypad.Keypad
	Cycles    uint64 // number of executed instructions
}

// newState returns a power-on state without a program loaded.
func newState() State {
	return State{
		Memory:    memory.New(),
		Registers: registers.New(),
	}
}

// Snapshot is an immutable capture of a machine state.
type Snapshot struct {
	state State
	pc    uint16
	taken time.Time
}

// NewSnapshot wraps a state into a snapshot. It is used when snapshots are
// rebuilt from persisted data.
func NewSnapshot(state State, taken time.Time) Snapshot {
	return Snapshot{
		state: state,
		pc:    state.Registers.PC,
		taken: taken,
	}
}

// State returns a copy of the captured state.
func (s Snapshot) State() State {
	return s.state
}

// PC returns the program counter at capture time.
func (s Snapshot) PC() uint16 {
	return s.pc
}

// Taken returns the time the snapshot was captured.
func (s Snapshot) Taken() time.Time {
	return s.taken
}

// Cycles returns the cycle counter at capture time.
func (s Snapshot) Cycles() uint64 {
	return s.state.Cycles
}
