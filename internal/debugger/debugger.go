// Package debugger implements the pause, single step, restart and save
// state controls on top of a machine.
package debugger

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/crumblingstatue/crusty-chip/internal/machine"
	"github.com/crumblingstatue/crusty-chip/internal/savestate"
	"github.com/retroenv/retrogolib/log"
)

// Slots is the number of save state slots, numbered 1 to Slots.
const Slots = 10

var (
	// ErrEmptySlot is returned when loading a slot that was never saved.
	ErrEmptySlot = errors.New("save state slot is empty")
	// ErrInvalidSlot is returned for slot numbers outside of 1 to Slots.
	ErrInvalidSlot = errors.New("invalid save state slot")
	// ErrNotPaused is returned by SingleStep while the controller is running.
	ErrNotPaused = errors.New("single step requires paused state")
)

// State is the execution state of the controller.
type State int

const (
	Running State = iota
	Paused
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Paused:
		return "paused"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// FaultPolicy selects how invalid opcodes are handled while running.
type FaultPolicy int

const (
	// PauseOnFault pauses the controller on the faulting instruction.
	PauseOnFault FaultPolicy = iota
	// SkipOnFault logs the fault and continues with the next instruction.
	SkipOnFault
)

// Store persists save state slots outside of the process.
type Store interface {
	Save(slot int, snapshot machine.Snapshot) error
	Load(slot int) (machine.Snapshot, error)
}

// Option configures a Controller.
type Option func(*Controller)

// WithFaultPolicy sets the invalid opcode policy.
func WithFaultPolicy(policy FaultPolicy) Option {
	return func(c *Controller) {
		c.policy = policy
	}
}

// WithStore persists saved slots and loads slots that are not in memory.
func WithStore(store Store) Option {
	return func(c *Controller) {
		c.store = store
	}
}

// WithDumpWriter sets the writer that receives the state dumps. It
// defaults to standard output.
func WithDumpWriter(w io.Writer) Option {
	return func(c *Controller) {
		c.dump = w
	}
}

// WithPaused starts the controller in paused state.
func WithPaused() Option {
	return func(c *Controller) {
		c.state = Paused
	}
}

// Controller drives a machine and implements the debug controls.
type Controller struct {
	logger  *log.Logger
	machine *machine.Machine
	state   State
	policy  FaultPolicy
	store   Store
	dump    io.Writer
	slots   [Slots]*machine.Snapshot
}

// New returns a controller for the given machine.
func New(logger *log.Logger, m *machine.Machine, opts ...Option) *Controller {
	c := &Controller{
		logger:  logger,
		machine: m,
		state:   Running,
		policy:  PauseOnFault,
		dump:    os.Stdout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Machine returns the controlled machine.
func (c *Controller) Machine() *machine.Machine {
	return c.machine
}

// State returns the current execution state.
func (c *Controller) State() State {
	return c.state
}

// Paused returns whether the controller is paused.
func (c *Controller) Paused() bool {
	return c.state == Paused
}

// Pause stops automatic execution and timers and writes a state dump.
func (c *Controller) Pause() {
	if c.state == Paused {
		return
	}
	c.state = Paused
	c.logger.Info("Paused", log.Hex("pc", c.machine.Registers().PC))
	c.writeDump()
}

// Resume continues automatic execution.
func (c *Controller) Resume() {
	if c.state == Running {
		return
	}
	c.state = Running
	c.logger.Info("Resumed")
}

// TogglePause switches between running and paused state.
func (c *Controller) TogglePause() {
	if c.state == Paused {
		c.Resume()
	} else {
		c.Pause()
	}
}

// SingleStep executes one instruction while paused and writes a state dump
// afterwards. Faults are returned after the dump.
func (c *Controller) SingleStep() error {
	if c.state != Paused {
		return ErrNotPaused
	}

	err := c.machine.Step()
	c.writeDump()
	if err != nil {
		c.logger.Error("Single step failed", log.Err(err))
		return err
	}
	return nil
}

// RunCycle executes one instruction if the controller is running. Stack
// faults pause the controller, invalid opcodes follow the fault policy.
func (c *Controller) RunCycle() error {
	if c.state == Paused {
		return nil
	}

	err := c.machine.Step()
	if err == nil {
		return nil
	}

	if errors.Is(err, machine.ErrInvalidOpcode) && c.policy == SkipOnFault {
		c.logger.Warn("Skipping invalid opcode", log.Err(err))
		c.machine.SkipInstruction()
		return nil
	}

	c.logger.Error("Execution fault", log.Err(err))
	c.Pause()
	return err
}

// TickTimers runs one 60 Hz timer tick unless the controller is paused.
func (c *Controller) TickTimers() {
	if c.state == Paused {
		return
	}
	c.machine.Tick()
}

// Restart reloads the program and resets the machine. The pause state is
// not changed.
func (c *Controller) Restart() {
	c.machine.Reset()
	c.logger.Info("Restarted")
	if c.state == Paused {
		c.writeDump()
	}
}

// SaveState captures the machine state into a slot, replacing any previous
// content.
func (c *Controller) SaveState(slot int) error {
	if err := checkSlot(slot); err != nil {
		return err
	}

	snapshot := c.machine.Capture()
	c.slots[slot-1] = &snapshot

	if c.store != nil {
		if err := c.store.Save(slot, snapshot); err != nil {
			return fmt.Errorf("persisting slot %d: %w", slot, err)
		}
	}

	c.logger.Info("State saved",
		log.Int("slot", slot),
		log.Hex("pc", snapshot.PC()))
	return nil
}

// LoadState replaces the machine state with the content of a slot. The
// pause state is not changed.
func (c *Controller) LoadState(slot int) error {
	if err := checkSlot(slot); err != nil {
		return err
	}

	snapshot := c.slots[slot-1]
	if snapshot == nil {
		loaded, err := c.loadFromStore(slot)
		if err != nil {
			return err
		}
		snapshot = &loaded
		c.slots[slot-1] = snapshot
	}

	c.machine.Restore(*snapshot)
	c.logger.Info("State loaded",
		log.Int("slot", slot),
		log.Hex("pc", snapshot.PC()))
	if c.state == Paused {
		c.writeDump()
	}
	return nil
}

// SlotUsed returns whether a slot holds a snapshot in memory.
func (c *Controller) SlotUsed(slot int) bool {
	if checkSlot(slot) != nil {
		return false
	}
	return c.slots[slot-1] != nil
}

func (c *Controller) loadFromStore(slot int) (machine.Snapshot, error) {
	if c.store == nil {
		return machine.Snapshot{}, fmt.Errorf("%w: %d", ErrEmptySlot, slot)
	}

	snapshot, err := c.store.Load(slot)
	if err != nil {
		if errors.Is(err, savestate.ErrNotFound) {
			return machine.Snapshot{}, fmt.Errorf("%w: %d", ErrEmptySlot, slot)
		}
		return machine.Snapshot{}, fmt.Errorf("loading slot %d: %w", slot, err)
	}

	regs := snapshot.State().Registers
	if err := regs.Validate(); err != nil {
		return machine.Snapshot{}, fmt.Errorf("loading slot %d: %w", slot, err)
	}
	return snapshot, nil
}

func (c *Controller) writeDump() {
	if err := c.Dump(c.dump); err != nil {
		c.logger.Error("Writing state dump failed", log.Err(err))
	}
}

func checkSlot(slot int) error {
	if slot < 1 || slot > Slots {
		return fmt.Errorf("%w: %d", ErrInvalidSlot, slot)
	}
	return nil
}
