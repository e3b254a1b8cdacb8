// Package machine implements the CHIP-8 virtual machine: instruction
// execution against memory, registers, timers, display and keypad.
package machine

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/crumblingstatue/crusty-chip/internal/display"
	"github.com/crumblingstatue/crusty-chip/internal/memory"
	"github.com/crumblingstatue/crusty-chip/internal/opcode"
	"github.com/crumblingstatue/crusty-chip/internal/registers"
	"github.com/retroenv/retrogolib/log"
)

// Errors returned wrapped in a Fault by Step.
var (
	ErrInvalidOpcode  = opcode.ErrInvalidOpcode
	ErrStackOverflow  = registers.ErrStackOverflow
	ErrStackUnderflow = registers.ErrStackUnderflow
)

// Fault describes an instruction that could not be executed. The machine
// state is left unchanged, with the program counter on the faulting
// instruction.
type Fault struct {
	PC   uint16 // address of the faulting instruction
	Word uint16 // instruction word
	Err  error
}

func (f *Fault) Error() string {
	return fmt.Sprintf("executing $%04X at $%03X: %v", f.Word, f.PC, f.Err)
}

func (f *Fault) Unwrap() error {
	return f.Err
}

// Option configures a Machine.
type Option func(*Machine)

// WithRandomSource sets the source used by the RND instruction.
func WithRandomSource(src rand.Source) Option {
	return func(m *Machine) {
		m.rng = rand.New(src)
	}
}

// Machine is a single CHIP-8 virtual machine instance.
type Machine struct {
	logger  *log.Logger
	state   State
	program []byte
	rng     *rand.Rand
}

// New returns a machine in its power-on state without a program loaded.
func New(logger *log.Logger, opts ...Option) *Machine {
	m := &Machine{
		logger: logger,
		state:  newState(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.rng == nil {
		m.rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}
	return m
}

// Load resets the machine and copies program into memory at 0x200. The
// program is kept for later resets.
func (m *Machine) Load(program []byte) error {
	state := newState()
	if err := state.Memory.LoadProgram(program); err != nil {
		return fmt.Errorf("loading program: %w", err)
	}

	m.state = state
	m.program = slices.Clone(program)
	m.state.Display.Invalidate()

	m.logger.Debug("Program loaded",
		log.Int("size", len(program)),
		log.Hex("start", memory.ProgramStart))
	return nil
}

// Reset reloads the original program and puts all registers, timers, the
// display and the keypad back into their power-on state.
func (m *Machine) Reset() {
	s := &m.state
	s.Memory.Reset()
	// the program size was validated by Load
	_ = s.Memory.LoadProgram(m.program)
	s.Registers.Reset()
	s.Timers.Reset()
	s.Display.Clear()
	s.Keypad.Reset()
	s.Cycles = 0

	m.logger.Debug("Machine reset")
}

// Tick advances the delay and sound timers by one 60 Hz tick.
func (m *Machine) Tick() {
	m.state.Timers.Tick()
}

// SetKey updates the state of a keypad key.
func (m *Machine) SetKey(code uint8, pressed bool) error {
	if err := m.state.Keypad.Set(code, pressed); err != nil {
		return fmt.Errorf("setting key: %w", err)
	}
	return nil
}

// SkipInstruction advances the program counter past the current
// instruction without executing it.
func (m *Machine) SkipInstruction() {
	m.state.Registers.PC = (m.state.Registers.PC + 2) & memory.AddressMask
}

// Capture returns a snapshot of the current state.
func (m *Machine) Capture() Snapshot {
	return NewSnapshot(m.state, time.Now())
}

// Restore replaces the complete machine state with the snapshot contents.
func (m *Machine) Restore(s Snapshot) {
	m.state = s.State()
	m.state.Display.Invalidate()
}

// Registers returns a copy of the register file.
func (m *Machine) Registers() registers.Registers {
	return m.state.Registers
}

// ReadMemory returns the byte at the given address.
func (m *Machine) ReadMemory(address uint16) byte {
	return m.state.Memory.Read(address)
}

// Framebuffer returns a copy of the display pixels.
func (m *Machine) Framebuffer() display.Pixels {
	return m.state.Display.Pixels()
}

// DisplayString renders the display as text.
func (m *Machine) DisplayString() string {
	return m.state.Display.String()
}

// DisplayChanged reports whether the display changed since the last call.
func (m *Machine) DisplayChanged() bool {
	return m.state.Display.Changed()
}

// SoundActive returns whether the sound timer requests a tone.
func (m *Machine) SoundActive() bool {
	return m.state.Timers.SoundActive()
}

// DelayTimer returns the current delay timer value.
func (m *Machine) DelayTimer() uint8 {
	return m.state.Timers.Delay
}

// SoundTimer returns the current sound timer value.
func (m *Machine) SoundTimer() uint8 {
	return m.state.Timers.Sound
}

// AwaitingKey returns whether execution is suspended on a wait-for-key instruction.
func (m *Machine) AwaitingKey() bool {
	return m.state.Keypad.Awaiting()
}

// Cycles returns the number of executed instructions.
func (m *Machine) Cycles() uint64 {
	return m.state.Cycles
}

// CurrentWord returns the instruction word at the program counter.
func (m *Machine) CurrentWord() uint16 {
	return m.state.Memory.ReadWord(m.state.Registers.PC)
}
