// Package registers implements the CHIP-8 register file.
package registers

import (
	"errors"
	"fmt"

	"github.com/crumblingstatue/crusty-chip/internal/memory"
)

// StackSize is the maximum number of nested subroutine calls.
const StackSize = 16

// Flag is the index of VF, which doubles as the carry, borrow and collision flag.
const Flag = 0xF

var (
	// ErrStackOverflow is returned when a call is made with a full stack.
	ErrStackOverflow = errors.New("stack overflow")
	// ErrStackUnderflow is returned when a return is made with an empty stack.
	ErrStackUnderflow = errors.New("stack underflow")
	// ErrInvalidStackPointer is returned by Validate for a stack pointer
	// beyond the stack size.
	ErrInvalidStackPointer = errors.New("invalid stack pointer")
)

// Registers holds the general purpose registers, the index register, the
// program counter and the call stack.
type Registers struct {
	V     [16]uint8 // V0-VF
	I     uint16    // index register, masked to 12 bits on use
	PC    uint16    // program counter
	SP    uint8     // number of return addresses on the stack
	Stack [StackSize]uint16
}

// New returns a register file in its power-on state.
func New() Registers {
	return Registers{PC: memory.ProgramStart}
}

// Reset puts the register file back into its power-on state.
func (r *Registers) Reset() {
	*r = New()
}

// Push pushes a return address on the call stack.
func (r *Registers) Push(address uint16) error {
	if int(r.SP) >= StackSize {
		return ErrStackOverflow
	}
	r.Stack[r.SP] = address
	r.SP++
	return nil
}

// Pop removes and returns the most recently pushed return address.
func (r *Registers) Pop() (uint16, error) {
	if r.SP == 0 {
		return 0, ErrStackUnderflow
	}
	r.SP--
	return r.Stack[r.SP], nil
}

// Top returns the top of the stack and whether the stack holds any entry.
func (r *Registers) Top() (uint16, bool) {
	if r.SP == 0 {
		return 0, false
	}
	return r.Stack[r.SP-1], true
}

// Address returns the index register masked to the address space.
func (r *Registers) Address() uint16 {
	return r.I & memory.AddressMask
}

// SetFlag sets VF to 1 if set is true, otherwise to 0.
func (r *Registers) SetFlag(set bool) {
	if set {
		r.V[Flag] = 1
	} else {
		r.V[Flag] = 0
	}
}

// Validate checks the register file for values that cannot be produced by
// execution, as found in damaged save states.
func (r *Registers) Validate() error {
	if int(r.SP) > StackSize {
		return fmt.Errorf("%w: %d", ErrInvalidStackPointer, r.SP)
	}
	return nil
}
