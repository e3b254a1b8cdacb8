// Package memory provides the flat 4 KiB CHIP-8 address space.
//
// CHIP-8 memory map (4KB total):
//
//	0x000-0x1FF: Interpreter and font data (512 bytes)
//	0x200-0xFFF: User program space (3584 bytes)
//
// The display buffer and the call stack live outside of this address space.
package memory

import (
	"errors"
	"fmt"
)

const (
	// Size is the total size of the address space in bytes.
	Size = 0x1000

	// AddressMask masks an address to the 12 bit address space.
	AddressMask = 0x0FFF

	// ProgramStart is the memory address where CHIP-8 programs are loaded and begin execution.
	ProgramStart = 0x200

	// MaxProgramSize is the largest program that fits between ProgramStart and the end of memory.
	MaxProgramSize = Size - ProgramStart

	// FontStart is the address of the built-in hexadecimal digit sprites.
	FontStart = 0x000

	// FontGlyphSize is the number of bytes (rows) of a single digit sprite.
	FontGlyphSize = 5
)

// ErrProgramTooLarge is returned when a program does not fit into the program space.
var ErrProgramTooLarge = errors.New("program too large")

var font = [16 * FontGlyphSize]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// Memory is the CHIP-8 address space. It is a plain value type, copying it
// copies the full contents.
type Memory struct {
	data [Size]byte
}

// New returns a memory with the font sprites installed.
func New() Memory {
	var m Memory
	m.Reset()
	return m
}

// Reset clears the memory and reinstalls the font sprites.
func (m *Memory) Reset() {
	m.data = [Size]byte{}
	copy(m.data[FontStart:], font[:])
}

// Read returns the byte at the given address, masked to 12 bits.
func (m *Memory) Read(address uint16) byte {
	return m.data[address&AddressMask]
}

// Write stores a byte at the given address, masked to 12 bits.
func (m *Memory) Write(address uint16, value byte) {
	m.data[address&AddressMask] = value
}

// ReadWord reads a big-endian 16 bit word. Both byte addresses wrap independently.
func (m *Memory) ReadWord(address uint16) uint16 {
	return uint16(m.Read(address))<<8 | uint16(m.Read(address+1))
}

// ReadRange copies count bytes starting at address into a new slice,
// wrapping around the end of the address space.
func (m *Memory) ReadRange(address uint16, count int) []byte {
	b := make([]byte, count)
	for i := range b {
		b[i] = m.Read(address + uint16(i))
	}
	return b
}

// LoadProgram copies program into memory starting at ProgramStart.
func (m *Memory) LoadProgram(program []byte) error {
	if len(program) > MaxProgramSize {
		return fmt.Errorf("%w: %d bytes, maximum is %d", ErrProgramTooLarge, len(program), MaxProgramSize)
	}
	copy(m.data[ProgramStart:], program)
	return nil
}

// FontAddress returns the address of the sprite for the hexadecimal digit
// held in the low nibble of digit.
func FontAddress(digit byte) uint16 {
	return FontStart + uint16(digit&0x0F)*FontGlyphSize
}

// Bytes returns a copy of the whole address space.
func (m *Memory) Bytes() []byte {
	b := make([]byte, Size)
	copy(b, m.data[:])
	return b
}

// MarshalBinary encodes the address space contents.
func (m Memory) MarshalBinary() ([]byte, error) {
	return m.Bytes(), nil
}

// UnmarshalBinary restores the address space contents.
func (m *Memory) UnmarshalBinary(data []byte) error {
	if len(data) != Size {
		return fmt.Errorf("invalid memory image size %d", len(data))
	}
	copy(m.data[:], data)
	return nil
}
