package memory

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestNew_InstallsFont(t *testing.T) {
	m := New()

	// digit 0 and digit F
	assert.Equal(t, byte(0xF0), m.Read(0x000))
	assert.Equal(t, byte(0x90), m.Read(0x001))
	assert.Equal(t, byte(0x80), m.Read(FontAddress(0xF)+4))
	assert.Equal(t, byte(0), m.Read(ProgramStart))
}

func TestMemory_AddressWrap(t *testing.T) {
	m := New()

	m.Write(0x1234, 0xAB)
	assert.Equal(t, byte(0xAB), m.Read(0x0234))
	assert.Equal(t, byte(0xAB), m.Read(0xF234))

	m.Write(0x0FFF, 0x12)
	m.Write(0x0000, 0x34)
	assert.Equal(t, uint16(0x1234), m.ReadWord(0x0FFF))
}

func TestMemory_ReadRange(t *testing.T) {
	m := New()
	m.Write(0xFFE, 1)
	m.Write(0xFFF, 2)

	b := m.ReadRange(0xFFE, 3)
	assert.Equal(t, []byte{1, 2, 0xF0}, b)
}

func TestMemory_LoadProgram(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		wantErr bool
	}{
		{"empty program", 0, false},
		{"small program", 4, false},
		{"maximum size", MaxProgramSize, false},
		{"one byte too large", MaxProgramSize + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New()
			program := make([]byte, tt.size)
			for i := range program {
				program[i] = byte(i + 1)
			}

			err := m.LoadProgram(program)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrProgramTooLarge))
				assert.Equal(t, byte(0), m.Read(ProgramStart))
				return
			}

			assert.NoError(t, err)
			if tt.size > 0 {
				assert.Equal(t, byte(1), m.Read(ProgramStart))
				assert.Equal(t, byte(tt.size), m.Read(ProgramStart+uint16(tt.size)-1))
			}
		})
	}
}

func TestFontAddress(t *testing.T) {
	assert.Equal(t, uint16(0), FontAddress(0))
	assert.Equal(t, uint16(50), FontAddress(0xA))
	assert.Equal(t, uint16(5), FontAddress(0x11))
}

func TestMemory_CopyIsIndependent(t *testing.T) {
	m := New()
	c := m
	c.Write(0x300, 7)

	assert.Equal(t, byte(0), m.Read(0x300))
	assert.Equal(t, byte(7), c.Read(0x300))
}
