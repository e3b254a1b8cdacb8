package disasm

import (
	"testing"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
	"github.com/retroenv/retrogolib/assert"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		word     uint16
		expected *chip8.Instruction
	}{
		{0x00E0, chip8.ClsInst},
		{0x00EE, chip8.RetInst},
		{0x1234, chip8.JpInst},
		{0x2234, chip8.CallInst},
		{0x6234, chip8.LdInst},
		{0xD235, chip8.DrwInst},
		{0xE29E, chip8.SkpInst},
	}

	for _, tt := range tests {
		ins, ok := Lookup(tt.word)
		assert.True(t, ok)
		assert.Equal(t, tt.expected, ins)
	}

	_, ok := Lookup(0xF2FF)
	assert.False(t, ok)
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		word     uint16
		expected string
	}{
		{"CLS", 0x00E0, chip8.ClsName},
		{"JP addr", 0x1234, chip8.JpName + " $234"},
		{"JP V0", 0xB234, chip8.JpName + " V0, $234"},
		{"CALL", 0x2234, chip8.CallName + " $234"},
		{"SE Vx, byte", 0x3234, chip8.SeName + " V2, $34"},
		{"SNE Vx, Vy", 0x9230, chip8.SneName + " V2, V3"},
		{"LD I, addr", 0xA21F, chip8.LdName + " I, $21F"},
		{"LD Vx, K", 0xF50A, chip8.LdName + " V5, K"},
		{"LD [I], Vx", 0xF355, chip8.LdName + " [I], V3"},
		{"ADD I, Vx", 0xF31E, chip8.AddName + " I, V3"},
		{"ADD Vx, Vy", 0x8234, chip8.AddName + " V2, V3"},
		{"DRW", 0xD015, chip8.DrwName + " V0, V1, $5"},
		{"SHL", 0x823E, chip8.ShlName + " V2"},
		{"unknown", 0xF2FF, "dw $F2FF"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Format(tt.word))
		})
	}
}

func TestIsControlFlow(t *testing.T) {
	assert.True(t, IsControlFlow(0x1234))
	assert.True(t, IsControlFlow(0x00EE))
	assert.True(t, IsControlFlow(0x3212))
	assert.True(t, IsControlFlow(0xE2A1))
	assert.False(t, IsControlFlow(0x6212))
	assert.False(t, IsControlFlow(0xF2FF))
}
