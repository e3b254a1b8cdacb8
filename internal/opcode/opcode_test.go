package opcode

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		word uint16
		op   Op
		text string
	}{
		{0x00E0, Cls, "CLS"},
		{0x00EE, Ret, "RET"},
		{0x0123, Sys, "SYS $123"},
		{0x1ABC, Jp, "JP $ABC"},
		{0x2ABC, Call, "CALL $ABC"},
		{0x3A12, SeImm, "SE VA, $12"},
		{0x4A12, SneImm, "SNE VA, $12"},
		{0x5AB0, SeReg, "SE VA, VB"},
		{0x6A12, LdImm, "LD VA, $12"},
		{0x7A12, AddImm, "ADD VA, $12"},
		{0x8AB0, LdReg, "LD VA, VB"},
		{0x8AB1, Or, "OR VA, VB"},
		{0x8AB2, And, "AND VA, VB"},
		{0x8AB3, Xor, "XOR VA, VB"},
		{0x8AB4, AddReg, "ADD VA, VB"},
		{0x8AB5, Sub, "SUB VA, VB"},
		{0x8AB6, Shr, "SHR VA"},
		{0x8AB7, Subn, "SUBN VA, VB"},
		{0x8ABE, Shl, "SHL VA"},
		{0x9AB0, SneReg, "SNE VA, VB"},
		{0xA21F, LdI, "LD I, $21F"},
		{0xB300, JpV0, "JP V0, $300"},
		{0xC50F, Rnd, "RND V5, $0F"},
		{0xD015, Drw, "DRW V0, V1, $5"},
		{0xE59E, Skp, "SKP V5"},
		{0xE5A1, Sknp, "SKNP V5"},
		{0xF507, LdVxDT, "LD V5, DT"},
		{0xF50A, LdVxK, "LD V5, K"},
		{0xF515, LdDTVx, "LD DT, V5"},
		{0xF518, LdSTVx, "LD ST, V5"},
		{0xF51E, AddIVx, "ADD I, V5"},
		{0xF529, LdFVx, "LD F, V5"},
		{0xF533, LdBVx, "LD B, V5"},
		{0xF555, LdMemVx, "LD [I], V5"},
		{0xF565, LdVxMem, "LD V5, [I]"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			ins, err := Decode(tt.word)
			assert.NoError(t, err)
			assert.Equal(t, tt.op, ins.Op)
			assert.Equal(t, tt.text, ins.String())
			assert.Equal(t, tt.word, ins.Word)
		})
	}
}

func TestDecode_Fields(t *testing.T) {
	ins, err := Decode(0xD3C7)
	assert.NoError(t, err)
	assert.Equal(t, uint8(0x3), ins.X)
	assert.Equal(t, uint8(0xC), ins.Y)
	assert.Equal(t, uint8(0x7), ins.N)
	assert.Equal(t, uint8(0xC7), ins.NN)
	assert.Equal(t, uint16(0x3C7), ins.NNN)
}

func TestDecode_Invalid(t *testing.T) {
	words := []uint16{0x5121, 0x8128, 0x812F, 0x9121, 0xE100, 0xF1FF, 0xF100}

	for _, word := range words {
		ins, err := Decode(word)
		assert.True(t, errors.Is(err, ErrInvalidOpcode))
		assert.Equal(t, Invalid, ins.Op)
		assert.Equal(t, word, ins.Word)
	}
}

func TestOp_String(t *testing.T) {
	assert.Equal(t, "DRW", Drw.String())
	assert.Equal(t, "INVALID", Invalid.String())
	assert.Equal(t, "Op(200)", Op(200).String())
}
