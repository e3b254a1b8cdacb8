package registers

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestNew(t *testing.T) {
	r := New()

	assert.Equal(t, uint16(0x200), r.PC)
	assert.Equal(t, uint8(0), r.SP)
	assert.Equal(t, uint16(0), r.I)
}

func TestRegisters_PushPop(t *testing.T) {
	r := New()

	for i := range StackSize {
		assert.NoError(t, r.Push(uint16(0x200+i*2)))
	}
	assert.True(t, errors.Is(r.Push(0x300), ErrStackOverflow))
	assert.Equal(t, uint8(StackSize), r.SP)

	top, ok := r.Top()
	assert.True(t, ok)
	assert.Equal(t, uint16(0x200+(StackSize-1)*2), top)

	for i := StackSize - 1; i >= 0; i-- {
		addr, err := r.Pop()
		assert.NoError(t, err)
		assert.Equal(t, uint16(0x200+i*2), addr)
	}

	_, err := r.Pop()
	assert.True(t, errors.Is(err, ErrStackUnderflow))

	_, ok = r.Top()
	assert.False(t, ok)
}

func TestRegisters_Address(t *testing.T) {
	r := New()
	r.I = 0xF123
	assert.Equal(t, uint16(0x123), r.Address())
}

func TestRegisters_SetFlag(t *testing.T) {
	r := New()
	r.SetFlag(true)
	assert.Equal(t, uint8(1), r.V[Flag])
	r.SetFlag(false)
	assert.Equal(t, uint8(0), r.V[Flag])
}

func TestRegisters_Validate(t *testing.T) {
	r := New()
	assert.NoError(t, r.Validate())

	r.SP = StackSize
	assert.NoError(t, r.Validate())

	r.SP = StackSize + 1
	err := r.Validate()
	assert.True(t, errors.Is(err, ErrInvalidStackPointer))
}
