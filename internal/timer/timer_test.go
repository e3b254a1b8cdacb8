package timer

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestTimers_Decay(t *testing.T) {
	tm := Timers{Delay: 255, Sound: 3}

	for range 255 {
		tm.Tick()
	}
	assert.Equal(t, uint8(0), tm.Delay)
	assert.Equal(t, uint8(0), tm.Sound)

	tm.Tick()
	assert.Equal(t, uint8(0), tm.Delay)
	assert.Equal(t, uint8(0), tm.Sound)
}

func TestTimers_SoundActive(t *testing.T) {
	tm := Timers{Sound: 1}
	assert.True(t, tm.SoundActive())

	tm.Tick()
	assert.False(t, tm.SoundActive())
}

func TestTimers_Reset(t *testing.T) {
	tm := Timers{Delay: 10, Sound: 20}
	tm.Reset()
	assert.Equal(t, Timers{}, tm)
}
