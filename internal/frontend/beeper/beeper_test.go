package beeper

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func samples(t *testing.T, tn *tone, count int) []float32 {
	t.Helper()
	buf := make([]byte, count*bytesPerSample)
	n, err := tn.Read(buf)
	assert.NoError(t, err)
	assert.Equal(t, len(buf), n)

	result := make([]float32, count)
	for i := range result {
		result[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[i*bytesPerSample:]))
	}
	return result
}

func TestTone_Silent(t *testing.T) {
	tn := newTone(800, 100, 0.5)
	for _, s := range samples(t, tn, 16) {
		assert.Equal(t, float32(0), s)
	}
}

func TestTone_SquareWave(t *testing.T) {
	tn := newTone(800, 100, 0.5)
	tn.active.Store(true)

	s := samples(t, tn, 16)
	expected := []float32{0.5, 0.5, 0.5, 0.5, -0.5, -0.5, -0.5, -0.5}
	assert.Equal(t, expected, s[:8])
	assert.Equal(t, expected, s[8:])

	tn.active.Store(false)
	assert.Equal(t, float32(0), samples(t, tn, 1)[0])
}

func TestTone_PartialSample(t *testing.T) {
	tn := newTone(800, 100, 0.5)
	n, err := tn.Read(make([]byte, 6))
	assert.NoError(t, err)
	assert.Equal(t, 4, n)
}
