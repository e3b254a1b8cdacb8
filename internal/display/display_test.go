package display

import (
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func pixelOn(d Display, x, y int) bool {
	return d.Pixels()[y*Width+x]
}

func TestDisplay_Blit(t *testing.T) {
	var d Display

	collision := d.Blit(0, 0, []byte{0b10100000})
	assert.False(t, collision)
	assert.True(t, pixelOn(d, 0, 0))
	assert.False(t, pixelOn(d, 1, 0))
	assert.True(t, pixelOn(d, 2, 0))

	// overlapping pixel at 2,0 gets erased
	collision = d.Blit(2, 0, []byte{0b11000000})
	assert.True(t, collision)
	assert.False(t, pixelOn(d, 2, 0))
	assert.True(t, pixelOn(d, 3, 0))
}

func TestDisplay_BlitWrapsPerPixel(t *testing.T) {
	var d Display

	d.Blit(Width-2, Height-1, []byte{0xF0, 0x80})

	assert.True(t, pixelOn(d, Width-2, Height-1))
	assert.True(t, pixelOn(d, Width-1, Height-1))
	assert.True(t, pixelOn(d, 0, Height-1))
	assert.True(t, pixelOn(d, 1, Height-1))
	// second row wraps to the top
	assert.True(t, pixelOn(d, Width-2, 0))
	assert.False(t, pixelOn(d, Width-1, 0))
}

func TestDisplay_BlitIdempotence(t *testing.T) {
	sprites := [][]byte{
		{0xFF},
		{0xF0, 0x90, 0x90, 0x90, 0xF0},
		{0x81, 0x42, 0x24, 0x18},
	}

	for _, sprite := range sprites {
		var d Display
		d.Blit(10, 10, []byte{0x3C, 0x3C})
		before := d.Pixels()

		d.Blit(8, 9, sprite)
		second := d.Blit(8, 9, sprite)

		assert.Equal(t, before, d.Pixels())
		// the second draw erases every pixel the first one turned on
		assert.True(t, second)
	}
}

func TestDisplay_Clear(t *testing.T) {
	var d Display
	d.Blit(5, 5, []byte{0xFF})
	assert.True(t, d.Changed())
	assert.False(t, d.Changed())

	d.Clear()
	assert.True(t, d.Changed())
	assert.Equal(t, Pixels{}, d.Pixels())
}

func TestDisplay_String(t *testing.T) {
	var d Display
	d.Blit(0, 0, []byte{0x80})

	s := d.String()
	lines := strings.Split(strings.TrimSuffix(s, "\n"), "\n")
	assert.Len(t, lines, Height)
	assert.Equal(t, "#"+strings.Repeat(".", Width-1), lines[0])
}
