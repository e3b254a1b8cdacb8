// Package display implements the monochrome CHIP-8 framebuffer.
package display

import (
	"fmt"
	"strings"
)

const (
	// Width is the horizontal resolution in pixels.
	Width = 64
	// Height is the vertical resolution in pixels.
	Height = 32
	// SpriteWidth is the width of a sprite row in pixels.
	SpriteWidth = 8
)

// Pixels is a row-major copy of the framebuffer, origin top-left.
type Pixels [Width * Height]bool

// Display is the framebuffer. It is a plain value type, copying it
// copies the full contents.
type Display struct {
	pixels Pixels
	dirty  bool
}

// Clear turns all pixels off.
func (d *Display) Clear() {
	d.pixels = Pixels{}
	d.dirty = true
}

// Blit XORs a sprite onto the framebuffer with its top left corner at x, y.
// Each byte of rows is one sprite row, most significant bit leftmost.
// Every pixel wraps around the screen edges on its own.
// It returns whether any pixel that was on has been turned off.
func (d *Display) Blit(x, y int, rows []byte) bool {
	collision := false

	for row, bits := range rows {
		py := (y + row) % Height
		for col := range SpriteWidth {
			if bits&(0x80>>col) == 0 {
				continue
			}

			px := (x + col) % Width
			index := py*Width + px
			if d.pixels[index] {
				collision = true
			}
			d.pixels[index] = !d.pixels[index]
		}
	}

	if len(rows) > 0 {
		d.dirty = true
	}
	return collision
}

// Pixels returns a copy of the framebuffer.
func (d *Display) Pixels() Pixels {
	return d.pixels
}

// Changed reports whether the framebuffer was modified since the last call
// and resets the modification flag.
func (d *Display) Changed() bool {
	changed := d.dirty
	d.dirty = false
	return changed
}

// Invalidate marks the framebuffer as modified, forcing the next redraw.
func (d *Display) Invalidate() {
	d.dirty = true
}

// String renders the framebuffer as text, one line per row,
// using '#' for pixels that are on and '.' for pixels that are off.
func (d *Display) String() string {
	var sb strings.Builder
	sb.Grow((Width + 1) * Height)

	for y := range Height {
		for x := range Width {
			if d.pixels[y*Width+x] {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// MarshalBinary encodes the framebuffer with one bit per pixel,
// most significant bit leftmost.
func (d Display) MarshalBinary() ([]byte, error) {
	b := make([]byte, len(d.pixels)/8)
	for i, on := range d.pixels {
		if on {
			b[i/8] |= 0x80 >> (i % 8)
		}
	}
	return b, nil
}

// UnmarshalBinary restores a framebuffer encoded by MarshalBinary.
func (d *Display) UnmarshalBinary(data []byte) error {
	if len(data) != len(d.pixels)/8 {
		return fmt.Errorf("invalid framebuffer image size %d", len(data))
	}
	for i := range d.pixels {
		d.pixels[i] = data[i/8]&(0x80>>(i%8)) != 0
	}
	d.dirty = true
	return nil
}
