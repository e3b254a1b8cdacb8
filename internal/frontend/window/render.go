package window

import (
	"fmt"
	"strings"

	"github.com/crumblingstatue/crusty-chip/internal/debugger"
	"github.com/crumblingstatue/crusty-chip/internal/display"
)

// renderPixels converts the framebuffer into RGBA pixels, lit pixels are
// white and unlit pixels black.
func renderPixels(dst []byte, pixels display.Pixels) {
	for i, on := range pixels {
		var v byte
		if on {
			v = 0xFF
		}
		offset := i * 4
		dst[offset] = v
		dst[offset+1] = v
		dst[offset+2] = v
		dst[offset+3] = 0xFF
	}
}

// pauseLabel returns the overlay text shown while paused, listing the save
// state slots that hold a snapshot.
func pauseLabel(pc uint16, slotUsed func(slot int) bool) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "PAUSED  PC $%03X", pc)

	first := true
	for slot := 1; slot <= debugger.Slots; slot++ {
		if !slotUsed(slot) {
			continue
		}
		if first {
			sb.WriteString("  slots")
			first = false
		}
		fmt.Fprintf(&sb, " %d", slot)
	}
	return sb.String()
}
