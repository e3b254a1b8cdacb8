package debugger

import (
	"fmt"
	"io"
	"strings"

	"github.com/crumblingstatue/crusty-chip/internal/disasm"
)

// Dump writes the program counter with the instruction at it, the cycle
// counter, all registers, the timers and the stack.
func (c *Controller) Dump(w io.Writer) error {
	m := c.machine
	regs := m.Registers()
	word := m.CurrentWord()

	var buf strings.Builder
	marker := ""
	if disasm.IsControlFlow(word) {
		marker = " *"
	}
	fmt.Fprintf(&buf, "PC: $%03X  %04X  %s%s\n", regs.PC, word, disasm.Format(word), marker)
	fmt.Fprintf(&buf, "state: %s  cycles: %d", c.state, m.Cycles())
	if m.AwaitingKey() {
		buf.WriteString("  awaiting key")
	}
	buf.WriteByte('\n')

	for i, v := range regs.V {
		fmt.Fprintf(&buf, "V%X: %02X", i, v)
		if i%8 == 7 {
			buf.WriteByte('\n')
		} else {
			buf.WriteByte(' ')
		}
	}

	fmt.Fprintf(&buf, "I: $%03X  SP: %d  DT: %02X  ST: %02X\n",
		regs.I, regs.SP, m.DelayTimer(), m.SoundTimer())

	buf.WriteString("stack:")
	for _, address := range regs.Stack[:regs.SP] {
		fmt.Fprintf(&buf, " $%03X", address)
	}
	if top, ok := regs.Top(); ok {
		fmt.Fprintf(&buf, "  top: $%03X\n", top)
	} else {
		buf.WriteString(" empty\n")
	}

	if _, err := io.WriteString(w, buf.String()); err != nil {
		return fmt.Errorf("writing dump: %w", err)
	}
	return nil
}
