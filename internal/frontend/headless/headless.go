// Package headless runs a program without a window for a fixed number of
// instructions and prints the resulting display and machine state.
package headless

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/crumblingstatue/crusty-chip/internal/debugger"
	"github.com/crumblingstatue/crusty-chip/internal/display"
	"github.com/crumblingstatue/crusty-chip/internal/scheduler"
	"github.com/crumblingstatue/crusty-chip/internal/timer"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/term"
)

// Runner drives a controller in virtual time.
type Runner struct {
	logger *log.Logger
	ctrl   *debugger.Controller
	sched  *scheduler.Scheduler
	out    io.Writer
}

// New returns a headless runner writing to out.
func New(logger *log.Logger, ctrl *debugger.Controller, sched *scheduler.Scheduler, out io.Writer) *Runner {
	return &Runner{
		logger: logger,
		ctrl:   ctrl,
		sched:  sched,
		out:    out,
	}
}

// Run executes the given number of instructions rounded up to whole 60 Hz
// frames, so that timers behave as in the window frontend. Execution ends early on
// a fault, when the controller is paused or the program waits for a key.
// The display and a state dump are printed in every case.
func (r *Runner) Run(ctx context.Context, cycles int) error {
	m := r.ctrl.Machine()
	target := m.Cycles() + uint64(cycles)
	budget := r.sched.Period() * time.Duration(cycles)
	frames := int((budget + timer.Interval - 1) / timer.Interval)

	var runErr error
	for range frames {
		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}
		if err := r.sched.Advance(timer.Interval); err != nil {
			runErr = err
			break
		}
		if m.Cycles() >= target || r.ctrl.Paused() {
			break
		}
		if m.AwaitingKey() {
			r.logger.Info("Program waits for a key press, stopping")
			break
		}
	}

	r.logger.Info("Headless run finished", log.Int("cycles", int(m.Cycles())))

	if err := r.print(); err != nil {
		return err
	}
	return runErr
}

func (r *Runner) print() error {
	wide := false
	if f, ok := r.out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		width, _, err := term.GetSize(int(f.Fd()))
		wide = err == nil && width >= 2*display.Width
	}

	m := r.ctrl.Machine()
	screen := m.DisplayString()
	if wide {
		screen = renderWide(m.Framebuffer())
	}
	if _, err := io.WriteString(r.out, screen); err != nil {
		return fmt.Errorf("writing display: %w", err)
	}
	if err := r.ctrl.Dump(r.out); err != nil {
		return fmt.Errorf("writing state: %w", err)
	}
	return nil
}

// renderWide returns the display as text with two block characters per
// pixel, which keeps the aspect ratio in a terminal.
func renderWide(pixels display.Pixels) string {
	const on, off = "\u2588\u2588", "  "

	var sb strings.Builder
	for y := range display.Height {
		for x := range display.Width {
			if pixels[y*display.Width+x] {
				sb.WriteString(on)
			} else {
				sb.WriteString(off)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
