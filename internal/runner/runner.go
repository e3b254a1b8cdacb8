// Package runner loads a program and runs it with the selected frontend.
package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/crumblingstatue/crusty-chip/internal/config"
	"github.com/crumblingstatue/crusty-chip/internal/debugger"
	"github.com/crumblingstatue/crusty-chip/internal/detector"
	"github.com/crumblingstatue/crusty-chip/internal/frontend/beeper"
	"github.com/crumblingstatue/crusty-chip/internal/frontend/headless"
	"github.com/crumblingstatue/crusty-chip/internal/frontend/window"
	"github.com/crumblingstatue/crusty-chip/internal/loader"
	"github.com/crumblingstatue/crusty-chip/internal/machine"
	"github.com/crumblingstatue/crusty-chip/internal/options"
	"github.com/crumblingstatue/crusty-chip/internal/scheduler"
	"github.com/retroenv/retrogolib/log"
)

// Run handles the complete workflow of loading and running a program.
func Run(ctx context.Context, logger *log.Logger, opts options.Program) error {
	ctrl, sched, err := Setup(logger, opts, os.Stdout)
	if err != nil {
		return err
	}

	if opts.Headless {
		runner := headless.New(logger, ctrl, sched, os.Stdout)
		return runner.Run(ctx, opts.Cycles)
	}

	var bp window.Beeper
	if !opts.Mute {
		b, err := beeper.New()
		if err != nil {
			logger.Warn("Audio is not available", log.Err(err))
		} else {
			defer func() { _ = b.Close() }()
			bp = b
		}
	}

	win := window.New(ctx, logger, ctrl, sched, bp, opts.Scale)
	if err := win.Run(); err != nil {
		return fmt.Errorf("running window: %w", err)
	}
	return nil
}

// Setup loads the program and creates the machine, the controller and the
// scheduler. State dumps are written to dump.
func Setup(logger *log.Logger, opts options.Program, dump io.Writer) (*debugger.Controller, *scheduler.Scheduler, error) {
	program, err := loader.New().Load(opts.Input)
	if err != nil {
		return nil, nil, fmt.Errorf("loading program: %w", err)
	}

	if !detector.New(logger).IsChip8(opts.Input, program) {
		logger.Warn("File does not look like a CHIP-8 program", log.String("file", opts.Input))
	}

	m := machine.New(logger)
	if err := m.Load(program); err != nil {
		return nil, nil, fmt.Errorf("loading program into memory: %w", err)
	}

	ctrl := debugger.New(logger, m, config.ControllerOptions(logger, opts, dump, program)...)
	sched := scheduler.New(ctrl, opts.Speed)

	logger.Info("Program loaded",
		log.String("file", opts.Input),
		log.Int("size", len(program)),
		log.Int("speed", opts.Speed),
		log.Stringer("state", ctrl.State()))
	return ctrl, sched, nil
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	versionString := version
	if commit != "" {
		if len(commit) > 7 {
			commit = commit[:7]
		}
		versionString += fmt.Sprintf(" (%s)", commit)
	}

	logger.Info("crusty-chip", log.String("version", versionString))

	if date != "" && !strings.Contains(date, "unknown") {
		logger.Info("Build", log.String("date", date))
	}
}
