// Package config handles application configuration and setup
package config

import (
	"io"

	"github.com/crumblingstatue/crusty-chip/internal/debugger"
	"github.com/crumblingstatue/crusty-chip/internal/options"
	"github.com/crumblingstatue/crusty-chip/internal/savestate"
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// ControllerOptions translates the program options into debug controller
// options. State dumps are written to dump, save states on disk are keyed
// by program.
func ControllerOptions(logger *log.Logger, opts options.Program, dump io.Writer, program []byte) []debugger.Option {
	ctrlOpts := []debugger.Option{debugger.WithDumpWriter(dump)}

	if opts.OnFault == options.FaultSkip {
		ctrlOpts = append(ctrlOpts, debugger.WithFaultPolicy(debugger.SkipOnFault))
	}
	if opts.Pause {
		ctrlOpts = append(ctrlOpts, debugger.WithPaused())
	}
	if opts.StateDir != "" {
		ctrlOpts = append(ctrlOpts, debugger.WithStore(savestate.New(logger, opts.StateDir, program)))
	}
	return ctrlOpts
}
