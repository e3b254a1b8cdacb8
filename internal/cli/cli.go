// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/crumblingstatue/crusty-chip/internal/options"
	"github.com/crumblingstatue/crusty-chip/internal/scheduler"
)

const maxScale = 40

// ParseFlags parses command line flags and returns the program options.
func ParseFlags() (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	var opts options.Program
	readOptionFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || (len(args) == 0 && opts.Input == "") {
		return opts, &UsageError{flags: flags}
	}

	if err := validateArgs(args); err != nil {
		return opts, err
	}
	if opts.Input != "" && len(args) > 0 {
		return opts, &UsageError{
			msg: fmt.Sprintf("program file %s given both with -i and as argument %s", opts.Input, args[0]),
		}
	}

	if err := normalizeOptions(&opts); err != nil {
		return opts, err
	}

	if opts.Input == "" {
		opts.Input = args[0]
	}
	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: crusty-chip [options] <program file>\n\n")
	if e.flags != nil {
		e.flags.PrintDefaults()
	}
	fmt.Println()
	fmt.Println("keys: 1234/QWER/ASDF/ZXCV keypad, P pause, . step, Ctrl+R restart,")
	fmt.Println("      F1-F10 load state, Shift+F1-F10 save state, Esc quit")
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	if len(args) > 1 {
		for _, arg := range args[1:] {
			if strings.HasPrefix(arg, "-") {
				return &UsageError{
					msg: fmt.Sprintf("Potential argument %s found after program file, please pass the program file as last argument", arg),
				}
			}
		}
		return &UsageError{msg: "only one program file can be run"}
	}
	return nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program) error {
	opts.OnFault = strings.ToLower(opts.OnFault)
	switch opts.OnFault {
	case options.FaultPause, options.FaultSkip:
	default:
		return fmt.Errorf("unsupported fault policy: %s. Valid options: %s, %s",
			opts.OnFault, options.FaultPause, options.FaultSkip)
	}

	if opts.Speed <= 0 {
		return fmt.Errorf("invalid speed %d, must be positive", opts.Speed)
	}
	if opts.Scale < 1 || opts.Scale > maxScale {
		return fmt.Errorf("invalid scale %d, must be between 1 and %d", opts.Scale, maxScale)
	}
	if opts.Cycles < 0 {
		return fmt.Errorf("invalid cycle count %d", opts.Cycles)
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Input, "i", "", "name of the CHIP-8 program file")
	flags.StringVar(&opts.StateDir, "states", "", "directory to persist save state slots in, kept in memory only if empty")
	flags.BoolVar(&opts.Pause, "pause", false, "start in paused state")
	flags.IntVar(&opts.Speed, "speed", scheduler.DefaultSpeed, "instructions executed per second")
	flags.StringVar(&opts.OnFault, "onfault", options.FaultPause, "handling of invalid opcodes (pause/skip)")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
	flags.BoolVar(&opts.Headless, "headless", false, "run without a window and print the display to the console")
	flags.IntVar(&opts.Cycles, "cycles", 1000, "number of instructions to run in headless mode")
	flags.IntVar(&opts.Scale, "scale", 10, "window pixels per CHIP-8 pixel")
	flags.BoolVar(&opts.Mute, "mute", false, "disable the sound timer tone")
}
