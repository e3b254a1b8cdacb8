// Package options contains the program options.
package options

// Fault policies for invalid opcodes.
const (
	FaultPause = "pause"
	FaultSkip  = "skip"
)

// Parameters contains file path options.
type Parameters struct {
	Input    string `flag:"i" usage:"CHIP-8 program file"`
	StateDir string `flag:"states" usage:"directory to persist save state slots in"`
}

// Flags contains behavior options.
type Flags struct {
	Pause    bool   `flag:"pause" usage:"start paused"`
	Speed    int    `flag:"speed" usage:"instructions per second" default:"700"`
	OnFault  string `flag:"onfault" usage:"invalid opcode handling: pause, skip" default:"pause"`
	Debug    bool   `flag:"debug" usage:"enable debug logging"`
	Quiet    bool   `flag:"q" usage:"quiet mode"`
	Headless bool   `flag:"headless" usage:"run without window and print the display"`
	Cycles   int    `flag:"cycles" usage:"instructions to run in headless mode" default:"1000"`
}

// WindowFlags contains options of the window frontend.
type WindowFlags struct {
	Scale int  `flag:"scale" usage:"window pixels per CHIP-8 pixel" default:"10"`
	Mute  bool `flag:"mute" usage:"disable the sound timer tone"`
}

// Program options of the interpreter.
type Program struct {
	Parameters
	Flags
	WindowFlags
}
