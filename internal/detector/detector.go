// Package detector checks whether a program file is a CHIP-8 program.
package detector

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/retroenv/retrogolib/arch"
	"github.com/retroenv/retrogolib/log"
)

// nesHeader starts every iNES ROM image.
var nesHeader = []byte{'N', 'E', 'S', 0x1A}

// Detector guesses the system a program file was made for from its file
// extension and content.
type Detector struct {
	logger *log.Logger
}

// New creates a new system detector.
func New(logger *log.Logger) *Detector {
	return &Detector{
		logger: logger,
	}
}

// Detect returns the system the file is most likely made for. Unknown
// extensions are assumed to be CHIP-8 programs.
func (d *Detector) Detect(filename string, data []byte) arch.System {
	system := d.detectFromFile(filename)
	if bytes.HasPrefix(data, nesHeader) {
		system = arch.NES
	}

	d.logger.Debug("Detected system",
		log.Stringer("system", system),
		log.String("file", filename))
	return system
}

// IsChip8 returns whether the file looks like a CHIP-8 program.
func (d *Detector) IsChip8(filename string, data []byte) bool {
	return d.Detect(filename, data) == arch.CHIP8System
}

// detectFromFile determines the system type based on file extension.
func (d *Detector) detectFromFile(filename string) arch.System {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".nes":
		return arch.NES
	default:
		return arch.CHIP8System
	}
}
