// Package loader handles program file loading operations.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/crumblingstatue/crusty-chip/internal/memory"
)

// ErrEmptyProgram is returned for program files without content.
var ErrEmptyProgram = errors.New("program is empty")

// Loader handles loading program files from disk.
type Loader struct{}

// New creates a new program loader.
func New() *Loader {
	return &Loader{}
}

// Load reads a raw CHIP-8 program file. Programs that do not fit into the
// memory above 0x200 are rejected with memory.ErrProgramTooLarge.
func (l *Loader) Load(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	program, err := l.LoadFromReader(file)
	if err != nil {
		return nil, fmt.Errorf("loading program %s: %w", path, err)
	}
	return program, nil
}

// LoadFromReader reads a raw CHIP-8 program from a reader.
func (l *Loader) LoadFromReader(r io.Reader) ([]byte, error) {
	// read one byte more than allowed to detect oversized programs
	program, err := io.ReadAll(io.LimitReader(r, memory.MaxProgramSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading program: %w", err)
	}
	if len(program) > memory.MaxProgramSize {
		return nil, fmt.Errorf("%w: more than %d bytes", memory.ErrProgramTooLarge, memory.MaxProgramSize)
	}
	if len(program) == 0 {
		return nil, ErrEmptyProgram
	}
	return program, nil
}
