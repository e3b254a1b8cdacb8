// Package savestate persists machine snapshots as gob encoded files, one
// file per save state slot and program.
package savestate

import (
	"bytes"
	"crypto/sha256"
	"encoding/gob"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/crumblingstatue/crusty-chip/internal/display"
	"github.com/crumblingstatue/crusty-chip/internal/keypad"
	"github.com/crumblingstatue/crusty-chip/internal/machine"
	"github.com/crumblingstatue/crusty-chip/internal/memory"
	"github.com/crumblingstatue/crusty-chip/internal/registers"
	"github.com/crumblingstatue/crusty-chip/internal/timer"
	"github.com/retroenv/retrogolib/log"
)

// formatVersion is increased on incompatible changes of the record layout.
const formatVersion = 2

// keyLength is the number of hash characters in the file name prefix.
const keyLength = 16

var (
	// ErrNotFound is returned when no file exists for a slot.
	ErrNotFound = errors.New("save state not found")
	// ErrVersion is returned for files written with a different format version.
	ErrVersion = errors.New("unsupported save state version")
	// ErrProgramMismatch is returned for files saved while running a
	// different program.
	ErrProgramMismatch = errors.New("save state belongs to a different program")
)

// record is the persisted form of a snapshot.
type record struct {
	Version   int
	Program   string // hex SHA-256 of the program
	Taken     time.Time
	Cycles    uint64
	Memory    memory.Memory
	Registers registers.Registers
	Timers    timer.Timers
	Display   display.Display
	Keypad    keypad.Keypad
}

// Store reads and writes snapshots of one program in a directory. Stores of
// different programs can share a directory.
type Store struct {
	logger  *log.Logger
	dir     string
	program string
}

// New returns a store for the given directory and program. The directory is
// created on the first save.
func New(logger *log.Logger, dir string, program []byte) *Store {
	sum := sha256.Sum256(program)
	return &Store{
		logger:  logger,
		dir:     dir,
		program: hex.EncodeToString(sum[:]),
	}
}

// Path returns the file name used for a slot.
func (s *Store) Path(slot int) string {
	name := fmt.Sprintf("%s-slot-%02d.state", s.program[:keyLength], slot)
	return filepath.Join(s.dir, name)
}

// Save writes a snapshot to the slot file, replacing an existing file.
func (s *Store) Save(slot int, snapshot machine.Snapshot) error {
	state := snapshot.State()
	rec := record{
		Version:   formatVersion,
		Program:   s.program,
		Taken:     snapshot.Taken(),
		Cycles:    state.Cycles,
		Memory:    state.Memory,
		Registers: state.Registers,
		Timers:    state.Timers,
		Display:   state.Display,
		Keypad:    state.Keypad,
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(rec); err != nil {
		return fmt.Errorf("encoding save state: %w", err)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating save state directory: %w", err)
	}

	path := s.Path(slot)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing save state file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replacing save state file: %w", err)
	}

	s.logger.Debug("Save state written",
		log.String("file", path),
		log.Int("size", buf.Len()))
	return nil
}

// Load reads the snapshot of a slot. A missing file returns ErrNotFound.
func (s *Store) Load(slot int) (machine.Snapshot, error) {
	path := s.Path(slot)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return machine.Snapshot{}, fmt.Errorf("%w: slot %d", ErrNotFound, slot)
		}
		return machine.Snapshot{}, fmt.Errorf("reading save state file: %w", err)
	}

	var rec record
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&rec); err != nil {
		return machine.Snapshot{}, fmt.Errorf("decoding save state file '%s': %w", path, err)
	}
	if rec.Version != formatVersion {
		return machine.Snapshot{}, fmt.Errorf("%w: %d", ErrVersion, rec.Version)
	}
	if rec.Program != s.program {
		return machine.Snapshot{}, fmt.Errorf("%w: slot %d", ErrProgramMismatch, slot)
	}
	if err := rec.Registers.Validate(); err != nil {
		return machine.Snapshot{}, fmt.Errorf("validating save state file '%s': %w", path, err)
	}

	state := machine.State{
		Memory:    rec.Memory,
		Registers: rec.Registers,
		Timers:    rec.Timers,
		Display:   rec.Display,
		Keypad:    rec.Keypad,
		Cycles:    rec.Cycles,
	}

	s.logger.Debug("Save state read", log.String("file", path))
	return machine.NewSnapshot(state, rec.Taken), nil
}
