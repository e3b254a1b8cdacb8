package savestate

import (
	"bytes"
	"encoding/gob"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/crumblingstatue/crusty-chip/internal/machine"
	"github.com/crumblingstatue/crusty-chip/internal/memory"
	"github.com/crumblingstatue/crusty-chip/internal/registers"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

// testProgram is LD V3, $42; LD F, V3; DRW V3, V3, 5; LD DT, V3; LD V1, K.
var testProgram = []byte{0x63, 0x42, 0xF3, 0x29, 0xD3, 0x35, 0xF3, 0x15, 0xF1, 0x0A}

func writeRecord(t *testing.T, path string, rec record) {
	t.Helper()
	var buf bytes.Buffer
	assert.NoError(t, gob.NewEncoder(&buf).Encode(rec))
	assert.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func TestStore_SaveLoad(t *testing.T) {
	logger := log.NewTestLogger(t)
	m := machine.New(logger)
	assert.NoError(t, m.Load(testProgram))
	for range 5 {
		assert.NoError(t, m.Step())
	}
	assert.NoError(t, m.SetKey(0x4, true))
	snapshot := m.Capture()

	store := New(logger, filepath.Join(t.TempDir(), "states"), testProgram)
	assert.NoError(t, store.Save(3, snapshot))

	_, err := os.Stat(store.Path(3))
	assert.NoError(t, err)
	assert.True(t, strings.HasSuffix(store.Path(3), "-slot-03.state"))

	loaded, err := store.Load(3)
	assert.NoError(t, err)
	assert.Equal(t, snapshot.PC(), loaded.PC())
	assert.Equal(t, snapshot.Cycles(), loaded.Cycles())
	assert.True(t, snapshot.Taken().Equal(loaded.Taken()))

	expected := snapshot.State()
	actual := loaded.State()
	assert.Equal(t, expected.Registers, actual.Registers)
	assert.Equal(t, expected.Timers, actual.Timers)
	assert.Equal(t, expected.Memory.Bytes(), actual.Memory.Bytes())
	assert.Equal(t, expected.Display.Pixels(), actual.Display.Pixels())
	assert.Equal(t, expected.Keypad.Keys(), actual.Keypad.Keys())
	assert.True(t, actual.Keypad.Awaiting())

	// the latched key completes the wait after restoring
	restored := machine.New(logger)
	restored.Restore(loaded)
	assert.NoError(t, restored.Step())
	assert.Equal(t, uint8(0x4), restored.Registers().V[1])
}

func TestStore_LoadMissing(t *testing.T) {
	store := New(log.NewTestLogger(t), t.TempDir(), testProgram)
	_, err := store.Load(7)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestStore_LoadVersionMismatch(t *testing.T) {
	store := New(log.NewTestLogger(t), t.TempDir(), testProgram)
	writeRecord(t, store.Path(1), record{Version: formatVersion + 1})

	_, err := store.Load(1)
	assert.True(t, errors.Is(err, ErrVersion))
}

func TestStore_LoadCorrupt(t *testing.T) {
	store := New(log.NewTestLogger(t), t.TempDir(), testProgram)
	assert.NoError(t, os.WriteFile(store.Path(2), []byte("not a save state"), 0o644))

	_, err := store.Load(2)
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestStore_LoadInvalidStackPointer(t *testing.T) {
	store := New(log.NewTestLogger(t), t.TempDir(), testProgram)

	rec := record{
		Version: formatVersion,
		Program: store.program,
		Memory:  memory.New(),
	}
	rec.Registers.SP = 200
	writeRecord(t, store.Path(1), rec)

	_, err := store.Load(1)
	assert.True(t, errors.Is(err, registers.ErrInvalidStackPointer))
}

func TestStore_ProgramsShareDirectory(t *testing.T) {
	logger := log.NewTestLogger(t)
	dir := t.TempDir()
	other := []byte{0x12, 0x00}

	m := machine.New(logger)
	assert.NoError(t, m.Load(testProgram))
	store := New(logger, dir, testProgram)
	assert.NoError(t, store.Save(1, m.Capture()))

	otherStore := New(logger, dir, other)
	assert.NotEqual(t, store.Path(1), otherStore.Path(1))
	_, err := otherStore.Load(1)
	assert.True(t, errors.Is(err, ErrNotFound))

	// a file copied over from another program is rejected
	data, err := os.ReadFile(store.Path(1))
	assert.NoError(t, err)
	assert.NoError(t, os.WriteFile(otherStore.Path(1), data, 0o644))
	_, err = otherStore.Load(1)
	assert.True(t, errors.Is(err, ErrProgramMismatch))
}
