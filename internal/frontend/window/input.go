package window

import (
	"github.com/crumblingstatue/crusty-chip/internal/keypad"
	"github.com/hajimehoshi/ebiten/v2"
)

type action int

const (
	actionNone action = iota
	actionTogglePause
	actionStep
	actionRestart
	actionSave
	actionLoad
)

const (
	pauseKey   = ebiten.KeyP
	stepKey    = ebiten.KeyPeriod
	restartKey = ebiten.KeyR
)

// slotKeys select save state slots 1 to 10.
var slotKeys = [...]ebiten.Key{
	ebiten.KeyF1, ebiten.KeyF2, ebiten.KeyF3, ebiten.KeyF4, ebiten.KeyF5,
	ebiten.KeyF6, ebiten.KeyF7, ebiten.KeyF8, ebiten.KeyF9, ebiten.KeyF10,
}

type keyBinding struct {
	key  ebiten.Key
	code uint8
}

// keypadBindings maps the left block of a QWERTY keyboard onto the keypad.
var keypadBindings = bindKeypad(map[ebiten.Key]rune{
	ebiten.Key1: '1', ebiten.Key2: '2', ebiten.Key3: '3', ebiten.Key4: '4',
	ebiten.KeyQ: 'Q', ebiten.KeyW: 'W', ebiten.KeyE: 'E', ebiten.KeyR: 'R',
	ebiten.KeyA: 'A', ebiten.KeyS: 'S', ebiten.KeyD: 'D', ebiten.KeyF: 'F',
	ebiten.KeyZ: 'Z', ebiten.KeyX: 'X', ebiten.KeyC: 'C', ebiten.KeyV: 'V',
})

func bindKeypad(keys map[ebiten.Key]rune) []keyBinding {
	bindings := make([]keyBinding, 0, len(keys))
	for key, r := range keys {
		code, ok := keypad.CodeForRune(r)
		if !ok {
			continue
		}
		bindings = append(bindings, keyBinding{key: key, code: code})
	}
	return bindings
}

// metaAction returns the debug control bound to a key press and the save
// state slot for save and load actions.
func metaAction(key ebiten.Key, ctrl, shift bool) (action, int) {
	switch key {
	case pauseKey:
		return actionTogglePause, 0
	case stepKey:
		return actionStep, 0
	case restartKey:
		if ctrl {
			return actionRestart, 0
		}
		return actionNone, 0
	}

	for i, slotKey := range slotKeys {
		if key != slotKey {
			continue
		}
		if shift {
			return actionSave, i + 1
		}
		return actionLoad, i + 1
	}
	return actionNone, 0
}

// keypadTransition returns the keypad state for a key that was just pressed
// or released and whether the keypad changes. Pressing the restart key with
// Ctrl held is the restart shortcut, its release always reaches the keypad.
func keypadTransition(key ebiten.Key, justPressed, justReleased, ctrl bool) (pressed, changed bool) {
	switch {
	case justPressed:
		if ctrl && key == restartKey {
			return false, false
		}
		return true, true
	case justReleased:
		return false, true
	default:
		return false, false
	}
}
