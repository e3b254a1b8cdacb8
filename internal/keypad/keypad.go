// Package keypad implements the 16 key hexadecimal CHIP-8 keypad.
package keypad

import (
	"errors"
	"fmt"
)

// Count is the number of keys on the keypad.
const Count = 16

// ErrInvalidKey is returned for key codes outside of 0x0-0xF.
var ErrInvalidKey = errors.New("invalid key")

// Keypad holds the key-down state of every key and the latch used by the
// wait-for-key instruction.
type Keypad struct {
	keys [Count]bool

	awaiting bool  // a wait-for-key instruction is in progress
	register uint8 // register that receives the pressed key
	pending  bool  // a key-down transition was seen while awaiting
	key      uint8 // key of the pending transition
}

// Set updates the state of a key. A transition from released to pressed
// while a key wait is in progress is latched for Resolve.
func (k *Keypad) Set(code uint8, pressed bool) error {
	if code >= Count {
		return fmt.Errorf("%w: 0x%X", ErrInvalidKey, code)
	}

	if pressed && !k.keys[code] && k.awaiting && !k.pending {
		k.pending = true
		k.key = code
	}
	k.keys[code] = pressed
	return nil
}

// Pressed returns whether the key with the low nibble of code is down.
func (k *Keypad) Pressed(code uint8) bool {
	return k.keys[code&0x0F]
}

// Keys returns a copy of the key-down flags.
func (k *Keypad) Keys() [Count]bool {
	return k.keys
}

// Await starts waiting for the next key-down transition. Keys that are
// already held down do not satisfy the wait.
func (k *Keypad) Await(register uint8) {
	k.awaiting = true
	k.register = register & 0x0F
	k.pending = false
}

// Awaiting returns whether a wait-for-key instruction is in progress.
func (k *Keypad) Awaiting() bool {
	return k.awaiting
}

// Resolve completes a key wait if a key-down transition was latched. It
// returns the target register, the key and whether the wait completed.
func (k *Keypad) Resolve() (register, key uint8, ok bool) {
	if !k.awaiting || !k.pending {
		return 0, 0, false
	}
	k.awaiting = false
	k.pending = false
	return k.register, k.key, true
}

// Reset releases all keys and cancels a pending wait.
func (k *Keypad) Reset() {
	*k = Keypad{}
}

// MarshalBinary encodes the key state and the wait latch.
// Layout: 2 bytes key bitmask, flags, register, key.
func (k Keypad) MarshalBinary() ([]byte, error) {
	var mask uint16
	for i, down := range k.keys {
		if down {
			mask |= 1 << i
		}
	}

	var flags byte
	if k.awaiting {
		flags |= 1
	}
	if k.pending {
		flags |= 2
	}
	return []byte{byte(mask >> 8), byte(mask), flags, k.register, k.key}, nil
}

// UnmarshalBinary restores a keypad encoded by MarshalBinary.
func (k *Keypad) UnmarshalBinary(data []byte) error {
	if len(data) != 5 {
		return fmt.Errorf("invalid keypad image size %d", len(data))
	}
	mask := uint16(data[0])<<8 | uint16(data[1])
	for i := range k.keys {
		k.keys[i] = mask&(1<<i) != 0
	}
	k.awaiting = data[2]&1 != 0
	k.pending = data[2]&2 != 0
	k.register = data[3] & 0x0F
	k.key = data[4] & 0x0F
	return nil
}
