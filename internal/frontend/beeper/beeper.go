// Package beeper plays the CHIP-8 tone while the sound timer is active.
package beeper

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"
	"sync/atomic"

	"github.com/ebitengine/oto/v3"
)

const (
	// SampleRate of the generated tone.
	SampleRate = 44100
	// Frequency of the square wave tone in Hz.
	Frequency = 440
	// Volume is the amplitude of the square wave.
	Volume = 0.15

	bytesPerSample = 4 // mono float32
)

// Beeper plays a square wave through oto whenever it is active.
type Beeper struct {
	ctx    *oto.Context
	player *oto.Player
	tone   *tone
	mutex  sync.Mutex
}

// New creates the audio context and starts the player. The player outputs
// silence until SetActive(true) is called.
func New() (*Beeper, error) {
	op := &oto.NewContextOptions{
		SampleRate:   SampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
		BufferSize:   0,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("creating audio context: %w", err)
	}
	<-ready

	b := &Beeper{
		ctx:  ctx,
		tone: newTone(SampleRate, Frequency, Volume),
	}
	b.player = ctx.NewPlayer(b.tone)
	b.player.Play()
	return b, nil
}

// SetActive switches the tone on or off.
func (b *Beeper) SetActive(active bool) {
	b.tone.active.Store(active)
}

// Close stops playback.
func (b *Beeper) Close() error {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	if b.player == nil {
		return nil
	}
	err := b.player.Close()
	b.player = nil
	if err != nil {
		return fmt.Errorf("closing audio player: %w", err)
	}
	return nil
}

// tone is an endless square wave stream that is gated by an atomic flag,
// the audio callback never blocks on the emulation.
type tone struct {
	active    atomic.Bool
	period    int // samples per wave period
	position  int
	amplitude float32
}

func newTone(sampleRate, frequency int, volume float32) *tone {
	return &tone{
		period:    sampleRate / frequency,
		amplitude: volume,
	}
}

// Read fills p with float32 little endian samples.
func (t *tone) Read(p []byte) (int, error) {
	n := len(p) / bytesPerSample * bytesPerSample
	active := t.active.Load()

	for i := 0; i < n; i += bytesPerSample {
		var sample float32
		if active {
			sample = t.amplitude
			if t.position >= t.period/2 {
				sample = -t.amplitude
			}
			t.position = (t.position + 1) % t.period
		} else {
			t.position = 0
		}
		binary.LittleEndian.PutUint32(p[i:], math.Float32bits(sample))
	}
	return n, nil
}
