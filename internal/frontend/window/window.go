// Package window implements the ebiten frontend: it renders the display,
// maps the keyboard onto the keypad and the debug controls and drives the
// scheduler once per frame.
package window

import (
	"context"
	"fmt"
	"image/color"
	"time"

	"github.com/crumblingstatue/crusty-chip/internal/debugger"
	"github.com/crumblingstatue/crusty-chip/internal/display"
	"github.com/crumblingstatue/crusty-chip/internal/scheduler"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/image/font/basicfont"
)

// Title is the window title.
const Title = "crusty-chip"

var overlayColor = color.RGBA{R: 0xFF, G: 0x40, B: 0x40, A: 0xFF}

// Beeper is switched on while the sound timer is active.
type Beeper interface {
	SetActive(active bool)
}

// Window is an ebiten game that runs a controller.
type Window struct {
	ctx    context.Context
	logger *log.Logger
	ctrl   *debugger.Controller
	sched  *scheduler.Scheduler
	beeper Beeper
	scale  int

	image  *ebiten.Image
	pixels []byte
	last   time.Time
}

// New returns a window frontend. beeper may be nil.
func New(ctx context.Context, logger *log.Logger, ctrl *debugger.Controller,
	sched *scheduler.Scheduler, beeper Beeper, scale int) *Window {

	return &Window{
		ctx:    ctx,
		logger: logger,
		ctrl:   ctrl,
		sched:  sched,
		beeper: beeper,
		scale:  scale,
		pixels: make([]byte, display.Width*display.Height*4),
	}
}

// Run opens the window and blocks until it is closed or the context is
// canceled.
func (w *Window) Run() error {
	ebiten.SetWindowSize(display.Width*w.scale, display.Height*w.scale)
	ebiten.SetWindowTitle(Title)
	ebiten.SetWindowResizable(true)
	ebiten.SetTPS(ebiten.DefaultTPS)

	if err := ebiten.RunGame(w); err != nil {
		return fmt.Errorf("running window: %w", err)
	}
	if w.beeper != nil {
		w.beeper.SetActive(false)
	}
	return w.ctx.Err()
}

// Update handles input and advances the machine by the time elapsed since
// the previous frame.
func (w *Window) Update() error {
	if w.ctx.Err() != nil || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	w.handleMetaKeys()
	w.handleKeypad()

	now := time.Now()
	var elapsed time.Duration
	if !w.last.IsZero() {
		elapsed = now.Sub(w.last)
	}
	w.last = now

	// faults are logged and pause the controller
	_ = w.sched.Advance(elapsed)

	if w.beeper != nil {
		w.beeper.SetActive(!w.ctrl.Paused() && w.ctrl.Machine().SoundActive())
	}
	return nil
}

// Draw renders the framebuffer and the pause overlay.
func (w *Window) Draw(screen *ebiten.Image) {
	m := w.ctrl.Machine()
	if w.image == nil {
		w.image = ebiten.NewImage(display.Width, display.Height)
		m.DisplayChanged()
		renderPixels(w.pixels, m.Framebuffer())
		w.image.WritePixels(w.pixels)
	} else if m.DisplayChanged() {
		renderPixels(w.pixels, m.Framebuffer())
		w.image.WritePixels(w.pixels)
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(w.scale), float64(w.scale))
	screen.DrawImage(w.image, op)

	if w.ctrl.Paused() {
		face := basicfont.Face7x13
		label := pauseLabel(m.Registers().PC, w.ctrl.SlotUsed)
		text.Draw(screen, label, face, 4, face.Metrics().Ascent.Ceil()+2, overlayColor)
	}
}

// Layout keeps the logical screen at the scaled display size.
func (w *Window) Layout(_, _ int) (int, int) {
	return display.Width * w.scale, display.Height * w.scale
}

func (w *Window) handleMetaKeys() {
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight)
	shift := ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight)

	for _, key := range inpututil.AppendJustPressedKeys(nil) {
		act, slot := metaAction(key, ctrl, shift)
		if err := w.perform(act, slot); err != nil {
			w.logger.Warn("Debug control failed", log.Err(err))
		}
	}
}

func (w *Window) perform(act action, slot int) error {
	switch act {
	case actionTogglePause:
		w.ctrl.TogglePause()
	case actionStep:
		if !w.ctrl.Paused() {
			return nil
		}
		return w.ctrl.SingleStep()
	case actionRestart:
		w.ctrl.Restart()
	case actionSave:
		return w.ctrl.SaveState(slot)
	case actionLoad:
		return w.ctrl.LoadState(slot)
	case actionNone:
	}
	return nil
}

func (w *Window) handleKeypad() {
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight)
	m := w.ctrl.Machine()

	for _, binding := range keypadBindings {
		pressed, changed := keypadTransition(binding.key,
			inpututil.IsKeyJustPressed(binding.key),
			inpututil.IsKeyJustReleased(binding.key), ctrl)
		if !changed {
			continue
		}
		if err := m.SetKey(binding.code, pressed); err != nil {
			w.logger.Error("Setting key failed", log.Err(err))
		}
	}
}
