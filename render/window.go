package render

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/tilebound/wfc/wfc"
)

// Window is an ebiten.Game that steps a wfc.State once per tick and
// draws its current Wave, scaled by Factor. It is the same
// Layout/Draw/Update shape as the teacher's console.Bus, with Update
// driving generation instead of a 6502.
type Window struct {
	State  *wfc.State
	Pal    Palette
	Factor int

	// StepsPerTick bounds how many Step calls run per Update, so a huge
	// output doesn't look instant and a tiny one doesn't stall.
	StepsPerTick int

	done bool
	err  error
}

// NewWindow builds a Window with sane defaults and sizes the ebiten
// window to the scaled output resolution, the way console.New sizes it
// to 2x the PPU resolution.
func NewWindow(s *wfc.State, factor int) *Window {
	if factor <= 0 {
		factor = 1
	}
	w := &Window{State: s, Pal: DefaultPalette(), Factor: factor, StepsPerTick: 1}

	outW, outH := s.OutputDimensions()
	ebiten.SetWindowSize(outW*factor, outH*factor)
	ebiten.SetWindowTitle("wfc")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	return w
}

// Layout returns the constant output resolution, forcing ebiten to
// scale the display rather than reflow it, matching console.Bus.Layout.
func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	outW, outH := w.State.OutputDimensions()
	return outW * w.Factor, outH * w.Factor
}

// Update steps the generator. It stops stepping (but keeps the window
// open) once Finished or an error is returned.
func (w *Window) Update() error {
	if w.done {
		return nil
	}
	for i := 0; i < w.StepsPerTick; i++ {
		res, err := w.State.Step()
		if err != nil {
			w.done = true
			w.err = err
			return nil
		}
		if res == wfc.Finished {
			w.done = true
			return nil
		}
	}
	return nil
}

// Draw renders the current Wave into screen.
func (w *Window) Draw(screen *ebiten.Image) {
	img := Image(w.State, w.Pal)
	up := Upscale(img, w.Factor)

	rect := up.Bounds()
	for y := 0; y < rect.Dy(); y++ {
		for x := 0; x < rect.Dx(); x++ {
			screen.Set(x, y, up.At(x, y))
		}
	}

	if w.err != nil {
		ebiten.SetWindowTitle(fmt.Sprintf("wfc - error: %v", w.err))
	}
}

// Run opens a window and drives generation until Finished, an error, or
// the window is closed.
func Run(s *wfc.State, factor int) error {
	w := NewWindow(s, factor)
	if err := ebiten.RunGame(w); err != nil {
		return fmt.Errorf("render: ebiten run: %w", err)
	}
	return w.err
}
