package render

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/tilebound/wfc/wfc"
)

// Terminal drives a wfc.State to completion on a tcell.Screen, redrawing
// one cell per output cell each frame. It mirrors the structure of the
// teacher pack's TerminalRenderer (a screen handle plus a RenderFrame
// loop), trimmed down to the one entity this module has: the Wave.
type Terminal struct {
	screen tcell.Screen
	pal    Palette
}

// NewTerminal initializes a tcell.Screen in its default terminal mode.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("render: tcell.NewScreen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("render: screen.Init: %w", err)
	}
	return &Terminal{screen: screen, pal: DefaultPalette()}, nil
}

// Close tears down the terminal screen.
func (t *Terminal) Close() { t.screen.Fini() }

// Run redraws s once per interval until it reaches Finished, an error
// occurs, or the user presses 'q' or Ctrl-C.
func (t *Terminal) Run(s *wfc.State, interval time.Duration) error {
	quit := make(chan struct{})
	go t.watchQuit(quit)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-quit:
			return nil
		case <-ticker.C:
			res, err := s.Step()
			t.renderFrame(s, res, err)
			if err != nil {
				return err
			}
			if res == wfc.Finished {
				return nil
			}
		}
	}
}

func (t *Terminal) watchQuit(quit chan<- struct{}) {
	for {
		ev := t.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventKey:
			if ev.Rune() == 'q' || ev.Key() == tcell.KeyCtrlC || ev.Key() == tcell.KeyEscape {
				close(quit)
				return
			}
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}
}

// renderFrame paints every output cell as one terminal glyph, the block
// character '█' in the cell's blended color, and a one-line status bar
// along the bottom, the same draw-everything-then-Show shape as
// TerminalRenderer.RenderFrame.
func (t *Terminal) renderFrame(s *wfc.State, res wfc.Result, err error) {
	t.screen.Clear()

	outW, outH := s.OutputDimensions()
	for y := 0; y < outH; y++ {
		for x := 0; x < outW; x++ {
			c := t.pal.cellColor(s, x, y)
			r32, g32, b32, _ := c.RGBA()
			style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(r32>>8), int32(g32>>8), int32(b32>>8)))
			t.screen.SetContent(x, y, '█', nil, style)
		}
	}

	status := fmt.Sprintf(" %s ", res)
	if err != nil {
		status = fmt.Sprintf(" %s: %v ", res, err)
	}
	statusStyle := tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite)
	for i, ch := range status {
		t.screen.SetContent(i, outH, ch, nil, statusStyle)
	}

	t.screen.Show()
}
