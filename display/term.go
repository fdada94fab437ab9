package display

import (
	"context"
	"fmt"
	"image"

	"github.com/gdamore/tcell/v2"
	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/mandel"
)

// halfBlock paints two pixels per cell: foreground on top, background below.
const halfBlock = '▀'

// TermSink shows the frame in a terminal with tcell. Each cell carries two
// vertically stacked pixels so a square image stays square.
type TermSink struct {
	screen    tcell.Screen
	NoOverlay bool
}

// NewTermSink returns a sink drawing to screen. A nil screen means the
// controlling terminal, opened on Present.
func NewTermSink(screen tcell.Screen) *TermSink {
	return &TermSink{screen: screen}
}

type termAction uint8

const (
	actionNone termAction = iota
	actionRedraw
	actionQuit
)

// Present draws f and waits until the user presses Esc, q or Ctrl-C, or
// ctx is done. Resizes redraw the frame. Both exits return nil.
func (s *TermSink) Present(ctx context.Context, f Frame) error {
	if f.Image == nil {
		return ErrNoImage
	}

	screen := s.screen
	if screen == nil {
		var err error
		if screen, err = tcell.NewScreen(); err != nil {
			return fmt.Errorf("display: open terminal: %w", err)
		}
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("display: init terminal: %w", err)
	}
	defer screen.Fini()

	// PollEvent returns nil once Fini runs, which ends the reader.
	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	s.draw(screen, f)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			switch handleEvent(ev) {
			case actionQuit:
				return nil
			case actionRedraw:
				screen.Sync()
				s.draw(screen, f)
			}
		}
	}
}

func handleEvent(ev tcell.Event) termAction {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return actionQuit
		case tcell.KeyRune:
			switch {
			case ev.Rune() == 'q', ev.Rune() == 'Q':
				return actionQuit
			case ev.Rune() == 'c' && ev.Modifiers()&tcell.ModCtrl != 0:
				return actionQuit
			}
		}
	case *tcell.EventResize:
		return actionRedraw
	}
	return actionNone
}

// cellArea returns the largest square, in pixels, that fits a w x h cell
// screen at two pixels per cell row.
func cellArea(w, h int) image.Rectangle {
	side := min(w, 2*h)
	side -= side % 2
	return image.Rect(0, 0, side, side)
}

func (s *TermSink) draw(screen tcell.Screen, f Frame) {
	screen.Clear()

	w, h := screen.Size()
	area := cellArea(w, h)
	if area.Empty() {
		screen.Show()
		return
	}

	scaled := image.NewRGBA(area)
	xdraw.ApproxBiLinear.Scale(scaled, area, f.Image, f.Image.Bounds(), xdraw.Src, nil)

	for row := 0; row < area.Dy()/2; row++ {
		for x := 0; x < area.Dx(); x++ {
			top := scaled.RGBAAt(x, 2*row)
			bottom := scaled.RGBAAt(x, 2*row+1)
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B))).
				Background(tcell.NewRGBColor(int32(bottom.R), int32(bottom.G), int32(bottom.B)))
			screen.SetContent(x, row, halfBlock, nil, style)
		}
	}

	if !s.NoOverlay {
		caption := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
		drawText(screen, 2, 1, f.Caption, caption)
	}
	screen.Show()

	mandel.Logger().Debug("terminal frame drawn", "cols", w, "rows", h, "side", area.Dx())
}

func drawText(screen tcell.Screen, x, y int, text string, style tcell.Style) {
	w, h := screen.Size()
	if y >= h {
		return
	}
	for _, r := range text {
		if x >= w {
			return
		}
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}
