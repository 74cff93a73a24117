package terminal

import (
	"github.com/gdamore/tcell/v2"
	"github.com/trompeet/gridglow/surface"
)

// View presents a surface inside a terminal using half-block
// characters: each screen cell carries two stacked pixels, the top one
// as the foreground of '▀' and the bottom one as the background. Mouse
// reporting is never enabled, so the terminal keeps its normal scroll
// and selection gestures.
type View struct {
	screen tcell.Screen
	events chan tcell.Event
}

// NewView opens and initializes the default terminal screen
func NewView() (*View, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	return newView(screen), nil
}

// NewViewWithScreen wraps an already initialized screen, used by tests
// with a simulation screen
func NewViewWithScreen(screen tcell.Screen) *View {
	return newView(screen)
}

func newView(screen tcell.Screen) *View {
	v := &View{
		screen: screen,
		events: make(chan tcell.Event, 100),
	}
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				// Screen finalized
				close(v.events)
				return
			}
			v.events <- ev
		}
	}()
	return v
}

// PixelSize returns the drawable pixel dimensions: one pixel per
// column, two pixels per row
func (v *View) PixelSize() (int, int) {
	cols, rows := v.screen.Size()
	return cols, rows * 2
}

// Events returns the terminal event stream. The channel closes when
// the screen is finalized.
func (v *View) Events() <-chan tcell.Event {
	return v.events
}

// Present draws the surface onto the screen, pairing each column's
// vertically adjacent pixels into one half-block cell, then flushes
func (v *View) Present(s *surface.Surface) {
	cols, rows := v.screen.Size()
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			top := s.At(col, row*2)
			bottom := s.At(col, row*2+1)
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B))).
				Background(tcell.NewRGBColor(int32(bottom.R), int32(bottom.G), int32(bottom.B)))
			v.screen.SetContent(col, row, '▀', nil, style)
		}
	}
	v.screen.Show()
}

// Fini restores the terminal. The event goroutine drains out on the
// nil event that follows.
func (v *View) Fini() {
	v.screen.Fini()
}
