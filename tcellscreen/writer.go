// Package tcellscreen draws pane line updates onto a tcell screen.
package tcellscreen

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/kungfusheep/pane"
)

// Writer implements pane.LineWriter on a tcell.Screen. The screen must
// already be initialised.
type Writer struct {
	screen tcell.Screen
	style  tcell.Style
	origin int
}

// New creates a writer drawing on screen with the default style.
func New(screen tcell.Screen) *Writer {
	return &Writer{screen: screen, style: tcell.StyleDefault}
}

// WithStyle sets the style lines are drawn with.
func (w *Writer) WithStyle(st tcell.Style) *Writer {
	w.style = st
	return w
}

// WithOrigin offsets every line by row.
func (w *Writer) WithOrigin(row int) *Writer {
	w.origin = row
	return w
}

// WriteLines clears each updated row, draws its text clipped to the screen
// width and shows the result once.
func (w *Writer) WriteLines(lines []pane.LineUpdate) error {
	if len(lines) == 0 {
		return nil
	}
	width, height := w.screen.Size()
	for _, l := range lines {
		row := l.Line + w.origin
		if row < 0 || row >= height {
			return fmt.Errorf("%w: row %d of %d", pane.ErrLineOutOfRange, row, height)
		}
		for x := 0; x < width; x++ {
			w.screen.SetContent(x, row, ' ', nil, w.style)
		}
		x := 0
		for _, r := range l.Text {
			rw := runewidth.RuneWidth(r)
			if rw == 0 {
				continue
			}
			if x+rw > width {
				break
			}
			w.screen.SetContent(x, row, r, nil, w.style)
			x += rw
		}
	}
	w.screen.Show()
	return nil
}

var _ pane.LineWriter = (*Writer)(nil)
