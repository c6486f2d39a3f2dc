package tcellscreen

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kungfusheep/pane"
)

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("")
	require.NoError(t, s.Init())
	s.SetSize(w, h)
	t.Cleanup(s.Fini)
	return s
}

func row(s tcell.Screen, y int) string {
	w, _ := s.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := s.GetContent(x, y)
		if r == 0 {
			r = ' '
		}
		b.WriteRune(r)
	}
	return strings.TrimRight(b.String(), " ")
}

func TestWriteLines(t *testing.T) {
	s := newScreen(t, 8, 3)
	w := New(s)

	require.NoError(t, w.WriteLines([]pane.LineUpdate{
		{Line: 0, Text: "hello"},
		{Line: 2, Text: "truncated text"},
	}))
	assert.Equal(t, "hello", row(s, 0))
	assert.Equal(t, "", row(s, 1))
	assert.Equal(t, "truncate", row(s, 2))

	require.NoError(t, w.WriteLines([]pane.LineUpdate{{Line: 0, Text: "hi"}}))
	assert.Equal(t, "hi", row(s, 0), "old text is cleared")
}

func TestWriteLinesOrigin(t *testing.T) {
	s := newScreen(t, 10, 3)
	w := New(s).WithOrigin(1)
	require.NoError(t, w.WriteLines([]pane.LineUpdate{{Line: 0, Text: "x"}}))
	assert.Equal(t, "x", row(s, 1))

	err := w.WriteLines([]pane.LineUpdate{{Line: 2, Text: "y"}})
	assert.ErrorIs(t, err, pane.ErrLineOutOfRange)
}

func TestWriteLinesStyle(t *testing.T) {
	s := newScreen(t, 4, 1)
	st := tcell.StyleDefault.Bold(true)
	require.NoError(t, New(s).WithStyle(st).WriteLines([]pane.LineUpdate{{Line: 0, Text: "a"}}))
	_, _, got, _ := s.GetContent(0, 0)
	assert.Equal(t, st, got)
}

func TestRenderPage(t *testing.T) {
	s := newScreen(t, 20, 4)
	p := pane.NewPage(4, pane.WithTitle("Title"))
	require.NoError(t, p.Add(pane.Input("name", "Name")))

	require.NoError(t, p.Render(New(s)))
	assert.Equal(t, "Title", row(s, 0))
	assert.Equal(t, "› Name:", row(s, 1))
}
