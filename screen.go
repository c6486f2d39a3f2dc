package pane

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

// LineWriter puts whole lines on the terminal. Lines are absolute rows
// relative to the writer's origin.
type LineWriter interface {
	WriteLines(lines []LineUpdate) error
}

// Size represents dimensions.
type Size struct {
	Width  int
	Height int
}

// Screen is an ANSI LineWriter. Each update moves the cursor to the row,
// clears it and writes the text truncated to the terminal width; a batch is
// sent in one write.
type Screen struct {
	writer io.Writer
	fd     int

	width  int
	height int
	origin int // terminal row of line 0

	origState *term.State
	resize    chan Size
	stop      func()

	buf bytes.Buffer
	mu  sync.Mutex
}

// NewScreen creates a screen writing to w. Pass nil to use os.Stdout.
func NewScreen(w io.Writer) *Screen {
	if w == nil {
		w = os.Stdout
	}
	fd := int(os.Stdout.Fd())
	width, height, err := terminalSize(fd)
	if err != nil {
		width, height = 80, 24
	}
	return &Screen{
		writer: w,
		fd:     fd,
		width:  width,
		height: height,
		resize: make(chan Size, 1),
	}
}

// Size returns the current screen dimensions.
func (s *Screen) Size() Size {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Size{Width: s.width, Height: s.height}
}

// SetSize overrides the detected dimensions.
func (s *Screen) SetSize(width, height int) {
	s.mu.Lock()
	s.width, s.height = width, height
	s.mu.Unlock()
}

// SetOrigin offsets every line by row, for drawing below existing output.
func (s *Screen) SetOrigin(row int) {
	s.mu.Lock()
	s.origin = row
	s.mu.Unlock()
}

// ResizeChan receives the new size after the terminal is resized. Call
// WatchResize first.
func (s *Screen) ResizeChan() <-chan Size {
	return s.resize
}

// WriteLines writes updates in one batch.
func (s *Screen) WriteLines(lines []LineUpdate) error {
	if len(lines) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.buf.Reset()
	var scratch [32]byte
	for _, l := range lines {
		if l.Line < 0 || (s.height > 0 && l.Line+s.origin >= s.height) {
			return fmt.Errorf("%w: row %d of %d", ErrLineOutOfRange, l.Line, s.height)
		}
		b := scratch[:0]
		b = append(b, "\x1b["...)
		b = appendInt(b, l.Line+s.origin+1)
		b = append(b, ";1H\x1b[2K"...)
		s.buf.Write(b)
		text := l.Text
		if s.width > 0 {
			text = runewidth.Truncate(text, s.width, "")
		}
		s.buf.WriteString(text)
	}
	_, err := s.writer.Write(s.buf.Bytes())
	return err
}

// EnterRawMode puts the terminal into raw mode.
func (s *Screen) EnterRawMode() error {
	if s.origState != nil {
		return nil
	}
	st, err := term.MakeRaw(s.fd)
	if err != nil {
		return fmt.Errorf("enter raw mode: %w", err)
	}
	s.origState = st
	return nil
}

// ExitRawMode restores the terminal state saved by EnterRawMode.
func (s *Screen) ExitRawMode() error {
	if s.origState == nil {
		return nil
	}
	err := term.Restore(s.fd, s.origState)
	s.origState = nil
	return err
}

// Close stops resize watching and leaves raw mode.
func (s *Screen) Close() error {
	if s.stop != nil {
		s.stop()
		s.stop = nil
	}
	return s.ExitRawMode()
}

// ShowCursor makes the cursor visible.
func (s *Screen) ShowCursor() {
	io.WriteString(s.writer, "\x1b[?25h")
}

// HideCursor hides the cursor.
func (s *Screen) HideCursor() {
	io.WriteString(s.writer, "\x1b[?25l")
}

func (s *Screen) resized() {
	width, height, err := terminalSize(s.fd)
	if err != nil {
		return
	}
	s.mu.Lock()
	changed := width != s.width || height != s.height
	s.width, s.height = width, height
	s.mu.Unlock()
	if !changed {
		return
	}
	select {
	case s.resize <- Size{Width: width, Height: height}:
	default:
	}
}

// appendInt appends an integer to a byte slice without allocation.
func appendInt(b []byte, n int) []byte {
	if n == 0 {
		return append(b, '0')
	}
	if n < 0 {
		b = append(b, '-')
		n = -n
	}
	var scratch [20]byte
	i := len(scratch)
	for n > 0 {
		i--
		scratch[i] = byte('0' + n%10)
		n /= 10
	}
	return append(b, scratch[i:]...)
}
