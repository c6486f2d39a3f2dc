//go:build unix

package pane

import (
	"os"
	"os/signal"

	"golang.org/x/sys/unix"
)

func terminalSize(fd int) (int, int, error) {
	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil {
		return 0, 0, err
	}
	return int(ws.Col), int(ws.Row), nil
}

// WatchResize starts listening for SIGWINCH. New sizes arrive on ResizeChan.
func (s *Screen) WatchResize() {
	if s.stop != nil {
		return
	}
	sig := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(sig, unix.SIGWINCH)
	go func() {
		for {
			select {
			case <-sig:
				s.resized()
			case <-done:
				return
			}
		}
	}()
	s.stop = func() {
		signal.Stop(sig)
		close(done)
	}
}
