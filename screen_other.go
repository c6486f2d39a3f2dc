//go:build !unix

package pane

import "golang.org/x/term"

func terminalSize(fd int) (int, int, error) {
	return term.GetSize(fd)
}

// WatchResize is a no-op where SIGWINCH does not exist.
func (s *Screen) WatchResize() {}
