package pane

import "fmt"

// SpaceRequirement describes how many terminal lines an element wants and how
// far it can flex.
type SpaceRequirement struct {
	MinLines       int
	CurrentLines   int
	MaxLines       int
	PreferredLines int
}

// FixedLines returns a requirement that can neither grow nor shrink.
func FixedLines(n int) SpaceRequirement {
	return SpaceRequirement{MinLines: n, CurrentLines: n, MaxLines: n, PreferredLines: n}
}

// Validate checks the ordering constraints between the four fields.
func (r SpaceRequirement) Validate() error {
	switch {
	case r.MinLines < 0 || r.CurrentLines < 0 || r.MaxLines < 0 || r.PreferredLines < 0:
		return fmt.Errorf("%w: negative line count in %+v", ErrInvalidRequirement, r)
	case r.MinLines > r.CurrentLines || r.CurrentLines > r.MaxLines:
		return fmt.Errorf("%w: want min <= current <= max, got %+v", ErrInvalidRequirement, r)
	case r.PreferredLines < r.MinLines || r.PreferredLines > r.MaxLines:
		return fmt.Errorf("%w: preferred outside [min, max] in %+v", ErrInvalidRequirement, r)
	}
	return nil
}

// Clamp limits n to [MinLines, MaxLines].
func (r SpaceRequirement) Clamp(n int) int {
	if n < r.MinLines {
		return r.MinLines
	}
	if n > r.MaxLines {
		return r.MaxLines
	}
	return n
}

// Compressible reports whether n lines is still a usable size.
func (r SpaceRequirement) Compressible(n int) bool {
	return n >= r.MinLines
}

// BufferPosition is the contiguous, zero-based line range an element holds in
// the virtual buffer.
type BufferPosition struct {
	StartLine      int
	AllocatedLines int
}

// End returns the line just past the range.
func (p BufferPosition) End() int {
	return p.StartLine + p.AllocatedLines
}

// Contains reports whether an absolute line falls inside the range.
func (p BufferPosition) Contains(line int) bool {
	return line >= p.StartLine && line < p.End()
}

// LineUpdate is one line of text. Inside a BufferDelta Line is relative to the
// element's region; in flush output it is an absolute terminal line.
type LineUpdate struct {
	Line int
	Text string
}

// BufferDelta is the minimal edit that brings a rendered region up to date.
// A non-zero SpaceChange resizes the region before the updates are applied.
type BufferDelta struct {
	LineUpdates []LineUpdate
	SpaceChange int
	ClearLines  []int
}

// Empty reports whether applying the delta would change nothing.
func (d BufferDelta) Empty() bool {
	return len(d.LineUpdates) == 0 && d.SpaceChange == 0 && len(d.ClearLines) == 0
}

// DiffLines computes the delta that turns prev into next. Only lines whose
// text differs are included.
func DiffLines(prev, next []string) BufferDelta {
	d := BufferDelta{SpaceChange: len(next) - len(prev)}
	for i, text := range next {
		if i < len(prev) && prev[i] == text {
			continue
		}
		d.LineUpdates = append(d.LineUpdates, LineUpdate{Line: i, Text: text})
	}
	return d
}
