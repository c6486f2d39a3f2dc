package pane

import (
	"fmt"
	"slices"
)

// TextElement displays static lines.
type TextElement struct {
	Base
	lines []string
}

// Text creates an anonymous text element.
func Text(lines ...string) *TextElement {
	return NamedText("", lines...)
}

// NamedText creates a text element with an explicit name.
func NamedText(name string, lines ...string) *TextElement {
	t := &TextElement{lines: slices.Clone(lines)}
	t.init(t, name)
	return t
}

// Textf creates a single line text element with printf-style formatting.
func Textf(format string, args ...any) *TextElement {
	return Text(fmt.Sprintf(format, args...))
}

// SetText replaces the content and fires a content change with the line
// delta.
func (t *TextElement) SetText(lines ...string) error {
	if t.destroyed {
		return ErrDestroyed
	}
	before := t.CalculateSpaceRequirements().CurrentLines
	t.lines = slices.Clone(lines)
	after := t.CalculateSpaceRequirements().CurrentLines
	t.FireChangeEvent(ChangeContent, after-before)
	return nil
}

// Lines returns the full content, ignoring compression.
func (t *TextElement) Lines() []string {
	return slices.Clone(t.lines)
}

// CalculateSpaceRequirements for text allows compression down to a single
// ellipsis line.
func (t *TextElement) CalculateSpaceRequirements() SpaceRequirement {
	if !t.visible {
		return SpaceRequirement{}
	}
	n := len(t.lines)
	cur := n
	if t.budget > 0 && t.budget < n {
		cur = t.budget
	}
	return SpaceRequirement{MinLines: min(n, 1), CurrentLines: cur, MaxLines: n, PreferredLines: n}
}

func (t *TextElement) RenderLines() []string {
	if !t.visible {
		return nil
	}
	return elide(slices.Clone(t.lines), t.CalculateSpaceRequirements().CurrentLines)
}
