package pane

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Box drawing characters.
const (
	BoxHorizontal  = '─'
	BoxVertical    = '│'
	BoxTopLeft     = '┌'
	BoxTopRight    = '┐'
	BoxBottomLeft  = '└'
	BoxBottomRight = '┘'

	BoxRoundedTopLeft     = '╭'
	BoxRoundedTopRight    = '╮'
	BoxRoundedBottomLeft  = '╰'
	BoxRoundedBottomRight = '╯'

	BoxDoubleHorizontal  = '═'
	BoxDoubleVertical    = '║'
	BoxDoubleTopLeft     = '╔'
	BoxDoubleTopRight    = '╗'
	BoxDoubleBottomLeft  = '╚'
	BoxDoubleBottomRight = '╝'
)

// BorderStyle defines the characters used for drawing borders.
type BorderStyle struct {
	Horizontal  rune
	Vertical    rune
	TopLeft     rune
	TopRight    rune
	BottomLeft  rune
	BottomRight rune
}

// Standard border styles.
var (
	BorderSingle = BorderStyle{
		Horizontal:  BoxHorizontal,
		Vertical:    BoxVertical,
		TopLeft:     BoxTopLeft,
		TopRight:    BoxTopRight,
		BottomLeft:  BoxBottomLeft,
		BottomRight: BoxBottomRight,
	}
	BorderRounded = BorderStyle{
		Horizontal:  BoxHorizontal,
		Vertical:    BoxVertical,
		TopLeft:     BoxRoundedTopLeft,
		TopRight:    BoxRoundedTopRight,
		BottomLeft:  BoxRoundedBottomLeft,
		BottomRight: BoxRoundedBottomRight,
	}
	BorderDouble = BorderStyle{
		Horizontal:  BoxDoubleHorizontal,
		Vertical:    BoxDoubleVertical,
		TopLeft:     BoxDoubleTopLeft,
		TopRight:    BoxDoubleTopRight,
		BottomLeft:  BoxDoubleBottomLeft,
		BottomRight: BoxDoubleBottomRight,
	}
)

// Orientation is the direction a container lays out its children.
type Orientation int

const (
	Vertical Orientation = iota
	Horizontal
)

func (o Orientation) String() string {
	if o == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// Alignment positions children across the layout axis.
type Alignment int

const (
	AlignStart Alignment = iota
	AlignCenter
	AlignEnd
)

// frame draws border around lines, putting title into the top edge.
func frame(lines []string, title string, border BorderStyle) []string {
	inner := 0
	for _, l := range lines {
		inner = max(inner, runewidth.StringWidth(l))
	}
	if title != "" {
		inner = max(inner, runewidth.StringWidth(title)+2)
	}

	h := string(border.Horizontal)
	out := make([]string, 0, len(lines)+2)

	var top strings.Builder
	top.WriteRune(border.TopLeft)
	if title != "" {
		top.WriteString(h + " " + title + " ")
		top.WriteString(strings.Repeat(h, inner+2-runewidth.StringWidth(title)-3))
	} else {
		top.WriteString(strings.Repeat(h, inner+2))
	}
	top.WriteRune(border.TopRight)
	out = append(out, top.String())

	v := string(border.Vertical)
	for _, l := range lines {
		out = append(out, v+" "+runewidth.FillRight(l, inner)+" "+v)
	}
	out = append(out, string(border.BottomLeft)+strings.Repeat(h, inner+2)+string(border.BottomRight))
	return out
}

// align pads lines to a common width according to a.
func align(lines []string, a Alignment) []string {
	if a == AlignStart {
		return lines
	}
	width := 0
	for _, l := range lines {
		width = max(width, runewidth.StringWidth(l))
	}
	out := make([]string, len(lines))
	for i, l := range lines {
		gap := width - runewidth.StringWidth(l)
		if a == AlignCenter {
			gap /= 2
		}
		out[i] = strings.Repeat(" ", gap) + l
	}
	return out
}

// sideBySide joins columns of lines horizontally with a one-cell gap.
func sideBySide(cols [][]string, a Alignment) []string {
	rows := 0
	widths := make([]int, len(cols))
	for i, c := range cols {
		rows = max(rows, len(c))
		for _, l := range c {
			widths[i] = max(widths[i], runewidth.StringWidth(l))
		}
	}
	out := make([]string, rows)
	for r := range rows {
		var b strings.Builder
		for i, c := range cols {
			offset := 0
			switch a {
			case AlignCenter:
				offset = (rows - len(c)) / 2
			case AlignEnd:
				offset = rows - len(c)
			}
			text := ""
			if j := r - offset; j >= 0 && j < len(c) {
				text = c[j]
			}
			if i > 0 {
				b.WriteByte(' ')
			}
			if i == len(cols)-1 {
				b.WriteString(text)
			} else {
				b.WriteString(runewidth.FillRight(text, widths[i]))
			}
		}
		out[r] = strings.TrimRight(b.String(), " ")
	}
	return out
}

// elide keeps at most n lines, replacing the tail with a "… N more" line.
func elide(lines []string, n int) []string {
	if len(lines) <= n {
		return lines
	}
	if n <= 0 {
		return nil
	}
	out := make([]string, n)
	copy(out, lines[:n-1])
	out[n-1] = fmt.Sprintf("… %d more", len(lines)-(n-1))
	return out
}
