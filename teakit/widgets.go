// Package teakit is a pane toolkit built on bubbletea. Widgets are drawn with
// lipgloss, inputs use bubbles/textinput and keys are matched with
// bubbles/key.
package teakit

import (
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kungfusheep/pane"
)

// Widget is a pane widget that draws itself and reacts to keys.
type Widget interface {
	pane.Widget
	View() string
	Update(msg tea.KeyMsg) tea.Cmd
}

func viewOf(w pane.Widget) string {
	if v, ok := w.(Widget); ok {
		return v.View()
	}
	return ""
}

// InputWidget is a single line text input.
type InputWidget struct {
	ti      textinput.Model
	label   string
	focused bool
	styles  *styles
}

func newInput(c *pane.Component, st *styles) *InputWidget {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = c.GetPlaceholder()
	ti.SetValue(c.Value().String())
	if n, ok := c.GetConfig("char_limit"); ok {
		if limit, ok := n.(int); ok {
			ti.CharLimit = limit
		}
	}
	if m, ok := c.GetConfig("mask"); ok && m == true {
		ti.EchoMode = textinput.EchoPassword
	}
	return &InputWidget{ti: ti, label: c.Label(), styles: st}
}

func (w *InputWidget) Focus() {
	w.focused = true
	w.ti.Focus()
}

func (w *InputWidget) Blur() {
	w.focused = false
	w.ti.Blur()
}

func (w *InputWidget) Value() string     { return w.ti.Value() }
func (w *InputWidget) SetValue(s string) { w.ti.SetValue(s) }
func (w *InputWidget) Focused() bool     { return w.focused }

func (w *InputWidget) Update(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	w.ti, cmd = w.ti.Update(msg)
	return cmd
}

func (w *InputWidget) View() string {
	return w.styles.marker(w.focused) + w.label + ": " + w.ti.View()
}

// ChoiceWidget is a select list or radio group. A select follows the cursor;
// a radio group selects with the toggle or press key.
type ChoiceWidget struct {
	label    string
	choices  []string
	cursor   int
	selected int
	radio    bool
	focused  bool
	keys     *KeyMap
	styles   *styles
}

func newChoice(c *pane.Component, radio bool, keys *KeyMap, st *styles) *ChoiceWidget {
	w := &ChoiceWidget{
		label:    c.Label(),
		choices:  c.GetChoices(),
		selected: -1,
		radio:    radio,
		keys:     keys,
		styles:   st,
	}
	if i := slices.Index(w.choices, c.Value().String()); i >= 0 {
		w.cursor, w.selected = i, i
	} else if !radio && len(w.choices) > 0 {
		w.selected = 0
	}
	return w
}

func (w *ChoiceWidget) Focus()        { w.focused = true }
func (w *ChoiceWidget) Blur()         { w.focused = false }
func (w *ChoiceWidget) Focused() bool { return w.focused }

// Selected returns the selected choice, or "" when nothing is selected.
func (w *ChoiceWidget) Selected() string {
	if w.selected < 0 || w.selected >= len(w.choices) {
		return ""
	}
	return w.choices[w.selected]
}

func (w *ChoiceWidget) Update(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, w.keys.Up):
		if w.cursor > 0 {
			w.cursor--
		}
	case key.Matches(msg, w.keys.Down):
		if w.cursor < len(w.choices)-1 {
			w.cursor++
		}
	case key.Matches(msg, w.keys.Toggle, w.keys.Press):
		w.selected = w.cursor
		return nil
	default:
		return nil
	}
	if !w.radio {
		w.selected = w.cursor
	}
	return nil
}

func (w *ChoiceWidget) View() string {
	lines := make([]string, 0, 1+len(w.choices))
	lines = append(lines, w.styles.marker(w.focused)+w.label)
	for i, choice := range w.choices {
		var mark string
		switch {
		case w.radio && i == w.selected:
			mark = "◉"
		case w.radio:
			mark = "○"
		case i == w.selected:
			mark = "❯"
		default:
			mark = " "
		}
		line := "  " + mark + " " + choice
		if w.focused && i == w.cursor {
			line = w.styles.accent.Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// CheckboxWidget is a list of independently checked choices.
type CheckboxWidget struct {
	label   string
	choices []string
	checked map[int]bool
	cursor  int
	focused bool
	keys    *KeyMap
	styles  *styles
}

func newCheckbox(c *pane.Component, keys *KeyMap, st *styles) *CheckboxWidget {
	w := &CheckboxWidget{
		label:   c.Label(),
		choices: c.GetChoices(),
		checked: make(map[int]bool),
		keys:    keys,
		styles:  st,
	}
	if lv, ok := c.Value().(pane.ListValue); ok {
		for i, choice := range w.choices {
			w.checked[i] = lv.Contains(choice)
		}
	}
	return w
}

func (w *CheckboxWidget) Focus()        { w.focused = true }
func (w *CheckboxWidget) Blur()         { w.focused = false }
func (w *CheckboxWidget) Focused() bool { return w.focused }

// Checked returns the checked choices in list order.
func (w *CheckboxWidget) Checked() []string {
	var out []string
	for i, choice := range w.choices {
		if w.checked[i] {
			out = append(out, choice)
		}
	}
	return out
}

func (w *CheckboxWidget) Update(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, w.keys.Up):
		if w.cursor > 0 {
			w.cursor--
		}
	case key.Matches(msg, w.keys.Down):
		if w.cursor < len(w.choices)-1 {
			w.cursor++
		}
	case key.Matches(msg, w.keys.Toggle):
		if len(w.choices) > 0 {
			w.checked[w.cursor] = !w.checked[w.cursor]
		}
	}
	return nil
}

func (w *CheckboxWidget) View() string {
	lines := make([]string, 0, 1+len(w.choices))
	lines = append(lines, w.styles.marker(w.focused)+w.label)
	for i, choice := range w.choices {
		box := "[ ]"
		if w.checked[i] {
			box = "[x]"
		}
		line := "  " + box + " " + choice
		if w.focused && i == w.cursor {
			line = w.styles.accent.Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// ButtonWidget records whether it has been pressed.
type ButtonWidget struct {
	label   string
	pressed bool
	focused bool
	keys    *KeyMap
	styles  *styles
}

func newButton(c *pane.Component, keys *KeyMap, st *styles) *ButtonWidget {
	pressed, _ := c.Value().(pane.PressValue)
	return &ButtonWidget{label: c.Label(), pressed: bool(pressed), keys: keys, styles: st}
}

func (w *ButtonWidget) Focus()        { w.focused = true }
func (w *ButtonWidget) Blur()         { w.focused = false }
func (w *ButtonWidget) Focused() bool { return w.focused }
func (w *ButtonWidget) Pressed() bool { return w.pressed }

func (w *ButtonWidget) Update(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, w.keys.Press, w.keys.Toggle) {
		w.pressed = true
	}
	return nil
}

func (w *ButtonWidget) View() string {
	label := "[ " + w.label + " ]"
	if w.focused {
		return w.styles.accent.Render(label)
	}
	return label
}

type textWidget struct {
	lines []string
}

func (w *textWidget) Focus()                    {}
func (w *textWidget) Blur()                     {}
func (w *textWidget) Update(tea.KeyMsg) tea.Cmd { return nil }
func (w *textWidget) View() string              { return strings.Join(w.lines, "\n") }

type stackWidget struct {
	orientation pane.Orientation
	alignment   pane.Alignment
	children    []pane.Widget
}

func (w *stackWidget) Focus()                    {}
func (w *stackWidget) Blur()                     {}
func (w *stackWidget) Update(tea.KeyMsg) tea.Cmd { return nil }

func (w *stackWidget) View() string {
	var views []string
	for _, ch := range w.children {
		if v := viewOf(ch); v != "" {
			views = append(views, v)
		}
	}
	if w.orientation == pane.Horizontal {
		gapped := make([]string, 0, 2*len(views))
		for i, v := range views {
			if i > 0 {
				gapped = append(gapped, " ")
			}
			gapped = append(gapped, v)
		}
		return lipgloss.JoinHorizontal(vertical(w.alignment), gapped...)
	}
	return lipgloss.JoinVertical(horizontal(w.alignment), views...)
}

func horizontal(a pane.Alignment) lipgloss.Position {
	switch a {
	case pane.AlignCenter:
		return lipgloss.Center
	case pane.AlignEnd:
		return lipgloss.Right
	}
	return lipgloss.Left
}

func vertical(a pane.Alignment) lipgloss.Position {
	switch a {
	case pane.AlignCenter:
		return lipgloss.Center
	case pane.AlignEnd:
		return lipgloss.Bottom
	}
	return lipgloss.Top
}

type frameWidget struct {
	child  pane.Widget
	title  string
	class  string
	styles *styles
}

func (w *frameWidget) Focus()                    {}
func (w *frameWidget) Blur()                     {}
func (w *frameWidget) Update(tea.KeyMsg) tea.Cmd { return nil }

func (w *frameWidget) View() string {
	body := viewOf(w.child)
	if w.title != "" {
		body = lipgloss.JoinVertical(lipgloss.Left, w.styles.title.Render(w.title), body)
	}
	return w.styles.frame(w.class).Render(body)
}

type conditionalWidget struct {
	child   pane.Widget
	visible func() bool
}

func (w *conditionalWidget) Focus() { w.child.Focus() }
func (w *conditionalWidget) Blur()  { w.child.Blur() }

func (w *conditionalWidget) Update(msg tea.KeyMsg) tea.Cmd {
	if u, ok := w.child.(Widget); ok {
		return u.Update(msg)
	}
	return nil
}

func (w *conditionalWidget) View() string {
	if !w.visible() {
		return ""
	}
	return viewOf(w.child)
}
