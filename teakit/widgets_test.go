package teakit

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kungfusheep/pane"
)

var (
	keyTab      = tea.KeyMsg{Type: tea.KeyTab}
	keyShiftTab = tea.KeyMsg{Type: tea.KeyShiftTab}
	keyDown     = tea.KeyMsg{Type: tea.KeyDown}
	keyUp       = tea.KeyMsg{Type: tea.KeyUp}
	keyEnter    = tea.KeyMsg{Type: tea.KeyEnter}
	keySpace    = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	keyEsc      = tea.KeyMsg{Type: tea.KeyEsc}
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestInputWidget(t *testing.T) {
	tk := New(pane.ThemeMonochrome)
	c := pane.Input("name", "Name").Default(pane.TextValue("a"))
	w := tk.Input(c).(*InputWidget)
	assert.Equal(t, "a", w.Value())

	w.Update(runes("b"))
	assert.Equal(t, "a", w.Value(), "blurred inputs ignore keys")

	w.Focus()
	assert.True(t, w.Focused())
	w.Update(runes("da"))
	assert.Equal(t, "ada", w.Value())
	assert.Contains(t, w.View(), "Name: ")
}

func TestInputWidgetMaskAndLimit(t *testing.T) {
	tk := New(pane.ThemeMonochrome)
	c := pane.Input("pw", "Password").Config("mask", true).Config("char_limit", 3)
	w := tk.Input(c).(*InputWidget)
	w.Focus()
	w.Update(runes("secret"))

	assert.Equal(t, "sec", w.Value())
	assert.NotContains(t, w.View(), "sec")
}

func TestSelectFollowsCursor(t *testing.T) {
	tk := New(pane.ThemeMonochrome)
	w := tk.Select(pane.Select("plan", "Plan", "Free", "Pro", "Team")).(*ChoiceWidget)
	assert.Equal(t, "Free", w.Selected())

	w.Update(keyDown)
	w.Update(keyDown)
	w.Update(keyDown)
	assert.Equal(t, "Team", w.Selected())
	w.Update(keyUp)
	assert.Equal(t, "Pro", w.Selected())
	assert.Contains(t, w.View(), "❯ Pro")
}

func TestRadioSelectsOnToggle(t *testing.T) {
	tk := New(pane.ThemeMonochrome)
	w := tk.Radio(pane.Radio("size", "Size", "S", "M")).(*ChoiceWidget)
	assert.Equal(t, "", w.Selected())

	w.Update(keyDown)
	assert.Equal(t, "", w.Selected())
	w.Update(keySpace)
	assert.Equal(t, "M", w.Selected())
	assert.Contains(t, w.View(), "◉ M")
	assert.Contains(t, w.View(), "○ S")
}

func TestCheckboxWidget(t *testing.T) {
	tk := New(pane.ThemeMonochrome)
	c := pane.CheckboxList("t", "Topics", "go", "rust", "zig").Default(pane.ListValue{"zig"})
	w := tk.CheckboxList(c).(*CheckboxWidget)
	assert.Equal(t, []string{"zig"}, w.Checked())

	w.Update(keySpace)
	w.Update(keyDown)
	w.Update(runes("x"))
	assert.Equal(t, []string{"go", "rust", "zig"}, w.Checked())

	w.Update(keySpace)
	assert.Equal(t, []string{"go", "zig"}, w.Checked())
	assert.Contains(t, w.View(), "[ ] rust")
}

func TestButtonWidget(t *testing.T) {
	tk := New(pane.ThemeMonochrome)
	w := tk.Button(pane.Button("go", "Submit")).(*ButtonWidget)
	assert.False(t, w.Pressed())
	w.Update(keyDown)
	assert.False(t, w.Pressed())
	w.Update(keyEnter)
	assert.True(t, w.Pressed())
	assert.Equal(t, "[ Submit ]", w.View())
}

func TestLayoutWidgets(t *testing.T) {
	tk := New(pane.ThemeMonochrome)
	a := tk.Text([]string{"ab", "c"})
	b := tk.Text([]string{"x"})

	v := tk.Stack(pane.Vertical, pane.AlignStart, []pane.Widget{a, b}).(Widget)
	assert.Equal(t, "ab\nc \nx ", v.View())

	h := tk.Stack(pane.Horizontal, pane.AlignStart, []pane.Widget{a, b}).(Widget)
	assert.Equal(t, "ab x\nc   ", h.View())

	shown := true
	cond := tk.Conditional(a, func() bool { return shown }).(Widget)
	assert.Equal(t, "ab\nc", cond.View())
	shown = false
	assert.Empty(t, cond.View())

	f := tk.Frame(b, "Box", "accent").(Widget)
	view := f.View()
	assert.True(t, strings.HasPrefix(view, "╭"), view)
	assert.Contains(t, view, "Box")
	assert.Contains(t, view, "x")
}

func TestStylesApply(t *testing.T) {
	tk := New(pane.ThemeDark)
	def := tk.styles.frame("accent")
	tk.styles.apply(pane.StyleTable{"accent": "14"})
	assert.NotEqual(t, def.GetBorderTopForeground(), tk.styles.frame("accent").GetBorderTopForeground())
	assert.Equal(t, tk.styles.border, tk.styles.frame("unknown"))
}

func TestKeyMapFromConfig(t *testing.T) {
	km := KeyMapFromConfig(pane.KeyConfig{Next: []string{"down", "ctrl+n"}})
	assert.Equal(t, []string{"down", "ctrl+n"}, km.Next.Keys())
	assert.Equal(t, []string{"shift+tab"}, km.Prev.Keys())
	assert.Equal(t, []string{"ctrl+c", "esc"}, km.Quit.Keys())
	require.Equal(t, "down", km.Next.Help().Key)
}
