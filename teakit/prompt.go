package teakit

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kungfusheep/pane"
)

// ErrPromptCancelled is returned when the user quits a prompt.
var ErrPromptCancelled = errors.New("teakit: prompt cancelled")

type promptModel struct {
	widget    Widget
	keys      KeyMap
	done      bool
	cancelled bool
}

func (m *promptModel) Init() tea.Cmd { return nil }

func (m *promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(km, m.keys.Quit):
		m.cancelled = true
		return m, tea.Quit
	case key.Matches(km, m.keys.Press):
		cmd := m.widget.Update(km)
		m.done = true
		return m, tea.Batch(cmd, tea.Quit)
	}
	return m, m.widget.Update(km)
}

func (m *promptModel) View() string {
	if m.done || m.cancelled {
		return ""
	}
	return m.widget.View() + "\n"
}

// PromptFactory returns a pane.PromptFactory asking for one component's
// value in a standalone bubbletea program. Enter accepts.
func (t *Toolkit) PromptFactory(opts ...tea.ProgramOption) pane.PromptFactory {
	return func(c *pane.Component) (pane.Value, error) {
		m, err := t.promptModel(c)
		if err != nil {
			return nil, err
		}
		if _, err := tea.NewProgram(m, opts...).Run(); err != nil {
			return nil, fmt.Errorf("prompt %q: %w", c.Name(), err)
		}
		return t.promptResult(c, m)
	}
}

func (t *Toolkit) promptModel(c *pane.Component) (*promptModel, error) {
	var w pane.Widget
	switch c.Variant() {
	case pane.VariantButton:
		w = t.Button(c)
	case pane.VariantInput:
		w = t.Input(c)
	case pane.VariantSelect:
		w = t.Select(c)
	case pane.VariantRadio:
		w = t.Radio(c)
	case pane.VariantCheckboxList:
		w = t.CheckboxList(c)
	default:
		return nil, fmt.Errorf("prompt %q: no widget for %s", c.Name(), c.Variant())
	}
	w.Focus()
	return &promptModel{widget: w.(Widget), keys: t.keys}, nil
}

func (t *Toolkit) promptResult(c *pane.Component, m *promptModel) (pane.Value, error) {
	if m.cancelled || !m.done {
		return nil, ErrPromptCancelled
	}
	v, ok := pane.WidgetValue(c.Variant(), m.widget)
	if !ok {
		return nil, fmt.Errorf("prompt %q: widget has no value", c.Name())
	}
	return v, nil
}
