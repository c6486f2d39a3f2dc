package teakit

import (
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/kungfusheep/pane"
)

// styles holds the precomputed lipgloss styles. Frames look their class up
// at draw time; the table itself is only replaced by ApplyStyles.
type styles struct {
	mu      sync.RWMutex
	base    lipgloss.Style
	accent  lipgloss.Style
	muted   lipgloss.Style
	title   lipgloss.Style
	border  lipgloss.Style
	classes map[string]lipgloss.Style
}

func newStyles(t pane.Theme) *styles {
	s := &styles{
		base:    lipgloss.NewStyle(),
		accent:  lipgloss.NewStyle(),
		muted:   lipgloss.NewStyle(),
		title:   lipgloss.NewStyle().Bold(true),
		border:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
		classes: make(map[string]lipgloss.Style),
	}
	if t.Base != "" {
		s.base = s.base.Foreground(lipgloss.Color(t.Base))
	}
	if t.Accent != "" {
		s.accent = s.accent.Foreground(lipgloss.Color(t.Accent))
		s.title = s.title.Foreground(lipgloss.Color(t.Accent))
	}
	if t.Muted != "" {
		s.muted = s.muted.Foreground(lipgloss.Color(t.Muted))
	}
	if t.Border != "" {
		s.border = s.border.BorderForeground(lipgloss.Color(t.Border))
	}
	return s
}

func (s *styles) apply(table pane.StyleTable) {
	classes := make(map[string]lipgloss.Style, len(table))
	for class, color := range table {
		st := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
		if color != "" {
			st = st.BorderForeground(lipgloss.Color(color))
		}
		classes[class] = st
	}
	s.mu.Lock()
	s.classes = classes
	s.mu.Unlock()
}

func (s *styles) frame(class string) lipgloss.Style {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if st, ok := s.classes[class]; ok {
		return st
	}
	return s.border
}

func (s *styles) marker(focused bool) string {
	if focused {
		return s.accent.Render("❯ ")
	}
	return "? "
}

// Toolkit builds bubbletea widgets for the pane adapter.
type Toolkit struct {
	keys   KeyMap
	styles *styles
}

// Option configures a Toolkit.
type Option func(*Toolkit)

// WithKeys replaces the default key bindings.
func WithKeys(km KeyMap) Option {
	return func(t *Toolkit) { t.keys = km }
}

// New creates a toolkit drawing with theme.
func New(theme pane.Theme, opts ...Option) *Toolkit {
	t := &Toolkit{keys: DefaultKeyMap(), styles: newStyles(theme)}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Keys returns the toolkit's key bindings.
func (t *Toolkit) Keys() KeyMap { return t.keys }

func (t *Toolkit) Button(c *pane.Component) pane.Widget {
	return newButton(c, &t.keys, t.styles)
}

func (t *Toolkit) Input(c *pane.Component) pane.Widget {
	return newInput(c, t.styles)
}

func (t *Toolkit) Select(c *pane.Component) pane.Widget {
	return newChoice(c, false, &t.keys, t.styles)
}

func (t *Toolkit) Radio(c *pane.Component) pane.Widget {
	return newChoice(c, true, &t.keys, t.styles)
}

func (t *Toolkit) CheckboxList(c *pane.Component) pane.Widget {
	return newCheckbox(c, &t.keys, t.styles)
}

func (t *Toolkit) Text(lines []string) pane.Widget {
	return &textWidget{lines: lines}
}

func (t *Toolkit) Stack(o pane.Orientation, a pane.Alignment, children []pane.Widget) pane.Widget {
	return &stackWidget{orientation: o, alignment: a, children: children}
}

func (t *Toolkit) Frame(child pane.Widget, title, class string) pane.Widget {
	return &frameWidget{child: child, title: title, class: class, styles: t.styles}
}

func (t *Toolkit) Conditional(child pane.Widget, visible func() bool) pane.Widget {
	return &conditionalWidget{child: child, visible: visible}
}

var _ pane.Toolkit = (*Toolkit)(nil)
