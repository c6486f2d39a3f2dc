package pane

import (
	"log/slog"
	"slices"
	"sync/atomic"
)

// AdapterOption configures an Adapter.
type AdapterOption func(*Adapter)

// WithToolkit sets the toolkit real widgets are built with. Without one,
// BuildRealLayout returns nil and only headless layouts are available.
func WithToolkit(tk Toolkit) AdapterOption {
	return func(a *Adapter) { a.toolkit = tk }
}

// WithApplication sets the running application focus and redraws are pushed
// into.
func WithApplication(app Application) AdapterOption {
	return func(a *Adapter) { a.app = app }
}

// WithTheme sets the theme border colours are taken from.
func WithTheme(t Theme) AdapterOption {
	return func(a *Adapter) { a.theme = t }
}

// WithAdapterLogger sets the logger for sync and build diagnostics.
func WithAdapterLogger(l *slog.Logger) AdapterOption {
	return func(a *Adapter) { a.logger = l }
}

// LayoutNode is a headless description of an element tree.
type LayoutNode struct {
	Type     string
	Name     string
	Path     string
	Visible  bool
	Children []LayoutNode
}

type syncFunc func() Value

// Adapter maps an element tree onto a real widget tree, copies widget values
// back into components and pushes the registry's focus into the application.
type Adapter struct {
	focus   *FocusRegistry
	toolkit Toolkit
	app     Application
	theme   Theme
	logger  *slog.Logger

	builders   map[Variant]func(*Component) Widget
	widgets    map[string]Widget
	components map[string]*Component
	syncs      map[string]syncFunc
	visible    map[string]bool
	styles     StyleTable

	pending atomic.Bool
	stale   bool
}

// NewAdapter creates an adapter driving focus.
func NewAdapter(focus *FocusRegistry, opts ...AdapterOption) *Adapter {
	a := &Adapter{
		focus:      focus,
		theme:      ThemeDark,
		logger:     discardLogger(),
		widgets:    make(map[string]Widget),
		components: make(map[string]*Component),
		syncs:      make(map[string]syncFunc),
		visible:    make(map[string]bool),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.toolkit != nil {
		a.builders = map[Variant]func(*Component) Widget{
			VariantButton:       a.toolkit.Button,
			VariantInput:        a.toolkit.Input,
			VariantSelect:       a.toolkit.Select,
			VariantRadio:        a.toolkit.Radio,
			VariantCheckboxList: a.toolkit.CheckboxList,
		}
	}
	focus.OnFocusChange(func(string) { a.applyAndRedraw() })
	return a
}

// SetApplication sets the application after construction, for toolkits
// whose application is created from the built widget tree.
func (a *Adapter) SetApplication(app Application) {
	a.app = app
	if app != nil && len(a.styles) > 0 {
		app.ApplyStyles(a.styles)
	}
}

// Focus returns the registry the adapter drives.
func (a *Adapter) Focus() *FocusRegistry { return a.focus }

// Widget returns the widget built for path.
func (a *Adapter) Widget(path string) (Widget, bool) {
	w, ok := a.widgets[path]
	return w, ok
}

// Styles returns the style table gathered by the last build.
func (a *Adapter) Styles() StyleTable { return a.styles }

// Stale reports whether children were added or removed since the last build.
func (a *Adapter) Stale() bool { return a.stale }

// BuildLayout describes the tree without building widgets.
func (a *Adapter) BuildLayout(root Element) LayoutNode {
	n := LayoutNode{
		Type:    elementType(root),
		Name:    root.Name(),
		Path:    root.Path(),
		Visible: root.Visible(),
	}
	if c, ok := root.(Container); ok {
		for _, ch := range c.Children() {
			n.Children = append(n.Children, a.BuildLayout(ch))
		}
	}
	return n
}

func elementType(el Element) string {
	switch e := el.(type) {
	case *Component:
		return e.Variant().String()
	case *TextElement:
		return "text"
	case *Card:
		return "card"
	case *Assembly:
		return "assembly"
	case *Stack:
		return "stack"
	case Container:
		return "container"
	}
	return "element"
}

// BuildRealLayout builds the widget tree for root and registers every leaf
// widget by path. Border colours are collected into one style table handed
// to the application. It returns nil when no toolkit is configured.
func (a *Adapter) BuildRealLayout(root Element) Widget {
	if a.toolkit == nil || root == nil {
		return nil
	}
	clear(a.widgets)
	clear(a.components)
	clear(a.syncs)
	a.stale = false

	styles := StyleTable{}
	w := a.build(root, styles)
	a.styles = styles
	if a.app != nil && len(styles) > 0 {
		a.app.ApplyStyles(styles)
	}
	a.logger.Debug("build", "root", root.Path(), "widgets", len(a.widgets), "synced", len(a.syncs))
	return w
}

func (a *Adapter) build(el Element, styles StyleTable) Widget {
	path := el.Path()
	var w Widget

	switch e := el.(type) {
	case *Component:
		build, ok := a.builders[e.Variant()]
		if !ok {
			a.logger.Debug("no widget for variant", "path", path, "variant", e.Variant())
			return nil
		}
		if w = build(e); w == nil {
			return nil
		}
		a.widgets[path] = w
		a.components[path] = e
		if s := syncFor(e.Variant(), w); s != nil {
			a.syncs[path] = s
		}

	case *TextElement:
		w = a.toolkit.Text(e.Lines())

	case Container:
		var kids []Widget
		for _, ch := range e.Children() {
			if cw := a.build(ch, styles); cw != nil {
				kids = append(kids, cw)
			}
		}
		w = a.toolkit.Stack(e.Orientation(), e.Alignment(), kids)
		if card, ok := e.(*Card); ok && card.IsCollapsible() {
			a.visible[path+"#body"] = !card.Collapsed()
			w = a.toolkit.Conditional(w, a.visibility(path+"#body"))
		}
		switch {
		case e.Bordered():
			class := e.BorderClass()
			styles[class] = a.theme.BorderColor(class)
			w = a.toolkit.Frame(w, e.Title(), class)
		case e.Title() != "":
			w = a.toolkit.Stack(Vertical, AlignStart, []Widget{a.toolkit.Text([]string{e.Title()}), w})
		}
	}

	if w == nil {
		return nil
	}
	a.visible[path] = el.Visible()
	return a.WrapWithVisibility(w, path)
}

// WrapWithVisibility wraps w so it is only drawn while path is visible. The
// flag is cached in the adapter and defaults to true.
func (a *Adapter) WrapWithVisibility(w Widget, path string) Widget {
	if a.toolkit == nil || w == nil {
		return w
	}
	if _, ok := a.visible[path]; !ok {
		a.visible[path] = true
	}
	return a.toolkit.Conditional(w, a.visibility(path))
}

func (a *Adapter) visibility(path string) func() bool {
	return func() bool { return a.Visible(path) }
}

// Visible reports the cached visibility of path.
func (a *Adapter) Visible(path string) bool {
	v, ok := a.visible[path]
	return !ok || v
}

// SetVisible updates the cached flag and schedules a redraw.
func (a *Adapter) SetVisible(path string, v bool) {
	a.visible[path] = v
	a.ScheduleInvalidate()
}

// WidgetValue reads w's value through the capability matching variant v.
func WidgetValue(v Variant, w Widget) (Value, bool) {
	s := syncFor(v, w)
	if s == nil {
		return nil, false
	}
	return s(), true
}

func syncFor(v Variant, w Widget) syncFunc {
	switch v {
	case VariantInput:
		if tv, ok := w.(TextValuer); ok {
			return func() Value { return TextValue(tv.Value()) }
		}
	case VariantSelect, VariantRadio:
		if cv, ok := w.(ChoiceValuer); ok {
			return func() Value { return ChoiceValue(cv.Selected()) }
		}
	case VariantCheckboxList:
		if lv, ok := w.(ListValuer); ok {
			return func() Value { return ListValue(slices.Clone(lv.Checked())) }
		}
	case VariantButton:
		if pv, ok := w.(PressValuer); ok {
			return func() Value { return PressValue(pv.Pressed()) }
		}
	}
	return nil
}

// SyncFocusedWidget copies the focused widget's value into its component.
// A focused widget without a value capability is skipped. Rejected values
// are logged, not returned.
func (a *Adapter) SyncFocusedWidget() {
	a.syncPath(a.focus.Focused())
}

// SyncWidgets copies the value of every synced widget into its component.
func (a *Adapter) SyncWidgets() {
	for path := range a.syncs {
		a.syncPath(path)
	}
}

func (a *Adapter) syncPath(path string) {
	sync, ok := a.syncs[path]
	if !ok {
		return
	}
	c := a.components[path]
	v := sync()
	if sameValue(c.Value(), v) {
		return
	}
	if err := c.SetValue(v); err != nil {
		a.logger.Warn("sync rejected", "path", path, "err", err)
		return
	}
	a.logger.Debug("sync", "path", path, "value", v.String())
}

func sameValue(x, y Value) bool {
	lx, okx := x.(ListValue)
	ly, oky := y.(ListValue)
	if okx || oky {
		return okx && oky && slices.Equal(lx, ly)
	}
	return x == y
}

// ApplyFocus pushes the registry's focused path into the application.
func (a *Adapter) ApplyFocus() error {
	if a.app == nil {
		return nil
	}
	w, ok := a.widgets[a.focus.Focused()]
	if !ok {
		return nil
	}
	return a.app.Focus(w)
}

// ScheduleInvalidate asks the application for one redraw. Calls made before
// the scheduled redraw runs are coalesced into it.
func (a *Adapter) ScheduleInvalidate() {
	if a.app == nil {
		return
	}
	if !a.pending.CompareAndSwap(false, true) {
		return
	}
	a.app.Schedule(func() {
		a.pending.Store(false)
		a.app.Invalidate()
	})
}

// FocusNext syncs the focused widget and moves focus forward. Every registry
// move is pushed into the application, including those made by hiding,
// trapping or syncing.
func (a *Adapter) FocusNext() {
	a.SyncFocusedWidget()
	a.focus.FocusNext()
}

// FocusPrev syncs the focused widget and moves focus backward.
func (a *Adapter) FocusPrev() {
	a.SyncFocusedWidget()
	a.focus.FocusPrev()
}

func (a *Adapter) applyAndRedraw() {
	if err := a.ApplyFocus(); err != nil {
		a.logger.Warn("apply focus", "path", a.focus.Focused(), "err", err)
	}
	a.ScheduleInvalidate()
}

// Attach follows page changes: hide and show flip cached visibility,
// collapsing flips a card's body, structural changes mark the widget tree
// stale and everything else schedules a redraw. The returned func detaches.
func (a *Adapter) Attach(p *Page) (detach func()) {
	return p.Root().OnChange(func(ev ElementChangeEvent) {
		switch ev.Kind {
		case ChangeHidden:
			a.SetVisible(ev.Path, false)
		case ChangeShown:
			a.SetVisible(ev.Path, true)
		case ChangeCollapsed:
			a.SetVisible(ev.Path+"#body", false)
		case ChangeExpanded:
			a.SetVisible(ev.Path+"#body", true)
		case ChangeChildAdded, ChangeChildRemoved:
			a.stale = true
			a.ScheduleInvalidate()
		default:
			a.ScheduleInvalidate()
		}
	})
}
