package pane

import (
	"fmt"
	"log/slog"
	"strings"
)

// PageOption configures a Page.
type PageOption func(*Page)

// WithTitle sets the page title line.
func WithTitle(title string) PageOption {
	return func(p *Page) { p.initialTitle = title }
}

// WithLogger sets the logger used by the page, its buffer manager and focus
// registry.
func WithLogger(l *slog.Logger) PageOption {
	return func(p *Page) { p.logger = l }
}

// WithPromptProvider sets the provider used for standalone prompts.
func WithPromptProvider(pp *PromptProvider) PageOption {
	return func(p *Page) { p.prompts = pp }
}

// Page is the root of a prompt tree. It owns the buffer manager and focus
// registry and reconciles the tree with them.
//
// The direct children of the header, body and footer sections (and the title)
// are the page's units: each holds one buffer allocation keyed by its path.
//
//	p := NewPage(20, WithTitle("Sign in"))
//	p.Add(NewCard("login", "Account", Input("user", "User"), Input("pass", "Password")))
//	p.Render(screen)
type Page struct {
	root   *Stack
	title  *TextElement
	header *Stack
	body   *Stack
	footer *Stack

	buf     *BufferManager
	focus   *FocusRegistry
	prompts *PromptProvider
	logger  *slog.Logger

	initialTitle string
	again        bool
	marked       *Component
}

// NewPage creates a page for a viewport of height lines.
func NewPage(height int, opts ...PageOption) *Page {
	p := &Page{logger: discardLogger()}
	for _, opt := range opts {
		opt(p)
	}
	if p.prompts == nil {
		p.prompts = NewPromptProvider(nil)
	}

	p.title = NamedText("title")
	if p.initialTitle == "" {
		p.title.visible = false
	} else {
		p.title.lines = []string{p.initialTitle}
	}
	p.header = VBox("header")
	p.body = VBox("body")
	p.footer = VBox("footer")
	p.root = VBox("page", p.title, p.header, p.body, p.footer)

	p.buf = NewBufferManager(height, WithBufferLogger(p.logger), WithCompressHook(p.compressed))
	p.focus = NewFocusRegistry().SetLogger(p.logger).OnFocusChange(p.focusMoved)
	p.root.OnChange(p.handle)
	return p
}

func (p *Page) Root() *Stack               { return p.root }
func (p *Page) Header() *Stack             { return p.header }
func (p *Page) Body() *Stack               { return p.body }
func (p *Page) Footer() *Stack             { return p.footer }
func (p *Page) Buffer() *BufferManager     { return p.buf }
func (p *Page) Focus() *FocusRegistry      { return p.focus }
func (p *Page) Prompts() *PromptProvider   { return p.prompts }
func (p *Page) Logger() *slog.Logger       { return p.logger }
func (p *Page) TitleElement() *TextElement { return p.title }
func (p *Page) Sections() []*Stack         { return []*Stack{p.header, p.body, p.footer} }

// SetTitle replaces the title; an empty title hides the title line.
func (p *Page) SetTitle(title string) error {
	if title == "" {
		return p.title.Hide()
	}
	if err := p.title.SetText(title); err != nil {
		return err
	}
	return p.title.Show()
}

// Add appends elements to the body.
func (p *Page) Add(children ...Element) error {
	return p.body.Add(children...)
}

// Remove detaches el from its container, releasing its allocations and
// focus registrations.
func (p *Page) Remove(el Element) error {
	parent := el.Parent()
	if parent == nil {
		return fmt.Errorf("remove %q: %w", el.Name(), ErrNotChild)
	}
	return parent.Remove(el)
}

// Find returns the element at path, or nil.
func (p *Page) Find(path string) Element {
	parts := strings.Split(path, "/")
	if len(parts) == 0 || parts[0] != p.root.Name() {
		return nil
	}
	var el Element = p.root
	for _, name := range parts[1:] {
		c, ok := el.(Container)
		if !ok {
			return nil
		}
		var next Element
		for _, ch := range c.Children() {
			if ch.Name() == name {
				next = ch
				break
			}
		}
		if next == nil {
			return nil
		}
		el = next
	}
	return el
}

// Units returns the elements that own buffer allocations, in tree order.
func (p *Page) Units() []Element {
	units := []Element{p.title}
	for _, s := range p.Sections() {
		units = append(units, s.Children()...)
	}
	return units
}

// FocusablePaths returns the paths of focusable components that are shown,
// in tree order. Collapsed cards hide their contents.
func (p *Page) FocusablePaths() []string {
	var paths []string
	var visit func(Element)
	visit = func(e Element) {
		if !e.Visible() {
			return
		}
		if c, ok := e.(*Component); ok {
			if c.Focusable() {
				paths = append(paths, c.Path())
			}
			return
		}
		if cd, ok := e.(interface{ Collapsed() bool }); ok && cd.Collapsed() {
			return
		}
		if cc, ok := e.(Container); ok {
			for _, ch := range cc.Children() {
				visit(ch)
			}
		}
	}
	visit(p.root)
	return paths
}

// Refresh reconciles the tree with the buffer: hidden and removed units are
// deallocated, new ones allocated in tree order, and each unit's rendered
// lines diffed into its region. Nothing is written to the terminal.
func (p *Page) Refresh() error {
	for range 3 {
		p.again = false
		if err := p.reconcile(); err != nil {
			return err
		}
		p.focus.Sync(p.FocusablePaths())
		if !p.again {
			break
		}
	}
	return nil
}

// Render refreshes, flushes and writes the changed lines to w. A refresh
// error aborts before anything is written.
func (p *Page) Render(w LineWriter) error {
	if err := p.Refresh(); err != nil {
		return err
	}
	updates := p.buf.Flush()
	if len(updates) == 0 {
		return nil
	}
	p.logger.Debug("render", "lines", len(updates))
	return w.WriteLines(updates)
}

// Resize changes the viewport height and re-lays the page out.
func (p *Page) Resize(height int) error {
	if err := p.buf.Resize(height); err != nil {
		return err
	}
	return p.Refresh()
}

func (p *Page) reconcile() error {
	var ids []string
	visible := make(map[string]Element)
	for _, u := range p.Units() {
		if shown(u) {
			ids = append(ids, u.Path())
			visible[u.Path()] = u
		}
	}
	for _, id := range p.buf.IDs() {
		if _, ok := visible[id]; !ok {
			p.release(id)
		}
	}
	for i, id := range ids {
		before := ""
		for _, next := range ids[i+1:] {
			if _, ok := p.buf.Position(next); ok {
				before = next
				break
			}
		}
		if err := p.place(visible[id], before); err != nil {
			return err
		}
	}
	return nil
}

func (p *Page) place(u Element, before string) error {
	id := u.Path()
	b := u.base()
	b.compress(0)
	req := u.CalculateSpaceRequirements()

	_, placed := p.buf.Position(id)
	if !placed {
		if _, err := p.buf.AllocateSpaceBefore(id, before, req, u); err != nil {
			return fmt.Errorf("allocate %q: %w", id, err)
		}
		setAllocated(u, true)
	}
	pos, _ := p.buf.Position(id)

	if room := pos.AllocatedLines + p.buf.Available(); req.CurrentLines > room && room > 0 && u.CanCompressTo(room) {
		b.compress(room)
		req = u.CalculateSpaceRequirements()
		p.logger.Debug("compress", "id", id, "lines", room)
	}
	if err := p.buf.UpdateRequirement(id, req); err != nil {
		return err
	}

	lines := u.RenderLines()
	if len(lines) != req.CurrentLines {
		return &RenderMismatchError{Element: id, Reported: req.CurrentLines, Rendered: len(lines)}
	}
	prev, _ := p.buf.Lines(id)
	delta := DiffLines(prev, lines)
	if !placed {
		// blank lines of a fresh region still have to overwrite the terminal
		for i, text := range lines {
			if text == "" && i < len(prev) {
				delta.ClearLines = append(delta.ClearLines, i)
			}
		}
	}
	if delta.Empty() {
		return nil
	}
	if err := p.buf.ApplyBufferDelta(id, delta); err != nil {
		return fmt.Errorf("refresh %q: %w", id, err)
	}
	return nil
}

// compressed is the buffer manager's hook: the unit renders within its new
// allocation from the next pass on.
func (p *Page) compressed(id string, lines int) {
	u := p.Find(id)
	if u == nil {
		return
	}
	u.base().compress(lines)
	p.again = true
	u.FireChangeEvent(ChangeCompressed, 0)
}

// focusMoved moves the focus marker to the component at path. The next pass
// redraws both components.
func (p *Page) focusMoved(path string) {
	if p.marked != nil {
		p.marked.SetFocused(false)
		p.marked = nil
	}
	c, ok := p.Find(path).(*Component)
	if !ok {
		return
	}
	c.SetFocused(true)
	p.marked = c
	p.again = true
}

func (p *Page) release(id string) {
	if err := p.buf.Deallocate(id); err != nil {
		return
	}
	if u := p.Find(id); u != nil {
		setAllocated(u, false)
	}
}

func (p *Page) releasePrefix(path string) {
	for _, id := range p.buf.IDs() {
		if id == path || strings.HasPrefix(id, path+"/") {
			p.release(id)
		}
	}
}

func (p *Page) handle(ev ElementChangeEvent) {
	switch ev.Kind {
	case ChangeHidden, ChangeChildRemoved:
		p.releasePrefix(ev.Path)
		p.focus.UnregisterPrefix(ev.Path)
		p.logger.Debug("release", "path", ev.Path, "kind", ev.Kind)
	}
}
