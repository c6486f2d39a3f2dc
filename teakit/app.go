package teakit

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kungfusheep/pane"
)

// Controller is the focus side of the pane adapter.
type Controller interface {
	FocusNext()
	FocusPrev()
	SyncFocusedWidget()
	ApplyFocus() error
}

type runScheduledMsg struct{}

// App is a bubbletea model hosting a pane widget tree. It implements
// pane.Application: focus is pushed in by the adapter and scheduled work
// runs on the bubbletea loop.
type App struct {
	toolkit *Toolkit
	ctl     Controller
	root    pane.Widget
	focused pane.Widget

	rebuild func() pane.Widget
	stale   func() bool

	program *tea.Program
	mu      sync.Mutex
	queue   []func()
	waking  atomic.Bool

	invalidations atomic.Int64
	width, height int
	quitting      bool
}

// AppOption configures an App.
type AppOption func(*App)

// WithRebuild rebuilds the widget tree after an update when stale reports
// true, for trees whose children change while running.
func WithRebuild(build func() pane.Widget, stale func() bool) AppOption {
	return func(a *App) {
		a.rebuild = build
		a.stale = stale
	}
}

// NewApp creates an application drawing root. ctl may be nil for a static
// tree.
func NewApp(tk *Toolkit, ctl Controller, root pane.Widget, opts ...AppOption) *App {
	a := &App{toolkit: tk, ctl: ctl, root: root}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// SetRoot replaces the widget tree.
func (a *App) SetRoot(root pane.Widget) { a.root = root }

// Focused returns the focused widget.
func (a *App) Focused() pane.Widget { return a.focused }

// Invalidations returns how many redraws were requested.
func (a *App) Invalidations() int64 { return a.invalidations.Load() }

// Focus moves keyboard focus to w.
func (a *App) Focus(w pane.Widget) error {
	if w == nil {
		return errors.New("teakit: focus nil widget")
	}
	if a.focused == w {
		return nil
	}
	if a.focused != nil {
		a.focused.Blur()
	}
	w.Focus()
	a.focused = w
	return nil
}

// Invalidate requests a redraw. bubbletea redraws after every update, so
// this only has to be counted.
func (a *App) Invalidate() {
	a.invalidations.Add(1)
}

// Schedule queues fn to run on the bubbletea loop. It is safe to call from
// inside Update and from other goroutines.
func (a *App) Schedule(fn func()) {
	a.mu.Lock()
	a.queue = append(a.queue, fn)
	a.mu.Unlock()

	if a.program != nil && a.waking.CompareAndSwap(false, true) {
		// Send blocks while Update runs, so never call it inline.
		go a.program.Send(runScheduledMsg{})
	}
}

// ApplyStyles installs the border colours of the widget tree.
func (a *App) ApplyStyles(table pane.StyleTable) {
	a.toolkit.styles.apply(table)
}

func (a *App) runScheduled() {
	a.waking.Store(false)
	a.mu.Lock()
	queue := a.queue
	a.queue = nil
	a.mu.Unlock()
	for _, fn := range queue {
		fn()
	}
}

func (a *App) drain() tea.Cmd {
	a.mu.Lock()
	n := len(a.queue)
	a.mu.Unlock()
	if n == 0 {
		return nil
	}
	return func() tea.Msg { return runScheduledMsg{} }
}

func (a *App) Init() tea.Cmd {
	if a.ctl != nil {
		_ = a.ctl.ApplyFocus()
	}
	return a.drain()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	keys := a.toolkit.keys

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height

	case runScheduledMsg:
		a.runScheduled()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			a.quitting = true
			return a, tea.Quit
		case a.ctl != nil && key.Matches(msg, keys.Next):
			a.ctl.FocusNext()
		case a.ctl != nil && key.Matches(msg, keys.Prev):
			a.ctl.FocusPrev()
		default:
			if w, ok := a.focused.(Widget); ok {
				cmd = w.Update(msg)
			}
			if a.ctl != nil {
				a.ctl.SyncFocusedWidget()
			}
		}
	}

	if a.rebuild != nil && a.stale != nil && a.stale() {
		if a.focused != nil {
			a.focused.Blur()
			a.focused = nil
		}
		a.root = a.rebuild()
		if a.ctl != nil {
			_ = a.ctl.ApplyFocus()
		}
	}
	return a, tea.Batch(cmd, a.drain())
}

func (a *App) View() string {
	if a.quitting {
		return ""
	}
	return viewOf(a.root)
}

// Run starts a bubbletea program for a and blocks until it exits or ctx is
// cancelled.
func (a *App) Run(ctx context.Context, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)
	a.program = tea.NewProgram(a, opts...)
	_, err := a.program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

var _ pane.Application = (*App)(nil)

// Attach builds the page's widget tree with tk, wires it to an adapter and
// returns the application, ready to Run.
func Attach(p *pane.Page, tk *Toolkit, opts ...pane.AdapterOption) (*App, *pane.Adapter) {
	opts = append([]pane.AdapterOption{pane.WithToolkit(tk), pane.WithAdapterLogger(p.Logger())}, opts...)
	ad := pane.NewAdapter(p.Focus(), opts...)
	build := func() pane.Widget {
		// the buffer may be too small for the tree; widgets still get built
		_ = p.Refresh()
		p.Focus().Sync(p.FocusablePaths())
		return ad.BuildRealLayout(p.Root())
	}
	app := NewApp(tk, ad, build(), WithRebuild(build, ad.Stale))
	ad.SetApplication(app)
	ad.Attach(p)
	return app, ad
}
