package pane

import (
	"log/slog"
	"slices"
)

// FocusRegistry keeps a cyclic order over focusable element paths and the
// currently focused one. A trap restricts traversal to a subset of paths
// while a modal interaction is active.
//
//	fr := NewFocusRegistry()
//	fr.Register("page/body/login/user")
//	fr.Register("page/body/login/pass")
//	fr.FocusNext() // pass
//	fr.FocusNext() // user, wraps
type FocusRegistry struct {
	order   []string
	focused string
	trap    []string // nil when no trap is active

	onChange []func(path string)
	logger   *slog.Logger
}

// NewFocusRegistry creates an empty registry.
func NewFocusRegistry() *FocusRegistry {
	return &FocusRegistry{logger: discardLogger()}
}

// SetLogger sets the logger for focus moves.
func (fr *FocusRegistry) SetLogger(l *slog.Logger) *FocusRegistry {
	fr.logger = l
	return fr
}

// OnFocusChange adds a callback run after focus moves.
func (fr *FocusRegistry) OnFocusChange(fn func(path string)) *FocusRegistry {
	fr.onChange = append(fr.onChange, fn)
	return fr
}

// Register appends path to the order. The first registered path receives
// focus. Registering a path twice has no effect.
func (fr *FocusRegistry) Register(path string) {
	if slices.Contains(fr.order, path) {
		return
	}
	fr.order = append(fr.order, path)
	if fr.focused == "" && fr.inEffective(path) {
		fr.setFocus(path)
	}
}

// RegisterElement registers el by path.
func (fr *FocusRegistry) RegisterElement(el Element) {
	fr.Register(el.Path())
}

// Unregister removes path. If it held focus, focus moves to the first entry
// of the effective order, or nowhere when that is empty.
func (fr *FocusRegistry) Unregister(path string) {
	i := slices.Index(fr.order, path)
	if i < 0 {
		return
	}
	fr.order = slices.Delete(fr.order, i, i+1)
	if fr.focused == path {
		next := ""
		if eff := fr.Effective(); len(eff) > 0 {
			next = eff[0]
		}
		fr.setFocus(next)
	}
}

// UnregisterPrefix removes path and every path below it.
func (fr *FocusRegistry) UnregisterPrefix(path string) {
	for _, p := range slices.Clone(fr.order) {
		if p == path || len(p) > len(path) && p[:len(path)] == path && p[len(path)] == '/' {
			fr.Unregister(p)
		}
	}
}

// Focused returns the focused path, or "" when nothing is focused.
func (fr *FocusRegistry) Focused() string { return fr.focused }

// Order returns all registered paths.
func (fr *FocusRegistry) Order() []string { return slices.Clone(fr.order) }

// Trapped reports whether a trap is active.
func (fr *FocusRegistry) Trapped() bool { return fr.trap != nil }

// Effective returns the paths traversal moves through: the registered paths,
// or while a trap is active, the trapped paths that are registered.
func (fr *FocusRegistry) Effective() []string {
	if fr.trap == nil {
		return slices.Clone(fr.order)
	}
	eff := make([]string, 0, len(fr.trap))
	for _, p := range fr.trap {
		if slices.Contains(fr.order, p) {
			eff = append(eff, p)
		}
	}
	return eff
}

func (fr *FocusRegistry) inEffective(path string) bool {
	return slices.Contains(fr.Effective(), path)
}

// FocusNext moves focus forward, wrapping from last to first.
func (fr *FocusRegistry) FocusNext() string { return fr.move(1) }

// FocusPrev moves focus backward, wrapping from first to last.
func (fr *FocusRegistry) FocusPrev() string { return fr.move(-1) }

func (fr *FocusRegistry) move(delta int) string {
	eff := fr.Effective()
	if len(eff) == 0 {
		return fr.focused
	}
	i := slices.Index(eff, fr.focused)
	switch {
	case i < 0 && delta > 0:
		i = 0
	case i < 0:
		i = len(eff) - 1
	default:
		i = (i + len(eff) + delta) % len(eff)
	}
	fr.setFocus(eff[i])
	return fr.focused
}

// SetFocused focuses path if it is part of the effective order and reports
// whether it did. An absent path changes nothing.
func (fr *FocusRegistry) SetFocused(path string) bool {
	if !fr.inEffective(path) {
		return false
	}
	fr.setFocus(path)
	return true
}

// Trap restricts traversal to paths until the returned release func is
// called. Focus outside the trap moves to its first registered entry.
// Release restores the previous trap and focus.
func (fr *FocusRegistry) Trap(paths []string) (release func()) {
	prevTrap, prevFocus := fr.trap, fr.focused
	fr.trap = slices.Clone(paths)
	if fr.trap == nil {
		fr.trap = []string{}
	}
	if eff := fr.Effective(); !slices.Contains(eff, fr.focused) && len(eff) > 0 {
		fr.setFocus(eff[0])
	}
	fr.logger.Debug("focus trap", "paths", paths)

	released := false
	return func() {
		if released {
			return
		}
		released = true
		fr.trap = prevTrap
		if prevFocus != "" && slices.Contains(fr.order, prevFocus) {
			fr.setFocus(prevFocus)
		} else if eff := fr.Effective(); !slices.Contains(eff, fr.focused) {
			next := ""
			if len(eff) > 0 {
				next = eff[0]
			}
			fr.setFocus(next)
		}
		fr.logger.Debug("focus trap released", "focused", fr.focused)
	}
}

// ModalTrap runs fn with traversal restricted to paths. The previous trap
// and focus are restored when fn returns or panics.
func (fr *FocusRegistry) ModalTrap(paths []string, fn func() error) error {
	release := fr.Trap(paths)
	defer release()
	return fn()
}

// Sync replaces the order with paths, keeping focus when the focused path is
// still present.
func (fr *FocusRegistry) Sync(paths []string) {
	fr.order = slices.Clone(paths)
	if fr.focused != "" && fr.inEffective(fr.focused) {
		return
	}
	next := ""
	if eff := fr.Effective(); len(eff) > 0 {
		next = eff[0]
	}
	fr.setFocus(next)
}

func (fr *FocusRegistry) setFocus(path string) {
	if fr.focused == path {
		return
	}
	prev := fr.focused
	fr.focused = path
	fr.logger.Debug("focus", "from", prev, "to", path)
	for _, fn := range fr.onChange {
		fn(path)
	}
}
