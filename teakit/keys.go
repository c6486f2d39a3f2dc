package teakit

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/kungfusheep/pane"
)

// KeyMap holds the bindings the application and its widgets respond to.
type KeyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Quit   key.Binding
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Press  key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous field")),
		Quit:   key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "quit")),
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle: key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "toggle")),
		Press:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
	}
}

// KeyMapFromConfig overrides the default traversal and quit keys with the
// configured ones. Empty lists keep the defaults.
func KeyMapFromConfig(k pane.KeyConfig) KeyMap {
	km := DefaultKeyMap()
	if len(k.Next) > 0 {
		km.Next = key.NewBinding(key.WithKeys(k.Next...), key.WithHelp(k.Next[0], "next field"))
	}
	if len(k.Prev) > 0 {
		km.Prev = key.NewBinding(key.WithKeys(k.Prev...), key.WithHelp(k.Prev[0], "previous field"))
	}
	if len(k.Quit) > 0 {
		km.Quit = key.NewBinding(key.WithKeys(k.Quit...), key.WithHelp(k.Quit[0], "quit"))
	}
	return km
}
