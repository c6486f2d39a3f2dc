package pane

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registry(paths ...string) *FocusRegistry {
	fr := NewFocusRegistry()
	for _, p := range paths {
		fr.Register(p)
	}
	return fr
}

func TestFocusNextWraps(t *testing.T) {
	fr := registry("e1", "e2", "e3", "e4")
	assert.Equal(t, "e1", fr.Focused())

	var got []string
	for range 4 {
		got = append(got, fr.FocusNext())
	}
	assert.Equal(t, []string{"e2", "e3", "e4", "e1"}, got)
}

func TestFocusPrevWraps(t *testing.T) {
	fr := registry("e1", "e2", "e3")
	assert.Equal(t, "e3", fr.FocusPrev())
	assert.Equal(t, "e2", fr.FocusPrev())
}

func TestFocusTraversalIsCyclic(t *testing.T) {
	fr := registry("a", "b", "c", "d", "e")
	for _, start := range fr.Order() {
		require.True(t, fr.SetFocused(start))
		for range len(fr.Order()) {
			fr.FocusNext()
		}
		assert.Equal(t, start, fr.Focused(), "n steps forward return to %s", start)
		fr.FocusNext()
		fr.FocusPrev()
		assert.Equal(t, start, fr.Focused())
	}
}

func TestFocusEmpty(t *testing.T) {
	fr := NewFocusRegistry()
	assert.Equal(t, "", fr.FocusNext())
	assert.Equal(t, "", fr.FocusPrev())
	assert.Empty(t, fr.Effective())
}

func TestRegisterTwiceIsNoop(t *testing.T) {
	fr := registry("a", "b", "a")
	assert.Equal(t, []string{"a", "b"}, fr.Order())
}

func TestSetFocusedAbsentPath(t *testing.T) {
	fr := registry("a", "b")
	var moves []string
	fr.OnFocusChange(func(p string) { moves = append(moves, p) })

	assert.False(t, fr.SetFocused("nope"))
	assert.Equal(t, "a", fr.Focused())
	assert.Empty(t, moves)

	assert.True(t, fr.SetFocused("b"))
	assert.Equal(t, []string{"b"}, moves)
}

func TestUnregisterFocusedMovesToFirst(t *testing.T) {
	fr := registry("a", "b", "c")
	fr.SetFocused("c")
	fr.Unregister("c")
	assert.Equal(t, "a", fr.Focused())

	fr.Unregister("a")
	fr.Unregister("b")
	assert.Equal(t, "", fr.Focused())
}

func TestUnregisterPrefix(t *testing.T) {
	fr := registry("page/card/x", "page/card/y", "page/cardigan", "page/z")
	fr.UnregisterPrefix("page/card")
	assert.Equal(t, []string{"page/cardigan", "page/z"}, fr.Order())
}

func TestTrapRestrictsAndRestores(t *testing.T) {
	fr := registry("a", "b", "c", "d")
	fr.SetFocused("a")

	release := fr.Trap([]string{"c", "d", "missing"})
	assert.True(t, fr.Trapped())
	assert.Equal(t, "c", fr.Focused(), "focus moves inside the trap")
	assert.Equal(t, []string{"c", "d"}, fr.Effective())
	assert.Equal(t, "d", fr.FocusNext())
	assert.Equal(t, "c", fr.FocusNext())
	assert.False(t, fr.SetFocused("a"))

	release()
	assert.False(t, fr.Trapped())
	assert.Equal(t, "a", fr.Focused())

	release()
	assert.Equal(t, "a", fr.Focused(), "second release is a no-op")
}

func TestNestedTraps(t *testing.T) {
	fr := registry("a", "b", "c")
	outer := fr.Trap([]string{"b", "c"})
	inner := fr.Trap([]string{"c"})
	assert.Equal(t, []string{"c"}, fr.Effective())

	inner()
	assert.Equal(t, []string{"b", "c"}, fr.Effective())
	assert.Equal(t, "b", fr.Focused())

	outer()
	assert.Equal(t, "a", fr.Focused())
}

func TestModalTrapRestoresOnError(t *testing.T) {
	fr := registry("a", "b")
	boom := errors.New("boom")
	err := fr.ModalTrap([]string{"b"}, func() error {
		assert.Equal(t, "b", fr.Focused())
		return boom
	})
	require.ErrorIs(t, err, boom)
	assert.False(t, fr.Trapped())
	assert.Equal(t, "a", fr.Focused())
}

func TestModalTrapRestoresOnPanic(t *testing.T) {
	fr := registry("a", "b")
	assert.Panics(t, func() {
		_ = fr.ModalTrap([]string{"b"}, func() error { panic("boom") })
	})
	assert.False(t, fr.Trapped())
	assert.Equal(t, "a", fr.Focused())
}

func TestSyncKeepsFocus(t *testing.T) {
	fr := registry("a", "b")
	fr.SetFocused("b")

	fr.Sync([]string{"x", "b", "y"})
	assert.Equal(t, "b", fr.Focused())
	assert.Equal(t, []string{"x", "b", "y"}, fr.Order())

	fr.Sync([]string{"y", "z"})
	assert.Equal(t, "y", fr.Focused())

	fr.Sync(nil)
	assert.Equal(t, "", fr.Focused())
}
