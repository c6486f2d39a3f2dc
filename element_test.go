package pane

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(el Element) *[]ElementChangeEvent {
	var events []ElementChangeEvent
	el.OnChange(func(ev ElementChangeEvent) { events = append(events, ev) })
	return &events
}

func TestCardHideScenario(t *testing.T) {
	card := NewCard("c", "", Text("one", "two"))
	assert.Equal(t, 2, card.CalculateSpaceRequirements().CurrentLines)

	events := record(card)
	require.NoError(t, card.Hide())

	require.Len(t, *events, 1)
	ev := (*events)[0]
	assert.Equal(t, ChangeHidden, ev.Kind)
	assert.Equal(t, -2, ev.SpaceDelta)
	assert.Equal(t, "c", ev.ElementName)
	assert.Equal(t, 0, card.CalculateSpaceRequirements().CurrentLines)
	assert.Equal(t, StateHidden, card.State())
}

func TestShowFiresFullLineCount(t *testing.T) {
	card := NewCard("c", "Title", Text("one", "two"))
	require.NoError(t, card.Hide())
	events := record(card)

	require.NoError(t, card.Show())
	require.Len(t, *events, 1)
	assert.Equal(t, ChangeShown, (*events)[0].Kind)
	assert.Equal(t, 3, (*events)[0].SpaceDelta)

	require.NoError(t, card.Show())
	assert.Len(t, *events, 1, "showing a visible element is a no-op")
}

func TestListenersRunInOrderAndUnsubscribe(t *testing.T) {
	txt := Text("x")
	var got []string
	txt.OnChange(func(ElementChangeEvent) { got = append(got, "first") })
	unsub := txt.OnChange(func(ElementChangeEvent) { got = append(got, "second") })
	txt.OnChange(func(ElementChangeEvent) { got = append(got, "third") })

	txt.FireChangeEvent(ChangeContent, 0)
	assert.Equal(t, []string{"first", "second", "third"}, got)

	got = nil
	unsub()
	txt.FireChangeEvent(ChangeContent, 0)
	assert.Equal(t, []string{"first", "third"}, got)
}

func TestUnsubscribeReleasesListener(t *testing.T) {
	txt := Text("x")
	txt.OnChange(func(ElementChangeEvent) {})
	for range 100 {
		unsub := txt.OnChange(func(ElementChangeEvent) {})
		unsub()
		unsub()
	}
	assert.Len(t, txt.listeners, 1)

	var calls int
	var unsub func()
	unsub = txt.OnChange(func(ElementChangeEvent) {
		calls++
		unsub()
	})
	txt.FireChangeEvent(ChangeContent, 0)
	txt.FireChangeEvent(ChangeContent, 0)
	assert.Equal(t, 1, calls, "a listener can unsubscribe itself")
	assert.Len(t, txt.listeners, 1)
}

func TestEventsBubbleWithOriginPath(t *testing.T) {
	field := Input("user", "User")
	login := NewAssembly("login", field)
	root := VBox("page", NewCard("card", "", login))
	events := record(root)

	require.NoError(t, field.SetValue(TextValue("bob")))

	require.Len(t, *events, 1)
	assert.Equal(t, "page/card/login/user", (*events)[0].Path)
	assert.Equal(t, ChangeValue, (*events)[0].Kind)
}

func TestParentResolvesThroughTree(t *testing.T) {
	leaf := Text("x")
	inner := VBox("inner", leaf)
	outer := VBox("outer", inner)

	assert.Same(t, inner, leaf.Parent())
	assert.Same(t, outer, inner.Parent())
	assert.Nil(t, outer.Parent())
	assert.Equal(t, "outer/inner/"+leaf.Name(), leaf.Path())
	assert.True(t, strings.HasPrefix(leaf.Name(), "anon-"))
}

func TestAddRejectsDuplicatesAndReparenting(t *testing.T) {
	a := VBox("a")
	b := VBox("b")
	child := NamedText("x", "1")

	require.NoError(t, a.Add(child))
	require.ErrorIs(t, b.Add(child), ErrAlreadyAttached)
	require.ErrorIs(t, a.Add(NamedText("x", "2")), ErrDuplicateName)
	require.ErrorIs(t, a.Add(a), ErrAlreadyAttached)

	inner := VBox("inner")
	require.NoError(t, a.Add(inner))
	require.ErrorIs(t, inner.Add(a), ErrAlreadyAttached, "no cycles")
}

func TestRemoveDestroysSubtree(t *testing.T) {
	field := Input("f", "F")
	card := NewCard("card", "", field)
	root := VBox("root", card)
	events := record(root)

	require.NoError(t, root.Remove(card))

	require.Len(t, *events, 1)
	ev := (*events)[0]
	assert.Equal(t, ChangeChildRemoved, ev.Kind)
	assert.Equal(t, "root/card", ev.Path)
	assert.Equal(t, -1, ev.SpaceDelta)

	assert.Equal(t, StateDestroyed, card.State())
	assert.Equal(t, StateDestroyed, field.State())
	assert.Nil(t, field.Parent())
	require.ErrorIs(t, field.SetValue(TextValue("x")), ErrDestroyed)
	require.ErrorIs(t, card.Hide(), ErrDestroyed)
	require.ErrorIs(t, root.Remove(card), ErrNotChild)
	assert.Empty(t, root.Children())
}

func TestChildAddedEvent(t *testing.T) {
	root := VBox("root")
	events := record(root)
	require.NoError(t, root.Add(Text("a", "b")))

	require.Len(t, *events, 1)
	assert.Equal(t, ChangeChildAdded, (*events)[0].Kind)
	assert.Equal(t, 2, (*events)[0].SpaceDelta)
}

func TestVerticalLayout(t *testing.T) {
	s := VBox("s", Text("a"), Text("b", "c"))
	assert.Equal(t, SpaceRequirement{MinLines: 1, CurrentLines: 3, MaxLines: 3, PreferredLines: 3}, s.CalculateSpaceRequirements())
	assert.Equal(t, []string{"a", "b", "c"}, s.RenderLines())

	s.Titled("T")
	assert.Equal(t, []string{"T", "a", "b", "c"}, s.RenderLines())
	assert.Equal(t, 4, s.CalculateSpaceRequirements().CurrentLines)
}

func TestHiddenChildrenTakeNoSpace(t *testing.T) {
	b := Text("b")
	s := VBox("s", Text("a"), b)
	require.NoError(t, b.Hide())
	assert.Equal(t, []string{"a"}, s.RenderLines())
	assert.Equal(t, 1, s.CalculateSpaceRequirements().CurrentLines)
}

func TestHorizontalLayout(t *testing.T) {
	s := HBox("s", Text("ab", "c"), Text("x", "y", "z"))
	assert.Equal(t, 3, s.CalculateSpaceRequirements().CurrentLines)
	assert.Equal(t, []string{"ab x", "c  y", "   z"}, s.RenderLines())
}

func TestBorderedCard(t *testing.T) {
	card := NewCard("c", "Hi", Text("abc")).Border(BorderSingle)
	lines := card.RenderLines()

	assert.Equal(t, 3, card.CalculateSpaceRequirements().CurrentLines)
	assert.Equal(t, []string{
		"┌─ Hi ─┐",
		"│ abc  │",
		"└──────┘",
	}, lines)
	assert.True(t, card.Bordered())
	assert.Equal(t, "default", card.BorderClass())
}

func TestCollapse(t *testing.T) {
	card := NewCard("c", "Details", Text("a", "b", "c"))
	require.ErrorIs(t, card.Collapse(), ErrNotCollapsible)

	card.Collapsible()
	events := record(card)
	require.NoError(t, card.Collapse())
	assert.Equal(t, []string{"▸ Details"}, card.RenderLines())
	require.Len(t, *events, 1)
	assert.Equal(t, ChangeCollapsed, (*events)[0].Kind)
	assert.Equal(t, -3, (*events)[0].SpaceDelta)

	require.NoError(t, card.Toggle())
	assert.False(t, card.Collapsed())
	assert.Equal(t, ChangeExpanded, (*events)[1].Kind)
	assert.Equal(t, 3, (*events)[1].SpaceDelta)
}

func TestCompressedContainerElides(t *testing.T) {
	s := VBox("s", Text("1", "2", "3", "4", "5")).Titled("T")
	req := s.CalculateSpaceRequirements()
	assert.Equal(t, 2, req.MinLines)
	assert.True(t, s.CanCompressTo(2))
	assert.False(t, s.CanCompressTo(1))

	s.compress(4)
	assert.Equal(t, 4, s.CalculateSpaceRequirements().CurrentLines)
	assert.Equal(t, []string{"T", "1", "2", "… 3 more"}, s.RenderLines())
}

func TestTextCompression(t *testing.T) {
	txt := Text("a", "b", "c")
	txt.compress(2)
	assert.Equal(t, []string{"a", "… 2 more"}, txt.RenderLines())
	assert.Len(t, txt.RenderLines(), txt.CalculateSpaceRequirements().CurrentLines)
}

func TestSetTextFiresLineDelta(t *testing.T) {
	txt := Text("a")
	events := record(txt)
	require.NoError(t, txt.SetText("a", "b", "c"))
	assert.Equal(t, 2, (*events)[0].SpaceDelta)
	assert.Equal(t, ChangeContent, (*events)[0].Kind)
}
