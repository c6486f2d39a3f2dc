package pane

import (
	"slices"
	"sync/atomic"

	"github.com/google/uuid"
)

// Element is a node of the prompt tree. Every element can report how many
// lines it needs and render exactly that many.
//
// Embed Base (or BaseContainer for containers) to implement it.
type Element interface {
	Name() string
	Path() string
	Visible() bool
	State() ElementState
	Parent() Container

	// CalculateSpaceRequirements reports the lines the element needs in its
	// current state. RenderLines must return CurrentLines lines.
	CalculateSpaceRequirements() SpaceRequirement
	RenderLines() []string
	CanCompressTo(lines int) bool

	// OnChange registers a listener and returns a function that removes it.
	// Listeners run synchronously in registration order.
	OnChange(fn func(ElementChangeEvent)) (unsubscribe func())
	FireChangeEvent(kind ChangeKind, spaceDelta int)

	Hide() error
	Show() error

	base() *Base
}

// ElementState is the lifecycle state of an element.
type ElementState int

const (
	StateUnregistered ElementState = iota
	StateAllocated
	StateHidden
	StateDestroyed
)

func (s ElementState) String() string {
	switch s {
	case StateAllocated:
		return "allocated"
	case StateHidden:
		return "hidden"
	case StateDestroyed:
		return "destroyed"
	default:
		return "unregistered"
	}
}

// ChangeKind says what happened to an element.
type ChangeKind int

const (
	ChangeContent ChangeKind = iota
	ChangeValue
	ChangeHidden
	ChangeShown
	ChangeCollapsed
	ChangeExpanded
	ChangeChildAdded
	ChangeChildRemoved
	ChangeCompressed
	ChangeFocused
)

var changeKindNames = [...]string{
	ChangeContent:      "content",
	ChangeValue:        "value",
	ChangeHidden:       "hidden",
	ChangeShown:        "shown",
	ChangeCollapsed:    "collapsed",
	ChangeExpanded:     "expanded",
	ChangeChildAdded:   "child_added",
	ChangeChildRemoved: "child_removed",
	ChangeCompressed:   "compressed",
	ChangeFocused:      "focused",
}

func (k ChangeKind) String() string {
	if k >= 0 && int(k) < len(changeKindNames) {
		return changeKindNames[k]
	}
	return "unknown"
}

// ElementChangeEvent is delivered to change listeners. Containers re-fire the
// events of their children unchanged, so Path always names the element the
// change happened to.
type ElementChangeEvent struct {
	ElementName string
	Path        string
	Kind        ChangeKind
	SpaceDelta  int
}

type nodeID uint64

var lastNodeID atomic.Uint64

// treeIndex resolves parent ids to containers. All elements of one tree
// share the same index, so children never hold a pointer to their parent.
type treeIndex struct {
	containers map[nodeID]Container
}

func newTreeIndex() *treeIndex {
	return &treeIndex{containers: make(map[nodeID]Container)}
}

// Base provides the state and bookkeeping shared by all elements.
type Base struct {
	self      Element
	id        nodeID
	name      string
	visible   bool
	allocated bool
	destroyed bool

	parent nodeID
	tree   *treeIndex

	// budget caps the lines a compressible element renders; 0 means none.
	budget int

	listeners []listener
	nextID    uint64
}

type listener struct {
	id uint64
	fn func(ElementChangeEvent)
}

func (b *Base) init(self Element, name string) {
	if name == "" {
		name = "anon-" + uuid.NewString()[:8]
	}
	b.self = self
	b.id = nodeID(lastNodeID.Add(1))
	b.name = name
	b.visible = true
}

func (b *Base) base() *Base { return b }

// Name returns the element name, unique among its siblings.
func (b *Base) Name() string { return b.name }

// Path returns the slash separated names from the root to this element.
func (b *Base) Path() string {
	if p := b.Parent(); p != nil {
		return p.Path() + "/" + b.name
	}
	return b.name
}

// Parent returns the containing element, or nil for a root.
func (b *Base) Parent() Container {
	if b.parent == 0 || b.tree == nil {
		return nil
	}
	return b.tree.containers[b.parent]
}

// Visible reports the element's own visibility flag.
func (b *Base) Visible() bool { return b.visible }

// State returns the lifecycle state.
func (b *Base) State() ElementState {
	switch {
	case b.destroyed:
		return StateDestroyed
	case !b.visible:
		return StateHidden
	case b.allocated:
		return StateAllocated
	}
	return StateUnregistered
}

// CanCompressTo reports whether the element can render in lines lines.
func (b *Base) CanCompressTo(lines int) bool {
	return lines >= b.self.CalculateSpaceRequirements().MinLines
}

// OnChange registers fn for change events.
func (b *Base) OnChange(fn func(ElementChangeEvent)) func() {
	b.nextID++
	id := b.nextID
	b.listeners = append(b.listeners, listener{id: id, fn: fn})
	return func() {
		b.listeners = slices.DeleteFunc(b.listeners, func(l listener) bool { return l.id == id })
	}
}

// FireChangeEvent notifies listeners of a change to this element.
func (b *Base) FireChangeEvent(kind ChangeKind, spaceDelta int) {
	b.notify(ElementChangeEvent{
		ElementName: b.name,
		Path:        b.self.Path(),
		Kind:        kind,
		SpaceDelta:  spaceDelta,
	})
}

func (b *Base) notify(ev ElementChangeEvent) {
	// listeners may unsubscribe while being notified
	for _, l := range slices.Clone(b.listeners) {
		l.fn(ev)
	}
}

// Hide removes the element from layout and focus. The event carries the
// negated line count the element occupied.
func (b *Base) Hide() error {
	if b.destroyed {
		return ErrDestroyed
	}
	if !b.visible {
		return nil
	}
	lines := b.self.CalculateSpaceRequirements().CurrentLines
	b.visible = false
	b.FireChangeEvent(ChangeHidden, -lines)
	return nil
}

// Show restores a hidden element.
func (b *Base) Show() error {
	if b.destroyed {
		return ErrDestroyed
	}
	if b.visible {
		return nil
	}
	b.visible = true
	b.FireChangeEvent(ChangeShown, b.self.CalculateSpaceRequirements().CurrentLines)
	return nil
}

// SetVisible is Show or Hide.
func (b *Base) SetVisible(v bool) error {
	if v {
		return b.Show()
	}
	return b.Hide()
}

// shown reports whether the element and all of its ancestors are visible.
func shown(el Element) bool {
	for e := el; e != nil; {
		if !e.Visible() {
			return false
		}
		p := e.Parent()
		if p == nil {
			break
		}
		e = p
	}
	return true
}

// compress sets the render budget; 0 releases it.
func (b *Base) compress(lines int) { b.budget = lines }

func (b *Base) compressed() bool { return b.budget > 0 }

// walk visits el and its descendants depth first, stopping early when fn
// returns false.
func walk(el Element, fn func(Element) bool) bool {
	if !fn(el) {
		return false
	}
	if c, ok := el.(Container); ok {
		for _, child := range c.Children() {
			if !walk(child, fn) {
				return false
			}
		}
	}
	return true
}

func setAllocated(el Element, v bool) {
	walk(el, func(e Element) bool {
		e.base().allocated = v
		return true
	})
}
