package pane

import (
	"fmt"
	"slices"
)

// Container is an element that holds children.
type Container interface {
	Element
	Children() []Element
	Add(children ...Element) error
	Remove(child Element) error
	Orientation() Orientation
	Alignment() Alignment
	Bordered() bool
	Title() string
	BorderClass() string
}

// BaseContainer provides child management, event bubbling and line layout
// for containers. Embed this in container structs.
type BaseContainer struct {
	Base
	children []Element
	unsubs   map[nodeID]func()

	orientation Orientation
	alignment   Alignment
	border      *BorderStyle
	title       string
	borderClass string
}

func (c *BaseContainer) initContainer(self Container, name string, o Orientation) {
	c.init(self, name)
	c.orientation = o
	c.tree = newTreeIndex()
	c.tree.containers[c.id] = self
	c.unsubs = make(map[nodeID]func())
}

// Children returns the child elements in layout order.
func (c *BaseContainer) Children() []Element {
	return slices.Clone(c.children)
}

// Child returns the direct child called name.
func (c *BaseContainer) Child(name string) Element {
	for _, ch := range c.children {
		if ch.Name() == name {
			return ch
		}
	}
	return nil
}

// Add appends children. Sibling names must be unique and a child may only
// have one parent.
func (c *BaseContainer) Add(children ...Element) error {
	if c.destroyed {
		return ErrDestroyed
	}
	for _, ch := range children {
		if ch == nil {
			continue
		}
		b := ch.base()
		switch {
		case b.destroyed:
			return fmt.Errorf("add %q: %w", ch.Name(), ErrDestroyed)
		case b.parent != 0 || (b.tree != nil && b.tree == c.tree):
			return fmt.Errorf("add %q to %q: %w", ch.Name(), c.Path(), ErrAlreadyAttached)
		case c.Child(ch.Name()) != nil:
			return fmt.Errorf("add %q to %q: %w", ch.Name(), c.Path(), ErrDuplicateName)
		}

		adopt(c.tree, ch)
		b.parent = c.id
		c.children = append(c.children, ch)
		c.unsubs[b.id] = ch.OnChange(c.notify)
		c.notify(ElementChangeEvent{
			ElementName: ch.Name(),
			Path:        ch.Path(),
			Kind:        ChangeChildAdded,
			SpaceDelta:  ch.CalculateSpaceRequirements().CurrentLines,
		})
	}
	return nil
}

// Remove detaches child and destroys its subtree. The ChangeChildRemoved
// event carries the path the child had before removal.
func (c *BaseContainer) Remove(child Element) error {
	idx := slices.Index(c.children, child)
	if idx < 0 {
		return fmt.Errorf("remove from %q: %w", c.Path(), ErrNotChild)
	}
	path := child.Path()
	lines := child.CalculateSpaceRequirements().CurrentLines

	id := child.base().id
	if unsub := c.unsubs[id]; unsub != nil {
		unsub()
	}
	delete(c.unsubs, id)
	c.children = slices.Delete(c.children, idx, idx+1)
	destroy(child)

	c.notify(ElementChangeEvent{
		ElementName: child.Name(),
		Path:        path,
		Kind:        ChangeChildRemoved,
		SpaceDelta:  -lines,
	})
	return nil
}

func (c *BaseContainer) Orientation() Orientation { return c.orientation }
func (c *BaseContainer) Alignment() Alignment     { return c.alignment }
func (c *BaseContainer) Bordered() bool           { return c.border != nil }
func (c *BaseContainer) Title() string            { return c.title }

// BorderClass names the theme colour class of the border.
func (c *BaseContainer) BorderClass() string {
	if c.borderClass == "" && c.border != nil {
		return "default"
	}
	return c.borderClass
}

func (c *BaseContainer) overhead() int {
	switch {
	case c.border != nil:
		return 2
	case c.title != "":
		return 1
	}
	return 0
}

func (c *BaseContainer) naturalLines() int {
	n := 0
	for _, ch := range c.children {
		if !ch.Visible() {
			continue
		}
		lines := ch.CalculateSpaceRequirements().CurrentLines
		if c.orientation == Horizontal {
			n = max(n, lines)
		} else {
			n += lines
		}
	}
	if n == 0 && c.overhead() == 0 {
		return 0
	}
	return n + c.overhead()
}

// layoutRequirement sums (vertical) or maxes (horizontal) the visible
// children and adds border and title lines. Containers compress down to their
// overhead plus one ellipsis line.
func (c *BaseContainer) layoutRequirement() SpaceRequirement {
	if !c.visible {
		return SpaceRequirement{}
	}
	natural := c.naturalLines()
	floor := min(natural, c.overhead()+1)
	cur := natural
	if c.budget > 0 && c.budget < natural {
		cur = max(c.budget, floor)
	}
	return SpaceRequirement{MinLines: floor, CurrentLines: cur, MaxLines: natural, PreferredLines: natural}
}

func (c *BaseContainer) layoutLines() []string {
	if !c.visible {
		return nil
	}
	var body []string
	if c.orientation == Horizontal {
		var cols [][]string
		for _, ch := range c.children {
			if ch.Visible() {
				cols = append(cols, ch.RenderLines())
			}
		}
		body = sideBySide(cols, c.alignment)
	} else {
		for _, ch := range c.children {
			if ch.Visible() {
				body = append(body, ch.RenderLines()...)
			}
		}
		body = align(body, c.alignment)
	}

	req := c.layoutRequirement()
	if req.CurrentLines == 0 {
		return nil
	}
	body = elide(body, req.CurrentLines-c.overhead())

	switch {
	case c.border != nil:
		return frame(body, c.title, *c.border)
	case c.title != "":
		return append([]string{c.title}, body...)
	}
	return body
}

func adopt(t *treeIndex, el Element) {
	walk(el, func(e Element) bool {
		b := e.base()
		b.tree = t
		if cc, ok := e.(Container); ok {
			t.containers[b.id] = cc
		}
		return true
	})
}

func destroy(el Element) {
	var all []Element
	walk(el, func(e Element) bool {
		all = append(all, e)
		return true
	})
	// children first, paths resolve through the tree until the end
	for i := len(all) - 1; i >= 0; i-- {
		b := all[i].base()
		if b.tree != nil {
			delete(b.tree.containers, b.id)
		}
		b.tree = nil
		b.parent = 0
		b.destroyed = true
		b.allocated = false
		b.listeners = nil
	}
}

// Stack is a plain container laying out its children in one direction.
type Stack struct {
	BaseContainer
}

// VBox creates a vertical stack. It panics if the children cannot be added,
// which only happens for duplicate names or already attached elements.
func VBox(name string, children ...Element) *Stack {
	return newStack(name, Vertical, children)
}

// HBox creates a horizontal stack; see VBox.
func HBox(name string, children ...Element) *Stack {
	return newStack(name, Horizontal, children)
}

func newStack(name string, o Orientation, children []Element) *Stack {
	s := &Stack{}
	s.initContainer(s, name, o)
	if err := s.Add(children...); err != nil {
		panic(err)
	}
	return s
}

// Align sets the cross-axis alignment.
func (s *Stack) Align(a Alignment) *Stack {
	s.alignment = a
	return s
}

// Titled gives the stack a title line.
func (s *Stack) Titled(title string) *Stack {
	s.title = title
	return s
}

// Border draws a border around the stack.
func (s *Stack) Border(b BorderStyle) *Stack {
	s.border = &b
	return s
}

// Class sets the border colour class.
func (s *Stack) Class(class string) *Stack {
	s.borderClass = class
	return s
}

func (s *Stack) CalculateSpaceRequirements() SpaceRequirement { return s.layoutRequirement() }
func (s *Stack) RenderLines() []string                        { return s.layoutLines() }
