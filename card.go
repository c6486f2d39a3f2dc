package pane

import "errors"

// ErrNotCollapsible is returned by Collapse and Expand on a card that was not
// made collapsible.
var ErrNotCollapsible = errors.New("pane: card is not collapsible")

// Card groups elements under an optional title and border. Cards are
// unbordered unless Border is called, so a plain card takes exactly the lines
// of its children plus one for a title.
type Card struct {
	BaseContainer
	collapsible bool
	collapsed   bool
}

// NewCard creates a vertical card. It panics if the children cannot be added;
// see VBox.
func NewCard(name, title string, children ...Element) *Card {
	c := &Card{}
	c.initContainer(c, name, Vertical)
	c.title = title
	if err := c.Add(children...); err != nil {
		panic(err)
	}
	return c
}

// Border draws a border around the card with the title in the top edge.
func (c *Card) Border(b BorderStyle) *Card {
	c.border = &b
	return c
}

// Class sets the border colour class.
func (c *Card) Class(class string) *Card {
	c.borderClass = class
	return c
}

// Horizontal lays the children out side by side.
func (c *Card) Horizontal() *Card {
	c.orientation = Horizontal
	return c
}

// Align sets the cross-axis alignment.
func (c *Card) Align(a Alignment) *Card {
	c.alignment = a
	return c
}

// Collapsible allows the card to be collapsed to its header line.
func (c *Card) Collapsible() *Card {
	c.collapsible = true
	return c
}

func (c *Card) IsCollapsible() bool { return c.collapsible }
func (c *Card) Collapsed() bool     { return c.collapsed }

// Collapse hides the body, leaving the header line. The event carries the
// (negative) line delta.
func (c *Card) Collapse() error {
	return c.setCollapsed(true)
}

// Expand restores the body of a collapsed card.
func (c *Card) Expand() error {
	return c.setCollapsed(false)
}

// Toggle flips between collapsed and expanded.
func (c *Card) Toggle() error {
	return c.setCollapsed(!c.collapsed)
}

func (c *Card) setCollapsed(v bool) error {
	switch {
	case c.destroyed:
		return ErrDestroyed
	case !c.collapsible:
		return ErrNotCollapsible
	case c.collapsed == v:
		return nil
	}
	before := c.CalculateSpaceRequirements().CurrentLines
	c.collapsed = v
	delta := c.CalculateSpaceRequirements().CurrentLines - before
	if v {
		c.FireChangeEvent(ChangeCollapsed, delta)
	} else {
		c.FireChangeEvent(ChangeExpanded, delta)
	}
	return nil
}

func (c *Card) header() string {
	if c.title != "" {
		return c.title
	}
	return c.name
}

func (c *Card) CalculateSpaceRequirements() SpaceRequirement {
	if !c.visible {
		return SpaceRequirement{}
	}
	if c.collapsed {
		return FixedLines(1)
	}
	return c.layoutRequirement()
}

func (c *Card) RenderLines() []string {
	if !c.visible {
		return nil
	}
	if c.collapsed {
		return []string{"▸ " + c.header()}
	}
	return c.layoutLines()
}
