package pane

// Widget is a live, focusable piece of a real widget tree.
type Widget interface {
	Focus()
	Blur()
}

// Value capabilities. A widget that reports its value implements exactly the
// one matching its variant's canonical shape.
type (
	TextValuer   interface{ Value() string }
	ChoiceValuer interface{ Selected() string }
	ListValuer   interface{ Checked() []string }
	PressValuer  interface{ Pressed() bool }
)

// Toolkit constructs real widgets. Builders may return nil when a kind is
// not supported.
type Toolkit interface {
	Button(c *Component) Widget
	Input(c *Component) Widget
	Select(c *Component) Widget
	Radio(c *Component) Widget
	CheckboxList(c *Component) Widget
	Text(lines []string) Widget
	Stack(o Orientation, a Alignment, children []Widget) Widget
	Frame(child Widget, title, class string) Widget
	Conditional(child Widget, visible func() bool) Widget
}

// Application is the running program hosting a widget tree.
type Application interface {
	Focus(w Widget) error
	Invalidate()
	// Schedule runs fn on the application's loop.
	Schedule(fn func())
	ApplyStyles(styles StyleTable)
}

// StyleTable maps a border class to a colour, in lipgloss colour syntax.
type StyleTable map[string]string
