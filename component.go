package pane

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Variant is the kind of input a Component collects. The set is closed;
// values outside it are unknown and produce no widget.
type Variant int

const (
	VariantButton Variant = iota
	VariantInput
	VariantSelect
	VariantRadio
	VariantCheckboxList
)

func (v Variant) String() string {
	switch v {
	case VariantButton:
		return "button"
	case VariantInput:
		return "input"
	case VariantSelect:
		return "select"
	case VariantRadio:
		return "radio"
	case VariantCheckboxList:
		return "checkbox_list"
	}
	return fmt.Sprintf("variant(%d)", int(v))
}

// Known reports whether v is one of the defined variants.
func (v Variant) Known() bool {
	return v >= VariantButton && v <= VariantCheckboxList
}

// Value is the value held by a component. Each variant has exactly one
// canonical shape: TextValue for inputs, ChoiceValue for selects and radios,
// ListValue for checkbox lists and PressValue for buttons.
type Value interface {
	isValue()
	String() string
}

type (
	TextValue   string
	ChoiceValue string
	ListValue   []string
	PressValue  bool
)

func (TextValue) isValue()   {}
func (ChoiceValue) isValue() {}
func (ListValue) isValue()   {}
func (PressValue) isValue()  {}

func (v TextValue) String() string   { return string(v) }
func (v ChoiceValue) String() string { return string(v) }
func (v ListValue) String() string   { return strings.Join(v, ", ") }
func (v PressValue) String() string {
	if v {
		return "pressed"
	}
	return ""
}

// Contains reports whether choice is checked.
func (v ListValue) Contains(choice string) bool {
	return slices.Contains(v, choice)
}

// ZeroValue returns the empty canonical value for a variant, or nil for
// unknown variants.
func ZeroValue(v Variant) Value {
	switch v {
	case VariantButton:
		return PressValue(false)
	case VariantInput:
		return TextValue("")
	case VariantSelect, VariantRadio:
		return ChoiceValue("")
	case VariantCheckboxList:
		return ListValue(nil)
	}
	return nil
}

// CheckShape returns ErrValueShape unless val is the canonical shape for v.
func CheckShape(v Variant, val Value) error {
	ok := false
	switch val.(type) {
	case TextValue:
		ok = v == VariantInput
	case ChoiceValue:
		ok = v == VariantSelect || v == VariantRadio
	case ListValue:
		ok = v == VariantCheckboxList
	case PressValue:
		ok = v == VariantButton
	}
	if !ok {
		return fmt.Errorf("%w: %T for %s", ErrValueShape, val, v)
	}
	return nil
}

// Component is a leaf field: a button, text input, select, radio group or
// checkbox list. Components never compress.
type Component struct {
	Base
	variant     Variant
	message     string
	choices     []string
	def         Value
	placeholder string
	config      map[string]any
	value       Value
	focused     bool
}

// NewComponent creates a component of the given variant.
func NewComponent(name string, v Variant) *Component {
	c := &Component{variant: v, config: make(map[string]any)}
	c.init(c, name)
	return c
}

func Button(name, label string) *Component {
	return NewComponent(name, VariantButton).Message(label)
}

func Input(name, message string) *Component {
	return NewComponent(name, VariantInput).Message(message)
}

func Select(name, message string, choices ...string) *Component {
	return NewComponent(name, VariantSelect).Message(message).Choices(choices...)
}

func Radio(name, message string, choices ...string) *Component {
	return NewComponent(name, VariantRadio).Message(message).Choices(choices...)
}

func CheckboxList(name, message string, choices ...string) *Component {
	return NewComponent(name, VariantCheckboxList).Message(message).Choices(choices...)
}

// Message sets the prompt text, or the label for buttons.
func (c *Component) Message(m string) *Component {
	c.message = m
	return c
}

// Choices sets the options of list variants.
func (c *Component) Choices(choices ...string) *Component {
	c.choices = slices.Clone(choices)
	return c
}

// Default sets the value reported before anything is entered. A default of
// the wrong shape is ignored.
func (c *Component) Default(v Value) *Component {
	if v != nil && CheckShape(c.variant, v) == nil {
		c.def = v
	}
	return c
}

// Placeholder sets the hint shown by an empty input.
func (c *Component) Placeholder(p string) *Component {
	c.placeholder = p
	return c
}

// Config stores an arbitrary widget option, passed through to the toolkit.
func (c *Component) Config(key string, value any) *Component {
	c.config[key] = value
	return c
}

func (c *Component) Variant() Variant       { return c.variant }
func (c *Component) GetMessage() string     { return c.message }
func (c *Component) GetChoices() []string   { return slices.Clone(c.choices) }
func (c *Component) GetDefault() Value      { return c.def }
func (c *Component) GetPlaceholder() string { return c.placeholder }

// GetConfig returns a config option.
func (c *Component) GetConfig(key string) (any, bool) {
	v, ok := c.config[key]
	return v, ok
}

// ConfigMap returns a copy of all config options.
func (c *Component) ConfigMap() map[string]any {
	return maps.Clone(c.config)
}

// Label is the message, falling back to the name.
func (c *Component) Label() string {
	if c.message != "" {
		return c.message
	}
	return c.name
}

// Value returns the current value, else the default, else the variant's
// zero value.
func (c *Component) Value() Value {
	switch {
	case c.value != nil:
		return c.value
	case c.def != nil:
		return c.def
	}
	return ZeroValue(c.variant)
}

// SetValue stores v and fires ChangeValue. v must have the variant's
// canonical shape.
func (c *Component) SetValue(v Value) error {
	if c.destroyed {
		return ErrDestroyed
	}
	if v == nil {
		return fmt.Errorf("%w: nil for %s", ErrValueShape, c.variant)
	}
	if err := CheckShape(c.variant, v); err != nil {
		return fmt.Errorf("set %q: %w", c.name, err)
	}
	if lv, ok := v.(ListValue); ok {
		v = slices.Clone(lv)
	}
	c.value = v
	c.FireChangeEvent(ChangeValue, 0)
	return nil
}

// Focusable reports whether the component can take focus.
func (c *Component) Focusable() bool {
	return c.variant.Known()
}

// Focused reports whether the component is drawn as focused.
func (c *Component) Focused() bool { return c.focused }

// SetFocused draws or clears the focus marker on the component's first line.
func (c *Component) SetFocused(focused bool) {
	if c.focused == focused || c.destroyed {
		return
	}
	c.focused = focused
	c.FireChangeEvent(ChangeFocused, 0)
}

func (c *Component) prompt() string {
	if c.focused {
		return "› "
	}
	return "? "
}

func (c *Component) naturalLines() int {
	switch c.variant {
	case VariantButton, VariantInput:
		return 1
	case VariantSelect, VariantRadio, VariantCheckboxList:
		return 1 + len(c.choices)
	}
	return 0
}

func (c *Component) CalculateSpaceRequirements() SpaceRequirement {
	if !c.visible {
		return SpaceRequirement{}
	}
	return FixedLines(c.naturalLines())
}

func (c *Component) RenderLines() []string {
	if !c.visible {
		return nil
	}
	switch c.variant {
	case VariantButton:
		if c.focused {
			return []string{"› [ " + c.Label() + " ]"}
		}
		return []string{"[ " + c.Label() + " ]"}
	case VariantInput:
		text := c.Value().String()
		if text == "" {
			text = c.placeholder
		}
		return []string{c.prompt() + c.Label() + ": " + text}
	case VariantSelect, VariantRadio, VariantCheckboxList:
		lines := make([]string, 0, 1+len(c.choices))
		lines = append(lines, c.prompt()+c.Label())
		val := c.Value()
		for _, choice := range c.choices {
			lines = append(lines, "  "+c.marker(val, choice)+" "+choice)
		}
		return lines
	}
	return nil
}

func (c *Component) marker(val Value, choice string) string {
	switch c.variant {
	case VariantSelect:
		if val.String() == choice {
			return "❯"
		}
		return " "
	case VariantRadio:
		if val.String() == choice {
			return "◉"
		}
		return "○"
	}
	if lv, ok := val.(ListValue); ok && lv.Contains(choice) {
		return "[x]"
	}
	return "[ ]"
}
