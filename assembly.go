package pane

import (
	"errors"
	"fmt"
)

// AssemblyExtension supplies cross-field behaviour an Assembly cannot derive
// by itself.
type AssemblyExtension interface {
	Value(a *Assembly, field string) (Value, error)
	RelatedValue(a *Assembly, field, related string) (Value, error)
	ShowComponents(a *Assembly, names ...string) error
	HideComponents(a *Assembly, names ...string) error
}

type requirement struct {
	field      string
	validators []Validator
}

// Assembly is a named group of fields with change, validation and
// completion handlers. Value changes of any field inside it run the field's
// change handlers automatically.
type Assembly struct {
	BaseContainer
	onField    map[string][]func(*Assembly, Value)
	onValidate []func(*Assembly) error
	onComplete map[string][]func(*Assembly)
	required   []requirement
	ext        AssemblyExtension
}

// NewAssembly creates an assembly holding fields. It panics if the fields
// cannot be added; see VBox.
func NewAssembly(name string, fields ...Element) *Assembly {
	a := &Assembly{
		onField:    make(map[string][]func(*Assembly, Value)),
		onComplete: make(map[string][]func(*Assembly)),
	}
	a.initContainer(a, name, Vertical)
	a.OnChange(a.route)
	if err := a.Add(fields...); err != nil {
		panic(err)
	}
	return a
}

func (a *Assembly) route(ev ElementChangeEvent) {
	if ev.Kind != ChangeValue {
		return
	}
	if f := a.Field(ev.ElementName); f != nil && f.Path() == ev.Path {
		a.HandleChange(ev.ElementName)
	}
}

// Titled gives the assembly a title line.
func (a *Assembly) Titled(title string) *Assembly {
	a.title = title
	return a
}

// Border draws a border around the assembly.
func (a *Assembly) Border(b BorderStyle) *Assembly {
	a.border = &b
	return a
}

// Extend installs the cross-field extension.
func (a *Assembly) Extend(ext AssemblyExtension) *Assembly {
	a.ext = ext
	return a
}

// OnFieldChange adds a handler run whenever field's value changes.
func (a *Assembly) OnFieldChange(field string, h func(*Assembly, Value)) *Assembly {
	a.onField[field] = append(a.onField[field], h)
	return a
}

// OnValidate adds an assembly level validator.
func (a *Assembly) OnValidate(h func(*Assembly) error) *Assembly {
	a.onValidate = append(a.onValidate, h)
	return a
}

// OnComplete adds a handler run by Complete(field).
func (a *Assembly) OnComplete(field string, h func(*Assembly)) *Assembly {
	a.onComplete[field] = append(a.onComplete[field], h)
	return a
}

// RequireField attaches validators to field. They run in Validate while the
// field is shown.
func (a *Assembly) RequireField(field string, validators ...Validator) *Assembly {
	a.required = append(a.required, requirement{field: field, validators: validators})
	return a
}

// Field finds the component called name anywhere inside the assembly.
func (a *Assembly) Field(name string) *Component {
	var found *Component
	for _, ch := range a.children {
		walk(ch, func(e Element) bool {
			if c, ok := e.(*Component); ok && c.Name() == name {
				found = c
				return false
			}
			return true
		})
		if found != nil {
			break
		}
	}
	return found
}

// FieldValue returns the current value of a field.
func (a *Assembly) FieldValue(name string) (Value, error) {
	f := a.Field(name)
	if f == nil {
		return nil, fmt.Errorf("field %q in %q: %w", name, a.Path(), ErrNotChild)
	}
	return f.Value(), nil
}

// HandleChange runs the change handlers registered for field.
func (a *Assembly) HandleChange(field string) {
	hs := a.onField[field]
	if len(hs) == 0 {
		return
	}
	var v Value
	if f := a.Field(field); f != nil {
		v = f.Value()
	}
	for _, h := range hs {
		h(a, v)
	}
}

// Complete runs the completion handlers registered for field.
func (a *Assembly) Complete(field string) {
	for _, h := range a.onComplete[field] {
		h(a)
	}
}

// Validate runs field validators for shown fields, then assembly validators,
// and joins every failure.
func (a *Assembly) Validate() error {
	var errs []error
	for _, r := range a.required {
		f := a.Field(r.field)
		if f == nil {
			errs = append(errs, fmt.Errorf("%s: %w", r.field, ErrNotChild))
			continue
		}
		if !shown(f) {
			continue
		}
		for _, v := range r.validators {
			if err := v(f.Value()); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", r.field, err))
			}
		}
	}
	for _, h := range a.onValidate {
		if err := h(a); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ShowField shows the named field.
func (a *Assembly) ShowField(name string) error {
	f := a.Field(name)
	if f == nil {
		return fmt.Errorf("show %q in %q: %w", name, a.Path(), ErrNotChild)
	}
	return f.Show()
}

// HideField hides the named field.
func (a *Assembly) HideField(name string) error {
	f := a.Field(name)
	if f == nil {
		return fmt.Errorf("hide %q in %q: %w", name, a.Path(), ErrNotChild)
	}
	return f.Hide()
}

// Value asks the extension for a derived field value.
func (a *Assembly) Value(field string) (Value, error) {
	if a.ext == nil {
		return nil, ErrNotImplemented
	}
	return a.ext.Value(a, field)
}

// RelatedValue asks the extension for the value of related as seen from
// field.
func (a *Assembly) RelatedValue(field, related string) (Value, error) {
	if a.ext == nil {
		return nil, ErrNotImplemented
	}
	return a.ext.RelatedValue(a, field, related)
}

func (a *Assembly) ShowComponents(names ...string) error {
	if a.ext == nil {
		return ErrNotImplemented
	}
	return a.ext.ShowComponents(a, names...)
}

func (a *Assembly) HideComponents(names ...string) error {
	if a.ext == nil {
		return ErrNotImplemented
	}
	return a.ext.HideComponents(a, names...)
}

func (a *Assembly) CalculateSpaceRequirements() SpaceRequirement { return a.layoutRequirement() }
func (a *Assembly) RenderLines() []string                        { return a.layoutLines() }
