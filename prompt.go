package pane

import "fmt"

// PromptFactory asks the user for a single component's value, outside any
// page, and returns it in the component's canonical shape.
type PromptFactory func(c *Component) (Value, error)

// PromptProvider holds the factory used by Component.CreatePrompt. Tests swap
// in a scripted factory; programs install a real one (see teakit).
type PromptProvider struct {
	factory PromptFactory
}

// NewPromptProvider returns a provider using f, which may be nil.
func NewPromptProvider(f PromptFactory) *PromptProvider {
	return &PromptProvider{factory: f}
}

// SetFactory installs f and returns a func restoring the previous factory.
func (p *PromptProvider) SetFactory(f PromptFactory) (restore func()) {
	prev := p.factory
	p.factory = f
	return func() { p.factory = prev }
}

// ClearFactory removes the factory.
func (p *PromptProvider) ClearFactory() {
	p.factory = nil
}

// WithFactory runs fn with f installed, restoring the previous factory
// afterwards even if fn panics.
func (p *PromptProvider) WithFactory(f PromptFactory, fn func() error) error {
	restore := p.SetFactory(f)
	defer restore()
	return fn()
}

// Create prompts for c's value.
func (p *PromptProvider) Create(c *Component) (Value, error) {
	if p == nil || p.factory == nil {
		return nil, ErrNoPromptFactory
	}
	return p.factory(c)
}

// CreatePrompt asks p for a value and stores it in the component.
func (c *Component) CreatePrompt(p *PromptProvider) (Value, error) {
	v, err := p.Create(c)
	if err != nil {
		return nil, fmt.Errorf("prompt %q: %w", c.name, err)
	}
	if err := c.SetValue(v); err != nil {
		return nil, err
	}
	return v, nil
}
