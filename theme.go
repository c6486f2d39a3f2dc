package pane

import (
	"maps"
	"strings"
)

// Theme provides the colours a live widget tree is drawn with. Colours use
// lipgloss syntax: ANSI numbers ("8") or hex ("#7aa2f7"). An empty colour
// means the terminal default.
type Theme struct {
	Name   string
	Base   string // default text
	Muted  string // de-emphasized text, placeholders
	Accent string // focused widget, selection markers
	Error  string // validation messages
	Border string // borders without a class of their own

	// Classes maps a border class to its colour, overriding Border.
	Classes map[string]string
}

// ThemeDark is a dark theme with light text on dark background.
var ThemeDark = Theme{
	Name:   "dark",
	Base:   "15",
	Muted:  "8",
	Accent: "14",
	Error:  "9",
	Border: "8",
	Classes: map[string]string{
		"accent": "14",
		"error":  "9",
	},
}

// ThemeLight is a light theme with dark text on light background.
var ThemeLight = Theme{
	Name:   "light",
	Base:   "0",
	Muted:  "8",
	Accent: "4",
	Error:  "1",
	Border: "7",
	Classes: map[string]string{
		"accent": "4",
		"error":  "1",
	},
}

// ThemeMonochrome leaves every colour to the terminal.
var ThemeMonochrome = Theme{Name: "monochrome"}

// ThemeByName resolves a theme name, falling back to ThemeDark.
func ThemeByName(name string) Theme {
	switch strings.ToLower(name) {
	case "light":
		return ThemeLight
	case "monochrome", "mono", "none":
		return ThemeMonochrome
	}
	return ThemeDark
}

// BorderColor returns the colour for a border class.
func (t Theme) BorderColor(class string) string {
	if c, ok := t.Classes[class]; ok {
		return c
	}
	return t.Border
}

// WithClasses returns a copy of t with extra border class colours.
func (t Theme) WithClasses(classes map[string]string) Theme {
	merged := maps.Clone(t.Classes)
	if merged == nil {
		merged = make(map[string]string, len(classes))
	}
	maps.Copy(merged, classes)
	t.Classes = merged
	return t
}
