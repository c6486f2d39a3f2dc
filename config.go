package pane

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the user-tunable settings of a pane program.
//
//	terminal_height: 20
//	theme: light
//	border_colors:
//	  accent: "#7aa2f7"
//	log_level: debug
//	keys:
//	  next: [tab, down]
//	  prev: [shift+tab, up]
type Config struct {
	// TerminalHeight overrides the detected terminal height when positive.
	TerminalHeight int               `yaml:"terminal_height"`
	ThemeName      string            `yaml:"theme"`
	BorderColors   map[string]string `yaml:"border_colors"`
	LogLevel       string            `yaml:"log_level"`
	LogFile        string            `yaml:"log_file"`
	Keys           KeyConfig         `yaml:"keys"`
}

// KeyConfig lists the keys bound to focus traversal, in bubbletea key
// string syntax.
type KeyConfig struct {
	Next []string `yaml:"next"`
	Prev []string `yaml:"prev"`
	Quit []string `yaml:"quit"`
}

// DefaultConfig returns the settings used when no file is given.
func DefaultConfig() Config {
	return Config{
		ThemeName: "dark",
		LogLevel:  "info",
		Keys: KeyConfig{
			Next: []string{"tab"},
			Prev: []string{"shift+tab"},
			Quit: []string{"ctrl+c", "esc"},
		},
	}
}

// LoadConfig reads a YAML config file on top of DefaultConfig.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig parses YAML on top of DefaultConfig.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if cfg.TerminalHeight < 0 {
		return Config{}, fmt.Errorf("parse config: terminal_height %d: %w", cfg.TerminalHeight, ErrInvalidRequirement)
	}
	return cfg, nil
}

// Theme resolves the named theme with the configured border colours applied.
func (c Config) Theme() Theme {
	t := ThemeByName(c.ThemeName)
	if len(c.BorderColors) > 0 {
		t = t.WithClasses(c.BorderColors)
	}
	return t
}

// Height returns TerminalHeight, or fallback when it is unset.
func (c Config) Height(fallback int) int {
	if c.TerminalHeight > 0 {
		return c.TerminalHeight
	}
	return fallback
}
