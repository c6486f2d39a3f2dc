package pane

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Validator checks a component value.
type Validator func(Value) error

// ErrRequired is returned by VRequired and VPressed.
var ErrRequired = errors.New("required")

// VRequired rejects empty text, an empty choice, an empty list or an
// unpressed button.
func VRequired(v Value) error {
	switch v := v.(type) {
	case ListValue:
		if len(v) == 0 {
			return ErrRequired
		}
	case PressValue:
		if !v {
			return ErrRequired
		}
	default:
		if v == nil || strings.TrimSpace(v.String()) == "" {
			return ErrRequired
		}
	}
	return nil
}

// VEmail rejects text that doesn't look like an email address. Empty text
// passes; combine with VRequired.
func VEmail(v Value) error {
	s := valueText(v)
	if s == "" {
		return nil
	}
	at := strings.LastIndex(s, "@")
	if at <= 0 || at == len(s)-1 {
		return fmt.Errorf("invalid email")
	}
	domain := s[at+1:]
	if !strings.Contains(domain, ".") || strings.HasSuffix(domain, ".") {
		return fmt.Errorf("invalid email")
	}
	return nil
}

// VMinLen rejects text shorter than n characters.
func VMinLen(n int) Validator {
	return func(v Value) error {
		if utf8.RuneCountInString(valueText(v)) < n {
			return fmt.Errorf("min %d characters", n)
		}
		return nil
	}
}

// VMaxLen rejects text longer than n characters.
func VMaxLen(n int) Validator {
	return func(v Value) error {
		if utf8.RuneCountInString(valueText(v)) > n {
			return fmt.Errorf("max %d characters", n)
		}
		return nil
	}
}

// VMatch rejects non-empty text that doesn't match pattern. It panics on an
// invalid pattern.
func VMatch(pattern string) Validator {
	re := regexp.MustCompile(pattern)
	return func(v Value) error {
		s := valueText(v)
		if s == "" {
			return nil
		}
		if !re.MatchString(s) {
			return fmt.Errorf("invalid format")
		}
		return nil
	}
}

// VOneOf rejects a choice outside choices.
func VOneOf(choices ...string) Validator {
	return func(v Value) error {
		s := valueText(v)
		for _, c := range choices {
			if s == c {
				return nil
			}
		}
		return fmt.Errorf("%q is not an option", s)
	}
}

// VMinChecked rejects checkbox lists with fewer than n checked items.
func VMinChecked(n int) Validator {
	return func(v Value) error {
		lv, _ := v.(ListValue)
		if len(lv) < n {
			return fmt.Errorf("select at least %d", n)
		}
		return nil
	}
}

// VPressed rejects a button that was not pressed.
func VPressed(v Value) error {
	if p, ok := v.(PressValue); !ok || !bool(p) {
		return ErrRequired
	}
	return nil
}

func valueText(v Value) string {
	if v == nil {
		return ""
	}
	return v.String()
}
