package pane

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVRequired(t *testing.T) {
	assert.ErrorIs(t, VRequired(TextValue("  ")), ErrRequired)
	assert.ErrorIs(t, VRequired(ChoiceValue("")), ErrRequired)
	assert.ErrorIs(t, VRequired(ListValue{}), ErrRequired)
	assert.ErrorIs(t, VRequired(PressValue(false)), ErrRequired)
	assert.ErrorIs(t, VRequired(nil), ErrRequired)

	assert.NoError(t, VRequired(TextValue("x")))
	assert.NoError(t, VRequired(ListValue{"a"}))
	assert.NoError(t, VRequired(PressValue(true)))
}

func TestVEmail(t *testing.T) {
	for _, ok := range []string{"", "a@b.io", "first.last@sub.example.com"} {
		assert.NoError(t, VEmail(TextValue(ok)), ok)
	}
	for _, bad := range []string{"plain", "@b.io", "a@", "a@localhost", "a@b."} {
		assert.Error(t, VEmail(TextValue(bad)), bad)
	}
}

func TestLengthValidators(t *testing.T) {
	assert.Error(t, VMinLen(3)(TextValue("ab")))
	assert.NoError(t, VMinLen(3)(TextValue("äöü")))
	assert.Error(t, VMaxLen(2)(TextValue("abc")))
	assert.NoError(t, VMaxLen(2)(TextValue("ab")))
}

func TestVMatch(t *testing.T) {
	digits := VMatch(`^[0-9]+$`)
	assert.NoError(t, digits(TextValue("")))
	assert.NoError(t, digits(TextValue("42")))
	assert.EqualError(t, digits(TextValue("4x")), "invalid format")
	assert.Panics(t, func() { VMatch("(") })
}

func TestVOneOf(t *testing.T) {
	v := VOneOf("Free", "Team")
	assert.NoError(t, v(ChoiceValue("Team")))
	assert.EqualError(t, v(ChoiceValue("Gold")), `"Gold" is not an option`)
}

func TestVMinChecked(t *testing.T) {
	v := VMinChecked(2)
	assert.Error(t, v(ListValue{"a"}))
	assert.NoError(t, v(ListValue{"a", "b"}))
	assert.Error(t, v(TextValue("a")))
}

func TestVPressed(t *testing.T) {
	assert.ErrorIs(t, VPressed(PressValue(false)), ErrRequired)
	assert.ErrorIs(t, VPressed(TextValue("yes")), ErrRequired)
	assert.NoError(t, VPressed(PressValue(true)))
}
