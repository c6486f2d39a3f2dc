package pane

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signup() *Assembly {
	return NewAssembly("signup",
		Input("email", "Email"),
		Select("plan", "Plan", "Free", "Team"),
		Input("seats", "Seats"),
		Button("submit", "Submit"),
	)
}

func TestAssemblyFieldChangeHandlersRunInOrder(t *testing.T) {
	a := signup()
	var got []string
	a.OnFieldChange("plan", func(_ *Assembly, v Value) { got = append(got, "first:"+v.String()) }).
		OnFieldChange("plan", func(_ *Assembly, v Value) { got = append(got, "second:"+v.String()) })

	require.NoError(t, a.Field("plan").SetValue(ChoiceValue("Team")))
	assert.Equal(t, []string{"first:Team", "second:Team"}, got)

	require.NoError(t, a.Field("email").SetValue(TextValue("x")))
	assert.Len(t, got, 2, "other fields do not trigger plan handlers")
}

func TestAssemblyHandlersShowAndHideFields(t *testing.T) {
	a := signup()
	require.NoError(t, a.HideField("seats"))
	a.OnFieldChange("plan", func(a *Assembly, v Value) {
		if v.String() == "Free" {
			_ = a.HideField("seats")
		} else {
			_ = a.ShowField("seats")
		}
	})

	require.NoError(t, a.Field("plan").SetValue(ChoiceValue("Team")))
	assert.True(t, a.Field("seats").Visible())
	require.NoError(t, a.Field("plan").SetValue(ChoiceValue("Free")))
	assert.False(t, a.Field("seats").Visible())

	require.ErrorIs(t, a.ShowField("nope"), ErrNotChild)
	require.ErrorIs(t, a.HideField("nope"), ErrNotChild)
}

func TestAssemblyNestedField(t *testing.T) {
	inner := NewCard("extra", "Extra", Input("note", "Note"))
	a := NewAssembly("form", inner)
	var seen Value
	a.OnFieldChange("note", func(_ *Assembly, v Value) { seen = v })

	require.NoError(t, a.Field("note").SetValue(TextValue("hi")))
	assert.Equal(t, TextValue("hi"), seen)

	v, err := a.FieldValue("note")
	require.NoError(t, err)
	assert.Equal(t, TextValue("hi"), v)

	_, err = a.FieldValue("missing")
	require.ErrorIs(t, err, ErrNotChild)
}

func TestAssemblyValidate(t *testing.T) {
	a := signup().
		RequireField("email", VRequired, VEmail).
		RequireField("seats", VRequired)
	teamNeedsSeats := errors.New("team plan needs seats")
	a.OnValidate(func(a *Assembly) error {
		plan, _ := a.FieldValue("plan")
		seats, _ := a.FieldValue("seats")
		if plan.String() == "Team" && seats.String() == "" {
			return teamNeedsSeats
		}
		return nil
	})

	err := a.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRequired)
	assert.Contains(t, err.Error(), "email")
	assert.Contains(t, err.Error(), "seats")

	require.NoError(t, a.Field("email").SetValue(TextValue("ada@example.com")))
	require.NoError(t, a.HideField("seats"))
	assert.NoError(t, a.Validate(), "hidden fields are not validated")

	require.NoError(t, a.Field("plan").SetValue(ChoiceValue("Team")))
	assert.ErrorIs(t, a.Validate(), teamNeedsSeats)
}

func TestAssemblyValidateMissingField(t *testing.T) {
	a := signup().RequireField("ghost", VRequired)
	assert.ErrorIs(t, a.Validate(), ErrNotChild)
}

func TestAssemblyComplete(t *testing.T) {
	a := signup()
	var order []int
	a.OnComplete("submit", func(*Assembly) { order = append(order, 1) }).
		OnComplete("submit", func(*Assembly) { order = append(order, 2) })

	a.Complete("submit")
	a.Complete("email")
	assert.Equal(t, []int{1, 2}, order)
}

func TestAssemblyWithoutExtension(t *testing.T) {
	a := signup()
	_, err := a.Value("email")
	assert.ErrorIs(t, err, ErrNotImplemented)
	_, err = a.RelatedValue("email", "plan")
	assert.ErrorIs(t, err, ErrNotImplemented)
	assert.ErrorIs(t, a.ShowComponents("seats"), ErrNotImplemented)
	assert.ErrorIs(t, a.HideComponents("seats"), ErrNotImplemented)
}

// fieldsExtension resolves values straight from the assembly's fields.
type fieldsExtension struct{}

func (fieldsExtension) Value(a *Assembly, field string) (Value, error) {
	return a.FieldValue(field)
}

func (fieldsExtension) RelatedValue(a *Assembly, _, related string) (Value, error) {
	return a.FieldValue(related)
}

func (fieldsExtension) ShowComponents(a *Assembly, names ...string) error {
	for _, n := range names {
		if err := a.ShowField(n); err != nil {
			return err
		}
	}
	return nil
}

func (fieldsExtension) HideComponents(a *Assembly, names ...string) error {
	for _, n := range names {
		if err := a.HideField(n); err != nil {
			return err
		}
	}
	return nil
}

func TestAssemblyExtension(t *testing.T) {
	a := signup().Extend(fieldsExtension{})
	require.NoError(t, a.Field("plan").SetValue(ChoiceValue("Team")))

	v, err := a.RelatedValue("seats", "plan")
	require.NoError(t, err)
	assert.Equal(t, ChoiceValue("Team"), v)

	require.NoError(t, a.HideComponents("seats", "email"))
	assert.False(t, a.Field("seats").Visible())
	require.NoError(t, a.ShowComponents("seats"))
	assert.True(t, a.Field("seats").Visible())
}
