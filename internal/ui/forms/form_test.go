package forms

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"drr/internal/validate"
)

func typeInto(f *Form, text string) {
	for _, r := range text {
		f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func signUp() *Form {
	return New("Register",
		Spec{Key: "email", Label: "Email", Kind: KindEmail},
		Spec{Key: "password", Label: "Password", Kind: KindNewPassword},
		Spec{Key: "confirm", Label: "Confirm password", Kind: KindConfirm},
		Spec{Key: "position", Label: "Position", Optional: true},
	)
}

func TestFocusWraps(t *testing.T) {
	f := signUp()
	assert.Equal(t, 0, f.FocusIndex())
	f.Move(-1)
	assert.Equal(t, 3, f.FocusIndex())
	f.Move(1)
	assert.Equal(t, 0, f.FocusIndex())
}

func TestTypingGoesToFocusedField(t *testing.T) {
	f := signUp()
	typeInto(f, "  a@b.co ")
	f.Move(1)
	typeInto(f, "Abcdefg1!")

	assert.Equal(t, "a@b.co", f.Value("email"))
	assert.Equal(t, "Abcdefg1!", f.Value("password"))
}

func TestValidateReportsFirstProblemAndFocusesIt(t *testing.T) {
	f := signUp()
	f.SetValue("email", "a@b.co")
	f.SetValue("password", "abcdefg1")
	f.SetValue("confirm", "abcdefg1")

	require.False(t, f.Validate())
	assert.Equal(t, 1, f.FocusIndex())
	assert.Equal(t, validate.PasswordStrength("abcdefg1").Message, f.Errors["password"])
	assert.NotContains(t, f.Errors, "email")
	assert.NotContains(t, f.Errors, "position")
}

func TestValidateChecksEmailAndConfirmation(t *testing.T) {
	f := signUp()
	f.SetValue("email", "not-an-email")
	f.SetValue("password", "Abcdefg1!")
	f.SetValue("confirm", "Abcdefg1?")

	require.False(t, f.Validate())
	assert.Equal(t, "Enter a valid email address", f.Errors["email"])
	assert.Equal(t, "Passwords do not match", f.Errors["confirm"])

	f.SetValue("email", "a@b.co")
	f.SetValue("confirm", "Abcdefg1!")
	assert.True(t, f.Validate())
	assert.Empty(t, f.Errors)
}

func TestRequiredFields(t *testing.T) {
	f := signUp()
	require.False(t, f.Validate())
	assert.Equal(t, "Email is required", f.Errors["email"])
	assert.Equal(t, "Confirm password is required", f.Errors["confirm"])
}

func TestLiveStrengthAndMatch(t *testing.T) {
	f := signUp()
	_, ok := f.Strength()
	assert.False(t, ok)
	assert.Nil(t, f.Match())

	f.SetValue("password", "Abcdefg1!")
	s, ok := f.Strength()
	require.True(t, ok)
	assert.Equal(t, validate.Strong, s.Level)

	f.SetValue("confirm", "Abcdefg1")
	require.NotNil(t, f.Match())
	assert.False(t, *f.Match())
}

func TestUpdateClearsFieldError(t *testing.T) {
	f := signUp()
	f.Validate()
	require.Contains(t, f.Errors, "email")
	typeInto(f, "a")
	assert.NotContains(t, f.Errors, "email")
}
