// Package forms holds the multi-field input forms of the dashboard and the
// inline validation that keeps invalid input from reaching the backend.
package forms

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"drr/internal/validate"
)

// Kind selects how a field is masked and validated
type Kind int

const (
	KindText Kind = iota
	KindEmail
	KindPassword    // existing password, only required
	KindNewPassword // must pass the strength rules
	KindConfirm     // must equal the KindNewPassword field
)

// Spec describes one field when building a form
type Spec struct {
	Key      string
	Label    string
	Kind     Kind
	Optional bool
	Value    string
}

type Field struct {
	Spec
	Input textinput.Model
}

// Form is an ordered set of fields with one focused field
type Form struct {
	Title  string
	Fields []*Field
	Errors map[string]string

	focus int
}

func New(title string, specs ...Spec) *Form {
	f := &Form{Title: title, Errors: map[string]string{}}
	for _, s := range specs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 256
		ti.SetValue(s.Value)
		if s.Kind == KindPassword || s.Kind == KindNewPassword || s.Kind == KindConfirm {
			ti.EchoMode = textinput.EchoPassword
		}
		f.Fields = append(f.Fields, &Field{Spec: s, Input: ti})
	}
	if len(f.Fields) > 0 {
		f.Fields[0].Input.Focus()
	}
	return f
}

// FocusIndex returns the index of the focused field
func (f *Form) FocusIndex() int {
	return f.focus
}

// Move shifts focus by step, wrapping around
func (f *Form) Move(step int) {
	n := len(f.Fields)
	if n == 0 {
		return
	}
	f.Fields[f.focus].Input.Blur()
	f.focus = ((f.focus+step)%n + n) % n
	f.Fields[f.focus].Input.Focus()
}

// Update feeds a key to the focused field and clears its stale error
func (f *Form) Update(msg tea.KeyMsg) tea.Cmd {
	if len(f.Fields) == 0 {
		return nil
	}
	field := f.Fields[f.focus]
	var cmd tea.Cmd
	field.Input, cmd = field.Input.Update(msg)
	delete(f.Errors, field.Key)
	return cmd
}

// Value returns the trimmed value of a field; passwords are returned verbatim
func (f *Form) Value(key string) string {
	for _, field := range f.Fields {
		if field.Key != key {
			continue
		}
		switch field.Kind {
		case KindPassword, KindNewPassword, KindConfirm:
			return field.Input.Value()
		default:
			return strings.TrimSpace(field.Input.Value())
		}
	}
	return ""
}

func (f *Form) SetValue(key, value string) {
	for _, field := range f.Fields {
		if field.Key == key {
			field.Input.SetValue(value)
		}
	}
}

func (f *Form) field(kind Kind) *Field {
	for _, field := range f.Fields {
		if field.Kind == kind {
			return field
		}
	}
	return nil
}

// Strength reports the live strength of the new password, if the form has one
func (f *Form) Strength() (validate.Strength, bool) {
	field := f.field(KindNewPassword)
	if field == nil || field.Input.Value() == "" {
		return validate.Strength{}, false
	}
	return validate.PasswordStrength(field.Input.Value()), true
}

// Match reports whether the confirmation equals the new password. It is nil
// while the confirmation is empty or the form has none.
func (f *Form) Match() *bool {
	pw, confirm := f.field(KindNewPassword), f.field(KindConfirm)
	if pw == nil || confirm == nil {
		return nil
	}
	return validate.PasswordsMatch(pw.Input.Value(), confirm.Input.Value())
}

// Validate checks every field, records the errors and reports whether the
// form may be submitted. Focus moves to the first invalid field.
func (f *Form) Validate() bool {
	f.Errors = map[string]string{}
	first := -1
	for i, field := range f.Fields {
		if msg := f.check(field); msg != "" {
			f.Errors[field.Key] = msg
			if first < 0 {
				first = i
			}
		}
	}
	if first >= 0 && first != f.focus {
		f.Move(first - f.focus)
	}
	return first < 0
}

func (f *Form) check(field *Field) string {
	value := f.Value(field.Key)
	if value == "" {
		if field.Optional {
			return ""
		}
		return field.Label + " is required"
	}

	switch field.Kind {
	case KindEmail:
		if !validate.Email(value) {
			return "Enter a valid email address"
		}
	case KindNewPassword:
		if s := validate.PasswordStrength(value); !s.IsValid {
			return s.Message
		}
	case KindConfirm:
		if m := f.Match(); m != nil && !*m {
			return "Passwords do not match"
		}
	}
	return ""
}
