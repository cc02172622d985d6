package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"drr/internal/ui/forms"
	"drr/internal/validate"
)

// RenderForm renders a form with its inline errors, the password strength
// meter and the confirmation match indicator
func (r *Renderer) RenderForm(f *forms.Form) string {
	var b strings.Builder
	b.WriteString(r.styles.Title.Render(f.Title))
	b.WriteString("\n\n")

	for i, field := range f.Fields {
		label := field.Label
		if field.Optional {
			label += r.styles.Dim.Render(" (optional)")
		}
		marker := "  "
		if i == f.FocusIndex() {
			marker = r.styles.Highlight.Render("▶ ")
		}
		b.WriteString(marker + r.styles.FieldLabel.Render(label))
		b.WriteString("\n")
		b.WriteString("  " + field.Input.View())
		b.WriteString("\n")

		switch field.Kind {
		case forms.KindNewPassword:
			if st, ok := f.Strength(); ok && field.Input.Value() != "" {
				b.WriteString("  " + r.strengthMeter(st))
				b.WriteString("\n")
			}
		case forms.KindConfirm:
			if match := f.Match(); match != nil {
				if *match {
					b.WriteString("  " + r.styles.StatusSuccess.Render("✓ Passwords match"))
				} else {
					b.WriteString("  " + r.styles.StatusError.Render("✗ Passwords do not match"))
				}
				b.WriteString("\n")
			}
		}
		if msg := f.Errors[field.Key]; msg != "" {
			b.WriteString("  " + r.styles.FieldError.Render(msg))
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (r *Renderer) strengthMeter(st validate.Strength) string {
	passed := st.Checks.Passed()
	color := lipgloss.Color(StrengthColor(st.Level))
	bar := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("■", passed)) +
		r.styles.Dim.Render(strings.Repeat("□", 5-passed))
	text := fmt.Sprintf(" %s", st.Level)
	if !st.IsValid && st.Message != "" {
		text += r.styles.Dim.Render(" · " + st.Message)
	}
	return bar + lipgloss.NewStyle().Foreground(color).Render(text)
}
