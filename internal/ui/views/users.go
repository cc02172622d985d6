package views

import (
	"fmt"
	"strings"

	"drr/internal/domain"
)

func (r *Renderer) renderUsers(s ViewState) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%d users", len(s.Users)))
	if s.VerifiedOnly {
		b.WriteString(r.styles.Dim.Render("  (verified only)"))
	}
	b.WriteString("\n\n")
	b.WriteString("  " + r.styles.Header.Render(fmt.Sprintf("%s %s %s %s %s",
		pad("Name", 24), pad("Email", 32), pad("Position", 16), pad("Email status", 12), "Role")))
	b.WriteString("\n")

	if len(s.Users) == 0 {
		b.WriteString(r.styles.Dim.Render("  No users."))
		return b.String()
	}

	start, end := viewport(len(s.Users), s.UserIndex, s.Height-14)
	for i := start; i < end; i++ {
		u := s.Users[i]
		role := "member"
		if u.IsSuperuser {
			role = "superuser"
		}
		line := fmt.Sprintf("%s %s %s %s %s",
			pad(u.DisplayName(), 24), pad(u.Email, 32), pad(u.Position, 16), pad(u.Verified.String(), 12), role)
		switch {
		case i == s.UserIndex:
			b.WriteString(r.styles.Highlight.Render("▶ ") + r.styles.HighlightBg.Render(line))
		case u.Verified != domain.Verified:
			b.WriteString("  " + r.styles.StatusWarning.Render(line))
		default:
			b.WriteString("  " + line)
		}
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
