package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"drr/internal/table"
	"drr/internal/ui/input/types"
)

// HelpContent renders the full key reference shown in the pager
func HelpContent(superuser bool) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	noteStyle := lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241"))

	var help strings.Builder
	help.WriteString(titleStyle.Render("drr help"))
	help.WriteString("\n")

	writeSection := func(title string, bindings []key.Binding) {
		help.WriteString(sectionStyle.Render(title))
		help.WriteString("\n")
		writeBindings(&help, bindings)
		help.WriteString("\n")
	}

	dash := KeysFor(types.ScreenDomains, superuser)
	writeSection("Everywhere", dash.Global)
	writeSection("Domains & SSL", dash.Bindings)

	cols := make([]string, 0, len(table.Fields))
	for i, f := range table.Fields {
		cols = append(cols, fmt.Sprintf("%d %s", i+1, f))
	}
	help.WriteString(noteStyle.Render("  Columns: " + strings.Join(cols, ", ")))
	help.WriteString("\n")
	help.WriteString(noteStyle.Render(fmt.Sprintf("  Filters apply from %d characters. Rows: red expired, orange ≤7 days, yellow ≤30 days.", table.MinFilterLength)))
	help.WriteString("\n\n")

	writeSection("Integrations", KeysFor(types.ScreenIntegrations, superuser).Bindings)
	writeSection("Channel picker", PickerKeys().Bindings)
	if superuser {
		writeSection("Users", KeysFor(types.ScreenUsers, superuser).Bindings)
	}
	writeSection("Forms", KeysFor(types.ScreenRegister, superuser).Bindings)

	return strings.TrimRight(help.String(), "\n")
}

func writeBindings(b *strings.Builder, bindings []key.Binding) {
	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))

	width := 0
	for _, k := range bindings {
		if w := lipgloss.Width(k.Help().Key); w > width {
			width = w
		}
	}
	for _, k := range bindings {
		h := k.Help()
		gap := strings.Repeat(" ", width-lipgloss.Width(h.Key)+2)
		b.WriteString(fmt.Sprintf("  %s%s%s\n", keyStyle.Render(h.Key), gap, descStyle.Render(h.Desc)))
	}
}
