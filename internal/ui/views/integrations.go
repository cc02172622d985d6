package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"drr/internal/domain"
	"drr/internal/ui/state"
)

func (r *Renderer) renderIntegrations(s ViewState) string {
	var b strings.Builder

	tabs := make([]string, 0, len(domain.Platforms))
	for _, p := range domain.Platforms {
		if p == s.Platform {
			tabs = append(tabs, r.styles.TabActive.Render(p.Title()))
		} else {
			tabs = append(tabs, r.styles.TabInactive.Render(p.Title()))
		}
	}
	b.WriteString(strings.Join(tabs, "  "))
	b.WriteString("\n\n")

	if len(s.Integrations) == 0 {
		b.WriteString(r.styles.Dim.Render(emptyIntegrationsHint(s.Platform)))
		return b.String()
	}

	b.WriteString("  " + r.styles.Header.Render(fmt.Sprintf("%s %s %s", pad("Destination", 40), pad("Status", 12), "Connected")))
	b.WriteString("\n")
	height := s.Height - 14
	start, end := viewport(len(s.Integrations), s.IntegrationIndex, height)
	for i := start; i < end; i++ {
		in := s.Integrations[i]
		line := fmt.Sprintf("%s %s %s", pad(in.Destination(), 40), pad(in.Status, 12), formatDay(in.CreatedAt))
		if i == s.IntegrationIndex {
			b.WriteString(r.styles.Highlight.Render("▶ ") + r.styles.HighlightBg.Render(line))
		} else {
			b.WriteString("  " + statusStyle(r.styles, in.Status).Render(line))
		}
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func emptyIntegrationsHint(p domain.Platform) string {
	switch p {
	case domain.PlatformTelegram:
		return "No Telegram chats connected. Press o to get a start link for the bot."
	case domain.PlatformDiscord:
		return "No Discord channels connected. Press o to sign in, b to invite the bot, then c to pick channels."
	default:
		return fmt.Sprintf("No %s integrations yet. Press o to connect, then c to pick channels.", p.Title())
	}
}

func statusStyle(st *Styles, status string) lipgloss.Style {
	switch strings.ToLower(status) {
	case "active", "verified", "enabled":
		return st.StatusSuccess
	case "pending", "verifying":
		return st.StatusWarning
	case "error", "failed", "disabled":
		return st.StatusError
	default:
		return st.Dim
	}
}

// RenderPicker renders the channel picker modal
func (r *Renderer) RenderPicker(p *state.Picker, height int) string {
	var b strings.Builder
	b.WriteString(r.styles.Title.Render(fmt.Sprintf("Add %s channels", p.Platform.Title())))
	b.WriteString("\n\n")

	switch {
	case p.Loading:
		b.WriteString(r.styles.StatusLoading.Render("Loading channels..."))
		return b.String()
	case len(p.Groups) == 0:
		msg := p.Message
		if msg == "" {
			msg = "Nothing to pick from yet."
		}
		b.WriteString(r.styles.Dim.Render(msg))
		return b.String()
	}

	lines := make([]string, 0, len(p.Rows))
	for i, row := range p.Rows {
		g := p.Groups[row.Group]
		var line string
		if row.Channel < 0 {
			mark := ""
			if row.SelectAll {
				mark = checkbox(p.Selection.IsGroupSelected(g), p.Selection.IsGroupIndeterminate(g)) + " "
			}
			count := r.styles.Dim.Render(fmt.Sprintf(" %d/%d", p.Selection.SelectedCount(g), len(g.Channels)))
			if len(g.Channels) == 0 {
				count = r.styles.Dim.Render(" no channels")
			}
			line = mark + r.styles.Header.Render(g.Name) + count
		} else {
			c := g.Channels[row.Channel]
			line = "    " + checkbox(p.Selection.IsSelected(g, c), false) + " #" + c.Name
			if c.Kind != "" && c.Kind != domain.ChannelText && c.Kind != domain.ChannelPublic {
				line += r.styles.Dim.Render(" (" + string(c.Kind) + ")")
			}
		}
		if i == p.Cursor {
			line = r.styles.Highlight.Render("▶ ") + line
		} else {
			line = "  " + line
		}
		lines = append(lines, line)
	}

	start, end := viewport(len(lines), p.Cursor, height-12)
	b.WriteString(strings.Join(lines[start:end], "\n"))
	b.WriteString("\n\n")

	status := fmt.Sprintf("%d selected", p.Selection.Len())
	if p.Submitting {
		status = r.styles.StatusLoading.Render("Adding channels...")
	}
	b.WriteString(status)
	if p.Message != "" {
		b.WriteString("\n")
		b.WriteString(r.styles.StatusError.Render(p.Message))
	}
	return b.String()
}

func checkbox(all, some bool) string {
	switch {
	case all:
		return "[x]"
	case some:
		return "[-]"
	default:
		return "[ ]"
	}
}
