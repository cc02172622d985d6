package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"drr/internal/banner"
	"drr/internal/domain"
	"drr/internal/table"
	"drr/internal/ui/forms"
	"drr/internal/ui/input/types"
	"drr/internal/ui/state"
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width  int
	Height int
	Screen types.Screen
	Mode   types.Mode
	User   domain.User
	Now    time.Time

	Banners []banner.Banner
	Loading []string

	// Domains
	Records     []domain.Record
	Page        table.PageInfo
	TableView   table.View
	RecordIndex int

	// Integrations
	Platform         domain.Platform
	Integrations     []domain.Integration
	IntegrationIndex int
	Picker           *state.Picker

	// Users
	Users        []domain.User
	UserIndex    int
	VerifiedOnly bool

	Form      *forms.Form
	TextInput string
	Confirm   string
	Overlay   string // inline help or details when the pager is unavailable
	HelpModel help.Model
}

// Renderer handles all view rendering
type Renderer struct {
	styles      *Styles
	popupRender *PopupRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:      styles,
		popupRender: NewPopupRenderer(styles),
	}
}

// Styles exposes the renderer styles
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Render produces the complete view
func (r *Renderer) Render(s ViewState) string {
	content := &strings.Builder{}

	content.WriteString(r.renderTitle(s))
	content.WriteString("\n")
	if b := r.renderBanners(s.Banners); b != "" {
		content.WriteString(b)
		content.WriteString("\n")
	}
	content.WriteString("\n")

	switch s.Screen {
	case types.ScreenDomains:
		content.WriteString(r.renderDomains(s))
	case types.ScreenIntegrations:
		content.WriteString(r.renderIntegrations(s))
	case types.ScreenUsers:
		content.WriteString(r.renderUsers(s))
	default:
		if s.Form != nil {
			content.WriteString(r.styles.FormBox.Render(r.RenderForm(s.Form)))
		}
	}

	// Prompt line
	switch {
	case s.Confirm != "":
		content.WriteString("\n\n")
		content.WriteString(r.styles.Confirm.Render(s.Confirm + " "))
	case s.Mode == types.ModeFilter, s.Mode == types.ModePrompt:
		content.WriteString("\n\n")
		content.WriteString(s.TextInput)
	}

	keys := KeysFor(s.Screen, s.User.IsSuperuser)
	if s.Picker != nil {
		keys = PickerKeys()
	}
	footer := s.HelpModel.View(keys)

	// Push the footer to the bottom
	height := s.Height - 2
	if height <= 0 {
		height = 22
	}
	if pad := height - strings.Count(content.String(), "\n") - 2; pad > 0 {
		content.WriteString(strings.Repeat("\n", pad))
	}
	content.WriteString("\n")
	content.WriteString(footer)

	finalContent := r.styles.Main.Render(content.String())

	switch {
	case s.Overlay != "":
		return r.popupRender.RenderPopupOverlay(finalContent, s.Overlay, s.Height, s.Width, r.styles.PopupBox)
	case s.Picker != nil:
		return r.popupRender.RenderPopupOverlay(finalContent, r.RenderPicker(s.Picker, s.Height), s.Height, s.Width, r.styles.PopupBox)
	case s.Form != nil && !s.Screen.IsAuth():
		return r.popupRender.RenderPopupOverlay(finalContent, r.RenderForm(s.Form), s.Height, s.Width, r.styles.PopupBox)
	}
	return finalContent
}

func (r *Renderer) renderTitle(s ViewState) string {
	logo := r.styles.Title.Render("drr")

	left := logo
	if !s.Screen.IsAuth() {
		tabs := []string{}
		for _, screen := range []types.Screen{types.ScreenDomains, types.ScreenIntegrations, types.ScreenUsers} {
			if screen == types.ScreenUsers && !s.User.IsSuperuser {
				continue
			}
			if screen == s.Screen {
				tabs = append(tabs, r.styles.TabActive.Render(screen.String()))
			} else {
				tabs = append(tabs, r.styles.TabInactive.Render(screen.String()))
			}
		}
		left = logo + "  " + strings.Join(tabs, "  ")
	}

	right := []string{}
	if len(s.Loading) > 0 {
		spinner := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
		frame := int(s.Now.UnixMilli()/80) % len(spinner)
		if frame < 0 {
			frame = 0
		}
		right = append(right, r.styles.Dim.Render(fmt.Sprintf("%s Loading %s", spinner[frame], strings.Join(s.Loading, ", "))))
	}
	if s.User.Email != "" && !s.Screen.IsAuth() {
		who := s.User.DisplayName()
		if s.User.IsSuperuser {
			who += " (admin)"
		}
		right = append(right, r.styles.Dim.Render(who))
	}
	if len(right) == 0 {
		return left
	}

	rightContent := strings.Join(right, "  ")
	termWidth := s.Width
	if termWidth <= 0 {
		termWidth = 80
	}
	padding := termWidth - 4 - lipgloss.Width(left) - lipgloss.Width(rightContent)
	if padding < 2 {
		padding = 2
	}
	return left + strings.Repeat(" ", padding) + rightContent
}

func (r *Renderer) renderBanners(banners []banner.Banner) string {
	if len(banners) == 0 {
		return ""
	}
	lines := make([]string, 0, len(banners))
	for _, b := range banners {
		text := b.Text
		if b.Repeats > 0 {
			text = fmt.Sprintf("%s (x%d)", text, b.Repeats+1)
		}
		icon := "•"
		switch b.Kind {
		case banner.Error:
			icon = "✗"
		case banner.Success:
			icon = "✓"
		}
		lines = append(lines, r.styles.BannerStyle(b.Kind).Render(icon+" "+text))
	}
	return strings.Join(lines, "\n")
}

// viewport returns the [start, end) window of n rows that keeps cursor visible
func viewport(n, cursor, height int) (int, int) {
	if height <= 0 || n <= height {
		return 0, n
	}
	start := cursor - height/2
	if start < 0 {
		start = 0
	}
	if start+height > n {
		start = n - height
	}
	return start, start + height
}

// truncate cuts s to width runes, marking the cut with an ellipsis
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(r[:width-1]) + "…"
}

// pad right-pads s to width runes
func pad(s string, width int) string {
	s = truncate(s, width)
	if n := width - len([]rune(s)); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}
