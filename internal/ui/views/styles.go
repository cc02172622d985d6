package views

import (
	"github.com/charmbracelet/lipgloss"

	"drr/internal/banner"
	"drr/internal/table"
	"drr/internal/ui/input/types"
	"drr/internal/validate"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Confirm       lipgloss.Style
	Dim           lipgloss.Style
	Filter        lipgloss.Style
	Help          lipgloss.Style
	Main          lipgloss.Style
	Scroll        lipgloss.Style
	Header        lipgloss.Style
	Highlight     lipgloss.Style
	HighlightBg   lipgloss.Style
	TabActive     lipgloss.Style
	TabInactive   lipgloss.Style
	StatusError   lipgloss.Style
	StatusWarning lipgloss.Style
	StatusLoading lipgloss.Style
	StatusSuccess lipgloss.Style
	StatusInfo    lipgloss.Style
	FieldLabel    lipgloss.Style
	FieldError    lipgloss.Style
	PopupBox      lipgloss.Style
	FormBox       lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Confirm: lipgloss.NewStyle().Bold(true),
		Dim:     lipgloss.NewStyle().Faint(true),
		Filter:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		Help:    lipgloss.NewStyle().Faint(true),
		Main: lipgloss.NewStyle().
			Padding(1, 2),
		Scroll:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Header:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Highlight:     lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		HighlightBg:   lipgloss.NewStyle().Background(lipgloss.Color("238")),
		TabActive:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("226")).Underline(true),
		TabInactive:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		StatusLoading: lipgloss.NewStyle().Foreground(lipgloss.Color("241")), // gray
		StatusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
		StatusInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("51")),  // cyan
		FieldLabel:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		FieldError:    lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		PopupBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(1, 2).
			BorderForeground(lipgloss.Color("99")),
		FormBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Padding(1, 2).
			Width(64).
			BorderForeground(lipgloss.Color("241")),
	}
}

// TierColor returns the colour used for rows of the given expiry tier
func TierColor(t table.Tier) string {
	switch t {
	case table.TierExpired:
		return "203" // red
	case table.TierUrgent:
		return "208" // orange
	case table.TierWarning:
		return "214" // yellow
	default:
		return "78" // green
	}
}

// StrengthColor returns the colour of the password strength meter
func StrengthColor(l validate.Level) string {
	switch l {
	case validate.Strong:
		return "78"
	case validate.Medium:
		return "214"
	default:
		return "203"
	}
}

// TextPromptStyle returns the style of the label in front of a text entry
func TextPromptStyle(mode types.Mode) lipgloss.Style {
	if mode == types.ModeFilter {
		return lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	}
	return lipgloss.NewStyle().Bold(true)
}

// BannerStyle returns the style for a banner of the given kind
func (s *Styles) BannerStyle(k banner.Kind) lipgloss.Style {
	switch k {
	case banner.Error:
		return s.StatusError
	case banner.Success:
		return s.StatusSuccess
	default:
		return s.StatusInfo
	}
}
