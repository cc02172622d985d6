package views

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// PopupRenderer handles popup/modal rendering
type PopupRenderer struct {
	styles *Styles
}

// NewPopupRenderer creates a new popup renderer
func NewPopupRenderer(styles *Styles) *PopupRenderer {
	return &PopupRenderer{
		styles: styles,
	}
}

// RenderPopupOverlay draws the popup centred over a greyed copy of the main content
func (pr *PopupRenderer) RenderPopupOverlay(mainContent, popupContent string, height, width int, popupStyle lipgloss.Style) string {
	styledPopup := popupStyle.Render(popupContent)
	if width <= 0 || height <= 0 {
		return styledPopup
	}

	modalW := lipgloss.Width(styledPopup)
	modalH := lipgloss.Height(styledPopup)
	if modalW >= width || modalH >= height {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, styledPopup)
	}
	x := (width - modalW) / 2
	y := (height - modalH) / 2

	base := strings.Split(ansiRE.ReplaceAllString(mainContent, ""), "\n")
	for len(base) < height {
		base = append(base, "")
	}
	popupLines := strings.Split(styledPopup, "\n")

	grey := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	out := make([]string, len(base))
	for i, line := range base {
		row := []rune(line)
		if i < y || i >= y+len(popupLines) {
			out[i] = grey.Render(line)
			continue
		}
		left := string(padRunes(row, x)[:x])
		right := ""
		if end := x + modalW; end < len(row) {
			right = string(row[end:])
		}
		out[i] = grey.Render(left) + popupLines[i-y] + grey.Render(right)
	}
	return strings.Join(out[:height], "\n")
}

// ANSI escape sequence regex to strip styles/colors
var ansiRE = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// stripANSI removes colour codes, for plain-text output and tests
func stripANSI(s string) string {
	return ansiRE.ReplaceAllString(s, "")
}

func padRunes(r []rune, n int) []rune {
	for len(r) < n {
		r = append(r, ' ')
	}
	return r
}
