package modes

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"

	"drr/internal/table"
	"drr/internal/ui/input/types"
)

// FilterMode edits the domain name filter; the table follows every keystroke
type FilterMode struct {
	TextInputMode
}

func NewFilterMode(ti *textinput.Model) *FilterMode {
	base := NewTextInputMode(types.ModeFilter, "filter", ti)
	base.label = func(types.Context) string { return "Filter: " }
	base.placeholder = fmt.Sprintf("name, %d+ characters", table.MinFilterLength)
	return &FilterMode{TextInputMode: base}
}
