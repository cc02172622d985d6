package modes

import (
	"github.com/charmbracelet/bubbles/textinput"

	"drr/internal/ui/input/types"
	"drr/internal/validate"
)

// PromptMode asks for a domain name to add. The label comes from the open
// prompt so domain and SSL entries read differently.
type PromptMode struct {
	TextInputMode
}

func NewPromptMode(ti *textinput.Model) *PromptMode {
	base := NewTextInputMode(types.ModePrompt, "prompt", ti)
	base.label = func(ctx types.Context) string { return ctx.PromptLabel() }
	base.placeholder = "example.com"
	base.charLimit = validate.MaxDomainNameLength
	return &PromptMode{TextInputMode: base}
}
