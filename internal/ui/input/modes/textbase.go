package modes

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"drr/internal/ui/input/types"
)

// TextInputMode is a base for modes that accept a single line of text. Each
// mode brings its own label, placeholder and length limit to the shared input.
type TextInputMode struct {
	mode        types.Mode
	name        string
	label       func(ctx types.Context) string
	placeholder string
	charLimit   int // 0 is unlimited
	textInput   *textinput.Model
}

func NewTextInputMode(mode types.Mode, name string, ti *textinput.Model) TextInputMode {
	return TextInputMode{
		mode:      mode,
		name:      name,
		label:     func(types.Context) string { return "" },
		textInput: ti,
	}
}

func (m TextInputMode) Name() string {
	return m.name
}

func (m TextInputMode) Enter(ctx types.Context) []types.Action {
	if m.textInput != nil {
		m.textInput.Prompt = m.label(ctx)
		m.textInput.Placeholder = m.placeholder
		m.textInput.CharLimit = m.charLimit
		m.textInput.Focus()
	}
	return nil
}

func (m TextInputMode) Exit(ctx types.Context) []types.Action {
	if m.textInput != nil {
		m.textInput.Blur()
		m.textInput.Prompt = ""
		m.textInput.Placeholder = ""
		m.textInput.CharLimit = 0
	}
	return nil
}

func (m TextInputMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true
	case "esc":
		return []types.Action{
			types.CancelTextAction{Mode: m.mode},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true
	case "enter":
		text := ""
		if m.textInput != nil {
			text = m.textInput.Value()
		}
		return []types.Action{
			types.SubmitTextAction{Text: text, Mode: m.mode},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true
	case "ctrl+u":
		if m.textInput == nil || m.textInput.Value() == "" {
			return nil, true
		}
		m.textInput.SetValue("")
		return []types.Action{types.UpdateTextAction{Text: ""}}, true
	default:
		// Returning false lets the handler feed the key to the text input
		return nil, false
	}
}
