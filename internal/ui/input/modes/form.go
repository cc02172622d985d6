package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"drr/internal/ui/input/types"
)

// FormMode drives a multi-field form. Keys that are not navigation are
// forwarded to the focused field.
type FormMode struct{}

func NewFormMode() *FormMode {
	return &FormMode{}
}

func (m *FormMode) Name() string {
	return "form"
}

func (m *FormMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *FormMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *FormMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true
	case "tab", "down":
		return []types.Action{types.FormFocusAction{Step: 1}}, true
	case "shift+tab", "up":
		return []types.Action{types.FormFocusAction{Step: -1}}, true
	case "enter":
		return []types.Action{types.SubmitFormAction{}}, true
	case "esc":
		return []types.Action{types.CancelFormAction{}}, true
	}

	if ctx.Screen() == types.ScreenSignIn {
		switch msg.String() {
		case "ctrl+r":
			return []types.Action{types.SwitchScreenAction{Screen: types.ScreenRegister}}, true
		case "ctrl+f":
			return []types.Action{types.SwitchScreenAction{Screen: types.ScreenForgotPassword}}, true
		case "ctrl+t":
			return []types.Action{types.SwitchScreenAction{Screen: types.ScreenResetPassword}}, true
		}
	}

	return []types.Action{types.FormKeyAction{Msg: msg}}, true
}
