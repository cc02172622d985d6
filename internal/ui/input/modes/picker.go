package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"drr/internal/ui/input/types"
)

// PickerMode drives the channel picker modal
type PickerMode struct{}

func NewPickerMode() *PickerMode {
	return &PickerMode{}
}

func (m *PickerMode) Name() string {
	return "picker"
}

func (m *PickerMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *PickerMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *PickerMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true
	case "up", "k":
		return []types.Action{types.NavigateAction{Direction: "up"}}, true
	case "down", "j":
		return []types.Action{types.NavigateAction{Direction: "down"}}, true
	case "home", "g":
		return []types.Action{types.NavigateAction{Direction: "home"}}, true
	case "end", "G":
		return []types.Action{types.NavigateAction{Direction: "end"}}, true
	case " ", "x":
		if ctx.TotalItems() > 0 {
			return []types.Action{types.PickerToggleAction{}}, true
		}
	case "c":
		return []types.Action{types.PickerClearAction{}}, true
	case "enter":
		return []types.Action{types.PickerSubmitAction{}}, true
	case "esc", "q":
		return []types.Action{
			types.ClosePickerAction{},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true
	}
	return nil, true
}
