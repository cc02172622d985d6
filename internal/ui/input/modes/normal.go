package modes

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"drr/internal/ui/input/types"
)

type NormalMode struct {
	lastKeyWasG bool
	lastGTime   time.Time
}

func NewNormalMode() *NormalMode {
	return &NormalMode{}
}

func (m *NormalMode) Name() string {
	return "normal"
}

func (m *NormalMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return []types.Action{types.QuitAction{Force: true}}, true
	case tea.KeyUp:
		return []types.Action{types.NavigateAction{Direction: "up"}}, true
	case tea.KeyDown:
		return []types.Action{types.NavigateAction{Direction: "down"}}, true
	case tea.KeyHome:
		return []types.Action{types.NavigateAction{Direction: "home"}}, true
	case tea.KeyEnd:
		return []types.Action{types.NavigateAction{Direction: "end"}}, true
	case tea.KeyTab:
		return []types.Action{types.SwitchScreenAction{Step: 1}}, true
	case tea.KeyShiftTab:
		return []types.Action{types.SwitchScreenAction{Step: -1}}, true
	}

	key := msg.String()

	// gg jumps to the top
	if key == "g" {
		if m.lastKeyWasG && time.Since(m.lastGTime) < 500*time.Millisecond {
			m.lastKeyWasG = false
			return []types.Action{types.NavigateAction{Direction: "home"}}, true
		}
		m.lastKeyWasG = true
		m.lastGTime = time.Now()
		return nil, true
	}
	m.lastKeyWasG = false

	switch key {
	case "j":
		return []types.Action{types.NavigateAction{Direction: "down"}}, true
	case "k":
		return []types.Action{types.NavigateAction{Direction: "up"}}, true
	case "G":
		return []types.Action{types.NavigateAction{Direction: "end"}}, true
	case "r":
		return []types.Action{types.RefreshAction{}}, true
	case "?":
		return []types.Action{types.ToggleHelpAction{}}, true
	case "x":
		return []types.Action{types.DismissBannerAction{}}, true
	case "L":
		return []types.Action{types.LogoutAction{}}, true
	case "q":
		return []types.Action{types.QuitAction{Force: false}}, true
	case "D":
		return []types.Action{types.SwitchScreenAction{Screen: types.ScreenDomains}}, true
	case "I":
		return []types.Action{types.SwitchScreenAction{Screen: types.ScreenIntegrations}}, true
	case "U":
		if ctx.IsSuperuser() {
			return []types.Action{types.SwitchScreenAction{Screen: types.ScreenUsers}}, true
		}
		return nil, true
	}

	switch ctx.Screen() {
	case types.ScreenDomains:
		return m.domainKeys(key, ctx)
	case types.ScreenIntegrations:
		return m.integrationKeys(key, ctx)
	case types.ScreenUsers:
		return m.userKeys(key, ctx)
	}
	return nil, false
}

func (m *NormalMode) domainKeys(key string, ctx types.Context) ([]types.Action, bool) {
	switch key {
	case "1", "2", "3", "4", "5", "6", "7":
		return []types.Action{types.SortByAction{Index: int(key[0] - '1')}}, true
	case "/":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeFilter}}, true
	case "p":
		return []types.Action{types.CyclePageSizeAction{}}, true
	case "l", "right", "]":
		return []types.Action{types.PageAction{Delta: 1}}, true
	case "h", "left", "[":
		return []types.Action{types.PageAction{Delta: -1}}, true
	case "enter":
		if ctx.TotalItems() > 0 {
			return []types.Action{types.ShowDetailsAction{}}, true
		}
		return nil, true
	case "a":
		if ctx.IsSuperuser() {
			return []types.Action{types.AddRecordAction{SSL: false}}, true
		}
		return nil, true
	case "s":
		if ctx.IsSuperuser() {
			return []types.Action{types.AddRecordAction{SSL: true}}, true
		}
		return nil, true
	case "c":
		if ctx.TotalItems() > 0 {
			return []types.Action{types.CheckRecordAction{}}, true
		}
		return nil, true
	case "d":
		if ctx.IsSuperuser() && ctx.TotalItems() > 0 {
			return []types.Action{types.DeleteAction{}}, true
		}
		return nil, true
	}
	return nil, false
}

func (m *NormalMode) integrationKeys(key string, ctx types.Context) ([]types.Action, bool) {
	switch key {
	case "l", "right":
		return []types.Action{types.SwitchPlatformAction{Step: 1}}, true
	case "h", "left":
		return []types.Action{types.SwitchPlatformAction{Step: -1}}, true
	case "o":
		return []types.Action{types.ConnectAction{}}, true
	case "b":
		return []types.Action{types.InviteBotAction{}}, true
	case "c":
		if ctx.HasChannelPicker() {
			return []types.Action{types.OpenPickerAction{}}, true
		}
		return nil, true
	}
	if ctx.TotalItems() == 0 {
		return nil, false
	}
	switch key {
	case "t":
		return []types.Action{types.TestIntegrationAction{}}, true
	case "v":
		return []types.Action{types.VerifyAction{}}, true
	case "d":
		return []types.Action{types.DeleteAction{}}, true
	}
	return nil, false
}

func (m *NormalMode) userKeys(key string, ctx types.Context) ([]types.Action, bool) {
	switch key {
	case "a":
		return []types.Action{types.AddUserAction{}}, true
	case "V":
		return []types.Action{types.ToggleVerifiedOnlyAction{}}, true
	}
	if ctx.TotalItems() == 0 {
		return nil, false
	}
	switch key {
	case "d":
		return []types.Action{types.DeleteAction{}}, true
	case "v":
		return []types.Action{types.VerifyAction{}}, true
	case "S":
		return []types.Action{types.ToggleSuperuserAction{}}, true
	}
	return nil, false
}
