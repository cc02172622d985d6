package types

import tea "github.com/charmbracelet/bubbletea"

// Navigation actions
type NavigateAction struct {
	Direction string // "up", "down", "home", "end"
}

func (a NavigateAction) Type() string { return "navigate" }

type SwitchScreenAction struct {
	Screen Screen
	Step   int // used when Screen is unset: +1 next, -1 previous
}

func (a SwitchScreenAction) Type() string { return "switch_screen" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
	Data string // Optional initial text for text modes
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// Text input actions
type UpdateTextAction struct {
	Text string
}

func (a UpdateTextAction) Type() string { return "update_text" }

type SubmitTextAction struct {
	Text string
	Mode Mode // Which mode submitted the text
}

func (a SubmitTextAction) Type() string { return "submit_text" }

type CancelTextAction struct {
	Mode Mode
}

func (a CancelTextAction) Type() string { return "cancel_text" }

// Form actions
type FormFocusAction struct {
	Step int
}

func (a FormFocusAction) Type() string { return "form_focus" }

type FormKeyAction struct {
	Msg tea.KeyMsg
}

func (a FormKeyAction) Type() string { return "form_key" }

type SubmitFormAction struct{}

func (a SubmitFormAction) Type() string { return "submit_form" }

type CancelFormAction struct{}

func (a CancelFormAction) Type() string { return "cancel_form" }

// Confirmation actions
type ConfirmAction struct {
	Accepted bool
}

func (a ConfirmAction) Type() string { return "confirm" }

// General commands
type RefreshAction struct{}

func (a RefreshAction) Type() string { return "refresh" }

type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

type ShowDetailsAction struct{}

func (a ShowDetailsAction) Type() string { return "show_details" }

type DismissBannerAction struct{}

func (a DismissBannerAction) Type() string { return "dismiss_banner" }

type LogoutAction struct{}

func (a LogoutAction) Type() string { return "logout" }

type QuitAction struct {
	Force bool // true for Ctrl+C, false for 'q'
}

func (a QuitAction) Type() string { return "quit" }

// Domains screen
type SortByAction struct {
	Index int // position in table.Fields
}

func (a SortByAction) Type() string { return "sort_by" }

type PageAction struct {
	Delta int
}

func (a PageAction) Type() string { return "page" }

type CyclePageSizeAction struct{}

func (a CyclePageSizeAction) Type() string { return "cycle_page_size" }

type AddRecordAction struct {
	SSL bool
}

func (a AddRecordAction) Type() string { return "add_record" }

type CheckRecordAction struct{}

func (a CheckRecordAction) Type() string { return "check_record" }

// DeleteAction removes the item under the cursor on the current screen
type DeleteAction struct{}

func (a DeleteAction) Type() string { return "delete" }

// Integrations screen
type SwitchPlatformAction struct {
	Step int
}

func (a SwitchPlatformAction) Type() string { return "switch_platform" }

type ConnectAction struct{}

func (a ConnectAction) Type() string { return "connect" }

type InviteBotAction struct{}

func (a InviteBotAction) Type() string { return "invite_bot" }

type TestIntegrationAction struct{}

func (a TestIntegrationAction) Type() string { return "test_integration" }

// VerifyAction verifies the integration or resends a user's verification email
type VerifyAction struct{}

func (a VerifyAction) Type() string { return "verify" }

type OpenPickerAction struct{}

func (a OpenPickerAction) Type() string { return "open_picker" }

// Picker actions
type PickerToggleAction struct{}

func (a PickerToggleAction) Type() string { return "picker_toggle" }

type PickerClearAction struct{}

func (a PickerClearAction) Type() string { return "picker_clear" }

type PickerSubmitAction struct{}

func (a PickerSubmitAction) Type() string { return "picker_submit" }

type ClosePickerAction struct{}

func (a ClosePickerAction) Type() string { return "close_picker" }

// Users screen
type AddUserAction struct{}

func (a AddUserAction) Type() string { return "add_user" }

type ToggleSuperuserAction struct{}

func (a ToggleSuperuserAction) Type() string { return "toggle_superuser" }

// ToggleVerifiedOnlyAction limits the users list to verified emails
type ToggleVerifiedOnlyAction struct{}

func (a ToggleVerifiedOnlyAction) Type() string { return "toggle_verified_only" }
