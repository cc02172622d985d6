package types

import tea "github.com/charmbracelet/bubbletea"

// Mode represents an input mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeFilter
	ModePrompt
	ModeConfirm
	ModeForm
	ModePicker
)

// Screen identifies the page the dashboard is showing
type Screen int

const (
	ScreenSignIn Screen = iota
	ScreenRegister
	ScreenForgotPassword
	ScreenResetPassword
	ScreenSetPassword
	ScreenDomains
	ScreenIntegrations
	ScreenUsers
)

// IsAuth reports whether the screen is one of the signed-out forms
func (s Screen) IsAuth() bool {
	return s <= ScreenSetPassword
}

func (s Screen) String() string {
	switch s {
	case ScreenSignIn:
		return "Sign in"
	case ScreenRegister:
		return "Register"
	case ScreenForgotPassword:
		return "Forgot password"
	case ScreenResetPassword:
		return "Reset password"
	case ScreenSetPassword:
		return "Set password"
	case ScreenDomains:
		return "Domains"
	case ScreenIntegrations:
		return "Integrations"
	case ScreenUsers:
		return "Users"
	default:
		return "?"
	}
}

// Action represents a command the model should execute
type Action interface {
	Type() string
}

// Context provides read-only access to model state needed for input handling
type Context interface {
	Screen() Screen
	CurrentIndex() int
	TotalItems() int
	IsSuperuser() bool
	HasChannelPicker() bool
	PromptLabel() string
}

// ModeHandler handles input for a specific mode
type ModeHandler interface {
	// HandleKey processes a key message and returns actions and whether to consume the event
	HandleKey(msg tea.KeyMsg, ctx Context) ([]Action, bool)

	// Enter is called when entering this mode
	Enter(ctx Context) []Action

	// Exit is called when leaving this mode
	Exit(ctx Context) []Action

	// Name returns the mode name for display
	Name() string
}
