package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"drr/internal/api"
	"drr/internal/ui/forms"
	"drr/internal/ui/input/types"
)

func signInForm() *forms.Form {
	return forms.New("Sign in",
		forms.Spec{Key: "email", Label: "Email", Kind: forms.KindEmail},
		forms.Spec{Key: "password", Label: "Password", Kind: forms.KindPassword},
	)
}

func registerForm() *forms.Form {
	return forms.New("Create an account",
		forms.Spec{Key: "firstname", Label: "First name"},
		forms.Spec{Key: "lastname", Label: "Last name"},
		forms.Spec{Key: "company", Label: "Company"},
		forms.Spec{Key: "email", Label: "Email", Kind: forms.KindEmail},
		forms.Spec{Key: "password", Label: "Password", Kind: forms.KindNewPassword},
		forms.Spec{Key: "confirm", Label: "Confirm password", Kind: forms.KindConfirm},
	)
}

func forgotPasswordForm() *forms.Form {
	return forms.New("Forgot password",
		forms.Spec{Key: "email", Label: "Email", Kind: forms.KindEmail},
	)
}

// tokenPasswordForm serves both the reset and the first-time password
// screens; both take the token from an emailed link.
func tokenPasswordForm(title string) *forms.Form {
	return forms.New(title,
		forms.Spec{Key: "token", Label: "Token"},
		forms.Spec{Key: "password", Label: "New password", Kind: forms.KindNewPassword},
		forms.Spec{Key: "confirm", Label: "Confirm password", Kind: forms.KindConfirm},
	)
}

func addUserForm() *forms.Form {
	return forms.New("Add user",
		forms.Spec{Key: "firstname", Label: "First name"},
		forms.Spec{Key: "lastname", Label: "Last name"},
		forms.Spec{Key: "email", Label: "Email", Kind: forms.KindEmail},
		forms.Spec{Key: "position", Label: "Position", Optional: true},
	)
}

// openAuthScreen shows one of the signed-out screens with a fresh form
func (m *Model) openAuthScreen(screen types.Screen) tea.Cmd {
	switch screen {
	case types.ScreenRegister:
		m.state.Form = registerForm()
	case types.ScreenForgotPassword:
		m.state.Form = forgotPasswordForm()
	case types.ScreenResetPassword:
		m.state.Form = tokenPasswordForm("Reset password")
	case types.ScreenSetPassword:
		m.state.Form = tokenPasswordForm("Choose a password")
	default:
		screen = types.ScreenSignIn
		m.state.Form = signInForm()
	}
	m.state.Screen = screen
	m.state.Prompt = nil
	m.state.Confirm = nil
	m.state.SetLoading("form", false)
	if m.inputHandler.CurrentMode() == types.ModeForm {
		return nil
	}
	return m.changeMode(types.ModeForm, "")
}

// submitForm validates the open form and sends it. Invalid forms stay open
// with their errors shown and nothing is sent.
func (m *Model) submitForm() tea.Cmd {
	f := m.state.Form
	if f == nil || m.state.Loading["form"] {
		return nil
	}
	if !f.Validate() {
		return nil
	}

	value := func(key string) string { return strings.TrimSpace(f.Value(key)) }
	m.state.SetLoading("form", true)

	switch m.state.Screen {
	case types.ScreenSignIn:
		return m.cmdExecutor.Login(value("email"), f.Value("password"))
	case types.ScreenRegister:
		return m.cmdExecutor.Register(api.Registration{
			Firstname:   value("firstname"),
			Lastname:    value("lastname"),
			CompanyName: value("company"),
			Email:       value("email"),
			Password:    f.Value("password"),
		})
	case types.ScreenForgotPassword:
		return m.cmdExecutor.ForgotPassword(value("email"))
	case types.ScreenResetPassword:
		return m.cmdExecutor.ResetPassword(value("token"), f.Value("password"))
	case types.ScreenSetPassword:
		return m.cmdExecutor.SetPassword(value("token"), f.Value("password"))
	case types.ScreenUsers:
		return m.cmdExecutor.CreateUser(api.NewUser{
			Firstname: value("firstname"),
			Lastname:  value("lastname"),
			Email:     value("email"),
			Position:  value("position"),
			CompanyID: m.state.User.CompanyID,
		})
	}

	m.state.SetLoading("form", false)
	return nil
}

// cancelForm backs out of the open form: auth screens return to sign-in,
// dashboard forms simply close.
func (m *Model) cancelForm() tea.Cmd {
	if m.state.Screen.IsAuth() {
		if m.state.Screen == types.ScreenSignIn {
			return nil
		}
		return m.openAuthScreen(types.ScreenSignIn)
	}
	return m.closeForm()
}

func (m *Model) closeForm() tea.Cmd {
	m.state.Form = nil
	m.state.SetLoading("form", false)
	return m.changeMode(types.ModeNormal, "")
}
