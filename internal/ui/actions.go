package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"drr/internal/domain"
	"drr/internal/table"
	"drr/internal/ui/input/types"
	"drr/internal/ui/state"
	"drr/internal/ui/views"
	"drr/internal/validate"
)

// processAction processes an action from the input handler
func (m *Model) processAction(action types.Action) tea.Cmd {
	switch a := action.(type) {
	case types.NavigateAction:
		switch a.Direction {
		case "up":
			m.state.SetIndex(m.state.CurrentIndex() - 1)
		case "down":
			m.state.SetIndex(m.state.CurrentIndex() + 1)
		case "home":
			m.state.SetIndex(0)
		case "end":
			m.state.SetIndex(m.state.TotalItems() - 1)
		}

	case types.SwitchScreenAction:
		if m.state.Screen.IsAuth() {
			if a.Screen.IsAuth() {
				return m.openAuthScreen(a.Screen)
			}
			return nil
		}
		target := a.Screen
		if a.Step != 0 {
			target = m.cycleScreen(a.Step)
		}
		return m.switchScreen(target)

	case types.UpdateTextAction:
		if m.inputHandler.CurrentMode() == types.ModeFilter {
			m.setQuery(a.Text)
		}

	case types.SubmitTextAction:
		switch a.Mode {
		case types.ModeFilter:
			m.setQuery(a.Text)
		case types.ModePrompt:
			return m.submitPrompt(a.Text)
		}

	case types.CancelTextAction:
		switch a.Mode {
		case types.ModeFilter:
			m.setQuery("")
		case types.ModePrompt:
			m.state.Prompt = nil
		}

	case types.FormFocusAction:
		if m.state.Form != nil {
			m.state.Form.Move(a.Step)
		}

	case types.FormKeyAction:
		if m.state.Form != nil {
			return m.state.Form.Update(a.Msg)
		}

	case types.SubmitFormAction:
		return m.submitForm()

	case types.CancelFormAction:
		return m.cancelForm()

	case types.ConfirmAction:
		c := m.state.Confirm
		m.state.Confirm = nil
		if a.Accepted && c != nil && c.Run != nil {
			return c.Run()
		}

	case types.RefreshAction:
		return m.refresh()

	case types.ToggleHelpAction:
		return m.showPager(views.HelpContent(m.IsSuperuser()))

	case types.ShowDetailsAction:
		if rec, ok := m.state.CurrentRecord(); ok {
			return m.showPager(views.RecordDetails(rec, m.state.Now()))
		}

	case types.DismissBannerAction:
		if m.viewModel.Overlay() != "" {
			m.viewModel.SetOverlay("")
			return nil
		}
		m.state.Banners.DismissNewest()

	case types.LogoutAction:
		m.stopPollers()
		m.state.SetLoading("logout", true)
		return m.cmdExecutor.Logout()

	case types.QuitAction:
		return m.quit()

	case types.SortByAction:
		if a.Index >= 0 && a.Index < len(table.Fields) {
			m.state.TableView.Sort = m.state.TableView.Sort.Toggle(table.Fields[a.Index])
			m.state.RecordIndex = 0
		}

	case types.PageAction:
		_, info := m.state.VisibleRecords()
		page := info.Page + a.Delta
		if page >= info.TotalPages {
			page = info.TotalPages - 1
		}
		if page < 0 {
			page = 0
		}
		if page != info.Page {
			m.state.TableView.Page = page
			m.state.RecordIndex = 0
		}

	case types.CyclePageSizeAction:
		m.state.TableView.PageSize = table.NextPageSize(m.state.TableView.PageSize)
		m.state.TableView.Page = 0
		m.state.RecordIndex = 0

	case types.AddRecordAction:
		p := &state.Prompt{Kind: state.PromptAddDomain, Label: "Add domain: "}
		if a.SSL {
			p = &state.Prompt{Kind: state.PromptAddSSL, Label: "Add SSL certificate for: "}
		}
		m.state.Prompt = p
		return m.changeMode(types.ModePrompt, "")

	case types.CheckRecordAction:
		if rec, ok := m.state.CurrentRecord(); ok {
			m.state.SetLoading("check", true)
			return m.cmdExecutor.CheckRecord(rec)
		}

	case types.DeleteAction:
		return m.confirmDelete()

	case types.SwitchPlatformAction:
		n := len(domain.Platforms)
		m.state.Platform = ((m.state.Platform+a.Step)%n + n) % n
		m.state.IntegrationIndex = 0
		if _, polling := m.pollers[m.state.CurrentPlatform()]; !polling {
			return m.loadIntegrations(m.state.CurrentPlatform())
		}

	case types.ConnectAction:
		m.state.SetLoading("link", true)
		return m.cmdExecutor.Connect(m.state.CurrentPlatform())

	case types.InviteBotAction:
		if m.state.CurrentPlatform() != domain.PlatformDiscord {
			m.state.Banners.Info("Bot invites are only available for Discord")
			return nil
		}
		m.state.SetLoading("link", true)
		return m.cmdExecutor.InviteBot()

	case types.TestIntegrationAction:
		if in, ok := m.state.CurrentIntegration(); ok {
			m.state.SetLoading("test", true)
			return m.cmdExecutor.TestIntegration(in)
		}

	case types.VerifyAction:
		if m.state.Screen == types.ScreenUsers {
			if u, ok := m.state.CurrentUser(); ok {
				m.state.SetLoading("verification", true)
				return m.cmdExecutor.SendVerification(u)
			}
			return nil
		}
		if in, ok := m.state.CurrentIntegration(); ok {
			m.state.SetLoading("verify", true)
			return m.cmdExecutor.VerifyIntegration(in)
		}

	case types.OpenPickerAction:
		p := m.state.CurrentPlatform()
		m.state.Picker = state.NewPicker(p)
		return tea.Batch(m.changeMode(types.ModePicker, ""), m.cmdExecutor.LoadGroups(p))

	case types.PickerToggleAction:
		if m.state.Picker != nil && !m.state.Picker.Submitting {
			m.state.Picker.Toggle()
			m.state.Picker.Message = ""
		}

	case types.PickerClearAction:
		if m.state.Picker != nil && !m.state.Picker.Submitting {
			m.state.Picker.Selection = m.state.Picker.Selection.Clear()
			m.state.Picker.Message = ""
		}

	case types.PickerSubmitAction:
		return m.submitPicker()

	case types.ClosePickerAction:
		m.state.Picker = nil

	case types.AddUserAction:
		m.state.Form = addUserForm()
		return m.changeMode(types.ModeForm, "")

	case types.ToggleSuperuserAction:
		u, ok := m.state.CurrentUser()
		if !ok {
			return nil
		}
		verb := "Grant superuser rights to"
		if u.IsSuperuser {
			verb = "Revoke superuser rights from"
		}
		return m.confirm(fmt.Sprintf("%s %s? (y/n)", verb, u.DisplayName()), func() tea.Cmd {
			m.state.SetLoading("users", true)
			return m.cmdExecutor.ToggleSuperuser(u)
		})

	case types.ToggleVerifiedOnlyAction:
		m.state.VerifiedOnly = !m.state.VerifiedOnly
		m.state.UserIndex = 0
		return m.load(types.ScreenUsers)
	}

	return nil
}

// setQuery updates the domain filter and goes back to the first row
func (m *Model) setQuery(q string) {
	m.state.TableView.Query = q
	m.state.TableView.Page = 0
	m.state.RecordIndex = 0
}

func (m *Model) submitPrompt(text string) tea.Cmd {
	p := m.state.Prompt
	m.state.Prompt = nil
	if p == nil {
		return nil
	}
	name, err := validate.DomainName(text)
	if err != nil {
		m.state.Banners.Error(err.Error())
		return nil
	}
	m.state.SetLoading("add", true)
	return m.cmdExecutor.AddRecord(name, p.Kind == state.PromptAddSSL)
}

// confirm stages a destructive action behind a y/n prompt
func (m *Model) confirm(prompt string, run func() tea.Cmd) tea.Cmd {
	m.state.Confirm = &state.Confirm{Prompt: prompt, Run: run}
	return m.changeMode(types.ModeConfirm, "")
}

func (m *Model) confirmDelete() tea.Cmd {
	switch m.state.Screen {
	case types.ScreenDomains:
		rec, ok := m.state.CurrentRecord()
		if !ok {
			return nil
		}
		return m.confirm(fmt.Sprintf("Delete %s? (y/n)", rec.Name), func() tea.Cmd {
			m.state.SetLoading("delete", true)
			return m.cmdExecutor.DeleteRecord(rec)
		})

	case types.ScreenIntegrations:
		in, ok := m.state.CurrentIntegration()
		if !ok {
			return nil
		}
		return m.confirm(fmt.Sprintf("Remove %s integration %s? (y/n)", in.Platform.Title(), in.Destination()), func() tea.Cmd {
			m.state.SetLoading("delete", true)
			return m.cmdExecutor.DeleteIntegration(in)
		})

	case types.ScreenUsers:
		u, ok := m.state.CurrentUser()
		if !ok {
			return nil
		}
		if u.ID == m.state.User.ID {
			m.state.Banners.Error("You cannot delete your own account")
			return nil
		}
		return m.confirm(fmt.Sprintf("Delete user %s? (y/n)", u.DisplayName()), func() tea.Cmd {
			m.state.SetLoading("delete", true)
			return m.cmdExecutor.DeleteUser(u)
		})
	}
	return nil
}

// submitPicker posts the picked channels. Entries whose group or channel
// disappeared since the picker loaded are refused before anything is sent.
func (m *Model) submitPicker() tea.Cmd {
	p := m.state.Picker
	if p == nil || p.Loading || p.Submitting {
		return nil
	}
	if p.Selection.Len() == 0 {
		p.Message = "Select at least one channel"
		return nil
	}
	picked, err := p.Selection.Resolve(p.Groups)
	if err != nil {
		p.Message = err.Error()
		return nil
	}
	p.Message = ""
	p.Submitting = true
	return m.cmdExecutor.AddChannels(p.Platform, picked)
}
