package ui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"drr/internal/api"
	"drr/internal/eventbus"
	"drr/internal/ui/commands"
	"drr/internal/ui/input/types"
	"drr/internal/ui/state"
)

// opLoading maps each mutation to the loading key it runs under
var opLoading = map[commands.Op]string{
	commands.OpForgotPassword:    "form",
	commands.OpResetPassword:     "form",
	commands.OpCreateUser:        "form",
	commands.OpLogout:            "logout",
	commands.OpAddDomain:         "add",
	commands.OpAddSSL:            "add",
	commands.OpDeleteDomain:      "delete",
	commands.OpDeleteIntegration: "delete",
	commands.OpDeleteUser:        "delete",
	commands.OpCheckDomain:       "check",
	commands.OpTestIntegration:   "test",
	commands.OpVerify:            "verify",
	commands.OpSendVerification:  "verification",
	commands.OpUpdateUser:        "users",
}

func (m *Model) handleAuth(msg commands.AuthMsg) tea.Cmd {
	submitted := m.state.Loading["form"]
	m.state.SetLoading("form", false)
	m.state.SetLoading("profile", false)

	// A profile refresh that lands after sign-out must not sign back in
	if m.state.Screen.IsAuth() && !submitted {
		return nil
	}
	if msg.Err != nil {
		return m.fail(msg.Err)
	}

	m.state.User = msg.User
	if !m.state.Screen.IsAuth() {
		return nil
	}

	m.state.Banners.Success("Signed in as " + msg.User.DisplayName())
	m.state.Form = nil
	return tea.Batch(m.changeMode(types.ModeNormal, ""), m.switchScreen(types.ScreenDomains))
}

func (m *Model) handleDone(msg commands.DoneMsg) tea.Cmd {
	m.state.SetLoading(opLoading[msg.Op], false)

	if msg.Op == commands.OpLogout {
		// The local session is gone whether or not the backend answered
		cmd := m.eventHandler.HandleEvent(eventbus.SessionEndedEvent{})
		if msg.Err == nil && msg.Message != "" {
			m.state.Banners.Success(msg.Message)
		}
		return cmd
	}

	if msg.Err != nil {
		return m.fail(msg.Err)
	}
	if msg.Message != "" {
		m.state.Banners.Success(msg.Message)
	}

	switch msg.Op {
	case commands.OpForgotPassword, commands.OpResetPassword:
		return m.openAuthScreen(types.ScreenSignIn)
	case commands.OpAddDomain, commands.OpAddSSL, commands.OpDeleteDomain, commands.OpCheckDomain:
		return m.load(types.ScreenDomains)
	case commands.OpVerify, commands.OpDeleteIntegration:
		p := msg.Platform
		if p == "" {
			p = m.state.CurrentPlatform()
		}
		return m.refreshIntegrations(p)
	case commands.OpCreateUser:
		return tea.Batch(m.closeForm(), m.load(types.ScreenUsers))
	case commands.OpDeleteUser, commands.OpUpdateUser, commands.OpSendVerification:
		return m.load(types.ScreenUsers)
	}
	return nil
}

func (m *Model) handleRecords(msg commands.RecordsMsg) tea.Cmd {
	m.state.SetLoading("domains", false)
	if msg.Err != nil {
		return m.fail(msg.Err)
	}
	m.state.Records = msg.Records
	if m.state.Screen == types.ScreenDomains {
		m.state.ClampIndex()
	}
	return nil
}

func (m *Model) handleIntegrations(msg commands.IntegrationsMsg) tea.Cmd {
	m.state.SetLoading("integrations", false)
	if msg.Err != nil {
		return m.fail(msg.Err)
	}
	m.state.Integrations[msg.Platform] = msg.Integrations
	if m.state.Screen == types.ScreenIntegrations && m.state.CurrentPlatform() == msg.Platform {
		m.state.ClampIndex()
	}
	return nil
}

func (m *Model) handleUsers(msg commands.UsersMsg) tea.Cmd {
	m.state.SetLoading("users", false)
	if msg.Err != nil {
		return m.fail(msg.Err)
	}
	m.state.Users = msg.Users
	if m.state.Screen == types.ScreenUsers {
		m.state.ClampIndex()
	}
	return nil
}

// handleLink shows an issued link and copies it to the clipboard
func (m *Model) handleLink(msg commands.LinkMsg) tea.Cmd {
	m.state.SetLoading("link", false)
	if msg.Err != nil {
		return m.fail(msg.Err)
	}
	if msg.URL == "" {
		m.state.Banners.Error(api.GenericMessage)
		return nil
	}

	m.viewModel.SetOverlay(fmt.Sprintf("%s\n\n%s\n\nPress esc to close", msg.Label, msg.URL))
	if err := copyToClipboard(msg.URL); err != nil {
		m.log.WithError(err).Debug("clipboard unavailable")
		m.state.Banners.Info("Copy the link from the popup")
		return nil
	}
	m.state.Banners.Success("Link copied to clipboard")
	return nil
}

func (m *Model) handleGroups(msg commands.GroupsMsg) tea.Cmd {
	p := m.state.Picker
	if p == nil || p.Platform != msg.Platform {
		return nil
	}
	if msg.Err != nil {
		p.Loading = false
		p.Message = api.UserMessage(msg.Err)
		return m.fail(msg.Err)
	}
	p.SetGroups(msg.Groups)
	if len(msg.Groups) == 0 {
		p.Message = msg.Message
		if p.Message == "" {
			p.Message = fmt.Sprintf("No %s groups available. Invite the bot first.", msg.Platform.Title())
		}
	}
	return nil
}

// handleChannelsAdded finishes a picker submission. A refusal keeps the
// picker open with the selection untouched so the user can adjust it. When
// only some channels were added the picker stays open with just the failed
// ones still selected.
func (m *Model) handleChannelsAdded(msg commands.ChannelsAddedMsg) tea.Cmd {
	p := m.state.Picker
	if p != nil && p.Platform == msg.Platform {
		p.Submitting = false
	} else {
		p = nil
	}

	res := msg.Result
	refusal := ""
	switch {
	case msg.Err != nil:
		if p == nil || errors.Is(msg.Err, api.ErrSessionExpired) {
			return m.fail(msg.Err)
		}
		refusal = api.UserMessage(msg.Err)
	case !res.Success:
		refusal = res.Message
		if refusal == "" {
			refusal = api.GenericMessage
		}
	case res.AddedCount == 0:
		refusal = "No channels were added"
		if names := failedChannelNames(p, res.FailedChannels); names != "" {
			refusal += ": " + names
		}
	}
	if refusal != "" {
		if p != nil {
			p.Message = refusal
		}
		m.state.Banners.Error(refusal)
		return nil
	}

	if len(res.FailedChannels) > 0 || res.AddedCount < msg.Submitted {
		text := fmt.Sprintf("Added %d of %d channel(s)", res.AddedCount, msg.Submitted)
		if names := failedChannelNames(p, res.FailedChannels); names != "" {
			text += "; could not add " + names
		}
		m.state.Banners.Error(text)
		if p != nil {
			if len(res.FailedChannels) > 0 {
				p.Selection = p.Selection.KeepChannels(res.FailedChannels)
			}
			p.Message = text
		}
		return m.refreshIntegrations(msg.Platform)
	}

	text := res.Message
	if text == "" {
		text = fmt.Sprintf("Added %d channel(s)", res.AddedCount)
	}
	m.state.Banners.Success(text)

	var cmds []tea.Cmd
	if p != nil {
		m.state.Picker = nil
		cmds = append(cmds, m.changeMode(types.ModeNormal, ""))
	}
	cmds = append(cmds, m.refreshIntegrations(msg.Platform))
	return tea.Batch(cmds...)
}

// failedChannelNames names the failed channels as "#name", falling back to
// the raw id for channels no longer in the selection
func failedChannelNames(p *state.Picker, ids []string) string {
	if len(ids) == 0 {
		return ""
	}
	names := make(map[string]string)
	if p != nil {
		for _, rec := range p.Selection.ToSubmissionList() {
			names[rec.ChannelID] = rec.ChannelName
		}
	}
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if n, ok := names[id]; ok && n != "" {
			out = append(out, "#"+n)
		} else {
			out = append(out, id)
		}
	}
	return strings.Join(out, ", ")
}
