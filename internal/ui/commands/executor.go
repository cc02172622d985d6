package commands

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"drr/internal/api"
	"drr/internal/domain"
	"drr/internal/eventbus"
	"drr/internal/poller"
)

// Executor handles command execution
type Executor struct {
	ctx *CommandContext
}

// NewExecutor creates a new command executor
func NewExecutor(ctx context.Context, backend Backend, log logrus.FieldLogger) *Executor {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Executor{
		ctx: &CommandContext{
			Ctx:     ctx,
			Backend: backend,
			Log:     log.WithField("component", "commands"),
		},
	}
}

func (e *Executor) request(name string, run func(ctx context.Context, b Backend) tea.Msg) tea.Cmd {
	cmd := NewRequestCommand(e.ctx, name, func(ctx context.Context) tea.Msg {
		return run(ctx, e.ctx.Backend)
	})
	return cmd.Execute()
}

func (e *Executor) done(op Op, success string, call func(ctx context.Context, b Backend) error) tea.Cmd {
	return e.request(string(op), func(ctx context.Context, b Backend) tea.Msg {
		if err := call(ctx, b); err != nil {
			return DoneMsg{Op: op, Err: err}
		}
		return DoneMsg{Op: op, Message: success}
	})
}

// Login signs in
func (e *Executor) Login(email, password string) tea.Cmd {
	return e.request("login", func(ctx context.Context, b Backend) tea.Msg {
		u, err := b.Login(ctx, email, password)
		return AuthMsg{User: u, Err: err}
	})
}

// Register creates an account and signs in
func (e *Executor) Register(r api.Registration) tea.Cmd {
	return e.request("register", func(ctx context.Context, b Backend) tea.Msg {
		u, err := b.Register(ctx, r)
		return AuthMsg{User: u, Err: err}
	})
}

// SetPassword completes an invitation with the verification token
func (e *Executor) SetPassword(token, password string) tea.Cmd {
	return e.request("set_password", func(ctx context.Context, b Backend) tea.Msg {
		u, err := b.SetPassword(ctx, token, password)
		return AuthMsg{User: u, Err: err}
	})
}

// Me refreshes the signed-in user
func (e *Executor) Me() tea.Cmd {
	return e.request("me", func(ctx context.Context, b Backend) tea.Msg {
		u, err := b.Me(ctx)
		return AuthMsg{User: u, Err: err}
	})
}

// ForgotPassword requests a reset email
func (e *Executor) ForgotPassword(email string) tea.Cmd {
	return e.request(string(OpForgotPassword), func(ctx context.Context, b Backend) tea.Msg {
		msg, err := b.ForgotPassword(ctx, email)
		if msg == "" {
			msg = "If that address has an account, a reset link is on its way."
		}
		return DoneMsg{Op: OpForgotPassword, Message: msg, Err: err}
	})
}

// ResetPassword sets a new password with a reset token
func (e *Executor) ResetPassword(token, password string) tea.Cmd {
	return e.request(string(OpResetPassword), func(ctx context.Context, b Backend) tea.Msg {
		msg, err := b.ResetPassword(ctx, token, password)
		if msg == "" {
			msg = "Password updated. Sign in with your new password."
		}
		return DoneMsg{Op: OpResetPassword, Message: msg, Err: err}
	})
}

// Logout ends the session
func (e *Executor) Logout() tea.Cmd {
	return e.done(OpLogout, "Signed out", func(ctx context.Context, b Backend) error {
		return b.Logout(ctx)
	})
}

// LoadDomains fetches the monitored records
func (e *Executor) LoadDomains() tea.Cmd {
	return e.request("domains", func(ctx context.Context, b Backend) tea.Msg {
		recs, err := b.Domains(ctx)
		return RecordsMsg{Records: recs, Err: err}
	})
}

// AddRecord starts monitoring a domain registration or an SSL certificate
func (e *Executor) AddRecord(name string, ssl bool) tea.Cmd {
	if ssl {
		return e.request(string(OpAddSSL), func(ctx context.Context, b Backend) tea.Msg {
			rec, err := b.AddSSL(ctx, name)
			return DoneMsg{Op: OpAddSSL, Message: fmt.Sprintf("SSL certificate for %s added", rec.Name), Err: err}
		})
	}
	return e.request(string(OpAddDomain), func(ctx context.Context, b Backend) tea.Msg {
		rec, err := b.AddDomain(ctx, name)
		return DoneMsg{Op: OpAddDomain, Message: fmt.Sprintf("Domain %s added", rec.Name), Err: err}
	})
}

// DeleteRecord stops monitoring a record
func (e *Executor) DeleteRecord(rec domain.Record) tea.Cmd {
	return e.done(OpDeleteDomain, fmt.Sprintf("%s deleted", rec.Name), func(ctx context.Context, b Backend) error {
		return b.DeleteDomain(ctx, rec.ID)
	})
}

// CheckRecord forces the backend to re-check a record now
func (e *Executor) CheckRecord(rec domain.Record) tea.Cmd {
	return e.request(string(OpCheckDomain), func(ctx context.Context, b Backend) tea.Msg {
		updated, err := b.CheckDomain(ctx, rec.ID)
		if err != nil {
			return DoneMsg{Op: OpCheckDomain, Err: err}
		}
		return DoneMsg{Op: OpCheckDomain, Message: fmt.Sprintf("%s checked, renews %s", rec.Name, updated.RenewDate)}
	})
}

// LoadIntegrations fetches one platform's integrations once
func (e *Executor) LoadIntegrations(p domain.Platform) tea.Cmd {
	return e.request("integrations", func(ctx context.Context, b Backend) tea.Msg {
		list, err := b.Integrations(ctx, p)
		return IntegrationsMsg{Platform: p, Integrations: list, Err: err}
	})
}

// Connect issues the link that starts connecting a platform account
func (e *Executor) Connect(p domain.Platform) tea.Cmd {
	if p == domain.PlatformTelegram {
		return e.request("telegram_start_link", func(ctx context.Context, b Backend) tea.Msg {
			link, err := b.TelegramStartLink(ctx)
			label := "Open this link in Telegram and press Start"
			if link.BotName != "" {
				label = fmt.Sprintf("Open this link and press Start in @%s", strings.TrimPrefix(link.BotName, "@"))
			}
			return LinkMsg{Platform: p, Label: label, URL: link.Link, Err: err}
		})
	}
	return e.request("oauth_url", func(ctx context.Context, b Backend) tea.Msg {
		link, err := b.OAuthLink(ctx, p)
		return LinkMsg{Platform: p, Label: fmt.Sprintf("Open this link to connect %s", p.Title()), URL: link.URL, Err: err}
	})
}

// InviteBot issues the Discord bot invite link
func (e *Executor) InviteBot() tea.Cmd {
	return e.request("discord_invite", func(ctx context.Context, b Backend) tea.Msg {
		url, err := b.DiscordInviteURL(ctx)
		return LinkMsg{Platform: domain.PlatformDiscord, Label: "Open this link to add the bot to a server", URL: url, Err: err}
	})
}

// TestIntegration sends a test notification
func (e *Executor) TestIntegration(in domain.Integration) tea.Cmd {
	return e.request(string(OpTestIntegration), func(ctx context.Context, b Backend) tea.Msg {
		res, err := b.TestIntegration(ctx, in.Platform, in.ID)
		return messageResult(OpTestIntegration, in.Platform, "Test message sent to "+in.Destination(), res, err)
	})
}

// VerifyIntegration asks the backend to confirm the destination still works
func (e *Executor) VerifyIntegration(in domain.Integration) tea.Cmd {
	return e.request(string(OpVerify), func(ctx context.Context, b Backend) tea.Msg {
		res, err := b.VerifyIntegration(ctx, in.Platform, in.ID)
		return messageResult(OpVerify, in.Platform, in.Destination()+" verified", res, err)
	})
}

func messageResult(op Op, p domain.Platform, fallback string, res api.Message, err error) DoneMsg {
	if err != nil {
		return DoneMsg{Op: op, Platform: p, Err: err}
	}
	text := res.Message
	if text == "" {
		text = fallback
	}
	if !res.Success {
		return DoneMsg{Op: op, Platform: p, Err: &api.Error{Status: 200, Detail: text}}
	}
	return DoneMsg{Op: op, Platform: p, Message: text}
}

// DeleteIntegration removes an integration
func (e *Executor) DeleteIntegration(in domain.Integration) tea.Cmd {
	return e.request(string(OpDeleteIntegration), func(ctx context.Context, b Backend) tea.Msg {
		if err := b.DeleteIntegration(ctx, in.Platform, in.ID); err != nil {
			return DoneMsg{Op: OpDeleteIntegration, Platform: in.Platform, Err: err}
		}
		return DoneMsg{Op: OpDeleteIntegration, Platform: in.Platform, Message: in.Destination() + " removed"}
	})
}

// LoadGroups fetches the groups shown by the channel picker
func (e *Executor) LoadGroups(p domain.Platform) tea.Cmd {
	return e.request("available_groups", func(ctx context.Context, b Backend) tea.Msg {
		list, err := b.AvailableGroups(ctx, p)
		return GroupsMsg{Platform: p, Groups: list.Groups, Message: list.Message, Err: err}
	})
}

// AddChannels submits the picked channels
func (e *Executor) AddChannels(p domain.Platform, picked []domain.ChannelSelection) tea.Cmd {
	return e.request("add_channels", func(ctx context.Context, b Backend) tea.Msg {
		res, err := b.AddChannels(ctx, p, picked)
		return ChannelsAddedMsg{Platform: p, Submitted: len(picked), Result: res, Err: err}
	})
}

// LoadUsers fetches the company's users, or only those with a verified
// email address
func (e *Executor) LoadUsers(verifiedOnly bool) tea.Cmd {
	return e.request("users", func(ctx context.Context, b Backend) tea.Msg {
		fetch := b.Users
		if verifiedOnly {
			fetch = b.VerifiedUsers
		}
		users, err := fetch(ctx)
		return UsersMsg{Users: users, Err: err}
	})
}

// CreateUser invites a colleague
func (e *Executor) CreateUser(u api.NewUser) tea.Cmd {
	return e.done(OpCreateUser, fmt.Sprintf("Invitation sent to %s", u.Email), func(ctx context.Context, b Backend) error {
		_, err := b.CreateUser(ctx, u)
		return err
	})
}

// DeleteUser removes a user
func (e *Executor) DeleteUser(u domain.User) tea.Cmd {
	return e.done(OpDeleteUser, fmt.Sprintf("%s deleted", u.DisplayName()), func(ctx context.Context, b Backend) error {
		return b.DeleteUser(ctx, u.ID)
	})
}

// SendVerification re-sends the verification email
func (e *Executor) SendVerification(u domain.User) tea.Cmd {
	return e.request(string(OpSendVerification), func(ctx context.Context, b Backend) tea.Msg {
		msg, err := b.SendVerification(ctx, u.ID)
		if msg == "" {
			msg = "Verification email sent to " + u.Email
		}
		return DoneMsg{Op: OpSendVerification, Message: msg, Err: err}
	})
}

// ToggleSuperuser grants or revokes superuser rights
func (e *Executor) ToggleSuperuser(u domain.User) tea.Cmd {
	grant := !u.IsSuperuser
	text := fmt.Sprintf("%s is now a superuser", u.DisplayName())
	if !grant {
		text = fmt.Sprintf("%s is no longer a superuser", u.DisplayName())
	}
	return e.done(OpUpdateUser, text, func(ctx context.Context, b Backend) error {
		_, err := b.UpdateUser(ctx, u.ID, api.UserUpdate{IsSuperuser: &grant})
		return err
	})
}

// PollIntegrations returns the fetch function of a platform's poller. Each
// completed fetch is published with its sequence number; fetches cancelled
// by Stop publish nothing.
func PollIntegrations(backend Backend, bus eventbus.EventBus, p domain.Platform) poller.FetchFunc {
	return func(ctx context.Context, seq uint64) error {
		list, err := backend.Integrations(ctx, p)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		bus.Publish(eventbus.IntegrationsPolledEvent{Platform: p, Seq: seq, Integrations: list, Err: err})
		return err
	}
}
