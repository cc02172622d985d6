package commands

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"drr/internal/api"
	"drr/internal/domain"
)

// Backend is the part of the API client the dashboard drives
type Backend interface {
	Login(ctx context.Context, email, password string) (domain.User, error)
	Register(ctx context.Context, r api.Registration) (domain.User, error)
	SetPassword(ctx context.Context, token, password string) (domain.User, error)
	ForgotPassword(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, token, password string) (string, error)
	Me(ctx context.Context) (domain.User, error)
	Logout(ctx context.Context) error

	Domains(ctx context.Context) ([]domain.Record, error)
	AddDomain(ctx context.Context, name string) (domain.Record, error)
	AddSSL(ctx context.Context, name string) (domain.Record, error)
	DeleteDomain(ctx context.Context, id int64) error
	CheckDomain(ctx context.Context, id int64) (domain.Record, error)

	OAuthLink(ctx context.Context, p domain.Platform) (api.OAuthURL, error)
	TelegramStartLink(ctx context.Context) (api.StartLink, error)
	DiscordInviteURL(ctx context.Context) (string, error)
	Integrations(ctx context.Context, p domain.Platform) ([]domain.Integration, error)
	TestIntegration(ctx context.Context, p domain.Platform, id int64) (api.Message, error)
	VerifyIntegration(ctx context.Context, p domain.Platform, id int64) (api.Message, error)
	DeleteIntegration(ctx context.Context, p domain.Platform, id int64) error
	AvailableGroups(ctx context.Context, p domain.Platform) (api.GroupList, error)
	AddChannels(ctx context.Context, p domain.Platform, picked []domain.ChannelSelection) (api.AddChannelsResult, error)

	Users(ctx context.Context) ([]domain.User, error)
	VerifiedUsers(ctx context.Context) ([]domain.User, error)
	CreateUser(ctx context.Context, u api.NewUser) (domain.User, error)
	UpdateUser(ctx context.Context, id string, u api.UserUpdate) (domain.User, error)
	DeleteUser(ctx context.Context, id string) error
	SendVerification(ctx context.Context, id string) (string, error)
}

// Command represents an executable action
type Command interface {
	Execute() tea.Cmd
}

// CommandContext provides context for command execution
type CommandContext struct {
	Ctx     context.Context
	Backend Backend
	Log     logrus.FieldLogger
}

// RequestCommand runs one backend call off the UI goroutine and turns its
// outcome into a message
type RequestCommand struct {
	ctx  *CommandContext
	name string
	run  func(ctx context.Context) tea.Msg
}

// NewRequestCommand creates a new request command
func NewRequestCommand(ctx *CommandContext, name string, run func(ctx context.Context) tea.Msg) *RequestCommand {
	return &RequestCommand{ctx: ctx, name: name, run: run}
}

// Execute returns the tea.Cmd performing the request
func (c *RequestCommand) Execute() tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		msg := c.run(c.ctx.Ctx)
		entry := c.ctx.Log.WithFields(logrus.Fields{"op": c.name, "elapsed": time.Since(start).Round(time.Millisecond)})
		if r, ok := msg.(interface{ Failure() error }); ok && r.Failure() != nil {
			entry.WithError(r.Failure()).Debug("request failed")
		} else {
			entry.Debug("request done")
		}
		return msg
	}
}
