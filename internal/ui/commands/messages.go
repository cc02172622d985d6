package commands

import (
	"drr/internal/api"
	"drr/internal/domain"
)

// Op names a mutation whose result is reported with DoneMsg
type Op string

const (
	OpForgotPassword    Op = "forgot_password"
	OpResetPassword     Op = "reset_password"
	OpLogout            Op = "logout"
	OpAddDomain         Op = "add_domain"
	OpAddSSL            Op = "add_ssl"
	OpDeleteDomain      Op = "delete_domain"
	OpCheckDomain       Op = "check_domain"
	OpTestIntegration   Op = "test_integration"
	OpVerify            Op = "verify_integration"
	OpDeleteIntegration Op = "delete_integration"
	OpCreateUser        Op = "create_user"
	OpDeleteUser        Op = "delete_user"
	OpSendVerification  Op = "send_verification"
	OpUpdateUser        Op = "update_user"
)

// AuthMsg reports a sign-in, registration or password setup
type AuthMsg struct {
	User domain.User
	Err  error
}

func (m AuthMsg) Failure() error { return m.Err }

// DoneMsg reports a finished mutation. Message is the success banner text.
type DoneMsg struct {
	Op       Op
	Message  string
	Platform domain.Platform
	Err      error
}

func (m DoneMsg) Failure() error { return m.Err }

// RecordsMsg carries the monitored domains and certificates
type RecordsMsg struct {
	Records []domain.Record
	Err     error
}

func (m RecordsMsg) Failure() error { return m.Err }

// IntegrationsMsg carries a one-off load of a platform's integrations
type IntegrationsMsg struct {
	Platform     domain.Platform
	Integrations []domain.Integration
	Err          error
}

func (m IntegrationsMsg) Failure() error { return m.Err }

// LinkMsg carries a URL the user must open in a browser
type LinkMsg struct {
	Platform domain.Platform
	Label    string
	URL      string
	Err      error
}

func (m LinkMsg) Failure() error { return m.Err }

// GroupsMsg carries the groups for the channel picker
type GroupsMsg struct {
	Platform domain.Platform
	Groups   []domain.Group
	Message  string
	Err      error
}

func (m GroupsMsg) Failure() error { return m.Err }

// ChannelsAddedMsg reports a picker submission
type ChannelsAddedMsg struct {
	Platform  domain.Platform
	Submitted int
	Result    api.AddChannelsResult
	Err       error
}

func (m ChannelsAddedMsg) Failure() error { return m.Err }

// UsersMsg carries the company's users
type UsersMsg struct {
	Users []domain.User
	Err   error
}

func (m UsersMsg) Failure() error { return m.Err }
