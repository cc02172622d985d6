package ui

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"drr/internal/api"
	"drr/internal/banner"
	"drr/internal/config"
	"drr/internal/domain"
	"drr/internal/session"
	"drr/internal/ui/commands"
	"drr/internal/ui/input/types"
)

// fakeBackend records every call and answers from canned data
type fakeBackend struct {
	mu    sync.Mutex
	calls []string

	loginUser    domain.User
	domainsErr   error
	records      []domain.Record
	added        []string
	deleted      []int64
	integrations map[domain.Platform][]domain.Integration
	groups       []domain.Group
	addChannels  func(picked []domain.ChannelSelection) (api.AddChannelsResult, error)
	users        []domain.User
	created      []api.NewUser
	updates      map[string]api.UserUpdate
	oauthURL     string
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		records: []domain.Record{
			{ID: 1, Name: "example.com", Type: domain.RecordDomain, Issuer: "GoDaddy"},
			{ID: 2, Name: "example.org", Type: domain.RecordSSL, Issuer: "Let's Encrypt"},
			{ID: 3, Name: "another.net", Type: domain.RecordDomain, Issuer: "Namecheap"},
		},
		integrations: map[domain.Platform][]domain.Integration{},
		updates:      map[string]api.UserUpdate{},
		oauthURL:     "https://slack.example/oauth?state=abc",
	}
}

func (f *fakeBackend) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeBackend) called(call string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.calls {
		if c == call {
			return true
		}
	}
	return false
}

func (f *fakeBackend) Login(_ context.Context, email, _ string) (domain.User, error) {
	f.record("login")
	u := f.loginUser
	u.Email = email
	return u, nil
}

func (f *fakeBackend) Register(_ context.Context, r api.Registration) (domain.User, error) {
	f.record("register")
	return domain.User{ID: "new", Email: r.Email, Firstname: r.Firstname}, nil
}

func (f *fakeBackend) SetPassword(context.Context, string, string) (domain.User, error) {
	f.record("set_password")
	return f.loginUser, nil
}

func (f *fakeBackend) ForgotPassword(context.Context, string) (string, error) {
	f.record("forgot_password")
	return "Check your inbox", nil
}

func (f *fakeBackend) ResetPassword(context.Context, string, string) (string, error) {
	f.record("reset_password")
	return "Password updated", nil
}

func (f *fakeBackend) Me(context.Context) (domain.User, error) {
	f.record("me")
	return f.loginUser, nil
}

func (f *fakeBackend) Logout(context.Context) error {
	f.record("logout")
	return nil
}

func (f *fakeBackend) Domains(context.Context) ([]domain.Record, error) {
	f.record("domains")
	if f.domainsErr != nil {
		return nil, f.domainsErr
	}
	return f.records, nil
}

func (f *fakeBackend) AddDomain(_ context.Context, name string) (domain.Record, error) {
	f.record("add_domain")
	f.added = append(f.added, name)
	return domain.Record{ID: 9, Name: name, Type: domain.RecordDomain}, nil
}

func (f *fakeBackend) AddSSL(_ context.Context, name string) (domain.Record, error) {
	f.record("add_ssl")
	f.added = append(f.added, name)
	return domain.Record{ID: 10, Name: name, Type: domain.RecordSSL}, nil
}

func (f *fakeBackend) DeleteDomain(_ context.Context, id int64) error {
	f.record("delete_domain")
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeBackend) CheckDomain(_ context.Context, id int64) (domain.Record, error) {
	f.record("check_domain")
	return domain.Record{ID: id}, nil
}

func (f *fakeBackend) OAuthLink(context.Context, domain.Platform) (api.OAuthURL, error) {
	f.record("oauth")
	return api.OAuthURL{URL: f.oauthURL, State: "abc"}, nil
}

func (f *fakeBackend) TelegramStartLink(context.Context) (api.StartLink, error) {
	f.record("telegram_link")
	return api.StartLink{Link: "https://t.me/drr_bot?start=abc", BotName: "drr_bot"}, nil
}

func (f *fakeBackend) DiscordInviteURL(context.Context) (string, error) {
	f.record("discord_invite")
	return "https://discord.example/invite", nil
}

func (f *fakeBackend) Integrations(_ context.Context, p domain.Platform) ([]domain.Integration, error) {
	f.record("integrations:" + string(p))
	return f.integrations[p], nil
}

func (f *fakeBackend) TestIntegration(context.Context, domain.Platform, int64) (api.Message, error) {
	f.record("test")
	return api.Message{Success: true}, nil
}

func (f *fakeBackend) VerifyIntegration(context.Context, domain.Platform, int64) (api.Message, error) {
	f.record("verify")
	return api.Message{Success: true}, nil
}

func (f *fakeBackend) DeleteIntegration(context.Context, domain.Platform, int64) error {
	f.record("delete_integration")
	return nil
}

func (f *fakeBackend) AvailableGroups(context.Context, domain.Platform) (api.GroupList, error) {
	f.record("groups")
	return api.GroupList{Groups: f.groups}, nil
}

func (f *fakeBackend) AddChannels(_ context.Context, _ domain.Platform, picked []domain.ChannelSelection) (api.AddChannelsResult, error) {
	f.record("add_channels")
	return f.addChannels(picked)
}

func (f *fakeBackend) Users(context.Context) ([]domain.User, error) {
	f.record("users")
	return f.users, nil
}

func (f *fakeBackend) VerifiedUsers(context.Context) ([]domain.User, error) {
	f.record("verified_users")
	var out []domain.User
	for _, u := range f.users {
		if u.Verified == domain.Verified {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeBackend) CreateUser(_ context.Context, u api.NewUser) (domain.User, error) {
	f.record("create_user")
	f.created = append(f.created, u)
	return domain.User{ID: "created", Email: u.Email}, nil
}

func (f *fakeBackend) UpdateUser(_ context.Context, id string, u api.UserUpdate) (domain.User, error) {
	f.record("update_user")
	f.mu.Lock()
	f.updates[id] = u
	f.mu.Unlock()
	return domain.User{ID: id}, nil
}

func (f *fakeBackend) DeleteUser(context.Context, string) error {
	f.record("delete_user")
	return nil
}

func (f *fakeBackend) SendVerification(context.Context, string) (string, error) {
	f.record("send_verification")
	return "", nil
}

// run executes cmd and feeds the backend results it produces back into the
// model. Timers and cursor blinks are dropped.
func run(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			run(t, m, c)
		}
	case commands.AuthMsg, commands.DoneMsg, commands.RecordsMsg, commands.IntegrationsMsg,
		commands.UsersMsg, commands.LinkMsg, commands.GroupsMsg, commands.ChannelsAddedMsg:
		_, next := m.Update(msg)
		run(t, m, next)
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press sends keys one message at a time and returns the last command
func press(m *Model, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = m.Update(key(k))
	}
	return cmd
}

// signedIn builds a model with a stored session, already showing domains
func signedIn(t *testing.T, b *fakeBackend, superuser bool) *Model {
	t.Helper()
	auth := session.New("", nil)
	require.NoError(t, auth.Login(session.Session{
		Token: "opaque",
		User:  domain.User{ID: "me", Email: "me@example.com", Firstname: "Ada", CompanyID: "c1", IsSuperuser: superuser},
	}))
	m := NewModel(nil, config.DefaultConfig(), auth, b)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	run(t, m, m.load(types.ScreenDomains))
	return m
}

func lastBanner(t *testing.T, m *Model) banner.Banner {
	t.Helper()
	visible := m.state.Banners.Visible(0)
	require.NotEmpty(t, visible)
	return visible[len(visible)-1]
}

func TestSignInOpensDomains(t *testing.T) {
	b := newFakeBackend()
	b.loginUser = domain.User{ID: "u1", Firstname: "Ada", Lastname: "Lovelace"}
	m := NewModel(nil, config.DefaultConfig(), nil, b)

	require.Equal(t, types.ScreenSignIn, m.state.Screen)
	require.Equal(t, types.ModeForm, m.inputHandler.CurrentMode())

	press(m, "ada@example.com", "tab", "secret")
	run(t, m, press(m, "enter"))

	assert.True(t, b.called("login"))
	assert.Equal(t, types.ScreenDomains, m.state.Screen)
	assert.Equal(t, types.ModeNormal, m.inputHandler.CurrentMode())
	assert.Nil(t, m.state.Form)
	assert.Len(t, m.state.Records, 3)
	assert.Equal(t, "ada@example.com", m.state.User.Email)
	assert.Equal(t, "Signed in as Ada Lovelace", lastBanner(t, m).Text)
	assert.False(t, m.state.Busy())
}

func TestInvalidSignInIsNeverSent(t *testing.T) {
	b := newFakeBackend()
	m := NewModel(nil, config.DefaultConfig(), nil, b)

	press(m, "not-an-email", "tab", "secret")
	assert.Nil(t, press(m, "enter"))

	assert.False(t, b.called("login"))
	assert.Equal(t, types.ScreenSignIn, m.state.Screen)
	assert.Equal(t, "Enter a valid email address", m.state.Form.Errors["email"])
}

func TestAuthScreensReturnToSignIn(t *testing.T) {
	b := newFakeBackend()
	m := NewModel(nil, config.DefaultConfig(), nil, b)

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlF})
	require.Equal(t, types.ScreenForgotPassword, m.state.Screen)

	press(m, "ada@example.com")
	run(t, m, press(m, "enter"))

	assert.True(t, b.called("forgot_password"))
	assert.Equal(t, types.ScreenSignIn, m.state.Screen)
	assert.Equal(t, "Check your inbox", lastBanner(t, m).Text)

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	require.Equal(t, types.ScreenRegister, m.state.Screen)
	press(m, "esc")
	assert.Equal(t, types.ScreenSignIn, m.state.Screen)
}

func TestSetPasswordTokenPrefilled(t *testing.T) {
	m := NewModel(nil, config.DefaultConfig(), nil, newFakeBackend()).WithSetPasswordToken("tok-123")

	assert.Equal(t, types.ScreenSetPassword, m.state.Screen)
	assert.Equal(t, "tok-123", m.state.Form.Value("token"))
	assert.Equal(t, 1, m.state.Form.FocusIndex())
}

func TestDomainsSortAndFilter(t *testing.T) {
	m := signedIn(t, newFakeBackend(), false)

	press(m, "1")
	rows, _ := m.state.VisibleRecords()
	require.Len(t, rows, 3)
	assert.Equal(t, "another.net", rows[0].Name)

	press(m, "1")
	rows, _ = m.state.VisibleRecords()
	assert.Equal(t, "example.org", rows[0].Name)

	press(m, "/", "e")
	rows, _ = m.state.VisibleRecords()
	assert.Len(t, rows, 3, "one character does not filter")

	press(m, "x", ".o")
	assert.Equal(t, "ex.o", m.state.TableView.Query)
	press(m, "esc")
	assert.Empty(t, m.state.TableView.Query)
	assert.Equal(t, types.ModeNormal, m.inputHandler.CurrentMode())
}

func TestPageSizeCycles(t *testing.T) {
	m := signedIn(t, newFakeBackend(), false)
	start := m.state.TableView.PageSize

	press(m, "p")
	assert.NotEqual(t, start, m.state.TableView.PageSize)
	assert.Zero(t, m.state.TableView.Page)
}

func TestQuitSavesTablePreferences(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	svc := config.NewConfigService(path)
	m := signedIn(t, newFakeBackend(), false).WithConfigService(svc)
	// Startup overrides must not end up in the file
	m.config.APIBaseURL = "http://override.test/api"

	press(m, "p", "2")
	want := m.state.TableView.PageSize
	require.NotNil(t, press(m, "q"))

	saved, err := svc.LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, int(want), saved.UISettings.PageSize)
	assert.Equal(t, "type", saved.UISettings.DefaultSort)
	assert.Equal(t, config.DefaultAPIBaseURL, saved.APIBaseURL)
}

func TestQuitWithoutChangesLeavesConfigAlone(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	m := signedIn(t, newFakeBackend(), false).WithConfigService(config.NewConfigService(path))

	press(m, "q")
	assert.NoFileExists(t, path)
}

func TestAddDomainIsSuperuserOnly(t *testing.T) {
	b := newFakeBackend()
	m := signedIn(t, b, false)

	press(m, "a")
	assert.Equal(t, types.ModeNormal, m.inputHandler.CurrentMode())
	assert.Nil(t, m.state.Prompt)
}

func TestPromptLineShowsEntryLabel(t *testing.T) {
	m := signedIn(t, newFakeBackend(), true)

	press(m, "a")
	assert.Contains(t, m.View(), "Add domain: ")
	press(m, "esc")
	assert.Nil(t, m.state.Prompt)

	press(m, "s")
	assert.Contains(t, m.View(), "Add SSL certificate for: ")
	press(m, "esc")

	press(m, "/")
	assert.Contains(t, m.View(), "Filter: ")
}

func TestAddDomainValidatesAndReloads(t *testing.T) {
	b := newFakeBackend()
	m := signedIn(t, b, true)

	press(m, "a")
	require.Equal(t, types.ModePrompt, m.inputHandler.CurrentMode())
	assert.Nil(t, press(m, "enter"))
	assert.False(t, b.called("add_domain"))
	assert.Equal(t, "Please enter a domain name", lastBanner(t, m).Text)

	press(m, "a", "WWW.Example.io")
	run(t, m, press(m, "enter"))

	require.Equal(t, []string{"example.io"}, b.added)
	assert.Equal(t, "Domain example.io added", lastBanner(t, m).Text)
	assert.Equal(t, types.ModeNormal, m.inputHandler.CurrentMode())
}

func TestDeleteNeedsConfirmation(t *testing.T) {
	b := newFakeBackend()
	m := signedIn(t, b, true)

	press(m, "d")
	require.Equal(t, types.ModeConfirm, m.inputHandler.CurrentMode())
	require.NotNil(t, m.state.Confirm)
	press(m, "n")
	assert.Nil(t, m.state.Confirm)
	assert.False(t, b.called("delete_domain"))

	press(m, "d")
	run(t, m, press(m, "y"))
	require.Len(t, b.deleted, 1)
	rec, _ := m.state.CurrentRecord()
	assert.Equal(t, rec.ID, b.deleted[0])
}

func TestSessionExpirySignsOut(t *testing.T) {
	b := newFakeBackend()
	m := signedIn(t, b, false)

	b.domainsErr = api.ErrSessionExpired
	run(t, m, press(m, "r"))

	assert.Equal(t, types.ScreenSignIn, m.state.Screen)
	assert.Equal(t, types.ModeForm, m.inputHandler.CurrentMode())
	assert.Nil(t, m.state.Records)
	assert.Equal(t, "Your session has expired. Please sign in again.", lastBanner(t, m).Text)
	assert.Equal(t, 1, m.state.Banners.Len())
}

func TestLogout(t *testing.T) {
	b := newFakeBackend()
	m := signedIn(t, b, false)

	run(t, m, press(m, "L"))

	assert.True(t, b.called("logout"))
	assert.Equal(t, types.ScreenSignIn, m.state.Screen)
	assert.Empty(t, m.state.User.ID)
}

func TestHelpFallsBackToPopup(t *testing.T) {
	m := signedIn(t, newFakeBackend(), false)

	press(m, "?")
	assert.Contains(t, m.viewModel.Overlay(), "drr help")

	assert.Nil(t, press(m, "q"), "q closes the popup instead of quitting")
	assert.Empty(t, m.viewModel.Overlay())
}

func TestConnectCopiesLink(t *testing.T) {
	var copied string
	orig := copyToClipboard
	copyToClipboard = func(s string) error { copied = s; return nil }
	t.Cleanup(func() { copyToClipboard = orig })

	b := newFakeBackend()
	m := signedIn(t, b, false)
	run(t, m, press(m, "I"))
	require.Equal(t, types.ScreenIntegrations, m.state.Screen)
	assert.True(t, b.called("integrations:slack"))

	run(t, m, press(m, "o"))
	assert.Equal(t, b.oauthURL, copied)
	assert.Contains(t, m.viewModel.Overlay(), b.oauthURL)
	assert.Equal(t, "Link copied to clipboard", lastBanner(t, m).Text)

	press(m, "esc")
	assert.Empty(t, m.viewModel.Overlay())
}

func pickerBackend() *fakeBackend {
	b := newFakeBackend()
	b.groups = []domain.Group{
		{ID: "w1", Name: "Acme", Channels: []domain.Channel{{ID: "c1", Name: "general"}, {ID: "c2", Name: "alerts"}}},
		{ID: "w2", Name: "Empty"},
	}
	return b
}

func TestPickerRefusalKeepsSelection(t *testing.T) {
	b := pickerBackend()
	b.addChannels = func([]domain.ChannelSelection) (api.AddChannelsResult, error) {
		return api.AddChannelsResult{Success: false, Message: "Bot is not a member of #alerts"}, nil
	}
	m := signedIn(t, b, false)
	run(t, m, press(m, "I"))

	run(t, m, press(m, "c"))
	require.NotNil(t, m.state.Picker)
	require.Equal(t, types.ModePicker, m.inputHandler.CurrentMode())
	require.False(t, m.state.Picker.Loading)

	press(m, "space")
	require.Equal(t, 2, m.state.Picker.Selection.Len())

	run(t, m, press(m, "enter"))
	require.NotNil(t, m.state.Picker, "picker stays open")
	assert.Equal(t, 2, m.state.Picker.Selection.Len())
	assert.Equal(t, "Bot is not a member of #alerts", m.state.Picker.Message)
	assert.Equal(t, banner.Error, lastBanner(t, m).Kind)

	var sent []domain.ChannelSelection
	b.addChannels = func(picked []domain.ChannelSelection) (api.AddChannelsResult, error) {
		sent = picked
		return api.AddChannelsResult{Success: true, AddedCount: len(picked)}, nil
	}
	run(t, m, press(m, "enter"))
	assert.Len(t, sent, 2)
	assert.Nil(t, m.state.Picker)
	assert.Equal(t, types.ModeNormal, m.inputHandler.CurrentMode())
	assert.Equal(t, "Added 2 channel(s)", lastBanner(t, m).Text)
}

func TestPickerNothingAddedIsAFailure(t *testing.T) {
	b := pickerBackend()
	// Teams skips channels it cannot add and still reports success
	b.addChannels = func([]domain.ChannelSelection) (api.AddChannelsResult, error) {
		return api.AddChannelsResult{Success: true, AddedCount: 0}, nil
	}
	m := signedIn(t, b, false)
	run(t, m, press(m, "I"))
	run(t, m, press(m, "l"))
	run(t, m, press(m, "l"))
	require.Equal(t, domain.PlatformTeams, m.state.CurrentPlatform())

	run(t, m, press(m, "c"))
	press(m, "space")
	require.Equal(t, 2, m.state.Picker.Selection.Len())

	run(t, m, press(m, "enter"))
	require.NotNil(t, m.state.Picker, "picker stays open")
	assert.Equal(t, types.ModePicker, m.inputHandler.CurrentMode())
	assert.Equal(t, 2, m.state.Picker.Selection.Len())
	assert.Equal(t, "No channels were added", m.state.Picker.Message)
	assert.Equal(t, banner.Error, lastBanner(t, m).Kind)
}

func TestPickerPartialFailureKeepsFailedChannels(t *testing.T) {
	b := pickerBackend()
	b.addChannels = func(picked []domain.ChannelSelection) (api.AddChannelsResult, error) {
		return api.AddChannelsResult{
			Success:        true,
			Message:        "Added 1 channel integrations",
			AddedCount:     1,
			FailedChannels: []string{"c2"},
		}, nil
	}
	m := signedIn(t, b, false)
	run(t, m, press(m, "I"))
	run(t, m, press(m, "l"))
	require.Equal(t, domain.PlatformDiscord, m.state.CurrentPlatform())

	run(t, m, press(m, "c"))
	press(m, "space")
	require.Equal(t, 2, m.state.Picker.Selection.Len())

	run(t, m, press(m, "enter"))
	require.NotNil(t, m.state.Picker, "picker stays open")
	keys := m.state.Picker.Selection.Keys()
	require.Len(t, keys, 1)
	assert.Equal(t, "c2", keys[0].ChannelID)
	assert.Equal(t, "Added 1 of 2 channel(s); could not add #alerts", m.state.Picker.Message)
	assert.Equal(t, banner.Error, lastBanner(t, m).Kind)
	assert.False(t, m.state.Picker.Submitting)
}

func TestPickerEmptySubmitAndReopen(t *testing.T) {
	b := pickerBackend()
	m := signedIn(t, b, false)
	run(t, m, press(m, "I"))

	run(t, m, press(m, "c"))
	assert.Nil(t, press(m, "enter"))
	assert.Equal(t, "Select at least one channel", m.state.Picker.Message)
	assert.False(t, b.called("add_channels"))

	press(m, "j", "space")
	require.Equal(t, 1, m.state.Picker.Selection.Len())

	press(m, "esc")
	assert.Nil(t, m.state.Picker)

	run(t, m, press(m, "c"))
	assert.Zero(t, m.state.Picker.Selection.Len())
}

func TestUsersScreenIsSuperuserOnly(t *testing.T) {
	m := signedIn(t, newFakeBackend(), false)
	press(m, "U")
	assert.Equal(t, types.ScreenDomains, m.state.Screen)

	run(t, m, press(m, "tab"))
	assert.Equal(t, types.ScreenIntegrations, m.state.Screen)
	run(t, m, press(m, "tab"))
	assert.Equal(t, types.ScreenDomains, m.state.Screen)
}

func TestToggleSuperuser(t *testing.T) {
	b := newFakeBackend()
	b.users = []domain.User{{ID: "u2", Firstname: "Grace", Lastname: "Hopper"}}
	m := signedIn(t, b, true)

	run(t, m, press(m, "U"))
	require.Equal(t, types.ScreenUsers, m.state.Screen)
	require.Len(t, m.state.Users, 1)

	press(m, "S")
	require.NotNil(t, m.state.Confirm)
	assert.Equal(t, "Grant superuser rights to Grace Hopper? (y/n)", m.state.Confirm.Prompt)
	run(t, m, press(m, "y"))

	require.Contains(t, b.updates, "u2")
	require.NotNil(t, b.updates["u2"].IsSuperuser)
	assert.True(t, *b.updates["u2"].IsSuperuser)
}

func TestVerifiedOnlyToggle(t *testing.T) {
	b := newFakeBackend()
	b.users = []domain.User{
		{ID: "u2", Firstname: "Grace", Lastname: "Hopper", Verified: domain.Verified},
		{ID: "u3", Firstname: "Alan", Lastname: "Turing"},
	}
	m := signedIn(t, b, true)

	run(t, m, press(m, "U"))
	require.Len(t, m.state.Users, 2)

	run(t, m, press(m, "V"))
	assert.True(t, m.state.VerifiedOnly)
	require.Len(t, m.state.Users, 1)
	assert.Equal(t, "u2", m.state.Users[0].ID)
	assert.True(t, b.called("verified_users"))

	run(t, m, press(m, "V"))
	assert.False(t, m.state.VerifiedOnly)
	assert.Len(t, m.state.Users, 2)
}

func TestAddUserForm(t *testing.T) {
	b := newFakeBackend()
	m := signedIn(t, b, true)
	run(t, m, press(m, "U"))

	press(m, "a")
	require.Equal(t, types.ModeForm, m.inputHandler.CurrentMode())
	press(m, "Grace", "tab", "Hopper", "tab", "grace@example.com")
	run(t, m, press(m, "enter"))

	require.Len(t, b.created, 1)
	assert.Equal(t, "c1", b.created[0].CompanyID)
	assert.Equal(t, "grace@example.com", b.created[0].Email)
	assert.Nil(t, m.state.Form)
	assert.Equal(t, types.ModeNormal, m.inputHandler.CurrentMode())
}
