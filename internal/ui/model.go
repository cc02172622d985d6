package ui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"drr/internal/api"
	"drr/internal/banner"
	"drr/internal/config"
	"drr/internal/domain"
	"drr/internal/eventbus"
	"drr/internal/poller"
	"drr/internal/session"
	"drr/internal/table"
	"drr/internal/ui/commands"
	"drr/internal/ui/handlers"
	"drr/internal/ui/input"
	inputtypes "drr/internal/ui/input/types"
	"drr/internal/ui/state"
	"drr/internal/ui/viewmodels"
	"drr/internal/ui/views"
)

// bannerLimit caps how many banners are kept around at once
const bannerLimit = 20

// Model represents the UI state
type Model struct {
	ctx     context.Context
	cancel  context.CancelFunc
	bus     eventbus.EventBus
	config    *config.Config
	configSvc config.ConfigService
	backend   commands.Backend
	state   *state.AppState // centralized state
	log     logrus.FieldLogger

	// UI-specific state not in AppState
	width       int
	height      int
	inPagerMode bool // tracks if we're currently in pager mode

	// Handlers
	renderer     *views.Renderer
	eventHandler *handlers.EventHandler
	viewModel    *viewmodels.ViewModel
	cmdExecutor  *commands.Executor
	inputHandler *input.Handler
	pager        *PagerOps

	// Integration polling, one task per platform while the screen is visible
	pollers map[domain.Platform]*poller.Poller
	latest  *poller.Latest

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model. auth may be nil; when it holds a session
// the dashboard opens directly. bus may be nil, in which case integrations
// are loaded on demand instead of polled.
func NewModel(bus eventbus.EventBus, cfg *config.Config, auth *session.AuthContext, backend commands.Backend) *Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	appState := state.NewAppState(banner.NewQueue(cfg.UISettings.BannerTTL.Duration, bannerLimit))
	appState.TableView = table.View{
		Sort:     table.SortState{Field: table.ParseField(cfg.UISettings.DefaultSort)},
		PageSize: table.PageSize(cfg.UISettings.PageSize),
	}

	ctx, cancel := context.WithCancel(context.Background())
	m := &Model{
		ctx:          ctx,
		cancel:       cancel,
		bus:          bus,
		config:       cfg,
		backend:      backend,
		state:        appState,
		log:          logrus.WithField("component", "ui"),
		renderer:     views.NewRenderer(),
		inputHandler: input.New(),
		pager:        NewPagerOps(),
		pollers:      make(map[domain.Platform]*poller.Poller),
		latest:       &poller.Latest{},
	}

	m.eventHandler = handlers.NewEventHandler(appState, m.latest, m.onSignedOut)
	m.cmdExecutor = commands.NewExecutor(ctx, backend, logrus.StandardLogger())
	m.viewModel = viewmodels.NewViewModel(appState, cfg)

	if auth != nil {
		if u, ok := auth.User(); ok {
			appState.User = u
			appState.Screen = inputtypes.ScreenDomains
		}
	}
	if appState.Screen.IsAuth() {
		m.openAuthScreen(inputtypes.ScreenSignIn)
	}

	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.pager.SetProgram(p)
}

// WithSetPasswordToken opens the set-password screen for a freshly verified
// account, with the token from the verification link already filled in.
func (m *Model) WithSetPasswordToken(token string) *Model {
	m.openAuthScreen(inputtypes.ScreenSetPassword)
	m.state.Form.SetValue("token", token)
	m.state.Form.Move(1)
	return m
}

// WithConfigService lets the model store table preferences on quit
func (m *Model) WithConfigService(svc config.ConfigService) *Model {
	m.configSvc = svc
	return m
}

// Screen implements the input context
func (m *Model) Screen() inputtypes.Screen {
	return m.state.Screen
}

// CurrentIndex implements the input context
func (m *Model) CurrentIndex() int {
	return m.state.CurrentIndex()
}

// TotalItems implements the input context
func (m *Model) TotalItems() int {
	return m.state.TotalItems()
}

// IsSuperuser reports whether the signed-in user may see superuser controls.
// The backend enforces the real permission.
func (m *Model) IsSuperuser() bool {
	return m.state.User.IsSuperuser
}

// HasChannelPicker implements the input context
// PromptLabel implements the input context
func (m *Model) PromptLabel() string {
	if m.state.Prompt == nil {
		return ""
	}
	return m.state.Prompt.Label
}

func (m *Model) HasChannelPicker() bool {
	return m.state.CurrentPlatform().HasChannelPicker()
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tick()}
	if !m.state.Screen.IsAuth() {
		m.state.SetLoading("profile", true)
		cmds = append(cmds, m.load(inputtypes.ScreenDomains), m.cmdExecutor.Me())
	}
	return tea.Batch(cmds...)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		// Popups take every key until closed
		if m.viewModel.Overlay() != "" {
			return m, m.handleOverlayKey(msg)
		}

		actions, cmd := m.inputHandler.HandleKey(msg, m)

		cmds := []tea.Cmd{}
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		for _, action := range actions {
			if actionCmd := m.processAction(action); actionCmd != nil {
				cmds = append(cmds, actionCmd)
			}
		}
		return m, tea.Batch(cmds...)

	default:
		// Handle non-keyboard messages
		if cmd := m.inputHandler.Update(msg); cmd != nil {
			return m, cmd
		}
		return m.handleNonKeyboardMsg(msg)
	}

	return m, nil
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	m.viewModel.SetDimensions(m.width, m.height)
	m.viewModel.SetInputMode(m.inputHandler.CurrentMode(), m.inputHandler.TextInput())

	return m.renderer.Render(m.viewModel.BuildViewState())
}

func (m *Model) handleOverlayKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c":
		return m.quit()
	case "esc", "q", "x", "enter", "?":
		m.viewModel.SetOverlay("")
	}
	return nil
}

// handleNonKeyboardMsg handles non-keyboard messages
func (m *Model) handleNonKeyboardMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case EventMsg:
		return m, m.eventHandler.HandleEvent(msg.Event)

	case tickMsg:
		m.state.Banners.Expire(time.Time(msg))
		// Don't continue tick loop if we're in pager mode
		if m.inPagerMode {
			return m, nil
		}
		return m, tick()

	case pagerMsg:
		if msg.err != nil {
			m.log.WithError(msg.err).Warn("pager failed, falling back to popup")
			m.viewModel.SetOverlay(msg.content)
		}
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, tick()

	case commands.AuthMsg:
		return m, m.handleAuth(msg)
	case commands.DoneMsg:
		return m, m.handleDone(msg)
	case commands.RecordsMsg:
		return m, m.handleRecords(msg)
	case commands.IntegrationsMsg:
		return m, m.handleIntegrations(msg)
	case commands.UsersMsg:
		return m, m.handleUsers(msg)
	case commands.LinkMsg:
		return m, m.handleLink(msg)
	case commands.GroupsMsg:
		return m, m.handleGroups(msg)
	case commands.ChannelsAddedMsg:
		return m, m.handleChannelsAdded(msg)

	default:
		return m, nil
	}
}

// fail reports an error to the user. An expired session signs out instead
// of showing the raw failure.
func (m *Model) fail(err error) tea.Cmd {
	if errors.Is(err, api.ErrSessionExpired) {
		return m.eventHandler.HandleEvent(eventbus.SessionExpiredEvent{})
	}
	m.log.WithError(err).Debug("request failed")
	m.state.Banners.Error(api.UserMessage(err))
	return nil
}

// changeMode switches the input mode from the model side
func (m *Model) changeMode(mode inputtypes.Mode, data string) tea.Cmd {
	actions, cmd := m.inputHandler.ChangeMode(mode, data, m)
	cmds := []tea.Cmd{cmd}
	for _, a := range actions {
		cmds = append(cmds, m.processAction(a))
	}
	return tea.Batch(cmds...)
}

// switchScreen moves between the dashboard screens and loads their data
func (m *Model) switchScreen(target inputtypes.Screen) tea.Cmd {
	if target == inputtypes.ScreenUsers && !m.IsSuperuser() {
		return nil
	}
	prev := m.state.Screen
	if prev == target {
		return nil
	}
	if prev == inputtypes.ScreenIntegrations {
		m.stopPollers()
	}
	m.state.Screen = target
	return m.load(target)
}

// cycleScreen returns the dashboard screen step tabs away from the current one
func (m *Model) cycleScreen(step int) inputtypes.Screen {
	screens := []inputtypes.Screen{inputtypes.ScreenDomains, inputtypes.ScreenIntegrations}
	if m.IsSuperuser() {
		screens = append(screens, inputtypes.ScreenUsers)
	}
	cur := 0
	for i, s := range screens {
		if s == m.state.Screen {
			cur = i
		}
	}
	next := (cur + step) % len(screens)
	if next < 0 {
		next += len(screens)
	}
	return screens[next]
}

// load fetches the data shown on screen
func (m *Model) load(screen inputtypes.Screen) tea.Cmd {
	switch screen {
	case inputtypes.ScreenDomains:
		m.state.SetLoading("domains", true)
		return m.cmdExecutor.LoadDomains()
	case inputtypes.ScreenIntegrations:
		return m.startPollers()
	case inputtypes.ScreenUsers:
		m.state.SetLoading("users", true)
		return m.cmdExecutor.LoadUsers(m.state.VerifiedOnly)
	}
	return nil
}

// refresh reloads the current screen right away
func (m *Model) refresh() tea.Cmd {
	if m.state.Screen == inputtypes.ScreenIntegrations {
		return m.refreshIntegrations(m.state.CurrentPlatform())
	}
	return m.load(m.state.Screen)
}

// startPollers begins polling every platform. Without an event bus there is
// nowhere to deliver poll results, so the visible platform is loaded once.
func (m *Model) startPollers() tea.Cmd {
	if m.bus == nil {
		return m.loadIntegrations(m.state.CurrentPlatform())
	}
	interval := m.config.PollInterval.Duration
	if interval <= 0 {
		interval = config.DefaultConfig().PollInterval.Duration
	}
	for _, p := range domain.Platforms {
		pl, ok := m.pollers[p]
		if !ok {
			pl = poller.New(string(p), interval, commands.PollIntegrations(m.backend, m.bus, p))
			m.pollers[p] = pl
		}
		pl.Start(m.ctx)
	}
	return nil
}

func (m *Model) stopPollers() {
	for _, pl := range m.pollers {
		pl.Stop()
	}
}

// refreshIntegrations reloads one platform, through its poller when polling
func (m *Model) refreshIntegrations(p domain.Platform) tea.Cmd {
	if pl, ok := m.pollers[p]; ok && pl.Running() {
		pl.Trigger()
		return nil
	}
	return m.loadIntegrations(p)
}

func (m *Model) loadIntegrations(p domain.Platform) tea.Cmd {
	m.state.SetLoading("integrations", true)
	return m.cmdExecutor.LoadIntegrations(p)
}

// showPager opens content in the ov pager, or inline when no program is
// attached to hand the terminal over.
func (m *Model) showPager(content string) tea.Cmd {
	if !m.pager.Available() {
		m.viewModel.SetOverlay(content)
		return nil
	}
	return m.pagerCmd(content)
}

// onSignedOut runs after the session has been cleared
func (m *Model) onSignedOut() {
	m.stopPollers()
	m.viewModel.SetOverlay("")
	m.inputHandler.Reset()
	m.openAuthScreen(inputtypes.ScreenSignIn)
}

func (m *Model) quit() tea.Cmd {
	m.stopPollers()
	m.savePreferences()
	m.cancel()
	return tea.Quit
}

// savePreferences writes the domains table page size and sort field back to
// the config file when they changed. The file is re-read so that env and
// flag overrides applied at startup are not persisted.
func (m *Model) savePreferences() {
	if m.configSvc == nil {
		return
	}
	view := m.state.TableView
	prefs := m.config.UISettings
	if int(view.PageSize) == prefs.PageSize && table.ParseField(prefs.DefaultSort) == view.Sort.Field {
		return
	}

	cfg, err := m.configSvc.Load()
	if err != nil {
		m.log.WithError(err).Warn("could not read config to save preferences")
		return
	}
	cfg.UISettings.PageSize = int(view.PageSize)
	cfg.UISettings.DefaultSort = string(view.Sort.Field)
	if err := m.configSvc.Save(cfg); err != nil {
		m.log.WithError(err).Warn("could not save preferences")
		return
	}
	m.config.UISettings.PageSize = cfg.UISettings.PageSize
	m.config.UISettings.DefaultSort = cfg.UISettings.DefaultSort
	m.log.WithFields(logrus.Fields{"page_size": view.PageSize, "sort": view.Sort.Field}).Info("saved table preferences")
}

// tick returns a command that sends a tick message after a delay
func tick() tea.Cmd {
	return tea.Tick(time.Millisecond*100, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
