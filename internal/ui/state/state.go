package state

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"drr/internal/banner"
	"drr/internal/domain"
	"drr/internal/selection"
	"drr/internal/table"
	"drr/internal/ui/forms"
	"drr/internal/ui/input/types"
)

// PromptKind says what a single-line prompt is collecting
type PromptKind int

const (
	PromptAddDomain PromptKind = iota
	PromptAddSSL
)

// Prompt is an open single-line question
type Prompt struct {
	Kind  PromptKind
	Label string
}

// Confirm is a destructive action waiting for y/n
type Confirm struct {
	Prompt string
	Run    func() tea.Cmd
}

// PickerRow is one visible line of the channel picker
type PickerRow struct {
	Group     int
	Channel   int  // -1 for the group header
	SelectAll bool // header rows of groups that have channels
}

// Picker is the state of the channel picker modal
type Picker struct {
	Platform   domain.Platform
	Groups     []domain.Group
	Selection  selection.Selection
	Rows       []PickerRow
	Cursor     int
	Loading    bool
	Submitting bool
	Message    string
}

// NewPicker builds a picker for platform with an empty selection
func NewPicker(p domain.Platform) *Picker {
	return &Picker{Platform: p, Selection: selection.Empty(), Loading: true}
}

// SetGroups installs freshly loaded groups, clears the selection and
// rebuilds the rows. Groups without channels get a plain header row with no
// select-all control.
func (p *Picker) SetGroups(groups []domain.Group) {
	p.Groups = groups
	p.Selection = p.Selection.Clear()
	p.Rows = p.Rows[:0]
	for gi, g := range groups {
		p.Rows = append(p.Rows, PickerRow{Group: gi, Channel: -1, SelectAll: len(g.Channels) > 0})
		for ci := range g.Channels {
			p.Rows = append(p.Rows, PickerRow{Group: gi, Channel: ci})
		}
	}
	p.Cursor = 0
	p.Loading = false
}

// Current returns the row under the cursor
func (p *Picker) Current() (PickerRow, bool) {
	if p.Cursor < 0 || p.Cursor >= len(p.Rows) {
		return PickerRow{}, false
	}
	return p.Rows[p.Cursor], true
}

// Toggle flips the row under the cursor: a channel row toggles that
// channel, a group header toggles the whole group.
func (p *Picker) Toggle() {
	row, ok := p.Current()
	if !ok {
		return
	}
	g := p.Groups[row.Group]
	switch {
	case row.SelectAll:
		p.Selection = p.Selection.ToggleAllInGroup(g)
	case row.Channel >= 0:
		p.Selection = p.Selection.ToggleChannel(g, g.Channels[row.Channel])
	}
}

// AppState contains all the application state
type AppState struct {
	Screen types.Screen
	User   domain.User

	// Domains screen
	Records     []domain.Record
	TableView   table.View
	RecordIndex int // cursor within the current page

	// Integrations screen
	Platform         int // index into domain.Platforms
	Integrations     map[domain.Platform][]domain.Integration
	IntegrationIndex int
	Picker           *Picker

	// Users screen
	Users        []domain.User
	UserIndex    int
	VerifiedOnly bool

	// Overlays
	Form    *forms.Form
	Prompt  *Prompt
	Confirm *Confirm

	// Status
	Banners  *banner.Queue
	Loading  map[string]bool
	ShowHelp bool
	Now      func() time.Time
}

// NewAppState creates a new application state
func NewAppState(banners *banner.Queue) *AppState {
	return &AppState{
		Screen:       types.ScreenSignIn,
		Integrations: make(map[domain.Platform][]domain.Integration),
		Loading:      make(map[string]bool),
		Banners:      banners,
		Now:          time.Now,
	}
}

// CurrentPlatform returns the platform tab shown on the integrations screen
func (s *AppState) CurrentPlatform() domain.Platform {
	return domain.Platforms[s.Platform]
}

// VisibleRecords returns the domains page currently on screen
func (s *AppState) VisibleRecords() ([]domain.Record, table.PageInfo) {
	return table.Apply(s.Records, s.TableView, s.Now())
}

// CurrentRecord returns the record under the cursor
func (s *AppState) CurrentRecord() (domain.Record, bool) {
	rows, _ := s.VisibleRecords()
	if s.RecordIndex < 0 || s.RecordIndex >= len(rows) {
		return domain.Record{}, false
	}
	return rows[s.RecordIndex], true
}

// CurrentIntegration returns the integration under the cursor
func (s *AppState) CurrentIntegration() (domain.Integration, bool) {
	list := s.Integrations[s.CurrentPlatform()]
	if s.IntegrationIndex < 0 || s.IntegrationIndex >= len(list) {
		return domain.Integration{}, false
	}
	return list[s.IntegrationIndex], true
}

// CurrentUser returns the user under the cursor on the users screen
func (s *AppState) CurrentUser() (domain.User, bool) {
	if s.UserIndex < 0 || s.UserIndex >= len(s.Users) {
		return domain.User{}, false
	}
	return s.Users[s.UserIndex], true
}

// TotalItems returns the number of navigable rows on the current screen
func (s *AppState) TotalItems() int {
	if s.Picker != nil {
		return len(s.Picker.Rows)
	}
	switch s.Screen {
	case types.ScreenDomains:
		rows, _ := s.VisibleRecords()
		return len(rows)
	case types.ScreenIntegrations:
		return len(s.Integrations[s.CurrentPlatform()])
	case types.ScreenUsers:
		return len(s.Users)
	}
	return 0
}

// CurrentIndex returns the cursor on the current screen
func (s *AppState) CurrentIndex() int {
	if s.Picker != nil {
		return s.Picker.Cursor
	}
	switch s.Screen {
	case types.ScreenDomains:
		return s.RecordIndex
	case types.ScreenIntegrations:
		return s.IntegrationIndex
	case types.ScreenUsers:
		return s.UserIndex
	}
	return 0
}

// SetIndex moves the cursor on the current screen, clamped to the rows
func (s *AppState) SetIndex(i int) {
	total := s.TotalItems()
	if i >= total {
		i = total - 1
	}
	if i < 0 {
		i = 0
	}
	if s.Picker != nil {
		s.Picker.Cursor = i
		return
	}
	switch s.Screen {
	case types.ScreenDomains:
		s.RecordIndex = i
	case types.ScreenIntegrations:
		s.IntegrationIndex = i
	case types.ScreenUsers:
		s.UserIndex = i
	}
}

// ClampIndex keeps the cursor inside the rows after the data changed
func (s *AppState) ClampIndex() {
	s.SetIndex(s.CurrentIndex())
}

// SetLoading marks a background operation as running or finished
func (s *AppState) SetLoading(key string, on bool) {
	if on {
		s.Loading[key] = true
	} else {
		delete(s.Loading, key)
	}
}

// Busy reports whether any background operation is running
func (s *AppState) Busy() bool {
	return len(s.Loading) > 0
}

// ResetSession clears everything tied to the signed-in account
func (s *AppState) ResetSession() {
	s.User = domain.User{}
	s.Records = nil
	s.RecordIndex = 0
	s.Integrations = make(map[domain.Platform][]domain.Integration)
	s.IntegrationIndex = 0
	s.Picker = nil
	s.Users = nil
	s.UserIndex = 0
	s.VerifiedOnly = false
	s.Prompt = nil
	s.Confirm = nil
	s.Form = nil
	s.Loading = make(map[string]bool)
}
