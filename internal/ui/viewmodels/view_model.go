package viewmodels

import (
	"sort"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"

	"drr/internal/config"
	"drr/internal/ui/input/types"
	"drr/internal/ui/state"
	"drr/internal/ui/views"
)

// ViewModel transforms application state into view-ready data
type ViewModel struct {
	state     *state.AppState
	config    *config.Config
	width     int
	height    int
	help      help.Model
	mode      types.Mode
	textInput *textinput.Model
	overlay   string
}

// NewViewModel creates a new view model
func NewViewModel(appState *state.AppState, cfg *config.Config) *ViewModel {
	return &ViewModel{
		state:  appState,
		config: cfg,
		help:   help.New(),
	}
}

// SetDimensions sets the current terminal dimensions
func (vm *ViewModel) SetDimensions(width, height int) {
	vm.width = width
	vm.height = height
	vm.help.Width = width
}

// SetInputMode sets the current input mode and its text input, if any
func (vm *ViewModel) SetInputMode(mode types.Mode, ti *textinput.Model) {
	vm.mode = mode
	vm.textInput = ti
}

// SetOverlay sets inline popup content; empty hides it
func (vm *ViewModel) SetOverlay(content string) {
	vm.overlay = content
}

// Overlay returns the inline popup content
func (vm *ViewModel) Overlay() string {
	return vm.overlay
}

// BuildViewState creates a ViewState for rendering
func (vm *ViewModel) BuildViewState() views.ViewState {
	s := vm.state
	records, page := s.VisibleRecords()

	visibleBanners := 3
	if vm.config != nil && vm.config.UISettings.VisibleBanners > 0 {
		visibleBanners = vm.config.UISettings.VisibleBanners
	}

	loading := make([]string, 0, len(s.Loading))
	for k := range s.Loading {
		loading = append(loading, k)
	}
	sort.Strings(loading)

	vs := views.ViewState{
		Width:            vm.width,
		Height:           vm.height,
		Screen:           s.Screen,
		Mode:             vm.mode,
		User:             s.User,
		Now:              s.Now(),
		Banners:          s.Banners.Visible(visibleBanners),
		Loading:          loading,
		Records:          records,
		Page:             page,
		TableView:        s.TableView,
		RecordIndex:      s.RecordIndex,
		Platform:         s.CurrentPlatform(),
		Integrations:     s.Integrations[s.CurrentPlatform()],
		IntegrationIndex: s.IntegrationIndex,
		Picker:           s.Picker,
		Users:            s.Users,
		UserIndex:        s.UserIndex,
		VerifiedOnly:     s.VerifiedOnly,
		Form:             s.Form,
		Overlay:          vm.overlay,
		HelpModel:        vm.help,
	}
	if vm.textInput != nil {
		vm.textInput.PromptStyle = views.TextPromptStyle(vm.mode)
		vs.TextInput = vm.textInput.View()
	}
	if s.Confirm != nil {
		vs.Confirm = s.Confirm.Prompt
	}
	return vs
}
