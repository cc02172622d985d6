package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"drr/internal/ui/input/modes"
	"drr/internal/ui/input/types"
)

type Handler struct {
	currentMode types.Mode
	modes       map[types.Mode]types.ModeHandler
	textInput   *textinput.Model // Shared text input for text modes
}

func New() *Handler {
	ti := textinput.New()

	h := &Handler{
		currentMode: types.ModeNormal,
		textInput:   &ti,
		modes:       make(map[types.Mode]types.ModeHandler),
	}

	h.modes[types.ModeNormal] = modes.NewNormalMode()
	h.modes[types.ModeFilter] = modes.NewFilterMode(h.textInput)
	h.modes[types.ModePrompt] = modes.NewPromptMode(h.textInput)
	h.modes[types.ModeConfirm] = modes.NewConfirmMode()
	h.modes[types.ModeForm] = modes.NewFormMode()
	h.modes[types.ModePicker] = modes.NewPickerMode()

	return h
}

func (h *Handler) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, tea.Cmd) {
	handler := h.modes[h.currentMode]
	if handler == nil {
		return nil, nil
	}

	actions, consumed := handler.HandleKey(msg, ctx)
	if !consumed && !h.isTextMode(h.currentMode) {
		return nil, nil
	}

	var cmd tea.Cmd
	var allActions []types.Action

	for _, action := range actions {
		changeMode, ok := action.(types.ChangeModeAction)
		if !ok {
			allActions = append(allActions, action)
			continue
		}
		allActions = append(allActions, h.switchMode(changeMode.Mode, changeMode.Data, ctx)...)
		if h.isTextMode(h.currentMode) {
			cmd = textinput.Blink
		}
	}

	// Keys the text mode did not claim go to the text input
	if h.isTextMode(h.currentMode) && !consumed {
		var textCmd tea.Cmd
		*h.textInput, textCmd = h.textInput.Update(msg)
		cmd = textCmd
		allActions = append(allActions, types.UpdateTextAction{Text: h.textInput.Value()})
	}

	return allActions, cmd
}

// ChangeMode switches modes from the model side, running the Exit and
// Enter hooks. data seeds the text input of text modes.
func (h *Handler) ChangeMode(mode types.Mode, data string, ctx types.Context) ([]types.Action, tea.Cmd) {
	actions := h.switchMode(mode, data, ctx)
	if h.isTextMode(mode) {
		return actions, textinput.Blink
	}
	return actions, nil
}

func (h *Handler) switchMode(mode types.Mode, data string, ctx types.Context) []types.Action {
	var actions []types.Action
	if cur := h.modes[h.currentMode]; cur != nil {
		actions = append(actions, cur.Exit(ctx)...)
	}

	oldMode := h.currentMode
	h.currentMode = mode

	if h.isTextMode(mode) {
		h.textInput.Reset()
		h.textInput.SetValue(data)
	} else if h.isTextMode(oldMode) {
		h.textInput.Blur()
	}

	if next := h.modes[mode]; next != nil {
		actions = append(actions, next.Enter(ctx)...)
	}
	return actions
}

func (h *Handler) CurrentMode() types.Mode {
	if h == nil {
		return types.ModeNormal
	}
	return h.currentMode
}

// ModeName returns the display name of the active mode
func (h *Handler) ModeName() string {
	if m := h.modes[h.currentMode]; m != nil {
		return m.Name()
	}
	return ""
}

// TextInput returns the shared input while a text mode is active
func (h *Handler) TextInput() *textinput.Model {
	if h.isTextMode(h.currentMode) {
		return h.textInput
	}
	return nil
}

func (h *Handler) isTextMode(mode types.Mode) bool {
	switch mode {
	case types.ModeFilter, types.ModePrompt:
		return true
	default:
		return false
	}
}

// Reset returns to normal mode without running hooks
func (h *Handler) Reset() {
	h.currentMode = types.ModeNormal
	h.textInput.Reset()
	h.textInput.Blur()
}

// Update handles non-keyboard messages for text input
func (h *Handler) Update(msg tea.Msg) tea.Cmd {
	if h.isTextMode(h.currentMode) {
		var cmd tea.Cmd
		*h.textInput, cmd = h.textInput.Update(msg)
		return cmd
	}
	return nil
}
