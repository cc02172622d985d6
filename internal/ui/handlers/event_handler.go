package handlers

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"drr/internal/api"
	"drr/internal/eventbus"
	"drr/internal/poller"
	"drr/internal/ui/input/types"
	"drr/internal/ui/state"
)

// EventHandler handles domain events and updates state
type EventHandler struct {
	state       *state.AppState
	latest      *poller.Latest
	onSignedOut func()
	log         logrus.FieldLogger
}

// NewEventHandler creates a new event handler. onSignedOut runs whenever the
// session ends so the model can stop background work and show sign-in.
func NewEventHandler(appState *state.AppState, latest *poller.Latest, onSignedOut func()) *EventHandler {
	return &EventHandler{
		state:       appState,
		latest:      latest,
		onSignedOut: onSignedOut,
		log:         logrus.WithField("component", "events"),
	}
}

// HandleEvent processes domain events and returns any necessary commands
func (h *EventHandler) HandleEvent(event eventbus.DomainEvent) tea.Cmd {
	switch e := event.(type) {
	case eventbus.SessionExpiredEvent:
		if h.state.Screen.IsAuth() {
			return nil
		}
		h.log.WithField("path", e.Path).Info("session expired")
		h.signOut()
		h.state.Banners.Clear()
		h.state.Banners.Error(api.UserMessage(api.ErrSessionExpired))

	case eventbus.SessionEndedEvent:
		// Forced endings are followed by SessionExpiredEvent
		if !e.Forced && !h.state.Screen.IsAuth() {
			h.signOut()
		}

	case eventbus.IntegrationsPolledEvent:
		if !h.latest.Accept(string(e.Platform), e.Seq) {
			h.log.WithField("platform", e.Platform).WithField("seq", e.Seq).Debug("dropping stale poll")
			return nil
		}
		if e.Err != nil {
			if errors.Is(e.Err, api.ErrSessionExpired) {
				return nil
			}
			h.state.Banners.Error(api.UserMessage(e.Err))
			return nil
		}
		h.state.Integrations[e.Platform] = e.Integrations
		if h.state.Screen == types.ScreenIntegrations && h.state.CurrentPlatform() == e.Platform {
			h.state.ClampIndex()
		}

	case eventbus.ErrorEvent:
		h.state.Banners.Error(e.Message)
	}

	return nil
}

func (h *EventHandler) signOut() {
	h.state.ResetSession()
	h.state.Screen = types.ScreenSignIn
	if h.onSignedOut != nil {
		h.onSignedOut()
	}
}
