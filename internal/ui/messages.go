package ui

import (
	"time"

	"drr/internal/eventbus"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// tickMsg is sent on a timer to expire banners and animate the spinner
type tickMsg time.Time

// pagerMsg contains the result of a pager command
type pagerMsg struct {
	content string
	err     error
}

// pauseRenderingMsg signals to pause Bubble Tea rendering
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume Bubble Tea rendering
type resumeRenderingMsg struct{}
