package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventSessionEnded       EventType = "SessionEnded"
	EventSessionExpired     EventType = "SessionExpired"
	EventIntegrationsPolled EventType = "IntegrationsPolled"
	EventError              EventType = "Error"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// SessionEndedEvent is emitted when the local session is cleared
type SessionEndedEvent struct {
	Forced bool
}

func (e SessionEndedEvent) Type() EventType { return EventSessionEnded }

// SessionExpiredEvent is emitted when the backend answers 401
type SessionExpiredEvent struct {
	Path string
}

func (e SessionExpiredEvent) Type() EventType { return EventSessionExpired }

// IntegrationsPolledEvent carries one completed poll of a platform's integrations
type IntegrationsPolledEvent struct {
	Platform     Platform
	Seq          uint64
	Integrations []Integration
	Err          error
}

func (e IntegrationsPolledEvent) Type() EventType { return EventIntegrationsPolled }

// ErrorEvent is emitted when a background operation fails
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }
