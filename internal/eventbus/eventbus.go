package eventbus

import (
	"runtime/debug"
	"sync"

	"github.com/sirupsen/logrus"

	"drr/internal/domain"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventSessionEnded       = domain.EventSessionEnded
	EventSessionExpired     = domain.EventSessionExpired
	EventIntegrationsPolled = domain.EventIntegrationsPolled
	EventError              = domain.EventError
)

// Re-export domain event types
type SessionEndedEvent = domain.SessionEndedEvent
type SessionExpiredEvent = domain.SessionExpiredEvent
type IntegrationsPolledEvent = domain.IntegrationsPolledEvent
type ErrorEvent = domain.ErrorEvent

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the interface for the event bus
type EventBus interface {
	Publish(event DomainEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
	Close()
}

type subscription struct {
	id      uint64
	handler EventHandler
}

type bus struct {
	mu        sync.RWMutex
	handlers  map[EventType][]subscription
	nextID    uint64
	eventChan chan DomainEvent
	wg        sync.WaitGroup
	quit      chan struct{}
	closeOnce sync.Once
	log       logrus.FieldLogger
}

// New creates a new event bus and starts its dispatcher
func New() EventBus {
	return NewWithLogger(logrus.StandardLogger())
}

// NewWithLogger creates an event bus that logs through the given logger
func NewWithLogger(log logrus.FieldLogger) EventBus {
	b := &bus{
		handlers:  make(map[EventType][]subscription),
		eventChan: make(chan DomainEvent, 256),
		quit:      make(chan struct{}),
		log:       log.WithField("component", "eventbus"),
	}

	b.wg.Add(1)
	go b.dispatch()

	return b
}

// Publish queues an event for delivery. It never blocks; when the queue is
// full the event is dropped and logged.
func (b *bus) Publish(event DomainEvent) {
	b.log.WithField("event", event.Type()).Debug("publishing event")

	select {
	case <-b.quit:
		return
	default:
	}

	select {
	case b.eventChan <- event:
	default:
		b.log.WithField("event", event.Type()).Warn("event queue full, dropping event")
	}
}

// Subscribe registers a handler and returns its unsubscribe function
func (b *bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: id, handler: handler})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		subs := b.handlers[eventType]
		for i, s := range subs {
			if s.id == id {
				b.handlers[eventType] = append(subs[:i:i], subs[i+1:]...)
				break
			}
		}
	}
}

// Close stops the dispatcher. Queued events are discarded.
func (b *bus) Close() {
	b.closeOnce.Do(func() {
		close(b.quit)
		b.wg.Wait()
	})
}

func (b *bus) dispatch() {
	defer b.wg.Done()

	for {
		select {
		case event := <-b.eventChan:
			b.mu.RLock()
			subs := make([]subscription, len(b.handlers[event.Type()]))
			copy(subs, b.handlers[event.Type()])
			b.mu.RUnlock()

			// Handlers run in order on the dispatcher goroutine so that
			// subscribers observe events in publish order.
			for _, s := range subs {
				b.deliver(s.handler, event)
			}

		case <-b.quit:
			return
		}
	}
}

func (b *bus) deliver(h EventHandler, event DomainEvent) {
	defer func() {
		if r := recover(); r != nil {
			b.log.WithField("event", event.Type()).Errorf("event handler panic: %v\n%s", r, debug.Stack())
		}
	}()
	h(event)
}
