package eventbus

import (
	"log/slog"
	"runtime/debug"
	"sync"

	"folioadmin/internal/domain"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventPageLoaded       = domain.EventPageLoaded
	EventSelectionChanged = domain.EventSelectionChanged
	EventInvalidTile      = domain.EventInvalidTile
	EventDeleteRequested  = domain.EventDeleteRequested
	EventDeleteDeclined   = domain.EventDeleteDeclined
	EventDeleteCompleted  = domain.EventDeleteCompleted
	EventDeleteFailed     = domain.EventDeleteFailed
	EventError            = domain.EventError
	EventConfigLoaded     = domain.EventConfigLoaded
)

// Re-export domain event types
type PageLoadedEvent = domain.PageLoadedEvent
type SelectionChangedEvent = domain.SelectionChangedEvent
type InvalidTileEvent = domain.InvalidTileEvent
type DeleteRequestedEvent = domain.DeleteRequestedEvent
type DeleteDeclinedEvent = domain.DeleteDeclinedEvent
type DeleteCompletedEvent = domain.DeleteCompletedEvent
type DeleteFailedEvent = domain.DeleteFailedEvent
type ErrorEvent = domain.ErrorEvent
type ConfigLoadedEvent = domain.ConfigLoadedEvent

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

// bus is the concrete implementation of EventBus
type bus struct {
	mu        sync.RWMutex
	handlers  map[EventType][]subscription
	nextID    uint64
	eventChan chan DomainEvent
	wg        sync.WaitGroup
	handlerWG sync.WaitGroup
	quit      chan struct{}
	closeOnce sync.Once
	logger    *slog.Logger
}

// New creates a new event bus. A nil logger falls back to slog.Default.
func New(logger *slog.Logger) EventBus {
	if logger == nil {
		logger = slog.Default()
	}
	b := &bus{
		handlers:  make(map[EventType][]subscription),
		eventChan: make(chan DomainEvent, 256),
		quit:      make(chan struct{}),
		logger:    logger,
	}

	b.wg.Add(1)
	go b.dispatch()

	return b
}

// Publish publishes an event to all subscribers
func (b *bus) Publish(event DomainEvent) {
	b.logger.Debug("eventbus: publishing", "event", event.Type())

	select {
	case <-b.quit:
		return
	default:
	}

	select {
	case b.eventChan <- event:
	default:
		b.logger.Warn("eventbus: channel full, dropping event", "event", event.Type())
	}
}

// Subscribe subscribes to events of a specific type.
// Returns an unsubscribe function.
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

// Close stops the dispatcher and waits for running handlers.
// Events still queued are dropped.
func (b *bus) Close() {
	b.closeOnce.Do(func() {
		close(b.quit)
		b.wg.Wait()
		b.handlerWG.Wait()
	})
}

// dispatch handles event distribution to subscribers
func (b *bus) dispatch() {
	defer b.wg.Done()

	for {
		select {
		case event := <-b.eventChan:
			b.mu.RLock()
			subs := b.handlers[event.Type()]
			// copy so handlers run without the lock held
			handlers := make([]EventHandler, len(subs))
			for i, s := range subs {
				handlers[i] = s.handler
			}
			b.mu.RUnlock()

			for _, handler := range handlers {
				b.handlerWG.Add(1)
				go func(h EventHandler, eventType EventType) {
					defer b.handlerWG.Done()
					defer func() {
						if r := recover(); r != nil {
							b.logger.Error("eventbus: handler panic",
								"event", eventType,
								"panic", r,
								"stack", string(debug.Stack()))
						}
					}()
					h(event)
				}(handler, event.Type())
			}

		case <-b.quit:
			for {
				select {
				case <-b.eventChan:
				default:
					return
				}
			}
		}
	}
}
