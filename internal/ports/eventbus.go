// Package ports define the EventBus interface for event-driven communication.
// The event bus lets the visualization service report lifecycle changes without knowing the UI.
package ports

import (
	"github.com/tejashwikalptaru/govis/internal/domain"
)

// EventBus is the interface for publishing and subscribing to events.
//
// Thread-safety: Implementations must be thread-safe. Sources end on decoder goroutines
// while the UI subscribes from the main thread.
//
// Example usage:
//
//	subID := bus.Subscribe(domain.EventSourceStarted, func(event domain.Event) {
//	    e := event.(domain.SourceStartedEvent)
//	    view.SetNowPlaying(e.Info.NowPlaying())
//	})
//	defer bus.Unsubscribe(subID)
type EventBus interface {
	// Publish delivers an event to all subscribers of its type, then to wildcard subscribers.
	Publish(event domain.Event)

	// Subscribe registers a handler for events of the specified type.
	// Each subscription gets a unique SubscriptionID.
	Subscribe(eventType domain.EventType, handler domain.EventHandler) domain.SubscriptionID

	// Unsubscribe removes a previously registered handler. Unknown IDs are a no-op.
	Unsubscribe(id domain.SubscriptionID)

	// SubscribeAll registers a handler that receives all events regardless of type.
	SubscribeAll(handler domain.EventHandler) domain.SubscriptionID

	// HasSubscribers returns true if any subscription would receive the given event type.
	HasSubscribers(eventType domain.EventType) bool

	// Close shuts down the event bus and drops all subscriptions.
	Close() error
}

// EventFilter determines if an event should be delivered to a subscriber.
type EventFilter func(event domain.Event) bool

// FilteringEventBus extends EventBus with filtered subscriptions.
type FilteringEventBus interface {
	EventBus

	// SubscribeFiltered registers a handler that only sees events passing filter.
	//
	// Example: only handle the end of the current session
	//	bus.SubscribeFiltered(domain.EventSourceEnded, func(e domain.Event) bool {
	//	    return e.(domain.SourceEndedEvent).SessionID == current
	//	}, handleEnded)
	SubscribeFiltered(eventType domain.EventType, filter EventFilter, handler domain.EventHandler) domain.SubscriptionID
}
