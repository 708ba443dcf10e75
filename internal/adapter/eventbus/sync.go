// Package eventbus provides implementations of the EventBus interface.
package eventbus

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/tejashwikalptaru/govis/internal/domain"
	"github.com/tejashwikalptaru/govis/internal/ports"
)

// SyncEventBus delivers events synchronously on the publishing goroutine.
// Type-specific handlers run first in subscription order, then wildcard handlers.
//
// Thread-safety: Publish, Subscribe and Unsubscribe may be called concurrently,
// including from inside a handler.
type SyncEventBus struct {
	logger *slog.Logger

	// byType maps event types to their subscriptions
	byType map[domain.EventType][]subscription

	// wildcard receives every event
	wildcard []subscription

	// mu protects byType, wildcard, logger and closed
	mu sync.RWMutex

	nextID atomic.Uint64
	closed bool
}

type subscription struct {
	id      domain.SubscriptionID
	filter  ports.EventFilter
	handler domain.EventHandler
}

// NewSyncEventBus creates a new synchronous event bus.
func NewSyncEventBus() *SyncEventBus {
	return &SyncEventBus{
		byType: make(map[domain.EventType][]subscription),
	}
}

// SetLogger sets the logger used for handler panics and debug tracing.
func (bus *SyncEventBus) SetLogger(logger *slog.Logger) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	bus.logger = logger
}

// Publish delivers event to every matching subscriber. A closed bus drops events.
// A panicking handler is logged and does not stop delivery to the others.
func (bus *SyncEventBus) Publish(event domain.Event) {
	if event == nil {
		return
	}

	bus.mu.RLock()
	if bus.closed {
		bus.mu.RUnlock()
		return
	}
	targets := make([]subscription, 0, len(bus.byType[event.Type()])+len(bus.wildcard))
	targets = append(targets, bus.byType[event.Type()]...)
	targets = append(targets, bus.wildcard...)
	logger := bus.logger
	bus.mu.RUnlock()

	if logger != nil {
		logger.Debug("event published",
			slog.String("event_type", string(event.Type())),
			slog.Int("subscribers", len(targets)))
	}

	for _, sub := range targets {
		if sub.filter != nil && !sub.filter(event) {
			continue
		}
		bus.deliver(logger, sub, event)
	}
}

func (bus *SyncEventBus) deliver(logger *slog.Logger, sub subscription, event domain.Event) {
	defer func() {
		if r := recover(); r != nil && logger != nil {
			logger.Error("event handler panicked",
				slog.Any("panic", r),
				slog.String("subscription", string(sub.id)),
				slog.String("event_type", string(event.Type())))
		}
	}()
	sub.handler(event)
}

// Subscribe registers a handler for events of the specified type.
func (bus *SyncEventBus) Subscribe(eventType domain.EventType, handler domain.EventHandler) domain.SubscriptionID {
	return bus.SubscribeFiltered(eventType, nil, handler)
}

// SubscribeFiltered registers a handler that only receives events accepted by filter.
// A nil filter accepts everything.
func (bus *SyncEventBus) SubscribeFiltered(eventType domain.EventType, filter ports.EventFilter, handler domain.EventHandler) domain.SubscriptionID {
	sub := bus.newSubscription("sub", filter, handler)

	bus.mu.Lock()
	defer bus.mu.Unlock()
	bus.mustBeOpen()

	bus.byType[eventType] = append(bus.byType[eventType], sub)
	return sub.id
}

// SubscribeAll registers a handler that receives all events regardless of type.
func (bus *SyncEventBus) SubscribeAll(handler domain.EventHandler) domain.SubscriptionID {
	sub := bus.newSubscription("sub-all", nil, handler)

	bus.mu.Lock()
	defer bus.mu.Unlock()
	bus.mustBeOpen()

	bus.wildcard = append(bus.wildcard, sub)
	return sub.id
}

func (bus *SyncEventBus) newSubscription(prefix string, filter ports.EventFilter, handler domain.EventHandler) subscription {
	if handler == nil {
		panic("event handler cannot be nil")
	}
	return subscription{
		id:      domain.SubscriptionID(fmt.Sprintf("%s-%d", prefix, bus.nextID.Add(1))),
		filter:  filter,
		handler: handler,
	}
}

// mustBeOpen must be called with mu held.
func (bus *SyncEventBus) mustBeOpen() {
	if bus.closed {
		panic("cannot subscribe to closed event bus")
	}
}

// Unsubscribe removes a subscription. Remaining handlers keep their delivery order.
func (bus *SyncEventBus) Unsubscribe(id domain.SubscriptionID) {
	bus.mu.Lock()
	defer bus.mu.Unlock()

	match := func(s subscription) bool { return s.id == id }

	for eventType, subs := range bus.byType {
		if i := slices.IndexFunc(subs, match); i >= 0 {
			bus.byType[eventType] = slices.Delete(slices.Clone(subs), i, i+1)
			return
		}
	}
	if i := slices.IndexFunc(bus.wildcard, match); i >= 0 {
		bus.wildcard = slices.Delete(slices.Clone(bus.wildcard), i, i+1)
	}
}

// HasSubscribers returns true if any subscription would receive the given event type.
func (bus *SyncEventBus) HasSubscribers(eventType domain.EventType) bool {
	bus.mu.RLock()
	defer bus.mu.RUnlock()
	return len(bus.byType[eventType]) > 0 || len(bus.wildcard) > 0
}

// Close drops all subscriptions. Returns an error if already closed.
func (bus *SyncEventBus) Close() error {
	bus.mu.Lock()
	defer bus.mu.Unlock()

	if bus.closed {
		return fmt.Errorf("event bus already closed")
	}
	bus.closed = true
	bus.byType = make(map[domain.EventType][]subscription)
	bus.wildcard = nil
	return nil
}

// SubscriberCount returns the number of active subscriptions, wildcard included.
func (bus *SyncEventBus) SubscriberCount() int {
	bus.mu.RLock()
	defer bus.mu.RUnlock()

	count := len(bus.wildcard)
	for _, subs := range bus.byType {
		count += len(subs)
	}
	return count
}

var _ ports.FilteringEventBus = (*SyncEventBus)(nil)
