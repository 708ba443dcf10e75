// Package domain defines events for the event-driven architecture.
// Events let the UI follow the visualization lifecycle without callbacks.
package domain

import (
	"time"
)

// Event is the base interface for all events in the system.
// All events must implement this interface to be published via the event bus.
type Event interface {
	// Type returns the event type identifier
	Type() EventType

	// Timestamp returns when the event occurred
	Timestamp() time.Time
}

// EventType is a string identifier for different event types.
type EventType string

// Event type constants define all possible events in the system.
const (
	// Source events
	EventSourceStarted EventType = "source.started"
	EventSourceFailed  EventType = "source.failed"
	EventSourceEnded   EventType = "source.ended"

	// Visualization events
	EventVisualizationStopped EventType = "visualization.stopped"
	EventOptionsChanged       EventType = "options.changed"
)

// EventHandler is a function that handles events.
type EventHandler func(event Event)

// SubscriptionID uniquely identifies an event subscription.
type SubscriptionID string

// baseEvent provides common event functionality.
// All concrete events should embed this struct.
type baseEvent struct {
	timestamp time.Time
}

// Timestamp returns when the event occurred.
func (e baseEvent) Timestamp() time.Time {
	return e.timestamp
}

// newBaseEvent creates a new base event with the current timestamp.
func newBaseEvent() baseEvent {
	return baseEvent{timestamp: time.Now()}
}

// SourceStartedEvent is published when a source is connected and the first frame is scheduled.
type SourceStartedEvent struct {
	baseEvent
	SessionID string
	Info      SourceInfo
}

// Type returns the event type.
func (e SourceStartedEvent) Type() EventType {
	return EventSourceStarted
}

// NewSourceStartedEvent creates a new SourceStartedEvent.
func NewSourceStartedEvent(sessionID string, info SourceInfo) SourceStartedEvent {
	return SourceStartedEvent{
		baseEvent: newBaseEvent(),
		SessionID: sessionID,
		Info:      info,
	}
}

// SourceFailedEvent is published when a source cannot be opened or connected.
// The UI treats it as a recoverable state.
type SourceFailedEvent struct {
	baseEvent
	Kind  SourceKind
	Name  string
	Error error
}

// Type returns the event type.
func (e SourceFailedEvent) Type() EventType {
	return EventSourceFailed
}

// NewSourceFailedEvent creates a new SourceFailedEvent.
func NewSourceFailedEvent(kind SourceKind, name string, err error) SourceFailedEvent {
	return SourceFailedEvent{
		baseEvent: newBaseEvent(),
		Kind:      kind,
		Name:      name,
		Error:     err,
	}
}

// SourceEndedEvent is published when playable media reaches its end.
// The visualization keeps running against a silent signal until it is stopped.
type SourceEndedEvent struct {
	baseEvent
	SessionID string
	Info      SourceInfo
}

// Type returns the event type.
func (e SourceEndedEvent) Type() EventType {
	return EventSourceEnded
}

// NewSourceEndedEvent creates a new SourceEndedEvent.
func NewSourceEndedEvent(sessionID string, info SourceInfo) SourceEndedEvent {
	return SourceEndedEvent{
		baseEvent: newBaseEvent(),
		SessionID: sessionID,
		Info:      info,
	}
}

// VisualizationStoppedEvent is published when the frame loop halts.
type VisualizationStoppedEvent struct {
	baseEvent
	SessionID string
	Frames    uint64
}

// Type returns the event type.
func (e VisualizationStoppedEvent) Type() EventType {
	return EventVisualizationStopped
}

// NewVisualizationStoppedEvent creates a new VisualizationStoppedEvent.
func NewVisualizationStoppedEvent(sessionID string, frames uint64) VisualizationStoppedEvent {
	return VisualizationStoppedEvent{
		baseEvent: newBaseEvent(),
		SessionID: sessionID,
		Frames:    frames,
	}
}

// OptionsChangedEvent is published when display options are replaced.
type OptionsChangedEvent struct {
	baseEvent
	Options DisplayOptions
}

// Type returns the event type.
func (e OptionsChangedEvent) Type() EventType {
	return EventOptionsChanged
}

// NewOptionsChangedEvent creates a new OptionsChangedEvent.
func NewOptionsChangedEvent(options DisplayOptions) OptionsChangedEvent {
	return OptionsChangedEvent{
		baseEvent: newBaseEvent(),
		Options:   options,
	}
}
