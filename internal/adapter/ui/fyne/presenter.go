// Package fyne provides Fyne UI adapter implementations.
// This package implements the UI layer using the Fyne toolkit.
package fyne

import (
	"fmt"
	"log/slog"
	"sync"

	"fyne.io/fyne/v2"

	"github.com/tejashwikalptaru/govis/internal/domain"
	"github.com/tejashwikalptaru/govis/internal/ports"
	"github.com/tejashwikalptaru/govis/internal/service"
)

// Presenter implements the Presenter pattern (MVP architecture).
// It maps visualization events to view updates and control changes to
// service calls.
//
// Event handlers may run on any goroutine; view updates are marshalled onto
// the main goroutine with fyne.Do.
type Presenter struct {
	// Dependencies
	logger  *slog.Logger
	service *service.VisualizationService
	bus     ports.EventBus
	view    ports.View

	mu           sync.Mutex
	subs         []domain.SubscriptionID
	shutdownOnce sync.Once
}

// NewPresenter creates a presenter and syncs the view with the service state.
func NewPresenter(
	logger *slog.Logger,
	svc *service.VisualizationService,
	bus ports.EventBus,
	view ports.View,
) *Presenter {
	p := &Presenter{
		logger:  logger,
		service: svc,
		bus:     bus,
		view:    view,
	}
	p.subscribeToEvents()
	p.syncInitialState()
	return p
}

func (p *Presenter) subscribeToEvents() {
	subscriptions := map[domain.EventType]domain.EventHandler{
		domain.EventSourceStarted:        p.onSourceStarted,
		domain.EventSourceFailed:         p.onSourceFailed,
		domain.EventSourceEnded:          p.onSourceEnded,
		domain.EventVisualizationStopped: p.onVisualizationStopped,
		domain.EventOptionsChanged:       p.onOptionsChanged,
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	for eventType, handler := range subscriptions {
		p.subs = append(p.subs, p.bus.Subscribe(eventType, handler))
	}
}

func (p *Presenter) syncInitialState() {
	opts := p.service.Options()
	info := p.service.Current()
	running := p.service.IsRunning()

	fyne.Do(func() {
		p.view.SetOptions(opts)
		p.view.SetNowPlaying(info.NowPlaying())
		p.view.SetRunning(running)
	})
}

// Event handlers

func (p *Presenter) onSourceStarted(event domain.Event) {
	e, ok := event.(domain.SourceStartedEvent)
	if !ok {
		return
	}
	text := e.Info.NowPlaying()
	fyne.Do(func() {
		p.view.SetNowPlaying(text)
		p.view.SetRunning(true)
	})
}

func (p *Presenter) onSourceFailed(event domain.Event) {
	e, ok := event.(domain.SourceFailedEvent)
	if !ok {
		return
	}

	title := "Cannot open file"
	if e.Kind == domain.SourceLiveStream {
		title = "Cannot use direct input"
	}
	message := fmt.Sprintf("%v", e.Error)
	p.logger.Debug("source failed", slog.String("kind", e.Kind.String()), slog.Any("error", e.Error))

	fyne.Do(func() {
		p.view.ShowError(title, message)
	})
}

func (p *Presenter) onSourceEnded(event domain.Event) {
	e, ok := event.(domain.SourceEndedEvent)
	if !ok {
		return
	}
	text := e.Info.NowPlaying() + " (ended)"
	fyne.Do(func() {
		p.view.SetNowPlaying(text)
	})
}

func (p *Presenter) onVisualizationStopped(event domain.Event) {
	if p.service.IsRunning() {
		// replaced by a new session; its start event updates the view
		return
	}
	idle := domain.SourceInfo{}.NowPlaying()
	fyne.Do(func() {
		p.view.SetNowPlaying(idle)
		p.view.SetRunning(false)
	})
}

func (p *Presenter) onOptionsChanged(event domain.Event) {
	e, ok := event.(domain.OptionsChangedEvent)
	if !ok {
		return
	}
	fyne.Do(func() {
		p.view.SetOptions(e.Options)
	})
}

// User commands

// OnStyleSelected handles the style select. Accepts labels ("Filled Wave") and names ("filled-wave").
func (p *Presenter) OnStyleSelected(label string) error {
	style, err := domain.ParseVisualStyle(label)
	if err != nil {
		return err
	}
	opts := p.service.Options()
	opts.Style = style
	return p.service.SetOptions(opts)
}

// OnColorChanged handles a new base color from the entry or the picker.
func (p *Presenter) OnColorChanged(hex string) error {
	spec, err := domain.FromHex(hex)
	if err != nil {
		return err
	}
	opts := p.service.Options()
	opts.BaseColorHex = spec.Hex()
	return p.service.SetOptions(opts)
}

// OnRainbowToggled handles the rainbow check.
func (p *Presenter) OnRainbowToggled(enabled bool) {
	opts := p.service.Options()
	opts.Rainbow = enabled
	if err := p.service.SetOptions(opts); err != nil {
		p.logger.Warn("failed to toggle rainbow", slog.Any("error", err))
	}
}

// OnFileChosen visualizes a sound file. Failures are reported through the
// source-failed event.
func (p *Presenter) OnFileChosen(path string) error {
	return p.service.UseFile(path)
}

// OnMicrophoneClicked switches to direct input.
func (p *Presenter) OnMicrophoneClicked() error {
	return p.service.UseMicrophone()
}

// OnStopClicked stops the visualization.
func (p *Presenter) OnStopClicked() {
	if err := p.service.Stop(); err != nil {
		p.logger.Debug("stop ignored", slog.Any("error", err))
	}
}

// Shutdown unsubscribes from the event bus.
// It's safe to call multiple times (idempotent).
func (p *Presenter) Shutdown() {
	p.shutdownOnce.Do(func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		for _, id := range p.subs {
			p.bus.Unsubscribe(id)
		}
		p.subs = nil
	})
}
