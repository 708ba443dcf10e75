package service

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/tejashwikalptaru/govis/internal/domain"
	"github.com/tejashwikalptaru/govis/internal/ports"
)

// session is one source bound to the driver.
type session struct {
	id     string
	info   domain.SourceInfo
	source ports.AudioSource
	stop   chan struct{}
}

// VisualizationService opens sources, hands them to the AnimationDriver and
// reports the lifecycle on the event bus. Switching sources stops the running
// session first, so at most one source is ever connected.
//
// Thread-safety: This implementation is thread-safe. Events are published
// without holding the service lock, so handlers may call back into the service.
type VisualizationService struct {
	// Dependencies (injected)
	logger  *slog.Logger
	bus     ports.EventBus
	sources ports.SourceFactory
	driver  *AnimationDriver

	mu      sync.Mutex
	options domain.DisplayOptions
	current *session
	closed  bool
	wg      sync.WaitGroup
}

// NewVisualizationService creates a service with the given initial options.
func NewVisualizationService(
	logger *slog.Logger,
	bus ports.EventBus,
	sources ports.SourceFactory,
	driver *AnimationDriver,
	options domain.DisplayOptions,
) (*VisualizationService, error) {
	if err := options.Validate(); err != nil {
		return nil, err
	}
	if err := driver.SetOptions(options); err != nil {
		return nil, err
	}

	logger.Debug("visualization service initialized", slog.String("style", options.Style.String()))
	return &VisualizationService{
		logger:  logger,
		bus:     bus,
		sources: sources,
		driver:  driver,
		options: options,
	}, nil
}

// UseFile opens a sound file and visualizes it.
func (s *VisualizationService) UseFile(path string) error {
	src, err := s.sources.OpenFile(path)
	if err != nil {
		s.logger.Warn("failed to open file", slog.String("path", path), slog.Any("error", err))
		s.bus.Publish(domain.NewSourceFailedEvent(domain.SourcePlayableMedia, path, err))
		return err
	}
	return s.UseSource(src)
}

// UseMicrophone opens the default capture device and visualizes it.
func (s *VisualizationService) UseMicrophone() error {
	src, err := s.sources.OpenMicrophone()
	if err != nil {
		s.logger.Warn("failed to open microphone", slog.Any("error", err))
		s.bus.Publish(domain.NewSourceFailedEvent(domain.SourceLiveStream, "", err))
		return err
	}
	return s.UseSource(src)
}

// UseSource replaces the running session with one for src. The service owns src
// from here on and closes it when the session ends or fails to start.
func (s *VisualizationService) UseSource(src ports.AudioSource) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		_ = src.Close()
		return domain.NewServiceError("visualization", "use_source", "service shut down", domain.ErrNotInitialized)
	}

	var events []domain.Event
	if stopped := s.stopLocked(); stopped != nil {
		events = append(events, stopped)
	}

	info := src.Info()
	if err := s.driver.Start(src, s.options); err != nil {
		s.mu.Unlock()
		if closeErr := src.Close(); closeErr != nil {
			s.logger.Warn("failed to close rejected source", slog.Any("error", closeErr))
		}
		s.logger.Warn("failed to start visualization",
			slog.String("source", info.Kind.String()),
			slog.Any("error", err))
		s.publish(append(events, domain.NewSourceFailedEvent(info.Kind, info.Name, err)))
		return err
	}

	sess := &session{
		id:     uuid.NewString(),
		info:   info,
		source: src,
		stop:   make(chan struct{}),
	}
	s.current = sess
	s.wg.Add(1)
	go s.watch(sess)
	s.mu.Unlock()

	s.logger.Info("visualization session started",
		slog.String("session", sess.id),
		slog.String("source", info.Kind.String()),
		slog.String("name", info.Name))
	s.publish(append(events, domain.NewSourceStartedEvent(sess.id, info)))
	return nil
}

// watch reports the natural end of a session's media. The loop keeps running
// against silence until the session is stopped or replaced.
func (s *VisualizationService) watch(sess *session) {
	defer s.wg.Done()

	select {
	case <-sess.stop:
		return
	case <-sess.source.Done():
	}

	s.mu.Lock()
	active := s.current == sess
	s.mu.Unlock()
	if !active {
		return
	}

	s.logger.Info("source ended", slog.String("session", sess.id))
	s.bus.Publish(domain.NewSourceEndedEvent(sess.id, sess.info))
}

// SetOptions replaces the display options. They take effect on the next frame.
func (s *VisualizationService) SetOptions(options domain.DisplayOptions) error {
	if err := options.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	if err := s.driver.SetOptions(options); err != nil {
		s.mu.Unlock()
		return err
	}
	s.options = options
	s.mu.Unlock()

	s.bus.Publish(domain.NewOptionsChangedEvent(options))
	return nil
}

// Options returns the current display options.
func (s *VisualizationService) Options() domain.DisplayOptions {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.options
}

// Current returns the active source info, or a zero value when idle.
func (s *VisualizationService) Current() domain.SourceInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return domain.SourceInfo{}
	}
	return s.current.info
}

// SessionID returns the active session ID, or "" when idle.
func (s *VisualizationService) SessionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return ""
	}
	return s.current.id
}

// IsRunning reports whether a session is active.
func (s *VisualizationService) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current != nil
}

// Stop halts the frame loop and releases the source.
// Returns domain.ErrNotRunning when no session is active.
func (s *VisualizationService) Stop() error {
	s.mu.Lock()
	stopped := s.stopLocked()
	s.mu.Unlock()

	if stopped == nil {
		return domain.ErrNotRunning
	}
	s.bus.Publish(stopped)
	return nil
}

// stopLocked ends the current session and returns the event to publish, or nil
// if nothing was running. Must be called with mu held.
func (s *VisualizationService) stopLocked() domain.Event {
	sess := s.current
	if sess == nil {
		return nil
	}
	s.current = nil
	close(sess.stop)

	if err := s.driver.Stop(); err != nil && !errors.Is(err, domain.ErrNotRunning) {
		s.logger.Warn("error while stopping visualization",
			slog.String("session", sess.id),
			slog.Any("error", err))
	}
	frames := s.driver.Frames()

	s.logger.Info("visualization session stopped",
		slog.String("session", sess.id),
		slog.Uint64("frames", frames))
	return domain.NewVisualizationStoppedEvent(sess.id, frames)
}

// Shutdown stops the running session and waits for background work.
func (s *VisualizationService) Shutdown() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	stopped := s.stopLocked()
	s.mu.Unlock()

	if stopped != nil {
		s.bus.Publish(stopped)
	}
	s.wg.Wait()
	s.logger.Debug("visualization service shut down")
}

func (s *VisualizationService) publish(events []domain.Event) {
	for _, e := range events {
		s.bus.Publish(e)
	}
}
