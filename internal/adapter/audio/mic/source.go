// Package mic provides the live-stream audio source backed by the default capture device.
// Captured audio only feeds the analysis node; it is never routed to the speakers.
package mic

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/gordonklaus/portaudio"
	"github.com/pkg/errors"

	"github.com/tejashwikalptaru/govis/internal/domain"
	"github.com/tejashwikalptaru/govis/internal/ports"
)

// Capture defaults.
const (
	DefaultSampleRate      = 44100
	DefaultFramesPerBuffer = 512
)

// captureStream is the subset of a device stream the source drives.
type captureStream interface {
	Start() error
	Stop() error
	Close() error
}

// opener opens a mono float32 input stream delivering buffers to cb.
type opener func(sampleRate float64, frames int, cb func(in []float32)) (captureStream, error)

// portaudioOpener opens the default input device. Every successful call holds one
// PortAudio initialization reference until the returned stream is closed.
func portaudioOpener(sampleRate float64, frames int, cb func(in []float32)) (captureStream, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, errors.Wrap(err, "initializing portaudio")
	}
	stream, err := portaudio.OpenDefaultStream(1, 0, sampleRate, frames, cb)
	if err != nil {
		_ = portaudio.Terminate()
		return nil, errors.Wrap(err, "opening default input")
	}
	return &paStream{Stream: stream}, nil
}

type paStream struct {
	*portaudio.Stream
}

func (s *paStream) Close() error {
	err := s.Stream.Close()
	if terr := portaudio.Terminate(); err == nil {
		err = terr
	}
	return err
}

// Source is a live microphone stream.
//
// Thread-safety: This implementation is thread-safe. The device callback runs on
// a PortAudio thread and only reads the current sink.
type Source struct {
	logger *slog.Logger
	info   domain.SourceInfo
	stream captureStream
	sink   atomic.Pointer[sinkRef]

	mu        sync.Mutex
	connected bool
	closed    bool

	done     chan struct{}
	doneOnce sync.Once
}

type sinkRef struct {
	ports.SignalSink
}

// Open acquires the default capture device. Failures (no device, permission
// denied, device busy) are returned as an AudioSourceError wrapping ErrSourceUnavailable.
func Open() (*Source, error) {
	return open(portaudioOpener, DefaultSampleRate, DefaultFramesPerBuffer)
}

func open(openStream opener, sampleRate, frames int) (*Source, error) {
	s := &Source{
		logger: slog.Default(),
		info: domain.SourceInfo{
			Kind:       domain.SourceLiveStream,
			Name:       "default input",
			SampleRate: sampleRate,
			Channels:   1,
		},
		done: make(chan struct{}),
	}

	stream, err := openStream(float64(sampleRate), frames, s.onAudio)
	if err != nil {
		return nil, domain.NewAudioSourceError("open", s.info.Name, err.Error(),
			errors.Wrap(domain.ErrSourceUnavailable, err.Error()))
	}
	s.stream = stream
	return s, nil
}

// onAudio forwards a captured buffer. Sinks copy what they keep, so in is passed as is.
func (s *Source) onAudio(in []float32) {
	if ref := s.sink.Load(); ref != nil {
		ref.Write(in)
	}
}

// SetLogger sets the logger for this source.
func (s *Source) SetLogger(logger *slog.Logger) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logger = logger
}

// Kind implements ports.AudioSource.
func (s *Source) Kind() domain.SourceKind {
	return domain.SourceLiveStream
}

// Info implements ports.AudioSource.
func (s *Source) Info() domain.SourceInfo {
	return s.info
}

// Connect starts capture into sink.
func (s *Source) Connect(sink ports.SignalSink) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return domain.NewAudioSourceError("connect", s.info.Name, "source closed", domain.ErrSourceClosed)
	}
	if s.connected {
		return domain.NewAudioSourceError("connect", s.info.Name, "already connected", domain.ErrAlreadyInitialized)
	}

	s.sink.Store(&sinkRef{SignalSink: sink})
	if err := s.stream.Start(); err != nil {
		s.sink.Store(nil)
		return domain.NewAudioSourceError("connect", s.info.Name, err.Error(),
			errors.Wrap(domain.ErrSourceUnavailable, err.Error()))
	}
	s.connected = true

	s.logger.Debug("capture started", slog.Int("sample_rate", s.info.SampleRate))
	return nil
}

// Done is closed when the source is closed; a live stream never ends on its own.
func (s *Source) Done() <-chan struct{} {
	return s.done
}

// Close stops capture and releases the device. Safe to call more than once.
func (s *Source) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	s.sink.Store(nil)
	defer s.doneOnce.Do(func() { close(s.done) })

	var err error
	if s.connected {
		err = s.stream.Stop()
	}
	if cerr := s.stream.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return domain.NewAudioSourceError("close", s.info.Name, err.Error(), errors.Wrap(err, "releasing device"))
	}
	s.logger.Debug("capture stopped")
	return nil
}

var _ ports.AudioSource = (*Source)(nil)
