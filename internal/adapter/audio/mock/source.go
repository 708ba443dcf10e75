// Package mock provides scriptable implementations of the audio source ports.
// They are used for testing services without audio hardware, and for the demo tone.
package mock

import (
	"log/slog"
	"math"
	"path/filepath"
	"sync"
	"time"

	"github.com/tejashwikalptaru/govis/internal/domain"
	"github.com/tejashwikalptaru/govis/internal/ports"
)

// toneChunk is the interval between generated tone buffers.
const toneChunk = 10 * time.Millisecond

// Source is a mock implementation of ports.AudioSource.
// Samples reach the connected sink only through Emit or a running tone.
//
// Thread-safety: This implementation is thread-safe.
type Source struct {
	logger *slog.Logger
	info   domain.SourceInfo

	mu           sync.Mutex
	sink         ports.SignalSink
	connected    bool
	closed       bool
	connectCount int

	// Behavior configuration (for testing error scenarios)
	failConnect bool
	failClose   bool

	done     chan struct{}
	doneOnce sync.Once
	toneStop chan struct{}
	wg       sync.WaitGroup
}

// NewSource creates a mock source of the given kind.
func NewSource(kind domain.SourceKind, name string) *Source {
	return &Source{
		info: domain.SourceInfo{
			Kind:       kind,
			Name:       name,
			SampleRate: 44100,
			Channels:   1,
		},
		done: make(chan struct{}),
	}
}

// NewLiveSource creates a mock microphone.
func NewLiveSource() *Source {
	return NewSource(domain.SourceLiveStream, "mock input")
}

// NewMediaSource creates a mock sound file.
func NewMediaSource(name string) *Source {
	return NewSource(domain.SourcePlayableMedia, name)
}

// SetLogger sets the logger for this source.
func (m *Source) SetLogger(logger *slog.Logger) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logger = logger
}

// SetInfo replaces the descriptive info; the kind is kept.
func (m *Source) SetInfo(info domain.SourceInfo) {
	m.mu.Lock()
	defer m.mu.Unlock()
	info.Kind = m.info.Kind
	m.info = info
}

// SetFailConnect configures the mock to fail Connect (for testing).
func (m *Source) SetFailConnect(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failConnect = fail
}

// SetFailClose configures the mock to return an error from Close (for testing).
func (m *Source) SetFailClose(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failClose = fail
}

// Kind implements ports.AudioSource.
func (m *Source) Kind() domain.SourceKind {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.info.Kind
}

// Info implements ports.AudioSource.
func (m *Source) Info() domain.SourceInfo {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.info
}

// Connect implements ports.AudioSource.
func (m *Source) Connect(sink ports.SignalSink) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.connectCount++
	if m.closed {
		return domain.NewAudioSourceError("connect", m.info.Name, "source closed", domain.ErrSourceClosed)
	}
	if m.failConnect {
		return domain.NewAudioSourceError("connect", m.info.Name, "mock connect failed", domain.ErrSourceUnavailable)
	}
	if m.connected {
		return domain.NewAudioSourceError("connect", m.info.Name, "already connected", domain.ErrAlreadyInitialized)
	}

	m.sink = sink
	m.connected = true
	if m.logger != nil {
		m.logger.Debug("mock source connected", slog.String("kind", m.info.Kind.String()))
	}
	return nil
}

// Emit writes samples to the connected sink. It is a no-op before Connect or after Close.
func (m *Source) Emit(samples []float32) {
	m.mu.Lock()
	sink := m.sink
	m.mu.Unlock()

	if sink != nil {
		sink.Write(samples)
	}
}

// StartTone generates a sine wave in real time until the source is closed.
// Calling it again while a tone runs is a no-op.
func (m *Source) StartTone(freq, amplitude float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed || m.toneStop != nil {
		return
	}
	m.toneStop = make(chan struct{})
	rate := m.info.SampleRate

	m.wg.Add(1)
	go m.runTone(m.toneStop, freq, amplitude, rate)
}

func (m *Source) runTone(stop <-chan struct{}, freq, amplitude float64, rate int) {
	defer m.wg.Done()

	ticker := time.NewTicker(toneChunk)
	defer ticker.Stop()

	perChunk := int(float64(rate) * toneChunk.Seconds())
	buf := make([]float32, perChunk)
	var n int
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			for i := range buf {
				buf[i] = float32(amplitude * math.Sin(2*math.Pi*freq*float64(n)/float64(rate)))
				n++
			}
			m.Emit(buf)
		}
	}
}

// End simulates media reaching its end: Done closes but the source stays open.
func (m *Source) End() {
	m.doneOnce.Do(func() { close(m.done) })
}

// Done implements ports.AudioSource.
func (m *Source) Done() <-chan struct{} {
	return m.done
}

// Close implements ports.AudioSource.
func (m *Source) Close() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	m.sink = nil
	if m.toneStop != nil {
		close(m.toneStop)
	}
	failClose := m.failClose
	m.mu.Unlock()

	m.wg.Wait()
	m.End()

	if failClose {
		return domain.NewAudioSourceError("close", m.info.Name, "mock close failed", nil)
	}
	return nil
}

// IsClosed returns true once Close has been called (for testing).
func (m *Source) IsClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// IsConnected returns true if Connect succeeded (for testing).
func (m *Source) IsConnected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.connected
}

// ConnectCount returns how many times Connect was called (for testing).
func (m *Source) ConnectCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.connectCount
}

// Factory is a mock implementation of ports.SourceFactory.
// Every opened source is recorded for inspection.
type Factory struct {
	mu      sync.Mutex
	opened  []*Source
	fileErr error
	micErr  error
}

// NewFactory creates a new mock factory.
func NewFactory() *Factory {
	return &Factory{}
}

// SetFileError makes OpenFile fail with err (nil restores success).
func (f *Factory) SetFileError(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fileErr = err
}

// SetMicrophoneError makes OpenMicrophone fail with err (nil restores success).
func (f *Factory) SetMicrophoneError(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.micErr = err
}

// OpenFile implements ports.SourceFactory.
func (f *Factory) OpenFile(path string) (ports.AudioSource, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.fileErr != nil {
		return nil, f.fileErr
	}
	src := NewMediaSource(filepath.Base(path))
	f.opened = append(f.opened, src)
	return src, nil
}

// OpenMicrophone implements ports.SourceFactory.
func (f *Factory) OpenMicrophone() (ports.AudioSource, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.micErr != nil {
		return nil, f.micErr
	}
	src := NewLiveSource()
	f.opened = append(f.opened, src)
	return src, nil
}

// Opened returns every source created so far, oldest first.
func (f *Factory) Opened() []*Source {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*Source(nil), f.opened...)
}

// Last returns the most recently opened source, or nil.
func (f *Factory) Last() *Source {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.opened) == 0 {
		return nil
	}
	return f.opened[len(f.opened)-1]
}

var (
	_ ports.AudioSource   = (*Source)(nil)
	_ ports.SourceFactory = (*Factory)(nil)
)
