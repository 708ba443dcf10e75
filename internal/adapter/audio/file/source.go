// Package file provides the playable-media audio source.
// A sound file is decoded once; the same signal is played through the destination
// and tapped, downmixed to mono, into the analysis node.
package file

import (
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/tejashwikalptaru/govis/internal/domain"
	"github.com/tejashwikalptaru/govis/internal/ports"
)

// drainPoll is how often the end of playback is checked once decoding finished.
const drainPoll = 20 * time.Millisecond

// Source is a playable-media source backed by a decoded file.
//
// Thread-safety: This implementation is thread-safe.
type Source struct {
	logger *slog.Logger
	path   string
	file   *os.File
	dec    decoder
	info   domain.SourceInfo
	dest   Destination

	mu        sync.Mutex
	stream    *pcmStream
	playback  Playback
	connected bool
	closed    bool

	stop     chan struct{}
	done     chan struct{}
	doneOnce sync.Once
	wg       sync.WaitGroup
}

// Open prepares a file for playback. Nothing is played until Connect.
func Open(path string, dest Destination) (*Source, error) {
	if path == "" {
		return nil, domain.NewAudioSourceError("open", path, "empty path", domain.ErrFileNotFound)
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, domain.NewAudioSourceError("open", path, "file not found", domain.ErrFileNotFound)
		}
		return nil, domain.NewAudioSourceError("open", path, err.Error(), errors.Wrap(err, "stat"))
	}
	if !IsSupported(path) {
		return nil, domain.NewAudioSourceError("open", path, "unsupported format", domain.ErrUnsupportedFormat)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, domain.NewAudioSourceError("open", path, err.Error(), errors.Wrap(err, "opening file"))
	}

	info, err := readInfo(path, f)
	if err != nil {
		_ = f.Close()
		return nil, domain.NewAudioSourceError("open", path, "cannot rewind file", errors.Wrap(err, "reading tags"))
	}

	dec, err := newDecoder(path, f)
	if err != nil {
		_ = f.Close()
		return nil, domain.NewAudioSourceError("open", path, err.Error(), err)
	}
	info.SampleRate = dec.SampleRate()
	info.Channels = dec.Channels()

	if dest == nil {
		dest = SpeakerDestination{}
	}

	return &Source{
		logger: slog.Default(),
		path:   path,
		file:   f,
		dec:    dec,
		info:   info,
		dest:   dest,
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}, nil
}

// SetLogger sets the logger for this source.
func (s *Source) SetLogger(logger *slog.Logger) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logger = logger
}

// Kind implements ports.AudioSource.
func (s *Source) Kind() domain.SourceKind {
	return domain.SourcePlayableMedia
}

// Info implements ports.AudioSource.
func (s *Source) Info() domain.SourceInfo {
	return s.info
}

// Connect starts decoding into sink and playback through the destination.
func (s *Source) Connect(sink ports.SignalSink) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return domain.NewAudioSourceError("connect", s.path, "source closed", domain.ErrSourceClosed)
	}
	if s.connected {
		return domain.NewAudioSourceError("connect", s.path, "already connected", domain.ErrAlreadyInitialized)
	}

	stream := newPCMStream(s.dec, sink)
	playback, err := s.dest.Play(stream)
	if err != nil {
		return err
	}

	s.stream = stream
	s.playback = playback
	s.connected = true

	s.logger.Debug("media connected",
		slog.String("file", s.info.Name),
		slog.Int("sample_rate", s.info.SampleRate),
		slog.Int("channels", s.info.Channels))

	s.wg.Add(1)
	go s.monitor(stream, playback)
	return nil
}

// monitor closes Done once decoding has finished and the destination drained.
func (s *Source) monitor(stream *pcmStream, playback Playback) {
	defer s.wg.Done()

	select {
	case <-stream.EOF():
	case <-s.stop:
		return
	}

	ticker := time.NewTicker(drainPoll)
	defer ticker.Stop()
	for playback.IsPlaying() {
		select {
		case <-ticker.C:
		case <-s.stop:
			return
		}
	}

	s.logger.Debug("media ended", slog.String("file", s.info.Name))
	s.markDone()
}

// Done implements ports.AudioSource.
func (s *Source) Done() <-chan struct{} {
	return s.done
}

// Close stops playback and releases the file. Safe to call more than once.
func (s *Source) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	close(s.stop)
	stream, playback := s.stream, s.playback
	s.mu.Unlock()

	var firstErr error
	if playback != nil {
		if err := playback.Close(); err != nil {
			firstErr = errors.Wrap(err, "closing playback")
		}
	}
	if stream != nil {
		stream.close()
	}
	s.wg.Wait()

	if err := s.file.Close(); err != nil && firstErr == nil {
		firstErr = errors.Wrap(err, "closing file")
	}
	s.markDone()

	if firstErr != nil {
		return domain.NewAudioSourceError("close", s.path, firstErr.Error(), firstErr)
	}
	return nil
}

func (s *Source) markDone() {
	s.doneOnce.Do(func() { close(s.done) })
}

var _ ports.AudioSource = (*Source)(nil)
