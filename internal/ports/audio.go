// Package ports define interfaces for dependency inversion.
// These interfaces keep the visualization core independent of audio and UI libraries.
package ports

import (
	"github.com/tejashwikalptaru/govis/internal/domain"
)

// SignalSink accepts mono float32 samples in [-1, 1].
// Implementations must be safe to call from audio callback goroutines.
type SignalSink interface {
	Write(samples []float32)
}

// AnalysisNode is the spectral analysis stage of the audio graph.
// It keeps the most recent window of samples and converts it to byte magnitudes on demand.
type AnalysisNode interface {
	SignalSink

	// FrequencyBinCount is half the FFT size; it is the length of both byte outputs.
	FrequencyBinCount() int

	// ByteFrequencyData fills dst with the smoothed spectrum mapped to 0-255.
	ByteFrequencyData(dst []uint8)

	// ByteTimeDomainData fills dst with the current waveform, centered at 128.
	ByteTimeDomainData(dst []uint8)
}

// AnalysisNodeFactory creates a fresh node for each visualization session.
type AnalysisNodeFactory func() AnalysisNode

// AudioSource is a live stream or playable media that can feed an analysis node.
//
// Thread-safety: Close may be called from any goroutine and is idempotent.
type AudioSource interface {
	// Kind reports the source capability.
	Kind() domain.SourceKind

	// Info describes the source for display.
	Info() domain.SourceInfo

	// Connect builds source -> sink (-> playback destination for media) and starts the signal.
	// Returns domain.ErrSourceClosed after Close.
	Connect(sink SignalSink) error

	// Done is closed when media reaches its end or the source is closed.
	Done() <-chan struct{}

	// Close tears down the graph and releases devices and files.
	Close() error
}

// SourceFactory opens the concrete sources offered to the user.
type SourceFactory interface {
	// OpenFile opens a sound file. Returns an AudioSourceError wrapping
	// domain.ErrFileNotFound or domain.ErrUnsupportedFormat on failure.
	OpenFile(path string) (AudioSource, error)

	// OpenMicrophone opens the default capture device. Returns an AudioSourceError
	// wrapping domain.ErrSourceUnavailable when no device can be opened.
	OpenMicrophone() (AudioSource, error)
}
