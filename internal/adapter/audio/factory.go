// Package audio wires the concrete audio sources behind ports.SourceFactory.
package audio

import (
	"log/slog"

	"github.com/tejashwikalptaru/govis/internal/adapter/audio/file"
	"github.com/tejashwikalptaru/govis/internal/adapter/audio/mic"
	"github.com/tejashwikalptaru/govis/internal/ports"
)

// Factory opens sound files and the default microphone.
type Factory struct {
	logger      *slog.Logger
	destination file.Destination
}

// NewFactory creates a factory. A nil destination plays files through the speakers.
func NewFactory(destination file.Destination, logger *slog.Logger) *Factory {
	if destination == nil {
		destination = file.SpeakerDestination{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Factory{logger: logger, destination: destination}
}

// OpenFile implements ports.SourceFactory.
func (f *Factory) OpenFile(path string) (ports.AudioSource, error) {
	src, err := file.Open(path, f.destination)
	if err != nil {
		f.logger.Warn("cannot open file", slog.String("path", path), slog.Any("error", err))
		return nil, err
	}
	src.SetLogger(f.logger.With(slog.String("source", "file")))
	return src, nil
}

// OpenMicrophone implements ports.SourceFactory.
func (f *Factory) OpenMicrophone() (ports.AudioSource, error) {
	src, err := mic.Open()
	if err != nil {
		f.logger.Warn("cannot open microphone", slog.Any("error", err))
		return nil, err
	}
	src.SetLogger(f.logger.With(slog.String("source", "mic")))
	return src, nil
}

var _ ports.SourceFactory = (*Factory)(nil)
