// Package service provides the visualization core of the GoVis application:
// sampling the analysis node, driving the frame loop and managing sessions.
package service

import (
	"github.com/tejashwikalptaru/govis/internal/domain"
	"github.com/tejashwikalptaru/govis/internal/ports"
)

// Sampler binds one audio source to an analysis node and exposes pull-based reads.
// Both buffers are allocated once at the node's resolution and overwritten on every read,
// so callers must not keep them across frames.
//
// Thread-safety: Not thread-safe. The frame loop is its only caller.
type Sampler struct {
	node   ports.AnalysisNode
	source ports.AudioSource

	freq domain.SampleBuffer
	wave domain.SampleBuffer
}

// NewSampler creates a sampler reading from node.
func NewSampler(node ports.AnalysisNode) *Sampler {
	n := node.FrequencyBinCount()
	return &Sampler{
		node: node,
		freq: make(domain.SampleBuffer, n),
		wave: make(domain.SampleBuffer, n),
	}
}

// Initialize connects source to the analysis node.
// Sources that are neither live streams nor playable media are rejected with
// domain.ErrUnsupportedSource; a second call returns domain.ErrAlreadyInitialized.
func (s *Sampler) Initialize(source ports.AudioSource) error {
	if s.source != nil {
		return domain.NewServiceError("sampler", "initialize", "already bound to a source", domain.ErrAlreadyInitialized)
	}
	if source == nil {
		return domain.NewAudioSourceError("initialize", "", "no source", domain.ErrUnsupportedSource)
	}

	switch kind := source.Kind(); kind {
	case domain.SourceLiveStream, domain.SourcePlayableMedia:
	default:
		return domain.NewAudioSourceError("initialize", source.Info().Name,
			"source kind "+kind.String()+" cannot be analyzed", domain.ErrUnsupportedSource)
	}

	if err := source.Connect(s.node); err != nil {
		return err
	}
	s.source = source
	return nil
}

// Initialized reports whether a source is bound.
func (s *Sampler) Initialized() bool {
	return s.source != nil
}

// Resolution returns the fixed buffer length.
func (s *Sampler) Resolution() int {
	return len(s.freq)
}

// SampleFrequencyDomain returns the current spectrum, one byte per bin.
// Before Initialize the buffer is all zeros.
func (s *Sampler) SampleFrequencyDomain() domain.SampleBuffer {
	if s.source == nil {
		clear(s.freq)
		return s.freq
	}
	s.node.ByteFrequencyData(s.freq)
	return s.freq
}

// SampleTimeDomain returns the current waveform centered at 128.
// Before Initialize the buffer is all zeros.
func (s *Sampler) SampleTimeDomain() domain.SampleBuffer {
	if s.source == nil {
		clear(s.wave)
		return s.wave
	}
	s.node.ByteTimeDomainData(s.wave)
	return s.wave
}
