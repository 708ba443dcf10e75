package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tejashwikalptaru/govis/internal/adapter/audio/analyser"
	"github.com/tejashwikalptaru/govis/internal/adapter/audio/mock"
	"github.com/tejashwikalptaru/govis/internal/domain"
)

func TestSampler_ZeroBeforeInitialize(t *testing.T) {
	node := newStubNode(16, 200, 200)
	s := NewSampler(node)

	freq := s.SampleFrequencyDomain()
	wave := s.SampleTimeDomain()
	assert.Len(t, freq, 16)
	assert.Len(t, wave, 16)
	assert.Equal(t, make(domain.SampleBuffer, 16), freq)
	assert.Equal(t, make(domain.SampleBuffer, 16), wave)

	f, w := node.reads()
	assert.Zero(t, f)
	assert.Zero(t, w)
	assert.False(t, s.Initialized())
}

func TestSampler_Initialize(t *testing.T) {
	node := newStubNode(8, 42, 130)
	s := NewSampler(node)
	src := mock.NewLiveSource()

	require.NoError(t, s.Initialize(src))
	assert.True(t, s.Initialized())
	assert.True(t, src.IsConnected())

	src.Emit([]float32{0.1, 0.2})
	assert.Equal(t, 2, node.written)

	assert.Equal(t, domain.SampleBuffer{42, 42, 42, 42, 42, 42, 42, 42}, s.SampleFrequencyDomain())
	assert.Equal(t, uint8(130), s.SampleTimeDomain()[7])
}

func TestSampler_InitializeRejectsUnknownSource(t *testing.T) {
	s := NewSampler(newStubNode(8, 0, 0))

	src := mock.NewSource(domain.SourceUnknown, "mystery")
	err := s.Initialize(src)
	assert.ErrorIs(t, err, domain.ErrUnsupportedSource)
	assert.False(t, src.IsConnected())
	assert.Zero(t, src.ConnectCount())

	assert.ErrorIs(t, s.Initialize(nil), domain.ErrUnsupportedSource)
	assert.False(t, s.Initialized())
}

func TestSampler_InitializeTwice(t *testing.T) {
	s := NewSampler(newStubNode(8, 0, 0))
	require.NoError(t, s.Initialize(mock.NewMediaSource("a.mp3")))
	assert.ErrorIs(t, s.Initialize(mock.NewMediaSource("b.mp3")), domain.ErrAlreadyInitialized)
}

func TestSampler_ConnectFailurePropagates(t *testing.T) {
	s := NewSampler(newStubNode(8, 0, 0))
	src := mock.NewLiveSource()
	src.SetFailConnect(true)

	assert.ErrorIs(t, s.Initialize(src), domain.ErrSourceUnavailable)
	assert.False(t, s.Initialized())
}

func TestSampler_FixedResolutionWithAnalyser(t *testing.T) {
	s := NewSampler(analyser.NewDefault())
	require.NoError(t, s.Initialize(mock.NewLiveSource()))

	assert.Equal(t, 1024, s.Resolution())
	first := s.SampleFrequencyDomain()
	assert.Len(t, first, 1024)
	assert.Len(t, s.SampleFrequencyDomain(), 1024)

	// Connected but silent: no energy, waveform on the midline.
	for _, v := range s.SampleFrequencyDomain() {
		require.Zero(t, v)
	}
	for _, v := range s.SampleTimeDomain() {
		require.Equal(t, uint8(128), v)
	}
}

func TestSampler_BuffersAreReused(t *testing.T) {
	s := NewSampler(newStubNode(4, 1, 2))
	require.NoError(t, s.Initialize(mock.NewLiveSource()))

	a := s.SampleFrequencyDomain()
	b := s.SampleFrequencyDomain()
	assert.Same(t, &a[0], &b[0])
}
