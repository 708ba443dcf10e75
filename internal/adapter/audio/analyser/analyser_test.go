package analyser

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tejashwikalptaru/govis/internal/domain"
)

func sine(freq float64, sampleRate float64, n int, amp float64) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = float32(amp * math.Sin(2*math.Pi*freq*float64(i)/sampleRate))
	}
	return out
}

func TestDefaultNodeResolution(t *testing.T) {
	node := NewDefault()
	assert.Equal(t, 2048, node.FFTSize())
	assert.Equal(t, 1024, node.FrequencyBinCount())
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FFTSize = 1000
	_, err := New(cfg)
	assert.ErrorIs(t, err, domain.ErrIllegalArgument)

	cfg = DefaultConfig()
	cfg.Smoothing = 1
	_, err = New(cfg)
	assert.ErrorIs(t, err, domain.ErrIllegalArgument)

	cfg = DefaultConfig()
	cfg.MinDecibels = -10
	_, err = New(cfg)
	assert.ErrorIs(t, err, domain.ErrIllegalArgument)
}

func TestNoSamplesReportsSilence(t *testing.T) {
	node := NewDefault()

	freq := make([]uint8, node.FrequencyBinCount())
	node.ByteFrequencyData(freq)
	for i, v := range freq {
		require.Zero(t, v, "bin %d", i)
	}

	wave := make([]uint8, node.FrequencyBinCount())
	node.ByteTimeDomainData(wave)
	for i, v := range wave {
		require.Equal(t, uint8(128), v, "sample %d", i)
	}
}

func TestTimeDomainScaling(t *testing.T) {
	node := NewDefault()
	samples := make([]float32, node.FFTSize())
	samples[0] = 1    // clamps to 255
	samples[1] = -1   // 0
	samples[2] = 0.5  // 192
	samples[3] = -0.5 // 64
	node.Write(samples)

	wave := make([]uint8, node.FrequencyBinCount())
	node.ByteTimeDomainData(wave)

	assert.Equal(t, uint8(255), wave[0])
	assert.Equal(t, uint8(0), wave[1])
	assert.Equal(t, uint8(192), wave[2])
	assert.Equal(t, uint8(64), wave[3])
	assert.Equal(t, uint8(128), wave[4])
}

func TestTimeDomainOldestFirst(t *testing.T) {
	node := NewDefault()
	node.Write([]float32{0.5})

	// One sample in a zeroed window lands at the newest position.
	full := make([]uint8, node.FFTSize())
	node.ByteTimeDomainData(full)
	assert.Equal(t, uint8(192), full[len(full)-1])
	assert.Equal(t, uint8(128), full[0])
}

func TestSineProducesPeakAtItsBin(t *testing.T) {
	node := NewDefault()
	const rate = 44100.0
	bin := 100
	freq := float64(bin) * rate / float64(node.FFTSize())

	// Several windows so smoothing converges toward the steady magnitude.
	for i := 0; i < 20; i++ {
		node.Write(sine(freq, rate, node.FFTSize(), 0.05))
		node.ByteFrequencyData(make([]uint8, node.FrequencyBinCount()))
	}

	spectrum := make([]uint8, node.FrequencyBinCount())
	node.ByteFrequencyData(spectrum)

	peak := 0
	for i, v := range spectrum {
		if v > spectrum[peak] {
			peak = i
		}
	}
	assert.InDelta(t, bin, peak, 1)
	assert.Greater(t, spectrum[peak], uint8(200))
	assert.Less(t, spectrum[bin+200], uint8(50), "far bins stay quiet")
}

func TestFrequencyDataStableWithoutNewSamples(t *testing.T) {
	node := NewDefault()
	node.Write(sine(1000, 44100, node.FFTSize(), 0.5))

	first := make([]uint8, node.FrequencyBinCount())
	second := make([]uint8, node.FrequencyBinCount())
	node.ByteFrequencyData(first)
	node.ByteFrequencyData(second)

	assert.Equal(t, first, second, "smoothing must not advance without a tick")
}

func TestShortDestinationBuffers(t *testing.T) {
	node := NewDefault()
	node.Write(sine(440, 44100, node.FFTSize(), 0.5))

	assert.NotPanics(t, func() {
		node.ByteFrequencyData(make([]uint8, 16))
		node.ByteTimeDomainData(make([]uint8, 16))
		node.ByteTimeDomainData(make([]uint8, 4096))
	})
}

func TestSampleRingWrap(t *testing.T) {
	r := newSampleRing(4)
	r.Write([]float32{1, 2, 3})
	r.Write([]float32{4, 5})

	dst := make([]float64, 4)
	written := r.Window(dst)
	assert.Equal(t, []float64{2, 3, 4, 5}, dst)
	assert.Equal(t, uint64(5), written)

	r.Write([]float32{6, 7, 8, 9, 10, 11})
	r.Window(dst)
	assert.Equal(t, []float64{8, 9, 10, 11}, dst, "oversized writes keep the newest samples")
}
