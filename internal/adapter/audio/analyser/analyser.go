// Package analyser implements the spectral analysis node of the audio graph.
// Its byte outputs follow the browser AnalyserNode conventions so magnitudes and
// waveform values land in the same 0-255 ranges the renderers are tuned for.
package analyser

import (
	"fmt"
	"math"
	"math/bits"
	"sync"

	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/tejashwikalptaru/govis/internal/domain"
	"github.com/tejashwikalptaru/govis/internal/ports"
)

// Analysis defaults.
const (
	DefaultFFTSize     = 2048
	DefaultSmoothing   = 0.8
	DefaultMinDecibels = -100.0
	DefaultMaxDecibels = -30.0
)

// Blackman window coefficients (alpha = 0.16).
const (
	blackmanA0 = 0.42
	blackmanA1 = 0.5
	blackmanA2 = 0.08
)

// Config holds analysis parameters.
type Config struct {
	// FFTSize is the analysis window length; must be a power of two >= 32
	FFTSize int

	// Smoothing blends each spectrum with the previous one (0 = none, <1)
	Smoothing float64

	// MinDecibels maps to byte 0
	MinDecibels float64

	// MaxDecibels maps to byte 255
	MaxDecibels float64
}

// DefaultConfig returns the analysis parameters used by the visualizer.
func DefaultConfig() Config {
	return Config{
		FFTSize:     DefaultFFTSize,
		Smoothing:   DefaultSmoothing,
		MinDecibels: DefaultMinDecibels,
		MaxDecibels: DefaultMaxDecibels,
	}
}

// Validate checks that the config can drive an FFT.
func (c Config) Validate() error {
	if c.FFTSize < 32 || bits.OnesCount(uint(c.FFTSize)) != 1 {
		return domain.NewValidationError("fft_size", c.FFTSize, "must be a power of two >= 32")
	}
	if c.Smoothing < 0 || c.Smoothing >= 1 {
		return domain.NewValidationError("smoothing", c.Smoothing, "must be in [0, 1)")
	}
	if c.MinDecibels >= c.MaxDecibels {
		return domain.NewValidationError("decibels", fmt.Sprintf("%g..%g", c.MinDecibels, c.MaxDecibels), "min must be below max")
	}
	return nil
}

// Node is a thread-safe analysis node. Audio goroutines Write samples while the
// frame loop reads byte data.
type Node struct {
	cfg  Config
	ring *sampleRing

	mu       sync.Mutex
	fft      *fourier.FFT
	window   []float64    // Blackman coefficients
	input    []float64    // windowed samples
	coeffs   []complex128 // FFT output, FFTSize/2+1
	smoothed []float64    // linear magnitudes after smoothing, one per bin
	spectrum []uint8      // cached byte spectrum
	analyzed uint64       // ring write counter at the last analysis
}

// New creates a node from cfg.
func New(cfg Config) (*Node, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	n := cfg.FFTSize
	window := make([]float64, n)
	for i := range window {
		x := 2 * math.Pi * float64(i) / float64(n)
		window[i] = blackmanA0 - blackmanA1*math.Cos(x) + blackmanA2*math.Cos(2*x)
	}

	return &Node{
		cfg:      cfg,
		ring:     newSampleRing(n),
		fft:      fourier.NewFFT(n),
		window:   window,
		input:    make([]float64, n),
		coeffs:   make([]complex128, n/2+1),
		smoothed: make([]float64, n/2),
		spectrum: make([]uint8, n/2),
	}, nil
}

// NewDefault creates a node with DefaultConfig.
func NewDefault() *Node {
	node, err := New(DefaultConfig())
	if err != nil {
		panic(err)
	}
	return node
}

// Factory returns a ports.AnalysisNodeFactory producing default nodes.
func Factory() ports.AnalysisNodeFactory {
	return func() ports.AnalysisNode { return NewDefault() }
}

// Write implements ports.SignalSink.
func (n *Node) Write(samples []float32) {
	n.ring.Write(samples)
}

// FFTSize returns the analysis window length.
func (n *Node) FFTSize() int {
	return n.cfg.FFTSize
}

// FrequencyBinCount returns half the FFT size.
func (n *Node) FrequencyBinCount() int {
	return n.cfg.FFTSize / 2
}

// ByteTimeDomainData fills dst with up to FFTSize waveform values, oldest first.
// Each sample x maps to clamp(128 * (1 + x)).
func (n *Node) ByteTimeDomainData(dst []uint8) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.ring.Window(n.input)
	count := min(len(dst), len(n.input))
	for i := 0; i < count; i++ {
		dst[i] = toByte(128 * (1 + n.input[i]))
	}
}

// ByteFrequencyData fills dst with up to FrequencyBinCount magnitudes.
// The spectrum is recomputed only when samples arrived since the previous call.
func (n *Node) ByteFrequencyData(dst []uint8) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.ring.Written() != n.analyzed {
		n.analyze()
	}
	copy(dst, n.spectrum)
}

// analyze must be called with mu held.
func (n *Node) analyze() {
	n.analyzed = n.ring.Window(n.input)
	for i, w := range n.window {
		n.input[i] *= w
	}
	n.fft.Coefficients(n.coeffs, n.input)

	scale := 1 / float64(n.cfg.FFTSize)
	tau := n.cfg.Smoothing
	rangeScale := 255 / (n.cfg.MaxDecibels - n.cfg.MinDecibels)

	for i := range n.smoothed {
		c := n.coeffs[i]
		mag := math.Hypot(real(c), imag(c)) * scale

		s := tau*n.smoothed[i] + (1-tau)*mag
		if math.IsNaN(s) || math.IsInf(s, 0) {
			s = 0
		}
		n.smoothed[i] = s

		db := math.Inf(-1)
		if s > 0 {
			db = 20 * math.Log10(s)
		}
		n.spectrum[i] = toByte(rangeScale * (db - n.cfg.MinDecibels))
	}
}

func toByte(v float64) uint8 {
	switch {
	case math.IsNaN(v) || v <= 0:
		return 0
	case v >= 255:
		return 255
	default:
		return uint8(v)
	}
}

var _ ports.AnalysisNode = (*Node)(nil)
