package file

import (
	"encoding/binary"
	"io"
	"sync"

	"github.com/tejashwikalptaru/govis/internal/ports"
)

// Playback format shared by every file source: the output context is process-wide
// and cannot change rate once created.
const (
	outputSampleRate = 44100
	outputChannels   = 2
	bytesPerSample   = 2 // 16-bit

	// decoder frames pulled per refill
	chunkFrames = 1024
)

// pcmStream converts decoded audio to 16-bit stereo at outputSampleRate for playback,
// and taps the same signal, downmixed to mono, into the analysis sink.
//
// Only the playback goroutine calls Read; close may come from any goroutine.
type pcmStream struct {
	mu     sync.Mutex
	dec    decoder
	sink   ports.SignalSink
	closed bool

	// resampling state, in source frames
	step  float64
	phase float64
	src   []float32 // pending interleaved source frames
	chunk []float32 // decoder scratch

	mono    []float32 // tap scratch
	pending []byte    // encoded bytes not yet handed to the player

	eof     chan struct{}
	eofOnce sync.Once
}

func newPCMStream(dec decoder, sink ports.SignalSink) *pcmStream {
	return &pcmStream{
		dec:   dec,
		sink:  sink,
		step:  float64(dec.SampleRate()) / outputSampleRate,
		chunk: make([]float32, chunkFrames*dec.Channels()),
		eof:   make(chan struct{}),
	}
}

// EOF is closed once the decoder is exhausted or the stream is closed.
func (s *pcmStream) EOF() <-chan struct{} {
	return s.eof
}

// Read implements io.Reader for the playback destination.
func (s *pcmStream) Read(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for len(s.pending) == 0 {
		if s.closed {
			s.markEOF()
			return 0, io.EOF
		}
		if err := s.produce(); err != nil {
			s.markEOF()
			return 0, io.EOF
		}
	}

	n := copy(p, s.pending)
	s.pending = s.pending[n:]
	return n, nil
}

// produce pulls one decoder chunk and converts as many output frames as it allows.
// Must be called with mu held.
func (s *pcmStream) produce() error {
	n, err := s.dec.Read(s.chunk)
	if n == 0 {
		if err == nil {
			err = io.EOF
		}
		return err
	}
	s.src = append(s.src, s.chunk[:n]...)

	ch := s.dec.Channels()
	frames := len(s.src) / ch
	s.mono = s.mono[:0]
	out := s.pending[:0]

	// Linear interpolation needs the frame after the current position.
	for int(s.phase)+1 < frames {
		i := int(s.phase)
		frac := float32(s.phase - float64(i))
		a := s.src[i*ch : i*ch+ch]
		b := s.src[(i+1)*ch : (i+1)*ch+ch]

		left := a[0] + (b[0]-a[0])*frac
		right := left
		if ch > 1 {
			right = a[1] + (b[1]-a[1])*frac
		}

		s.mono = append(s.mono, (left+right)/2)
		out = appendSample(out, left)
		out = appendSample(out, right)
		s.phase += s.step
	}

	consumed := int(s.phase)
	s.src = s.src[:copy(s.src, s.src[consumed*ch:])]
	s.phase -= float64(consumed)
	s.pending = out

	if len(s.mono) > 0 && s.sink != nil {
		s.sink.Write(s.mono)
	}
	return nil
}

func (s *pcmStream) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.pending = nil
	s.markEOF()
}

func (s *pcmStream) markEOF() {
	s.eofOnce.Do(func() { close(s.eof) })
}

func appendSample(out []byte, v float32) []byte {
	if v > 1 {
		v = 1
	} else if v < -1 {
		v = -1
	}
	return binary.LittleEndian.AppendUint16(out, uint16(int16(v*32767)))
}
