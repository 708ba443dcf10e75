package file

import (
	"encoding/binary"
	"io"
	"path/filepath"
	"strings"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"
	"github.com/mewkiz/flac"
	"github.com/pkg/errors"

	"github.com/tejashwikalptaru/govis/internal/domain"
)

// decoder yields interleaved float32 samples in [-1, 1] at the stream's native format.
// Read returns io.EOF once the stream is exhausted.
type decoder interface {
	Read(dst []float32) (int, error)
	SampleRate() int
	Channels() int
}

// SupportedExtensions lists the file extensions that can be opened.
var SupportedExtensions = []string{".wav", ".mp3", ".ogg", ".flac"}

// IsSupported reports whether the file extension has a decoder.
func IsSupported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range SupportedExtensions {
		if e == ext {
			return true
		}
	}
	return false
}

// newDecoder picks a decoder by file extension.
func newDecoder(path string, r io.ReadSeeker) (decoder, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return newWAVDecoder(r)
	case ".mp3":
		return newMP3Decoder(r)
	case ".ogg":
		return newOGGDecoder(r)
	case ".flac":
		return newFLACDecoder(r)
	default:
		return nil, errors.Wrapf(domain.ErrUnsupportedFormat, "extension %q", filepath.Ext(path))
	}
}

// --- WAV ---

type wavDecoder struct {
	dec   *wav.Decoder
	buf   *audio.IntBuffer
	scale float32
	bias  int
}

func newWAVDecoder(r io.ReadSeeker) (*wavDecoder, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, errors.Wrap(domain.ErrUnsupportedFormat, "invalid WAV header")
	}
	if dec.WavAudioFormat != 1 {
		return nil, errors.Wrapf(domain.ErrUnsupportedFormat, "WAV encoding %d (only integer PCM)", dec.WavAudioFormat)
	}
	if err := dec.FwdToPCM(); err != nil {
		return nil, errors.Wrap(err, "seeking to WAV PCM data")
	}

	depth := int(dec.BitDepth)
	if dec.NumChans == 0 || (depth != 8 && depth != 16 && depth != 24 && depth != 32) {
		return nil, errors.Wrapf(domain.ErrUnsupportedFormat, "WAV with %d channels at %d bits", dec.NumChans, depth)
	}
	d := &wavDecoder{
		dec:   dec,
		scale: 1 / float32(int(1)<<(depth-1)),
		buf: &audio.IntBuffer{
			Format:         &audio.Format{NumChannels: int(dec.NumChans), SampleRate: int(dec.SampleRate)},
			SourceBitDepth: depth,
		},
	}
	if depth == 8 {
		// 8-bit WAV is unsigned
		d.bias = 128
	}
	return d, nil
}

func (d *wavDecoder) Read(dst []float32) (int, error) {
	if cap(d.buf.Data) < len(dst) {
		d.buf.Data = make([]int, len(dst))
	}
	d.buf.Data = d.buf.Data[:len(dst)]

	n, err := d.dec.PCMBuffer(d.buf)
	if err != nil && err != io.EOF {
		return 0, errors.Wrap(err, "decoding WAV")
	}
	if n == 0 {
		return 0, io.EOF
	}
	for i := 0; i < n; i++ {
		dst[i] = float32(d.buf.Data[i]-d.bias) * d.scale
	}
	return n, nil
}

func (d *wavDecoder) SampleRate() int { return int(d.dec.SampleRate) }
func (d *wavDecoder) Channels() int   { return int(d.dec.NumChans) }

// --- MP3 ---

// go-mp3 always produces 16-bit little-endian stereo.
type mp3Decoder struct {
	dec *mp3.Decoder
	raw []byte
}

func newMP3Decoder(r io.ReadSeeker) (*mp3Decoder, error) {
	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, errors.Wrap(err, "decoding MP3")
	}
	return &mp3Decoder{dec: dec}, nil
}

func (d *mp3Decoder) Read(dst []float32) (int, error) {
	want := len(dst) * 2
	if cap(d.raw) < want {
		d.raw = make([]byte, want)
	}
	d.raw = d.raw[:want]

	n, err := io.ReadFull(d.dec, d.raw)
	samples := n / 2
	for i := 0; i < samples; i++ {
		dst[i] = float32(int16(binary.LittleEndian.Uint16(d.raw[i*2:]))) / 32768
	}
	if samples > 0 {
		return samples, nil
	}
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return 0, io.EOF
	}
	return 0, errors.Wrap(err, "decoding MP3")
}

func (d *mp3Decoder) SampleRate() int { return d.dec.SampleRate() }
func (d *mp3Decoder) Channels() int   { return 2 }

// --- OGG Vorbis ---

type oggDecoder struct {
	reader *oggvorbis.Reader
}

func newOGGDecoder(r io.ReadSeeker) (*oggDecoder, error) {
	reader, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "decoding OGG")
	}
	return &oggDecoder{reader: reader}, nil
}

func (d *oggDecoder) Read(dst []float32) (int, error) {
	// Keep reads frame-aligned so channels never shift.
	ch := d.reader.Channels()
	dst = dst[:len(dst)-len(dst)%ch]

	n, err := d.reader.Read(dst)
	if n > 0 {
		return n, nil
	}
	if err == nil || err == io.EOF {
		return 0, io.EOF
	}
	return 0, errors.Wrap(err, "decoding OGG")
}

func (d *oggDecoder) SampleRate() int { return d.reader.SampleRate() }
func (d *oggDecoder) Channels() int   { return d.reader.Channels() }

// --- FLAC ---

type flacDecoder struct {
	stream  *flac.Stream
	pending []float32
	scale   float32
}

func newFLACDecoder(r io.ReadSeeker) (*flacDecoder, error) {
	stream, err := flac.New(r)
	if err != nil {
		return nil, errors.Wrap(err, "decoding FLAC")
	}
	return &flacDecoder{
		stream: stream,
		scale:  1 / float32(int64(1)<<(stream.Info.BitsPerSample-1)),
	}, nil
}

func (d *flacDecoder) Read(dst []float32) (int, error) {
	if len(d.pending) == 0 {
		frame, err := d.stream.ParseNext()
		if err == io.EOF {
			return 0, io.EOF
		}
		if err != nil {
			return 0, errors.Wrap(err, "decoding FLAC frame")
		}

		channels := len(frame.Subframes)
		samples := int(frame.Subframes[0].NSamples)
		d.pending = d.pending[:0]
		for i := 0; i < samples; i++ {
			for ch := 0; ch < channels; ch++ {
				d.pending = append(d.pending, float32(frame.Subframes[ch].Samples[i])*d.scale)
			}
		}
	}

	n := copy(dst, d.pending)
	d.pending = d.pending[n:]
	return n, nil
}

func (d *flacDecoder) SampleRate() int { return int(d.stream.Info.SampleRate) }
func (d *flacDecoder) Channels() int   { return int(d.stream.Info.NChannels) }
