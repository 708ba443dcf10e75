package file

import (
	"io"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/pkg/errors"

	"github.com/tejashwikalptaru/govis/internal/domain"
)

// Destination is the audible end of the media graph.
type Destination interface {
	// Play starts pulling PCM (16-bit LE stereo at 44.1 kHz) from r.
	Play(r io.Reader) (Playback, error)
}

// Playback is a running destination stream.
type Playback interface {
	// IsPlaying reports whether queued audio is still being played.
	IsPlaying() bool
	Close() error
}

var (
	otoCtx     *oto.Context
	otoOnce    sync.Once
	otoInitErr error
)

// sharedContext creates the process-wide output context on first use.
func sharedContext() (*oto.Context, error) {
	otoOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   outputSampleRate,
			ChannelCount: outputChannels,
			Format:       oto.FormatSignedInt16LE,
			BufferSize:   50 * time.Millisecond,
		}
		var ready chan struct{}
		otoCtx, ready, otoInitErr = oto.NewContext(op)
		if otoInitErr == nil {
			<-ready
		}
	})
	return otoCtx, otoInitErr
}

// SpeakerDestination plays through the default output device.
type SpeakerDestination struct{}

// Play implements Destination.
func (SpeakerDestination) Play(r io.Reader) (Playback, error) {
	ctx, err := sharedContext()
	if err != nil {
		return nil, domain.NewAudioSourceError("play", "", "audio output unavailable",
			errors.Wrap(domain.ErrSourceUnavailable, err.Error()))
	}
	player := ctx.NewPlayer(r)
	player.Play()
	return player, nil
}

// discardTick is the pacing interval of DiscardDestination.
const discardTick = 10 * time.Millisecond

// bytesPerTick is the PCM consumed per discardTick, which keeps the
// discarding destination at the speaker's real-time rate.
const bytesPerTick = outputSampleRate * outputChannels * bytesPerSample * int(discardTick/time.Millisecond) / 1000

// DiscardDestination consumes PCM at the real-time output rate without playing it.
// Headless hosts and silent mode use it in place of the speaker, so the analysis
// node follows the track as it would be heard.
type DiscardDestination struct{}

// Play implements Destination.
func (DiscardDestination) Play(r io.Reader) (Playback, error) {
	d := &discardPlayback{done: make(chan struct{}), stop: make(chan struct{})}
	go d.drain(r)
	return d, nil
}

type discardPlayback struct {
	done     chan struct{}
	stop     chan struct{}
	stopOnce sync.Once
}

func (d *discardPlayback) drain(r io.Reader) {
	defer close(d.done)

	ticker := time.NewTicker(discardTick)
	defer ticker.Stop()

	buf := make([]byte, bytesPerTick)
	for {
		select {
		case <-d.stop:
			return
		case <-ticker.C:
		}
		if _, err := io.ReadFull(r, buf); err != nil {
			return
		}
	}
}

func (d *discardPlayback) IsPlaying() bool {
	select {
	case <-d.done:
		return false
	default:
		return true
	}
}

func (d *discardPlayback) Close() error {
	d.stopOnce.Do(func() { close(d.stop) })
	<-d.done
	return nil
}
