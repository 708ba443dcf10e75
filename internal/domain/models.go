// Package domain contains core visualization models and logic with no external dependencies.
// This package defines the fundamental entities of the GoVis audio visualizer.
package domain

import (
	"fmt"
	"strings"
)

// SampleBuffer is a fixed-length sequence of 8-bit magnitudes.
// Frequency-domain buffers hold one magnitude per bin; time-domain buffers are centered at 128.
// A buffer handed out by a sampler is overwritten on the next tick and must not be retained.
type SampleBuffer []uint8

// VisualStyle selects one of the four draw strategies.
type VisualStyle int

const (
	// StyleBars fills one rectangle per frequency bin.
	StyleBars VisualStyle = iota

	// StyleWave strokes a line segment per frequency bin.
	StyleWave

	// StyleFilledWave strokes a segment per bin and fills the area below it.
	StyleFilledWave

	// StyleOscilloscope traces the time-domain waveform from a trigger point.
	StyleOscilloscope
)

// AllStyles lists the styles in the order they are offered to the user.
func AllStyles() []VisualStyle {
	return []VisualStyle{StyleBars, StyleWave, StyleFilledWave, StyleOscilloscope}
}

// String returns the normalized style name (e.g., "filled-wave").
func (s VisualStyle) String() string {
	switch s {
	case StyleBars:
		return "bars"
	case StyleWave:
		return "wave"
	case StyleFilledWave:
		return "filled-wave"
	case StyleOscilloscope:
		return "oscilloscope"
	default:
		return "unknown"
	}
}

// Label returns the human-readable style name shown in the style selector.
func (s VisualStyle) Label() string {
	switch s {
	case StyleBars:
		return "Bars"
	case StyleWave:
		return "Wave"
	case StyleFilledWave:
		return "Filled Wave"
	case StyleOscilloscope:
		return "Oscilloscope"
	default:
		return "Unknown"
	}
}

// ParseVisualStyle accepts a style label or its normalized name.
// Labels are normalized by lower-casing and replacing spaces with dashes.
func ParseVisualStyle(name string) (VisualStyle, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "-")
	for _, s := range AllStyles() {
		if s.String() == normalized {
			return s, nil
		}
	}
	return StyleBars, fmt.Errorf("%w: %q", ErrInvalidStyle, name)
}

// DisplayOptions are the user's display controls. They are replaced wholesale on every change.
type DisplayOptions struct {
	// Style is the selected draw strategy
	Style VisualStyle

	// BaseColorHex is the 6-hex-digit base color (without '#')
	BaseColorHex string

	// Rainbow enables per-frame color cycling
	Rainbow bool
}

// DefaultDisplayOptions returns the options shown before the user touches any control.
func DefaultDisplayOptions() DisplayOptions {
	return DisplayOptions{
		Style:        StyleBars,
		BaseColorHex: "8000ff",
		Rainbow:      false,
	}
}

// Validate checks the style and base color.
func (o DisplayOptions) Validate() error {
	if o.Style < StyleBars || o.Style > StyleOscilloscope {
		return NewValidationError("style", int(o.Style), "unknown visual style")
	}
	if _, err := FromHex(o.BaseColorHex); err != nil {
		return NewValidationError("base_color", o.BaseColorHex, err.Error())
	}
	return nil
}

// BaseColor returns the parsed base color. Options must have been validated.
func (o DisplayOptions) BaseColor() ColorSpec {
	c, err := FromHex(o.BaseColorHex)
	if err != nil {
		return ColorSpec{}
	}
	return c
}

// SurfaceSize is the pixel size of the render surface, measured every frame.
type SurfaceSize struct {
	Width  int
	Height int
}

// IsEmpty returns true if nothing can be drawn on the surface.
func (s SurfaceSize) IsEmpty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// SourceKind is the capability an audio source offers to the analysis graph.
type SourceKind int

const (
	// SourceUnknown is neither a live stream nor playable media
	SourceUnknown SourceKind = iota

	// SourceLiveStream is a live capture handle (microphone)
	SourceLiveStream

	// SourcePlayableMedia is decodable media content (sound file)
	SourcePlayableMedia
)

// String returns a human-readable representation of the source kind.
func (k SourceKind) String() string {
	switch k {
	case SourceLiveStream:
		return "live-stream"
	case SourcePlayableMedia:
		return "playable-media"
	default:
		return "unknown"
	}
}

// SourceInfo describes an opened audio source.
type SourceInfo struct {
	// Kind is the source capability
	Kind SourceKind

	// Name is the file name or device name
	Name string

	// Title is the track title from tags (may be empty)
	Title string

	// Artist is the track artist from tags (may be empty)
	Artist string

	// SampleRate is the signal sample rate in Hz
	SampleRate int

	// Channels is the channel count of the source signal
	Channels int
}

// NowPlaying returns the text shown in the "now playing" label.
func (i SourceInfo) NowPlaying() string {
	switch {
	case i.Kind == SourceLiveStream:
		return "Streaming direct input"
	case i.Artist != "" && i.Title != "":
		return fmt.Sprintf("%s - %s", i.Artist, i.Title)
	case i.Title != "":
		return i.Title
	case i.Name != "":
		return i.Name
	default:
		return "No source selected"
	}
}

// DriverState is the animation driver state.
type DriverState int

const (
	// StateIdle means no frames are scheduled
	StateIdle DriverState = iota

	// StateRunning means a frame is always pending until Stop
	StateRunning
)

// String returns a human-readable representation of the driver state.
func (s DriverState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	default:
		return "unknown"
	}
}
