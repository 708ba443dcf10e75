// Package render turns sample buffers into pixels.
// Every frame is drawn into a cleared RenderSession; renderers keep no state between frames.
package render

import (
	"image/color"

	"github.com/tejashwikalptaru/govis/internal/domain"
)

// Background fills the surface before each frame.
var Background = color.RGBA{R: 22, G: 22, B: 22, A: 0xff}

// RenderSession is the per-frame drawing target and its dimensions.
type RenderSession struct {
	Size   domain.SurfaceSize
	Canvas *Canvas
}

// NewSession allocates a canvas of the given size cleared to Background.
func NewSession(size domain.SurfaceSize) *RenderSession {
	c := NewCanvas(size.Width, size.Height)
	c.Clear(Background)
	return &RenderSession{Size: size, Canvas: c}
}

// Width returns the session width as a float for geometry.
func (s *RenderSession) Width() float64 {
	return float64(s.Size.Width)
}

// Height returns the session height as a float for geometry.
func (s *RenderSession) Height() float64 {
	return float64(s.Size.Height)
}
