package render

import (
	"github.com/tejashwikalptaru/govis/internal/domain"
)

// Geometry shared by the column renderers.
const (
	// ColumnWidth is the horizontal step per sample, independent of surface width.
	ColumnWidth = 15

	// Scaling is the sample range mapped onto the surface height.
	Scaling = 256
)

// Renderer paints one sample buffer onto a session.
type Renderer interface {
	// Draw paints buf in col. It must tolerate empty and all-zero buffers.
	Draw(s *RenderSession, buf domain.SampleBuffer, col domain.ColorSpec)
}

var renderers = map[domain.VisualStyle]Renderer{
	domain.StyleBars:         Bars{},
	domain.StyleWave:         Wave{},
	domain.StyleFilledWave:   Wave{Filled: true},
	domain.StyleOscilloscope: Oscilloscope{},
}

// ForStyle returns the renderer for style, falling back to Bars for unknown values.
func ForStyle(style domain.VisualStyle) Renderer {
	if r, ok := renderers[style]; ok {
		return r
	}
	return Bars{}
}

// columnHeight scales a sample onto a surface of height h.
func columnHeight(sample uint8, h float64) float64 {
	return float64(sample) * (h / Scaling)
}
