package render

import (
	"github.com/tejashwikalptaru/govis/internal/domain"
)

// Bars draws one vertical bar per sample, anchored to the bottom edge.
// Louder bars get lighter shades of the color.
type Bars struct{}

// Draw implements Renderer.
func (Bars) Draw(s *RenderSession, buf domain.SampleBuffer, col domain.ColorSpec) {
	w, h := s.Width(), s.Height()
	for i, sample := range buf {
		x := float64(i * ColumnWidth)
		if x >= w {
			break
		}
		height := columnHeight(sample, h)
		if height == 0 {
			continue
		}
		s.Canvas.FillRect(x, h-height, ColumnWidth, height, domain.MagnitudeToColor(sample, col).RGBA())
	}
}
