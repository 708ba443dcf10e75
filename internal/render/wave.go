package render

import (
	"github.com/tejashwikalptaru/govis/internal/domain"
)

// Line widths.
const (
	waveLineWidth       = 4
	filledWaveLineWidth = 2
)

// Wave joins consecutive samples with straight segments, starting from the
// bottom-left corner. Each segment is colored by the sample it ends on.
// When Filled is set the area under every segment is filled in the same color.
type Wave struct {
	Filled bool
}

// Draw implements Renderer.
func (r Wave) Draw(s *RenderSession, buf domain.SampleBuffer, col domain.ColorSpec) {
	w, h := s.Width(), s.Height()
	lineWidth := float64(waveLineWidth)
	if r.Filled {
		lineWidth = filledWaveLineWidth
	}

	y := h
	for i, sample := range buf {
		x := float64(i * ColumnWidth)
		if x >= w {
			break
		}
		next := h - columnHeight(sample, h)
		rgba := domain.MagnitudeToColor(sample, col).RGBA()

		from, to := Point{x, y}, Point{x + ColumnWidth, next}
		s.Canvas.StrokeSegment(from, to, lineWidth, rgba)
		if r.Filled {
			s.Canvas.FillPolygon([]Point{from, to, {to.X, h}, {from.X, h}}, rgba)
		}
		y = next
	}
}
