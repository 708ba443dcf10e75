package render

import (
	"github.com/tejashwikalptaru/govis/internal/domain"
)

const (
	oscilloscopeLineWidth = 2

	// edgeThreshold is how far above the midpoint a rising edge must climb.
	edgeThreshold = 5

	midpoint = 128
)

// Oscilloscope draws the waveform as a single trace, shifted so a rising edge
// sits at the left border and repeated frames line up.
type Oscilloscope struct{}

// Draw implements Renderer.
func (Oscilloscope) Draw(s *RenderSession, buf domain.SampleBuffer, col domain.ColorSpec) {
	w, h := s.Size.Width, s.Height()
	if len(buf) == 0 || w <= 0 {
		return
	}

	edge := triggerIndex(buf, w)
	pts := make([]Point, 0, min(w, len(buf)-edge))
	for x := edge; x < len(buf) && x-edge < w; x++ {
		pts = append(pts, Point{X: float64(x - edge), Y: h - columnHeight(buf[x], h)})
	}
	s.Canvas.StrokePolyline(pts, oscilloscopeLineWidth, col.RGBA())
}

// triggerIndex finds the sample just past the first rising edge: it skips the
// leading run above the midpoint, then the run below midpoint+edgeThreshold,
// stopping one past the first sample that climbs to midpoint+edgeThreshold.
// Each scan is bounded by the surface width; running off the end yields 0.
func triggerIndex(buf domain.SampleBuffer, width int) int {
	limit := min(width, len(buf))

	i := 0
	for {
		above := i < len(buf) && int(buf[i])-midpoint > 0
		i++
		if !above || i > limit {
			break
		}
	}
	if i >= limit {
		return 0
	}

	for {
		below := i < len(buf) && int(buf[i])-midpoint < edgeThreshold
		i++
		if !below || i > limit {
			break
		}
	}
	if i >= limit {
		return 0
	}
	return i
}
