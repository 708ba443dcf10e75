// Package visualizer provides the raster widget the visualization is painted on.
package visualizer

import (
	"image"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/tejashwikalptaru/govis/internal/domain"
	"github.com/tejashwikalptaru/govis/internal/ports"
	"github.com/tejashwikalptaru/govis/internal/render"
)

// Surface is a Fyne widget implementing ports.Surface.
// It reports the pixel size Fyne last asked the raster for, so frames are
// rendered at device resolution and follow window resizes.
type Surface struct {
	widget.BaseWidget

	raster *canvas.Raster

	mu     sync.Mutex
	frame  image.Image
	pixels domain.SurfaceSize
}

// NewSurface creates an empty surface.
func NewSurface() *Surface {
	s := &Surface{}
	s.raster = canvas.NewRaster(s.generate)
	s.ExtendBaseWidget(s)
	return s
}

// CreateRenderer implements fyne.Widget.
func (s *Surface) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(s.raster)
}

// MinSize returns the minimum size of the surface.
func (s *Surface) MinSize() fyne.Size {
	return fyne.NewSize(120, 80)
}

// PixelSize implements ports.Surface. Before the first paint the logical widget
// size is used.
func (s *Surface) PixelSize() domain.SurfaceSize {
	s.mu.Lock()
	px := s.pixels
	s.mu.Unlock()
	if !px.IsEmpty() {
		return px
	}
	logical := s.Size()
	return domain.SurfaceSize{Width: int(logical.Width), Height: int(logical.Height)}
}

// Present implements ports.Surface.
func (s *Surface) Present(frame image.Image) {
	s.mu.Lock()
	s.frame = frame
	s.mu.Unlock()

	fyne.Do(s.raster.Refresh)
}

// Clear drops the last frame and shows the background.
func (s *Surface) Clear() {
	s.mu.Lock()
	s.frame = nil
	s.mu.Unlock()

	fyne.Do(s.raster.Refresh)
}

// Frame returns the frame currently shown, or nil.
func (s *Surface) Frame() image.Image {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frame
}

func (s *Surface) generate(w, h int) image.Image {
	s.mu.Lock()
	s.pixels = domain.SurfaceSize{Width: w, Height: h}
	frame := s.frame
	s.mu.Unlock()

	if frame != nil {
		return frame
	}
	return image.NewUniform(render.Background)
}

var _ ports.Surface = (*Surface)(nil)
