package render

import (
	"image"
	"sync"

	"github.com/tejashwikalptaru/govis/internal/domain"
	"github.com/tejashwikalptaru/govis/internal/ports"
)

// ImageSurface is an in-memory ports.Surface. It keeps the last presented frame.
//
// Thread-safety: This implementation is thread-safe.
type ImageSurface struct {
	mu       sync.Mutex
	size     domain.SurfaceSize
	last     image.Image
	presents int
}

// NewImageSurface creates a surface reporting the given size.
func NewImageSurface(width, height int) *ImageSurface {
	return &ImageSurface{size: domain.SurfaceSize{Width: width, Height: height}}
}

// PixelSize implements ports.Surface.
func (s *ImageSurface) PixelSize() domain.SurfaceSize {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.size
}

// Resize changes the size reported from the next frame on.
func (s *ImageSurface) Resize(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.size = domain.SurfaceSize{Width: width, Height: height}
}

// Present implements ports.Surface.
func (s *ImageSurface) Present(img image.Image) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = img
	s.presents++
}

// Last returns the most recently presented frame, or nil.
func (s *ImageSurface) Last() image.Image {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// Presents returns how many frames were presented.
func (s *ImageSurface) Presents() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.presents
}

var _ ports.Surface = (*ImageSurface)(nil)
