package ports

import (
	"image"

	"github.com/tejashwikalptaru/govis/internal/domain"
)

// Surface is the 2D target a frame is presented on.
type Surface interface {
	// PixelSize returns the current size in device pixels. It is measured once per frame.
	PixelSize() domain.SurfaceSize

	// Present hands a finished frame to the surface. The image stays untouched until
	// the Present after next, when the caller may draw into it again.
	Present(frame image.Image)
}

// FrameHandle identifies a pending frame request.
type FrameHandle uint64

// FrameScheduler runs callbacks aligned with display refresh.
type FrameScheduler interface {
	// RequestFrame schedules fn to run once on the next refresh.
	RequestFrame(fn func()) FrameHandle

	// CancelFrame drops a pending request. Unknown or already-run handles are ignored.
	CancelFrame(handle FrameHandle)
}
