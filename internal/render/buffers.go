package render

import "github.com/tejashwikalptaru/govis/internal/domain"

// FrameBuffers alternates between two sessions so a frame is never drawn into
// the image the surface was last handed. A session is reused two frames after
// it was presented, cleared to Background; a size change reallocates it.
//
// Thread-safety: Not thread-safe. It belongs to the frame loop.
type FrameBuffers struct {
	sessions [2]*RenderSession
	next     int
}

// Next returns a cleared session of the given size.
func (b *FrameBuffers) Next(size domain.SurfaceSize) *RenderSession {
	s := b.sessions[b.next]
	if s == nil || s.Size != size {
		s = NewSession(size)
		b.sessions[b.next] = s
	} else {
		s.Canvas.Clear(Background)
	}
	b.next ^= 1
	return s
}

// Release drops both sessions.
func (b *FrameBuffers) Release() {
	b.sessions = [2]*RenderSession{}
	b.next = 0
}
