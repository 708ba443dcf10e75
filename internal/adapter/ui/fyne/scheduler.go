package fyne

import (
	"sync"
	"time"

	"fyne.io/fyne/v2"

	"github.com/tejashwikalptaru/govis/internal/ports"
)

type frameRequest struct {
	handle ports.FrameHandle
	fn     func()
}

// AnimationScheduler is a ports.FrameScheduler backed by a forever-repeating
// fyne.Animation. Fyne ticks animations once per display refresh on the main
// goroutine; each tick runs the frames requested before it.
//
// Thread-safety: This implementation is thread-safe.
type AnimationScheduler struct {
	anim *fyne.Animation

	mu      sync.Mutex
	next    ports.FrameHandle
	pending []frameRequest
	running bool
}

// NewAnimationScheduler creates a stopped scheduler.
func NewAnimationScheduler() *AnimationScheduler {
	s := &AnimationScheduler{}
	s.anim = &fyne.Animation{
		Duration:    time.Second,
		RepeatCount: fyne.AnimationRepeatForever,
		Tick:        func(float32) { s.Tick() },
	}
	return s
}

// Start begins ticking. Calling it again is a no-op.
func (s *AnimationScheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true
	s.anim.Start()
}

// Stop halts ticking; pending frames are kept for the next Start.
func (s *AnimationScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.running = false
	s.anim.Stop()
}

// RequestFrame implements ports.FrameScheduler.
func (s *AnimationScheduler) RequestFrame(fn func()) ports.FrameHandle {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	s.pending = append(s.pending, frameRequest{handle: s.next, fn: fn})
	return s.next
}

// CancelFrame implements ports.FrameScheduler.
func (s *AnimationScheduler) CancelFrame(handle ports.FrameHandle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, req := range s.pending {
		if req.handle == handle {
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			return
		}
	}
}

// Tick runs every frame pending at the time of the call.
// Callbacks run without the lock held so they can request the next frame.
func (s *AnimationScheduler) Tick() {
	s.mu.Lock()
	due := s.pending
	s.pending = nil
	s.mu.Unlock()

	for _, req := range due {
		req.fn()
	}
}

var _ ports.FrameScheduler = (*AnimationScheduler)(nil)
