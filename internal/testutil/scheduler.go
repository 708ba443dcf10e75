package testutil

import (
	"sort"
	"sync"

	"github.com/tejashwikalptaru/govis/internal/ports"
)

// ManualScheduler is a ports.FrameScheduler driven by the test.
// Requested frames run only when Step is called, one refresh at a time.
type ManualScheduler struct {
	mu      sync.Mutex
	next    ports.FrameHandle
	pending map[ports.FrameHandle]func()
	ran     int
}

// NewManualScheduler creates an empty scheduler.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{pending: make(map[ports.FrameHandle]func())}
}

// RequestFrame implements ports.FrameScheduler.
func (s *ManualScheduler) RequestFrame(fn func()) ports.FrameHandle {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	s.pending[s.next] = fn
	return s.next
}

// CancelFrame implements ports.FrameScheduler.
func (s *ManualScheduler) CancelFrame(handle ports.FrameHandle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, handle)
}

// Step simulates one display refresh: every frame pending at the time of the
// call runs in request order. Frames requested during Step wait for the next one.
// Returns how many callbacks ran.
func (s *ManualScheduler) Step() int {
	s.mu.Lock()
	handles := make([]ports.FrameHandle, 0, len(s.pending))
	for h := range s.pending {
		handles = append(handles, h)
	}
	sort.Slice(handles, func(i, j int) bool { return handles[i] < handles[j] })
	fns := make([]func(), 0, len(handles))
	for _, h := range handles {
		fns = append(fns, s.pending[h])
		delete(s.pending, h)
	}
	s.ran += len(fns)
	s.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
	return len(fns)
}

// StepN calls Step n times and returns the total callbacks run.
func (s *ManualScheduler) StepN(n int) int {
	total := 0
	for i := 0; i < n; i++ {
		total += s.Step()
	}
	return total
}

// Pending returns the number of frames waiting for the next Step.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Ran returns the total number of callbacks run so far.
func (s *ManualScheduler) Ran() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ran
}

var _ ports.FrameScheduler = (*ManualScheduler)(nil)
