package service

import (
	"sync"

	"github.com/tejashwikalptaru/govis/internal/domain"
	"github.com/tejashwikalptaru/govis/internal/ports"
)

// stubNode is an analysis node returning constant data.
type stubNode struct {
	mu        sync.Mutex
	bins      int
	freqValue uint8
	timeValue uint8
	freqReads int
	timeReads int
	written   int
}

func newStubNode(bins int, freq, wave uint8) *stubNode {
	return &stubNode{bins: bins, freqValue: freq, timeValue: wave}
}

func (n *stubNode) Write(samples []float32) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.written += len(samples)
}

func (n *stubNode) FrequencyBinCount() int { return n.bins }

func (n *stubNode) ByteFrequencyData(dst []uint8) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.freqReads++
	for i := range dst {
		dst[i] = n.freqValue
	}
}

func (n *stubNode) ByteTimeDomainData(dst []uint8) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.timeReads++
	for i := range dst {
		dst[i] = n.timeValue
	}
}

func (n *stubNode) reads() (freq, wave int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.freqReads, n.timeReads
}

func (n *stubNode) factory() ports.AnalysisNodeFactory {
	return func() ports.AnalysisNode { return n }
}

// eventRecorder collects every published event.
type eventRecorder struct {
	mu     sync.Mutex
	events []domain.Event
}

func (r *eventRecorder) handle(e domain.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *eventRecorder) types() []domain.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.EventType, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type())
	}
	return out
}

func (r *eventRecorder) last(t domain.EventType) domain.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.events) - 1; i >= 0; i-- {
		if r.events[i].Type() == t {
			return r.events[i]
		}
	}
	return nil
}

func (r *eventRecorder) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

// lazyScheduler records requests but ignores cancellation, so a stale
// callback can be run after Stop.
type lazyScheduler struct {
	mu  sync.Mutex
	fns []func()
}

func (s *lazyScheduler) RequestFrame(fn func()) ports.FrameHandle {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fns = append(s.fns, fn)
	return ports.FrameHandle(len(s.fns))
}

func (s *lazyScheduler) CancelFrame(ports.FrameHandle) {}

func (s *lazyScheduler) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.fns)
}

func (s *lazyScheduler) run(i int) {
	s.mu.Lock()
	fn := s.fns[i]
	s.mu.Unlock()
	fn()
}
