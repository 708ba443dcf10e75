package analyser

import "sync"

// sampleRing is a thread-safe circular buffer holding the most recent samples.
// It starts zeroed so a window read before it fills reports silence for the missing part.
type sampleRing struct {
	buf     []float32
	w       int    // write position
	written uint64 // total samples ever written
	mu      sync.Mutex
}

func newSampleRing(size int) *sampleRing {
	return &sampleRing{buf: make([]float32, size)}
}

// Write appends samples, overwriting the oldest once full.
func (r *sampleRing) Write(p []float32) {
	if len(p) == 0 {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	size := len(r.buf)
	if len(p) > size {
		p = p[len(p)-size:]
	}
	n := copy(r.buf[r.w:], p)
	copy(r.buf, p[n:])
	r.w = (r.w + len(p)) % size
	r.written += uint64(len(p))
}

// Window copies the whole ring into dst oldest-first and returns the write counter
// at the time of the copy. len(dst) must equal the ring size.
func (r *sampleRing) Window(dst []float64) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	size := len(r.buf)
	for i := range dst {
		dst[i] = float64(r.buf[(r.w+i)%size])
	}
	return r.written
}

// Written returns the total number of samples written so far.
func (r *sampleRing) Written() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.written
}
