package fyne

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
)

func TestAnimationScheduler_TickRunsPendingOnce(t *testing.T) {
	s := NewAnimationScheduler()
	count := 0
	s.RequestFrame(func() { count++ })
	s.RequestFrame(func() { count += 10 })

	s.Tick()
	assert.Equal(t, 11, count)
	s.Tick()
	assert.Equal(t, 11, count)
}

func TestAnimationScheduler_RequestDuringTickWaits(t *testing.T) {
	s := NewAnimationScheduler()
	count := 0
	var loop func()
	loop = func() {
		count++
		s.RequestFrame(loop)
	}
	s.RequestFrame(loop)

	s.Tick()
	s.Tick()
	s.Tick()
	assert.Equal(t, 3, count)
}

func TestAnimationScheduler_Cancel(t *testing.T) {
	s := NewAnimationScheduler()
	ran := false
	h := s.RequestFrame(func() { ran = true })
	kept := s.RequestFrame(func() {})
	s.CancelFrame(h)
	s.CancelFrame(h)

	s.Tick()
	assert.False(t, ran)
	s.CancelFrame(kept)
}

func TestAnimationScheduler_StartStopIdempotent(t *testing.T) {
	test.NewApp()
	s := NewAnimationScheduler()
	s.Start()
	s.Start()
	s.Stop()
	s.Stop()
}
