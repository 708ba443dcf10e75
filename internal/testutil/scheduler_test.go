package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestManualScheduler_RunsInRequestOrder(t *testing.T) {
	s := NewManualScheduler()
	var order []int
	s.RequestFrame(func() { order = append(order, 1) })
	s.RequestFrame(func() { order = append(order, 2) })

	assert.Equal(t, 2, s.Pending())
	assert.Equal(t, 2, s.Step())
	assert.Equal(t, []int{1, 2}, order)
	assert.Zero(t, s.Pending())
	assert.Equal(t, 2, s.Ran())
}

func TestManualScheduler_RescheduleWaitsForNextStep(t *testing.T) {
	s := NewManualScheduler()
	count := 0
	var tick func()
	tick = func() {
		count++
		s.RequestFrame(tick)
	}
	s.RequestFrame(tick)

	assert.Equal(t, 1, s.Step())
	assert.Equal(t, 1, count)
	assert.Equal(t, 1, s.Pending())

	assert.Equal(t, 3, s.StepN(3))
	assert.Equal(t, 4, count)
}

func TestManualScheduler_Cancel(t *testing.T) {
	s := NewManualScheduler()
	ran := false
	h := s.RequestFrame(func() { ran = true })
	s.CancelFrame(h)
	s.CancelFrame(h)
	s.CancelFrame(12345)

	assert.Zero(t, s.Step())
	assert.False(t, ran)
}
