// Package testutil provides testing utilities for the GoVis application.
package testutil

import (
	"testing"

	"go.uber.org/goleak"
)

// VerifyNoLeaks should be deferred at the start of tests that spawn goroutines.
// It verifies that no goroutines were leaked during the test.
func VerifyNoLeaks(t *testing.T, opts ...goleak.Option) {
	t.Helper()
	goleak.VerifyNone(t, opts...)
}

// LeakCheckFrom records the goroutines running now and returns a check that
// fails the test if any others are still alive when it runs.
// Use it after building fixtures (such as a Fyne test app) that own long-lived goroutines:
//
//	defer testutil.LeakCheckFrom(t)()
func LeakCheckFrom(t *testing.T) func() {
	t.Helper()
	baseline := goleak.IgnoreCurrent()
	return func() {
		t.Helper()
		goleak.VerifyNone(t, baseline)
	}
}
