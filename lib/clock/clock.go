// Copyright 2026 The Routedeck Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import "time"

// Clock abstracts time operations for testability. Any code that would
// call time.Now or time.AfterFunc directly takes a Clock instead.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// AfterFunc waits for duration d, then calls f. Returns a Timer
	// whose Stop cancels the pending call. If d <= 0, f runs
	// immediately.
	AfterFunc(d time.Duration, f func()) *Timer
}

// Timer represents a scheduled AfterFunc call.
type Timer struct {
	stopFunc func() bool
}

// Stop prevents the timer from firing. Returns true if the call stops
// the timer, false if the timer has already fired or been stopped.
func (t *Timer) Stop() bool { return t.stopFunc() }
