// Copyright 2026 The Routedeck Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"testing"
	"time"
)

func TestFakeNowAdvance(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	fake := Fake(start)

	if !fake.Now().Equal(start) {
		t.Fatalf("Now = %v, want %v", fake.Now(), start)
	}

	fake.Advance(90 * time.Second)
	want := start.Add(90 * time.Second)
	if !fake.Now().Equal(want) {
		t.Fatalf("Now after Advance = %v, want %v", fake.Now(), want)
	}
}

func TestFakeAfterFuncFiresOnAdvance(t *testing.T) {
	fake := Fake(time.Unix(0, 0))

	fired := 0
	fake.AfterFunc(300*time.Millisecond, func() { fired++ })

	fake.Advance(299 * time.Millisecond)
	if fired != 0 {
		t.Fatal("callback fired before deadline")
	}

	fake.Advance(1 * time.Millisecond)
	if fired != 1 {
		t.Fatalf("callback fired %d times, want 1", fired)
	}

	// Further advances must not re-fire a one-shot timer.
	fake.Advance(time.Second)
	if fired != 1 {
		t.Fatalf("callback re-fired, count %d", fired)
	}
}

func TestFakeAfterFuncImmediate(t *testing.T) {
	fake := Fake(time.Unix(0, 0))

	fired := false
	fake.AfterFunc(0, func() { fired = true })
	if !fired {
		t.Fatal("zero-duration AfterFunc should fire synchronously")
	}
}

func TestFakeTimerStop(t *testing.T) {
	fake := Fake(time.Unix(0, 0))

	fired := false
	timer := fake.AfterFunc(time.Second, func() { fired = true })

	if !timer.Stop() {
		t.Fatal("Stop on a pending timer should return true")
	}
	if timer.Stop() {
		t.Fatal("second Stop should return false")
	}

	fake.Advance(2 * time.Second)
	if fired {
		t.Fatal("stopped timer fired")
	}
	if fake.PendingCount() != 0 {
		t.Fatalf("PendingCount = %d, want 0", fake.PendingCount())
	}
}

func TestFakeFiresInDeadlineOrder(t *testing.T) {
	fake := Fake(time.Unix(0, 0))

	var order []string
	fake.AfterFunc(2*time.Second, func() { order = append(order, "second") })
	fake.AfterFunc(1*time.Second, func() { order = append(order, "first") })

	fake.Advance(3 * time.Second)
	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Fatalf("fire order = %v, want [first second]", order)
	}
}

func TestFakeCallbackSchedulesTimer(t *testing.T) {
	fake := Fake(time.Unix(0, 0))

	var chain []int
	fake.AfterFunc(time.Second, func() {
		chain = append(chain, 1)
		fake.AfterFunc(time.Second, func() { chain = append(chain, 2) })
	})

	// A single Advance spanning both deadlines fires the chained
	// timer too.
	fake.Advance(2 * time.Second)
	if len(chain) != 2 {
		t.Fatalf("chain = %v, want both callbacks fired", chain)
	}
}
