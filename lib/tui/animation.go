// Copyright 2026 The Routedeck Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"time"
)

// HeatDecayDuration is how long a row glows after a successful
// mutation. Heat starts at 1.0 and decays linearly to 0.0 over this
// duration.
const HeatDecayDuration = 4 * time.Second

// HeatTickInterval is the re-render interval while any rows are hot.
// 100ms gives ~10fps animation for smooth color decay.
const HeatTickInterval = 100 * time.Millisecond

// heatEntry records when a row was last mutated.
type heatEntry struct {
	ignition time.Time
}

// HeatTracker maps entity IDs to ignition timestamps for animated
// change highlighting. Each successful create or update "ignites" the
// affected row, which then decays from full intensity to zero over
// [HeatDecayDuration].
type HeatTracker struct {
	entries map[int64]heatEntry
}

// NewHeatTracker creates an empty heat tracker.
func NewHeatTracker() *HeatTracker {
	return &HeatTracker{
		entries: make(map[int64]heatEntry),
	}
}

// Ignite records a mutation for an entity. Resets the decay timer if
// the row was already hot.
func (tracker *HeatTracker) Ignite(id int64, now time.Time) {
	tracker.entries[id] = heatEntry{ignition: now}
}

// Heat returns the current intensity for an entity: 1.0 at ignition,
// linearly decaying to 0.0 over [HeatDecayDuration]. Returns 0.0 for
// rows that were never ignited or have fully decayed.
func (tracker *HeatTracker) Heat(id int64, now time.Time) float64 {
	entry, exists := tracker.entries[id]
	if !exists {
		return 0.0
	}
	elapsed := now.Sub(entry.ignition)
	if elapsed >= HeatDecayDuration {
		return 0.0
	}
	return 1.0 - float64(elapsed)/float64(HeatDecayDuration)
}

// HasHot returns true if any tracked row still has heat > 0, meaning
// the tick timer should keep running for animation.
func (tracker *HeatTracker) HasHot(now time.Time) bool {
	for id, entry := range tracker.entries {
		if now.Sub(entry.ignition) < HeatDecayDuration {
			return true
		}
		// Garbage-collect fully decayed entries.
		delete(tracker.entries, id)
	}
	return false
}
