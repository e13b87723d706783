// Copyright 2026 The Routedeck Authors
// SPDX-License-Identifier: Apache-2.0

// Package lookup implements the debounced incremental search behind
// the route composer's endpoint pickers.
//
// Keystrokes feed Input; once the query has been stable for the
// debounce interval and is at least two characters long, one lookup
// request fires. Every issued request carries a monotonically
// increasing generation, and only the most recently issued
// generation's result may update the candidate list — an earlier
// in-flight lookup that resolves late is discarded, never shown. The
// quiet period runs on an injected clock so tests drive it without
// real timers.
package lookup
