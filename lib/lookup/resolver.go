// Copyright 2026 The Routedeck Authors
// SPDX-License-Identifier: Apache-2.0

package lookup

import (
	"context"
	"sync"
	"time"

	"github.com/routedeck/routedeck/lib/api"
	"github.com/routedeck/routedeck/lib/clock"
)

// MinQueryLength is the minimum rune count before a lookup request is
// issued. Shorter queries short-circuit to an empty candidate list
// without touching the network.
const MinQueryLength = 2

// SearchFunc resolves a query to candidate options. In production
// this is api.Client.SearchLocations.
type SearchFunc func(ctx context.Context, query string) ([]api.SearchOption, error)

// Event is the outcome of one issued lookup request. Delivered on the
// resolver's event channel; the owner feeds it back through Apply on
// its own event loop.
type Event struct {
	Generation uint64
	Query      string
	Options    []api.SearchOption
	Err        error
}

// Resolver is the debounce-and-supersede state machine for one
// endpoint picker. Input and Apply are called from the UI event loop;
// the debounce timer and the request goroutine only touch state under
// the mutex.
type Resolver struct {
	search   SearchFunc
	clock    clock.Clock
	debounce time.Duration

	mu      sync.Mutex
	timer   *clock.Timer
	pending string

	// generation is the tag of the most recently issued request.
	// Bumped when a request fires and when a short query invalidates
	// whatever is in flight.
	generation uint64

	events chan Event

	options []api.SearchOption
}

// NewResolver creates a Resolver that resolves queries through search
// after the given quiet period.
func NewResolver(search SearchFunc, clk clock.Clock, debounce time.Duration) *Resolver {
	return &Resolver{
		search:   search,
		clock:    clk,
		debounce: debounce,
		events:   make(chan Event, 8),
	}
}

// Events delivers issued lookups' outcomes. The owner reads one event
// at a time and passes it to Apply.
func (r *Resolver) Events() <-chan Event { return r.events }

// Input records a keystroke's resulting query. A query shorter than
// MinQueryLength cancels any armed timer, invalidates any in-flight
// request, and clears the candidate list immediately. Longer queries
// re-arm the debounce timer; the request fires only once the query
// has been stable for the full quiet period.
func (r *Resolver) Input(query string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}

	if len([]rune(query)) < MinQueryLength {
		// Bump the generation so a late response from an in-flight
		// lookup cannot resurrect candidates for an abandoned query.
		r.generation++
		r.pending = ""
		r.options = nil
		return
	}

	r.pending = query
	r.timer = r.clock.AfterFunc(r.debounce, r.fire)
}

// fire issues the request for the pending query. Runs in the timer's
// goroutine (synchronously under a fake clock).
func (r *Resolver) fire() {
	r.mu.Lock()
	query := r.pending
	if query == "" {
		r.mu.Unlock()
		return
	}
	r.generation++
	generation := r.generation
	r.timer = nil
	r.mu.Unlock()

	go func() {
		options, err := r.search(context.Background(), query)
		r.events <- Event{
			Generation: generation,
			Query:      query,
			Options:    options,
			Err:        err,
		}
	}()
}

// Apply feeds a delivered event back into the resolver. Only the most
// recently issued generation updates the candidate list; anything
// older is discarded and false is returned. A failed lookup for the
// current generation clears nothing — the previous candidates remain
// until a newer result replaces them.
func (r *Resolver) Apply(event Event) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if event.Generation != r.generation {
		return false
	}
	if event.Err != nil {
		return false
	}
	r.options = event.Options
	return true
}

// Options returns the current candidate list.
func (r *Resolver) Options() []api.SearchOption {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.options
}

// Reset clears all state: pending timer, in-flight validity, and the
// candidate list. Used when a picker closes.
func (r *Resolver) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	r.generation++
	r.pending = ""
	r.options = nil
}
