// Copyright 2026 The Routedeck Authors
// SPDX-License-Identifier: Apache-2.0

package pager

import (
	"fmt"

	"github.com/routedeck/routedeck/lib/api"
)

// Meta is the page metadata from the last successful load.
type Meta struct {
	TotalElements int64
	TotalPages    int
	Size          int
	Number        int
}

// Controller is the per-entity paginated list state machine.
type Controller[T any] struct {
	pageSize int

	page    int
	items   []T
	meta    *Meta
	loading bool

	// generation tags loads so only the most recently issued load may
	// update state. Incremented by StartLoad; checked by Apply.
	generation uint64

	// loaded is true once any load has completed, success or failure.
	// Distinguishes "never loaded" from "loaded an empty page".
	loaded bool
}

// New creates a Controller with the given fixed page size.
func New[T any](pageSize int) *Controller[T] {
	return &Controller[T]{pageSize: pageSize}
}

// PageSize returns the fixed page size for list requests.
func (c *Controller[T]) PageSize() int { return c.pageSize }

// Page returns the current 0-based page index.
func (c *Controller[T]) Page() int { return c.page }

// Items returns the current page's items.
func (c *Controller[T]) Items() []T { return c.items }

// Meta returns the metadata from the last successful load, or nil
// before the first one.
func (c *Controller[T]) Meta() *Meta { return c.meta }

// Loading reports whether a load is in flight.
func (c *Controller[T]) Loading() bool { return c.loading }

// Empty reports whether the last completed load returned no items.
// False while the first load is still pending, so the caller can
// render "loading" and "no results" as distinct states.
func (c *Controller[T]) Empty() bool {
	return c.loaded && !c.loading && len(c.items) == 0
}

// StartLoad marks a load of the given page as in flight and returns
// the generation the caller must pass back to Apply. A StartLoad
// issued while another load is pending supersedes it: the earlier
// load's response will be discarded as stale.
func (c *Controller[T]) StartLoad(page int) uint64 {
	c.page = page
	c.loading = true
	c.generation++
	return c.generation
}

// GoToPage validates a page change. Returns the load generation and
// true when the move is valid; (0, false) leaves all state unchanged
// for p < 0 or, when metadata is known, p >= TotalPages.
func (c *Controller[T]) GoToPage(p int) (uint64, bool) {
	if p < 0 {
		return 0, false
	}
	if c.meta != nil && p >= c.meta.TotalPages {
		return 0, false
	}
	return c.StartLoad(p), true
}

// Refresh re-loads the current page. Called after every successful
// mutation so the list reflects backend state.
func (c *Controller[T]) Refresh() uint64 {
	return c.StartLoad(c.page)
}

// Apply feeds a load outcome back into the controller. Stale
// generations are discarded entirely — a newer load is pending and
// owns the loading flag. For the current generation: a failure leaves
// the items and metadata in their last-known-good state and returns
// the error for the caller to surface; a success replaces them.
func (c *Controller[T]) Apply(generation uint64, page api.Page[T], err error) (applied bool, outcome error) {
	if generation != c.generation {
		return false, nil
	}

	c.loading = false
	c.loaded = true
	if err != nil {
		return false, err
	}

	c.items = page.Content
	c.page = page.Number
	c.meta = &Meta{
		TotalElements: page.TotalElements,
		TotalPages:    page.TotalPages,
		Size:          page.Size,
		Number:        page.Number,
	}
	return true, nil
}

// HasPrevious reports whether a previous page exists.
func (c *Controller[T]) HasPrevious() bool { return c.page > 0 }

// HasNext reports whether a next page exists. Unknown metadata means
// no next page — navigation waits for the first load.
func (c *Controller[T]) HasNext() bool {
	return c.meta != nil && c.page < c.meta.TotalPages-1
}

// RangeLabel renders the "Showing X to Y of Z results" footer. Empty
// string until metadata is known; a zero-element page reads
// "No results".
func (c *Controller[T]) RangeLabel() string {
	if c.meta == nil {
		return ""
	}
	if c.meta.TotalElements == 0 {
		return "No results"
	}
	first := int64(c.page*c.meta.Size) + 1
	last := int64((c.page + 1) * c.meta.Size)
	if last > c.meta.TotalElements {
		last = c.meta.TotalElements
	}
	return fmt.Sprintf("Showing %d to %d of %d results", first, last, c.meta.TotalElements)
}
