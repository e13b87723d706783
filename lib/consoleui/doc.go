// Copyright 2026 The Routedeck Authors
// SPDX-License-Identifier: Apache-2.0

// Package consoleui implements the interactive admin console for the
// travel-planning backend: paginated location and transportation tabs
// with create/edit/delete modals, and a route composer that resolves
// endpoints through debounced incremental search and renders multi-leg
// itineraries.
//
// The top-level Model follows the Elm architecture via bubbletea. All
// backend access goes through the Service interface; every
// asynchronous result message carries the generation it was issued
// under, so a stale response can never clobber newer state. Writes are
// never applied optimistically — after a successful mutation the
// affected tab refreshes its current page.
package consoleui
