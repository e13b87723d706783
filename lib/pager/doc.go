// Copyright 2026 The Routedeck Authors
// SPDX-License-Identifier: Apache-2.0

// Package pager holds the paginated list state machine shared by every
// entity tab in the console. The controller is UI-free: it tracks the
// current page, items, metadata, and loading state, and tags each load
// with a generation so that out-of-order responses cannot clobber a
// newer page (last-issued-wins).
//
// The controller never performs I/O itself. The caller starts a load,
// runs the request however it likes (a tea.Cmd in the console), and
// feeds the outcome back through Apply with the generation it was
// given. Writes are never applied optimistically: after a successful
// create, update, or delete the caller refreshes the current page.
package pager
