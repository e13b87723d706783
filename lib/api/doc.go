// Copyright 2026 The Routedeck Authors
// SPDX-License-Identifier: Apache-2.0

// Package api is the typed HTTP client for the travel-planning
// backend. It covers the three resources the console manages:
// locations, transportations, and route search.
//
// The client is stateless: every method translates a typed request
// into one HTTP call and decodes a typed response. Pagination,
// refresh-after-mutation, and all other coordination live in the
// callers (lib/pager, lib/consoleui).
//
// Authentication is a bearer credential read from an injected
// CredentialProvider at request time. A missing or rejected credential
// surfaces as an ordinary request failure, never a special-cased flow.
package api
