// Copyright 2026 The Routedeck Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock abstracts timer scheduling so that debounce and fade
// behavior can be tested without real time. Production code injects
// Real(); tests inject Fake() and advance it explicitly.
package clock
