// Copyright 2026 The Routedeck Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared helpers for tests that coordinate
// with background goroutines: channel receives with timeout safety
// valves so a broken test fails instead of hanging.
package testutil
