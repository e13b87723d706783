// Copyright 2026 The Routedeck Authors
// SPDX-License-Identifier: Apache-2.0

// Package tui provides shared terminal user interface components for
// the Routedeck console. Built on bubbletea (Elm architecture), these
// components handle common patterns like dropdown overlays, form
// modals, fuzzy matching, change animation, and ANSI-aware text
// manipulation.
//
// The console's entity tabs and route composer import this package for
// consistent look and behavior: same theme, same keyboard conventions,
// same overlay mechanics. The consoleui package owns the data flow,
// layout, and domain-specific rendering.
package tui
