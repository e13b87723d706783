// Copyright 2026 The Routedeck Authors
// SPDX-License-Identifier: Apache-2.0

package consoleui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the console TUI.
type KeyMap struct {
	// Navigation (context-sensitive: list cursor movement or route
	// result scrolling depending on the active tab).
	Up   key.Binding
	Down key.Binding

	// Pagination on the entity tabs.
	PrevPage key.Binding
	NextPage key.Binding

	// Tab switching.
	TabLocations       key.Binding
	TabTransportations key.Binding
	TabRoutes          key.Binding

	// Focus switching within the route composer.
	FocusNext key.Binding

	// Filter (entity tabs only).
	FilterActivate key.Binding
	FilterClear    key.Binding

	// Mutations.
	Add     key.Binding
	Edit    key.Binding
	Delete  key.Binding // First press arms, second press confirms.
	Refresh key.Binding

	// Route composer.
	Search key.Binding // Run the route search with the selected endpoints.
	Expand key.Binding // Toggle itinerary expansion of the selected route.

	Quit key.Binding
}

// DefaultKeyMap is the built-in key binding set. Vim-style navigation
// (j/k) alongside standard arrow keys.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	PrevPage: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "prev page"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "next page"),
	),
	TabLocations: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "locations"),
	),
	TabTransportations: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "transportations"),
	),
	TabRoutes: key.NewBinding(
		key.WithKeys("3"),
		key.WithHelp("3", "routes"),
	),
	FocusNext: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("Tab", "switch field"),
	),
	FilterActivate: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "filter"),
	),
	FilterClear: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "clear filter"),
	),
	Add: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "add"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	Search: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "search"),
	),
	Expand: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("Space", "expand"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
