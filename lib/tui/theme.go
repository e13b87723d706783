// Copyright 2026 The Routedeck Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/routedeck/routedeck/lib/api"
)

// Theme defines the color palette and visual properties for the
// Routedeck console. All colors use lipgloss ANSI 256-color codes for
// broad terminal compatibility.
//
// The fields cover both universal chrome (text, selection, borders)
// and semantic categories that recur across the console: transportation
// type badges, mutation outcome notices, itinerary markers.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Selected row.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// Transportation type badges.
	TypeFlight lipgloss.Color
	TypeOther  lipgloss.Color

	// Status bar notices for mutation and load outcomes.
	SuccessNotice lipgloss.Color
	ErrorNotice   lipgloss.Color

	// UI chrome.
	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color

	// Accent marks the active tab and the focused pane in the route
	// composer.
	Accent lipgloss.Color

	// Animation accent: background tint for recently-mutated rows.
	HotAccent lipgloss.Color

	// Filter match highlighting.
	SearchHighlightBackground lipgloss.Color

	// Itinerary endpoint markers.
	MarkerOrigin      lipgloss.Color
	MarkerDestination lipgloss.Color

	// Floating overlays (dropdowns, form modals).
	TooltipForeground lipgloss.Color
	TooltipBackground lipgloss.Color
}

// TypeColor returns the badge color for a transportation type.
// Unknown values return FaintText.
func (theme Theme) TypeColor(transportationType api.TransportationType) lipgloss.Color {
	switch transportationType {
	case api.TypeFlight:
		return theme.TypeFlight
	case api.TypeOther:
		return theme.TypeOther
	default:
		return theme.FaintText
	}
}

// DefaultTheme is the built-in dark-terminal color scheme. Designed for
// 256-color terminals with a dark background (the common case for
// development environments and tmux sessions).
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	TypeFlight: lipgloss.Color("75"),  // blue
	TypeOther:  lipgloss.Color("180"), // tan

	SuccessNotice: lipgloss.Color("114"), // green
	ErrorNotice:   lipgloss.Color("196"), // red

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),

	Accent: lipgloss.Color("220"), // amber

	HotAccent: lipgloss.Color("58"), // dark amber background tint

	SearchHighlightBackground: lipgloss.Color("58"),

	MarkerOrigin:      lipgloss.Color("114"), // green
	MarkerDestination: lipgloss.Color("203"), // salmon

	TooltipForeground: lipgloss.Color("252"), // same as NormalText
	TooltipBackground: lipgloss.Color("237"), // slightly lighter than terminal background
}
