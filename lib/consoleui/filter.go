// Copyright 2026 The Routedeck Authors
// SPDX-License-Identifier: Apache-2.0

package consoleui

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/junegunn/fzf/src/util"

	"github.com/routedeck/routedeck/lib/tui"
)

// FilterModel implements fzf-style fuzzy narrowing of the current page
// on the entity tabs. The filter is client-side only: it never
// round-trips to the backend, so the pagination footer keeps showing
// the server-side totals while the visible rows narrow.
type FilterModel struct {
	// Input is the current filter query text.
	Input string

	// Active is true when the filter input has keyboard focus
	// (the user pressed / to start typing).
	Active bool
}

// HandleRune processes a character typed while the filter is active.
func (filter *FilterModel) HandleRune(character rune) {
	filter.Input += string(character)
}

// HandleBackspace removes the last character from the filter input.
// Returns true if the input changed.
func (filter *FilterModel) HandleBackspace() bool {
	if len(filter.Input) == 0 {
		return false
	}
	runes := []rune(filter.Input)
	filter.Input = string(runes[:len(runes)-1])
	return true
}

// Clear resets the filter input and deactivates it.
func (filter *FilterModel) Clear() {
	filter.Input = ""
	filter.Active = false
}

// View renders the filter bar. When active, shows the input with a
// cursor. When inactive with text, shows the filter text. When
// inactive with no text, returns empty string (hidden).
func (filter *FilterModel) View(theme tui.Theme, width int) string {
	if !filter.Active && filter.Input == "" {
		return ""
	}

	style := lipgloss.NewStyle().
		Foreground(theme.NormalText).
		Width(width)

	if filter.Active {
		cursor := lipgloss.NewStyle().
			Foreground(theme.HeaderForeground).
			Bold(true).
			Render("▎")
		return style.Render(" / " + filter.Input + cursor)
	}

	// Inactive but has text — show the filter as a subtle indicator.
	dimStyle := lipgloss.NewStyle().
		Foreground(theme.FaintText).
		Width(width)
	return dimStyle.Render(" filter: " + filter.Input)
}

// filterMatch pairs a row index with its fuzzy match outcome.
type filterMatch struct {
	Index     int   // Index into the unfiltered row slice.
	Score     int   // Fuzzy relevance, higher is better.
	Positions []int // Matched rune positions in the row's search text.
}

// fuzzySlab is scratch memory shared across matching calls within one
// filter pass. Sized per fzf's defaults.
var fuzzySlab = util.MakeSlab(100*1024, 2048)

// applyFilter fuzzy-matches the query against each row's search text
// and returns the matching rows sorted by descending score. An empty
// query matches every row in original order with no highlights.
func applyFilter(query string, searchTexts []string) []filterMatch {
	matches := make([]filterMatch, 0, len(searchTexts))
	if query == "" {
		for index := range searchTexts {
			matches = append(matches, filterMatch{Index: index})
		}
		return matches
	}

	pattern := []rune(query)
	for index, text := range searchTexts {
		result := tui.FuzzyMatch(text, pattern, fuzzySlab)
		if result.Score <= 0 {
			continue
		}
		matches = append(matches, filterMatch{
			Index:     index,
			Score:     result.Score,
			Positions: result.Positions,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	return matches
}
