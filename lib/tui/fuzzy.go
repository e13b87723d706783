// Copyright 2026 The Routedeck Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"unicode"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

// The V2 algorithm scores against precomputed bonus tables that are
// only populated by Init.
func init() {
	algo.Init("default")
}

// FuzzyResult holds the outcome of a fuzzy match: a relevance score
// (higher is better, 0 means no match) and the rune positions in the
// text that matched the pattern, for highlight rendering.
type FuzzyResult struct {
	Score     int
	Positions []int
}

// FuzzyMatch runs fzf's V2 matching algorithm against a single text.
// Matching is case-insensitive: the pattern is lowercased here, and
// the algorithm folds the text. The slab is an optional scratch
// allocation reused across calls in a filtering loop; nil allocates
// per call.
func FuzzyMatch(text string, pattern []rune, slab *util.Slab) FuzzyResult {
	if len(pattern) == 0 {
		return FuzzyResult{}
	}

	lowered := make([]rune, len(pattern))
	for index, character := range pattern {
		lowered[index] = unicode.ToLower(character)
	}

	chars := util.ToChars([]byte(text))
	result, positions := algo.FuzzyMatchV2(false, true, true, &chars, lowered, true, slab)
	if result.Score <= 0 {
		return FuzzyResult{}
	}

	matched := FuzzyResult{Score: result.Score}
	if positions != nil {
		matched.Positions = *positions
	}
	return matched
}
