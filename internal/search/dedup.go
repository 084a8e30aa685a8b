// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"strings"

	"github.com/pdiddy/pkd-search/pkg/types"
)

// deduplicate removes papers whose normalized DOI or normalized title was
// already seen earlier in the input. First seen wins, so the caller's
// concatenation order decides which source's copy of a duplicate survives.
// The output preserves input order and never mutates the papers. Papers
// with neither identity key always pass through: there is no basis to
// judge them duplicates, and no fuzzy title matching is attempted.
func deduplicate(papers []types.Paper) []types.Paper {
	seenDOIs := make(map[string]bool)
	seenTitles := make(map[string]bool)

	unique := make([]types.Paper, 0, len(papers))
	for _, p := range papers {
		doi := normalizeKey(p.DOI)
		title := normalizeKey(p.Title)

		if doi != "" && seenDOIs[doi] {
			continue
		}
		if title != "" && seenTitles[title] {
			continue
		}
		if doi != "" {
			seenDOIs[doi] = true
		}
		if title != "" {
			seenTitles[title] = true
		}
		unique = append(unique, p)
	}
	return unique
}

// normalizeKey trims and lower-cases an identity key (DOI or title).
func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
