// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders a completed literature search into the Excel and
// PDF deliverables. It consumes the pipeline's output and never talks to
// the network.
package report

import (
	"strings"
	"time"
)

// Summary condenses a title to at most maxWords words, appending an
// ellipsis (and stripping trailing punctuation first) when the title was
// truncated.
func Summary(title string, maxWords int) string {
	words := strings.Fields(title)
	if len(words) <= maxWords {
		return strings.Join(words, " ")
	}
	s := strings.Join(words[:maxWords-1], " ")
	return strings.TrimRight(s, ".,;:") + "..."
}

// keyFindingsStopWords are dropped from titles when building the key
// findings column, unless the title is too short to afford dropping them.
var keyFindingsStopWords = map[string]bool{
	"the": true, "a": true, "an": true, "in": true, "on": true, "at": true,
	"to": true, "for": true, "of": true, "and": true, "with": true,
}

// KeyFindings turns a title into a condensed findings string: colons become
// spaces, stop words are filtered out when at least ten content words
// remain, and the result is capped at maxWords words.
func KeyFindings(title string, maxWords int) string {
	words := strings.Fields(strings.ReplaceAll(title, ":", " "))

	content := 0
	for _, w := range words {
		if !keyFindingsStopWords[strings.ToLower(w)] {
			content++
		}
	}

	var filtered []string
	for _, w := range words {
		if !keyFindingsStopWords[strings.ToLower(w)] || content < 10 {
			filtered = append(filtered, w)
		}
	}
	if len(filtered) > maxWords {
		filtered = filtered[:maxWords]
	}
	return strings.Join(filtered, " ")
}

// LastAuthorName returns the first token of the final author in a joined
// author string. Preprint servers join with semicolons, PubMed with
// commas; semicolons win when both appear.
func LastAuthorName(authors string) string {
	if authors == "" {
		return ""
	}
	sep := ","
	if strings.Contains(authors, ";") {
		sep = ";"
	}

	var last string
	for _, a := range strings.Split(authors, sep) {
		if a = strings.TrimSpace(a); a != "" {
			last = a
		}
	}
	if last == "" {
		return ""
	}
	return strings.Fields(last)[0]
}

// ExcelFilename returns the dated workbook name for a search ending on end.
func ExcelFilename(end time.Time) string {
	return end.Format("20060102") + "-PKD-Literature-Data.xlsx"
}

// PDFFilename returns the dated summary document name for a search ending
// on end.
func PDFFilename(end time.Time) string {
	return end.Format("20060102") + "-PKD-Literature-Summary.pdf"
}
