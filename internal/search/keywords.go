// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import "strings"

// pkdKeywords are the case-insensitive substrings that mark a preprint as
// PKD-relevant: disease name variants, gene symbols, protein names, and
// cyst terminology. PubMed results are already scoped by the search query
// and skip this filter.
var pkdKeywords = []string{
	"polycystic kidney",
	"polycystic kidney disease",
	"adpkd",
	"arpkd",
	"pkd1",
	"pkd2",
	"pkhd1",
	"autosomal dominant polycystic",
	"autosomal recessive polycystic",
	"kidney cyst",
	"renal cyst",
	"cystogenesis",
	"polycystin",
	"fibrocystin",
	"polyductin",
}

// isRelevant reports whether any PKD keyword occurs in the title or
// abstract. The abstract may be empty.
func isRelevant(title, abstract string) bool {
	text := strings.ToLower(title + " " + abstract)
	for _, kw := range pkdKeywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
