// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"strings"

	"github.com/pdiddy/pkd-search/pkg/types"
)

// categoryRules is the ordered first-match-wins classification table. The
// order is significant: a title matching both "mutation" and "patient" is
// genetics, never clinical. Papers matching no rule land in other.
var categoryRules = []struct {
	category types.Category
	terms    []string
}{
	{types.CategoryGenetics, []string{"genetic", "mutation", "variant", "sequencing", "gene"}},
	{types.CategoryTherapeutics, []string{"drug", "therapeutic", "treatment", "inhibitor", "trial"}},
	{types.CategoryMetabolism, []string{"metabol", "mitochondr", "cholesterol", "amino acid"}},
	{types.CategoryCrossSpecies, []string{"mouse", "mice", "rat", "model", "crispr"}},
	{types.CategoryDataset, []string{"cohort", "registry", "dataset", "population"}},
	{types.CategoryPathophysiology, []string{"pathophysiology", "mechanism", "pathway"}},
	{types.CategoryClinical, []string{"patient", "clinical", "case"}},
}

// categorize assigns every paper to exactly one bucket by matching its
// lower-cased title against the rule table. The returned map carries all
// eight categories, empty buckets included, and the buckets partition the
// input in order.
func categorize(papers []types.Paper) map[types.Category][]types.Paper {
	buckets := make(map[types.Category][]types.Paper, len(types.Categories()))
	for _, c := range types.Categories() {
		buckets[c] = []types.Paper{}
	}

	for _, p := range papers {
		c := classify(p.Title)
		buckets[c] = append(buckets[c], p)
	}
	return buckets
}

// classify returns the first matching category for a title.
func classify(title string) types.Category {
	t := strings.ToLower(title)
	for _, rule := range categoryRules {
		for _, term := range rule.terms {
			if strings.Contains(t, term) {
				return rule.category
			}
		}
	}
	return types.CategoryOther
}
