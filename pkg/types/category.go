// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Category is one of the eight fixed topical buckets a deduplicated paper
// is assigned to. The set is closed: adding or removing a bucket is a
// source change, not a data change.
type Category string

const (
	CategoryGenetics        Category = "genetics"
	CategoryTherapeutics    Category = "therapeutics"
	CategoryMetabolism      Category = "metabolism"
	CategoryPathophysiology Category = "pathophysiology"
	CategoryClinical        Category = "clinical"
	CategoryCrossSpecies    Category = "cross_species"
	CategoryDataset         Category = "dataset"
	CategoryOther           Category = "other"
)

// Categories returns all buckets in display order. Every category map
// produced by the pipeline carries exactly these keys.
func Categories() []Category {
	return []Category{
		CategoryGenetics,
		CategoryTherapeutics,
		CategoryMetabolism,
		CategoryPathophysiology,
		CategoryClinical,
		CategoryCrossSpecies,
		CategoryDataset,
		CategoryOther,
	}
}
