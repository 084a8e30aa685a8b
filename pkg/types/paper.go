// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the pkd-search pipeline.
package types

// Source identifies the origin system a paper was retrieved from.
type Source string

const (
	SourcePubMed  Source = "PubMed"
	SourceBioRxiv Source = "biorxiv"
	SourceMedRxiv Source = "medrxiv"
)

// Paper is the normalized record for one publication or preprint. Papers
// are created by the source clients from raw API responses and never
// mutated afterwards; deduplication and categorization only filter and
// partition them.
type Paper struct {
	// PMID is the PubMed identifier. Empty for preprints.
	PMID string `json:"pmid" yaml:"pmid"`

	// Title is the paper title as returned by the source.
	Title string `json:"title" yaml:"title"`

	// Authors is the ordered author display names joined with commas
	// (PubMed) or semicolons (preprint servers), kept as one string to
	// match the report layouts.
	Authors string `json:"authors" yaml:"authors"`

	// Journal is the source journal, or "<server> (preprint)" for preprints.
	Journal string `json:"journal" yaml:"journal"`

	// Year is the four-digit publication year, empty when the source
	// supplied no date.
	Year string `json:"year" yaml:"year"`

	// DOI is the digital object identifier when the source supplied one.
	DOI string `json:"doi" yaml:"doi"`

	// Source identifies which system found this paper.
	Source Source `json:"source" yaml:"source"`
}

// Link returns the canonical URL for the paper: the DOI resolver when a DOI
// is present, the PubMed page when only a PMID is present, else "".
func (p Paper) Link() string {
	if p.DOI != "" {
		return "https://doi.org/" + p.DOI
	}
	if p.PMID != "" {
		return "https://pubmed.ncbi.nlm.nih.gov/" + p.PMID + "/"
	}
	return ""
}
