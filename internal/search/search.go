// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search retrieves PKD literature from PubMed, bioRxiv, and
// medRxiv over a date window, normalizes it into the shared Paper schema,
// removes duplicates across sources, and assigns each surviving paper to
// one topical category.
package search

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/pdiddy/pkd-search/pkg/types"
)

// Backend retrieves normalized papers from a single literature source.
// Each source (PubMed, bioRxiv, medRxiv) implements this interface.
// Backends never fail a run: transient errors inside a source drop the
// affected unit of work and the backend returns whatever it accumulated.
// A returned error means the whole source produced nothing.
type Backend interface {
	Name() string
	Search(ctx context.Context, req Request, cfg types.SearchConfig, w io.Writer) ([]types.Paper, error)
}

// Request holds the search date window. Callers validate the window
// (format, From ≤ To) before invoking the pipeline.
type Request struct {
	From time.Time
	To   time.Time
}

// Output is the result of one pipeline run. Papers is the deduplicated,
// first-seen-ordered record set; PubMed, BioRxiv, and MedRxiv are the raw
// per-source sets before cross-source dedup, kept for "as found" counts in
// reports. Categories partitions Papers into the eight fixed buckets.
type Output struct {
	Papers     []types.Paper
	PubMed     []types.Paper
	BioRxiv    []types.Paper
	MedRxiv    []types.Paper
	Categories map[types.Category][]types.Paper
	Warnings   []string
}

// DefaultBackends returns the three production sources in concatenation
// order: PubMed, then bioRxiv, then medRxiv.
func DefaultBackends(cfg types.SearchConfig) []Backend {
	client := &http.Client{Timeout: cfg.Timeout}
	return []Backend{
		&PubMedBackend{Client: client, APIKey: cfg.NCBIAPIKey},
		&PreprintBackend{Client: client, Server: "biorxiv"},
		&PreprintBackend{Client: client, Server: "medrxiv"},
	}
}

// Search runs every backend, concatenates the results in backend order,
// deduplicates, and categorizes. The backends are queried concurrently,
// but each one's results land in a fixed slot so the concatenation order,
// which decides which source's copy of a duplicate survives, does not
// depend on network timing.
//
// Search never fails: a backend error becomes a warning on w and the
// pipeline continues with the remaining sources. Zero results and total
// source failure are indistinguishable in the output.
func Search(ctx context.Context, req Request, backends []Backend, cfg types.SearchConfig, w io.Writer) Output {
	type slot struct {
		papers []types.Paper
		err    error
	}

	slots := make([]slot, len(backends))
	var wg sync.WaitGroup
	for i, b := range backends {
		wg.Add(1)
		go func(i int, b Backend) {
			defer wg.Done()
			papers, err := b.Search(ctx, req, cfg, w)
			slots[i] = slot{papers: papers, err: err}
		}(i, b)
	}
	wg.Wait()

	var out Output
	var all []types.Paper
	for i, b := range backends {
		if slots[i].err != nil {
			msg := fmt.Sprintf("%s: %v", b.Name(), slots[i].err)
			out.Warnings = append(out.Warnings, msg)
			fmt.Fprintf(w, "warning: source %s failed: %v\n", b.Name(), slots[i].err)
			continue
		}
		all = append(all, slots[i].papers...)
		switch b.Name() {
		case "pubmed":
			out.PubMed = slots[i].papers
		case "biorxiv":
			out.BioRxiv = slots[i].papers
		case "medrxiv":
			out.MedRxiv = slots[i].papers
		}
	}

	out.Papers = deduplicate(all)
	out.Categories = categorize(out.Papers)
	return out
}
