// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/pdiddy/pkd-search/pkg/types"
)

// --- mock backend ---

type mockBackend struct {
	name   string
	papers []types.Paper
	err    error
	delay  time.Duration
}

func (m *mockBackend) Name() string { return m.name }

func (m *mockBackend) Search(_ context.Context, _ Request, _ types.SearchConfig, _ io.Writer) ([]types.Paper, error) {
	if m.delay > 0 {
		time.Sleep(m.delay)
	}
	return m.papers, m.err
}

func testCfg() types.SearchConfig {
	cfg := types.DefaultSearchConfig()
	cfg.Timeout = 10 * time.Second
	cfg.UserAgent = "test/0.1"
	cfg.BatchDelay = 0
	cfg.PageDelay = 0
	return cfg
}

// --- coordinator ---

func TestSearchConcatenatesInSourceOrder(t *testing.T) {
	backends := []Backend{
		// The slowest backend finishes last but its results still come
		// first; which copy of a duplicate survives must not depend on
		// network timing.
		&mockBackend{name: "pubmed", delay: 20 * time.Millisecond, papers: []types.Paper{
			{Title: "Shared study", DOI: "10.1/dup", Source: types.SourcePubMed},
		}},
		&mockBackend{name: "biorxiv", papers: []types.Paper{
			{Title: "Shared study (preprint)", DOI: "10.1/DUP", Source: types.SourceBioRxiv},
			{Title: "Cystogenesis only on bioRxiv", DOI: "10.1/b", Source: types.SourceBioRxiv},
		}},
		&mockBackend{name: "medrxiv", papers: []types.Paper{
			{Title: "Renal cyst cohort", DOI: "10.1/m", Source: types.SourceMedRxiv},
		}},
	}

	out := Search(context.Background(), testReq(), backends, testCfg(), io.Discard)

	if len(out.Papers) != 3 {
		t.Fatalf("len(Papers) = %d, want 3", len(out.Papers))
	}
	if out.Papers[0].Source != types.SourcePubMed {
		t.Errorf("first paper from %q, want the PubMed copy of the duplicate", out.Papers[0].Source)
	}
	if out.Papers[1].Source != types.SourceBioRxiv || out.Papers[2].Source != types.SourceMedRxiv {
		t.Errorf("papers not in source order: %v", out.Papers)
	}
	if len(out.PubMed) != 1 || len(out.BioRxiv) != 2 || len(out.MedRxiv) != 1 {
		t.Errorf("per-source counts = %d/%d/%d, want 1/2/1 (pre-dedup)",
			len(out.PubMed), len(out.BioRxiv), len(out.MedRxiv))
	}
}

func TestSearchBackendFailureIsWarning(t *testing.T) {
	backends := []Backend{
		&mockBackend{name: "pubmed", err: errors.New("network down")},
		&mockBackend{name: "biorxiv", papers: []types.Paper{
			{Title: "Survivor", DOI: "10.1/s", Source: types.SourceBioRxiv},
		}},
		&mockBackend{name: "medrxiv"},
	}

	out := Search(context.Background(), testReq(), backends, testCfg(), io.Discard)

	if len(out.Papers) != 1 {
		t.Fatalf("len(Papers) = %d, want 1", len(out.Papers))
	}
	if len(out.Warnings) != 1 {
		t.Fatalf("len(Warnings) = %d, want 1", len(out.Warnings))
	}
	if got := out.Warnings[0]; got != "pubmed: network down" {
		t.Errorf("warning = %q", got)
	}
}

func TestSearchEmptyRunStillCategorized(t *testing.T) {
	backends := []Backend{
		&mockBackend{name: "pubmed"},
		&mockBackend{name: "biorxiv"},
		&mockBackend{name: "medrxiv"},
	}

	out := Search(context.Background(), testReq(), backends, testCfg(), io.Discard)

	if len(out.Papers) != 0 {
		t.Errorf("len(Papers) = %d, want 0", len(out.Papers))
	}
	if len(out.Categories) != 8 {
		t.Errorf("len(Categories) = %d, want all 8 buckets", len(out.Categories))
	}
}

func TestDefaultBackendsOrder(t *testing.T) {
	backends := DefaultBackends(testCfg())
	want := []string{"pubmed", "biorxiv", "medrxiv"}
	if len(backends) != len(want) {
		t.Fatalf("len(backends) = %d, want %d", len(backends), len(want))
	}
	for i, name := range want {
		if backends[i].Name() != name {
			t.Errorf("backends[%d] = %q, want %q", i, backends[i].Name(), name)
		}
	}
}
