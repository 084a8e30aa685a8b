// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/time/rate"

	"github.com/pdiddy/pkd-search/internal/httputil"
	"github.com/pdiddy/pkd-search/pkg/types"
)

// pubmedBase is the E-utilities endpoint root. Declared as a var so tests
// can substitute an httptest server.
var pubmedBase = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"

// pubmedQuery is the fixed PKD search term. PubMed results are trusted as
// relevant by construction of this query and are not re-filtered by the
// keyword matcher.
const pubmedQuery = `("polycystic kidney" OR "polycystic kidney disease" OR "ADPKD" OR "ARPKD" OR PKD1 OR PKD2)`

// PubMedBackend queries the NCBI E-utilities API in two phases: an
// identifier search, then batched metadata lookups.
type PubMedBackend struct {
	Client *http.Client
	// APIKey is an optional E-utilities key for the higher rate tier.
	APIKey string
}

// Name returns the backend identifier.
func (b *PubMedBackend) Name() string { return "pubmed" }

// Search finds PMIDs in the date window, then resolves their metadata in
// batches. A failed batch is dropped after retries, so the output may be
// smaller than the identifier count.
func (b *PubMedBackend) Search(ctx context.Context, req Request, cfg types.SearchConfig, w io.Writer) ([]types.Paper, error) {
	pmids, err := b.searchIDs(ctx, req, cfg)
	if err != nil {
		return nil, fmt.Errorf("PubMed search: %w", err)
	}
	fmt.Fprintf(w, "PubMed: found %d articles\n", len(pmids))
	if len(pmids) == 0 {
		return nil, nil
	}
	return b.fetchSummaries(ctx, pmids, cfg, w), nil
}

// searchIDs runs one esearch request and returns the matching PMIDs in
// API order.
func (b *PubMedBackend) searchIDs(ctx context.Context, req Request, cfg types.SearchConfig) ([]string, error) {
	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 1000
	}

	params := url.Values{
		"db":       {"pubmed"},
		"term":     {pubmedQuery},
		"retmax":   {fmt.Sprintf("%d", maxResults)},
		"retmode":  {"json"},
		"datetype": {"pdat"},
		"mindate":  {req.From.Format("2006/01/02")},
		"maxdate":  {req.To.Format("2006/01/02")},
	}
	if b.APIKey != "" {
		params.Set("api_key", b.APIKey)
	}

	var esr esearchResponse
	if err := httputil.GetJSON(ctx, b.Client, pubmedBase+"/esearch.fcgi?"+params.Encode(), cfg.UserAgent, &esr); err != nil {
		return nil, err
	}
	return esr.ESearchResult.IDList, nil
}

// fetchSummaries resolves metadata for pmids in fixed-size batches. Each
// batch gets the full retry policy; a batch that still fails is skipped
// and its PMIDs are silently absent from the result.
func (b *PubMedBackend) fetchSummaries(ctx context.Context, pmids []string, cfg types.SearchConfig, w io.Writer) []types.Paper {
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 100
	}
	limiter := rate.NewLimiter(rate.Every(cfg.BatchDelay), 1)

	var papers []types.Paper
	totalBatches := (len(pmids) + batchSize - 1) / batchSize
	for i := 0; i < len(pmids); i += batchSize {
		end := i + batchSize
		if end > len(pmids) {
			end = len(pmids)
		}
		batch := pmids[i:end]

		if err := limiter.Wait(ctx); err != nil {
			break
		}

		var esr esummaryResponse
		err := httputil.Do(ctx, cfg.MaxAttempts, httputil.Linear, func() error {
			params := url.Values{
				"db":      {"pubmed"},
				"id":      {strings.Join(batch, ",")},
				"retmode": {"json"},
			}
			if b.APIKey != "" {
				params.Set("api_key", b.APIKey)
			}
			esr = esummaryResponse{}
			return httputil.GetJSON(ctx, b.Client, pubmedBase+"/esummary.fcgi?"+params.Encode(), cfg.UserAgent, &esr)
		})
		if err != nil {
			fmt.Fprintf(w, "PubMed: batch %d/%d dropped: %v\n", i/batchSize+1, totalBatches, err)
			continue
		}

		for _, pmid := range batch {
			doc, ok := esr.Result[pmid]
			if !ok {
				continue
			}
			papers = append(papers, pubmedPaper(pmid, doc))
		}
	}
	return papers
}

// pubmedPaper maps one esummary document into the normalized schema.
func pubmedPaper(pmid string, doc esummaryDoc) types.Paper {
	names := make([]string, 0, len(doc.Authors))
	for _, a := range doc.Authors {
		names = append(names, a.Name)
	}

	year := ""
	if fields := strings.Fields(doc.PubDate); len(fields) > 0 {
		year = fields[0]
	}

	doi := ""
	for _, aid := range doc.ArticleIDs {
		if aid.IDType == "doi" {
			doi = aid.Value
			break
		}
	}

	return types.Paper{
		PMID:    pmid,
		Title:   doc.Title,
		Authors: strings.Join(names, ", "),
		Journal: doc.Source,
		Year:    year,
		DOI:     doi,
		Source:  types.SourcePubMed,
	}
}

// E-utilities JSON structures.
type esearchResponse struct {
	ESearchResult esearchResult `json:"esearchresult"`
}

type esearchResult struct {
	Count  string   `json:"count"`
	IDList []string `json:"idlist"`
}

// esummaryResponse keys documents by PMID inside "result". The map also
// carries a "uids" entry; decoding is lenient so that entry is ignored
// when it fails to match esummaryDoc.
type esummaryResponse struct {
	Result esummaryResult `json:"result"`
}

type esummaryResult map[string]esummaryDoc

// UnmarshalJSON skips the "uids" index entry, which is a string array
// rather than a document.
func (r *esummaryResult) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	docs := make(map[string]esummaryDoc, len(raw))
	for key, msg := range raw {
		if key == "uids" {
			continue
		}
		var doc esummaryDoc
		if err := json.Unmarshal(msg, &doc); err != nil {
			return fmt.Errorf("summary for %s: %w", key, err)
		}
		docs[key] = doc
	}
	*r = docs
	return nil
}

type esummaryDoc struct {
	Title      string              `json:"title"`
	Source     string              `json:"source"`
	PubDate    string              `json:"pubdate"`
	Authors    []esummaryAuthor    `json:"authors"`
	ArticleIDs []esummaryArticleID `json:"articleids"`
}

type esummaryAuthor struct {
	Name string `json:"name"`
}

type esummaryArticleID struct {
	IDType string `json:"idtype"`
	Value  string `json:"value"`
}
