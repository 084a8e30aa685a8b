// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/time/rate"

	"github.com/pdiddy/pkd-search/internal/httputil"
	"github.com/pdiddy/pkd-search/pkg/types"
)

// preprintBase is the bioRxiv/medRxiv details endpoint root. Declared as a
// var so tests can substitute an httptest server.
var preprintBase = "https://api.biorxiv.org/details"

// PreprintBackend queries the bioRxiv API, which serves both the biorxiv
// and medrxiv servers through the same cursor-paginated endpoint.
type PreprintBackend struct {
	Client *http.Client
	// Server selects the preprint server: "biorxiv" or "medrxiv".
	Server string
}

// Name returns the server this backend queries.
func (b *PreprintBackend) Name() string { return b.Server }

// Search walks the server's pages for the date window, keeps items that
// pass the PKD keyword filter, and suppresses DOIs already seen within
// this source. A page that fails after retries ends pagination; results
// accumulated from earlier pages are kept.
func (b *PreprintBackend) Search(ctx context.Context, req Request, cfg types.SearchConfig, w io.Writer) ([]types.Paper, error) {
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = 100
	}
	limiter := rate.NewLimiter(rate.Every(cfg.PageDelay), 1)

	var papers []types.Paper
	seenDOIs := make(map[string]bool)
	source := types.Source(b.Server)

	for cursor := 0; ; cursor += pageSize {
		if err := limiter.Wait(ctx); err != nil {
			break
		}

		url := fmt.Sprintf("%s/%s/%s/%s/%d",
			preprintBase, b.Server,
			req.From.Format("2006-01-02"), req.To.Format("2006-01-02"), cursor)

		var page preprintResponse
		err := httputil.Do(ctx, cfg.MaxAttempts, httputil.Linear, func() error {
			page = preprintResponse{}
			return httputil.GetJSON(ctx, b.Client, url, cfg.UserAgent, &page)
		})
		if err != nil {
			// End of data as far as this run is concerned.
			fmt.Fprintf(w, "%s: page at cursor %d dropped: %v\n", b.Server, cursor, err)
			break
		}

		if len(page.Collection) == 0 {
			break
		}

		for _, item := range page.Collection {
			if !isRelevant(item.Title, item.Abstract) {
				continue
			}
			if item.DOI != "" {
				if seenDOIs[item.DOI] {
					continue
				}
				seenDOIs[item.DOI] = true
			}

			year := item.Date
			if len(year) > 4 {
				year = year[:4]
			}
			papers = append(papers, types.Paper{
				Title:   item.Title,
				Authors: item.Authors,
				Journal: b.Server + " (preprint)",
				Year:    year,
				DOI:     item.DOI,
				Source:  source,
			})
		}

		if cursor+pageSize >= page.total() {
			break
		}
	}

	fmt.Fprintf(w, "%s: found %d relevant preprints\n", b.Server, len(papers))
	return papers, nil
}

// bioRxiv API JSON structures. The messages block reports the total result
// count used to decide pagination continuation; the API emits it as a
// number or a string depending on the server, hence json.Number.
type preprintResponse struct {
	Messages   []preprintMessage `json:"messages"`
	Collection []preprintItem    `json:"collection"`
}

type preprintMessage struct {
	Status string      `json:"status"`
	Total  json.Number `json:"total"`
}

type preprintItem struct {
	Title    string `json:"title"`
	Abstract string `json:"abstract"`
	Authors  string `json:"authors"`
	DOI      string `json:"doi"`
	Date     string `json:"date"`
}

// total returns the reported result count, or 0 when the messages block is
// absent or unparsable.
func (r preprintResponse) total() int {
	if len(r.Messages) == 0 {
		return 0
	}
	n, err := r.Messages[0].Total.Int64()
	if err != nil {
		return 0
	}
	return int(n)
}
