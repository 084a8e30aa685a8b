// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pkd-search/pkg/types"
)

// preprintPage builds a details response with the given total and items.
func preprintPage(total int, items ...string) string {
	return fmt.Sprintf(`{"messages":[{"status":"ok","total":%d}],"collection":[%s]}`,
		total, strings.Join(items, ","))
}

func preprintItemJSON(title, abstract, doi, authors, date string) string {
	return fmt.Sprintf(`{"title":%q,"abstract":%q,"doi":%q,"authors":%q,"date":%q}`,
		title, abstract, doi, authors, date)
}

// cursorFromPath extracts the trailing cursor segment of a details URL.
func cursorFromPath(path string) int {
	parts := strings.Split(strings.TrimSuffix(path, "/"), "/")
	n, _ := strconv.Atoi(parts[len(parts)-1])
	return n
}

func TestPreprintPaginationTerminates(t *testing.T) {
	var cursors []int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cursors = append(cursors, cursorFromPath(r.URL.Path))
		item := preprintItemJSON("Renal cyst imaging", "", fmt.Sprintf("10.1101/%d", len(cursors)), "Doe, J.", "2026-02-03")
		fmt.Fprint(w, preprintPage(250, item))
	}))
	defer ts.Close()

	old := preprintBase
	preprintBase = ts.URL
	defer func() { preprintBase = old }()

	b := &PreprintBackend{Client: ts.Client(), Server: "biorxiv"}
	papers, err := b.Search(context.Background(), testReq(), testCfg(), io.Discard)
	require.NoError(t, err)

	// Total 250 with page size 100: exactly three fetches at cursors
	// 0, 100, 200, then the loop halts.
	assert.Equal(t, []int{0, 100, 200}, cursors)
	assert.Len(t, papers, 3)
}

func TestPreprintFiltersAndNormalizes(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "/medrxiv/2026-02-01/2026-02-08/")
		fmt.Fprint(w, preprintPage(3,
			preprintItemJSON("CRISPR mouse model of renal cyst formation", "", "10.1101/11", "Doe, J.; Roe, R.", "2026-02-03"),
			preprintItemJSON("Unrelated cardiology preprint", "Aortic valves.", "10.1101/22", "Poe, E.", "2026-02-04"),
			preprintItemJSON("ADPKD progression modeling", "Tolvaptan response.", "10.1101/33", "Noe, M.", "2026-02-05"),
		))
	}))
	defer ts.Close()

	old := preprintBase
	preprintBase = ts.URL
	defer func() { preprintBase = old }()

	b := &PreprintBackend{Client: ts.Client(), Server: "medrxiv"}
	papers, err := b.Search(context.Background(), testReq(), testCfg(), io.Discard)
	require.NoError(t, err)
	require.Len(t, papers, 2)

	p := papers[0]
	assert.Equal(t, "", p.PMID)
	assert.Equal(t, "medrxiv (preprint)", p.Journal)
	assert.Equal(t, "2026", p.Year)
	assert.Equal(t, "Doe, J.; Roe, R.", p.Authors)
	assert.Equal(t, types.SourceMedRxiv, p.Source)
}

func TestPreprintInSourceDOIDedup(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		item := preprintItemJSON("Polycystin revision", "", "10.1101/same", "Doe, J.", "2026-02-03")
		fmt.Fprint(w, preprintPage(150, item))
	}))
	defer ts.Close()

	old := preprintBase
	preprintBase = ts.URL
	defer func() { preprintBase = old }()

	b := &PreprintBackend{Client: ts.Client(), Server: "biorxiv"}
	papers, err := b.Search(context.Background(), testReq(), testCfg(), io.Discard)
	require.NoError(t, err)

	// The same DOI on both pages is emitted once.
	assert.Len(t, papers, 1)
}

func TestPreprintEmptyCollectionStops(t *testing.T) {
	calls := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		fmt.Fprint(w, preprintPage(500))
	}))
	defer ts.Close()

	old := preprintBase
	preprintBase = ts.URL
	defer func() { preprintBase = old }()

	b := &PreprintBackend{Client: ts.Client(), Server: "biorxiv"}
	papers, err := b.Search(context.Background(), testReq(), testCfg(), io.Discard)
	require.NoError(t, err)
	assert.Empty(t, papers)
	assert.Equal(t, 1, calls)
}

func TestPreprintPageFailureKeepsAccumulated(t *testing.T) {
	calls := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if cursorFromPath(r.URL.Path) > 0 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		item := preprintItemJSON("Kidney cyst growth atlas", "", "10.1101/1", "Doe, J.", "2026-02-03")
		fmt.Fprint(w, preprintPage(300, item))
	}))
	defer ts.Close()

	old := preprintBase
	preprintBase = ts.URL
	defer func() { preprintBase = old }()

	b := &PreprintBackend{Client: ts.Client(), Server: "biorxiv"}
	papers, err := b.Search(context.Background(), testReq(), testCfg(), io.Discard)
	require.NoError(t, err)

	// Page two fails after 3 attempts; pagination stops but page one's
	// result survives.
	assert.Len(t, papers, 1)
	assert.Equal(t, 1+3, calls)
}

func TestPreprintStringTotal(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		item := preprintItemJSON("Fibrocystin localization", "", "10.1101/9", "Doe, J.", "2026-02-03")
		fmt.Fprintf(w, `{"messages":[{"status":"ok","total":"1"}],"collection":[%s]}`, item)
	}))
	defer ts.Close()

	old := preprintBase
	preprintBase = ts.URL
	defer func() { preprintBase = old }()

	b := &PreprintBackend{Client: ts.Client(), Server: "biorxiv"}
	papers, err := b.Search(context.Background(), testReq(), testCfg(), io.Discard)
	require.NoError(t, err)
	assert.Len(t, papers, 1)
}
