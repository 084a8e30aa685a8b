// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pdiddy/pkd-search/internal/report"
	"github.com/pdiddy/pkd-search/internal/search"
	"github.com/pdiddy/pkd-search/pkg/types"
)

const dateFmt = "2006-01-02"

// searchRequestBody is the JSON body for POST /api/search.
type searchRequestBody struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// searchResponse is the JSON shape for search results.
type searchResponse struct {
	Window     windowJSON                       `json:"window"`
	Counts     countsJSON                       `json:"counts"`
	Papers     []types.Paper                    `json:"papers"`
	Categories map[types.Category][]types.Paper `json:"categories"`
	Warnings   []string                         `json:"warnings,omitempty"`
}

type windowJSON struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type countsJSON struct {
	Total   int `json:"total"`
	PubMed  int `json:"pubmed"`
	BioRxiv int `json:"biorxiv"`
	MedRxiv int `json:"medrxiv"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleSearch validates the window, runs the pipeline, caches the result,
// and returns it.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var body searchRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	req, err := parseWindow(body.Start, body.End)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	out := s.searcher(req)

	s.mu.Lock()
	s.last = &lastRun{req: req, out: out}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, toResponse(req, out))
}

// handleResults returns the cached result of the most recent search.
func (s *Server) handleResults(w http.ResponseWriter, _ *http.Request) {
	run, ok := s.lastRun()
	if !ok {
		writeError(w, http.StatusNotFound, "no search has been run yet")
		return
	}
	writeJSON(w, http.StatusOK, toResponse(run.req, run.out))
}

func (s *Server) handleExcelReport(w http.ResponseWriter, _ *http.Request) {
	run, ok := s.lastRun()
	if !ok {
		writeError(w, http.StatusNotFound, "no search has been run yet")
		return
	}

	data, err := report.ExcelBytes(run.out.Papers)
	if err != nil {
		s.logger.Error().Err(err).Msg("building workbook")
		writeError(w, http.StatusInternalServerError, "building workbook")
		return
	}
	serveDownload(w, report.ExcelFilename(run.req.To),
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

func (s *Server) handlePDFReport(w http.ResponseWriter, _ *http.Request) {
	run, ok := s.lastRun()
	if !ok {
		writeError(w, http.StatusNotFound, "no search has been run yet")
		return
	}

	counts := report.Counts{
		PubMed:  len(run.out.PubMed),
		BioRxiv: len(run.out.BioRxiv),
		MedRxiv: len(run.out.MedRxiv),
	}
	data, err := report.PDFBytes(run.out.Papers, run.out.Categories, counts,
		run.req.From.Format(dateFmt), run.req.To.Format(dateFmt))
	if err != nil {
		s.logger.Error().Err(err).Msg("building summary document")
		writeError(w, http.StatusInternalServerError, "building summary document")
		return
	}
	serveDownload(w, report.PDFFilename(run.req.To), "application/pdf", data)
}

func (s *Server) lastRun() (*lastRun, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last, s.last != nil
}

// parseWindow validates the request dates: both present, YYYY-MM-DD, and
// start not after end.
func parseWindow(start, end string) (search.Request, error) {
	if start == "" || end == "" {
		return search.Request{}, fmt.Errorf("start and end dates are required")
	}
	from, err := time.Parse(dateFmt, start)
	if err != nil {
		return search.Request{}, fmt.Errorf("invalid start date %q: want YYYY-MM-DD", start)
	}
	to, err := time.Parse(dateFmt, end)
	if err != nil {
		return search.Request{}, fmt.Errorf("invalid end date %q: want YYYY-MM-DD", end)
	}
	if from.After(to) {
		return search.Request{}, fmt.Errorf("start date %s is after end date %s", start, end)
	}
	return search.Request{From: from, To: to}, nil
}

func toResponse(req search.Request, out search.Output) searchResponse {
	return searchResponse{
		Window: windowJSON{
			Start: req.From.Format(dateFmt),
			End:   req.To.Format(dateFmt),
		},
		Counts: countsJSON{
			Total:   len(out.Papers),
			PubMed:  len(out.PubMed),
			BioRxiv: len(out.BioRxiv),
			MedRxiv: len(out.MedRxiv),
		},
		Papers:     out.Papers,
		Categories: out.Categories,
		Warnings:   out.Warnings,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func serveDownload(w http.ResponseWriter, filename, contentType string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Write(data)
}
