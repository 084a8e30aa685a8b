// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pkd-search/pkg/types"
)

// ResultFile is the on-disk representation of a completed search. Saving a
// run lets reports be regenerated later without re-querying the APIs.
type ResultFile struct {
	Window     ResultWindow                    `yaml:"window"`
	Summary    ResultSummary                   `yaml:"summary"`
	Papers     []types.Paper                   `yaml:"papers"`
	Categories map[types.Category][]types.Paper `yaml:"categories"`
}

// ResultWindow stores the searched date range.
type ResultWindow struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// ResultSummary stores per-source counts and run metadata.
type ResultSummary struct {
	Total     int       `yaml:"total"`
	PubMed    int       `yaml:"pubmed"`
	BioRxiv   int       `yaml:"biorxiv"`
	MedRxiv   int       `yaml:"medrxiv"`
	Warnings  []string  `yaml:"warnings,omitempty"`
	Timestamp time.Time `yaml:"timestamp"`
}

const dateFmt = "2006-01-02"

// WriteResultFile saves a search run to a YAML file.
func WriteResultFile(path string, req Request, out Output) error {
	rf := ResultFile{
		Window: ResultWindow{
			From: req.From.Format(dateFmt),
			To:   req.To.Format(dateFmt),
		},
		Summary: ResultSummary{
			Total:     len(out.Papers),
			PubMed:    len(out.PubMed),
			BioRxiv:   len(out.BioRxiv),
			MedRxiv:   len(out.MedRxiv),
			Warnings:  out.Warnings,
			Timestamp: time.Now(),
		},
		Papers:     out.Papers,
		Categories: out.Categories,
	}

	data, err := yaml.Marshal(&rf)
	if err != nil {
		return fmt.Errorf("marshaling result file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadResultFile loads a previously saved search run from disk.
func ReadResultFile(path string) (*ResultFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading result file: %w", err)
	}
	var rf ResultFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parsing result file: %w", err)
	}
	return &rf, nil
}
