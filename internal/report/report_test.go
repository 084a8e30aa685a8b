// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pkd-search/pkg/types"
)

func TestSummary(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		maxWords int
		want     string
	}{
		{"short title unchanged", "PKD1 dosage effects", 7, "PKD1 dosage effects"},
		{"exactly max unchanged", "one two three", 3, "one two three"},
		{
			"long title truncated with ellipsis",
			"Single-cell analysis of cyst-lining epithelium reveals metabolic reprogramming in ADPKD",
			7,
			"Single-cell analysis of cyst-lining epithelium reveals...",
		},
		{
			"trailing punctuation stripped before ellipsis",
			"Cyst growth dynamics, imaging, and outcomes, revisited again now",
			5,
			"Cyst growth dynamics, imaging...",
		},
		{"empty", "", 7, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Summary(tt.title, tt.maxWords))
		})
	}
}

func TestKeyFindings(t *testing.T) {
	// Long titles lose stop words.
	got := KeyFindings("The role of polycystin in the regulation of calcium signaling and ciliary mechanotransduction pathways in renal epithelium", 20)
	assert.NotContains(t, " "+got+" ", " the ")
	assert.NotContains(t, " "+got+" ", " of ")
	assert.Contains(t, got, "polycystin")

	// Short titles keep their stop words rather than degrade to fragments.
	assert.Equal(t, "The ADPKD story", KeyFindings("The ADPKD story", 20))

	// Colons become spaces.
	assert.Equal(t, "ADPKD progress report", KeyFindings("ADPKD: progress report", 20))
}

func TestLastAuthorName(t *testing.T) {
	tests := []struct {
		name    string
		authors string
		want    string
	}{
		{"comma separated", "Smith J, Lee K, Brown T", "Brown"},
		{"semicolon separated", "Doe, Jane; Roe, Richard", "Roe,"},
		{"single author", "Smith J", "Smith"},
		{"trailing separator", "Smith J, Lee K, ", "Lee"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LastAuthorName(tt.authors))
		})
	}
}

func TestFilenames(t *testing.T) {
	end, _ := time.Parse("2006-01-02", "2026-02-08")
	assert.Equal(t, "20260208-PKD-Literature-Data.xlsx", ExcelFilename(end))
	assert.Equal(t, "20260208-PKD-Literature-Summary.pdf", PDFFilename(end))
}

func testPapers() []types.Paper {
	return []types.Paper{
		{
			PMID:    "100",
			Title:   "Tolvaptan treatment outcomes in a national ADPKD cohort",
			Authors: "Smith J, Lee K",
			Journal: "Kidney Int",
			Year:    "2026",
			DOI:     "10.1000/ki.100",
			Source:  types.SourcePubMed,
		},
		{
			Title:   "CRISPR mouse model of renal cyst formation",
			Authors: "Doe, Jane; Roe, Richard",
			Journal: "biorxiv (preprint)",
			Year:    "2026",
			DOI:     "10.1101/2026.02.03.123456",
			Source:  types.SourceBioRxiv,
		},
	}
}

func TestBuildWorkbook(t *testing.T) {
	papers := testPapers()
	f, err := BuildWorkbook(papers)
	require.NoError(t, err)
	defer f.Close()

	require.Equal(t, "PKD Literature", f.GetSheetName(0))

	got, err := f.GetCellValue("PKD Literature", "D1")
	require.NoError(t, err)
	assert.Equal(t, "Summary", got)

	got, err = f.GetCellValue("PKD Literature", "F2")
	require.NoError(t, err)
	assert.Equal(t, "Kidney Int", got)

	got, err = f.GetCellValue("PKD Literature", "E3")
	require.NoError(t, err)
	assert.Equal(t, "Roe,", got)

	got, err = f.GetCellValue("PKD Literature", "J2")
	require.NoError(t, err)
	assert.Equal(t, "https://doi.org/10.1000/ki.100", got)

	has, target, err := f.GetCellHyperLink("PKD Literature", "J2")
	require.NoError(t, err)
	assert.True(t, has)
	assert.Equal(t, "https://doi.org/10.1000/ki.100", target)
}

func TestExcelBytes(t *testing.T) {
	data, err := ExcelBytes(testPapers())
	require.NoError(t, err)
	assert.NotEmpty(t, data)
	// XLSX files are zip archives.
	assert.Equal(t, []byte{'P', 'K'}, data[:2])
}

func TestPDFBytes(t *testing.T) {
	papers := testPapers()
	categories := map[types.Category][]types.Paper{}
	for _, c := range types.Categories() {
		categories[c] = []types.Paper{}
	}
	categories[types.CategoryTherapeutics] = papers[:1]
	categories[types.CategoryCrossSpecies] = papers[1:]

	data, err := PDFBytes(papers, categories, Counts{PubMed: 1, BioRxiv: 1}, "2026-02-01", "2026-02-08")
	require.NoError(t, err)
	assert.NotEmpty(t, data)
	assert.Equal(t, []byte("%PDF"), data[:4])
}
