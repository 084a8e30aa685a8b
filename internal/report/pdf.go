// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"bytes"
	"fmt"
	"os"

	"github.com/go-pdf/fpdf"

	"github.com/pdiddy/pkd-search/pkg/types"
)

// Counts carries the per-source "as found" totals shown in the summary
// table. They are pre-dedup counts, so they may sum to more than the paper
// list length.
type Counts struct {
	PubMed  int
	BioRxiv int
	MedRxiv int
}

// notableSections selects which category buckets get a highlights section
// and how many entries each shows.
var notableSections = []struct {
	category types.Category
	label    string
	limit    int
}{
	{types.CategoryMetabolism, "METABOLISM OR MITOCHONDRIA:", 3},
	{types.CategoryTherapeutics, "THERAPEUTICS:", 4},
	{types.CategoryCrossSpecies, "CROSS-SPECIES:", 4},
	{types.CategoryDataset, "NEW DATA SETS:", 3},
}

// BuildPDF renders the summary document: title, search period, per-source
// count table, notable findings by category, and the numbered complete
// paper list with PMID/DOI links.
func BuildPDF(papers []types.Paper, categories map[types.Category][]types.Paper, counts Counts, from, to string) *fpdf.Fpdf {
	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetMargins(72, 72, 72)
	pdf.SetAutoPageBreak(true, 18)
	pdf.AddPage()

	// Title block.
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetTextColor(31, 71, 136)
	pdf.MultiCell(0, 22, "POLYCYSTIC KIDNEY DISEASE LITERATURE REVIEW", "", "C", false)
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(0, 0, 0)
	pdf.MultiCell(0, 14, fmt.Sprintf("Search Period: %s to %s", from, to), "", "C", false)
	pdf.Ln(20)

	sectionHeading(pdf, "SEARCH SUMMARY")
	summaryRows := [][2]string{
		{"PubMed Articles:", fmt.Sprintf("%d", counts.PubMed)},
		{"bioRxiv Preprints:", fmt.Sprintf("%d", counts.BioRxiv)},
		{"medRxiv Preprints:", fmt.Sprintf("%d", counts.MedRxiv)},
		{"Total Papers:", fmt.Sprintf("%d", len(papers))},
		{"Date Range:", fmt.Sprintf("%s to %s", from, to)},
	}
	pdf.SetFont("Helvetica", "", 10)
	for _, row := range summaryRows {
		pdf.SetFillColor(232, 239, 247)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(180, 24, row[0], "1", 0, "L", true, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(216, 24, row[1], "1", 1, "L", false, 0, "")
	}
	pdf.Ln(20)

	sectionHeading(pdf, "NOTABLE FINDINGS")
	for _, sec := range notableSections {
		bucket := categories[sec.category]
		if len(bucket) == 0 {
			continue
		}
		if len(bucket) > sec.limit {
			bucket = bucket[:sec.limit]
		}

		pdf.SetFont("Helvetica", "B", 12)
		pdf.SetTextColor(46, 92, 138)
		pdf.MultiCell(0, 16, sec.label, "", "L", false)
		for _, p := range bucket {
			pdf.SetFont("Helvetica", "", 10)
			pdf.SetTextColor(0, 0, 0)
			pdf.MultiCell(0, 14, "- "+p.Title, "", "L", false)
			citation(pdf, p)
		}
		pdf.Ln(10)
	}

	// Complete list on a fresh page.
	pdf.AddPage()
	sectionHeading(pdf, fmt.Sprintf("COMPLETE PAPER LIST (%d PAPERS)", len(papers)))
	for i, p := range papers {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetTextColor(0, 0, 0)
		pdf.MultiCell(0, 14, fmt.Sprintf("%d. %s", i+1, p.Title), "", "L", false)
		citation(pdf, p)
		pdf.Ln(6)
	}

	return pdf
}

// sectionHeading draws a bordered level-one heading.
func sectionHeading(pdf *fpdf.Fpdf, text string) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(31, 71, 136)
	pdf.SetDrawColor(31, 71, 136)
	pdf.CellFormat(0, 26, text, "1", 1, "L", false, 0, "")
	pdf.Ln(8)
}

// citation draws the indented authors/journal/year line plus a clickable
// PMID or DOI reference when the paper carries one.
func citation(pdf *fpdf.Fpdf, p types.Paper) {
	pdf.SetFont("Helvetica", "I", 9)
	pdf.SetTextColor(68, 68, 68)
	line := p.Authors
	if p.Journal != "" {
		line += ". " + p.Journal
	}
	if p.Year != "" {
		line += ". " + p.Year + "."
	}
	pdf.SetX(pdf.GetX() + 20)
	pdf.MultiCell(0, 12, line, "", "L", false)

	label := ""
	switch {
	case p.PMID != "":
		label = "PMID: " + p.PMID
	case p.DOI != "":
		label = "DOI: " + p.DOI
	}
	if label != "" {
		pdf.SetX(pdf.GetX() + 20)
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(5, 99, 193)
		pdf.WriteLinkString(12, label, p.Link())
		pdf.Ln(14)
	}
}

// WritePDF writes the summary document to path.
func WritePDF(path string, papers []types.Paper, categories map[types.Category][]types.Paper, counts Counts, from, to string) error {
	pdf := BuildPDF(papers, categories, counts, from, to)
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return pdf.Output(f)
}

// PDFBytes returns the summary document as raw bytes, for HTTP downloads.
func PDFBytes(papers []types.Paper, categories map[types.Category][]types.Paper, counts Counts, from, to string) ([]byte, error) {
	pdf := BuildPDF(papers, categories, counts, from, to)
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
