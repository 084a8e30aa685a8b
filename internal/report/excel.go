// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/pkd-search/pkg/types"
)

const sheetName = "PKD Literature"

// excelColumns maps column letters to widths, matching the review team's
// established workbook layout (blank spacer columns included).
var excelColumns = []struct {
	col   string
	width float64
}{
	{"A", 5}, {"B", 5}, {"C", 5},
	{"D", 35}, {"E", 15}, {"F", 25}, {"G", 60},
	{"H", 5}, {"I", 5}, {"J", 45},
}

var excelHeaders = map[string]string{
	"D": "Summary",
	"E": "Last Author",
	"F": "Journal",
	"G": "Key Findings",
	"J": "Link",
}

// BuildWorkbook renders papers into an in-memory workbook: one row per
// paper with a condensed summary, last author, journal, key findings, and
// a hyperlinked DOI/PubMed URL.
func BuildWorkbook(papers []types.Paper) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return nil, fmt.Errorf("naming sheet: %w", err)
	}

	for _, c := range excelColumns {
		if err := f.SetColWidth(sheetName, c.col, c.col, c.width); err != nil {
			return nil, fmt.Errorf("setting column width: %w", err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"366092"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF", Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("creating header style: %w", err)
	}
	linkStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Color: "0563C1", Underline: "single"},
	})
	if err != nil {
		return nil, fmt.Errorf("creating link style: %w", err)
	}

	for col, header := range excelHeaders {
		cell := col + "1"
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return nil, fmt.Errorf("writing header %s: %w", header, err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			return nil, fmt.Errorf("styling header %s: %w", header, err)
		}
	}

	for i, p := range papers {
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), Summary(p.Title, 7))
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), LastAuthorName(p.Authors))
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), p.Journal)
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), KeyFindings(p.Title, 20))

		if link := p.Link(); link != "" {
			cell := fmt.Sprintf("J%d", row)
			f.SetCellValue(sheetName, cell, link)
			if err := f.SetCellHyperLink(sheetName, cell, link, "External"); err != nil {
				return nil, fmt.Errorf("linking row %d: %w", row, err)
			}
			f.SetCellStyle(sheetName, cell, cell, linkStyle)
		}
	}

	return f, nil
}

// WriteExcel writes the workbook for papers to path.
func WriteExcel(path string, papers []types.Paper) error {
	f, err := BuildWorkbook(papers)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.SaveAs(path)
}

// ExcelBytes returns the workbook for papers as raw bytes, for HTTP
// downloads.
func ExcelBytes(papers []types.Paper) ([]byte, error) {
	f, err := BuildWorkbook(papers)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
