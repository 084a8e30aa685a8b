package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pkd-search/internal/report"
	"github.com/pdiddy/pkd-search/internal/search"
	"github.com/pdiddy/pkd-search/pkg/types"
)

const dateFmt = "2006-01-02"

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Run one literature sweep and write reports",
	Long: `Search queries PubMed, bioRxiv, and medRxiv for polycystic kidney disease
papers published in the given date window, deduplicates them across
sources, categorizes them, and writes the Excel data file and PDF summary
to the output directory. The window defaults to the trailing seven days.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().String("start", "", "window start date (YYYY-MM-DD, default: 7 days ago)")
	searchCmd.Flags().String("end", "", "window end date (YYYY-MM-DD, default: today)")
	searchCmd.Flags().String("output", "", "directory for report files (default: config report.output_dir)")
	searchCmd.Flags().Bool("json", false, "print results as JSON instead of writing reports")
	searchCmd.Flags().String("save", "", "also write the raw results to this YAML file")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	startFlag, _ := cmd.Flags().GetString("start")
	endFlag, _ := cmd.Flags().GetString("end")
	outputFlag, _ := cmd.Flags().GetString("output")
	asJSON, _ := cmd.Flags().GetBool("json")
	savePath, _ := cmd.Flags().GetString("save")

	req, err := resolveWindow(startFlag, endFlag, 7)
	if err != nil {
		return err
	}

	cfg := loadConfig()
	if outputFlag != "" {
		cfg.Report.OutputDir = outputFlag
	}

	out := search.Search(cmd.Context(), req, search.DefaultBackends(cfg.Search), cfg.Search, cmd.ErrOrStderr())

	if savePath != "" {
		if err := search.WriteResultFile(savePath, req, out); err != nil {
			return fmt.Errorf("saving results: %w", err)
		}
	}

	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	printRunSummary(cmd, req, out)
	return writeReports(cmd, cfg.Report.OutputDir, req, out)
}

// resolveWindow fills in missing dates with a trailing window ending today.
func resolveWindow(start, end string, windowDays int) (search.Request, error) {
	var req search.Request
	if end == "" {
		req.To = time.Now()
	} else {
		to, err := time.Parse(dateFmt, end)
		if err != nil {
			return req, fmt.Errorf("invalid end date %q: want YYYY-MM-DD", end)
		}
		req.To = to
	}
	if start == "" {
		req.From = req.To.AddDate(0, 0, -windowDays)
	} else {
		from, err := time.Parse(dateFmt, start)
		if err != nil {
			return req, fmt.Errorf("invalid start date %q: want YYYY-MM-DD", start)
		}
		req.From = from
	}
	if req.From.After(req.To) {
		return req, fmt.Errorf("start date %s is after end date %s",
			req.From.Format(dateFmt), req.To.Format(dateFmt))
	}
	return req, nil
}

func printRunSummary(cmd *cobra.Command, req search.Request, out search.Output) {
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "PKD literature %s to %s\n", req.From.Format(dateFmt), req.To.Format(dateFmt))
	fmt.Fprintf(w, "  total:   %d\n", len(out.Papers))
	fmt.Fprintf(w, "  pubmed:  %d\n", len(out.PubMed))
	fmt.Fprintf(w, "  biorxiv: %d\n", len(out.BioRxiv))
	fmt.Fprintf(w, "  medrxiv: %d\n", len(out.MedRxiv))
	fmt.Fprintln(w, "Categories:")
	for _, c := range types.Categories() {
		fmt.Fprintf(w, "  %-16s %d\n", c, len(out.Categories[c]))
	}
}

func writeReports(cmd *cobra.Command, outputDir string, req search.Request, out search.Output) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	excelPath := filepath.Join(outputDir, report.ExcelFilename(req.To))
	if err := report.WriteExcel(excelPath, out.Papers); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Wrote", excelPath)

	counts := report.Counts{
		PubMed:  len(out.PubMed),
		BioRxiv: len(out.BioRxiv),
		MedRxiv: len(out.MedRxiv),
	}
	pdfPath := filepath.Join(outputDir, report.PDFFilename(req.To))
	if err := report.WritePDF(pdfPath, out.Papers, out.Categories, counts,
		req.From.Format(dateFmt), req.To.Format(dateFmt)); err != nil {
		return fmt.Errorf("writing summary document: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Wrote", pdfPath)
	return nil
}
