package reporting

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"redemption-fee-lab/internal/domain"
	"redemption-fee-lab/internal/observability"
)

// Filenames WriteFiles produces inside the output directory.
const (
	ReportFilename    = "FEE_MODEL_REPORT.md"
	BreakevenFilename = "breakeven_curve.csv"
)

// SweepCSVName returns the per-variant sweep export filename,
// e.g. sweep_zero_loss.csv.
func SweepCSVName(m domain.LossModel) string {
	return fmt.Sprintf("sweep_%s.csv", strings.ToLower(string(m)))
}

// WriteFiles renders the report and writes its output files:
// - FEE_MODEL_REPORT.md
// - sweep_<variant>.csv per variant
// - breakeven_curve.csv
func WriteFiles(r *Report, outputDir string) error {
	// Ensure output directory exists
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output dir %s: %w", outputDir, err)
	}

	// 1. Write FEE_MODEL_REPORT.md
	reportMD := RenderMarkdown(r)
	reportPath := filepath.Join(outputDir, ReportFilename)
	if err := os.WriteFile(reportPath, []byte(reportMD), 0644); err != nil {
		return fmt.Errorf("write %s: %w", ReportFilename, err)
	}

	// 2. Write one full sweep table per variant
	for i := range r.Variants {
		v := &r.Variants[i]
		sweepCSV := RenderSweepCSV(v.Rows)
		sweepPath := filepath.Join(outputDir, SweepCSVName(v.LossModel))
		if err := os.WriteFile(sweepPath, []byte(sweepCSV), 0644); err != nil {
			return fmt.Errorf("write %s: %w", SweepCSVName(v.LossModel), err)
		}
	}

	// 3. Write breakeven_curve.csv
	curveCSV := RenderBreakevenCSV(r)
	curvePath := filepath.Join(outputDir, BreakevenFilename)
	if err := os.WriteFile(curvePath, []byte(curveCSV), 0644); err != nil {
		return fmt.Errorf("write %s: %w", BreakevenFilename, err)
	}

	observability.RecordReportGenerated()
	return nil
}
