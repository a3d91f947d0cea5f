// Package fs provides the file system side of the summarizer: collecting
// report files from paths and archives, and naming output artifacts.
package fs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// defaultReportBase names outputs when no input file is known.
const defaultReportBase = "report"

// Outputs holds the artifact paths for one batch.
type Outputs struct {
	Spreadsheet string
	Delimited   string
}

// ReportBase returns the output name stem for an input file: its base name
// up to the first dot.
// Example: /in/host01.smart.txt → host01
func ReportBase(firstFile string) string {
	if firstFile == "" {
		return defaultReportBase
	}
	base, _, _ := strings.Cut(filepath.Base(firstFile), ".")
	if base == "" {
		return defaultReportBase
	}
	return base
}

// OutputPaths returns {base}_summary_{batchID}.xlsx and .csv inside dir,
// creating dir if it does not exist.
func OutputPaths(dir, firstFile, batchID string) (Outputs, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return Outputs{}, fmt.Errorf("create output directory: %w", err)
	}
	stem := fmt.Sprintf("%s_summary_%s", ReportBase(firstFile), batchID)
	return Outputs{
		Spreadsheet: filepath.Join(dir, stem+".xlsx"),
		Delimited:   filepath.Join(dir, stem+".csv"),
	}, nil
}
