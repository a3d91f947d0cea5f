// Package excelize writes drive summaries as XLSX workbooks using
// github.com/xuri/excelize/v2, with a CSV twin of the summary sheet.
package excelize

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/diskreport"
	"github.com/xuri/excelize/v2"
)

// Ensure Writer implements diskreport.ReportWriter at compile time.
var _ diskreport.ReportWriter = (*Writer)(nil)

// Sheet names.
const (
	SummarySheet = "Drive Summary"
	ErrorsSheet  = "Errors"
)

// DefaultMaxColumnWidth caps auto-sized column widths.
const DefaultMaxColumnWidth = 50

// Health band fill colors.
const (
	ColorGood = "90EE90"
	ColorFair = "FFFF99"
	ColorPoor = "FFB6C1"

	headerColor = "D9E1F2"
)

// healthColumn is the 1-based column of the health score.
var healthColumn = indexOf(diskreport.Columns, "Health Score") + 1

// Writer renders drive records to XLSX and CSV files.
type Writer struct {
	// MaxColumnWidth caps column widths. Zero means DefaultMaxColumnWidth.
	MaxColumnWidth int
}

// NewWriter creates a Writer with the default width cap.
func NewWriter() *Writer {
	return &Writer{MaxColumnWidth: DefaultMaxColumnWidth}
}

// WriteSpreadsheet implements diskreport.ReportWriter.
func (w *Writer) WriteSpreadsheet(records []*diskreport.DriveRecord, path string, errs []diskreport.ParseErrorEntry) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{headerColor}},
	})
	if err != nil {
		return "", fmt.Errorf("header style: %w", err)
	}

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return "", fmt.Errorf("rename sheet: %w", err)
	}

	rows := make([][]any, 0, len(records))
	for _, r := range records {
		rows = append(rows, summaryRow(r))
	}
	if err := w.writeTable(f, SummarySheet, diskreport.Columns, rows, header); err != nil {
		return "", err
	}
	if err := colorHealth(f, records); err != nil {
		return "", err
	}

	if len(errs) > 0 {
		if _, err := f.NewSheet(ErrorsSheet); err != nil {
			return "", fmt.Errorf("create errors sheet: %w", err)
		}
		rows := make([][]any, 0, len(errs))
		for _, e := range errs {
			rows = append(rows, []any{e.FileName, e.ErrorMessage, strings.Join(e.EncodingsTried, ", ")})
		}
		if err := w.writeTable(f, ErrorsSheet, diskreport.ErrorColumns, rows, header); err != nil {
			return "", err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save workbook: %w", err)
	}
	return path, nil
}

// WriteDelimitedText implements diskreport.ReportWriter.
func (w *Writer) WriteDelimitedText(records []*diskreport.DriveRecord, path string) (string, error) {
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create csv: %w", err)
	}
	defer file.Close()

	cw := csv.NewWriter(file)
	if err := cw.Write(diskreport.Columns); err != nil {
		return "", fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range records {
		if err := cw.Write(r.Strings()); err != nil {
			return "", fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return "", fmt.Errorf("flush csv: %w", err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("close csv: %w", err)
	}
	return path, nil
}

// writeTable writes a styled header row, the data rows, a frozen header
// pane and capped column widths.
func (w *Writer) writeTable(f *excelize.File, sheet string, columns []string, rows [][]any, headerStyle int) error {
	if err := f.SetSheetRow(sheet, "A1", &columns); err != nil {
		return fmt.Errorf("write %s header: %w", sheet, err)
	}
	last, err := excelize.CoordinatesToCellName(len(columns), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("style %s header: %w", sheet, err)
	}

	widths := make([]int, len(columns))
	for i, c := range columns {
		widths[i] = utf8.RuneCountInString(c)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		for j, v := range row {
			if n := utf8.RuneCountInString(fmt.Sprint(v)); n > widths[j] {
				widths[j] = n
			}
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+2, err)
		}
	}

	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freeze %s header: %w", sheet, err)
	}

	for i, n := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, col, col, float64(w.columnWidth(n))); err != nil {
			return fmt.Errorf("size %s column %s: %w", sheet, col, err)
		}
	}
	return nil
}

func (w *Writer) columnWidth(contentLen int) int {
	limit := w.MaxColumnWidth
	if limit <= 0 {
		limit = DefaultMaxColumnWidth
	}
	return min(contentLen+2, limit)
}

// colorHealth fills each health score cell with its band color. Cells with
// no score stay unstyled.
func colorHealth(f *excelize.File, records []*diskreport.DriveRecord) error {
	styles := make(map[diskreport.HealthBand]int, 3)
	for band, color := range map[diskreport.HealthBand]string{
		diskreport.HealthGood: ColorGood,
		diskreport.HealthFair: ColorFair,
		diskreport.HealthPoor: ColorPoor,
	} {
		id, err := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}},
		})
		if err != nil {
			return fmt.Errorf("health style: %w", err)
		}
		styles[band] = id
	}

	for i, r := range records {
		id, ok := styles[diskreport.BandFor(r.HealthScore)]
		if !ok {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(healthColumn, i+2)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(SummarySheet, cell, cell, id); err != nil {
			return fmt.Errorf("style health cell %s: %w", cell, err)
		}
	}
	return nil
}

// summaryRow projects a record onto Columns, keeping counts numeric. A nil
// health score becomes an empty cell.
func summaryRow(r *diskreport.DriveRecord) []any {
	var health any = ""
	if r.HealthScore != nil {
		health = *r.HealthScore
	}
	return []any{
		r.LabelSerial,
		r.VpdSerial,
		r.ModelNumber,
		r.VendorInformation,
		string(r.Vendor),
		r.FileName,
		health,
		r.AllocatedSections,
		r.GrownDefects,
	}
}

func indexOf(s []string, v string) int {
	for i, x := range s {
		if x == v {
			return i
		}
	}
	return -1
}
