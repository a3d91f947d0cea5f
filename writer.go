package diskreport

// ReportWriter renders drive records into output artifacts.
type ReportWriter interface {
	// WriteSpreadsheet writes a workbook with a "Drive Summary" sheet and,
	// when errs is non-empty, an "Errors" sheet. Returns the written path.
	WriteSpreadsheet(records []*DriveRecord, path string, errs []ParseErrorEntry) (string, error)

	// WriteDelimitedText writes the drive summary as comma-separated text.
	// Errors are never included. Returns the written path.
	WriteDelimitedText(records []*DriveRecord, path string) (string, error)
}
