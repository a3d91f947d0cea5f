package mock

import "github.com/fwojciec/diskreport"

var _ diskreport.ReportWriter = (*ReportWriter)(nil)

// ReportWriter is a mock implementation of diskreport.ReportWriter.
type ReportWriter struct {
	WriteSpreadsheetFn   func(records []*diskreport.DriveRecord, path string, errs []diskreport.ParseErrorEntry) (string, error)
	WriteDelimitedTextFn func(records []*diskreport.DriveRecord, path string) (string, error)
}

func (w *ReportWriter) WriteSpreadsheet(records []*diskreport.DriveRecord, path string, errs []diskreport.ParseErrorEntry) (string, error) {
	return w.WriteSpreadsheetFn(records, path, errs)
}

func (w *ReportWriter) WriteDelimitedText(records []*diskreport.DriveRecord, path string) (string, error) {
	return w.WriteDelimitedTextFn(records, path)
}
