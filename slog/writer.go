package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/diskreport"
)

// Ensure LoggingReportWriter implements diskreport.ReportWriter.
var _ diskreport.ReportWriter = (*LoggingReportWriter)(nil)

// LoggingReportWriter wraps a ReportWriter with logging.
type LoggingReportWriter struct {
	next   diskreport.ReportWriter
	logger *slog.Logger
}

// NewLoggingReportWriter creates a new LoggingReportWriter.
func NewLoggingReportWriter(next diskreport.ReportWriter, logger *slog.Logger) *LoggingReportWriter {
	return &LoggingReportWriter{next: next, logger: logger}
}

// WriteSpreadsheet delegates to the wrapped writer and logs the operation.
func (w *LoggingReportWriter) WriteSpreadsheet(records []*diskreport.DriveRecord, path string, errs []diskreport.ParseErrorEntry) (out string, err error) {
	defer func(begin time.Time) {
		w.logger.Info("write spreadsheet",
			"path", path,
			"count", len(records),
			"errors", len(errs),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return w.next.WriteSpreadsheet(records, path, errs)
}

// WriteDelimitedText delegates to the wrapped writer and logs the operation.
func (w *LoggingReportWriter) WriteDelimitedText(records []*diskreport.DriveRecord, path string) (out string, err error) {
	defer func(begin time.Time) {
		w.logger.Info("write delimited text",
			"path", path,
			"count", len(records),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return w.next.WriteDelimitedText(records, path)
}
