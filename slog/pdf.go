package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/diskreport"
)

// Ensure LoggingPDFTextExtractor implements diskreport.PDFTextExtractor.
var _ diskreport.PDFTextExtractor = (*LoggingPDFTextExtractor)(nil)

// LoggingPDFTextExtractor wraps a PDFTextExtractor with debug logging.
type LoggingPDFTextExtractor struct {
	next   diskreport.PDFTextExtractor
	logger *slog.Logger
}

// NewLoggingPDFTextExtractor creates a new LoggingPDFTextExtractor.
func NewLoggingPDFTextExtractor(next diskreport.PDFTextExtractor, logger *slog.Logger) *LoggingPDFTextExtractor {
	return &LoggingPDFTextExtractor{next: next, logger: logger}
}

// Name returns the wrapped extractor's name.
func (e *LoggingPDFTextExtractor) Name() string {
	return e.next.Name()
}

// ExtractText delegates to the wrapped extractor and logs the operation.
func (e *LoggingPDFTextExtractor) ExtractText(path string) (text string, err error) {
	defer func(begin time.Time) {
		e.logger.Debug("pdf text extraction",
			"backend", e.next.Name(),
			"path", path,
			"chars", len(text),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.ExtractText(path)
}
