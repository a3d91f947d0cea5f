// Package slog provides logging decorators for the domain interfaces.
package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/diskreport"
)

// Ensure LoggingParser implements diskreport.Parser.
var _ diskreport.Parser = (*LoggingParser)(nil)

// LoggingParser wraps a Parser with logging.
type LoggingParser struct {
	next   diskreport.Parser
	logger *slog.Logger
}

// NewLoggingParser creates a new LoggingParser.
func NewLoggingParser(next diskreport.Parser, logger *slog.Logger) *LoggingParser {
	return &LoggingParser{next: next, logger: logger}
}

// Parse delegates to the wrapped parser and logs the outcome. Files that
// only yield a placeholder are logged at warn level.
func (p *LoggingParser) Parse(path, fileName string) (records []*diskreport.DriveRecord) {
	defer func(begin time.Time) {
		if len(records) == 1 && records[0].IsPlaceholder() {
			p.logger.Warn("parse report",
				"file", fileName,
				"count", 0,
				"duration", time.Since(begin),
				"reason", records[0].ParsingError,
			)
			return
		}
		p.logger.Info("parse report",
			"file", fileName,
			"count", len(records),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return p.next.Parse(path, fileName)
}
