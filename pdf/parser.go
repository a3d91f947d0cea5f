// Package pdf parses single-drive PDF diagnostic logs, such as SCSI
// Toolbox exports. Text extraction is delegated to an ordered list of
// backends.
package pdf

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/fwojciec/diskreport"
)

// Ensure Parser implements diskreport.Parser at compile time.
var _ diskreport.Parser = (*Parser)(nil)

// Placeholder messages.
const (
	MsgNoText   = "No text could be extracted from PDF"
	MsgNoFields = "No recognizable fields found"
)

// Parser treats each PDF as exactly one drive.
type Parser struct {
	extractors []diskreport.PDFTextExtractor
	logger     *slog.Logger
}

// NewParser creates a new Parser that tries each extractor in order. A nil
// logger discards output.
func NewParser(logger *slog.Logger, extractors ...diskreport.PDFTextExtractor) *Parser {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Parser{extractors: extractors, logger: logger}
}

// Parse implements diskreport.Parser.
func (p *Parser) Parse(path, fileName string) (records []*diskreport.DriveRecord) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("pdf parse panic", "file", fileName, "panic", r)
			records = []*diskreport.DriveRecord{
				diskreport.NewPlaceholder(fileName, fmt.Sprintf("Parsing Error: %v", r)),
			}
		}
	}()

	text, failures := p.extractText(path)
	if strings.TrimSpace(text) == "" {
		p.logger.Warn("no text extracted from pdf", "file", fileName)
		msg := MsgNoText
		if len(failures) > 0 {
			msg += " (" + strings.Join(failures, "; ") + ")"
		}
		return []*diskreport.DriveRecord{diskreport.NewPlaceholder(fileName, msg)}
	}

	f := diskreport.PDFPatterns.Extract(text)
	if !f.HasDriveData() {
		return []*diskreport.DriveRecord{diskreport.NewPlaceholder(fileName, MsgNoFields)}
	}
	return []*diskreport.DriveRecord{diskreport.NewDriveRecord(fileName, f)}
}

// extractText returns the text from the first extractor that produces any.
// Failures of earlier extractors are returned for the error log.
func (p *Parser) extractText(path string) (string, []string) {
	var failures []string
	for _, e := range p.extractors {
		text, err := safeExtract(e, path)
		if err != nil {
			p.logger.Info("pdf extractor failed, trying next", "extractor", e.Name(), "err", err)
			failures = append(failures, fmt.Sprintf("%s: %v", e.Name(), err))
			continue
		}
		if strings.TrimSpace(text) == "" {
			p.logger.Info("pdf extractor returned no text, trying next", "extractor", e.Name())
			continue
		}
		return text, failures
	}
	return "", failures
}

// safeExtract converts a panicking backend into an error.
func safeExtract(e diskreport.PDFTextExtractor, path string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return e.ExtractText(path)
}
