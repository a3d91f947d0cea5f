// Package plaintext parses fixed-width plain-text disk reports, such as
// those exported by Hard Disk Sentinel.
package plaintext

import (
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"github.com/fwojciec/diskreport"
)

// Ensure Parser implements diskreport.Parser at compile time.
var _ diskreport.Parser = (*Parser)(nil)

// Placeholder messages.
const (
	MsgNoBlocks = "No recognizable drive blocks found"
)

var (
	// blockStart matches a "Hard Disk Summary" header followed by its
	// separator line.
	blockStart = regexp.MustCompile(`(?im)^\s*Hard\s+Disk\s+Summary[ \t]*\n[-=\s]+\n`)

	// blankRun matches two or more consecutive blank lines.
	blankRun = regexp.MustCompile(`\n[ \t]*\n(?:[ \t]*\n)+`)
)

// Parser extracts one drive record per "Hard Disk Summary" block.
type Parser struct {
	decoder diskreport.TextDecoder
	logger  *slog.Logger
}

// NewParser creates a new Parser. A nil logger discards output.
func NewParser(decoder diskreport.TextDecoder, logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Parser{decoder: decoder, logger: logger}
}

// Parse implements diskreport.Parser.
func (p *Parser) Parse(path, fileName string) (records []*diskreport.DriveRecord) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("plain-text parse panic", "file", fileName, "panic", r)
			records = []*diskreport.DriveRecord{
				diskreport.NewPlaceholder(fileName, fmt.Sprintf("Parsing Error: %v", r)),
			}
		}
	}()

	data, err := os.ReadFile(path)
	if err != nil {
		return []*diskreport.DriveRecord{
			diskreport.NewPlaceholder(fileName, fmt.Sprintf("Parsing Error: %v", err)),
		}
	}

	decoded := p.decoder.Decode(data)
	if decoded.Lossy {
		p.logger.Warn("no encoding decoded cleanly, invalid bytes replaced",
			"file", fileName,
			"attempted", decoded.Attempted,
		)
	}

	for _, block := range SplitBlocks(decoded.Text) {
		f := diskreport.TextPatterns.Extract(block)
		if !f.HasDriveData() {
			continue
		}
		records = append(records, diskreport.NewDriveRecord(fileName, f))
	}

	if len(records) == 0 {
		p.logger.Warn("no drives parsed", "file", fileName, "encoding", decoded.Encoding)
		records = []*diskreport.DriveRecord{diskreport.NewPlaceholder(fileName, MsgNoBlocks)}
	}

	for _, r := range records {
		r.Encoding = decoded.Encoding
		r.EncodingsTried = decoded.Attempted
	}
	return records
}

// SplitBlocks splits a report into per-drive blocks. Each block starts at a
// "Hard Disk Summary" header; text before the first header is dropped.
// Without any header the text is split on runs of two or more blank lines.
func SplitBlocks(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	locs := blockStart.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return nonEmpty(blankRun.Split(text, -1))
	}

	blocks := make([]string, 0, len(locs))
	for i, loc := range locs {
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		blocks = append(blocks, text[loc[0]:end])
	}
	return nonEmpty(blocks)
}

// nonEmpty trims each part and drops empty ones.
func nonEmpty(parts []string) []string {
	var out []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
