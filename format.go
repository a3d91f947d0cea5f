package diskreport

import (
	"path/filepath"
	"strings"
)

// Format identifies a supported report format.
type Format string

const (
	FormatUnknown Format = ""
	FormatHTML    Format = "html"
	FormatText    Format = "txt"
	FormatPDF     Format = "pdf"
)

// DetectFormat returns the report format for a file name based on its
// extension, or FormatUnknown.
func DetectFormat(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".html", ".htm":
		return FormatHTML
	case ".txt":
		return FormatText
	case ".pdf":
		return FormatPDF
	default:
		return FormatUnknown
	}
}

// ParserSet dispatches files to the parser registered for their format.
type ParserSet map[Format]Parser

// ParserFor returns the parser for the file's format.
// Returns EUNSUPPORTED if no parser handles the file.
func (s ParserSet) ParserFor(name string) (Parser, Format, error) {
	format := DetectFormat(name)
	if format == FormatUnknown {
		return nil, format, Errorf(EUNSUPPORTED, "Unsupported file type: %s", name)
	}
	p, ok := s[format]
	if !ok || p == nil {
		return nil, format, Errorf(EUNSUPPORTED, "No parser registered for %s files", format)
	}
	return p, format, nil
}

// InputFile is one report file handed to the summarizer. Name is the
// display name recorded on drive records and error entries.
type InputFile struct {
	Path string
	Name string
}
