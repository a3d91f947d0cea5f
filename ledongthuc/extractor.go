// Package ledongthuc extracts PDF text with github.com/ledongthuc/pdf,
// which decodes glyphs through each font's encoding.
package ledongthuc

import (
	"fmt"
	"math"
	"strings"

	"github.com/fwojciec/diskreport"
	lpdf "github.com/ledongthuc/pdf"
)

// Ensure Extractor implements diskreport.PDFTextExtractor at compile time.
var _ diskreport.PDFTextExtractor = (*Extractor)(nil)

// lineTolerance is the vertical distance under which two glyphs are
// considered to be on the same line.
const lineTolerance = 2.0

// Extractor extracts text page by page, rebuilding lines from glyph
// positions.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Name implements diskreport.PDFTextExtractor.
func (e *Extractor) Name() string {
	return "ledongthuc"
}

// ExtractText implements diskreport.PDFTextExtractor. The library panics on
// some malformed documents; panics are returned as errors.
func (e *Extractor) ExtractText(path string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("pdf reader panic: %v", r)
		}
	}()

	f, r, err := lpdf.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var pages []string
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		if s := pageText(page.Content().Text); s != "" {
			pages = append(pages, s)
		}
	}
	return strings.Join(pages, "\n"), nil
}

// pageText joins glyph runs in content order, starting a new line whenever
// the baseline moves.
func pageText(items []lpdf.Text) string {
	var sb strings.Builder
	var lastY float64
	for i, t := range items {
		if i > 0 && math.Abs(t.Y-lastY) > lineTolerance {
			sb.WriteByte('\n')
		}
		sb.WriteString(t.S)
		lastY = t.Y
	}
	return strings.TrimSpace(sb.String())
}
