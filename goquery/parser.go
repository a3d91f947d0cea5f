package goquery

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/diskreport"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Ensure Parser implements diskreport.Parser at compile time.
var _ diskreport.Parser = (*Parser)(nil)

// MsgNoBlocks is the placeholder message for reports without drive data.
const MsgNoBlocks = "No recognizable drive blocks found"

// sectionBoundaries mark the start of a drive section in flattened text.
var sectionBoundaries = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Hard\s*Disk\s*Serial\s*Number\s*[:\-]?`),
	regexp.MustCompile(`(?i)\bDrive\s+\d+`),
	regexp.MustCompile(`(?i)\bDisk\s+\d+`),
	regexp.MustCompile(`(?i)Hard\s*Disk\s+\d+`),
}

var blankLines = regexp.MustCompile(`\n\s*\n+`)

// Keywords used by the structural fallback.
var (
	sectionKeywords = []string{"serial number", "model id", "health"}
	classKeywords   = []string{"drive", "disk", "hard", "section", "block"}
	headingKeywords = []string{"disk", "drive", "hard"}
)

const headings = "h1, h2, h3, h4, h5, h6"

// Parser extracts drive records from HTML reports.
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

// Parse implements diskreport.Parser. The flattened document text is split
// at section markers first; only when that yields nothing does it fall back
// to searching the document tree for drive-like elements.
func (p *Parser) Parse(path, fileName string) (records []*diskreport.DriveRecord) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("html parse panic", "file", fileName, "panic", r)
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
	p.logger.Debug("decoded html report", "file", fileName, "encoding", decoded.Encoding)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(decoded.Text))
	if err != nil {
		records = []*diskreport.DriveRecord{
			diskreport.NewPlaceholder(fileName, fmt.Sprintf("Parsing Error: %v", err)),
		}
	} else {
		records = ParseText(FlattenText(doc.Selection), fileName)
		if len(records) == 0 {
			p.logger.Debug("text sections empty, trying document structure", "file", fileName)
			records = parseStructure(doc, fileName)
		}
		if len(records) == 0 {
			records = []*diskreport.DriveRecord{diskreport.NewPlaceholder(fileName, MsgNoBlocks)}
		}
	}

	for _, r := range records {
		r.Encoding = decoded.Encoding
		r.EncodingsTried = decoded.Attempted
	}
	return records
}

// ParseText extracts records from flattened report text, one per section
// holding a serial, model or health score.
func ParseText(text, fileName string) []*diskreport.DriveRecord {
	var records []*diskreport.DriveRecord
	for _, sec := range SplitSections(text) {
		f := diskreport.HTMLPatterns.Extract(sec)
		if !f.HasDriveData() {
			continue
		}
		records = append(records, diskreport.NewDriveRecord(fileName, f))
	}
	return records
}

// SplitSections splits text at every section boundary marker. Each section
// runs from its marker to the next one; text before the first marker is
// dropped. Without markers the text is split on blank lines.
func SplitSections(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	seen := make(map[int]struct{})
	var starts []int
	for _, re := range sectionBoundaries {
		for _, loc := range re.FindAllStringIndex(text, -1) {
			if _, ok := seen[loc[0]]; ok {
				continue
			}
			seen[loc[0]] = struct{}{}
			starts = append(starts, loc[0])
		}
	}

	if len(starts) == 0 {
		return nonEmpty(blankLines.Split(text, -1))
	}

	sort.Ints(starts)
	sections := make([]string, 0, len(starts))
	for i, start := range starts {
		end := len(text)
		if i+1 < len(starts) {
			end = starts[i+1]
		}
		sections = append(sections, text[start:end])
	}
	return nonEmpty(sections)
}

// parseStructure runs extraction over drive-like elements of the document
// and keeps only those yielding a serial.
func parseStructure(doc *goquery.Document, fileName string) []*diskreport.DriveRecord {
	var records []*diskreport.DriveRecord
	for _, sec := range findDriveSections(doc) {
		f := diskreport.HTMLPatterns.Extract(FlattenText(sec))
		if f.Serial == "" {
			continue
		}
		records = append(records, diskreport.NewDriveRecord(fileName, f))
	}
	return records
}

// findDriveSections returns candidate drive sections in priority order:
// keyword tables and drive-classed divs, then content under drive headings,
// then any container mentioning both serial number and model ID.
func findDriveSections(doc *goquery.Document) []*goquery.Selection {
	var sections []*goquery.Selection

	doc.Find("table").Each(func(_ int, s *goquery.Selection) {
		if containsAny(strings.ToLower(s.Text()), sectionKeywords) {
			sections = append(sections, s)
		}
	})

	doc.Find("div[class]").Each(func(_ int, s *goquery.Selection) {
		class, _ := s.Attr("class")
		if !containsAny(strings.ToLower(class), classKeywords) {
			return
		}
		if containsAny(strings.ToLower(s.Text()), sectionKeywords) {
			sections = append(sections, s)
		}
	})

	if len(sections) == 0 {
		doc.Find(headings).Each(func(_ int, h *goquery.Selection) {
			if !containsAny(strings.ToLower(h.Text()), headingKeywords) {
				return
			}
			if content := h.NextUntil(headings); content.Length() > 0 {
				sections = append(sections, content)
			}
		})
	}

	if len(sections) == 0 {
		doc.Find("div, section, article, main").Each(func(_ int, s *goquery.Selection) {
			text := strings.ToLower(s.Text())
			if strings.Contains(text, "hard disk serial number") && strings.Contains(text, "model id") {
				sections = append(sections, s)
			}
		})
	}

	return sections
}

// FlattenText returns the text of every node in the selection, one text
// node per line. Script, style and comment content is skipped.
func FlattenText(s *goquery.Selection) string {
	var buf bytes.Buffer
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			buf.WriteString(n.Data)
			buf.WriteByte('\n')
			return
		case html.CommentNode:
			return
		case html.ElementNode:
			switch n.DataAtom {
			case atom.Script, atom.Style, atom.Noscript, atom.Template:
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range s.Nodes {
		walk(n)
	}
	return buf.String()
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
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
