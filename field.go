package diskreport

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// FieldKind names a drive attribute recovered from report text.
type FieldKind string

const (
	FieldSerial       FieldKind = "serial"
	FieldModel        FieldKind = "model"
	FieldVendorInfo   FieldKind = "vendor_info"
	FieldHealth       FieldKind = "health"
	FieldGrownDefects FieldKind = "grown_defects"
	FieldReallocated  FieldKind = "reallocated"
)

// FieldKinds lists every field kind in extraction order.
var FieldKinds = []FieldKind{
	FieldSerial,
	FieldModel,
	FieldVendorInfo,
	FieldHealth,
	FieldGrownDefects,
	FieldReallocated,
}

// Pattern is one labeled candidate in a cascade. Re must have exactly one
// capturing group holding the value.
type Pattern struct {
	Label string
	Re    *regexp.Regexp
}

// NewPattern compiles expr into a Pattern. It panics on invalid expressions
// and is meant for package-level pattern tables.
func NewPattern(label, expr string) Pattern {
	return Pattern{Label: label, Re: regexp.MustCompile(expr)}
}

// Cascade is an ordered list of patterns, most specific label first.
type Cascade []Pattern

// Match is the result of a successful cascade lookup.
type Match struct {
	Label string
	Value string
}

// Find returns the first pattern in the cascade that matches text.
func (c Cascade) Find(text string) (Match, bool) {
	for _, p := range c {
		m := p.Re.FindStringSubmatch(text)
		if m == nil || len(m) < 2 {
			continue
		}
		return Match{Label: p.Label, Value: strings.TrimSpace(m[1])}, true
	}
	return Match{}, false
}

// FirstMatch returns the trimmed value captured by the first matching
// pattern, or "" when none match.
func (c Cascade) FirstMatch(text string) string {
	m, _ := c.Find(text)
	return m.Value
}

// PatternSet holds one cascade per field kind. A missing kind never matches.
type PatternSet map[FieldKind]Cascade

// Fields holds the normalized values recovered from one drive section.
type Fields struct {
	Serial       string
	Model        string
	VendorInfo   string
	Health       *int
	GrownDefects int
	Reallocated  int
}

// HasDriveData reports whether serial, model or health was recovered.
func (f Fields) HasDriveData() bool {
	return f.Serial != "" || f.Model != "" || f.Health != nil
}

// Extract runs every cascade over text and normalizes the results.
func (s PatternSet) Extract(text string) Fields {
	return Fields{
		Serial:       NormalizeSerial(s[FieldSerial].FirstMatch(text)),
		Model:        CleanSingleLine(s[FieldModel].FirstMatch(text)),
		VendorInfo:   CleanSingleLine(s[FieldVendorInfo].FirstMatch(text)),
		Health:       ParseHealth(s[FieldHealth].FirstMatch(text)),
		GrownDefects: ParseCount(s[FieldGrownDefects].FirstMatch(text)),
		Reallocated:  ParseCount(s[FieldReallocated].FirstMatch(text)),
	}
}

// ParseHealth converts captured text to a health score. It returns nil when
// the text is not a base-10 integer in 0..100, since 0 is a real score.
func ParseHealth(s string) *int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 || n > 100 {
		return nil
	}
	return &n
}

// ParseCount converts captured text to a defect or sector count, returning
// 0 when the text is not a non-negative base-10 integer.
func ParseCount(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// CleanSingleLine keeps the first line of s and collapses whitespace runs to
// a single space.
func CleanSingleLine(s string) string {
	if i := strings.IndexAny(s, "\r\n"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}

// Serial normalization constants.
const (
	minTrimLen      = 12
	minRepeatGroup  = 2
	maxRepeatGroup  = 4
	leakedSizeToken = "TOTALSIZE"
)

// NormalizeSerial removes whitespace, upper-cases, trims a repeated
// rendering artifact from the tail and drops the leaked TOTALSIZE token.
func NormalizeSerial(raw string) string {
	s := strings.ToUpper(strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw))
	if s == "" {
		return ""
	}
	s = TrimRepeatedSuffix(s)
	return strings.ReplaceAll(s, leakedSizeToken, "")
}

// TrimRepeatedSuffix removes a tail made of one 2-4 character alphanumeric
// group repeated at least twice, e.g. ABCD1234ECE4ECE4 becomes ABCD1234.
// Serials shorter than 12 characters are returned unchanged, as is a serial
// that would be trimmed to nothing. The leftmost qualifying tail wins and,
// at the same start, the longest group.
func TrimRepeatedSuffix(s string) string {
	if len(s) < minTrimLen {
		return s
	}
	for start := 0; start <= len(s)-2*minRepeatGroup; start++ {
		tail := s[start:]
		for size := maxRepeatGroup; size >= minRepeatGroup; size-- {
			if isRepeatedGroup(tail, size) {
				if start == 0 {
					return s
				}
				return s[:start]
			}
		}
	}
	return s
}

// isRepeatedGroup reports whether tail is an alphanumeric group of the given
// size repeated at least twice.
func isRepeatedGroup(tail string, size int) bool {
	if len(tail) < 2*size || len(tail)%size != 0 {
		return false
	}
	group := tail[:size]
	for i := 0; i < size; i++ {
		c := group[i]
		if !(c >= 'A' && c <= 'Z' || c >= '0' && c <= '9') {
			return false
		}
	}
	return strings.Repeat(group, len(tail)/size) == tail
}
