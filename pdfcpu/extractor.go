// Package pdfcpu extracts PDF text by interpreting page content streams
// read with pdfcpu.
package pdfcpu

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fwojciec/diskreport"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"golang.org/x/text/encoding/charmap"
)

// Ensure Extractor implements diskreport.PDFTextExtractor at compile time.
var _ diskreport.PDFTextExtractor = (*Extractor)(nil)

// Extractor reads text-showing operators from each page's content stream.
// It does not map glyphs through embedded font programs, so it suits
// generated reports using standard fonts.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Name implements diskreport.PDFTextExtractor.
func (e *Extractor) Name() string {
	return "pdfcpu"
}

// ExtractText implements diskreport.PDFTextExtractor.
func (e *Extractor) ExtractText(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	conf := model.NewDefaultConfiguration()
	ctx, err := api.ReadValidateAndOptimize(f, conf)
	if err != nil {
		return "", fmt.Errorf("pdfcpu read: %w", err)
	}

	var pages []string
	for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
		r, err := pdfcpu.ExtractPageContent(ctx, pageNr)
		if err != nil || r == nil {
			continue
		}
		data, err := io.ReadAll(r)
		if err != nil || len(data) == 0 {
			continue
		}
		if text := StreamText(data); text != "" {
			pages = append(pages, text)
		}
	}
	return strings.Join(pages, "\n"), nil
}

// StreamText returns the text shown by a content stream. Line breaks are
// emitted for T*, ' and " operators, for Td/TD/Tm moves that change the
// vertical position, and at the end of each text object.
func StreamText(data []byte) string {
	var sb strings.Builder
	var shown []string
	var operands []string

	newline := func() {
		s := sb.String()
		if s != "" && !strings.HasSuffix(s, "\n") {
			sb.WriteByte('\n')
		}
	}

	for i := 0; i < len(data); {
		c := data[i]
		switch {
		case c == '%':
			for i < len(data) && data[i] != '\n' && data[i] != '\r' {
				i++
			}
		case c == '/':
			i++
			for i < len(data) && !isDelimiter(data[i]) {
				i++
			}
		case c == '<' && i+1 < len(data) && data[i+1] == '<':
			i += 2
		case c == '(':
			s, n := readLiteral(data[i:])
			shown = append(shown, s)
			i += n
		case c == '<' && i+1 < len(data) && data[i+1] != '<':
			s, n := readHex(data[i:])
			shown = append(shown, s)
			i += n
		case isNumberStart(c):
			j := i + 1
			for j < len(data) && (isDigit(data[j]) || data[j] == '.') {
				j++
			}
			operands = append(operands, string(data[i:j]))
			i = j
		case isOperatorByte(c):
			j := i + 1
			for j < len(data) && isOperatorByte(data[j]) {
				j++
			}
			op := string(data[i:j])
			i = j

			switch op {
			case "Tj", "TJ":
				sb.WriteString(strings.Join(shown, ""))
			case "'", "\"":
				newline()
				sb.WriteString(strings.Join(shown, ""))
			case "T*", "ET":
				newline()
			case "Td", "TD":
				if len(operands) >= 2 && !isZero(operands[len(operands)-1]) {
					newline()
				} else if len(operands) >= 2 && sb.Len() > 0 {
					sb.WriteByte(' ')
				}
			case "Tm":
				newline()
			}
			shown = nil
			operands = nil
		default:
			i++
		}
	}
	return strings.TrimSpace(decodeWinAnsi(sb.String()))
}

// readLiteral reads a parenthesized string starting at data[0], handling
// escapes and balanced parentheses. It returns the decoded bytes and the
// number of input bytes consumed.
func readLiteral(data []byte) (string, int) {
	var sb strings.Builder
	depth := 0
	i := 0
	for ; i < len(data); i++ {
		c := data[i]
		switch {
		case c == '\\' && i+1 < len(data):
			i++
			switch e := data[i]; e {
			case 'n':
				sb.WriteByte('\n')
			case 'r':
				sb.WriteByte('\r')
			case 't':
				sb.WriteByte('\t')
			case 'b', 'f':
			case '\r', '\n':
			default:
				if e >= '0' && e <= '7' {
					val := int(e - '0')
					for k := 0; k < 2 && i+1 < len(data) && data[i+1] >= '0' && data[i+1] <= '7'; k++ {
						i++
						val = val*8 + int(data[i]-'0')
					}
					sb.WriteByte(byte(val))
				} else {
					sb.WriteByte(e)
				}
			}
		case c == '(':
			if depth > 0 {
				sb.WriteByte(c)
			}
			depth++
		case c == ')':
			depth--
			if depth == 0 {
				return sb.String(), i + 1
			}
			sb.WriteByte(c)
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String(), i
}

// readHex reads a hex string starting at data[0].
func readHex(data []byte) (string, int) {
	end := 1
	for end < len(data) && data[end] != '>' {
		end++
	}
	digits := strings.Map(func(r rune) rune {
		if strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return r
		}
		return -1
	}, string(data[1:end]))
	if len(digits)%2 == 1 {
		digits += "0"
	}
	var sb strings.Builder
	for k := 0; k+1 < len(digits); k += 2 {
		v, _ := strconv.ParseUint(digits[k:k+2], 16, 8)
		sb.WriteByte(byte(v))
	}
	if end < len(data) {
		end++
	}
	return sb.String(), end
}

// decodeWinAnsi maps the single-byte string encoding used by standard
// fonts to UTF-8.
func decodeWinAnsi(s string) string {
	out, err := charmap.Windows1252.NewDecoder().String(s)
	if err != nil {
		return s
	}
	return out
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isNumberStart(c byte) bool {
	return isDigit(c) || c == '-' || c == '+' || c == '.'
}

func isOperatorByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '*' || c == '\'' || c == '"'
}

func isDelimiter(c byte) bool {
	return strings.IndexByte(" \t\r\n\f\x00()<>[]{}/%", c) >= 0
}

func isZero(s string) bool {
	f, err := strconv.ParseFloat(s, 64)
	return err == nil && f == 0
}
