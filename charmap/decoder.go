// Package charmap decodes report files through an ordered cascade of text
// encodings backed by golang.org/x/text.
package charmap

import (
	"bytes"
	"unicode/utf8"

	"github.com/fwojciec/diskreport"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Ensure Decoder implements diskreport.TextDecoder at compile time.
var _ diskreport.TextDecoder = (*Decoder)(nil)

// Encoding names reported in DecodedText.
const (
	UTF8        = "utf-8"
	ISO88591    = "iso-8859-1"
	Windows1252 = "cp1252"
	LossyUTF8   = "utf-8 (replace)"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Candidate is one step of the decoding cascade. A nil Encoding means
// strict UTF-8.
type Candidate struct {
	Name     string
	Encoding encoding.Encoding
}

// DefaultCandidates is strict UTF-8, then ISO-8859-1, then Windows-1252.
var DefaultCandidates = []Candidate{
	{Name: UTF8},
	{Name: ISO88591, Encoding: charmap.ISO8859_1},
	{Name: Windows1252, Encoding: charmap.Windows1252},
}

// Decoder tries each candidate in order and keeps the first one that decodes
// the whole input without substitutions. When none does, it decodes as
// UTF-8 replacing invalid bytes with U+FFFD.
type Decoder struct {
	candidates []Candidate
}

// NewDecoder returns a Decoder using DefaultCandidates.
func NewDecoder() *Decoder {
	return &Decoder{candidates: DefaultCandidates}
}

// NewDecoderWithCandidates returns a Decoder with a custom cascade.
func NewDecoderWithCandidates(candidates ...Candidate) *Decoder {
	return &Decoder{candidates: candidates}
}

// Decode implements diskreport.TextDecoder.
func (d *Decoder) Decode(data []byte) diskreport.DecodedText {
	data = bytes.TrimPrefix(data, utf8BOM)

	var attempted []string
	for _, c := range d.candidates {
		attempted = append(attempted, c.Name)
		if text, ok := decodeStrict(c, data); ok {
			return diskreport.DecodedText{
				Text:      text,
				Encoding:  c.Name,
				Attempted: attempted,
			}
		}
	}

	text, _ := unicode.UTF8.NewDecoder().Bytes(data)
	return diskreport.DecodedText{
		Text:      string(text),
		Encoding:  LossyUTF8,
		Attempted: append(attempted, LossyUTF8),
		Lossy:     true,
	}
}

// decodeStrict decodes data with c and reports whether every byte mapped to
// a defined character.
func decodeStrict(c Candidate, data []byte) (string, bool) {
	if c.Encoding == nil {
		if !utf8.Valid(data) {
			return "", false
		}
		return string(data), true
	}
	out, err := c.Encoding.NewDecoder().Bytes(data)
	if err != nil {
		return "", false
	}
	if bytes.ContainsRune(out, utf8.RuneError) {
		return "", false
	}
	return string(out), true
}
