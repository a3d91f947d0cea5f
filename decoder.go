package diskreport

// DecodedText is the result of decoding a report file.
type DecodedText struct {
	Text string

	// Encoding is the encoding that produced Text.
	Encoding string

	// Attempted lists every encoding tried, in order, including the winner.
	Attempted []string

	// Lossy is true when no encoding decoded cleanly and invalid bytes
	// were replaced.
	Lossy bool
}

// TextDecoder decodes raw report bytes into text.
// Implementations never fail: a lossy decode is the last resort.
type TextDecoder interface {
	Decode(data []byte) DecodedText
}
