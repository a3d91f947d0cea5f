package mock

import "github.com/fwojciec/diskreport"

var _ diskreport.TextDecoder = (*TextDecoder)(nil)

// TextDecoder is a mock implementation of diskreport.TextDecoder.
type TextDecoder struct {
	DecodeFn func(data []byte) diskreport.DecodedText
}

func (d *TextDecoder) Decode(data []byte) diskreport.DecodedText {
	return d.DecodeFn(data)
}
