package mock

import "github.com/fwojciec/diskreport"

var _ diskreport.PDFTextExtractor = (*PDFTextExtractor)(nil)

// PDFTextExtractor is a mock implementation of diskreport.PDFTextExtractor.
type PDFTextExtractor struct {
	ExtractTextFn func(path string) (string, error)
	NameFn        func() string
}

func (e *PDFTextExtractor) ExtractText(path string) (string, error) {
	return e.ExtractTextFn(path)
}

func (e *PDFTextExtractor) Name() string {
	if e.NameFn == nil {
		return "mock"
	}
	return e.NameFn()
}
