package diskreport

// PDFTextExtractor extracts raw text from a PDF file.
type PDFTextExtractor interface {
	// ExtractText returns the text of every page, pages separated by
	// newlines. Text lines are preserved where the backend can tell them
	// apart.
	ExtractText(path string) (string, error)

	// Name identifies the backend in logs.
	Name() string
}
