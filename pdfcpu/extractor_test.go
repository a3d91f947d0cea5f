package pdfcpu_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/diskreport/internal/pdftest"
	"github.com/fwojciec/diskreport/pdfcpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_ExtractText(t *testing.T) {
	t.Parallel()

	t.Run("extracts lines from text pdf", func(t *testing.T) {
		t.Parallel()

		path := pdftest.WriteFile(t, "drive.pdf",
			"Product = ST600MM0006",
			"Serial Number = S0M1ABCD1234",
		)

		text, err := pdfcpu.NewExtractor().ExtractText(path)

		require.NoError(t, err)
		assert.Contains(t, text, "Product = ST600MM0006\n")
		assert.Contains(t, text, "Serial Number = S0M1ABCD1234")
	})

	t.Run("returns error for non-pdf content", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "fake.pdf")
		require.NoError(t, os.WriteFile(path, []byte("not a pdf at all"), 0644))

		_, err := pdfcpu.NewExtractor().ExtractText(path)

		require.Error(t, err)
	})
}

func TestStreamText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		stream string
		want   string
	}{
		{
			name:   "single Tj",
			stream: "BT\n/F1 12 Tf\n72 720 Td\n(Health = 96 %) Tj\nET",
			want:   "Health = 96 %",
		},
		{
			name:   "vertical Td starts new line",
			stream: "BT /F1 12 Tf 72 720 Td (Product = A) Tj 0 -14 Td (Serial: B) Tj ET",
			want:   "Product = A\nSerial: B",
		},
		{
			name:   "horizontal Td inserts space",
			stream: "BT 72 720 Td (Health) Tj 40 0 Td (= 90) Tj ET",
			want:   "Health = 90",
		},
		{
			name:   "TJ array joins strings",
			stream: "BT [(Seri) -20 (al Number = X1)] TJ ET",
			want:   "Serial Number = X1",
		},
		{
			name:   "T star and quote operators break lines",
			stream: "BT (a) Tj T* (b) Tj (c) ' ET",
			want:   "a\nb\nc",
		},
		{
			name:   "escapes and nested parentheses",
			stream: `BT (Model \(ID\) = (x) \101) Tj ET`,
			want:   "Model (ID) = (x) A",
		},
		{
			name:   "hex strings",
			stream: "BT <48492D> Tj ET",
			want:   "HI-",
		},
		{
			name:   "dictionaries and comments are ignored",
			stream: "% comment (hidden) Tj\n/P <</MCID 0>> BDC BT (shown) Tj ET EMC",
			want:   "shown",
		},
		{
			name:   "winansi bytes decode to utf-8",
			stream: `BT (caf\351) Tj ET`,
			want:   "café",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, pdfcpu.StreamText([]byte(tt.stream)))
		})
	}
}
