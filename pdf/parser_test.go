package pdf_test

import (
	"errors"
	"testing"

	"github.com/fwojciec/diskreport"
	"github.com/fwojciec/diskreport/internal/pdftest"
	"github.com/fwojciec/diskreport/ledongthuc"
	"github.com/fwojciec/diskreport/mock"
	"github.com/fwojciec/diskreport/pdf"
	"github.com/fwojciec/diskreport/pdfcpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scsiToolboxLog = `SCSI Toolbox 2.0 Drive Report
Vendor = SEAGATE
Product = ST600MM0006
Vendor Information = SEAGATE ST600MM0006 B001
Serial Number = S0M1ABCDECE4ECE4
Health = 96 %
Number of Grown Defects = 7
Reallocated Sector Count = 2
`

func staticExtractor(text string) *mock.PDFTextExtractor {
	return &mock.PDFTextExtractor{
		ExtractTextFn: func(string) (string, error) { return text, nil },
	}
}

func failingExtractor(name string, err error) *mock.PDFTextExtractor {
	return &mock.PDFTextExtractor{
		ExtractTextFn: func(string) (string, error) { return "", err },
		NameFn:        func() string { return name },
	}
}

func TestParser_Parse(t *testing.T) {
	t.Parallel()

	t.Run("extracts single drive from text", func(t *testing.T) {
		t.Parallel()

		p := pdf.NewParser(nil, staticExtractor(scsiToolboxLog))

		records := p.Parse("/reports/drive.pdf", "drive.pdf")

		require.Len(t, records, 1)
		r := records[0]
		assert.Equal(t, "S0M1ABCD", r.VpdSerial, "repeated ECE4 tail is trimmed")
		assert.Equal(t, "S0M1ABCD", r.LabelSerial)
		assert.Equal(t, "ST600MM0006", r.ModelNumber)
		assert.Equal(t, "SEAGATE ST600MM0006 B001", r.VendorInformation)
		assert.Equal(t, diskreport.VendorSeagate, r.Vendor)
		require.NotNil(t, r.HealthScore)
		assert.Equal(t, 96, *r.HealthScore)
		assert.Equal(t, 7, r.GrownDefects)
		assert.Equal(t, 2, r.AllocatedSections)
		assert.Equal(t, "drive.pdf", r.FileName)
	})

	t.Run("leaves vendor information blank without exact label", func(t *testing.T) {
		t.Parallel()

		p := pdf.NewParser(nil, staticExtractor("Vendor = HITACHI\nProduct: HUS156030VLS600\nSerial: JFW12345"))

		records := p.Parse("x.pdf", "x.pdf")

		require.Len(t, records, 1)
		assert.Empty(t, records[0].VendorInformation)
		assert.Equal(t, "HUS156030VLS600", records[0].ModelNumber)
		assert.Equal(t, "JFW12345", records[0].VpdSerial)
		assert.Nil(t, records[0].HealthScore)
	})

	t.Run("falls back to second extractor on error", func(t *testing.T) {
		t.Parallel()

		p := pdf.NewParser(nil,
			failingExtractor("primary", errors.New("malformed xref")),
			staticExtractor(scsiToolboxLog),
		)

		records := p.Parse("x.pdf", "x.pdf")

		require.Len(t, records, 1)
		assert.False(t, records[0].IsPlaceholder())
		assert.Equal(t, "ST600MM0006", records[0].ModelNumber)
	})

	t.Run("falls back when first extractor returns blank text", func(t *testing.T) {
		t.Parallel()

		p := pdf.NewParser(nil, staticExtractor("  \n "), staticExtractor(scsiToolboxLog))

		records := p.Parse("x.pdf", "x.pdf")

		require.Len(t, records, 1)
		assert.Equal(t, "ST600MM0006", records[0].ModelNumber)
	})

	t.Run("recovers from panicking extractor", func(t *testing.T) {
		t.Parallel()

		panicking := &mock.PDFTextExtractor{
			ExtractTextFn: func(string) (string, error) { panic("index out of range") },
		}
		p := pdf.NewParser(nil, panicking, staticExtractor(scsiToolboxLog))

		records := p.Parse("x.pdf", "x.pdf")

		require.Len(t, records, 1)
		assert.False(t, records[0].IsPlaceholder())
	})

	t.Run("returns placeholder when no extractor yields text", func(t *testing.T) {
		t.Parallel()

		p := pdf.NewParser(nil,
			failingExtractor("primary", errors.New("encrypted")),
			failingExtractor("fallback", errors.New("bad header")),
		)

		records := p.Parse("x.pdf", "x.pdf")

		require.Len(t, records, 1)
		r := records[0]
		assert.True(t, r.IsPlaceholder())
		assert.Contains(t, r.ParsingError, pdf.MsgNoText)
		assert.Contains(t, r.ParsingError, "primary: encrypted")
		assert.Contains(t, r.ParsingError, "fallback: bad header")
		assert.Empty(t, r.VpdSerial)
		assert.Equal(t, diskreport.VendorUnknown, r.Vendor)
	})

	t.Run("returns placeholder without extractors", func(t *testing.T) {
		t.Parallel()

		records := pdf.NewParser(nil).Parse("x.pdf", "x.pdf")

		require.Len(t, records, 1)
		assert.Equal(t, pdf.MsgNoText, records[0].ParsingError)
	})

	t.Run("returns placeholder when text has no fields", func(t *testing.T) {
		t.Parallel()

		p := pdf.NewParser(nil, staticExtractor("Invoice #42\nTotal = 12.00"))

		records := p.Parse("x.pdf", "x.pdf")

		require.Len(t, records, 1)
		assert.Equal(t, pdf.MsgNoFields, records[0].ParsingError)
	})
}

func TestParser_Parse_WithBackends(t *testing.T) {
	t.Parallel()

	path := pdftest.WriteFile(t, "scsi.pdf",
		"Product = ST600MM0006",
		"Serial Number = S0M1ABCD1234",
		"Health = 98 %",
		"Number of Grown Defects = 2",
	)

	for _, ext := range []diskreport.PDFTextExtractor{ledongthuc.NewExtractor(), pdfcpu.NewExtractor()} {
		t.Run(ext.Name(), func(t *testing.T) {
			t.Parallel()

			records := pdf.NewParser(nil, ext).Parse(path, "scsi.pdf")

			require.Len(t, records, 1)
			r := records[0]
			assert.Empty(t, r.ParsingError)
			assert.Equal(t, "S0M1ABCD1234", r.VpdSerial)
			assert.Equal(t, "ST600MM0006", r.ModelNumber)
			assert.Equal(t, diskreport.VendorSeagate, r.Vendor)
			require.NotNil(t, r.HealthScore)
			assert.Equal(t, 98, *r.HealthScore)
			assert.Equal(t, 2, r.GrownDefects)
		})
	}
}
