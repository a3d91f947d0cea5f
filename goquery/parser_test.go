package goquery_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	gq "github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/diskreport"
	"github.com/fwojciec/diskreport/charmap"
	"github.com/fwojciec/diskreport/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoDriveHTML = `<!DOCTYPE html>
<html>
<head>
<title>Hard Disk Sentinel Report</title>
<style>.value { font-weight: bold; }</style>
<script>var serial = "Hard Disk Serial Number: SCRIPT0000";</script>
</head>
<body>
<h2>Drive 1</h2>
<table>
<tr><td>Hard Disk Serial Number</td><td class="value">: ZC18ABCD</td></tr>
<tr><td>Hard Disk Model ID</td><td class="value">: ST4000NM0035-1V4107</td></tr>
<tr><td>Vendor Information</td><td class="value">: SEAGATE</td></tr>
<tr><td>Health</td><td class="value">: 100 % (Excellent)</td></tr>
<tr><td>Grown Defects</td><td class="value">: 2</td></tr>
</table>
<h2>Drive 2</h2>
<table>
<tr><td>Hard Disk Serial Number</td><td class="value">: HUA1234567890</td></tr>
<tr><td>Hard Disk Model ID</td><td class="value">: HUA723020ALA640</td></tr>
<tr><td>Health</td><td class="value">: 95 %</td></tr>
<tr><td>Reallocated Sector Count</td><td class="value">: 8</td></tr>
</table>
</body>
</html>`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func newParser() *goquery.Parser {
	return goquery.NewParser(charmap.NewDecoder(), nil)
}

func TestParser_Parse(t *testing.T) {
	t.Parallel()

	t.Run("extracts one record per drive section", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "report.html", twoDriveHTML)

		records := newParser().Parse(path, "report.html")

		require.Len(t, records, 2)

		first := records[0]
		assert.Equal(t, "ZC18ABCD", first.VpdSerial)
		assert.Equal(t, "ST4000NM0035-1V4107", first.ModelNumber)
		assert.Equal(t, "SEAGATE", first.VendorInformation)
		assert.Equal(t, diskreport.VendorSeagate, first.Vendor)
		require.NotNil(t, first.HealthScore)
		assert.Equal(t, 100, *first.HealthScore)
		assert.Equal(t, 2, first.GrownDefects)
		assert.Equal(t, "report.html", first.FileName)
		assert.Equal(t, charmap.UTF8, first.Encoding)

		second := records[1]
		assert.Equal(t, "HUA1234567890", second.VpdSerial)
		assert.Equal(t, "HUA12345", second.LabelSerial)
		assert.Equal(t, diskreport.VendorHitachi, second.Vendor)
		require.NotNil(t, second.HealthScore)
		assert.Equal(t, 95, *second.HealthScore)
		assert.Equal(t, 8, second.AllocatedSections)
	})

	t.Run("returns single placeholder when no drive keywords exist", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "about.html", `<html><body><h1>About us</h1><p>We sell coffee.</p></body></html>`)

		records := newParser().Parse(path, "about.html")

		require.Len(t, records, 1)
		assert.True(t, records[0].IsPlaceholder())
		assert.Equal(t, goquery.MsgNoBlocks, records[0].ParsingError)
		assert.Empty(t, records[0].VpdSerial)
		assert.Equal(t, "about.html", records[0].FileName)
	})

	t.Run("falls back to keyword tables", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "table.html", `<html><body>
<table>
<tr><td>Serial Number</td><td>: ABCD123456</td></tr>
<tr><td>Model ID</td><td>: HUS724040ALE640</td></tr>
<tr><td>Health</td><td>: 91 %</td></tr>
</table>
<p>Disk 1 of 1</p>
</body></html>`)

		records := newParser().Parse(path, "table.html")

		require.Len(t, records, 1)
		assert.Equal(t, "ABCD123456", records[0].VpdSerial)
		assert.Equal(t, "HUS724040ALE640", records[0].ModelNumber)
		require.NotNil(t, records[0].HealthScore)
		assert.Equal(t, 91, *records[0].HealthScore)
	})

	t.Run("reads health from a label cell without colon", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "cells.html", `<html><body>
<h2>Drive 1</h2>
<table>
<tr><td>Hard Disk Serial Number :</td><td>ZC18ABCD1234</td></tr>
<tr><td>Hard Disk Model ID :</td><td>ST4000NM0035</td></tr>
<tr><td>Health</td><td>100 %</td></tr>
</table>
</body></html>`)

		records := newParser().Parse(path, "cells.html")

		require.Len(t, records, 1)
		assert.Equal(t, "ZC18ABCD1234", records[0].VpdSerial)
		assert.Equal(t, "ST4000NM0035", records[0].ModelNumber)
		require.NotNil(t, records[0].HealthScore)
		assert.Equal(t, 100, *records[0].HealthScore)
	})

	t.Run("falls back to content under drive headings", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "headings.html", `<html><body>
<h3>Hard drive details</h3>
<p>Serial Number: QWERTY1234</p>
<p>Model ID: DT01ACA300</p>
<h3>Other</h3>
<p>Disk 9 notes</p>
</body></html>`)

		records := newParser().Parse(path, "headings.html")

		require.Len(t, records, 1)
		assert.Equal(t, "QWERTY1234", records[0].VpdSerial)
		assert.Equal(t, diskreport.VendorToshiba, records[0].Vendor)
	})

	t.Run("returns placeholder for unreadable file", func(t *testing.T) {
		t.Parallel()

		records := newParser().Parse(filepath.Join(t.TempDir(), "missing.html"), "missing.html")

		require.Len(t, records, 1)
		assert.Contains(t, records[0].ParsingError, "Parsing Error:")
	})
}

func TestSplitSections(t *testing.T) {
	t.Parallel()

	t.Run("splits at every boundary marker in order", func(t *testing.T) {
		t.Parallel()

		text := "intro\nDrive 1\nHard Disk Serial Number: A\nDisk 2 stuff"

		sections := goquery.SplitSections(text)

		assert.Equal(t, []string{"Drive 1", "Hard Disk Serial Number: A", "Disk 2 stuff"}, sections)
	})

	t.Run("splits on blank lines without markers", func(t *testing.T) {
		t.Parallel()

		sections := goquery.SplitSections("Model: A\n\nModel: B\n  \n\nModel: C")

		assert.Equal(t, []string{"Model: A", "Model: B", "Model: C"}, sections)
	})
}

func TestFlattenText(t *testing.T) {
	t.Parallel()

	doc, err := gq.NewDocumentFromReader(strings.NewReader(
		`<html><head><script>var x = 1;</script><style>p{}</style></head><body><p>Model<b>ID</b></p><!-- hidden --></body></html>`))
	require.NoError(t, err)

	text := goquery.FlattenText(doc.Selection)

	assert.Contains(t, text, "Model\nID\n")
	assert.NotContains(t, text, "var x")
	assert.NotContains(t, text, "p{}")
	assert.NotContains(t, text, "hidden")
}
