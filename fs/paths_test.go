package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/diskreport/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportBase(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		file string
		want string
	}{
		{name: "strips extension", file: "/in/host01.txt", want: "host01"},
		{name: "cuts at first dot", file: "host01.smart.html", want: "host01"},
		{name: "no extension", file: "report_a", want: "report_a"},
		{name: "empty falls back", file: "", want: "report"},
		{name: "dot file falls back", file: ".hidden", want: "report"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, fs.ReportBase(tt.file))
		})
	}
}

func TestOutputPaths(t *testing.T) {
	t.Parallel()

	t.Run("names outputs after first file and batch", func(t *testing.T) {
		t.Parallel()

		dir := filepath.Join(t.TempDir(), "results")

		out, err := fs.OutputPaths(dir, "/in/node7.pdf", "abc-123")

		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "node7_summary_abc-123.xlsx"), out.Spreadsheet)
		assert.Equal(t, filepath.Join(dir, "node7_summary_abc-123.csv"), out.Delimited)

		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("returns error when directory cannot be created", func(t *testing.T) {
		t.Parallel()

		blocker := filepath.Join(t.TempDir(), "file")
		require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

		_, err := fs.OutputPaths(filepath.Join(blocker, "results"), "a.txt", "id")

		require.Error(t, err)
	})
}
