package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	main "github.com/fwojciec/diskreport/cmd/diskreport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sentinelReport = `Hard Disk Summary
-------------------
Hard Disk Model ID  . . . . . . : ST4000NM0035-1V4107
Hard Disk Serial Number . . . . : ZC18ABCD
Health  . . . . . . . . . . . . : #################### 100 % (Excellent)
`

var batchIDRe = regexp.MustCompile(`Batch (\S+)`)

func newTestMain(t *testing.T, dir string) *main.Main {
	t.Helper()
	return &main.Main{
		DBPath:     filepath.Join(dir, "history.db"),
		ConfigPath: filepath.Join(dir, "config.yaml"),
	}
}

func run(t *testing.T, m *main.Main, args ...string) (string, string, error) {
	t.Helper()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	err := m.Run(context.Background(), args, stdout, stderr)
	return stdout.String(), stderr.String(), err
}

func TestMain_Run(t *testing.T) {
	t.Parallel()

	t.Run("returns error without command", func(t *testing.T) {
		t.Parallel()

		_, _, err := run(t, newTestMain(t, t.TempDir()))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "no command specified")
	})

	t.Run("prints help", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := run(t, newTestMain(t, t.TempDir()), "--help")

		require.NoError(t, err)
		assert.Contains(t, stdout, "parse")
		assert.Contains(t, stdout, "history")
	})

	t.Run("derives vendor without opening database", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()

		stdout, _, err := run(t, newTestMain(t, dir), "vendor", "ST4000NM0035")

		require.NoError(t, err)
		assert.Equal(t, "Seagate\n", stdout)
		_, statErr := os.Stat(filepath.Join(dir, "history.db"))
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("parses reports and records history", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		in := filepath.Join(dir, "in")
		out := filepath.Join(dir, "out")
		require.NoError(t, os.MkdirAll(in, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(in, "node1.txt"), []byte(sentinelReport), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(in, "node2.txt"), []byte(sentinelReport), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(in, "blank.html"), []byte("<html><body><p>hello</p></body></html>"), 0644))

		m := newTestMain(t, dir)
		stdout, _, err := run(t, m, "parse", "--output-dir", out, in)

		require.NoError(t, err)
		assert.Contains(t, stdout, "Found 3 files")
		assert.Contains(t, stdout, "Drives: 2 (1 duplicates removed)")
		assert.Contains(t, stdout, "Errors: 1")

		match := batchIDRe.FindStringSubmatch(stdout)
		require.Len(t, match, 2)
		id := match[1]

		_, err = os.Stat(filepath.Join(out, "blank_summary_"+id+".xlsx"))
		require.NoError(t, err)
		_, err = os.Stat(filepath.Join(out, "blank_summary_"+id+".csv"))
		require.NoError(t, err)

		stdout, _, err = run(t, newTestMain(t, dir), "history")
		require.NoError(t, err)
		assert.Contains(t, stdout, id)
		assert.Contains(t, stdout, "completed")

		stdout, _, err = run(t, newTestMain(t, dir), "show", id)
		require.NoError(t, err)
		assert.Contains(t, stdout, "node1.txt  txt  drives=1")
		assert.Contains(t, stdout, "blank.html: No recognizable drive blocks found")
	})

	t.Run("skips history with flag", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		report := filepath.Join(dir, "node1.txt")
		require.NoError(t, os.WriteFile(report, []byte(sentinelReport), 0644))

		stdout, _, err := run(t, newTestMain(t, dir), "parse", "--no-history", "-o", filepath.Join(dir, "out"), report)

		require.NoError(t, err)
		assert.Contains(t, stdout, "Drives: 1 (0 duplicates removed)")
		_, statErr := os.Stat(filepath.Join(dir, "history.db"))
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("reads output directory from config", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		out := filepath.Join(dir, "from-config")
		report := filepath.Join(dir, "node1.txt")
		require.NoError(t, os.WriteFile(report, []byte(sentinelReport), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("output_dir: "+out+"\nlog_level: warn\n"), 0644))

		_, _, err := run(t, newTestMain(t, dir), "parse", "--no-history", report)

		require.NoError(t, err)
		entries, err := os.ReadDir(out)
		require.NoError(t, err)
		assert.Len(t, entries, 2)
	})

	t.Run("returns ENOTFOUND for missing input", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()

		_, stderr, err := run(t, newTestMain(t, dir), "parse", "--no-history", filepath.Join(dir, "missing.txt"))

		require.Error(t, err)
		assert.Contains(t, stderr, "Path not found")
	})

	t.Run("rejects invalid log level", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("log_level: loud\n"), 0644))

		_, _, err := run(t, newTestMain(t, dir), "vendor", "ST1")

		require.Error(t, err)
	})
}
