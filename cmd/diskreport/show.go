package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/diskreport"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	b, err := deps.Batches.FindBatchByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", diskreport.ErrorMessage(err))
		return err
	}

	files, err := deps.Batches.FindBatchFiles(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", diskreport.ErrorMessage(err))
		return err
	}

	errs, err := deps.Batches.FindParseErrors(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", diskreport.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Batch %s\n", b.ID)
	fmt.Fprintf(deps.Stdout, "  Status: %s\n", b.Status)
	fmt.Fprintf(deps.Stdout, "  Created: %s\n", b.CreatedAt.Format("2006-01-02 15:04:05"))
	if b.CompletedAt != nil {
		fmt.Fprintf(deps.Stdout, "  Completed: %s\n", b.CompletedAt.Format("2006-01-02 15:04:05"))
	}
	fmt.Fprintf(deps.Stdout, "  Files: %d\n", b.TotalFiles)
	fmt.Fprintf(deps.Stdout, "  Drives: %d (%d duplicates removed)\n", b.TotalDrives, b.DuplicatesRemoved)
	if b.SpreadsheetPath != "" {
		fmt.Fprintf(deps.Stdout, "  Spreadsheet: %s\n", b.SpreadsheetPath)
	}
	if b.DelimitedPath != "" {
		fmt.Fprintf(deps.Stdout, "  CSV: %s\n", b.DelimitedPath)
	}
	if b.Message != "" {
		fmt.Fprintf(deps.Stdout, "  Message: %s\n", b.Message)
	}

	if len(files) > 0 {
		fmt.Fprintln(deps.Stdout, "\nFiles:")
		for _, f := range files {
			fmt.Fprintf(deps.Stdout, "  %s  %s  drives=%d  %s\n", f.FileName, formatName(f.Format), f.Drives, f.Digest)
		}
	}

	if len(errs) > 0 {
		fmt.Fprintln(deps.Stdout, "\nErrors:")
		for _, e := range errs {
			fmt.Fprintf(deps.Stdout, "  %s: %s", e.FileName, e.ErrorMessage)
			if len(e.EncodingsTried) > 0 {
				fmt.Fprintf(deps.Stdout, " [%s]", strings.Join(e.EncodingsTried, ", "))
			}
			fmt.Fprintln(deps.Stdout)
		}
	}

	return nil
}

func formatName(f diskreport.Format) string {
	if f == diskreport.FormatUnknown {
		return "-"
	}
	return string(f)
}
