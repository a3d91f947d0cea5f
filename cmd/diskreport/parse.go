package main

import (
	"fmt"
	"os"

	"github.com/fwojciec/diskreport"
	"github.com/fwojciec/diskreport/batch"
	"github.com/fwojciec/diskreport/fs"
)

// Run executes the parse command.
func (c *ParseCmd) Run(deps *Dependencies) error {
	tmp, err := os.MkdirTemp("", "diskreport-")
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}
	defer os.RemoveAll(tmp)

	collector := &fs.Collector{TempDir: tmp}
	files, collectErrs, err := collector.Collect(c.Paths)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", diskreport.ErrorMessage(err))
		return err
	}
	if len(files) == 0 && len(collectErrs) == 0 {
		err := diskreport.Errorf(diskreport.EINVALID, "no report files found")
		fmt.Fprintf(deps.Stderr, "error: %s\n", diskreport.ErrorMessage(err))
		return err
	}

	progress := func(event batch.ProgressEvent) {
		switch event.Type {
		case batch.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "  Found %d files\n", event.Total)
		case batch.ProgressSkipped:
			fmt.Fprintf(deps.Stderr, "  skip %s: %s\n", event.File, diskreport.ErrorMessage(event.Error))
		}
	}

	result, err := deps.Processor.Process(deps.Ctx, batch.Request{Files: files, Errors: collectErrs}, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error processing batch: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Batch %s\n", result.ID)
	fmt.Fprintf(deps.Stdout, "  Drives: %d (%d duplicates removed)\n", result.TotalDrives, result.DuplicatesRemoved)
	if len(result.Errors) > 0 {
		fmt.Fprintf(deps.Stdout, "  Errors: %d (see Errors sheet)\n", len(result.Errors))
	}
	fmt.Fprintf(deps.Stdout, "  Spreadsheet: %s\n", result.SpreadsheetPath)
	fmt.Fprintf(deps.Stdout, "  CSV: %s\n", result.DelimitedPath)
	return nil
}
