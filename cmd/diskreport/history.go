package main

import (
	"fmt"

	"github.com/fwojciec/diskreport"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	filter := diskreport.BatchFilter{Limit: c.Limit}
	if c.Status != "" {
		status := diskreport.BatchStatus(c.Status)
		if err := (&diskreport.Batch{Status: status}).Validate(); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", diskreport.ErrorMessage(err))
			return err
		}
		filter.Status = &status
	}

	batches, err := deps.Batches.FindBatches(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", diskreport.ErrorMessage(err))
		return err
	}

	if len(batches) == 0 {
		fmt.Fprintln(deps.Stdout, "No batches found. Use 'diskreport parse' to create one.")
		return nil
	}

	for _, b := range batches {
		fmt.Fprintf(deps.Stdout, "%s  %s  %-10s  files=%d drives=%d duplicates=%d\n",
			b.ID, b.CreatedAt.Format("2006-01-02 15:04"), b.Status, b.TotalFiles, b.TotalDrives, b.DuplicatesRemoved)
	}

	return nil
}
