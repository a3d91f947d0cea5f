package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/diskreport"
	"github.com/fwojciec/diskreport/batch"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Batches   diskreport.BatchService
	Processor *batch.Processor
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Enable debug logging"`

	Parse   ParseCmd   `cmd:"" help:"Parse report files into a drive summary"`
	History HistoryCmd `cmd:"" help:"List recorded batches"`
	Show    ShowCmd    `cmd:"" help:"Show a batch with its error log"`
	Vendor  VendorCmd  `cmd:"" help:"Print the vendor derived from a model number"`
}

// ParseCmd is the "parse" subcommand.
type ParseCmd struct {
	Paths       []string `arg:"" help:"Report files, directories or ZIP archives"`
	OutputDir   string   `short:"o" help:"Directory for the spreadsheet and CSV (default from config)"`
	Concurrency int      `short:"c" help:"Files parsed at once (default from config)"`
	NoHistory   bool     `help:"Do not record the batch in the history database"`
}

// apply overrides config values with the flags that were set.
func (c *ParseCmd) apply(cfg Config) Config {
	if c.OutputDir != "" {
		cfg.OutputDir = c.OutputDir
	}
	if c.Concurrency > 0 {
		cfg.Concurrency = c.Concurrency
	}
	return cfg
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	Status string `short:"s" help:"Only show batches with this status (processing, completed, failed)"`
	Limit  int    `short:"n" default:"20" help:"Maximum number of batches to show"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID string `arg:"" help:"Batch ID"`
}

// VendorCmd is the "vendor" subcommand.
type VendorCmd struct {
	Model []string `arg:"" help:"Model number, e.g. ST4000NM0035"`
}
