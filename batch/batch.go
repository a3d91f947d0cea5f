// Package batch provides report batch orchestration. It coordinates
// parsing, deduplication, output writing and history recording for a set
// of report files.
package batch

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/diskreport"
	"github.com/fwojciec/diskreport/fs"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of files parsed at once when
// Processor.Concurrency is not set.
const DefaultConcurrency = 4

// Processor summarizes batches of report files.
type Processor struct {
	Parsers   diskreport.ParserSet
	Writer    diskreport.ReportWriter
	Batches   diskreport.BatchService // optional history
	OutputDir string

	Concurrency int
}

// Request lists the files of one batch. Errors holds entries produced
// before parsing, such as unreadable archives; they lead the error log.
type Request struct {
	Files  []diskreport.InputFile
	Errors []diskreport.ParseErrorEntry
}

// Result holds the outcome of a batch.
type Result struct {
	ID                string
	Status            diskreport.BatchStatus
	TotalFiles        int
	TotalDrives       int
	DuplicatesRemoved int
	Records           []*diskreport.DriveRecord
	Errors            []diskreport.ParseErrorEntry
	Files             []*diskreport.BatchFile
	SpreadsheetPath   string
	DelimitedPath     string
}

// ProgressEvent reports progress during a batch.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	File      string
	Drives    int
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressParsed
	ProgressSkipped
	ProgressFinished
)

// ProgressFunc is a callback for reporting batch progress.
type ProgressFunc func(event ProgressEvent)

// fileResult holds the outcome of parsing a single file.
type fileResult struct {
	position int
	file     diskreport.InputFile
	format   diskreport.Format
	digest   string
	records  []*diskreport.DriveRecord
	err      error
}

// Process parses every file, deduplicates the drives, writes the
// spreadsheet and delimited outputs and records the batch when a history
// service is configured. Parse failures never fail the batch; they become
// placeholder records and error entries. Output and history failures are
// returned.
func (p *Processor) Process(ctx context.Context, req Request, progress ProgressFunc) (*Result, error) {
	id := uuid.New().String()
	total := len(req.Files)

	if p.Batches != nil {
		b := &diskreport.Batch{ID: id, Status: diskreport.BatchProcessing, TotalFiles: total}
		if err := p.Batches.CreateBatch(ctx, b); err != nil {
			return nil, fmt.Errorf("create batch: %w", err)
		}
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	results, err := p.parseAll(ctx, req.Files, progress)
	if err != nil {
		return nil, p.fail(ctx, id, err)
	}

	res := &Result{
		ID:         id,
		TotalFiles: total,
		Errors:     append([]diskreport.ParseErrorEntry(nil), req.Errors...),
	}
	var all []*diskreport.DriveRecord
	for _, r := range results {
		res.Files = append(res.Files, &diskreport.BatchFile{
			FileName: r.file.Name,
			Format:   r.format,
			Digest:   r.digest,
			Drives:   len(r.records),
		})
		if r.err != nil {
			res.Errors = append(res.Errors, diskreport.ParseErrorEntry{
				FileName:     r.file.Name,
				ErrorMessage: diskreport.ErrorMessage(r.err),
			})
			continue
		}
		for _, rec := range r.records {
			if rec.IsPlaceholder() {
				res.Errors = append(res.Errors, diskreport.NewParseErrorEntry(rec))
			}
		}
		all = append(all, r.records...)
	}

	res.Records = diskreport.Dedupe(all)
	res.TotalDrives = len(res.Records)
	res.DuplicatesRemoved = len(all) - len(res.Records)

	first := ""
	if len(req.Files) > 0 {
		first = req.Files[0].Name
	}
	out, err := fs.OutputPaths(p.OutputDir, first, id)
	if err != nil {
		return nil, p.fail(ctx, id, err)
	}
	if res.SpreadsheetPath, err = p.Writer.WriteSpreadsheet(res.Records, out.Spreadsheet, res.Errors); err != nil {
		return nil, p.fail(ctx, id, fmt.Errorf("write spreadsheet: %w", err))
	}
	if res.DelimitedPath, err = p.Writer.WriteDelimitedText(res.Records, out.Delimited); err != nil {
		return nil, p.fail(ctx, id, fmt.Errorf("write delimited text: %w", err))
	}
	res.Status = diskreport.BatchCompleted

	if p.Batches != nil {
		_, err := p.Batches.CompleteBatch(ctx, id, diskreport.BatchCompletion{
			Status:            res.Status,
			TotalDrives:       res.TotalDrives,
			DuplicatesRemoved: res.DuplicatesRemoved,
			SpreadsheetPath:   res.SpreadsheetPath,
			DelimitedPath:     res.DelimitedPath,
			Files:             res.Files,
			Errors:            res.Errors,
		})
		if err != nil {
			return nil, fmt.Errorf("complete batch: %w", err)
		}
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total, Drives: res.TotalDrives})
	}
	return res, nil
}

// parseAll parses files with bounded parallelism and returns results in
// input order.
func (p *Processor) parseAll(ctx context.Context, files []diskreport.InputFile, progress ProgressFunc) ([]fileResult, error) {
	concurrency := p.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	resultCh := make(chan fileResult, len(files))
	var completed atomic.Int64
	total := len(files)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	var waitErr error
	go func() {
		for i, f := range files {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				resultCh <- p.processFile(i, f)
				return nil
			})
		}
		waitErr = g.Wait()
		close(resultCh)
	}()

	// Collect results in order
	results := make([]fileResult, len(files))
	for result := range resultCh {
		completed.Add(1)
		results[result.position] = result

		if progress == nil {
			continue
		}
		event := ProgressEvent{
			Type:      ProgressParsed,
			Completed: int(completed.Load()),
			Total:     total,
			File:      result.file.Name,
			Drives:    len(result.records),
		}
		if result.err != nil {
			event.Type = ProgressSkipped
			event.Error = result.err
		}
		progress(event)
	}

	if waitErr != nil {
		return nil, waitErr
	}
	return results, nil
}

// processFile dispatches a single file to its parser.
func (p *Processor) processFile(position int, f diskreport.InputFile) fileResult {
	result := fileResult{
		position: position,
		file:     f,
		digest:   fileDigest(f.Path),
	}

	parser, format, err := p.Parsers.ParserFor(f.Name)
	result.format = format
	if err != nil {
		result.err = err
		return result
	}

	result.records = parser.Parse(f.Path, f.Name)
	return result
}

// fail records a failed batch and returns err. History errors are
// secondary to err and only appended to its message.
func (p *Processor) fail(ctx context.Context, id string, err error) error {
	if p.Batches == nil {
		return err
	}
	_, cerr := p.Batches.CompleteBatch(context.WithoutCancel(ctx), id, diskreport.BatchCompletion{
		Status:  diskreport.BatchFailed,
		Message: err.Error(),
	})
	if cerr != nil {
		return fmt.Errorf("%w (recording failure: %v)", err, cerr)
	}
	return err
}

// fileDigest returns the xxhash of a file's content, or "" if the file
// cannot be read. Unreadable files are reported by their parser.
func fileDigest(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	h := xxhash.New()
	if _, err := io.Copy(h, f); err != nil {
		return ""
	}
	return fmt.Sprintf("%x", h.Sum64())
}
