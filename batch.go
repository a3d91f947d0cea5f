package diskreport

import (
	"context"
	"time"
)

// BatchStatus is the lifecycle state of a batch.
type BatchStatus string

const (
	BatchProcessing BatchStatus = "processing"
	BatchCompleted  BatchStatus = "completed"
	BatchFailed     BatchStatus = "failed"
)

// Batch is one run of the summarizer over a set of report files.
type Batch struct {
	ID                string      `json:"id"`
	Status            BatchStatus `json:"status"`
	TotalFiles        int         `json:"totalFiles"`
	TotalDrives       int         `json:"totalDrives"`
	DuplicatesRemoved int         `json:"duplicatesRemoved"`
	SpreadsheetPath   string      `json:"spreadsheetPath"`
	DelimitedPath     string      `json:"delimitedPath"`
	Message           string      `json:"message"`
	CreatedAt         time.Time   `json:"createdAt"`
	CompletedAt       *time.Time  `json:"completedAt"`
}

// Validate returns an error if the batch contains invalid fields.
func (b *Batch) Validate() error {
	if b.TotalFiles < 0 {
		return Errorf(EINVALID, "batch total files must not be negative")
	}
	switch b.Status {
	case BatchProcessing, BatchCompleted, BatchFailed:
	default:
		return Errorf(EINVALID, "invalid batch status %q", b.Status)
	}
	return nil
}

// BatchFile records one input file of a batch.
type BatchFile struct {
	FileName string `json:"fileName"`
	Format   Format `json:"format"`
	Digest   string `json:"digest"`
	Drives   int    `json:"drives"`
}

// BatchCompletion holds the outcome recorded when a batch finishes.
type BatchCompletion struct {
	Status            BatchStatus
	TotalDrives       int
	DuplicatesRemoved int
	SpreadsheetPath   string
	DelimitedPath     string
	Message           string
	Files             []*BatchFile
	Errors            []ParseErrorEntry
}

// BatchFilter represents a filter for FindBatches.
type BatchFilter struct {
	ID     *string      `json:"id"`
	Status *BatchStatus `json:"status"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// BatchService records batch history.
type BatchService interface {
	// CreateBatch records a new batch. An empty ID is generated.
	CreateBatch(ctx context.Context, batch *Batch) error

	// FindBatchByID retrieves a batch by ID.
	// Returns ENOTFOUND if batch does not exist.
	FindBatchByID(ctx context.Context, id string) (*Batch, error)

	// FindBatches retrieves batches matching the filter, newest first.
	FindBatches(ctx context.Context, filter BatchFilter) ([]*Batch, error)

	// CompleteBatch records the outcome of a batch.
	// Returns ENOTFOUND if batch does not exist and ECONFLICT if it has
	// already finished.
	CompleteBatch(ctx context.Context, id string, c BatchCompletion) (*Batch, error)

	// FindBatchFiles retrieves the input files of a batch in input order.
	FindBatchFiles(ctx context.Context, batchID string) ([]*BatchFile, error)

	// FindParseErrors retrieves the error log of a batch in input order.
	FindParseErrors(ctx context.Context, batchID string) ([]ParseErrorEntry, error)
}
