package mock

import (
	"context"

	"github.com/fwojciec/diskreport"
)

var _ diskreport.BatchService = (*BatchService)(nil)

// BatchService is a mock implementation of diskreport.BatchService.
type BatchService struct {
	CreateBatchFn     func(ctx context.Context, batch *diskreport.Batch) error
	FindBatchByIDFn   func(ctx context.Context, id string) (*diskreport.Batch, error)
	FindBatchesFn     func(ctx context.Context, filter diskreport.BatchFilter) ([]*diskreport.Batch, error)
	CompleteBatchFn   func(ctx context.Context, id string, c diskreport.BatchCompletion) (*diskreport.Batch, error)
	FindBatchFilesFn  func(ctx context.Context, batchID string) ([]*diskreport.BatchFile, error)
	FindParseErrorsFn func(ctx context.Context, batchID string) ([]diskreport.ParseErrorEntry, error)
}

func (s *BatchService) CreateBatch(ctx context.Context, batch *diskreport.Batch) error {
	return s.CreateBatchFn(ctx, batch)
}

func (s *BatchService) FindBatchByID(ctx context.Context, id string) (*diskreport.Batch, error) {
	return s.FindBatchByIDFn(ctx, id)
}

func (s *BatchService) FindBatches(ctx context.Context, filter diskreport.BatchFilter) ([]*diskreport.Batch, error) {
	return s.FindBatchesFn(ctx, filter)
}

func (s *BatchService) CompleteBatch(ctx context.Context, id string, c diskreport.BatchCompletion) (*diskreport.Batch, error) {
	return s.CompleteBatchFn(ctx, id, c)
}

func (s *BatchService) FindBatchFiles(ctx context.Context, batchID string) ([]*diskreport.BatchFile, error) {
	return s.FindBatchFilesFn(ctx, batchID)
}

func (s *BatchService) FindParseErrors(ctx context.Context, batchID string) ([]diskreport.ParseErrorEntry, error) {
	return s.FindParseErrorsFn(ctx, batchID)
}
