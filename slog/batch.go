package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/diskreport"
)

// Ensure LoggingBatchService implements diskreport.BatchService.
var _ diskreport.BatchService = (*LoggingBatchService)(nil)

// LoggingBatchService wraps a BatchService with debug logging of the
// writes. Reads pass through.
type LoggingBatchService struct {
	diskreport.BatchService
	logger *slog.Logger
}

// NewLoggingBatchService creates a new LoggingBatchService.
func NewLoggingBatchService(next diskreport.BatchService, logger *slog.Logger) *LoggingBatchService {
	return &LoggingBatchService{BatchService: next, logger: logger}
}

// CreateBatch delegates to the wrapped service and logs the operation.
func (s *LoggingBatchService) CreateBatch(ctx context.Context, batch *diskreport.Batch) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("create batch",
			"id", batch.ID,
			"files", batch.TotalFiles,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.BatchService.CreateBatch(ctx, batch)
}

// CompleteBatch delegates to the wrapped service and logs the operation.
func (s *LoggingBatchService) CompleteBatch(ctx context.Context, id string, c diskreport.BatchCompletion) (b *diskreport.Batch, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("complete batch",
			"id", id,
			"status", c.Status,
			"drives", c.TotalDrives,
			"errors", len(c.Errors),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.BatchService.CompleteBatch(ctx, id, c)
}
