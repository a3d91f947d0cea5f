package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/diskreport"
	"github.com/google/uuid"
	"github.com/ncruces/go-sqlite3"
)

// Compile-time interface verification.
var _ diskreport.BatchService = (*BatchService)(nil)

// BatchService implements diskreport.BatchService using SQLite.
type BatchService struct {
	db *DB
}

// NewBatchService creates a new BatchService.
func NewBatchService(db *DB) *BatchService {
	return &BatchService{db: db}
}

const batchColumns = `id, status, total_files, total_drives, duplicates_removed,
	spreadsheet_path, delimited_path, message, created_at, completed_at`

// CreateBatch records a new batch. An empty ID is generated.
func (s *BatchService) CreateBatch(ctx context.Context, batch *diskreport.Batch) error {
	if err := batch.Validate(); err != nil {
		return err
	}

	if batch.ID == "" {
		batch.ID = uuid.New().String()
	}
	batch.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO batches (id, status, total_files, created_at)
		VALUES (?, ?, ?, ?)
	`, batch.ID, batch.Status, batch.TotalFiles, batch.CreatedAt.Format(time.RFC3339))
	if errors.Is(err, sqlite3.CONSTRAINT_PRIMARYKEY) {
		return diskreport.Errorf(diskreport.ECONFLICT, "batch %s already exists", batch.ID)
	}
	return err
}

// FindBatchByID retrieves a batch by ID.
func (s *BatchService) FindBatchByID(ctx context.Context, id string) (*diskreport.Batch, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+batchColumns+` FROM batches WHERE id = ?`, id)
	batch, err := scanBatch(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, diskreport.Errorf(diskreport.ENOTFOUND, "batch not found")
	}
	if err != nil {
		return nil, err
	}
	return batch, nil
}

// FindBatches retrieves batches matching the filter, newest first.
func (s *BatchService) FindBatches(ctx context.Context, filter diskreport.BatchFilter) ([]*diskreport.Batch, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + batchColumns + " FROM batches WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Status != nil {
		query.WriteString(" AND status = ?")
		args = append(args, *filter.Status)
	}

	query.WriteString(" ORDER BY created_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var batches []*diskreport.Batch
	for rows.Next() {
		batch, err := scanBatch(rows)
		if err != nil {
			return nil, err
		}
		batches = append(batches, batch)
	}
	return batches, rows.Err()
}

// CompleteBatch records the outcome of a batch with its files and error
// log in one transaction.
func (s *BatchService) CompleteBatch(ctx context.Context, id string, c diskreport.BatchCompletion) (*diskreport.Batch, error) {
	if c.Status != diskreport.BatchCompleted && c.Status != diskreport.BatchFailed {
		return nil, diskreport.Errorf(diskreport.EINVALID, "invalid completion status %q", c.Status)
	}

	now := time.Now().UTC()

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE batches
		SET status = ?, total_drives = ?, duplicates_removed = ?, spreadsheet_path = ?,
			delimited_path = ?, message = ?, completed_at = ?
		WHERE id = ? AND status = ?
	`, c.Status, c.TotalDrives, c.DuplicatesRemoved, c.SpreadsheetPath,
		c.DelimitedPath, c.Message, now.Format(time.RFC3339), id, diskreport.BatchProcessing)
	if err != nil {
		return nil, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		var status string
		err := tx.QueryRowContext(ctx, `SELECT status FROM batches WHERE id = ?`, id).Scan(&status)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, diskreport.Errorf(diskreport.ENOTFOUND, "batch not found")
		} else if err != nil {
			return nil, err
		}
		return nil, diskreport.Errorf(diskreport.ECONFLICT, "batch already %s", status)
	}

	for i, f := range c.Files {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO batch_files (batch_id, position, file_name, format, digest, drives)
			VALUES (?, ?, ?, ?, ?, ?)
		`, id, i, f.FileName, f.Format, f.Digest, f.Drives)
		if err != nil {
			return nil, fmt.Errorf("insert batch file: %w", err)
		}
	}

	for i, e := range c.Errors {
		tried, err := json.Marshal(nonNil(e.EncodingsTried))
		if err != nil {
			return nil, err
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO parse_errors (batch_id, position, file_name, error_message, encodings_tried)
			VALUES (?, ?, ?, ?, ?)
		`, id, i, e.FileName, e.ErrorMessage, string(tried))
		if err != nil {
			return nil, fmt.Errorf("insert parse error: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return s.FindBatchByID(ctx, id)
}

// FindBatchFiles retrieves the input files of a batch in input order.
func (s *BatchService) FindBatchFiles(ctx context.Context, batchID string) ([]*diskreport.BatchFile, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT file_name, format, digest, drives
		FROM batch_files
		WHERE batch_id = ?
		ORDER BY position
	`, batchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var files []*diskreport.BatchFile
	for rows.Next() {
		var f diskreport.BatchFile
		if err := rows.Scan(&f.FileName, &f.Format, &f.Digest, &f.Drives); err != nil {
			return nil, err
		}
		files = append(files, &f)
	}
	return files, rows.Err()
}

// FindParseErrors retrieves the error log of a batch in input order.
func (s *BatchService) FindParseErrors(ctx context.Context, batchID string) ([]diskreport.ParseErrorEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT file_name, error_message, encodings_tried
		FROM parse_errors
		WHERE batch_id = ?
		ORDER BY position
	`, batchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []diskreport.ParseErrorEntry
	for rows.Next() {
		var e diskreport.ParseErrorEntry
		var tried string
		if err := rows.Scan(&e.FileName, &e.ErrorMessage, &tried); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(tried), &e.EncodingsTried); err != nil {
			return nil, fmt.Errorf("failed to parse encodings_tried: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// scanner is implemented by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanBatch(row scanner) (*diskreport.Batch, error) {
	var batch diskreport.Batch
	var createdAt string
	var completedAt sql.NullString

	if err := row.Scan(&batch.ID, &batch.Status, &batch.TotalFiles, &batch.TotalDrives,
		&batch.DuplicatesRemoved, &batch.SpreadsheetPath, &batch.DelimitedPath, &batch.Message,
		&createdAt, &completedAt); err != nil {
		return nil, err
	}

	var err error
	batch.CreatedAt, err = parseRFC3339(createdAt, "created_at")
	if err != nil {
		return nil, err
	}
	if completedAt.Valid {
		t, err := parseRFC3339(completedAt.String, "completed_at")
		if err != nil {
			return nil, err
		}
		batch.CompletedAt = &t
	}
	return &batch, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
