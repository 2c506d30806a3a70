package datastore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alansmodic/edit-ledger/internal/common/errorwrapper"
	"github.com/alansmodic/edit-ledger/internal/models"
	"github.com/parquet-go/parquet-go"
	"github.com/rs/zerolog"
)

// ExportResult describes a finished export.
type ExportResult struct {
	FilePath       string        `json:"file_path"`
	RecordsWritten int           `json:"records_written"`
	FileSize       int64         `json:"file_size"`
	WriteTime      time.Duration `json:"write_time_ns"`
}

// LedgerExporter writes the revision ledger to a Parquet file.
type LedgerExporter struct {
	store  *RevisionStore
	codec  string
	logger zerolog.Logger
}

// NewLedgerExporter creates an exporter using the store's compression codec.
func NewLedgerExporter(store *RevisionStore, logger zerolog.Logger) (*LedgerExporter, error) {
	if store == nil {
		return nil, errorwrapper.NewValidationError("store", store, "revision store cannot be nil")
	}
	return &LedgerExporter{
		store:  store,
		codec:  store.cfg.CompressionCodec,
		logger: logger.With().Str("component", "LedgerExporter").Logger(),
	}, nil
}

// compressionOption maps the configured codec name to a writer option
func (e *LedgerExporter) compressionOption() parquet.WriterOption {
	switch strings.ToLower(e.codec) {
	case "snappy":
		return parquet.Compression(&parquet.Snappy)
	case "gzip":
		return parquet.Compression(&parquet.Gzip)
	case "zstd":
		return parquet.Compression(&parquet.Zstd)
	case "", "none", "uncompressed":
		return parquet.Compression(&parquet.Uncompressed)
	default:
		e.logger.Warn().Str("codec", e.codec).Msg("Unsupported compression codec string, defaulting to Uncompressed")
		return parquet.Compression(&parquet.Uncompressed)
	}
}

// Export writes every stored revision, one row each, to filePath. The file
// is written to a temporary sibling first and renamed into place.
func (e *LedgerExporter) Export(ctx context.Context, filePath string) (*ExportResult, error) {
	start := time.Now()
	if filePath == "" {
		return nil, errorwrapper.NewValidationError("file_path", filePath, "export path cannot be empty")
	}
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}

	tmpPath := filePath + ".tmp"
	file, err := os.Create(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create export file '%s': %w", tmpPath, err)
	}
	cleanup := func() {
		file.Close()
		os.Remove(tmpPath)
	}

	writer := parquet.NewWriter(file, parquet.SchemaOf(LedgerRecord{}), e.compressionOption())

	written := 0
	var prev *models.Revision
	err = e.store.ForEachRevision(ctx, func(rev *models.Revision) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if prev != nil && prev.PostID != rev.PostID {
			prev = nil
		}
		if err := writer.Write(newLedgerRecord(rev, prev)); err != nil {
			return fmt.Errorf("failed to write revision %d: %w", rev.ID, err)
		}
		prev = rev
		written++
		return nil
	})
	if err != nil {
		e.logger.Error().Err(err).Str("path", filePath).Msg("Ledger export failed")
		cleanup()
		return nil, err
	}

	if err := writer.Close(); err != nil {
		cleanup()
		return nil, fmt.Errorf("closing Parquet writer: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(tmpPath)
		return nil, fmt.Errorf("closing export file: %w", err)
	}
	if err := os.Rename(tmpPath, filePath); err != nil {
		os.Remove(tmpPath)
		return nil, fmt.Errorf("failed to move export into place: %w", err)
	}

	result := &ExportResult{FilePath: filePath, RecordsWritten: written, WriteTime: time.Since(start)}
	if info, err := os.Stat(filePath); err == nil {
		result.FileSize = info.Size()
	}

	e.logger.Info().
		Str("path", filePath).
		Int("records", written).
		Int64("bytes", result.FileSize).
		Dur("duration", result.WriteTime).
		Msg("Ledger exported")
	return result, nil
}

// ReadLedger reads an exported ledger file back.
func ReadLedger(filePath string) ([]LedgerRecord, error) {
	osFile, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger file '%s': %w", filePath, err)
	}
	defer osFile.Close()

	stat, err := osFile.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat ledger file '%s': %w", filePath, err)
	}
	if stat.Size() == 0 {
		return []LedgerRecord{}, nil
	}

	pqFile, err := parquet.OpenFile(osFile, stat.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file '%s': %w", filePath, err)
	}

	reader := parquet.NewReader(pqFile)
	defer reader.Close()

	records := make([]LedgerRecord, 0, int(pqFile.NumRows()))
	for {
		var record LedgerRecord
		if err := reader.Read(&record); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("error reading record from parquet file '%s': %w", filePath, err)
		}
		records = append(records, record)
	}
	return records, nil
}
