package service

import (
	"alcyxob/gym-tracker/internal/export"
	"alcyxob/gym-tracker/internal/storage"
	"context"
	"fmt"
	"log/slog"
	"time"
)

// ExportService renders history for download and publishes it to object storage.
type ExportService interface {
	// HistoryWorkbook renders the full history as an xlsx workbook.
	HistoryWorkbook(ctx context.Context) ([]byte, error)
	// PublishHistoryWorkbook uploads the workbook and returns a temporary download URL.
	PublishHistoryWorkbook(ctx context.Context) (string, error)
}

type exportService struct {
	history HistoryService
	storage storage.FileStorage // nil when object storage is disabled
	now     func() time.Time
}

// NewExportService creates an ExportService. fileStorage may be nil.
func NewExportService(history HistoryService, fileStorage storage.FileStorage) ExportService {
	return &exportService{
		history: history,
		storage: fileStorage,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (s *exportService) HistoryWorkbook(ctx context.Context) ([]byte, error) {
	snap := s.history.Snapshot(ctx)
	return export.HistoryWorkbookBytes(snap.History, snap.Exercises)
}

func (s *exportService) PublishHistoryWorkbook(ctx context.Context) (string, error) {
	if s.storage == nil {
		return "", storage.ErrStorageDisabled
	}
	data, err := s.HistoryWorkbook(ctx)
	if err != nil {
		return "", err
	}

	objectKey := fmt.Sprintf("exports/history-%s.xlsx", s.now().Format("20060102T150405Z"))
	if err := s.storage.PutObject(ctx, objectKey, export.ContentTypeXLSX, data); err != nil {
		return "", fmt.Errorf("failed to upload history export: %w", err)
	}
	url, err := s.storage.GeneratePresignedDownloadURL(ctx, objectKey, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return "", fmt.Errorf("failed to presign history export: %w", err)
	}

	slog.Info("history export published", "key", objectKey, "bytes", len(data))
	return url, nil
}
