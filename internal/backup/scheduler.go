// Package backup periodically copies the full application state to object storage.
package backup

import (
	"alcyxob/gym-tracker/internal/domain"
	"alcyxob/gym-tracker/internal/export"
	"alcyxob/gym-tracker/internal/storage"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron"
)

// Prefix is the object key prefix of every backup.
const Prefix = "backups/"

const runTimeout = 2 * time.Minute

// Snapshotter provides a consistent copy of the state.
type Snapshotter interface {
	Snapshot(ctx context.Context) domain.Snapshot
}

// Scheduler writes a JSON snapshot on a cron schedule and keeps the newest Keep backups.
type Scheduler struct {
	spec    string
	source  Snapshotter
	storage storage.FileStorage
	keep    int
	now     func() time.Time

	mu   sync.Mutex // serializes runs
	cron *cron.Cron
}

// NewScheduler validates spec and returns a stopped scheduler. keep <= 0 disables pruning.
func NewScheduler(spec string, source Snapshotter, fileStorage storage.FileStorage, keep int) (*Scheduler, error) {
	if fileStorage == nil {
		return nil, storage.ErrStorageDisabled
	}
	if spec == "" {
		return nil, errors.New("backup schedule is empty")
	}
	s := &Scheduler{
		spec:    spec,
		source:  source,
		storage: fileStorage,
		keep:    keep,
		now:     func() time.Time { return time.Now().UTC() },
		cron:    cron.New(),
	}
	if err := s.cron.AddFunc(spec, s.runScheduled); err != nil {
		return nil, fmt.Errorf("invalid backup schedule %q: %w", spec, err)
	}
	return s, nil
}

// Start runs the schedule in the background.
func (s *Scheduler) Start() {
	slog.Info("backup scheduler started", "schedule", s.spec, "keep", s.keep)
	s.cron.Start()
}

// Stop halts the schedule. A run in progress finishes.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	slog.Info("backup scheduler stopped")
}

func (s *Scheduler) runScheduled() {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()
	if _, err := s.RunOnce(ctx); err != nil {
		slog.Error("scheduled backup failed", "err", err)
	}
}

// RunOnce writes one backup and prunes old ones. It returns the new object key.
func (s *Scheduler) RunOnce(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := export.SnapshotJSON(s.source.Snapshot(ctx))
	if err != nil {
		return "", fmt.Errorf("failed to encode snapshot: %w", err)
	}
	key := fmt.Sprintf("%sstate-%s.json", Prefix, s.now().Format("20060102T150405.000Z"))
	if err := s.storage.PutObject(ctx, key, "application/json", data); err != nil {
		return "", fmt.Errorf("failed to upload backup: %w", err)
	}
	slog.Info("backup written", "key", key, "bytes", len(data))

	if err := s.prune(ctx); err != nil {
		// The new backup is in place; a failed prune is retried on the next run.
		slog.Warn("failed to prune old backups", "err", err)
	}
	return key, nil
}

// prune deletes all but the newest s.keep backups. Keys sort by timestamp.
func (s *Scheduler) prune(ctx context.Context) error {
	if s.keep <= 0 {
		return nil
	}
	keys, err := s.storage.ListObjects(ctx, Prefix)
	if err != nil {
		return err
	}
	if len(keys) <= s.keep {
		return nil
	}
	for _, key := range keys[:len(keys)-s.keep] {
		if err := s.storage.DeleteObject(ctx, key); err != nil {
			return fmt.Errorf("failed to delete %s: %w", key, err)
		}
		slog.Debug("old backup deleted", "key", key)
	}
	return nil
}
