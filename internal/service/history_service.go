package service

import (
	"alcyxob/gym-tracker/internal/domain"
	"context"
)

// HistoryService reads completed sessions and whole-state snapshots.
type HistoryService interface {
	ListHistory(ctx context.Context) []domain.CompletedSession
	GetHistory(ctx context.Context, sessionID string) (*domain.CompletedSession, bool)
	Snapshot(ctx context.Context) domain.Snapshot
}

// ListHistory returns completed sessions, most recent first.
func (t *Tracker) ListHistory(ctx context.Context) []domain.CompletedSession {
	t.mu.Lock()
	defer t.mu.Unlock()
	return domain.CloneHistory(t.history)
}

// GetHistory finds one completed session by id.
func (t *Tracker) GetHistory(ctx context.Context, sessionID string) (*domain.CompletedSession, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, h := range t.history {
		if h.ID == sessionID {
			out := h.Clone()
			return &out, true
		}
	}
	return nil, false
}
