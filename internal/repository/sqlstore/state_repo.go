package sqlstore

import (
	"alcyxob/gym-tracker/internal/domain"
	"alcyxob/gym-tracker/internal/repository"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// StateRepository implements repository.StateRepository over the kv_state table.
type StateRepository struct {
	db *DB
}

// Ensure StateRepository implements repository.StateRepository.
var _ repository.StateRepository = (*StateRepository)(nil)

func (r *StateRepository) get(ctx context.Context, key string) ([]byte, error) {
	var value string
	err := r.db.db.QueryRowContext(ctx,
		r.db.rebind(`SELECT state_value FROM kv_state WHERE state_key = ?`), key,
	).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return []byte(value), nil
}

func (r *StateRepository) set(ctx context.Context, key string, value any) error {
	data, err := repository.EncodeJSON(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	_, err = r.db.db.ExecContext(ctx, r.db.rebind(
		`INSERT INTO kv_state (state_key, state_value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (state_key) DO UPDATE SET state_value = excluded.state_value, updated_at = excluded.updated_at`),
		key, string(data), time.Now().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func load[T any](ctx context.Context, r *StateRepository, key string) (T, error) {
	data, err := r.get(ctx, key)
	if err != nil {
		var zero T
		return zero, err
	}
	return repository.DecodeJSON[T](key, data)
}

func (r *StateRepository) LoadExercises(ctx context.Context) ([]domain.Exercise, error) {
	return load[[]domain.Exercise](ctx, r, repository.KeyExercises)
}

func (r *StateRepository) SaveExercises(ctx context.Context, exercises []domain.Exercise) error {
	return r.set(ctx, repository.KeyExercises, exercises)
}

func (r *StateRepository) LoadTemplates(ctx context.Context) ([]domain.WorkoutTemplate, error) {
	return load[[]domain.WorkoutTemplate](ctx, r, repository.KeyTemplates)
}

func (r *StateRepository) SaveTemplates(ctx context.Context, templates []domain.WorkoutTemplate) error {
	return r.set(ctx, repository.KeyTemplates, templates)
}

func (r *StateRepository) LoadActiveSession(ctx context.Context) (*domain.ActiveSession, error) {
	return load[*domain.ActiveSession](ctx, r, repository.KeyActiveSession)
}

func (r *StateRepository) SaveActiveSession(ctx context.Context, session *domain.ActiveSession) error {
	return r.set(ctx, repository.KeyActiveSession, session)
}

func (r *StateRepository) LoadHistory(ctx context.Context) ([]domain.CompletedSession, error) {
	return load[[]domain.CompletedSession](ctx, r, repository.KeyHistory)
}

func (r *StateRepository) SaveHistory(ctx context.Context, history []domain.CompletedSession) error {
	return r.set(ctx, repository.KeyHistory, history)
}

// Close closes the underlying database.
func (r *StateRepository) Close() error {
	return r.db.Close()
}
