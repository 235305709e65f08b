// Package memory keeps persisted state as JSON values in process memory.
// It behaves like the durable collaborators (values are serialized on write)
// and is used for ephemeral runs and tests.
package memory

import (
	"alcyxob/gym-tracker/internal/domain"
	"alcyxob/gym-tracker/internal/repository"
	"context"
	"sync"
)

type memoryStateRepository struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewMemoryStateRepository creates an empty in-memory collaborator.
func NewMemoryStateRepository() repository.StateRepository {
	return &memoryStateRepository{values: make(map[string][]byte)}
}

// NewMemoryStateRepositoryWithValues seeds raw stored values, e.g. to simulate corrupt data.
func NewMemoryStateRepositoryWithValues(values map[string][]byte) repository.StateRepository {
	r := &memoryStateRepository{values: make(map[string][]byte, len(values))}
	for k, v := range values {
		r.values[k] = append([]byte(nil), v...)
	}
	return r
}

func (r *memoryStateRepository) get(key string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.values[key]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return v, nil
}

func (r *memoryStateRepository) set(key string, value any) error {
	data, err := repository.EncodeJSON(value)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values[key] = data
	return nil
}

func load[T any](r *memoryStateRepository, key string) (T, error) {
	data, err := r.get(key)
	if err != nil {
		var zero T
		return zero, err
	}
	return repository.DecodeJSON[T](key, data)
}

func (r *memoryStateRepository) LoadExercises(ctx context.Context) ([]domain.Exercise, error) {
	return load[[]domain.Exercise](r, repository.KeyExercises)
}

func (r *memoryStateRepository) SaveExercises(ctx context.Context, exercises []domain.Exercise) error {
	return r.set(repository.KeyExercises, exercises)
}

func (r *memoryStateRepository) LoadTemplates(ctx context.Context) ([]domain.WorkoutTemplate, error) {
	return load[[]domain.WorkoutTemplate](r, repository.KeyTemplates)
}

func (r *memoryStateRepository) SaveTemplates(ctx context.Context, templates []domain.WorkoutTemplate) error {
	return r.set(repository.KeyTemplates, templates)
}

func (r *memoryStateRepository) LoadActiveSession(ctx context.Context) (*domain.ActiveSession, error) {
	return load[*domain.ActiveSession](r, repository.KeyActiveSession)
}

func (r *memoryStateRepository) SaveActiveSession(ctx context.Context, session *domain.ActiveSession) error {
	return r.set(repository.KeyActiveSession, session)
}

func (r *memoryStateRepository) LoadHistory(ctx context.Context) ([]domain.CompletedSession, error) {
	return load[[]domain.CompletedSession](r, repository.KeyHistory)
}

func (r *memoryStateRepository) SaveHistory(ctx context.Context, history []domain.CompletedSession) error {
	return r.set(repository.KeyHistory, history)
}

func (r *memoryStateRepository) Close() error {
	return nil
}
