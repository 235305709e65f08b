package repository

import (
	"alcyxob/gym-tracker/internal/domain"
	"context"
	"errors"
	"fmt"
)

// Error constants for repository layer
var (
	ErrNotFound  = RepositoryError("not found")
	ErrMalformed = RepositoryError("malformed stored value")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// Logical keys of the persisted state.
const (
	KeyExercises     = "exercises"
	KeyTemplates     = "templates"
	KeyActiveSession = "activeSession"
	KeyHistory       = "history"
)

// StateRepository is the persistence collaborator. Each Save receives the
// complete new value of its key. Loads return ErrNotFound for keys never written
// and wrap ErrMalformed for values that cannot be decoded.
type StateRepository interface {
	LoadExercises(ctx context.Context) ([]domain.Exercise, error)
	SaveExercises(ctx context.Context, exercises []domain.Exercise) error

	LoadTemplates(ctx context.Context) ([]domain.WorkoutTemplate, error)
	SaveTemplates(ctx context.Context, templates []domain.WorkoutTemplate) error

	// LoadActiveSession returns nil when no session is in progress.
	LoadActiveSession(ctx context.Context) (*domain.ActiveSession, error)
	// SaveActiveSession stores the absent marker when session is nil.
	SaveActiveSession(ctx context.Context, session *domain.ActiveSession) error

	LoadHistory(ctx context.Context) ([]domain.CompletedSession, error)
	SaveHistory(ctx context.Context, history []domain.CompletedSession) error

	Close() error
}

// Malformed wraps a decode failure for key so callers can match ErrMalformed.
func Malformed(key string, err error) error {
	return fmt.Errorf("%s: %w: %v", key, ErrMalformed, err)
}

// IsSoftLoadError reports whether a load error means "treat as empty".
func IsSoftLoadError(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrMalformed)
}
