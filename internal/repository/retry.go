package repository

import (
	"alcyxob/gym-tracker/internal/domain"
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// RetryPolicy bounds how long a failing collaborator call is retried.
type RetryPolicy struct {
	MaxTries        uint
	MaxElapsed      time.Duration
	InitialInterval time.Duration
}

func (p RetryPolicy) options() []backoff.RetryOption {
	b := backoff.NewExponentialBackOff()
	if p.InitialInterval > 0 {
		b.InitialInterval = p.InitialInterval
	}
	opts := []backoff.RetryOption{backoff.WithBackOff(b), backoff.WithMaxTries(p.MaxTries)}
	if p.MaxElapsed > 0 {
		opts = append(opts, backoff.WithMaxElapsedTime(p.MaxElapsed))
	}
	return opts
}

// retryingRepository retries transient collaborator failures with exponential backoff.
// Not-found and malformed results are final and returned immediately.
type retryingRepository struct {
	next   StateRepository
	policy RetryPolicy
}

// WithRetry decorates next with retries. A policy with MaxTries <= 1 returns next unchanged.
func WithRetry(next StateRepository, policy RetryPolicy) StateRepository {
	if policy.MaxTries <= 1 {
		return next
	}
	return &retryingRepository{next: next, policy: policy}
}

func retry[T any](ctx context.Context, r *retryingRepository, key string, op func() (T, error)) (T, error) {
	attempt := 0
	return backoff.Retry(ctx, func() (T, error) {
		attempt++
		v, err := op()
		if err == nil {
			return v, nil
		}
		if IsSoftLoadError(err) {
			return v, backoff.Permanent(err)
		}
		slog.Warn("state repository call failed", "key", key, "attempt", attempt, "err", err)
		return v, err
	}, r.policy.options()...)
}

func (r *retryingRepository) save(ctx context.Context, key string, op func() error) error {
	_, err := retry(ctx, r, key, func() (struct{}, error) { return struct{}{}, op() })
	return err
}

func (r *retryingRepository) LoadExercises(ctx context.Context) ([]domain.Exercise, error) {
	return retry(ctx, r, KeyExercises, func() ([]domain.Exercise, error) { return r.next.LoadExercises(ctx) })
}

func (r *retryingRepository) SaveExercises(ctx context.Context, exercises []domain.Exercise) error {
	return r.save(ctx, KeyExercises, func() error { return r.next.SaveExercises(ctx, exercises) })
}

func (r *retryingRepository) LoadTemplates(ctx context.Context) ([]domain.WorkoutTemplate, error) {
	return retry(ctx, r, KeyTemplates, func() ([]domain.WorkoutTemplate, error) { return r.next.LoadTemplates(ctx) })
}

func (r *retryingRepository) SaveTemplates(ctx context.Context, templates []domain.WorkoutTemplate) error {
	return r.save(ctx, KeyTemplates, func() error { return r.next.SaveTemplates(ctx, templates) })
}

func (r *retryingRepository) LoadActiveSession(ctx context.Context) (*domain.ActiveSession, error) {
	return retry(ctx, r, KeyActiveSession, func() (*domain.ActiveSession, error) { return r.next.LoadActiveSession(ctx) })
}

func (r *retryingRepository) SaveActiveSession(ctx context.Context, session *domain.ActiveSession) error {
	return r.save(ctx, KeyActiveSession, func() error { return r.next.SaveActiveSession(ctx, session) })
}

func (r *retryingRepository) LoadHistory(ctx context.Context) ([]domain.CompletedSession, error) {
	return retry(ctx, r, KeyHistory, func() ([]domain.CompletedSession, error) { return r.next.LoadHistory(ctx) })
}

func (r *retryingRepository) SaveHistory(ctx context.Context, history []domain.CompletedSession) error {
	return r.save(ctx, KeyHistory, func() error { return r.next.SaveHistory(ctx, history) })
}

func (r *retryingRepository) Close() error {
	return r.next.Close()
}
