package service

import (
	"alcyxob/gym-tracker/internal/domain"
	"alcyxob/gym-tracker/internal/repository"
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// PersistenceError wraps a failure of the state repository to store a key.
// It never rolls back the in-memory model.
type PersistenceError struct {
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to persist %s: %v", e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// dirty marks which persisted keys a mutation touched.
type dirty uint8

const (
	dirtyExercises dirty = 1 << iota
	dirtyTemplates
	dirtyActive
	dirtyHistory
)

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// WithIDGenerator overrides the identifier generator.
func WithIDGenerator(newID domain.IDFunc) Option {
	return func(t *Tracker) { t.newID = newID }
}

// WithPersistErrorHandler receives every *PersistenceError after it is logged.
func WithPersistErrorHandler(fn func(error)) Option {
	return func(t *Tracker) { t.onPersistError = fn }
}

// WithStrictCompletion sets whether Complete requires at least one logged set
// when the caller does not say otherwise.
func WithStrictCompletion(strict bool) Option {
	return func(t *Tracker) { t.strictCompletion = strict }
}

// Tracker owns the application state: the exercise library, templates, the
// active session and history. Every operation is serialized through its
// methods; accepted mutations hand the new value of each touched key to the
// repository before returning.
type Tracker struct {
	mu sync.Mutex

	repo             repository.StateRepository
	now              func() time.Time
	newID            domain.IDFunc
	onPersistError   func(error)
	strictCompletion bool

	exercises []domain.Exercise
	templates []domain.WorkoutTemplate
	active    *domain.ActiveSession
	history   []domain.CompletedSession
}

// Ensure Tracker implements every service interface.
var (
	_ ExerciseService = (*Tracker)(nil)
	_ TemplateService = (*Tracker)(nil)
	_ SessionService  = (*Tracker)(nil)
	_ HistoryService  = (*Tracker)(nil)
)

// NewTracker loads persisted state from repo. Missing or malformed values
// start empty; any other load failure is returned.
func NewTracker(ctx context.Context, repo repository.StateRepository, opts ...Option) (*Tracker, error) {
	t := &Tracker{
		repo:  repo,
		now:   func() time.Time { return time.Now().UTC() },
		newID: domain.NewID,
	}
	for _, opt := range opts {
		opt(t)
	}
	if err := t.load(ctx); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Tracker) load(ctx context.Context) error {
	exercises, err := loadOrEmpty(ctx, repository.KeyExercises, t.repo.LoadExercises)
	if err != nil {
		return err
	}
	templates, err := loadOrEmpty(ctx, repository.KeyTemplates, t.repo.LoadTemplates)
	if err != nil {
		return err
	}
	active, err := loadOrEmpty(ctx, repository.KeyActiveSession, t.repo.LoadActiveSession)
	if err != nil {
		return err
	}
	history, err := loadOrEmpty(ctx, repository.KeyHistory, t.repo.LoadHistory)
	if err != nil {
		return err
	}

	if exercises == nil {
		exercises = []domain.Exercise{}
	}
	if templates == nil {
		templates = []domain.WorkoutTemplate{}
	}
	for i := range templates {
		if templates[i].Items == nil {
			templates[i].Items = []domain.ExerciseRef{}
		}
	}
	if active != nil {
		active.Normalize()
	}
	if history == nil {
		history = []domain.CompletedSession{}
	}
	for i := range history {
		history[i].ActiveSession.Normalize()
	}

	t.exercises, t.templates, t.active, t.history = exercises, templates, active, history
	slog.Info("state loaded",
		"exercises", len(exercises),
		"templates", len(templates),
		"active_session", active != nil,
		"history", len(history),
	)
	return nil
}

func loadOrEmpty[T any](ctx context.Context, key string, fn func(context.Context) (T, error)) (T, error) {
	v, err := fn(ctx)
	if err == nil {
		return v, nil
	}
	var zero T
	if repository.IsSoftLoadError(err) {
		slog.Debug("stored value unavailable, starting empty", "key", key, "err", err)
		return zero, nil
	}
	return zero, fmt.Errorf("failed to load %s: %w", key, err)
}

// persist emits the complete value of every key in d. Failures are logged
// and reported but leave the in-memory model untouched. Callers hold t.mu.
//
// Keys that reference exercises are written before the library itself, and
// history before the active session, so a write failing part way leaves an
// orphan rather than a dangling reference or a lost workout.
func (t *Tracker) persist(ctx context.Context, d dirty) {
	if d&dirtyTemplates != 0 {
		t.report(repository.KeyTemplates, t.repo.SaveTemplates(ctx, domain.CloneTemplates(t.templates)))
	}
	if d&dirtyHistory != 0 {
		t.report(repository.KeyHistory, t.repo.SaveHistory(ctx, domain.CloneHistory(t.history)))
	}
	if d&dirtyActive != 0 {
		t.report(repository.KeyActiveSession, t.repo.SaveActiveSession(ctx, t.active.Clone()))
	}
	if d&dirtyExercises != 0 {
		t.report(repository.KeyExercises, t.repo.SaveExercises(ctx, domain.CloneExercises(t.exercises)))
	}
}

func (t *Tracker) report(key string, err error) {
	if err == nil {
		return
	}
	perr := &PersistenceError{Key: key, Err: err}
	slog.Error("state persistence failed", "key", key, "err", err)
	if t.onPersistError != nil {
		t.onPersistError(perr)
	}
}

func (t *Tracker) exerciseByID(id string) (domain.Exercise, bool) {
	for _, ex := range t.exercises {
		if ex.ID == id {
			return ex, true
		}
	}
	return domain.Exercise{}, false
}

func (t *Tracker) templateByID(id string) (domain.WorkoutTemplate, bool) {
	for _, tmpl := range t.templates {
		if tmpl.ID == id {
			return tmpl, true
		}
	}
	return domain.WorkoutTemplate{}, false
}

// Snapshot returns a deep copy of the whole state.
func (t *Tracker) Snapshot(ctx context.Context) domain.Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return domain.Snapshot{
		TakenAt:       t.now(),
		Exercises:     domain.CloneExercises(t.exercises),
		Templates:     domain.CloneTemplates(t.templates),
		ActiveSession: t.active.Clone(),
		History:       domain.CloneHistory(t.history),
	}
}
