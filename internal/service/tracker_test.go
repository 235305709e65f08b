package service

import (
	"alcyxob/gym-tracker/internal/domain"
	"alcyxob/gym-tracker/internal/repository"
	"alcyxob/gym-tracker/internal/repository/memory"
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func seqIDs() domain.IDFunc {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

// stepClock advances one minute per call.
func stepClock() func() time.Time {
	var mu sync.Mutex
	now := testNow
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now = now.Add(time.Minute)
		return now
	}
}

// testingT is satisfied by *testing.T and *rapid.T.
type testingT interface {
	require.TestingT
	Helper()
}

// setupTestTracker creates a Tracker over repo (a fresh in-memory repository when nil)
// with deterministic ids and clock.
func setupTestTracker(t testingT, repo repository.StateRepository, opts ...Option) *Tracker {
	t.Helper()
	if repo == nil {
		repo = memory.NewMemoryStateRepository()
	}
	opts = append([]Option{WithClock(stepClock()), WithIDGenerator(seqIDs())}, opts...)
	tracker, err := NewTracker(context.Background(), repo, opts...)
	require.NoError(t, err)
	return tracker
}

func mustCreateExercise(t testingT, tr *Tracker, name, group string) domain.Exercise {
	t.Helper()
	ex, err := tr.CreateExercise(context.Background(), domain.ExerciseDraft{Name: name, MuscleGroup: group})
	require.NoError(t, err)
	return *ex
}

// stubRepo overrides selected calls of an in-memory repository.
type stubRepo struct {
	repository.StateRepository
	loadExercisesErr error
	saveErr          error
	failKey          string

	mu    sync.Mutex
	saves []string
}

func newStubRepo() *stubRepo {
	return &stubRepo{StateRepository: memory.NewMemoryStateRepository()}
}

func (s *stubRepo) record(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves = append(s.saves, key)
	if s.failKey != "" && s.failKey != key {
		return nil
	}
	return s.saveErr
}

func (s *stubRepo) savedKeys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.saves...)
}

func (s *stubRepo) LoadExercises(ctx context.Context) ([]domain.Exercise, error) {
	if s.loadExercisesErr != nil {
		return nil, s.loadExercisesErr
	}
	return s.StateRepository.LoadExercises(ctx)
}

func (s *stubRepo) SaveExercises(ctx context.Context, v []domain.Exercise) error {
	if err := s.record(repository.KeyExercises); err != nil {
		return err
	}
	return s.StateRepository.SaveExercises(ctx, v)
}

func (s *stubRepo) SaveTemplates(ctx context.Context, v []domain.WorkoutTemplate) error {
	if err := s.record(repository.KeyTemplates); err != nil {
		return err
	}
	return s.StateRepository.SaveTemplates(ctx, v)
}

func (s *stubRepo) SaveActiveSession(ctx context.Context, v *domain.ActiveSession) error {
	if err := s.record(repository.KeyActiveSession); err != nil {
		return err
	}
	return s.StateRepository.SaveActiveSession(ctx, v)
}

func (s *stubRepo) SaveHistory(ctx context.Context, v []domain.CompletedSession) error {
	if err := s.record(repository.KeyHistory); err != nil {
		return err
	}
	return s.StateRepository.SaveHistory(ctx, v)
}

func TestNewTrackerStartsEmpty(t *testing.T) {
	tr := setupTestTracker(t, nil)
	ctx := context.Background()

	require.NotNil(t, tr.ListExercises(ctx))
	require.Empty(t, tr.ListExercises(ctx))
	require.Empty(t, tr.ListTemplates(ctx))
	require.Nil(t, tr.ActiveSession(ctx))
	require.Empty(t, tr.ListHistory(ctx))
}

func TestNewTrackerTreatsMalformedAsEmpty(t *testing.T) {
	repo := memory.NewMemoryStateRepositoryWithValues(map[string][]byte{
		repository.KeyExercises:     []byte(`{"not":"a list"}`),
		repository.KeyTemplates:     []byte(`[{"id":"t1","name":"Push","items":[{"exerciseId":"a"}]}]`),
		repository.KeyActiveSession: []byte(`null`),
		repository.KeyHistory:       []byte(`garbage`),
	})
	tr := setupTestTracker(t, repo)
	ctx := context.Background()

	require.Empty(t, tr.ListExercises(ctx))
	require.Len(t, tr.ListTemplates(ctx), 1)
	require.Nil(t, tr.ActiveSession(ctx))
	require.Empty(t, tr.ListHistory(ctx))
}

func TestNewTrackerRestoresState(t *testing.T) {
	repo := memory.NewMemoryStateRepository()
	first := setupTestTracker(t, repo)
	ctx := context.Background()

	bench := mustCreateExercise(t, first, "Bench Press", "Chest")
	_, err := first.StartEmpty(ctx, "Morning")
	require.NoError(t, err)
	session := first.AddExercise(ctx, bench.ID)
	_, err = first.AddSet(ctx, session.Entries[0].ID, domain.SetInput{Weight: "60", Reps: "5"})
	require.NoError(t, err)

	second := setupTestTracker(t, repo)
	require.Equal(t, first.Snapshot(ctx).Exercises, second.Snapshot(ctx).Exercises)
	require.Equal(t, first.ActiveSession(ctx), second.ActiveSession(ctx))
}

func TestNewTrackerFailsOnHardLoadError(t *testing.T) {
	repo := newStubRepo()
	repo.loadExercisesErr = errors.New("connection refused")

	_, err := NewTracker(context.Background(), repo)
	require.Error(t, err)
	require.ErrorContains(t, err, "connection refused")
}

func TestPersistenceFailureKeepsMemory(t *testing.T) {
	repo := newStubRepo()
	repo.saveErr = errors.New("quota exceeded")

	var reported []error
	tr := setupTestTracker(t, repo, WithPersistErrorHandler(func(err error) {
		reported = append(reported, err)
	}))
	ctx := context.Background()

	ex, err := tr.CreateExercise(ctx, domain.ExerciseDraft{Name: "Squat"})
	require.NoError(t, err)
	require.Len(t, tr.ListExercises(ctx), 1)
	require.Equal(t, ex.ID, tr.ListExercises(ctx)[0].ID)

	require.Len(t, reported, 1)
	var perr *PersistenceError
	require.ErrorAs(t, reported[0], &perr)
	require.Equal(t, repository.KeyExercises, perr.Key)
	require.ErrorContains(t, perr, "quota exceeded")
}

func TestMutationsEmitTouchedKeys(t *testing.T) {
	repo := newStubRepo()
	tr := setupTestTracker(t, repo)
	ctx := context.Background()

	a := mustCreateExercise(t, tr, "A", "")
	b := mustCreateExercise(t, tr, "B", "")
	require.Equal(t, []string{repository.KeyExercises, repository.KeyExercises}, repo.savedKeys())

	_, err := tr.CreateTemplate(ctx, domain.TemplateDraft{Name: "T", ExerciseIDs: []string{a.ID, b.ID}})
	require.NoError(t, err)
	_, err = tr.StartEmpty(ctx, "")
	require.NoError(t, err)
	tr.AddExercise(ctx, a.ID)

	repo.saves = nil
	require.True(t, tr.DeleteExercise(ctx, a.ID))
	require.Equal(t,
		[]string{repository.KeyTemplates, repository.KeyActiveSession, repository.KeyExercises},
		repo.savedKeys())

	repo.saves = nil
	_, err = tr.Complete(ctx, CompleteOptions{})
	require.NoError(t, err)
	require.Equal(t, []string{repository.KeyHistory, repository.KeyActiveSession}, repo.savedKeys())

	// No-ops emit nothing.
	repo.saves = nil
	tr.Cancel(ctx)
	tr.DeleteExercise(ctx, "missing")
	tr.DeleteTemplate(ctx, "missing")
	require.Empty(t, repo.savedKeys())
}

func TestCascadeWriteFailureLeavesNoDanglingReferences(t *testing.T) {
	repo := newStubRepo()
	tr := setupTestTracker(t, repo)
	ctx := context.Background()

	a := mustCreateExercise(t, tr, "A", "")
	b := mustCreateExercise(t, tr, "B", "")
	_, err := tr.CreateTemplate(ctx, domain.TemplateDraft{Name: "T", ExerciseIDs: []string{a.ID, b.ID}})
	require.NoError(t, err)
	_, err = tr.StartEmpty(ctx, "")
	require.NoError(t, err)
	tr.AddExercise(ctx, a.ID)

	repo.failKey = repository.KeyExercises
	repo.saveErr = errors.New("disk full")
	require.True(t, tr.DeleteExercise(ctx, a.ID))

	// Reload from what reached the repository.
	reloaded, err := NewTracker(ctx, repo.StateRepository)
	require.NoError(t, err)

	require.Len(t, reloaded.ListExercises(ctx), 2, "the library write failed, so A survives as an orphan")
	for _, tmpl := range reloaded.ListTemplates(ctx) {
		for _, item := range tmpl.Items {
			require.NotEqual(t, a.ID, item.ExerciseID)
		}
	}
	active := reloaded.ActiveSession(ctx)
	require.NotNil(t, active)
	require.False(t, active.HasExercise(a.ID))
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	tr := setupTestTracker(t, nil)
	ctx := context.Background()
	ex := mustCreateExercise(t, tr, "Row", "Back")
	_, err := tr.StartEmpty(ctx, "")
	require.NoError(t, err)
	tr.AddExercise(ctx, ex.ID)

	snap := tr.Snapshot(ctx)
	snap.Exercises[0].Name = "changed"
	snap.ActiveSession.Entries = nil

	require.Equal(t, "Row", tr.ListExercises(ctx)[0].Name)
	require.Len(t, tr.ActiveSession(ctx).Entries, 1)
}
