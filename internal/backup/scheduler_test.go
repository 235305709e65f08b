package backup

import (
	"alcyxob/gym-tracker/internal/domain"
	"alcyxob/gym-tracker/internal/storage"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fixedSnapshot struct {
	snap domain.Snapshot
}

func (f fixedSnapshot) Snapshot(ctx context.Context) domain.Snapshot {
	return f.snap
}

type failingListStorage struct {
	*storage.MemoryStorage
}

func (f failingListStorage) ListObjects(ctx context.Context, prefix string) ([]string, error) {
	return nil, errors.New("list unavailable")
}

func newTestScheduler(t *testing.T, store storage.FileStorage, keep int) *Scheduler {
	t.Helper()
	source := fixedSnapshot{snap: domain.Snapshot{
		Exercises: []domain.Exercise{{ID: "ex1", Name: "Bench Press"}},
		Templates: []domain.WorkoutTemplate{},
		History:   []domain.CompletedSession{},
	}}
	s, err := NewScheduler("@every 1h", source, store, keep)
	require.NoError(t, err)

	clock := time.Date(2026, 5, 1, 6, 0, 0, 0, time.UTC)
	s.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	return s
}

func TestNewSchedulerValidation(t *testing.T) {
	store := storage.NewMemoryStorage()

	_, err := NewScheduler("@every 1h", fixedSnapshot{}, nil, 3)
	require.ErrorIs(t, err, storage.ErrStorageDisabled)

	_, err = NewScheduler("", fixedSnapshot{}, store, 3)
	require.Error(t, err)

	_, err = NewScheduler("not a schedule", fixedSnapshot{}, store, 3)
	require.Error(t, err)
}

func TestRunOnceWritesSnapshot(t *testing.T) {
	store := storage.NewMemoryStorage()
	s := newTestScheduler(t, store, 0)

	key, err := s.RunOnce(context.Background())
	require.NoError(t, err)
	require.Equal(t, "backups/state-20260501T060100.000Z.json", key)

	body, contentType, ok := store.Object(key)
	require.True(t, ok)
	require.Equal(t, "application/json", contentType)

	var snap domain.Snapshot
	require.NoError(t, json.Unmarshal(body, &snap))
	require.Len(t, snap.Exercises, 1)
	require.Equal(t, "Bench Press", snap.Exercises[0].Name)
}

func TestRunOncePrunesOldest(t *testing.T) {
	store := storage.NewMemoryStorage()
	require.NoError(t, store.PutObject(context.Background(), "exports/history.xlsx", "x", []byte("keep me")))
	s := newTestScheduler(t, store, 2)

	var written []string
	for i := 0; i < 4; i++ {
		key, err := s.RunOnce(context.Background())
		require.NoError(t, err, fmt.Sprintf("run %d", i))
		written = append(written, key)
	}

	keys, err := store.ListObjects(context.Background(), Prefix)
	require.NoError(t, err)
	require.Equal(t, written[2:], keys)

	_, _, ok := store.Object("exports/history.xlsx")
	require.True(t, ok)
}

func TestRunOnceSurvivesPruneFailure(t *testing.T) {
	store := failingListStorage{storage.NewMemoryStorage()}
	s := newTestScheduler(t, store, 1)

	key, err := s.RunOnce(context.Background())
	require.NoError(t, err)

	_, _, ok := store.Object(key)
	require.True(t, ok)
}

func TestStartStop(t *testing.T) {
	s := newTestScheduler(t, storage.NewMemoryStorage(), 1)
	s.Start()
	s.Stop()
}
