package service

import (
	"alcyxob/gym-tracker/internal/domain"
	"alcyxob/gym-tracker/internal/export"
	"alcyxob/gym-tracker/internal/storage"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func completedWorkout(t *testing.T, tr *Tracker) {
	t.Helper()
	ctx := context.Background()
	ex := mustCreateExercise(t, tr, "Deadlift", "Back")
	_, err := tr.StartEmpty(ctx, "Pull")
	require.NoError(t, err)
	entryID := tr.AddExercise(ctx, ex.ID).Entries[0].ID
	_, err = tr.AddSet(ctx, entryID, domain.SetInput{Weight: "140", Reps: "3"})
	require.NoError(t, err)
	_, err = tr.Complete(ctx, CompleteOptions{})
	require.NoError(t, err)
}

func TestExportServiceWithoutStorage(t *testing.T) {
	tr := setupTestTracker(t, nil)
	completedWorkout(t, tr)
	svc := NewExportService(tr, nil)

	data, err := svc.HistoryWorkbook(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, data)

	_, err = svc.PublishHistoryWorkbook(context.Background())
	require.ErrorIs(t, err, storage.ErrStorageDisabled)
}

func TestPublishHistoryWorkbook(t *testing.T) {
	tr := setupTestTracker(t, nil)
	completedWorkout(t, tr)
	store := storage.NewMemoryStorage()
	svc := NewExportService(tr, store)

	url, err := svc.PublishHistoryWorkbook(context.Background())
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, "memory:///exports/history-"), url)

	keys, err := store.ListObjects(context.Background(), "exports/")
	require.NoError(t, err)
	require.Len(t, keys, 1)
	_, contentType, ok := store.Object(keys[0])
	require.True(t, ok)
	require.Equal(t, export.ContentTypeXLSX, contentType)
}
