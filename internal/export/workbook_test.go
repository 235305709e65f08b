package export

import (
	"alcyxob/gym-tracker/internal/domain"
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func sampleHistory() ([]domain.CompletedSession, []domain.Exercise) {
	start := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	exercises := []domain.Exercise{{ID: "ex-squat", Name: "Back Squat", MuscleGroup: "Legs"}}
	history := []domain.CompletedSession{
		{
			ActiveSession: domain.ActiveSession{
				ID:        "s1",
				Name:      "Leg Day",
				StartedAt: start,
				Entries: []domain.SessionEntry{
					{
						ID: "e1", ExerciseID: "ex-squat", Name: "Squat (old)",
						Sets: []domain.LoggedSet{
							{ID: "set1", Weight: floatPtr(100), Reps: intPtr(5)},
							{ID: "set2", Reps: intPtr(8), Notes: "easy"},
						},
					},
					{
						ID: "e2", ExerciseID: "ex-gone", Name: "",
						Sets: []domain.LoggedSet{{ID: "set3", Notes: "felt off"}},
					},
				},
			},
			EndedAt: start.Add(65 * time.Minute),
		},
	}
	return history, exercises
}

func TestHistoryWorkbook(t *testing.T) {
	history, exercises := sampleHistory()

	data, err := HistoryWorkbookBytes(history, exercises)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	require.Equal(t, []string{SheetSessions, SheetSets}, f.GetSheetList())

	sessions, err := f.GetRows(SheetSessions)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	require.Equal(t, "Session", sessions[0][0])
	require.Equal(t, []string{"Leg Day", "2026-03-14 09:00", "2026-03-14 10:05", "1h 5m", "2", "3"}, sessions[1])

	sets, err := f.GetRows(SheetSets)
	require.NoError(t, err)
	require.Len(t, sets, 4)
	require.Equal(t, "Back Squat", sets[1][2])
	require.Equal(t, "1", sets[1][3])
	require.Equal(t, "100", sets[1][4])
	require.Equal(t, "5", sets[1][5])
	require.Equal(t, "2", sets[2][3])
	require.Equal(t, "easy", sets[2][6])
	require.Equal(t, domain.UnknownExerciseLabel, sets[3][2])
}

func TestHistoryWorkbookEmpty(t *testing.T) {
	data, err := HistoryWorkbookBytes(nil, nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetSets)
	require.NoError(t, err)
	require.Len(t, rows, 1)
}

func TestSnapshotJSON(t *testing.T) {
	history, exercises := sampleHistory()
	snap := domain.Snapshot{
		TakenAt:   time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		Exercises: exercises,
		Templates: []domain.WorkoutTemplate{},
		History:   history,
	}

	data, err := SnapshotJSON(snap)
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.JSONEq(t, "null", string(decoded["activeSession"]))

	var back domain.Snapshot
	require.NoError(t, json.Unmarshal(data, &back))
	require.Len(t, back.History, 1)
	require.Equal(t, history[0].EndedAt, back.History[0].EndedAt)
}
