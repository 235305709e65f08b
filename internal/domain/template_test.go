package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func existsIn(ids ...string) func(string) bool {
	set := map[string]bool{}
	for _, id := range ids {
		set[id] = true
	}
	return func(id string) bool { return set[id] }
}

func TestNewExercise(t *testing.T) {
	_, err := NewExercise(ExerciseDraft{Name: "   "}, "x", testNow)
	require.ErrorIs(t, err, ErrNameRequired)

	ex, err := NewExercise(ExerciseDraft{Name: " Deadlift ", MuscleGroup: " Back ", Equipment: "Barbell"}, "x", testNow)
	require.NoError(t, err)
	require.Equal(t, Exercise{ID: "x", Name: "Deadlift", MuscleGroup: "Back", Equipment: "Barbell", CreatedAt: testNow}, ex)
}

func TestNewTemplate(t *testing.T) {
	exists := existsIn("a", "b", "c")

	t.Run("name is checked first", func(t *testing.T) {
		_, err := NewTemplate(TemplateDraft{Name: "", ExerciseIDs: nil}, exists, "t1", testNow)
		require.ErrorIs(t, err, ErrNameRequired)
	})

	t.Run("no exercises", func(t *testing.T) {
		_, err := NewTemplate(TemplateDraft{Name: "Push"}, exists, "t1", testNow)
		require.ErrorIs(t, err, ErrNoExercises)
	})

	t.Run("only unknown exercises", func(t *testing.T) {
		_, err := NewTemplate(TemplateDraft{Name: "Push", ExerciseIDs: []string{"zzz", " "}}, exists, "t1", testNow)
		require.ErrorIs(t, err, ErrNoExercises)
	})

	t.Run("unknown and repeated ids are dropped", func(t *testing.T) {
		tmpl, err := NewTemplate(TemplateDraft{
			Name:        " Push ",
			Description: " chest focus ",
			ExerciseIDs: []string{"b", "zzz", "a", "b"},
		}, exists, "t1", testNow)
		require.NoError(t, err)
		require.Equal(t, "Push", tmpl.Name)
		require.Equal(t, "chest focus", tmpl.Description)
		require.Equal(t, []string{"b", "a"}, tmpl.ExerciseIDs())
		require.Equal(t, testNow, tmpl.CreatedAt)
	})

	t.Run("items take precedence over ids", func(t *testing.T) {
		tmpl, err := NewTemplate(TemplateDraft{
			Name:        "Pull",
			ExerciseIDs: []string{"a"},
			Items: []ExerciseRef{
				{ExerciseID: "c", TargetSets: intPtr(4), Notes: " slow "},
			},
		}, exists, "t1", testNow)
		require.NoError(t, err)
		require.Len(t, tmpl.Items, 1)
		require.Equal(t, "c", tmpl.Items[0].ExerciseID)
		require.Equal(t, 4, *tmpl.Items[0].TargetSets)
		require.Equal(t, "slow", tmpl.Items[0].Notes)
	})
}

func TestPruneTemplates(t *testing.T) {
	templates := []WorkoutTemplate{
		{ID: "t1", Items: []ExerciseRef{{ExerciseID: "a"}, {ExerciseID: "b"}}},
		{ID: "t2", Items: []ExerciseRef{{ExerciseID: "a"}}},
		{ID: "t3", Items: []ExerciseRef{{ExerciseID: "c"}}},
	}

	out, changed := PruneTemplates(templates, "a")
	require.True(t, changed)
	require.Len(t, out, 2)
	require.Equal(t, "t1", out[0].ID)
	require.Equal(t, []string{"b"}, out[0].ExerciseIDs())
	require.Equal(t, "t3", out[1].ID)

	// Input untouched.
	require.Len(t, templates, 3)
	require.Equal(t, []string{"a", "b"}, templates[0].ExerciseIDs())

	same, changed := PruneTemplates(templates, "zzz")
	require.False(t, changed)
	require.Len(t, same, 3)
}

func TestTemplateClone(t *testing.T) {
	tmpl := WorkoutTemplate{ID: "t1", Items: []ExerciseRef{{ExerciseID: "a", TargetReps: intPtr(10)}}}
	c := tmpl.Clone()
	*c.Items[0].TargetReps = 1
	c.Items[0].ExerciseID = "b"
	require.Equal(t, 10, *tmpl.Items[0].TargetReps)
	require.Equal(t, "a", tmpl.Items[0].ExerciseID)
}

func TestViews(t *testing.T) {
	exercises := []Exercise{
		{ID: "a", Name: "Bench", MuscleGroup: "Chest"},
		{ID: "b", Name: "Plank"},
		{ID: "c", Name: "Fly", MuscleGroup: "Chest"},
		{ID: "d", Name: "Squat", MuscleGroup: "Legs"},
	}

	t.Run("group by category", func(t *testing.T) {
		groups := GroupByCategory(exercises)
		require.Len(t, groups, 3)
		require.Equal(t, "Chest", groups[0].Category)
		require.Equal(t, []string{"Bench", "Fly"}, []string{groups[0].Exercises[0].Name, groups[0].Exercises[1].Name})
		require.Equal(t, UncategorizedLabel, groups[1].Category)
		require.Equal(t, "Legs", groups[2].Category)
		require.Empty(t, GroupByCategory(nil))
	})

	t.Run("available exercises", func(t *testing.T) {
		require.Len(t, AvailableExercises(exercises, nil), 4)

		s := NewEmptySession("", "s1", testNow)
		s.AddExercise(exercises[0], "e1")
		s.AddExercise(exercises[3], "e2")
		available := AvailableExercises(exercises, s)
		require.Len(t, available, 2)
		require.Equal(t, "b", available[0].ID)
		require.Equal(t, "c", available[1].ID)
	})

	t.Run("exercise label", func(t *testing.T) {
		byID := IndexExercises(exercises)
		require.Equal(t, "Bench", ExerciseLabel(byID, "a", "Old Bench"))
		require.Equal(t, "Old Row", ExerciseLabel(byID, "gone", "Old Row"))
		require.Equal(t, UnknownExerciseLabel, ExerciseLabel(byID, "gone", ""))
	})

	t.Run("total sets", func(t *testing.T) {
		require.Equal(t, 0, TotalSetsLogged(nil))
	})
}

func TestSessionDuration(t *testing.T) {
	start := testNow
	tests := []struct {
		name    string
		endedAt *time.Time
		now     time.Time
		want    int
		label   string
	}{
		{name: "under a minute rounds up to one", now: start.Add(10 * time.Second), want: 1, label: "1 min"},
		{name: "rounds to nearest", now: start.Add(44*time.Minute + 31*time.Second), want: 45, label: "45 min"},
		{name: "hours", now: start.Add(65 * time.Minute), want: 65, label: "1h 5m"},
		{name: "ended session ignores now", endedAt: ptrTime(start.Add(2 * time.Hour)), now: start.Add(10 * time.Hour), want: 120, label: "2h 0m"},
		{name: "clock skew", now: start.Add(-time.Hour), want: 1, label: "1 min"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SessionDuration(start, tt.endedAt, tt.now)
			require.Equal(t, tt.want, got)
			require.Equal(t, tt.label, FormatDuration(got))
		})
	}
}

func ptrTime(v time.Time) *time.Time { return &v }
