package service

import (
	"alcyxob/gym-tracker/internal/domain"
	"context"
	"log/slog"
)

// ExerciseService manages the exercise library.
type ExerciseService interface {
	CreateExercise(ctx context.Context, draft domain.ExerciseDraft) (*domain.Exercise, error)
	// DeleteExercise removes the exercise and its references from templates and
	// the active session in one step. It reports whether anything was removed.
	DeleteExercise(ctx context.Context, exerciseID string) bool
	ListExercises(ctx context.Context) []domain.Exercise
	GroupedExercises(ctx context.Context) []domain.CategoryGroup
}

// CreateExercise validates the draft and appends the new exercise to the library.
func (t *Tracker) CreateExercise(ctx context.Context, draft domain.ExerciseDraft) (*domain.Exercise, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	exercise, err := domain.NewExercise(draft, t.newID(), t.now())
	if err != nil {
		return nil, err
	}
	t.exercises = append(t.exercises, exercise)
	t.persist(ctx, dirtyExercises)

	slog.Info("exercise created", "exercise_id", exercise.ID, "name", exercise.Name)
	return &exercise, nil
}

// DeleteExercise cascades: the exercise leaves the library, every template
// drops it (templates left empty are deleted), and the live session loses its
// entry. History keeps its snapshots untouched.
func (t *Tracker) DeleteExercise(ctx context.Context, exerciseID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	idx := -1
	for i, ex := range t.exercises {
		if ex.ID == exerciseID {
			idx = i
			break
		}
	}
	if idx < 0 {
		slog.Debug("delete of unknown exercise ignored", "exercise_id", exerciseID)
		return false
	}

	exercises := make([]domain.Exercise, 0, len(t.exercises)-1)
	exercises = append(exercises, t.exercises[:idx]...)
	exercises = append(exercises, t.exercises[idx+1:]...)

	templates, templatesChanged := domain.PruneTemplates(t.templates, exerciseID)

	var active *domain.ActiveSession
	activeChanged := false
	if t.active != nil {
		active = t.active.Clone()
		activeChanged = active.RemoveExercise(exerciseID)
	}

	// Commit all three collections together.
	t.exercises = exercises
	changes := dirtyExercises
	if templatesChanged {
		t.templates = templates
		changes |= dirtyTemplates
	}
	if activeChanged {
		t.active = active
		changes |= dirtyActive
	}
	t.persist(ctx, changes)

	slog.Info("exercise deleted",
		"exercise_id", exerciseID,
		"templates_changed", templatesChanged,
		"session_changed", activeChanged,
	)
	return true
}

// ListExercises returns the library in insertion order.
func (t *Tracker) ListExercises(ctx context.Context) []domain.Exercise {
	t.mu.Lock()
	defer t.mu.Unlock()
	return domain.CloneExercises(t.exercises)
}

// GroupedExercises returns the library grouped by muscle group.
func (t *Tracker) GroupedExercises(ctx context.Context) []domain.CategoryGroup {
	t.mu.Lock()
	defer t.mu.Unlock()
	return domain.GroupByCategory(domain.CloneExercises(t.exercises))
}
