// internal/domain/exercise.go
package domain

import (
	"strings"
	"time"
)

// Exercise represents a single exercise definition in the library.
// Exercises are immutable once created; the only lifecycle event is deletion.
type Exercise struct {
	ID          string    `bson:"id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	MuscleGroup string    `bson:"muscleGroup,omitempty" json:"muscleGroup,omitempty"` // e.g., "Chest", "Legs", "Back"
	Equipment   string    `bson:"equipment,omitempty" json:"equipment,omitempty"`     // e.g., "Barbell", "Dumbbell"
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}

// ExerciseDraft is the user-supplied part of a new Exercise.
type ExerciseDraft struct {
	Name        string
	MuscleGroup string
	Equipment   string
	Description string
}

// NewExercise validates the draft and builds an Exercise. Text fields are trimmed.
func NewExercise(draft ExerciseDraft, id string, now time.Time) (Exercise, error) {
	name := strings.TrimSpace(draft.Name)
	if name == "" {
		return Exercise{}, ErrNameRequired
	}
	return Exercise{
		ID:          id,
		Name:        name,
		MuscleGroup: strings.TrimSpace(draft.MuscleGroup),
		Equipment:   strings.TrimSpace(draft.Equipment),
		Description: strings.TrimSpace(draft.Description),
		CreatedAt:   now,
	}, nil
}
