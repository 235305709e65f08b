package domain

import (
	"fmt"
	"math"
	"time"
)

// UncategorizedLabel groups exercises without a muscle group.
const UncategorizedLabel = "Uncategorized"

// UnknownExerciseLabel is shown for history entries whose exercise is gone and left no snapshot name.
const UnknownExerciseLabel = "Unknown exercise"

// AvailableExercises returns the exercises not yet present in the session,
// or all of them when there is no active session.
func AvailableExercises(exercises []Exercise, session *ActiveSession) []Exercise {
	out := make([]Exercise, 0, len(exercises))
	for _, ex := range exercises {
		if session != nil && session.HasExercise(ex.ID) {
			continue
		}
		out = append(out, ex)
	}
	return out
}

// TotalSetsLogged is nil-safe TotalSets.
func TotalSetsLogged(session *ActiveSession) int {
	if session == nil {
		return 0
	}
	return session.TotalSets()
}

// SessionDuration returns elapsed whole minutes (rounded, minimum 1).
// An open session is measured against now.
func SessionDuration(startedAt time.Time, endedAt *time.Time, now time.Time) int {
	end := now
	if endedAt != nil && !endedAt.IsZero() {
		end = *endedAt
	}
	minutes := int(math.Round(end.Sub(startedAt).Minutes()))
	if minutes < 1 {
		return 1
	}
	return minutes
}

// FormatDuration renders minutes as "45 min" or "1h 5m".
func FormatDuration(minutes int) string {
	hours := minutes / 60
	if hours == 0 {
		return fmt.Sprintf("%d min", minutes)
	}
	return fmt.Sprintf("%dh %dm", hours, minutes%60)
}

// CategoryGroup is one muscle-group bucket of GroupByCategory.
type CategoryGroup struct {
	Category  string     `json:"category"`
	Exercises []Exercise `json:"exercises"`
}

// GroupByCategory buckets exercises by muscle group in first-seen order,
// keeping the input order inside each group.
func GroupByCategory(exercises []Exercise) []CategoryGroup {
	groups := []CategoryGroup{}
	index := map[string]int{}
	for _, ex := range exercises {
		label := ex.MuscleGroup
		if label == "" {
			label = UncategorizedLabel
		}
		i, ok := index[label]
		if !ok {
			i = len(groups)
			index[label] = i
			groups = append(groups, CategoryGroup{Category: label})
		}
		groups[i].Exercises = append(groups[i].Exercises, ex)
	}
	return groups
}

// IndexExercises maps exercise ids to exercises.
func IndexExercises(exercises []Exercise) map[string]Exercise {
	byID := make(map[string]Exercise, len(exercises))
	for _, ex := range exercises {
		byID[ex.ID] = ex
	}
	return byID
}

// ExerciseLabel resolves a display name: the live exercise name, then the
// entry's snapshot, then UnknownExerciseLabel.
func ExerciseLabel(byID map[string]Exercise, exerciseID, snapshot string) string {
	if ex, ok := byID[exerciseID]; ok {
		return ex.Name
	}
	if snapshot != "" {
		return snapshot
	}
	return UnknownExerciseLabel
}
