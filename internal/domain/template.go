// internal/domain/template.go
package domain

import (
	"strings"
	"time"
)

// ExerciseRef is one slot of a WorkoutTemplate. Targets are optional hints
// copied onto the session entry when a session is started from the template.
type ExerciseRef struct {
	ExerciseID string `bson:"exerciseId" json:"exerciseId"`
	TargetSets *int   `bson:"targetSets,omitempty" json:"targetSets,omitempty"`
	TargetReps *int   `bson:"targetReps,omitempty" json:"targetReps,omitempty"`
	Notes      string `bson:"notes,omitempty" json:"notes,omitempty"`
}

// WorkoutTemplate is a reusable, ordered list of exercises that seeds new sessions.
// Every ExerciseID in Items references an existing Exercise; a template never has zero items.
type WorkoutTemplate struct {
	ID          string        `bson:"id" json:"id"`
	Name        string        `bson:"name" json:"name"`
	Description string        `bson:"description,omitempty" json:"description,omitempty"`
	CreatedAt   time.Time     `bson:"createdAt" json:"createdAt"`
	Items       []ExerciseRef `bson:"items" json:"items"`
}

// ExerciseIDs returns the referenced exercise ids in template order.
func (t WorkoutTemplate) ExerciseIDs() []string {
	ids := make([]string, 0, len(t.Items))
	for _, item := range t.Items {
		ids = append(ids, item.ExerciseID)
	}
	return ids
}

// withoutExercise returns a copy of t with every item referencing exerciseID removed.
func (t WorkoutTemplate) withoutExercise(exerciseID string) (WorkoutTemplate, bool) {
	kept := make([]ExerciseRef, 0, len(t.Items))
	for _, item := range t.Items {
		if item.ExerciseID != exerciseID {
			kept = append(kept, item)
		}
	}
	if len(kept) == len(t.Items) {
		return t, false
	}
	t.Items = kept
	return t, true
}

// PruneTemplates drops exerciseID from every template and removes templates
// left without items. The input slice is not modified.
func PruneTemplates(templates []WorkoutTemplate, exerciseID string) ([]WorkoutTemplate, bool) {
	changed := false
	out := make([]WorkoutTemplate, 0, len(templates))
	for _, t := range templates {
		pruned, ok := t.withoutExercise(exerciseID)
		if ok {
			changed = true
			if len(pruned.Items) == 0 {
				continue
			}
		}
		out = append(out, pruned)
	}
	return out, changed
}

// TemplateDraft is the user-supplied part of a new WorkoutTemplate.
// When Items is empty, ExerciseIDs is used to build plain items.
type TemplateDraft struct {
	Name        string
	Description string
	ExerciseIDs []string
	Items       []ExerciseRef
}

// NewTemplate validates the draft. Unknown, blank and repeated exercise ids are
// dropped silently; the draft is rejected only when nothing valid remains.
func NewTemplate(draft TemplateDraft, exists func(exerciseID string) bool, id string, now time.Time) (WorkoutTemplate, error) {
	name := strings.TrimSpace(draft.Name)
	if name == "" {
		return WorkoutTemplate{}, ErrNameRequired
	}

	candidates := draft.Items
	if len(candidates) == 0 {
		candidates = make([]ExerciseRef, 0, len(draft.ExerciseIDs))
		for _, exID := range draft.ExerciseIDs {
			candidates = append(candidates, ExerciseRef{ExerciseID: exID})
		}
	}

	seen := make(map[string]struct{}, len(candidates))
	items := make([]ExerciseRef, 0, len(candidates))
	for _, ref := range candidates {
		ref.ExerciseID = strings.TrimSpace(ref.ExerciseID)
		if ref.ExerciseID == "" || !exists(ref.ExerciseID) {
			continue
		}
		if _, dup := seen[ref.ExerciseID]; dup {
			continue
		}
		seen[ref.ExerciseID] = struct{}{}
		ref.Notes = strings.TrimSpace(ref.Notes)
		items = append(items, ref)
	}
	if len(items) == 0 {
		return WorkoutTemplate{}, ErrNoExercises
	}

	return WorkoutTemplate{
		ID:          id,
		Name:        name,
		Description: strings.TrimSpace(draft.Description),
		CreatedAt:   now,
		Items:       items,
	}, nil
}
