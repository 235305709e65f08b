package domain

// Clone returns a deep copy of the record.
func (c CompletedSession) Clone() CompletedSession {
	return CompletedSession{ActiveSession: *c.ActiveSession.Clone(), EndedAt: c.EndedAt}
}

// Clone returns a deep copy of the template.
func (t WorkoutTemplate) Clone() WorkoutTemplate {
	items := make([]ExerciseRef, len(t.Items))
	for i, item := range t.Items {
		item.TargetSets = copyInt(item.TargetSets)
		item.TargetReps = copyInt(item.TargetReps)
		items[i] = item
	}
	t.Items = items
	return t
}

// CloneExercises copies the slice; Exercise holds no references.
func CloneExercises(exercises []Exercise) []Exercise {
	out := make([]Exercise, len(exercises))
	copy(out, exercises)
	return out
}

// CloneTemplates deep-copies a template collection.
func CloneTemplates(templates []WorkoutTemplate) []WorkoutTemplate {
	out := make([]WorkoutTemplate, len(templates))
	for i, t := range templates {
		out[i] = t.Clone()
	}
	return out
}

// CloneHistory deep-copies a history collection.
func CloneHistory(history []CompletedSession) []CompletedSession {
	out := make([]CompletedSession, len(history))
	for i, h := range history {
		out[i] = h.Clone()
	}
	return out
}
