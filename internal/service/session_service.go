package service

import (
	"alcyxob/gym-tracker/internal/domain"
	"context"
	"log/slog"
)

// Session states for transition logs.
const (
	stateAbsent    = "absent"
	stateActive    = "active"
	stateCompleted = "completed"
	stateCancelled = "cancelled"
)

// CompleteOptions tunes Complete. A nil RequireSets uses the tracker default.
type CompleteOptions struct {
	RequireSets *bool
}

// SessionService drives the active-session state machine.
//
// Operations that need an active session are no-ops while none exists and
// return nil. Operations naming an entry, set, exercise or template that does
// not resolve leave the session unchanged and return it as it is.
type SessionService interface {
	ActiveSession(ctx context.Context) *domain.ActiveSession
	StartEmpty(ctx context.Context, name string) (*domain.ActiveSession, error)
	StartFromTemplate(ctx context.Context, templateID string) (*domain.ActiveSession, error)
	AddExercise(ctx context.Context, exerciseID string) *domain.ActiveSession
	RemoveExercise(ctx context.Context, entryID string) *domain.ActiveSession
	AddSet(ctx context.Context, entryID string, in domain.SetInput) (*domain.ActiveSession, error)
	RemoveSet(ctx context.Context, entryID, setID string) *domain.ActiveSession
	Complete(ctx context.Context, opts CompleteOptions) (*domain.CompletedSession, error)
	Cancel(ctx context.Context) bool
	AvailableExercises(ctx context.Context) []domain.Exercise
}

func logTransition(op, sessionID, from, to string) {
	slog.Info("session transition", "op", op, "session_id", sessionID, "from", from, "to", to)
}

func logNoop(op, reason string, args ...any) {
	slog.Debug("session operation ignored", append([]any{"op", op, "reason", reason}, args...)...)
}

// ActiveSession returns a copy of the live session, or nil.
func (t *Tracker) ActiveSession(ctx context.Context) *domain.ActiveSession {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active.Clone()
}

// StartEmpty opens a session with no entries. A blank name becomes "Workout <date>".
func (t *Tracker) StartEmpty(ctx context.Context, name string) (*domain.ActiveSession, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.active != nil {
		return t.active.Clone(), domain.ErrSessionInProgress
	}
	t.active = domain.NewEmptySession(name, t.newID(), t.now())
	t.persist(ctx, dirtyActive)

	logTransition("start_empty", t.active.ID, stateAbsent, stateActive)
	return t.active.Clone(), nil
}

// StartFromTemplate opens a session seeded from the template's exercises.
// An unknown template leaves the state unchanged and returns nil.
func (t *Tracker) StartFromTemplate(ctx context.Context, templateID string) (*domain.ActiveSession, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.active != nil {
		return t.active.Clone(), domain.ErrSessionInProgress
	}
	template, ok := t.templateByID(templateID)
	if !ok {
		logNoop("start_from_template", "template not found", "template_id", templateID)
		return nil, nil
	}
	t.active = domain.NewSessionFromTemplate(template, t.exerciseByID, t.newID, t.now())
	t.persist(ctx, dirtyActive)

	logTransition("start_from_template", t.active.ID, stateAbsent, stateActive)
	return t.active.Clone(), nil
}

// AddExercise appends an entry for exerciseID unless it is unknown or already present.
func (t *Tracker) AddExercise(ctx context.Context, exerciseID string) *domain.ActiveSession {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.active == nil {
		logNoop("add_exercise", "no active session")
		return nil
	}
	exercise, ok := t.exerciseByID(exerciseID)
	if !ok {
		logNoop("add_exercise", "exercise not found", "exercise_id", exerciseID)
		return t.active.Clone()
	}
	if t.active.AddExercise(exercise, t.newID()) {
		t.persist(ctx, dirtyActive)
	}
	return t.active.Clone()
}

// RemoveExercise removes the entry with entryID.
func (t *Tracker) RemoveExercise(ctx context.Context, entryID string) *domain.ActiveSession {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.active == nil {
		logNoop("remove_exercise", "no active session")
		return nil
	}
	if t.active.RemoveEntry(entryID) {
		t.persist(ctx, dirtyActive)
	} else {
		logNoop("remove_exercise", "entry not found", "entry_id", entryID)
	}
	return t.active.Clone()
}

// AddSet normalizes in and appends it to the entry. A set with no weight,
// reps or notes is rejected with domain.ErrEmptySet.
func (t *Tracker) AddSet(ctx context.Context, entryID string, in domain.SetInput) (*domain.ActiveSession, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.active == nil {
		logNoop("add_set", "no active session")
		return nil, nil
	}
	if _, ok := t.active.Entry(entryID); !ok {
		logNoop("add_set", "entry not found", "entry_id", entryID)
		return t.active.Clone(), nil
	}
	set, err := domain.NewLoggedSet(in, t.newID())
	if err != nil {
		return t.active.Clone(), err
	}
	t.active.AppendSet(entryID, set)
	t.persist(ctx, dirtyActive)
	return t.active.Clone(), nil
}

// RemoveSet removes setID from entryID. Repeating the call is a no-op.
func (t *Tracker) RemoveSet(ctx context.Context, entryID, setID string) *domain.ActiveSession {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.active == nil {
		logNoop("remove_set", "no active session")
		return nil
	}
	if t.active.RemoveSet(entryID, setID) {
		t.persist(ctx, dirtyActive)
	} else {
		logNoop("remove_set", "set not found", "entry_id", entryID, "set_id", setID)
	}
	return t.active.Clone()
}

// Complete moves the session to the head of history. With RequireSets in
// effect, a session without logged sets is rejected with domain.ErrNoSetsLogged.
func (t *Tracker) Complete(ctx context.Context, opts CompleteOptions) (*domain.CompletedSession, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.active == nil {
		logNoop("complete", "no active session")
		return nil, nil
	}
	strict := t.strictCompletion
	if opts.RequireSets != nil {
		strict = *opts.RequireSets
	}
	if strict && t.active.TotalSets() == 0 {
		return nil, domain.ErrNoSetsLogged
	}

	record := t.active.Complete(t.now())
	history := make([]domain.CompletedSession, 0, len(t.history)+1)
	history = append(history, record)
	t.history = append(history, t.history...)
	t.active = nil
	t.persist(ctx, dirtyHistory|dirtyActive)

	logTransition("complete", record.ID, stateActive, stateCompleted)
	out := record.Clone()
	return &out, nil
}

// Cancel discards the session without a history record.
func (t *Tracker) Cancel(ctx context.Context) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.active == nil {
		logNoop("cancel", "no active session")
		return false
	}
	id := t.active.ID
	t.active = nil
	t.persist(ctx, dirtyActive)

	logTransition("cancel", id, stateActive, stateCancelled)
	return true
}

// AvailableExercises lists exercises that can still be added to the session.
func (t *Tracker) AvailableExercises(ctx context.Context) []domain.Exercise {
	t.mu.Lock()
	defer t.mu.Unlock()
	return domain.AvailableExercises(domain.CloneExercises(t.exercises), t.active)
}
