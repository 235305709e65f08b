// internal/domain/session.go
package domain

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// LoggedSet is one recorded set. Weight and Reps are nil when not provided.
type LoggedSet struct {
	ID     string   `bson:"id" json:"id"`
	Weight *float64 `bson:"weight" json:"weight"`
	Reps   *int     `bson:"reps" json:"reps"`
	Notes  string   `bson:"notes" json:"notes"`
}

// SessionEntry is one exercise's slot within a session. Name is a snapshot
// taken when the entry was created; it is not linked to the Exercise afterwards.
type SessionEntry struct {
	ID         string      `bson:"id" json:"id"`
	ExerciseID string      `bson:"exerciseId" json:"exerciseId"`
	Name       string      `bson:"name" json:"name"`
	TargetSets *int        `bson:"targetSets,omitempty" json:"targetSets,omitempty"`
	TargetReps *int        `bson:"targetReps,omitempty" json:"targetReps,omitempty"`
	Notes      string      `bson:"notes,omitempty" json:"notes,omitempty"`
	Sets       []LoggedSet `bson:"sets" json:"sets"`
}

// ActiveSession is the single in-progress workout. Entries hold at most one
// entry per ExerciseID. TemplateID is a back-reference, not ownership.
type ActiveSession struct {
	ID         string         `bson:"id" json:"id"`
	Name       string         `bson:"name" json:"name"`
	TemplateID *string        `bson:"templateId" json:"templateId"`
	StartedAt  time.Time      `bson:"startedAt" json:"startedAt"`
	Entries    []SessionEntry `bson:"entries" json:"entries"`
}

// CompletedSession is an immutable history record.
type CompletedSession struct {
	ActiveSession `bson:",inline"`
	EndedAt       time.Time `bson:"endedAt" json:"endedAt"`
}

// UnmarshalJSON accepts both "endedAt" and the older "finishedAt" key.
func (c *CompletedSession) UnmarshalJSON(data []byte) error {
	var raw struct {
		ActiveSession
		EndedAt    *time.Time `json:"endedAt"`
		FinishedAt *time.Time `json:"finishedAt"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	c.ActiveSession = raw.ActiveSession
	switch {
	case raw.EndedAt != nil:
		c.EndedAt = *raw.EndedAt
	case raw.FinishedAt != nil:
		c.EndedAt = *raw.FinishedAt
	default:
		c.EndedAt = time.Time{}
	}
	return nil
}

// DefaultSessionName is used when a session is started without a usable name.
func DefaultSessionName(now time.Time) string {
	return "Workout " + now.Format("Jan 2, 2006")
}

// NewEmptySession starts a session with no entries. A blank name falls back to DefaultSessionName.
func NewEmptySession(name, id string, now time.Time) *ActiveSession {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultSessionName(now)
	}
	return &ActiveSession{
		ID:        id,
		Name:      name,
		StartedAt: now,
		Entries:   []SessionEntry{},
	}
}

// NewSessionFromTemplate seeds a session from t. Items whose exercise no longer
// resolves are dropped, as are repeated exercises. Entries get fresh ids.
func NewSessionFromTemplate(t WorkoutTemplate, lookup func(exerciseID string) (Exercise, bool), newID IDFunc, now time.Time) *ActiveSession {
	templateID := t.ID
	session := &ActiveSession{
		ID:         newID(),
		Name:       t.Name,
		TemplateID: &templateID,
		StartedAt:  now,
		Entries:    make([]SessionEntry, 0, len(t.Items)),
	}
	for _, item := range t.Items {
		ex, ok := lookup(item.ExerciseID)
		if !ok || session.HasExercise(ex.ID) {
			continue
		}
		entry := newEntry(ex, newID())
		entry.TargetSets = copyInt(item.TargetSets)
		entry.TargetReps = copyInt(item.TargetReps)
		entry.Notes = item.Notes
		session.Entries = append(session.Entries, entry)
	}
	return session
}

func newEntry(ex Exercise, id string) SessionEntry {
	return SessionEntry{
		ID:         id,
		ExerciseID: ex.ID,
		Name:       ex.Name,
		Sets:       []LoggedSet{},
	}
}

func (s *ActiveSession) entryIndex(entryID string) int {
	for i := range s.Entries {
		if s.Entries[i].ID == entryID {
			return i
		}
	}
	return -1
}

// Entry returns the entry with the given id.
func (s *ActiveSession) Entry(entryID string) (SessionEntry, bool) {
	if i := s.entryIndex(entryID); i >= 0 {
		return s.Entries[i], true
	}
	return SessionEntry{}, false
}

// HasExercise reports whether an entry for exerciseID exists.
func (s *ActiveSession) HasExercise(exerciseID string) bool {
	for i := range s.Entries {
		if s.Entries[i].ExerciseID == exerciseID {
			return true
		}
	}
	return false
}

// AddExercise appends an entry for ex unless one already exists.
func (s *ActiveSession) AddExercise(ex Exercise, entryID string) bool {
	if s.HasExercise(ex.ID) {
		return false
	}
	s.Entries = append(s.Entries, newEntry(ex, entryID))
	return true
}

// RemoveEntry removes the entry with the given entry id.
func (s *ActiveSession) RemoveEntry(entryID string) bool {
	i := s.entryIndex(entryID)
	if i < 0 {
		return false
	}
	s.Entries = append(s.Entries[:i:i], s.Entries[i+1:]...)
	return true
}

// RemoveExercise removes every entry referencing exerciseID.
func (s *ActiveSession) RemoveExercise(exerciseID string) bool {
	kept := make([]SessionEntry, 0, len(s.Entries))
	for _, e := range s.Entries {
		if e.ExerciseID != exerciseID {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(s.Entries) {
		return false
	}
	s.Entries = kept
	return true
}

// AppendSet appends set to the entry with the given id.
func (s *ActiveSession) AppendSet(entryID string, set LoggedSet) bool {
	i := s.entryIndex(entryID)
	if i < 0 {
		return false
	}
	s.Entries[i].Sets = append(s.Entries[i].Sets, set)
	return true
}

// RemoveSet removes setID from entryID. Either id failing to resolve is a no-op.
func (s *ActiveSession) RemoveSet(entryID, setID string) bool {
	i := s.entryIndex(entryID)
	if i < 0 {
		return false
	}
	sets := s.Entries[i].Sets
	for j := range sets {
		if sets[j].ID == setID {
			s.Entries[i].Sets = append(sets[:j:j], sets[j+1:]...)
			return true
		}
	}
	return false
}

// TotalSets counts logged sets across all entries.
func (s *ActiveSession) TotalSets() int {
	total := 0
	for _, e := range s.Entries {
		total += len(e.Sets)
	}
	return total
}

// Clone returns a deep copy.
func (s *ActiveSession) Clone() *ActiveSession {
	if s == nil {
		return nil
	}
	c := *s
	if s.TemplateID != nil {
		id := *s.TemplateID
		c.TemplateID = &id
	}
	c.Entries = make([]SessionEntry, len(s.Entries))
	for i, e := range s.Entries {
		e.TargetSets = copyInt(e.TargetSets)
		e.TargetReps = copyInt(e.TargetReps)
		sets := make([]LoggedSet, len(e.Sets))
		for j, set := range e.Sets {
			set.Weight = copyFloat(set.Weight)
			set.Reps = copyInt(set.Reps)
			sets[j] = set
		}
		e.Sets = sets
		c.Entries[i] = e
	}
	return &c
}

// Complete snapshots the session into a history record ended at now.
func (s *ActiveSession) Complete(now time.Time) CompletedSession {
	return CompletedSession{ActiveSession: *s.Clone(), EndedAt: now}
}

// Normalize replaces nil sequences left by decoders with empty ones.
func (s *ActiveSession) Normalize() {
	if s.Entries == nil {
		s.Entries = []SessionEntry{}
	}
	for i := range s.Entries {
		if s.Entries[i].Sets == nil {
			s.Entries[i].Sets = []LoggedSet{}
		}
	}
}

// SetInput is the raw form data for a set, as typed by the user.
type SetInput struct {
	Weight string
	Reps   string
	Notes  string
}

// IsBlank reports whether weight, reps and notes were all left empty.
func (in SetInput) IsBlank() bool {
	return strings.TrimSpace(in.Weight) == "" &&
		strings.TrimSpace(in.Reps) == "" &&
		strings.TrimSpace(in.Notes) == ""
}

// NewLoggedSet rejects input whose three fields are all blank, then normalizes
// it: weight and reps become numbers or nil when blank or unparseable, notes
// are trimmed. Typed but unparseable input is kept as a set with nil values.
func NewLoggedSet(in SetInput, id string) (LoggedSet, error) {
	if in.IsBlank() {
		return LoggedSet{}, ErrEmptySet
	}
	return LoggedSet{
		ID:     id,
		Weight: parseWeight(in.Weight),
		Reps:   parseReps(in.Reps),
		Notes:  strings.TrimSpace(in.Notes),
	}, nil
}

func parseWeight(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// parseReps reads a whole number; decimal input is truncated.
func parseReps(raw string) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if v, err := strconv.Atoi(raw); err == nil {
		return &v
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) > math.MaxInt32 {
		return nil
	}
	v := int(math.Trunc(f))
	return &v
}

func copyInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func copyFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
