package api

import (
	"alcyxob/gym-tracker/internal/domain"
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// FlexibleString accepts a JSON string, number or null. Form inputs for
// weight and reps arrive either way depending on the client.
type FlexibleString string

func (f *FlexibleString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*f = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexibleString(s)
		return nil
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("expected string or number, got %s", data)
		}
		*f = FlexibleString(n.String())
		return nil
	}
}

// --- Requests ---

type CreateExerciseRequest struct {
	Name        string `json:"name" binding:"required"`
	MuscleGroup string `json:"muscleGroup"`
	Equipment   string `json:"equipment"`
	Description string `json:"description"`
}

type TemplateItemRequest struct {
	ExerciseID string `json:"exerciseId" binding:"required"`
	TargetSets *int   `json:"targetSets" binding:"omitempty,min=1"`
	TargetReps *int   `json:"targetReps" binding:"omitempty,min=1"`
	Notes      string `json:"notes"`
}

// CreateTemplateRequest takes either plain exerciseIds or items with targets.
type CreateTemplateRequest struct {
	Name        string                `json:"name" binding:"required"`
	Description string                `json:"description"`
	ExerciseIDs []string              `json:"exerciseIds"`
	Items       []TemplateItemRequest `json:"items" binding:"omitempty,dive"`
}

type StartSessionRequest struct {
	Name string `json:"name"`
}

type AddExerciseRequest struct {
	ExerciseID string `json:"exerciseId" binding:"required"`
}

type AddSetRequest struct {
	Weight FlexibleString `json:"weight"`
	Reps   FlexibleString `json:"reps"`
	Notes  string         `json:"notes"`
}

type CompleteSessionRequest struct {
	RequireSets *bool `json:"requireSets"`
}

// --- Responses ---

// DeleteResponse reports whether a delete removed anything. Unknown ids are
// not an error.
type DeleteResponse struct {
	Deleted bool `json:"deleted"`
}

// SessionResponse wraps the live session. Session is null when none is active.
type SessionResponse struct {
	Session         *domain.ActiveSession `json:"session"`
	TotalSets       int                   `json:"totalSets"`
	DurationMinutes int                   `json:"durationMinutes,omitempty"`
}

func mapSessionToResponse(s *domain.ActiveSession, now time.Time) SessionResponse {
	resp := SessionResponse{Session: s, TotalSets: domain.TotalSetsLogged(s)}
	if s != nil {
		resp.DurationMinutes = domain.SessionDuration(s.StartedAt, nil, now)
	}
	return resp
}

// HistorySummaryResponse is one row of the history list.
type HistorySummaryResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	TemplateID      *string   `json:"templateId"`
	StartedAt       time.Time `json:"startedAt"`
	EndedAt         time.Time `json:"endedAt"`
	DurationMinutes int       `json:"durationMinutes"`
	Duration        string    `json:"duration"`
	ExerciseCount   int       `json:"exerciseCount"`
	TotalSets       int       `json:"totalSets"`
}

func mapHistoryToSummary(h domain.CompletedSession) HistorySummaryResponse {
	ended := h.EndedAt
	minutes := domain.SessionDuration(h.StartedAt, &ended, ended)
	return HistorySummaryResponse{
		ID:              h.ID,
		Name:            h.Name,
		TemplateID:      h.TemplateID,
		StartedAt:       h.StartedAt,
		EndedAt:         h.EndedAt,
		DurationMinutes: minutes,
		Duration:        domain.FormatDuration(minutes),
		ExerciseCount:   len(h.Entries),
		TotalSets:       h.TotalSets(),
	}
}

// HistoryEntryResponse is a history entry with its display label resolved.
type HistoryEntryResponse struct {
	domain.SessionEntry
	Label string `json:"label"`
}

type HistoryDetailResponse struct {
	HistorySummaryResponse
	Entries []HistoryEntryResponse `json:"entries"`
}

func mapHistoryToDetail(h domain.CompletedSession, byID map[string]domain.Exercise) HistoryDetailResponse {
	entries := make([]HistoryEntryResponse, len(h.Entries))
	for i, e := range h.Entries {
		entries[i] = HistoryEntryResponse{
			SessionEntry: e,
			Label:        domain.ExerciseLabel(byID, e.ExerciseID, e.Name),
		}
	}
	return HistoryDetailResponse{
		HistorySummaryResponse: mapHistoryToSummary(h),
		Entries:                entries,
	}
}
