package domain

import "time"

// Snapshot is the complete application state at one instant, used for exports and backups.
type Snapshot struct {
	TakenAt       time.Time          `json:"takenAt"`
	Exercises     []Exercise         `json:"exercises"`
	Templates     []WorkoutTemplate  `json:"templates"`
	ActiveSession *ActiveSession     `json:"activeSession"`
	History       []CompletedSession `json:"history"`
}
