package domain

import "errors"

// ValidationError reports user input that failed a required-field or
// non-empty constraint. The attempted mutation is never applied.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}

var (
	ErrNameRequired = &ValidationError{Field: "name", Reason: "must not be empty"}
	ErrNoExercises  = &ValidationError{Field: "exerciseIds", Reason: "at least one existing exercise is required"}
	ErrEmptySet     = &ValidationError{Field: "set", Reason: "weight, reps or notes must be provided"}
	ErrNoSetsLogged = &ValidationError{Field: "entries", Reason: "log at least one set before completing the workout"}

	// ErrSessionInProgress is returned when a session is started while another one is active.
	ErrSessionInProgress = errors.New("a workout session is already in progress")
)

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
