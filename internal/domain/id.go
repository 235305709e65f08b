package domain

import "github.com/google/uuid"

// IDFunc produces opaque identifiers for new entities.
type IDFunc func() string

// NewID returns a random UUID string. Uniqueness is probabilistic; callers
// must not rely on ordering between identifiers.
func NewID() string {
	return uuid.NewString()
}
