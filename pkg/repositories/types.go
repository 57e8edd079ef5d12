package repositories

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when no match has the requested id.
type ErrNotFound struct {
	MatchID string
}

func (e *ErrNotFound) Error() string {
	if e.MatchID == "" {
		return "match not found"
	}
	return fmt.Sprintf("match %s not found", e.MatchID)
}

// IsNotFound reports whether err, or any error it wraps, is an ErrNotFound.
func IsNotFound(err error) bool {
	var notFound *ErrNotFound
	return errors.As(err, &notFound)
}
