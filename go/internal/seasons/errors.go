package seasons

import "errors"

var (
	// ErrSeasonNotFound is returned when no season exists for the given id.
	ErrSeasonNotFound = errors.New("season not found")
	// ErrAgeGroupFull is returned when the conditional counter increment finds
	// the age group at capacity.
	ErrAgeGroupFull = errors.New("age group is full")
	// ErrInvalidTransition is returned for a disallowed status change.
	ErrInvalidTransition = errors.New("invalid season status transition")
)
