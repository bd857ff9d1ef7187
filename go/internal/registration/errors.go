package registration

import "errors"

var (
	// ErrValidation is wrapped by all synchronous field-validation failures.
	ErrValidation = errors.New("invalid registration request")
	// ErrSeasonNotOpen is returned when the season does not accept
	// registrations right now.
	ErrSeasonNotOpen = errors.New("season is not open for registration")
	// ErrDuplicate is returned when the athlete already holds a live entry in
	// the season.
	ErrDuplicate = errors.New("duplicate registration")
	// ErrAgeGroupFull is returned when the age group is at capacity.
	ErrAgeGroupFull = errors.New("age group is full")
	// ErrAgeGroupUnresolved is returned when no bucket could be matched and
	// none was selected explicitly. Recoverable: the caller prompts for a
	// manual selection.
	ErrAgeGroupUnresolved = errors.New("age group could not be resolved")
)
