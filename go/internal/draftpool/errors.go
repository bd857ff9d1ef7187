package draftpool

import "errors"

var (
	// ErrEntryNotFound is returned when no pool entry exists for the given id.
	ErrEntryNotFound = errors.New("pool entry not found")
	// ErrNotAvailable is returned when drafting an entry that is not AVAILABLE.
	ErrNotAvailable = errors.New("pool entry is not available")
	// ErrNotDrafted is returned when undrafting an entry that is not DRAFTED.
	ErrNotDrafted = errors.New("pool entry is not drafted")
	// ErrTeamMismatch is returned when an undraft names a team other than the
	// one holding the entry.
	ErrTeamMismatch = errors.New("pool entry is drafted to a different team")
	// ErrAlreadyCancelled is returned when acting on a cancelled entry.
	ErrAlreadyCancelled = errors.New("pool entry is already cancelled")
	// ErrDuplicateEntry is returned when a live entry already exists for the
	// athlete in the season.
	ErrDuplicateEntry = errors.New("duplicate registration for athlete in season")
)
