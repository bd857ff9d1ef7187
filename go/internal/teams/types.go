package teams

import (
	"errors"

	"github.com/google/uuid"
)

var (
	// ErrTeamNotFound is returned when no team exists for the given id.
	ErrTeamNotFound = errors.New("team not found")
	// ErrTeamFull is returned when a roster increment finds the team at its
	// maximum size.
	ErrTeamFull = errors.New("team roster is full")
)

// CreateTeamRequest represents a request to create a generated team.
type CreateTeamRequest struct {
	ID            uuid.UUID   `json:"id"`
	SeasonID      uuid.UUID   `json:"season_id"`
	AgeGroup      string      `json:"age_group"`
	Name          string      `json:"name"`
	CoachIDs      []uuid.UUID `json:"coach_ids"`
	MaxRosterSize int         `json:"max_roster_size"`
}

// GenerateTeamsRequest produces a numbered batch of empty roster containers
// for one age group.
type GenerateTeamsRequest struct {
	SeasonID      uuid.UUID `json:"season_id"`
	AgeGroup      string    `json:"age_group"`
	Count         int       `json:"count"`
	MaxRosterSize int       `json:"max_roster_size"`
}
