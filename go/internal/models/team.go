package models

import (
	"time"

	"github.com/google/uuid"
)

// GeneratedTeam is a roster container produced for an age group. The current
// roster size is mutated only by draft/undraft/cancel transitions, in lockstep
// with DraftPoolEntry status.
type GeneratedTeam struct {
	ID                uuid.UUID   `json:"id"`
	SeasonID          uuid.UUID   `json:"season_id"`
	AgeGroup          string      `json:"age_group"`
	Name              string      `json:"name"`
	CoachIDs          []uuid.UUID `json:"coach_ids"`
	MaxRosterSize     int         `json:"max_roster_size"`
	CurrentRosterSize int         `json:"current_roster_size"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`
}
