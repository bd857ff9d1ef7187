package seasons

import (
	"time"

	"github.com/google/uuid"
)

// CreateSeasonRequest represents a request to create a new season. AgeGroups
// carries the raw descriptors; they are parsed once at creation time.
type CreateSeasonRequest struct {
	ID              uuid.UUID  `json:"id"`
	ProgramID       uuid.UUID  `json:"program_id"`
	Name            string     `json:"name"`
	AgeGroups       []string   `json:"age_groups"`
	RegistrationFee float64    `json:"registration_fee"`
	OpensAt         *time.Time `json:"opens_at,omitempty"`
	ClosesAt        *time.Time `json:"closes_at,omitempty"`
	MaxPerAgeGroup  *int       `json:"max_per_age_group,omitempty"`
}
