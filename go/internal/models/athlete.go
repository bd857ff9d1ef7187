package models

import (
	"time"

	"github.com/google/uuid"
)

// PoolStatusWaiting marks an athlete profile whose pool entry awaits a draft.
const PoolStatusWaiting = "WAITING_TO_BE_DRAFTED"

// PoolStatusTag is the best-effort pointer written onto an athlete profile
// after a successful registration commit.
type PoolStatusTag struct {
	Status      string    `json:"status"`
	ProgramID   uuid.UUID `json:"program_id"`
	SeasonID    uuid.UUID `json:"season_id"`
	PoolEntryID uuid.UUID `json:"pool_entry_id"`
	AgeGroup    string    `json:"age_group"`
}

// AthleteProfile is the stored profile of a returning athlete.
type AthleteProfile struct {
	ID            uuid.UUID      `json:"id"`
	FirstName     string         `json:"first_name"`
	LastName      string         `json:"last_name"`
	BirthDate     time.Time      `json:"birth_date"`
	AgeGroupLabel *string        `json:"age_group_label,omitempty"`
	PoolStatus    *PoolStatusTag `json:"pool_status,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}
