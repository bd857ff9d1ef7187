package models

import (
	"time"

	"github.com/google/uuid"
)

// DraftStatus defines the draft lifecycle status of a pool entry.
type DraftStatus string

const (
	DraftStatusAvailable DraftStatus = "AVAILABLE"
	DraftStatusDrafted   DraftStatus = "DRAFTED"
	DraftStatusCancelled DraftStatus = "CANCELLED"
)

// PaymentStatus summarises how much of the registration fee was collected.
type PaymentStatus string

const (
	PaymentStatusPaid    PaymentStatus = "PAID"
	PaymentStatusPartial PaymentStatus = "PARTIAL"
	PaymentStatusUnpaid  PaymentStatus = "UNPAID"
)

// DraftPoolEntry is the matchmaking unit a coach acts on. One registration
// produces exactly one pool entry; the pair shares lifecycle for cancellation
// but the entry alone carries draft-state transitions.
type DraftPoolEntry struct {
	ID                uuid.UUID     `json:"id"`
	RegistrationID    uuid.UUID     `json:"registration_id"`
	ProgramID         uuid.UUID     `json:"program_id"`
	SeasonID          uuid.UUID     `json:"season_id"`
	AgeGroupID        string        `json:"age_group_id"`
	AthleteID         *uuid.UUID    `json:"athlete_id,omitempty"`
	FirstName         string        `json:"first_name"`
	LastName          string        `json:"last_name"`
	BirthDate         time.Time     `json:"birth_date"`
	PreferredJersey   *int          `json:"preferred_jersey,omitempty"`
	PreferredPosition *string       `json:"preferred_position,omitempty"`
	PaymentStatus     PaymentStatus `json:"payment_status"`
	Status            DraftStatus   `json:"status"`
	TeamID            *uuid.UUID    `json:"team_id,omitempty"`
	DraftedBy         *uuid.UUID    `json:"drafted_by,omitempty"`
	DraftedAt         *time.Time    `json:"drafted_at,omitempty"`
	Round             *int          `json:"round,omitempty"`
	Pick              *int          `json:"pick,omitempty"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
}
