package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// RegistrationStatus defines the status of a registration.
type RegistrationStatus string

const (
	RegistrationStatusActive    RegistrationStatus = "ACTIVE"
	RegistrationStatusCancelled RegistrationStatus = "CANCELLED"
)

// Registration is one parent's submission for one athlete into one season.
// Immutable once created except for status and payment fields.
type Registration struct {
	ID                uuid.UUID          `json:"id"`
	SeasonID          uuid.UUID          `json:"season_id"`
	ProgramID         uuid.UUID          `json:"program_id"`
	AgeGroupID        string             `json:"age_group_id"`
	AthleteID         *uuid.UUID         `json:"athlete_id,omitempty"`
	FirstName         string             `json:"first_name"`
	LastName          string             `json:"last_name"`
	BirthDate         time.Time          `json:"birth_date"`
	Gender            string             `json:"gender,omitempty"`
	PreferredJersey   *int               `json:"preferred_jersey,omitempty"`
	AlternateJerseys  []int              `json:"alternate_jerseys,omitempty"`
	PreferredPosition *string            `json:"preferred_position,omitempty"`
	ParentID          uuid.UUID          `json:"parent_id"`
	ParentName        string             `json:"parent_name"`
	ParentEmail       string             `json:"parent_email"`
	ParentPhone       string             `json:"parent_phone,omitempty"`
	EmergencyName     string             `json:"emergency_name,omitempty"`
	EmergencyPhone    string             `json:"emergency_phone,omitempty"`
	Medical           json.RawMessage    `json:"medical,omitempty"`
	WaiverAccepted    bool               `json:"waiver_accepted"`
	WaiverAcceptedAt  *time.Time         `json:"waiver_accepted_at,omitempty"`
	AmountDue         float64            `json:"amount_due"`
	AmountPaid        float64            `json:"amount_paid"`
	PaymentMethod     string             `json:"payment_method,omitempty"`
	Status            RegistrationStatus `json:"status"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`
}
