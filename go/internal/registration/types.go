package registration

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// RegisterRequest is one parent's submission for one athlete into one season.
// AgeGroupID is an explicit bucket selection; when empty the coordinator
// matches AgeGroupLabel (or a label computed from the birthdate) against the
// season's configured groups. Payment fields are opaque pass-through from the
// external payment step.
type RegisterRequest struct {
	SeasonID          uuid.UUID       `json:"season_id"`
	AgeGroupID        string          `json:"age_group_id,omitempty"`
	AgeGroupLabel     string          `json:"age_group_label,omitempty"`
	AthleteID         *uuid.UUID      `json:"athlete_id,omitempty"`
	FirstName         string          `json:"first_name"`
	LastName          string          `json:"last_name"`
	BirthDate         time.Time       `json:"birth_date"`
	Gender            string          `json:"gender,omitempty"`
	PreferredJersey   *int            `json:"preferred_jersey,omitempty"`
	AlternateJerseys  []int           `json:"alternate_jerseys,omitempty"`
	PreferredPosition *string         `json:"preferred_position,omitempty"`
	ParentID          uuid.UUID       `json:"parent_id"`
	ParentName        string          `json:"parent_name"`
	ParentEmail       string          `json:"parent_email"`
	ParentPhone       string          `json:"parent_phone,omitempty"`
	EmergencyName     string          `json:"emergency_name,omitempty"`
	EmergencyPhone    string          `json:"emergency_phone,omitempty"`
	Medical           json.RawMessage `json:"medical,omitempty"`
	WaiverAccepted    bool            `json:"waiver_accepted"`
	AmountPaid        float64         `json:"amount_paid"`
	PaymentMethod     string          `json:"payment_method,omitempty"`
}

// RegisterResult identifies the records created by a successful registration.
type RegisterResult struct {
	RegistrationID uuid.UUID `json:"registration_id"`
	PoolEntryID    uuid.UUID `json:"pool_entry_id"`
	AgeGroupID     string    `json:"age_group_id"`
}
