package models

import (
	"time"

	"github.com/google/uuid"
)

// SeasonStatus defines the lifecycle status of a season.
type SeasonStatus string

const (
	SeasonStatusSetup        SeasonStatus = "SETUP"
	SeasonStatusRegistration SeasonStatus = "REGISTRATION"
	SeasonStatusClosed       SeasonStatus = "CLOSED"
	SeasonStatusDrafting     SeasonStatus = "DRAFTING"
	SeasonStatusActive       SeasonStatus = "ACTIVE"
	SeasonStatusCompleted    SeasonStatus = "COMPLETED"
)

// Season represents one registration cycle under a program. Counters are
// mutated only through the registration writer and the cancellation path.
type Season struct {
	ID                 uuid.UUID      `json:"id"`
	ProgramID          uuid.UUID      `json:"program_id"`
	Name               string         `json:"name"`
	Status             SeasonStatus   `json:"status"`
	AgeGroups          []AgeGroup     `json:"age_groups"`
	RegistrationFee    float64        `json:"registration_fee"`
	OpensAt            *time.Time     `json:"opens_at,omitempty"`
	ClosesAt           *time.Time     `json:"closes_at,omitempty"`
	MaxPerAgeGroup     *int           `json:"max_per_age_group,omitempty"`
	AgeGroupCounts     map[string]int `json:"age_group_counts"`
	TotalRegistrations int            `json:"total_registrations"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
}

// RegistrationWindowOpen reports whether the season accepts new registrations
// at the given instant. Absent window bounds are treated as unbounded.
func (s *Season) RegistrationWindowOpen(now time.Time) bool {
	if s.Status != SeasonStatusRegistration {
		return false
	}
	if s.OpensAt != nil && now.Before(*s.OpensAt) {
		return false
	}
	if s.ClosesAt != nil && now.After(*s.ClosesAt) {
		return false
	}
	return true
}
