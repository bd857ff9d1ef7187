package models

import (
	"time"

	"github.com/google/uuid"
)

// Program represents an organization's sport offering.
type Program struct {
	ID             uuid.UUID  `json:"id"`
	Name           string     `json:"name"`
	Sport          string     `json:"sport"`
	CommissionerID uuid.UUID  `json:"commissioner_id"`
	AgeGroups      []AgeGroup `json:"age_groups"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
