package draftpool

import (
	"github.com/google/uuid"
	"github.com/mcdev12/rosterpool/go/internal/models"
)

// DraftRequest represents a coach or commissioner drafting a pool entry onto
// a team.
type DraftRequest struct {
	EntryID uuid.UUID `json:"entry_id"`
	TeamID  uuid.UUID `json:"team_id"`
	ActorID uuid.UUID `json:"actor_id"`
	Round   *int      `json:"round,omitempty"`
	Pick    *int      `json:"pick,omitempty"`
}

// UndraftRequest returns a drafted entry to the pool. TeamID must match the
// team currently holding the entry.
type UndraftRequest struct {
	EntryID uuid.UUID `json:"entry_id"`
	TeamID  uuid.UUID `json:"team_id"`
}

// ListFilter narrows pool listings.
type ListFilter struct {
	SeasonID   uuid.UUID
	AgeGroupID string
	Status     models.DraftStatus
}
