package notifications

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EventRegistrationCommitted is the outbox event type written after a
// successful registration commit.
const EventRegistrationCommitted = "registration.committed"

// OutboxEvent is one post-commit event awaiting dispatch.
type OutboxEvent struct {
	ID          uuid.UUID       `json:"id"`
	EventType   string          `json:"event_type"`
	SeasonID    uuid.UUID       `json:"season_id"`
	PoolEntryID uuid.UUID       `json:"pool_entry_id"`
	Payload     json.RawMessage `json:"payload"`
	Attempts    int             `json:"attempts"`
	CreatedAt   time.Time       `json:"created_at"`
	SentAt      *time.Time      `json:"sent_at,omitempty"`
}

// RegistrationCommitted is the payload of EventRegistrationCommitted.
type RegistrationCommitted struct {
	RegistrationID uuid.UUID `json:"registration_id"`
	PoolEntryID    uuid.UUID `json:"pool_entry_id"`
	SeasonID       uuid.UUID `json:"season_id"`
	ProgramID      uuid.UUID `json:"program_id"`
	AgeGroupID     string    `json:"age_group_id"`
	AthleteName    string    `json:"athlete_name"`
	SeasonName     string    `json:"season_name"`
	ParentID       uuid.UUID `json:"parent_id"`
}
