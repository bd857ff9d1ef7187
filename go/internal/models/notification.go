package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// NotificationCategory defines the kind of notification delivered.
type NotificationCategory string

const (
	NotificationRegistrationConfirmed NotificationCategory = "REGISTRATION_CONFIRMED"
	NotificationNewRegistration       NotificationCategory = "NEW_REGISTRATION"
	NotificationNewPoolEntry          NotificationCategory = "NEW_POOL_ENTRY"
)

// Notification is one delivered message for one recipient.
type Notification struct {
	ID          uuid.UUID            `json:"id"`
	RecipientID uuid.UUID            `json:"recipient_id"`
	Category    NotificationCategory `json:"category"`
	Title       string               `json:"title"`
	Message     string               `json:"message"`
	Metadata    json.RawMessage      `json:"metadata,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
	ReadAt      *time.Time           `json:"read_at,omitempty"`
}
