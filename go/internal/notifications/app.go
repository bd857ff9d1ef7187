package notifications

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/mcdev12/rosterpool/go/internal/models"
)

// OutboxStore defines what the app layer needs from the repository
type OutboxStore interface {
	InsertEvent(ctx context.Context, evt OutboxEvent) error
	ListByRecipient(ctx context.Context, recipientID uuid.UUID, limit int32) ([]models.Notification, error)
}

// App enqueues post-commit events and reads delivered notifications.
type App struct {
	store OutboxStore
}

// NewApp creates a new notifications App
func NewApp(store OutboxStore) *App {
	return &App{store: store}
}

// EnqueueRegistrationCommitted records one event for the dispatcher to fan
// out. Called after the registration transaction commits, never inside it.
func (a *App) EnqueueRegistrationCommitted(ctx context.Context, evt RegistrationCommitted) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("failed to marshal registration event: %w", err)
	}

	return a.store.InsertEvent(ctx, OutboxEvent{
		ID:          uuid.New(),
		EventType:   EventRegistrationCommitted,
		SeasonID:    evt.SeasonID,
		PoolEntryID: evt.PoolEntryID,
		Payload:     payload,
	})
}

// ListByRecipient returns a recipient's delivered notifications, newest
// first.
func (a *App) ListByRecipient(ctx context.Context, recipientID uuid.UUID, limit int32) ([]models.Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	return a.store.ListByRecipient(ctx, recipientID, limit)
}
