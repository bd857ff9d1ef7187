package notifications

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/mcdev12/rosterpool/go/internal/models"
	"github.com/mcdev12/rosterpool/go/internal/sqlutil"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) InsertEvent(ctx context.Context, evt OutboxEvent) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO registration_events (id, event_type, season_id, pool_entry_id, payload)
		VALUES ($1, $2, $3, $4, $5)`,
		evt.ID, evt.EventType, evt.SeasonID, evt.PoolEntryID, []byte(evt.Payload))
	if err != nil {
		return fmt.Errorf("failed to insert outbox event: %w", err)
	}
	return nil
}

// ClaimPending locks a batch of unsent events and bumps their attempt count
// in one transaction. SKIP LOCKED keeps concurrent dispatchers from fighting
// over the same rows; events past maxAttempts stay parked.
func (r *Repository) ClaimPending(ctx context.Context, batchSize int32, maxAttempts int) ([]OutboxEvent, error) {
	var events []OutboxEvent
	err := sqlutil.Run(ctx, r.db, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, `
			SELECT id, event_type, season_id, pool_entry_id, payload, attempts, created_at
			FROM registration_events
			WHERE sent_at IS NULL AND attempts < $2
			ORDER BY created_at
			LIMIT $1
			FOR UPDATE SKIP LOCKED`, batchSize, maxAttempts)
		if err != nil {
			return fmt.Errorf("failed to select pending events: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var evt OutboxEvent
			if err := rows.Scan(&evt.ID, &evt.EventType, &evt.SeasonID, &evt.PoolEntryID,
				&evt.Payload, &evt.Attempts, &evt.CreatedAt); err != nil {
				return fmt.Errorf("failed to scan outbox event: %w", err)
			}
			events = append(events, evt)
		}
		if err := rows.Err(); err != nil {
			return err
		}

		for i := range events {
			if _, err := tx.ExecContext(ctx, `
				UPDATE registration_events SET attempts = attempts + 1 WHERE id = $1`,
				events[i].ID); err != nil {
				return fmt.Errorf("failed to bump event attempts: %w", err)
			}
			events[i].Attempts++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (r *Repository) MarkSent(ctx context.Context, id uuid.UUID) error {
	if _, err := r.db.ExecContext(ctx, `
		UPDATE registration_events SET sent_at = now() WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to mark event sent: %w", err)
	}
	return nil
}

func (r *Repository) InsertNotification(ctx context.Context, n *models.Notification) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO notifications (id, recipient_id, category, title, message, metadata)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		n.ID, n.RecipientID, n.Category, n.Title, n.Message, nullableJSON(n.Metadata))
	if err != nil {
		return fmt.Errorf("failed to insert notification: %w", err)
	}
	return nil
}

func (r *Repository) ListByRecipient(ctx context.Context, recipientID uuid.UUID, limit int32) ([]models.Notification, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, recipient_id, category, title, message, metadata, created_at, read_at
		FROM notifications
		WHERE recipient_id = $1
		ORDER BY created_at DESC
		LIMIT $2`, recipientID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	var out []models.Notification
	for rows.Next() {
		var n models.Notification
		var metadata []byte
		var readAt sql.NullTime
		if err := rows.Scan(&n.ID, &n.RecipientID, &n.Category, &n.Title, &n.Message,
			&metadata, &n.CreatedAt, &readAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		n.Metadata = metadata
		n.ReadAt = sqlutil.FromSqlTime(readAt)
		out = append(out, n)
	}
	return out, rows.Err()
}

func nullableJSON(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return b
}
