package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/rosterpool/go/internal/models"
	"github.com/rs/zerolog/log"
)

// Config tunes the dispatcher poll loop.
type Config struct {
	PollInterval     time.Duration
	BatchSize        int32
	MaxAttempts      int
	RecipientTimeout time.Duration
}

func DefaultConfig() Config {
	return Config{
		PollInterval:     5 * time.Second,
		BatchSize:        100,
		MaxAttempts:      3,
		RecipientTimeout: 5 * time.Second,
	}
}

// DispatchStore defines what the dispatcher needs from the repository
type DispatchStore interface {
	ClaimPending(ctx context.Context, batchSize int32, maxAttempts int) ([]OutboxEvent, error)
	MarkSent(ctx context.Context, id uuid.UUID) error
	InsertNotification(ctx context.Context, n *models.Notification) error
}

// RecipientResolver expands an event into delivery targets.
type RecipientResolver interface {
	Resolve(ctx context.Context, evt RegistrationCommitted) []Recipient
}

// EventPublisher pushes a dispatched event onto the message bus.
type EventPublisher interface {
	Publish(ctx context.Context, subject string, data []byte) error
}

// Dispatcher drains the registration_events outbox and fans each event out
// to its recipients. Delivery is fire-and-forget per recipient: one failure
// is logged and never blocks the rest. An event is marked sent once its
// recipients have been attempted; the attempts cap only guards against crash
// loops, it is not a per-recipient retry.
type Dispatcher struct {
	store     DispatchStore
	resolver  RecipientResolver
	publisher EventPublisher
	config    Config
	clock     clockwork.Clock

	mu       sync.Mutex
	running  bool
	stopChan chan struct{}
	wg       sync.WaitGroup
}

// NewDispatcher creates a Dispatcher. Pass clockwork.NewRealClock() in
// production and a fake clock in tests.
func NewDispatcher(store DispatchStore, resolver RecipientResolver, publisher EventPublisher, cfg Config, clock clockwork.Clock) *Dispatcher {
	return &Dispatcher{
		store:     store,
		resolver:  resolver,
		publisher: publisher,
		config:    cfg,
		clock:     clock,
		stopChan:  make(chan struct{}),
	}
}

func (d *Dispatcher) Start(ctx context.Context) error {
	d.mu.Lock()
	if d.running {
		d.mu.Unlock()
		return fmt.Errorf("dispatcher already running")
	}
	d.running = true
	d.mu.Unlock()

	d.wg.Add(1)
	go d.run(ctx)

	log.Info().
		Dur("poll_interval", d.config.PollInterval).
		Int32("batch_size", d.config.BatchSize).
		Msg("notification dispatcher started")
	return nil
}

func (d *Dispatcher) Stop() error {
	d.mu.Lock()
	if !d.running {
		d.mu.Unlock()
		return fmt.Errorf("dispatcher not running")
	}
	d.running = false
	d.mu.Unlock()

	close(d.stopChan)
	d.wg.Wait()

	log.Info().Msg("notification dispatcher stopped")
	return nil
}

func (d *Dispatcher) run(ctx context.Context) {
	defer d.wg.Done()

	ticker := d.clock.NewTicker(d.config.PollInterval)
	defer ticker.Stop()

	// Process immediately on start
	d.ProcessOutbox(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-d.stopChan:
			return
		case <-ticker.Chan():
			d.ProcessOutbox(ctx)
		}
	}
}

// ProcessOutbox drains one batch. Exported so tests and the poll loop share
// the same path.
func (d *Dispatcher) ProcessOutbox(ctx context.Context) {
	events, err := d.store.ClaimPending(ctx, d.config.BatchSize, d.config.MaxAttempts)
	if err != nil {
		log.Error().Err(err).Msg("failed to claim pending events")
		return
	}

	for _, evt := range events {
		d.dispatch(ctx, evt)
	}
}

func (d *Dispatcher) dispatch(ctx context.Context, evt OutboxEvent) {
	var payload RegistrationCommitted
	if err := json.Unmarshal(evt.Payload, &payload); err != nil {
		log.Error().Err(err).
			Str("event_id", evt.ID.String()).
			Msg("unreadable event payload, parking event")
		return
	}

	recipients := d.resolver.Resolve(ctx, payload)
	delivered := 0
	for _, recipient := range recipients {
		if err := d.deliver(ctx, recipient, payload); err != nil {
			log.Warn().Err(err).
				Str("event_id", evt.ID.String()).
				Str("recipient_id", recipient.ID.String()).
				Str("category", string(recipient.Category)).
				Msg("notification delivery failed")
			continue
		}
		delivered++
	}

	if err := d.publisher.Publish(ctx, evt.EventType, evt.Payload); err != nil {
		log.Warn().Err(err).
			Str("event_id", evt.ID.String()).
			Msg("failed to publish event to bus")
	}

	if err := d.store.MarkSent(ctx, evt.ID); err != nil {
		log.Error().Err(err).
			Str("event_id", evt.ID.String()).
			Msg("failed to mark event sent")
		return
	}

	log.Info().
		Str("event_id", evt.ID.String()).
		Int("recipients", len(recipients)).
		Int("delivered", delivered).
		Msg("event dispatched")
}

func (d *Dispatcher) deliver(ctx context.Context, recipient Recipient, payload RegistrationCommitted) error {
	dctx, cancel := context.WithTimeout(ctx, d.config.RecipientTimeout)
	defer cancel()

	return d.store.InsertNotification(dctx, &models.Notification{
		ID:          uuid.New(),
		RecipientID: recipient.ID,
		Category:    recipient.Category,
		Title:       recipient.Title,
		Message:     recipient.Message,
		Metadata:    recipient.Metadata(payload),
	})
}
