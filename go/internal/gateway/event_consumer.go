package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/rosterpool/go/internal/notifications"
)

// ConsumerConfig holds configuration for the NATS event consumer
type ConsumerConfig struct {
	URL           string
	SubjectFilter string // e.g., "registration.events.>"
	MaxReconnects int
	ReconnectWait time.Duration
}

// DefaultConsumerConfig returns default consumer configuration
func DefaultConsumerConfig() ConsumerConfig {
	return ConsumerConfig{
		URL:           nats.DefaultURL,
		SubjectFilter: notifications.SubjectPrefix + ".>",
		MaxReconnects: -1,
		ReconnectWait: 2 * time.Second,
	}
}

// EventConsumer consumes registration events from NATS and broadcasts them to
// WebSocket clients watching the affected season.
type EventConsumer struct {
	connectionManager *ConnectionManager
	nc                *nats.Conn
	sub               *nats.Subscription
	config            ConsumerConfig
}

// NewEventConsumer creates a new NATS event consumer
func NewEventConsumer(cm *ConnectionManager, config ConsumerConfig) (*EventConsumer, error) {
	opts := []nats.Option{
		nats.MaxReconnects(config.MaxReconnects),
		nats.ReconnectWait(config.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Error().Err(err).Msg("NATS disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info().Str("url", nc.ConnectedUrl()).Msg("NATS reconnected")
		}),
		nats.ErrorHandler(func(nc *nats.Conn, sub *nats.Subscription, err error) {
			log.Error().Err(err).Msg("NATS error")
		}),
	}

	nc, err := nats.Connect(config.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}

	return &EventConsumer{
		connectionManager: cm,
		nc:                nc,
		config:            config,
	}, nil
}

// Start subscribes to the registration event subjects and blocks until the
// context is cancelled.
func (ec *EventConsumer) Start(ctx context.Context) error {
	log.Info().
		Str("subject", ec.config.SubjectFilter).
		Msg("starting NATS event consumer")

	sub, err := ec.nc.Subscribe(ec.config.SubjectFilter, func(msg *nats.Msg) {
		if err := ec.processMessage(msg); err != nil {
			log.Error().
				Err(err).
				Str("subject", msg.Subject).
				Msg("failed to process message")
		}
	})
	if err != nil {
		return fmt.Errorf("subscribe: %w", err)
	}
	ec.sub = sub

	<-ctx.Done()
	log.Info().Msg("event consumer shutting down")
	return nil
}

// processMessage converts a registration event into a pool event and
// broadcasts it to the season's WebSocket clients.
func (ec *EventConsumer) processMessage(msg *nats.Msg) error {
	var committed notifications.RegistrationCommitted
	if err := json.Unmarshal(msg.Data, &committed); err != nil {
		return fmt.Errorf("unmarshal registration event: %w", err)
	}

	event := &PoolEvent{
		ID:        uuid.New().String(),
		SeasonID:  committed.SeasonID.String(),
		Type:      EventTypeRegistrationCommitted,
		Timestamp: time.Now(),
		Data:      msg.Data,
	}

	ec.connectionManager.BroadcastToSeason(committed.SeasonID, event)

	log.Debug().
		Str("season_id", committed.SeasonID.String()).
		Str("pool_entry_id", committed.PoolEntryID.String()).
		Msg("event broadcasted to WebSocket clients")

	return nil
}

// Stop gracefully shuts down the event consumer
func (ec *EventConsumer) Stop() error {
	log.Info().Msg("stopping event consumer")

	if ec.sub != nil {
		if err := ec.sub.Unsubscribe(); err != nil {
			log.Error().Err(err).Msg("failed to unsubscribe")
		}
	}
	if ec.nc != nil {
		ec.nc.Close()
	}

	return nil
}
