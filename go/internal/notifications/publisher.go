package notifications

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"
)

// SubjectPrefix is the NATS subject root for registration events.
const SubjectPrefix = "registration.events"

// NATSPublisher publishes dispatched events to NATS for live consumers such
// as the draft-board gateway.
type NATSPublisher struct {
	nc *nats.Conn
}

// NewNATSPublisher connects to NATS with reconnect handling.
func NewNATSPublisher(url string) (*NATSPublisher, error) {
	opts := []nats.Option{
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2 * time.Second),
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

	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}
	return &NATSPublisher{nc: nc}, nil
}

func (p *NATSPublisher) Publish(ctx context.Context, subject string, data []byte) error {
	if err := p.nc.Publish(fmt.Sprintf("%s.%s", SubjectPrefix, subject), data); err != nil {
		return fmt.Errorf("publish %s: %w", subject, err)
	}
	return nil
}

func (p *NATSPublisher) Close() {
	p.nc.Close()
}

// LogPublisher is a stand-in publisher for development and tests.
type LogPublisher struct{}

func (LogPublisher) Publish(ctx context.Context, subject string, data []byte) error {
	log.Info().
		Str("subject", fmt.Sprintf("%s.%s", SubjectPrefix, subject)).
		Int("size", len(data)).
		Msg("publishing event")
	return nil
}
