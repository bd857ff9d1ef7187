package gateway

import (
	"encoding/json"
	"time"
)

// EventType identifies the kind of pool event pushed to clients
type EventType string

const (
	EventTypeRegistrationCommitted EventType = "REGISTRATION_COMMITTED"
)

// PoolEvent is the envelope broadcast to WebSocket clients watching a season's
// draft pool.
type PoolEvent struct {
	ID        string          `json:"id"`
	SeasonID  string          `json:"seasonId"`
	Type      EventType       `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}
