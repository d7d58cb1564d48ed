package domain

import (
	"errors"
	"time"
)

// PresenceState is the connection state a client reports.
type PresenceState string

const (
	PresenceOnline  PresenceState = "online"
	PresenceOffline PresenceState = "offline"
)

// ErrInvalidHeartbeat reports a heartbeat without a uid or with an unknown state.
var ErrInvalidHeartbeat = errors.New("invalid heartbeat")

// PresenceHeartbeat is the latest liveness signal for one user. It is owned by
// the realtime channel; the core only reads it.
type PresenceHeartbeat struct {
	UID         string
	State       PresenceState
	LastChanged time.Time
	Platform    string // optional, as reported by the client
	DeviceInfo  string // optional
	Email       string
	DisplayName string
}
