package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/visitorgate/visitor-admin/internal/core/domain"
	"github.com/visitorgate/visitor-admin/internal/core/ports"
	"github.com/visitorgate/visitor-admin/internal/core/presence"
	"github.com/visitorgate/visitor-admin/internal/core/timeutil"
)

type PresenceService struct {
	store  ports.PresenceStore
	now    func() time.Time
	logger zerolog.Logger
}

func NewPresenceService(store ports.PresenceStore, logger zerolog.Logger) *PresenceService {
	return &PresenceService{
		store:  store,
		now:    func() time.Time { return time.Now().UTC() },
		logger: logger,
	}
}

// Record stores the heartbeat as the user's latest. lastChanged falls back to
// the receive time when it cannot be read or lies in the future.
func (s *PresenceService) Record(ctx context.Context, input ports.HeartbeatInput) error {
	if input.UID == "" {
		return fmt.Errorf("%w: missing uid", domain.ErrInvalidHeartbeat)
	}
	state := domain.PresenceState(strings.ToLower(input.State))
	if state != domain.PresenceOnline && state != domain.PresenceOffline {
		return fmt.Errorf("%w: unknown state %q", domain.ErrInvalidHeartbeat, input.State)
	}

	received := input.ReceivedAt
	if received.IsZero() {
		received = s.now()
	}
	lastChanged := received
	if input.LastChanged != nil {
		t, ok := timeutil.ToInstant(input.LastChanged, received)
		if !ok {
			s.logger.Warn().Str("uid", input.UID).Interface("last_changed", input.LastChanged).Msg("unparseable heartbeat time, using receive time")
		}
		if t.After(received) {
			s.logger.Warn().Str("uid", input.UID).Time("last_changed", t).Msg("heartbeat time ahead of server clock, using receive time")
			t = received
		}
		lastChanged = t
	}

	hb := domain.PresenceHeartbeat{
		UID:         input.UID,
		State:       state,
		LastChanged: lastChanged,
		Platform:    input.Platform,
		DeviceInfo:  input.DeviceInfo,
		Email:       input.Email,
		DisplayName: input.DisplayName,
	}
	if err := s.store.Save(ctx, hb); err != nil {
		return fmt.Errorf("record heartbeat: %w", err)
	}

	s.logger.Debug().Str("uid", hb.UID).Str("state", string(hb.State)).Msg("heartbeat recorded")
	return nil
}

// OnlineCount counts users whose latest heartbeat proves they are online.
func (s *PresenceService) OnlineCount(ctx context.Context) (int, error) {
	all, err := s.store.All(ctx)
	if err != nil {
		return 0, err
	}
	heartbeats := make([]domain.PresenceHeartbeat, 0, len(all))
	for _, hb := range all {
		heartbeats = append(heartbeats, hb)
	}
	return presence.CountOnline(heartbeats, s.now()), nil
}
