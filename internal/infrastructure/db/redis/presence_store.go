package redis

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/visitorgate/visitor-admin/internal/core/domain"
)

const (
	presencePrefix   = "presence:"
	defaultRetention = 30 * 24 * time.Hour
	scanCount        = 200
)

// PresenceStore keeps the latest heartbeat per user in a hash.
// Key format: presence:<uid>
//
// Keys expire after the retention window so users that stopped reporting
// eventually drop to "Never Active" instead of keeping a stale last seen.
type PresenceStore struct {
	client    *redis.Client
	retention time.Duration
}

func NewPresenceStore(client *redis.Client, retention time.Duration) *PresenceStore {
	if retention <= 0 {
		retention = defaultRetention
	}
	return &PresenceStore{client: client, retention: retention}
}

// Save overwrites the user's heartbeat and refreshes its expiry.
func (s *PresenceStore) Save(ctx context.Context, hb domain.PresenceHeartbeat) error {
	key := s.key(hb.UID)
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, key)
	pipe.HSet(ctx, key, encodeHeartbeat(hb))
	pipe.Expire(ctx, key, s.retention)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("presence save: %w", err)
	}
	return nil
}

func (s *PresenceStore) Get(ctx context.Context, uid string) (*domain.PresenceHeartbeat, error) {
	fields, err := s.client.HGetAll(ctx, s.key(uid)).Result()
	if err != nil {
		return nil, fmt.Errorf("presence get: %w", err)
	}
	if len(fields) == 0 {
		return nil, nil
	}
	hb := decodeHeartbeat(uid, fields)
	return &hb, nil
}

// All returns every stored heartbeat keyed by uid.
func (s *PresenceStore) All(ctx context.Context) (map[string]domain.PresenceHeartbeat, error) {
	var keys []string
	iter := s.client.Scan(ctx, 0, presencePrefix+"*", scanCount).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("presence scan: %w", err)
	}

	out := make(map[string]domain.PresenceHeartbeat, len(keys))
	if len(keys) == 0 {
		return out, nil
	}

	pipe := s.client.Pipeline()
	cmds := make([]*redis.MapStringStringCmd, len(keys))
	for i, k := range keys {
		cmds[i] = pipe.HGetAll(ctx, k)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("presence load: %w", err)
	}

	for i, cmd := range cmds {
		fields := cmd.Val()
		if len(fields) == 0 {
			// expired between SCAN and HGETALL
			continue
		}
		uid := strings.TrimPrefix(keys[i], presencePrefix)
		out[uid] = decodeHeartbeat(uid, fields)
	}
	return out, nil
}

func (s *PresenceStore) Delete(ctx context.Context, uid string) error {
	if err := s.client.Del(ctx, s.key(uid)).Err(); err != nil {
		return fmt.Errorf("presence delete: %w", err)
	}
	return nil
}

func (s *PresenceStore) key(uid string) string {
	return presencePrefix + uid
}

func encodeHeartbeat(hb domain.PresenceHeartbeat) map[string]any {
	fields := map[string]any{
		"state":       string(hb.State),
		"lastChanged": strconv.FormatInt(hb.LastChanged.UnixMilli(), 10),
	}
	if hb.Platform != "" {
		fields["platform"] = hb.Platform
	}
	if hb.DeviceInfo != "" {
		fields["deviceInfo"] = hb.DeviceInfo
	}
	if hb.Email != "" {
		fields["email"] = hb.Email
	}
	if hb.DisplayName != "" {
		fields["displayName"] = hb.DisplayName
	}
	return fields
}

// decodeHeartbeat leaves LastChanged zero when the stored value is not a
// number, which presence.DeriveOnline reads as offline.
func decodeHeartbeat(uid string, fields map[string]string) domain.PresenceHeartbeat {
	hb := domain.PresenceHeartbeat{
		UID:         uid,
		State:       domain.PresenceState(fields["state"]),
		Platform:    fields["platform"],
		DeviceInfo:  fields["deviceInfo"],
		Email:       fields["email"],
		DisplayName: fields["displayName"],
	}
	if ms, err := strconv.ParseInt(fields["lastChanged"], 10, 64); err == nil {
		hb.LastChanged = time.UnixMilli(ms).UTC()
	}
	return hb
}
