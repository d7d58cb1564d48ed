package redis

import (
	"testing"
	"time"

	"github.com/visitorgate/visitor-admin/internal/core/domain"
	"github.com/visitorgate/visitor-admin/internal/core/presence"
)

func TestHeartbeatEncoding(t *testing.T) {
	hb := domain.PresenceHeartbeat{
		UID:         "u-1",
		State:       domain.PresenceOnline,
		LastChanged: time.Date(2025, 6, 11, 15, 0, 0, 0, time.UTC),
		Platform:    domain.PlatformMobile,
		Email:       "guard@example.com",
	}

	encoded := encodeHeartbeat(hb)
	if encoded["lastChanged"] != "1749654000000" {
		t.Fatalf("unexpected lastChanged %v", encoded["lastChanged"])
	}
	if _, ok := encoded["deviceInfo"]; ok {
		t.Fatal("empty optional fields must not be written")
	}

	fields := make(map[string]string, len(encoded))
	for k, v := range encoded {
		fields[k] = v.(string)
	}
	got := decodeHeartbeat("u-1", fields)
	if got != hb {
		t.Fatalf("expected %+v, got %+v", hb, got)
	}
}

func TestDecodeHeartbeat_BadTimestamp(t *testing.T) {
	got := decodeHeartbeat("u-1", map[string]string{"state": "offline", "lastChanged": "soon"})
	if !got.LastChanged.IsZero() {
		t.Fatalf("expected zero time, got %v", got.LastChanged)
	}
	if got.State != domain.PresenceOffline {
		t.Fatalf("unexpected state %s", got.State)
	}
}

func TestDecodeHeartbeat_EpochZeroIsKept(t *testing.T) {
	hb := domain.PresenceHeartbeat{UID: "u-1", State: domain.PresenceOnline, LastChanged: time.UnixMilli(0).UTC()}
	encoded := encodeHeartbeat(hb)
	if encoded["lastChanged"] != "0" {
		t.Fatalf("unexpected lastChanged %v", encoded["lastChanged"])
	}

	got := decodeHeartbeat("u-1", map[string]string{"state": "online", "lastChanged": "0"})
	if !got.LastChanged.Equal(time.UnixMilli(0)) {
		t.Fatalf("expected epoch, got %v", got.LastChanged)
	}
	if presence.DeriveOnline(got, time.Now().UTC()) {
		t.Fatal("epoch heartbeat must not read as online")
	}
}

func TestPresenceStore_DefaultRetention(t *testing.T) {
	s := NewPresenceStore(nil, 0)
	if s.retention != defaultRetention {
		t.Fatalf("expected default retention, got %v", s.retention)
	}
	if s.key("abc") != "presence:abc" {
		t.Fatalf("unexpected key %s", s.key("abc"))
	}
}
