package presence

import (
	"testing"
	"time"

	"github.com/visitorgate/visitor-admin/internal/core/domain"
)

var now = time.Date(2025, 6, 11, 12, 0, 0, 0, time.UTC)

func ago(d time.Duration) *time.Time {
	t := now.Add(-d)
	return &t
}

func TestDeriveOnline_TTL(t *testing.T) {
	cases := []struct {
		name  string
		state domain.PresenceState
		age   time.Duration
		want  bool
	}{
		{"fresh", domain.PresenceOnline, 30 * time.Second, true},
		{"inside ttl", domain.PresenceOnline, 119 * time.Second, true},
		{"at ttl", domain.PresenceOnline, 120 * time.Second, true},
		{"stale", domain.PresenceOnline, 121 * time.Second, false},
		{"offline", domain.PresenceOffline, time.Second, false},
	}
	for _, tc := range cases {
		hb := domain.PresenceHeartbeat{UID: "u1", State: tc.state, LastChanged: now.Add(-tc.age)}
		if got := DeriveOnline(hb, now); got != tc.want {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestDeriveOnline_MissingLastChanged(t *testing.T) {
	cases := map[string]time.Time{
		"zero":  {},
		"epoch": time.UnixMilli(0).UTC(),
	}
	for name, at := range cases {
		hb := domain.PresenceHeartbeat{UID: "u1", State: domain.PresenceOnline, LastChanged: at}
		if DeriveOnline(hb, now) {
			t.Errorf("%s: heartbeat must read as offline", name)
		}
	}
}

func TestCountOnline(t *testing.T) {
	hbs := []domain.PresenceHeartbeat{
		{UID: "a", State: domain.PresenceOnline, LastChanged: now.Add(-10 * time.Second)},
		{UID: "b", State: domain.PresenceOnline, LastChanged: now.Add(-10 * time.Minute)},
		{UID: "c", State: domain.PresenceOffline, LastChanged: now},
	}
	if got := CountOnline(hbs, now); got != 1 {
		t.Errorf("expected 1 online, got %d", got)
	}
}

func TestStatusLabel(t *testing.T) {
	cases := []struct {
		name string
		user domain.UserAccount
		want Label
		text string
	}{
		{"online", domain.UserAccount{IsOnline: true, LastSeen: ago(time.Hour)}, Label{Kind: LabelOnline}, "Online"},
		{"never", domain.UserAccount{}, Label{Kind: LabelNeverActive}, "Never Active"},
		{"just now", domain.UserAccount{LastSeen: ago(30 * time.Second)}, Label{Kind: LabelJustNow}, "Just Now"},
		{"minutes", domain.UserAccount{LastSeen: ago(45 * time.Minute)}, Label{Kind: LabelMinutesAgo, N: 45}, "45 min ago"},
		{"hours", domain.UserAccount{LastSeen: ago(125 * time.Minute)}, Label{Kind: LabelHoursAgo, N: 2}, "2 hours ago"},
		{"days", domain.UserAccount{LastSeen: ago(50 * time.Hour)}, Label{Kind: LabelDaysAgo, N: 2}, "2 days ago"},
	}
	for _, tc := range cases {
		got := StatusLabel(tc.user, now)
		if got != tc.want {
			t.Errorf("%s: expected %+v, got %+v", tc.name, tc.want, got)
		}
		if got.String() != tc.text {
			t.Errorf("%s: expected text %q, got %q", tc.name, tc.text, got.String())
		}
	}
}

func TestStatusColor(t *testing.T) {
	cases := []struct {
		name string
		user domain.UserAccount
		want Color
	}{
		{"online", domain.UserAccount{IsOnline: true}, ColorGreen},
		{"never", domain.UserAccount{}, ColorGray},
		{"away", domain.UserAccount{LastSeen: ago(4 * time.Minute)}, ColorAmber},
		{"recent", domain.UserAccount{LastSeen: ago(45 * time.Minute)}, ColorRed},
		{"long gone", domain.UserAccount{LastSeen: ago(2 * time.Hour)}, ColorGray},
	}
	for _, tc := range cases {
		if got := StatusColor(tc.user, now); got != tc.want {
			t.Errorf("%s: expected %s, got %s", tc.name, tc.want, got)
		}
	}
}

func TestEffectivePlatform(t *testing.T) {
	cases := []struct {
		role, reported, stored, want string
	}{
		{domain.RoleUser, "web", "web", domain.PlatformMobile},
		{domain.RoleAdmin, "mobile", "web", "mobile"},
		{domain.RoleAdmin, "", "mobile", "mobile"},
		{domain.RoleAdmin, "", "", domain.PlatformWeb},
	}
	for _, tc := range cases {
		if got := EffectivePlatform(tc.role, tc.reported, tc.stored); got != tc.want {
			t.Errorf("EffectivePlatform(%q,%q,%q) = %q, want %q", tc.role, tc.reported, tc.stored, got, tc.want)
		}
	}
}

func TestScenarioC_FreshHeartbeat(t *testing.T) {
	u := domain.UserAccount{UID: "u1", Role: domain.RoleUser}
	hb := &domain.PresenceHeartbeat{UID: "u1", State: domain.PresenceOnline, LastChanged: now.Add(-30 * time.Second)}

	merged := Merge(u, hb, now)
	if !merged.IsOnline {
		t.Fatal("expected user online")
	}
	if got := StatusColor(merged, now); got != ColorGreen {
		t.Errorf("expected green, got %s", got)
	}
	if merged.Platform != domain.PlatformMobile {
		t.Errorf("non-admin should be mobile, got %s", merged.Platform)
	}
}

func TestScenarioD_RecentlyOffline(t *testing.T) {
	u := domain.UserAccount{UID: "u1", IsOnline: false, LastSeen: ago(45 * time.Minute)}
	if got := StatusLabel(u, now); got != (Label{Kind: LabelMinutesAgo, N: 45}) {
		t.Errorf("expected 45 minutes ago, got %+v", got)
	}
	if got := StatusColor(u, now); got != ColorRed {
		t.Errorf("expected red, got %s", got)
	}
}

func TestMerge_NoHeartbeat(t *testing.T) {
	seen := now.Add(-time.Hour)
	u := domain.UserAccount{UID: "a", Role: domain.RoleAdmin, Platform: "", IsOnline: true, LastSeen: &seen}
	merged := Merge(u, nil, now)
	if merged.IsOnline {
		t.Error("expected offline without heartbeat")
	}
	if merged.Platform != domain.PlatformWeb {
		t.Errorf("expected web, got %s", merged.Platform)
	}
	if merged.LastSeen == nil || !merged.LastSeen.Equal(seen) {
		t.Error("stored last seen should be kept")
	}
}
