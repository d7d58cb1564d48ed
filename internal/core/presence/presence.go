// Package presence derives online/offline state for operators from their
// latest heartbeat.
package presence

import (
	"fmt"
	"time"

	"github.com/visitorgate/visitor-admin/internal/core/domain"
)

// OnlineTTL is the maximum heartbeat age still trusted as online. Clients that
// die without sending "offline" fall out of the online set after this window.
const OnlineTTL = 120 * time.Second

const (
	awayWithin   = 5 * time.Minute
	recentWithin = 60 * time.Minute
)

// DeriveOnline reports whether hb proves the user is online as of now. A
// heartbeat without a usable LastChanged proves nothing and reads as offline.
func DeriveOnline(hb domain.PresenceHeartbeat, now time.Time) bool {
	if hb.State != domain.PresenceOnline || hb.LastChanged.IsZero() {
		return false
	}
	return now.Sub(hb.LastChanged) <= OnlineTTL
}

// CountOnline counts heartbeats that DeriveOnline accepts.
func CountOnline(heartbeats []domain.PresenceHeartbeat, now time.Time) int {
	n := 0
	for _, hb := range heartbeats {
		if DeriveOnline(hb, now) {
			n++
		}
	}
	return n
}

// LabelKind enumerates the presence labels.
type LabelKind string

const (
	LabelOnline      LabelKind = "online"
	LabelJustNow     LabelKind = "just_now"
	LabelMinutesAgo  LabelKind = "minutes_ago"
	LabelHoursAgo    LabelKind = "hours_ago"
	LabelDaysAgo     LabelKind = "days_ago"
	LabelNeverActive LabelKind = "never_active"
)

// Label is a presence label plus its count for the "ago" kinds.
type Label struct {
	Kind LabelKind `json:"kind"`
	N    int       `json:"n,omitempty"`
}

func (l Label) String() string {
	switch l.Kind {
	case LabelOnline:
		return "Online"
	case LabelJustNow:
		return "Just Now"
	case LabelMinutesAgo:
		return fmt.Sprintf("%d min ago", l.N)
	case LabelHoursAgo:
		return fmt.Sprintf("%d hours ago", l.N)
	case LabelDaysAgo:
		return fmt.Sprintf("%d days ago", l.N)
	default:
		return "Never Active"
	}
}

// Color is the staleness bucket used to tint presence badges.
type Color string

const (
	ColorGreen Color = "green"
	ColorAmber Color = "amber"
	ColorRed   Color = "red"
	ColorGray  Color = "gray"
)

func minutesSince(t time.Time, now time.Time) int {
	return int(now.Sub(t) / time.Minute)
}

// StatusLabel describes when the user was last seen.
func StatusLabel(u domain.UserAccount, now time.Time) Label {
	if u.IsOnline {
		return Label{Kind: LabelOnline}
	}
	if u.LastSeen == nil {
		return Label{Kind: LabelNeverActive}
	}
	m := minutesSince(*u.LastSeen, now)
	switch {
	case m < 1:
		return Label{Kind: LabelJustNow}
	case m < 60:
		return Label{Kind: LabelMinutesAgo, N: m}
	case m < 1440:
		return Label{Kind: LabelHoursAgo, N: m / 60}
	default:
		return Label{Kind: LabelDaysAgo, N: m / 1440}
	}
}

// StatusColor maps online to green, away (<5m) to amber, recently offline
// (<60m) to red and everything else to gray.
func StatusColor(u domain.UserAccount, now time.Time) Color {
	if u.IsOnline {
		return ColorGreen
	}
	if u.LastSeen == nil {
		return ColorGray
	}
	elapsed := now.Sub(*u.LastSeen)
	switch {
	case elapsed < awayWithin:
		return ColorAmber
	case elapsed < recentWithin:
		return ColorRed
	default:
		return ColorGray
	}
}

// EffectivePlatform resolves the platform shown for a user. Non-admins are
// always mobile; admins use the reported platform, then the stored one, then
// web.
func EffectivePlatform(role, reported, stored string) string {
	if role != domain.RoleAdmin {
		return domain.PlatformMobile
	}
	if reported != "" {
		return reported
	}
	if stored != "" {
		return stored
	}
	return domain.PlatformWeb
}

// Merge applies a heartbeat to a user and returns the result. hb may be nil
// when the user has never reported presence.
func Merge(u domain.UserAccount, hb *domain.PresenceHeartbeat, now time.Time) domain.UserAccount {
	out := u
	if hb == nil {
		out.IsOnline = false
		out.Platform = EffectivePlatform(u.Role, "", u.Platform)
		return out
	}
	out.IsOnline = DeriveOnline(*hb, now)
	if !hb.LastChanged.IsZero() {
		seen := hb.LastChanged
		out.LastSeen = &seen
	}
	out.Platform = EffectivePlatform(u.Role, hb.Platform, u.Platform)
	if hb.DeviceInfo != "" {
		out.DeviceInfo = hb.DeviceInfo
	}
	return out
}
