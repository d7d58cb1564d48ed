// Package status derives visit state from a VisitorRecord and the current
// instant. All functions are pure; callers capture now once per pass and reuse
// it for every record so that boundaries agree within one response.
package status

import (
	"fmt"
	"sort"
	"time"

	"github.com/visitorgate/visitor-admin/internal/core/domain"
	"github.com/visitorgate/visitor-admin/internal/core/timeutil"
)

// OverdueAfter is how long a visitor may stay checked in before being overdue.
const OverdueAfter = 12 * time.Hour

const (
	highAfter     = 18 * time.Hour
	criticalAfter = 24 * time.Hour
)

// Severity ranks an overdue visit.
type Severity string

const (
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Label is the capitalised form shown on alert cards.
func (s Severity) Label() string {
	switch s {
	case SeverityCritical:
		return "Critical"
	case SeverityHigh:
		return "High"
	default:
		return "Medium"
	}
}

// Elapsed returns how long the visitor has been on site as of now. A missing
// check-in instant counts as now.
func Elapsed(v domain.VisitorRecord, now time.Time) time.Duration {
	return now.Sub(timeutil.Resolve(v.TimeIn, now))
}

// Classify returns the derived status. Exactly OverdueAfter is not overdue.
func Classify(v domain.VisitorRecord, now time.Time) domain.VisitorStatus {
	if v.CheckedOut {
		return domain.StatusCheckedOut
	}
	if Elapsed(v, now) > OverdueAfter {
		return domain.StatusOverdue
	}
	return domain.StatusActive
}

// IsOverdue is shorthand for Classify(v, now) == StatusOverdue.
func IsOverdue(v domain.VisitorRecord, now time.Time) bool {
	return Classify(v, now) == domain.StatusOverdue
}

// SeverityOf ranks the time elapsed since check-in. Only meaningful for
// overdue visits.
func SeverityOf(elapsed time.Duration) Severity {
	switch {
	case elapsed >= criticalAfter:
		return SeverityCritical
	case elapsed >= highAfter:
		return SeverityHigh
	default:
		return SeverityMedium
	}
}

// HoursOverdue is the whole number of hours since check-in.
func HoursOverdue(v domain.VisitorRecord, now time.Time) int {
	return int(Elapsed(v, now) / time.Hour)
}

// Duration renders the length of a completed visit as "3h 15m", "3h" or
// "15m". Visits that have not been checked out render as "Active".
func Duration(v domain.VisitorRecord) string {
	if !v.CheckedOut || v.TimeOut == nil {
		return "Active"
	}
	d := v.TimeOut.Sub(v.TimeIn)
	if v.TimeIn.IsZero() || d < 0 {
		d = 0
	}
	hours := int(d / time.Hour)
	minutes := int((d % time.Hour) / time.Minute)
	switch {
	case hours == 0:
		return fmt.Sprintf("%dm", minutes)
	case minutes == 0:
		return fmt.Sprintf("%dh", hours)
	default:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
}

// FormatElapsedHours renders an hour count as "5 hours" or "2 days 3 hours".
func FormatElapsedHours(hours int) string {
	if hours < 24 {
		return plural(hours, "hour")
	}
	days, rem := hours/24, hours%24
	if rem == 0 {
		return plural(days, "day")
	}
	return plural(days, "day") + " " + plural(rem, "hour")
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

// Overdue returns the overdue visitors, oldest check-in first.
func Overdue(visitors []domain.VisitorRecord, now time.Time) []domain.VisitorRecord {
	out := make([]domain.VisitorRecord, 0)
	for _, v := range visitors {
		if IsOverdue(v, now) {
			out = append(out, v)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TimeIn.Before(out[j].TimeIn)
	})
	return out
}
