package status

import (
	"reflect"
	"testing"
	"time"

	"github.com/visitorgate/visitor-admin/internal/core/domain"
)

var t0 = time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC)

func checkedIn(at time.Time) domain.VisitorRecord {
	return domain.VisitorRecord{ID: "v1", VisitorName: "Amina", TimeIn: at, Category: domain.CategoryFoot}
}

func checkedOutAfter(at time.Time, d time.Duration) domain.VisitorRecord {
	v := checkedIn(at)
	out := at.Add(d)
	v.TimeOut = &out
	v.CheckedOut = true
	return v
}

func TestClassify_CheckedOutAlwaysWins(t *testing.T) {
	v := checkedOutAfter(t0, time.Hour)
	for _, now := range []time.Time{t0, t0.Add(13 * time.Hour), t0.Add(100 * time.Hour)} {
		if got := Classify(v, now); got != domain.StatusCheckedOut {
			t.Errorf("now=%v: expected checked_out, got %s", now, got)
		}
	}
}

func TestClassify_OverdueBoundaryIsStrict(t *testing.T) {
	v := checkedIn(t0)

	if got := Classify(v, t0.Add(12*time.Hour)); got != domain.StatusActive {
		t.Errorf("exactly 12h: expected active, got %s", got)
	}
	if got := Classify(v, t0.Add(12*time.Hour+time.Second)); got != domain.StatusOverdue {
		t.Errorf("12h+1s: expected overdue, got %s", got)
	}
}

func TestClassify_MissingCheckInIsNotOverdue(t *testing.T) {
	v := domain.VisitorRecord{ID: "broken"}
	if got := Classify(v, t0); got != domain.StatusActive {
		t.Errorf("expected active for missing check-in, got %s", got)
	}
}

func TestSeverityOf_Boundaries(t *testing.T) {
	cases := []struct {
		elapsed time.Duration
		want    Severity
	}{
		{13 * time.Hour, SeverityMedium},
		{17*time.Hour + 59*time.Minute + 59*time.Second, SeverityMedium},
		{18 * time.Hour, SeverityHigh},
		{23*time.Hour + 59*time.Minute + 59*time.Second, SeverityHigh},
		{24 * time.Hour, SeverityCritical},
		{72 * time.Hour, SeverityCritical},
	}
	for _, tc := range cases {
		if got := SeverityOf(tc.elapsed); got != tc.want {
			t.Errorf("SeverityOf(%v) = %s, want %s", tc.elapsed, got, tc.want)
		}
	}
}

func TestDuration(t *testing.T) {
	cases := []struct {
		name string
		v    domain.VisitorRecord
		want string
	}{
		{"active", checkedIn(t0), "Active"},
		{"hours and minutes", checkedOutAfter(t0, 3*time.Hour+15*time.Minute), "3h 15m"},
		{"hours only", checkedOutAfter(t0, 2*time.Hour), "2h"},
		{"minutes only", checkedOutAfter(t0, 45*time.Minute), "45m"},
		{"zero", checkedOutAfter(t0, 0), "0m"},
		{"seconds are dropped", checkedOutAfter(t0, time.Hour+59*time.Second), "1h"},
	}
	for _, tc := range cases {
		if got := Duration(tc.v); got != tc.want {
			t.Errorf("%s: expected %q, got %q", tc.name, tc.want, got)
		}
	}
}

func TestScenarioA_OverdueActiveVisitor(t *testing.T) {
	v := checkedIn(t0)
	now := t0.Add(13 * time.Hour)

	if got := Classify(v, now); got != domain.StatusOverdue {
		t.Errorf("expected overdue, got %s", got)
	}
	if got := SeverityOf(Elapsed(v, now)); got != SeverityMedium {
		t.Errorf("expected medium, got %s", got)
	}
	if got := Duration(v); got != "Active" {
		t.Errorf("expected Active, got %q", got)
	}
	if got := HoursOverdue(v, now); got != 13 {
		t.Errorf("expected 13 hours, got %d", got)
	}
}

func TestScenarioB_CompletedVisit(t *testing.T) {
	v := checkedOutAfter(t0, 3*time.Hour+15*time.Minute)
	if got := Duration(v); got != "3h 15m" {
		t.Errorf("expected 3h 15m, got %q", got)
	}
	if got := Classify(v, t0.Add(20*time.Hour)); got != domain.StatusCheckedOut {
		t.Errorf("expected checked_out, got %s", got)
	}
}

func TestFormatElapsedHours(t *testing.T) {
	cases := map[int]string{
		1:  "1 hour",
		13: "13 hours",
		24: "1 day",
		49: "2 days 1 hour",
		60: "2 days 12 hours",
	}
	for in, want := range cases {
		if got := FormatElapsedHours(in); got != want {
			t.Errorf("FormatElapsedHours(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestOverdue_OldestFirst(t *testing.T) {
	now := t0.Add(48 * time.Hour)
	newer := checkedIn(t0.Add(20 * time.Hour))
	newer.ID = "newer"
	older := checkedIn(t0)
	older.ID = "older"
	recent := checkedIn(now.Add(-time.Hour))
	recent.ID = "recent"
	done := checkedOutAfter(t0, time.Hour)
	done.ID = "done"

	got := Overdue([]domain.VisitorRecord{newer, recent, older, done}, now)
	if len(got) != 2 {
		t.Fatalf("expected 2 overdue, got %d", len(got))
	}
	if got[0].ID != "older" || got[1].ID != "newer" {
		t.Errorf("expected [older newer], got [%s %s]", got[0].ID, got[1].ID)
	}
}

func TestClassify_Idempotent(t *testing.T) {
	v := checkedIn(t0)
	now := t0.Add(15 * time.Hour)
	if a, b := Classify(v, now), Classify(v, now); a != b {
		t.Errorf("classify not idempotent: %s vs %s", a, b)
	}
	if !reflect.DeepEqual(v, checkedIn(t0)) {
		t.Error("classify must not modify its input")
	}
}
