package status

import (
	"reflect"
	"testing"
	"time"

	"github.com/visitorgate/visitor-admin/internal/core/domain"
)

var groupNow = time.Date(2025, 6, 12, 9, 0, 0, 0, time.UTC)

func visitorsAcrossDays() []domain.VisitorRecord {
	mk := func(id string, at time.Time, gender string, cat domain.VisitorCategory) domain.VisitorRecord {
		return domain.VisitorRecord{ID: id, TimeIn: at, Gender: gender, Category: cat}
	}
	return []domain.VisitorRecord{
		mk("a", time.Date(2025, 6, 10, 23, 30, 0, 0, time.UTC), "male", domain.CategoryFoot),
		mk("b", time.Date(2025, 6, 11, 1, 0, 0, 0, time.UTC), "FEMALE", domain.CategoryVehicle),
		mk("c", time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC), "", domain.CategoryFoot),
		mk("d", time.Date(2025, 6, 11, 12, 0, 0, 0, time.UTC), "Male", domain.CategoryVehicle),
	}
}

func ids(vs []domain.VisitorRecord) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.ID
	}
	return out
}

func TestGroupByCalendarDay_StableAndTotal(t *testing.T) {
	in := visitorsAcrossDays()
	groups := GroupByCalendarDay(in, groupNow, time.UTC)

	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].Key != "2025-06-10" || groups[1].Key != "2025-06-11" {
		t.Errorf("unexpected keys: %s, %s", groups[0].Key, groups[1].Key)
	}
	if got := ids(groups[0].Visitors); !reflect.DeepEqual(got, []string{"a", "c"}) {
		t.Errorf("group 0 order: %v", got)
	}
	if got := ids(groups[1].Visitors); !reflect.DeepEqual(got, []string{"b", "d"}) {
		t.Errorf("group 1 order: %v", got)
	}

	seen := map[string]int{}
	for _, g := range groups {
		for _, v := range g.Visitors {
			seen[v.ID]++
		}
	}
	for _, v := range in {
		if seen[v.ID] != 1 {
			t.Errorf("visitor %s appears %d times", v.ID, seen[v.ID])
		}
	}
	if len(seen) != len(in) {
		t.Errorf("expected %d visitors across groups, got %d", len(in), len(seen))
	}
}

func TestGroupByCalendarDay_Idempotent(t *testing.T) {
	in := visitorsAcrossDays()
	first := GroupByCalendarDay(in, groupNow, time.UTC)
	second := GroupByCalendarDay(in, groupNow, time.UTC)
	if !reflect.DeepEqual(first, second) {
		t.Error("grouping twice should give identical groups")
	}
}

func TestGroupByCalendarDay_UsesLocation(t *testing.T) {
	loc := time.FixedZone("EAT", 3*60*60)
	groups := GroupByCalendarDay(visitorsAcrossDays(), groupNow, loc)
	// 23:30 UTC on the 10th is 02:30 on the 11th at +03:00.
	if groups[0].Key != "2025-06-11" {
		t.Errorf("expected first key 2025-06-11, got %s", groups[0].Key)
	}
	if got := ids(groups[0].Visitors); !reflect.DeepEqual(got, []string{"a", "b", "d"}) {
		t.Errorf("unexpected members: %v", got)
	}
}

func TestDayKey_MissingCheckInIsToday(t *testing.T) {
	v := domain.VisitorRecord{ID: "z"}
	if got := DayKey(v, groupNow, time.UTC); got != "2025-06-12" {
		t.Fatalf("expected today's key, got %s", got)
	}

	groups := GroupByCalendarDay(append(visitorsAcrossDays(), v), groupNow, time.UTC)
	last := groups[len(groups)-1]
	if last.Key != "2025-06-12" || len(last.Visitors) != 1 || last.Visitors[0].ID != "z" {
		t.Fatalf("unexpected group %+v", last)
	}
}

func TestGroupBy(t *testing.T) {
	in := visitorsAcrossDays()

	gender := GroupBy(in, GroupGender)
	var keys []string
	for _, g := range gender {
		keys = append(keys, g.Key)
	}
	if !reflect.DeepEqual(keys, []string{"Male", "Female", "N/A"}) {
		t.Errorf("gender keys: %v", keys)
	}
	if got := ids(gender[0].Visitors); !reflect.DeepEqual(got, []string{"a", "d"}) {
		t.Errorf("male members: %v", got)
	}

	both := GroupBy(in, GroupGenderType)
	if both[0].Key != "Male - Foot" {
		t.Errorf("unexpected gender-type key %q", both[0].Key)
	}

	none := GroupBy(in, GroupNone)
	if len(none) != 1 || len(none[0].Visitors) != len(in) {
		t.Errorf("none should produce a single group with every visitor")
	}
}

func TestNormalizeGender(t *testing.T) {
	cases := map[string]string{
		"":       "N/A",
		"N/A":    "N/A",
		"na":     "N/A",
		"female": "Female",
		"MALE":   "Male",
	}
	for in, want := range cases {
		if got := NormalizeGender(in); got != want {
			t.Errorf("NormalizeGender(%q) = %q, want %q", in, got, want)
		}
	}
}
