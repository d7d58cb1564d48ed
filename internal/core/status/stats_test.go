package status

import (
	"testing"
	"time"

	"github.com/visitorgate/visitor-admin/internal/core/domain"
)

func TestComputeStats(t *testing.T) {
	now := time.Date(2025, 6, 11, 15, 0, 0, 0, time.UTC)
	active := domain.VisitorRecord{ID: "1", TimeIn: now.Add(-time.Hour), Category: domain.CategoryFoot}
	overdue := domain.VisitorRecord{ID: "2", TimeIn: now.Add(-30 * time.Hour), Category: domain.CategoryVehicle}
	out := now.Add(-2 * time.Hour)
	done := domain.VisitorRecord{ID: "3", TimeIn: now.Add(-3 * time.Hour), TimeOut: &out, CheckedOut: true, Category: domain.CategoryFoot}

	got := ComputeStats([]domain.VisitorRecord{active, overdue, done}, now, time.UTC)
	want := Stats{Total: 3, Today: 2, Active: 2, Overdue: 1, Vehicle: 1, Foot: 2, CheckedOut: 1}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestSearch(t *testing.T) {
	vs := []domain.VisitorRecord{
		{ID: "1", VisitorName: "Amina Njeri", PhoneNumber: "0712000111", IDNumber: "3344", TagNumber: "T-09"},
		{ID: "2", VisitorName: "Brian Otieno", PhoneNumber: "0722999000", IDNumber: "1200", TagNumber: "T-10"},
	}

	cases := []struct {
		term  string
		field SearchField
		want  []string
	}{
		{"amina", SearchAll, []string{"1"}},
		{"0722", SearchPhone, []string{"2"}},
		{"0722", SearchName, []string{}},
		{"12", SearchID, []string{"2"}},
		{"t-1", SearchTag, []string{"2"}},
		{"t-", SearchAll, []string{"1", "2"}},
		{"  ", SearchAll, []string{"1", "2"}},
	}
	for _, tc := range cases {
		got := ids(Search(vs, tc.term, tc.field))
		if len(got) != len(tc.want) {
			t.Errorf("Search(%q, %s) = %v, want %v", tc.term, tc.field, got, tc.want)
			continue
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Errorf("Search(%q, %s) = %v, want %v", tc.term, tc.field, got, tc.want)
				break
			}
		}
	}
}
