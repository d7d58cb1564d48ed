package status

import (
	"strings"
	"time"

	"github.com/visitorgate/visitor-admin/internal/core/domain"
)

// Stats are the dashboard counters for one snapshot of visitors.
type Stats struct {
	Total      int `json:"totalVisitors"`
	Today      int `json:"todayVisitors"`
	Active     int `json:"activeVisitors"`
	Overdue    int `json:"overdueVisitors"`
	Vehicle    int `json:"vehicleVisitors"`
	Foot       int `json:"footVisitors"`
	CheckedOut int `json:"checkedOutVisitors"`
}

// ComputeStats counts visitors as of now. Active counts every visitor that has
// not checked out, overdue ones included. Today uses the calendar day in loc.
func ComputeStats(visitors []domain.VisitorRecord, now time.Time, loc *time.Location) Stats {
	if loc == nil {
		loc = time.UTC
	}
	today := now.In(loc).Format(DayKeyLayout)

	var s Stats
	for _, v := range visitors {
		s.Total++
		if DayKey(v, now, loc) == today {
			s.Today++
		}
		switch Classify(v, now) {
		case domain.StatusCheckedOut:
			s.CheckedOut++
		case domain.StatusOverdue:
			s.Active++
			s.Overdue++
		default:
			s.Active++
		}
		switch v.Category {
		case domain.CategoryVehicle:
			s.Vehicle++
		case domain.CategoryFoot:
			s.Foot++
		}
	}
	return s
}

// SearchField limits which attributes Search matches against.
type SearchField string

const (
	SearchAll   SearchField = "all"
	SearchName  SearchField = "name"
	SearchPhone SearchField = "phone"
	SearchID    SearchField = "id"
	SearchTag   SearchField = "tag"
)

// Search returns the visitors whose selected field contains term, ignoring
// case. A blank term returns visitors unchanged.
func Search(visitors []domain.VisitorRecord, term string, field SearchField) []domain.VisitorRecord {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return visitors
	}
	contains := func(s string) bool {
		return strings.Contains(strings.ToLower(s), term)
	}

	out := make([]domain.VisitorRecord, 0)
	for _, v := range visitors {
		var hit bool
		switch field {
		case SearchName:
			hit = contains(v.VisitorName)
		case SearchPhone:
			hit = contains(v.PhoneNumber)
		case SearchID:
			hit = contains(v.IDNumber)
		case SearchTag:
			hit = contains(v.TagNumber)
		default:
			hit = contains(v.VisitorName) || contains(v.PhoneNumber) ||
				contains(v.IDNumber) || contains(v.TagNumber)
		}
		if hit {
			out = append(out, v)
		}
	}
	return out
}
