package status

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/visitorgate/visitor-admin/internal/core/domain"
	"github.com/visitorgate/visitor-admin/internal/core/timeutil"
)

// DayKeyLayout renders calendar days independently of locale.
const DayKeyLayout = "2006-01-02"

// Group is one bucket of visitors sharing a key. Members keep input order.
type Group struct {
	Key      string
	Visitors []domain.VisitorRecord
}

// GroupKey selects the attribute used by GroupBy.
type GroupKey string

const (
	GroupNone       GroupKey = "none"
	GroupGender     GroupKey = "gender"
	GroupType       GroupKey = "type"
	GroupGenderType GroupKey = "gender-type"
)

// DayKey is the check-in calendar day of v in loc. A missing check-in counts
// as now, as in Classify. A nil loc means UTC.
func DayKey(v domain.VisitorRecord, now time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return timeutil.Resolve(v.TimeIn, now).In(loc).Format(DayKeyLayout)
}

// GroupByCalendarDay partitions visitors by check-in day. Groups are ordered
// by first appearance and every visitor lands in exactly one group.
func GroupByCalendarDay(visitors []domain.VisitorRecord, now time.Time, loc *time.Location) []Group {
	return partition(visitors, func(v domain.VisitorRecord) string {
		return DayKey(v, now, loc)
	})
}

// GroupBy partitions visitors by gender, category or both. GroupNone (or an
// unknown key) yields a single group holding every visitor.
func GroupBy(visitors []domain.VisitorRecord, key GroupKey) []Group {
	var keyFn func(domain.VisitorRecord) string
	switch key {
	case GroupGender:
		keyFn = func(v domain.VisitorRecord) string { return NormalizeGender(v.Gender) }
	case GroupType:
		keyFn = func(v domain.VisitorRecord) string { return titleCase(string(v.Category)) }
	case GroupGenderType:
		keyFn = func(v domain.VisitorRecord) string {
			return NormalizeGender(v.Gender) + " - " + titleCase(string(v.Category))
		}
	default:
		keyFn = func(domain.VisitorRecord) string { return "All" }
	}
	return partition(visitors, keyFn)
}

func partition(visitors []domain.VisitorRecord, keyFn func(domain.VisitorRecord) string) []Group {
	groups := make([]Group, 0)
	index := make(map[string]int)
	for _, v := range visitors {
		k := keyFn(v)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, Group{Key: k})
		}
		groups[i].Visitors = append(groups[i].Visitors, v)
	}
	return groups
}

// NormalizeGender maps blank and "N/A" variants to "N/A" and title-cases the
// rest ("male" -> "Male").
func NormalizeGender(g string) string {
	g = strings.TrimSpace(g)
	if g == "" || strings.EqualFold(g, "n/a") || strings.EqualFold(g, "na") {
		return "N/A"
	}
	return titleCase(g)
}

func titleCase(s string) string {
	if s == "" {
		return "-"
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
