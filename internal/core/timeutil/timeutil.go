// Package timeutil normalises the timestamp shapes found in stored documents
// and client payloads into a single time.Time.
//
// Every other package works on time.Time only; representation handling lives
// here and nowhere else.
package timeutil

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Wrapper types that expose a zero-argument conversion method. The Mongo
// primitive.DateTime satisfies timer; protobuf timestamps satisfy asTimer.
type (
	timer   interface{ Time() time.Time }
	asTimer interface{ AsTime() time.Time }
	toDater interface{ ToDate() time.Time }
)

var layouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ToInstant converts value into an instant. It never fails: when value is
// absent or cannot be interpreted it returns now and ok=false, leaving it to
// the caller to report the anomaly.
//
// Numbers (and numeric strings) are epoch milliseconds.
func ToInstant(value any, now time.Time) (t time.Time, ok bool) {
	switch v := value.(type) {
	case nil:
		return now, false
	case time.Time:
		return orNow(v, now)
	case *time.Time:
		if v == nil {
			return now, false
		}
		return orNow(*v, now)
	case int:
		return fromMillis(float64(v), now)
	case int32:
		return fromMillis(float64(v), now)
	case int64:
		return fromMillis(float64(v), now)
	case uint64:
		return fromMillis(float64(v), now)
	case float32:
		return fromMillis(float64(v), now)
	case float64:
		return fromMillis(v, now)
	case string:
		return parseString(v, now)
	case timer:
		return orNow(v.Time(), now)
	case asTimer:
		return orNow(v.AsTime(), now)
	case toDater:
		return orNow(v.ToDate(), now)
	}
	return now, false
}

// Resolve substitutes now for a zero instant.
func Resolve(t, now time.Time) time.Time {
	if t.IsZero() {
		return now
	}
	return t
}

func orNow(t, now time.Time) (time.Time, bool) {
	if t.IsZero() {
		return now, false
	}
	return t, true
}

func fromMillis(ms float64, now time.Time) (time.Time, bool) {
	if math.IsNaN(ms) || ms >= math.MaxInt64 || ms <= math.MinInt64 {
		return now, false
	}
	return time.UnixMilli(int64(ms)).UTC(), true
}

func parseString(s string, now time.Time) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return now, false
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return fromMillis(f, now)
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return now, false
}
