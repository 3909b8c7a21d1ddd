package report

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

type TimeFrame string

const (
	AllTime TimeFrame = "all"
	Today   TimeFrame = "today"
	Week    TimeFrame = "week"
	Month   TimeFrame = "month"
	Quarter TimeFrame = "quarter"
	Year    TimeFrame = "year"
)

// ParseTimeFrame accepts the known frames case-insensitively; empty means all.
func ParseTimeFrame(s string) (TimeFrame, bool) {
	switch tf := TimeFrame(strings.ToLower(strings.TrimSpace(s))); tf {
	case "":
		return AllTime, true
	case AllTime, Today, Week, Month, Quarter, Year:
		return tf, true
	}
	return "", false
}

// Cutoff is the earliest instant inside tf. ok is false when tf does not filter.
func (tf TimeFrame) Cutoff(now time.Time) (cutoff time.Time, ok bool) {
	switch tf {
	case Today:
		y, m, d := now.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, now.Location()), true
	case Week:
		return now.AddDate(0, 0, -7), true
	case Month:
		return now.AddDate(0, -1, 0), true
	case Quarter:
		return now.AddDate(0, -3, 0), true
	case Year:
		return now.AddDate(-1, 0, 0), true
	}
	return time.Time{}, false
}

// FilterByTimeFrame keeps records whose field is at or after the frame's
// cutoff. Records with a missing or unparseable timestamp are dropped.
func FilterByTimeFrame[T any](records []T, field Field[T], tf TimeFrame, now time.Time) []T {
	cutoff, ok := tf.Cutoff(now)
	if !ok {
		return append([]T(nil), records...)
	}
	out := make([]T, 0, len(records))
	for _, rec := range records {
		ts, ok := asTime(Resolve(rec, field), now.Location())
		if ok && !ts.Before(cutoff) {
			out = append(out, rec)
		}
	}
	return out
}

func asTime(v any, loc *time.Location) (time.Time, bool) {
	switch x := v.(type) {
	case time.Time:
		return x, !x.IsZero()
	case *time.Time:
		if x == nil {
			return time.Time{}, false
		}
		return *x, !x.IsZero()
	case string:
		if strings.TrimSpace(x) == "" {
			return time.Time{}, false
		}
		t, err := dateparse.ParseIn(x, loc)
		return t, err == nil
	}
	return time.Time{}, false
}
