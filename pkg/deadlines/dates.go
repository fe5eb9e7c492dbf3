package deadlines

import (
	"strings"
	"time"
)

// datePatterns is the fixed, ordered list of layouts tried after RFC 3339.
//
// Slash-separated dates are parsed day-first (02/01/2006). This is a policy,
// not detection: "03/04/2025" is always April 3rd here.
var datePatterns = []string{
	"2006-01-02",
	"January 2",
	"2 January",
	"2 Jan",
	"Jan 2",
	"02/01/2006",
	"02/01/06",
}

// NormalizeDate converts a loosely-formatted date string into an absolute
// timestamp at midnight UTC. The second return value is false when no pattern
// matches; callers skip such items instead of failing their batch.
//
// Layouts without a year (e.g. "Jan 5") parse with Go's zero year. Those take
// the year of now, rolling forward to next year when the resulting date falls
// before the start of now's day — "Jan 5" said in December means next January.
func NormalizeDate(raw string, now time.Time) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), true
	}

	for _, layout := range datePatterns {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}

		if t.Year() == 0 {
			t = time.Date(now.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
			if t.Before(today) {
				t = t.AddDate(1, 0, 0)
			}
			return t, true
		}

		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
	}

	return time.Time{}, false
}
