package core

import (
	"fmt"
	"strings"
	"time"

	"github.com/huangsam/weektrack/schema"
)

// WeekdayIndex returns 0 for Monday through 6 for Sunday.
func WeekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// startOfDay truncates t to midnight in its own location.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// LastMonday returns the Monday of the week containing now, at midnight.
// Calendar arithmetic keeps the result on a Monday across DST changes.
func LastMonday(now time.Time) time.Time {
	return startOfDay(now).AddDate(0, 0, -WeekdayIndex(now))
}

// NextMonday returns the Monday that begins the week after now, at midnight.
func NextMonday(now time.Time) time.Time {
	return startOfDay(now).AddDate(0, 0, 7-WeekdayIndex(now))
}

// FormatAnchor formats an anchor date as a week folder name.
func FormatAnchor(t time.Time) string {
	return t.Format(schema.AnchorLayout)
}

// ResolveAnchor turns a week setting into a Monday. The setting is "last",
// "next" or a YYYY-MM-DD date, which is snapped to the Monday of its week.
func ResolveAnchor(spec string, now time.Time) (time.Time, error) {
	switch strings.ToLower(strings.TrimSpace(spec)) {
	case "", schema.LastWeekAnchor:
		return LastMonday(now), nil
	case schema.NextWeekAnchor:
		return NextMonday(now), nil
	}
	day, err := time.ParseInLocation(schema.AnchorLayout, strings.TrimSpace(spec), now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid week anchor %q: %w", spec, err)
	}
	return LastMonday(day), nil
}

// GetAnchors reports the last and next Monday around now.
func GetAnchors(now time.Time) schema.Anchors {
	return schema.Anchors{
		Now:        now,
		LastMonday: FormatAnchor(LastMonday(now)),
		NextMonday: FormatAnchor(NextMonday(now)),
	}
}
