package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/Tiliavir/trivial-meal-tracker/internal/model"
)

const (
	// DateLayout formats journal date keys.
	DateLayout = "2006-01-02"
	// TimeLayout formats the time-of-day label stamped on logged meals.
	TimeLayout = "15:04"
)

// DateKey returns the journal key for the calendar day of t, e.g. "2026-02-27".
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDateKey parses a journal key in loc.
func ParseDateKey(key string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(key), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", key)
	}
	return t, nil
}

// TimeLabel returns the hour:minute label of t, e.g. "08:32".
func TimeLabel(t time.Time) string {
	return t.Format(TimeLayout)
}

// NormalizeTimeLabel turns user input such as "7:30" or " 07:30 " into the
// canonical "07:30". Empty input stays empty; anything unparsable is
// returned trimmed but otherwise untouched.
func NormalizeTimeLabel(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	for _, layout := range []string{"15:04", "3:04PM", "3:04 PM", "03:04 PM"} {
		if t, err := time.Parse(layout, strings.ToUpper(s)); err == nil {
			return t.Format(TimeLayout)
		}
	}
	return s
}

// Weekday returns the planned-calendar label of t's day.
func Weekday(t time.Time) model.Weekday {
	return model.Weekdays[mondayIndex(t)]
}

// mondayIndex maps Go's Sunday=0 numbering onto Monday=0 .. Sunday=6.
func mondayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// WeekRange returns the Monday and Sunday of the ISO week containing t.
func WeekRange(t time.Time) (time.Time, time.Time) {
	monday := StartOfDay(t).AddDate(0, 0, -mondayIndex(t))
	sunday := monday.AddDate(0, 0, 6)
	sunday = time.Date(sunday.Year(), sunday.Month(), sunday.Day(), 23, 59, 59, 0, t.Location())
	return monday, sunday
}

// WeekDays returns midnight of each day of t's week, Monday first.
func WeekDays(t time.Time) []time.Time {
	monday, _ := WeekRange(t)
	days := make([]time.Time, 7)
	for i := range days {
		days[i] = monday.AddDate(0, 0, i)
	}
	return days
}

// ISOWeekLabel returns a label like "2026-W09".
func ISOWeekLabel(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// StartOfDay returns 00:00:00 of the same day.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether two times fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
