package model

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// DateLayout is the canonical calendar day layout used on persisted records.
const DateLayout = "2006-01-02"

var dateLayouts = []string{
	DateLayout,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"1/2/2006",
	"1/2/2006 15:04",
	"1/2/2006 3:04 PM",
	"1/2/2006 3:04:05 PM",
	"1/2/06",
	"1/2/06 15:04",
	"1/2/06 3:04 PM",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
	"02-Jan-2006",
	"2-Jan-06",
}

// Day truncates a time to its calendar day, at UTC midnight.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NewDate returns the calendar day for the received year, month and day.
func NewDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// AddDays moves a calendar day n days.
func AddDays(t time.Time, n int) time.Time {
	return Day(t).AddDate(0, 0, n)
}

// DaysBetween returns the number of calendar days from one day to another.
// Counted on unix seconds, time.Duration overflows after ~292 years.
func DaysBetween(from, to time.Time) int {
	return int((Day(to).Unix() - Day(from).Unix()) / secondsPerDay)
}

const secondsPerDay = 24 * 60 * 60

// FormatDate formats a calendar day using the ISO layout.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a calendar day in any of the layouts usually found on
// scheduling tool exports (ISO, US numeric, MS Project "Mon 1/2/06 8:00 AM" and
// written month names). The time of day is discarded.
func ParseDate(s string) (time.Time, error) {
	v := strings.TrimSpace(s)
	if v == "" {
		return time.Time{}, fmt.Errorf("empty date: %w", ErrInvalidDate)
	}
	v = stripWeekday(v)

	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, v)
		if err == nil {
			return Day(t), nil
		}
	}

	return time.Time{}, fmt.Errorf("%q: %w", s, ErrInvalidDate)
}

// stripWeekday removes a leading weekday token like "Mon " or "Tue, ".
func stripWeekday(v string) string {
	token, rest, ok := strings.Cut(v, " ")
	if !ok {
		return v
	}
	token = strings.TrimSuffix(token, ",")
	if len(token) < 3 {
		return v
	}
	for _, r := range token {
		if !unicode.IsLetter(r) {
			return v
		}
	}
	rest = strings.TrimSpace(rest)
	if rest == "" || !unicode.IsDigit(rune(rest[0])) {
		return v
	}
	if _, ok := weekdays[strings.ToLower(token[:3])]; !ok {
		return v
	}

	return rest
}

var weekdays = map[string]struct{}{
	"mon": {}, "tue": {}, "wed": {}, "thu": {}, "fri": {}, "sat": {}, "sun": {},
}
