package printer

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/slok/fourd/internal/model"
)

// TimeAgo returns a human-readable relative time string from now in UTC.
// Examples: "5 seconds ago (UTC)", "2 minutes ago (UTC)", "3 days ago (UTC)".
func TimeAgo(t, now time.Time) string {
	if t.IsZero() {
		return "never"
	}

	diff := now.UTC().Sub(t.UTC())
	if diff < 0 {
		return "in the future (UTC)"
	}

	switch {
	case diff < time.Minute:
		return plural(int(diff.Seconds()), "second") + " ago (UTC)"
	case diff < time.Hour:
		return plural(int(diff.Minutes()), "minute") + " ago (UTC)"
	case diff < 24*time.Hour:
		return plural(int(diff.Hours()), "hour") + " ago (UTC)"
	default:
		return plural(int(diff.Hours()/24), "day") + " ago (UTC)"
	}
}

// FormatTimestamp returns a formatted timestamp string in UTC.
// Format: "2006-01-02 15:04:05 UTC".
func FormatTimestamp(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format("2006-01-02 15:04:05 UTC")
}

// FormatDays returns a duration in days, e.g: "1 day", "12 days".
func FormatDays(days int) string {
	return plural(days, "day")
}

// FormatPercent returns the percent complete or "-" when unknown.
func FormatPercent(p *int) string {
	if p == nil {
		return "-"
	}
	return strconv.Itoa(*p) + "%"
}

// FormatIDs returns a comma separated ID list or "-" when empty.
func FormatIDs[T ~int](ids []T) string {
	if len(ids) == 0 {
		return "-"
	}

	s := make([]string, 0, len(ids))
	for _, id := range ids {
		s = append(s, strconv.Itoa(int(id)))
	}
	return strings.Join(s, ",")
}

func taskType(t model.TaskType) string {
	if t == "" {
		return "-"
	}
	return string(t)
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
