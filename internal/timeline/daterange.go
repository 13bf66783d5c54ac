package timeline

import (
	"fmt"
	"time"

	"github.com/slok/fourd/internal/model"
)

// Range is the inclusive calendar day sequence spanning a set of tasks.
type Range struct {
	Min  time.Time
	Max  time.Time
	Days []time.Time
}

// ComputeRange returns the day range from the earliest task start to the latest
// task end. Tasks can't be empty.
func ComputeRange(tasks []model.Task) (Range, error) {
	if len(tasks) == 0 {
		return Range{}, fmt.Errorf("date range needs at least one task: %w", model.ErrPrecondition)
	}

	minDate := model.Day(tasks[0].Start)
	maxDate := model.Day(tasks[0].End)
	for _, t := range tasks[1:] {
		if s := model.Day(t.Start); s.Before(minDate) {
			minDate = s
		}
		if e := model.Day(t.End); e.After(maxDate) {
			maxDate = e
		}
	}

	n := model.DaysBetween(minDate, maxDate) + 1
	if n < 1 {
		// Every task ends before it starts, only a caller bug can get here.
		n = 1
		maxDate = minDate
	}

	days := make([]time.Time, 0, n)
	for i := range n {
		days = append(days, model.AddDays(minDate, i))
	}

	return Range{Min: minDate, Max: maxDate, Days: days}, nil
}

// Len returns the number of days in the range.
func (r Range) Len() int { return len(r.Days) }

// Contains returns true if the day is inside the range.
func (r Range) Contains(day time.Time) bool {
	d := model.Day(day)
	return len(r.Days) > 0 && !d.Before(r.Min) && !d.After(r.Max)
}

// Index returns the position of a day in the range. Days outside the range are
// clamped to the first or last position.
func (r Range) Index(day time.Time) int {
	if len(r.Days) == 0 {
		return 0
	}
	i := model.DaysBetween(r.Min, day)
	return min(max(i, 0), len(r.Days)-1)
}
