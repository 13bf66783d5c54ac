package timeline

import (
	"time"

	"github.com/slok/fourd/internal/model"
)

// Day is a date column of the timeline.
type Day struct {
	Date    time.Time
	Weekend bool
	Today   bool
}

// Bar is the placement of a task on the timeline. Left and Width are fractions
// of the whole range width.
type Bar struct {
	TaskID          int
	Name            string
	Type            model.TaskType
	Row             int
	StartIndex      int
	EndIndex        int
	Left            float64
	Width           float64
	PercentComplete *int
	Dependencies    []int
}

// TodayMarker is the position of the current day on the timeline.
type TodayMarker struct {
	Index int
	Left  float64
}

// Layout is the Gantt layout of a set of tasks.
type Layout struct {
	Range Range
	Days  []Day
	Bars  []Bar
	Today *TodayMarker
}

// Empty returns true when the layout has nothing to show.
func (l Layout) Empty() bool { return len(l.Bars) == 0 }

// LayoutOptions are the options of the layout computation.
type LayoutOptions struct {
	// Today is the current date, the today marker is omitted when it's zero or
	// outside the range.
	Today time.Time
}

// NewLayout places each task on the day range of all the tasks. Rows follow the
// task order, they are never sorted by date. No tasks return an empty layout.
func NewLayout(tasks []model.Task, opts LayoutOptions) (Layout, error) {
	if len(tasks) == 0 {
		return Layout{}, nil
	}

	r, err := ComputeRange(tasks)
	if err != nil {
		return Layout{}, err
	}
	n := float64(r.Len())

	var today *TodayMarker
	if !opts.Today.IsZero() && r.Contains(opts.Today) {
		i := r.Index(opts.Today)
		today = &TodayMarker{Index: i, Left: float64(i) / n}
	}

	days := make([]Day, 0, r.Len())
	for i, d := range r.Days {
		wd := d.Weekday()
		days = append(days, Day{
			Date:    d,
			Weekend: wd == time.Saturday || wd == time.Sunday,
			Today:   today != nil && today.Index == i,
		})
	}

	bars := make([]Bar, 0, len(tasks))
	for row, t := range tasks {
		s := r.Index(t.Start)
		e := r.Index(t.End)
		if e < s {
			e = s
		}

		var pct *int
		if t.PercentComplete != nil {
			p := *t.PercentComplete
			pct = &p
		}

		bars = append(bars, Bar{
			TaskID:          t.ID,
			Name:            t.Name,
			Type:            t.Type,
			Row:             row,
			StartIndex:      s,
			EndIndex:        e,
			Left:            float64(s) / n,
			Width:           float64(e-s+1) / n,
			PercentComplete: pct,
			Dependencies:    append([]int(nil), t.Dependencies...),
		})
	}

	return Layout{
		Range: r,
		Days:  days,
		Bars:  bars,
		Today: today,
	}, nil
}
