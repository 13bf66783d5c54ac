package timeline

import (
	"errors"
	"fmt"

	"github.com/slok/fourd/internal/model"
)

// Chart is everything needed to draw the timeline of a schedule.
type Chart struct {
	Layout     Layout
	Geometry   Geometry
	Connectors []Connector
	// Critical is the set of task IDs on the critical path.
	Critical map[int]bool
	// Warnings are the non fatal problems found while building the chart.
	Warnings []string
}

// NewChart lays out the tasks, computes the critical path and routes the
// dependency connectors. A dependency cycle doesn't fail the chart, it is drawn
// without a critical path and reported as a warning.
func NewChart(tasks []model.Task, g Geometry, opts LayoutOptions) (Chart, error) {
	l, err := NewLayout(tasks, opts)
	if err != nil {
		return Chart{}, fmt.Errorf("could not compute layout: %w", err)
	}

	var warnings []string
	critical, err := CriticalPath(tasks)
	if err != nil {
		if !errors.Is(err, model.ErrCyclicDependency) {
			return Chart{}, fmt.Errorf("could not compute critical path: %w", err)
		}
		warnings = append(warnings, err.Error())
		critical = map[int]bool{}
	}

	return Chart{
		Layout:     l,
		Geometry:   g,
		Connectors: Connectors(l, g, critical),
		Critical:   critical,
		Warnings:   warnings,
	}, nil
}
