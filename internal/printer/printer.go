package printer

import (
	"github.com/slok/fourd/internal/importer"
	"github.com/slok/fourd/internal/model"
	"github.com/slok/fourd/internal/timeline"
)

// Printer knows how to print schedule information in different formats.
type Printer interface {
	PrintTasks(tasks []model.Task) error
	PrintTask(task model.Task) error
	PrintSchedules(schedules []model.ScheduleSummary) error
	PrintSchedule(schedule model.Schedule) error
	PrintImportReport(schedule model.ScheduleSummary, report importer.Report) error
	PrintCriticalPath(tasks []model.Task, days int) error
	PrintMessage(msg string) error
}

// ChartPrinter knows how to draw a schedule timeline chart.
type ChartPrinter interface {
	PrintChart(chart timeline.Chart) error
}
