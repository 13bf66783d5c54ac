package printer

import (
	"encoding/json"
	"io"
	"time"

	"github.com/slok/fourd/internal/importer"
	"github.com/slok/fourd/internal/model"
	"github.com/slok/fourd/internal/timeline"
)

// JSONPrinter prints schedule information in JSON format.
type JSONPrinter struct {
	writer io.Writer
}

// NewJSONPrinter creates a new JSON printer.
func NewJSONPrinter(w io.Writer) *JSONPrinter {
	return &JSONPrinter{writer: w}
}

// taskOutput represents a task.
type taskOutput struct {
	ID                int               `json:"id"`
	ExternalID        string            `json:"external_id,omitempty"`
	Name              string            `json:"name"`
	Type              string            `json:"type,omitempty"`
	Start             string            `json:"start"`
	End               string            `json:"end"`
	OriginalDuration  int               `json:"original_duration"`
	RemainingDuration int               `json:"remaining_duration"`
	PercentComplete   *int              `json:"percent_complete"`
	Dependencies      []int             `json:"dependencies"`
	Elements          []model.ElementID `json:"elements"`
}

// scheduleSummaryOutput represents a stored schedule in the list output.
type scheduleSummaryOutput struct {
	ModelID   string    `json:"model_id"`
	TaskCount int       `json:"task_count"`
	Revision  string    `json:"revision"`
	UpdatedAt time.Time `json:"updated_at"`
}

// scheduleOutput represents a full schedule.
type scheduleOutput struct {
	ModelID    string       `json:"model_id"`
	Revision   string       `json:"revision"`
	UpdatedAt  time.Time    `json:"updated_at"`
	NextTaskID int          `json:"next_task_id"`
	Tasks      []taskOutput `json:"tasks"`
}

// rowErrorOutput represents a failed import row.
type rowErrorOutput struct {
	Row   int    `json:"row"`
	Name  string `json:"name"`
	Error string `json:"error"`
}

// importReportOutput represents the result of an import.
type importReportOutput struct {
	ModelID  string           `json:"model_id"`
	Revision string           `json:"revision"`
	Tasks    int              `json:"tasks"`
	Created  []taskOutput     `json:"created"`
	Updated  []taskOutput     `json:"updated"`
	Removed  int              `json:"removed"`
	Skipped  int              `json:"skipped"`
	Errors   []rowErrorOutput `json:"errors"`
	Warnings []string         `json:"warnings"`
}

// criticalPathOutput represents the critical path result.
type criticalPathOutput struct {
	Days  int          `json:"days"`
	Tasks []taskOutput `json:"tasks"`
}

// chartOutput represents a timeline chart.
type chartOutput struct {
	Start      string            `json:"start,omitempty"`
	End        string            `json:"end,omitempty"`
	Width      float64           `json:"width"`
	Height     float64           `json:"height"`
	Days       []dayOutput       `json:"days"`
	Today      *int              `json:"today"`
	Bars       []barOutput       `json:"bars"`
	Connectors []connectorOutput `json:"connectors"`
	Critical   []int             `json:"critical"`
	Warnings   []string          `json:"warnings"`
}

// dayOutput represents a chart day column.
type dayOutput struct {
	Date    string `json:"date"`
	Weekend bool   `json:"weekend"`
}

// barOutput represents a task bar of the chart.
type barOutput struct {
	TaskID     int     `json:"task_id"`
	Name       string  `json:"name"`
	Type       string  `json:"type,omitempty"`
	Row        int     `json:"row"`
	StartIndex int     `json:"start_index"`
	EndIndex   int     `json:"end_index"`
	Left       float64 `json:"left"`
	Width      float64 `json:"width"`
	Critical   bool    `json:"critical"`
}

// connectorOutput represents a dependency connector of the chart.
type connectorOutput struct {
	From     int          `json:"from"`
	To       int          `json:"to"`
	Critical bool         `json:"critical"`
	Points   [][2]float64 `json:"points"`
}

// messageOutput represents a simple message output.
type messageOutput struct {
	Message string `json:"message"`
}

func mapTaskToOutput(t model.Task) taskOutput {
	deps := t.Dependencies
	if deps == nil {
		deps = []int{}
	}
	elements := t.Elements
	if elements == nil {
		elements = []model.ElementID{}
	}

	return taskOutput{
		ID:                t.ID,
		ExternalID:        t.ExternalID,
		Name:              t.Name,
		Type:              string(t.Type),
		Start:             model.FormatDate(t.Start),
		End:               model.FormatDate(t.End),
		OriginalDuration:  t.OriginalDuration,
		RemainingDuration: t.RemainingDuration,
		PercentComplete:   t.PercentComplete,
		Dependencies:      deps,
		Elements:          elements,
	}
}

func mapTasksToOutput(tasks []model.Task) []taskOutput {
	items := make([]taskOutput, 0, len(tasks))
	for _, t := range tasks {
		items = append(items, mapTaskToOutput(t))
	}
	return items
}

// PrintTasks prints tasks in JSON format.
func (j *JSONPrinter) PrintTasks(tasks []model.Task) error {
	return j.encode(mapTasksToOutput(tasks))
}

// PrintTask prints a task in JSON format.
func (j *JSONPrinter) PrintTask(task model.Task) error {
	return j.encode(mapTaskToOutput(task))
}

// PrintSchedules prints stored schedules in JSON format.
func (j *JSONPrinter) PrintSchedules(schedules []model.ScheduleSummary) error {
	items := make([]scheduleSummaryOutput, 0, len(schedules))
	for _, s := range schedules {
		items = append(items, scheduleSummaryOutput{
			ModelID:   s.ModelID,
			TaskCount: s.TaskCount,
			Revision:  s.Revision,
			UpdatedAt: s.UpdatedAt.UTC(),
		})
	}

	return j.encode(items)
}

// PrintSchedule prints a full schedule in JSON format.
func (j *JSONPrinter) PrintSchedule(schedule model.Schedule) error {
	return j.encode(scheduleOutput{
		ModelID:    schedule.ModelID,
		Revision:   schedule.Revision,
		UpdatedAt:  schedule.UpdatedAt.UTC(),
		NextTaskID: schedule.NextTaskID,
		Tasks:      mapTasksToOutput(schedule.Tasks),
	})
}

// PrintImportReport prints the result of a schedule import in JSON format.
func (j *JSONPrinter) PrintImportReport(schedule model.ScheduleSummary, report importer.Report) error {
	errs := make([]rowErrorOutput, 0, len(report.Errors))
	for _, e := range report.Errors {
		errs = append(errs, rowErrorOutput{Row: e.Row, Name: e.Name, Error: e.Err.Error()})
	}
	warnings := report.Warnings
	if warnings == nil {
		warnings = []string{}
	}

	return j.encode(importReportOutput{
		ModelID:  schedule.ModelID,
		Revision: schedule.Revision,
		Tasks:    schedule.TaskCount,
		Created:  mapTasksToOutput(report.Created),
		Updated:  mapTasksToOutput(report.Updated),
		Removed:  report.Removed,
		Skipped:  report.Skipped,
		Errors:   errs,
		Warnings: warnings,
	})
}

// PrintCriticalPath prints the critical path in JSON format.
func (j *JSONPrinter) PrintCriticalPath(tasks []model.Task, days int) error {
	return j.encode(criticalPathOutput{
		Days:  days,
		Tasks: mapTasksToOutput(tasks),
	})
}

// PrintChart prints a timeline chart in JSON format.
func (j *JSONPrinter) PrintChart(chart timeline.Chart) error {
	l := chart.Layout
	output := chartOutput{
		Width:      chart.Geometry.Width,
		Height:     chart.Geometry.Height(l),
		Days:       make([]dayOutput, 0, len(l.Days)),
		Bars:       make([]barOutput, 0, len(l.Bars)),
		Connectors: make([]connectorOutput, 0, len(chart.Connectors)),
		Critical:   []int{},
		Warnings:   []string{},
	}

	if !l.Empty() {
		output.Start = model.FormatDate(l.Range.Min)
		output.End = model.FormatDate(l.Range.Max)
	}
	if l.Today != nil {
		i := l.Today.Index
		output.Today = &i
	}

	for _, d := range l.Days {
		output.Days = append(output.Days, dayOutput{Date: model.FormatDate(d.Date), Weekend: d.Weekend})
	}

	for _, b := range l.Bars {
		output.Bars = append(output.Bars, barOutput{
			TaskID:     b.TaskID,
			Name:       b.Name,
			Type:       string(b.Type),
			Row:        b.Row,
			StartIndex: b.StartIndex,
			EndIndex:   b.EndIndex,
			Left:       b.Left,
			Width:      b.Width,
			Critical:   chart.Critical[b.TaskID],
		})
		if chart.Critical[b.TaskID] {
			output.Critical = append(output.Critical, b.TaskID)
		}
	}

	for _, c := range chart.Connectors {
		points := make([][2]float64, 0, len(c.Points))
		for _, p := range c.Points {
			points = append(points, [2]float64{p.X, p.Y})
		}
		output.Connectors = append(output.Connectors, connectorOutput{
			From:     c.From,
			To:       c.To,
			Critical: c.Critical,
			Points:   points,
		})
	}

	output.Warnings = append(output.Warnings, chart.Warnings...)

	return j.encode(output)
}

// PrintMessage prints a simple message in JSON format.
func (j *JSONPrinter) PrintMessage(msg string) error {
	return j.encode(messageOutput{Message: msg})
}

func (j *JSONPrinter) encode(v any) error {
	enc := json.NewEncoder(j.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
