package printer_test

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"io"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/fourd/internal/importer"
	"github.com/slok/fourd/internal/model"
	"github.com/slok/fourd/internal/printer"
	"github.com/slok/fourd/internal/timeline"
)

func tasksFixture() []model.Task {
	pct := 50
	tasks := []model.Task{
		{
			ID:       1,
			Name:     "Excavation",
			Type:     model.TaskTypeBuild,
			Start:    model.NewDate(2024, 1, 1),
			End:      model.NewDate(2024, 1, 3),
			Elements: []model.ElementID{},
		},
		{
			ID:              2,
			ExternalID:      "A1020",
			Name:            "Slab & Walls",
			Type:            model.TaskTypeDemolish,
			Start:           model.NewDate(2024, 1, 4),
			End:             model.NewDate(2024, 1, 7),
			Dependencies:    []int{1},
			Elements:        []model.ElementID{11, 12},
			PercentComplete: &pct,
		},
	}
	for i := range tasks {
		tasks[i].Recompute()
	}
	return tasks
}

func chartFixture(t *testing.T) timeline.Chart {
	chart, err := timeline.NewChart(tasksFixture(), timeline.DefaultGeometry(), timeline.LayoutOptions{
		Today: model.NewDate(2024, 1, 2),
	})
	require.NoError(t, err)
	return chart
}

func TestTablePrinterPrintTasks(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewTablePrinter(&buf)

	err := p.PrintTasks(tasksFixture())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"ID", "NAME", "TYPE", "START", "END", "DAYS", "REMAINING", "%", "DEPS", "ELEMENTS"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"1", "Excavation", "Build", "2024-01-01", "2024-01-03", "3", "3", "-", "-", "-"}, strings.Fields(lines[1]))
	assert.Contains(t, lines[2], "Slab & Walls")
	assert.Equal(t, []string{"Demolish", "2024-01-04", "2024-01-07", "4", "2", "50%", "1", "11,12"}, strings.Fields(lines[2])[4:])
}

func TestTablePrinterPrintTasksEmpty(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewTablePrinter(&buf)

	err := p.PrintTasks(nil)
	require.NoError(t, err)
	assert.Empty(t, buf.String())
}

func TestTablePrinterPrintTask(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewTablePrinter(&buf)

	err := p.PrintTask(tasksFixture()[1])
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "External ID:  A1020")
	assert.Contains(t, out, "Duration:     4 days")
	assert.Contains(t, out, "Remaining:    2 days")
	assert.Contains(t, out, "Complete:     50%")
	assert.Contains(t, out, "Depends on:   1")
	assert.Contains(t, out, "Elements:     11,12")
}

func TestTablePrinterPrintSchedule(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewTablePrinter(&buf)

	err := p.PrintSchedule(model.Schedule{
		ModelID:   "urn:model-1",
		Tasks:     tasksFixture(),
		Revision:  "01HQ0000000000000000000000",
		UpdatedAt: time.Date(2024, 1, 2, 10, 30, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Model:      urn:model-1")
	assert.Contains(t, out, "Revision:   01HQ0000000000000000000000")
	assert.Contains(t, out, "Updated:    2024-01-02 10:30:00 UTC")
	assert.Contains(t, out, "Tasks:      2")
	assert.Contains(t, out, "Excavation")
}

func TestTablePrinterPrintSchedules(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewTablePrinter(&buf)

	err := p.PrintSchedules([]model.ScheduleSummary{
		{ModelID: "model-a", TaskCount: 3, Revision: "rev-a", UpdatedAt: time.Now().Add(-2 * time.Hour)},
		{ModelID: "model-b", TaskCount: 0, Revision: "rev-b", UpdatedAt: time.Now().Add(-3 * 24 * time.Hour)},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"MODEL", "TASKS", "REVISION", "UPDATED"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"model-a", "3", "rev-a", "2", "hours", "ago", "(UTC)"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"model-b", "0", "rev-b", "3", "days", "ago", "(UTC)"}, strings.Fields(lines[2]))
}

func TestTablePrinterPrintImportReport(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewTablePrinter(&buf)

	report := importer.Report{
		Created:  tasksFixture(),
		Skipped:  1,
		Errors:   []importer.RowError{{Row: 4, Name: "Roof", Err: fmt.Errorf("start: %w", model.ErrInvalidDate)}},
		Warnings: []string{"row 2: unknown predecessor 99"},
	}
	err := p.PrintImportReport(model.ScheduleSummary{ModelID: "m1", TaskCount: 5, Revision: "rev"}, report)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Imported:   2")
	assert.Contains(t, out, "Skipped:    1")
	assert.Contains(t, out, "Failed:     1")
	assert.Contains(t, out, "Tasks:      5")
	assert.Contains(t, out, "Error:      row 4 (Roof): start: invalid date")
	assert.Contains(t, out, "Warning:    row 2: unknown predecessor 99")
	assert.NotContains(t, out, "Updated:")
}

func TestTablePrinterPrintReplaceReport(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewTablePrinter(&buf)

	err := p.PrintImportReport(model.ScheduleSummary{ModelID: "m1", TaskCount: 2}, importer.Report{Updated: tasksFixture(), Removed: 3})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Imported:   0")
	assert.Contains(t, out, "Updated:    2")
	assert.Contains(t, out, "Removed:    3")
}

func TestTablePrinterPrintCriticalPath(t *testing.T) {
	tests := map[string]struct {
		tasks  []model.Task
		days   int
		expOut []string
	}{
		"A critical path should print the tasks and the total.": {
			tasks:  tasksFixture(),
			days:   7,
			expOut: []string{"Excavation", "Slab & Walls", "Critical path: 2 tasks, 7 days"},
		},
		"No tasks should print a message.": {
			expOut: []string{"No critical path"},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			p := printer.NewTablePrinter(&buf)

			err := p.PrintCriticalPath(test.tasks, test.days)
			require.NoError(t, err)
			for _, exp := range test.expOut {
				assert.Contains(t, buf.String(), exp)
			}
		})
	}
}

func TestTablePrinterPrintMessage(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewTablePrinter(&buf)

	err := p.PrintMessage("Task 3 deleted")
	require.NoError(t, err)
	assert.Equal(t, "Task 3 deleted\n", buf.String())
}

func TestJSONPrinterPrintTasks(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewJSONPrinter(&buf)

	err := p.PrintTasks(tasksFixture())
	require.NoError(t, err)

	var got []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)

	assert.Equal(t, "Excavation", got[0]["name"])
	assert.Equal(t, "2024-01-01", got[0]["start"])
	assert.Nil(t, got[0]["percent_complete"])
	assert.Equal(t, []any{}, got[0]["dependencies"])
	assert.NotContains(t, got[0], "external_id")

	assert.Equal(t, "A1020", got[1]["external_id"])
	assert.Equal(t, "Demolish", got[1]["type"])
	assert.Equal(t, float64(50), got[1]["percent_complete"])
	assert.Equal(t, float64(4), got[1]["original_duration"])
	assert.Equal(t, float64(2), got[1]["remaining_duration"])
	assert.Equal(t, []any{float64(11), float64(12)}, got[1]["elements"])
}

func TestJSONPrinterPrintImportReport(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewJSONPrinter(&buf)

	report := importer.Report{
		Skipped: 2,
		Errors:  []importer.RowError{{Row: 1, Name: "Roof", Err: errors.New("boom")}},
	}
	err := p.PrintImportReport(model.ScheduleSummary{ModelID: "m1", TaskCount: 0, Revision: "rev"}, report)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"model_id": "m1"`)
	assert.Contains(t, out, `"skipped": 2`)
	assert.Contains(t, out, `"created": []`)
	assert.Contains(t, out, `"updated": []`)
	assert.Contains(t, out, `"removed": 0`)
	assert.Contains(t, out, `"warnings": []`)
	assert.Contains(t, out, `"error": "boom"`)
}

func TestJSONPrinterPrintChart(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewJSONPrinter(&buf)

	err := p.PrintChart(chartFixture(t))
	require.NoError(t, err)

	var got struct {
		Start    string `json:"start"`
		End      string `json:"end"`
		Today    *int   `json:"today"`
		Critical []int  `json:"critical"`
		Days     []struct {
			Weekend bool `json:"weekend"`
		} `json:"days"`
		Connectors []struct {
			From     int          `json:"from"`
			To       int          `json:"to"`
			Critical bool         `json:"critical"`
			Points   [][2]float64 `json:"points"`
		} `json:"connectors"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))

	assert.Equal(t, "2024-01-01", got.Start)
	assert.Equal(t, "2024-01-07", got.End)
	require.NotNil(t, got.Today)
	assert.Equal(t, 1, *got.Today)
	assert.Equal(t, []int{1, 2}, got.Critical)
	require.Len(t, got.Days, 7)
	assert.True(t, got.Days[5].Weekend)
	require.Len(t, got.Connectors, 1)
	assert.Equal(t, 1, got.Connectors[0].From)
	assert.Equal(t, 2, got.Connectors[0].To)
	assert.True(t, got.Connectors[0].Critical)
	assert.Len(t, got.Connectors[0].Points, 4)
}

func TestJSONPrinterPrintMessage(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewJSONPrinter(&buf)

	err := p.PrintMessage("done")
	require.NoError(t, err)
	assert.JSONEq(t, `{"message": "done"}`, buf.String())
}

func TestGanttTextPrinterPrintChart(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewGanttTextPrinter(&buf)

	err := p.PrintChart(chartFixture(t))
	require.NoError(t, err)

	exp := "2024-01-01 .. 2024-01-07 (7 days)\n" +
		fmt.Sprintf("%-27s |1234567|\n", "") +
		fmt.Sprintf("*    1 %-20s |###  ..|\n", "Excavation") +
		fmt.Sprintf("*    2 %-20s | : xxxx|\n", "Slab & Walls") +
		"# build  x demolish  = temporary  * critical  . weekend  : today\n"
	assert.Equal(t, exp, buf.String())
}

func TestGanttTextPrinterPrintChartWarnings(t *testing.T) {
	tasks := []model.Task{
		{ID: 1, Name: "A very long task name that gets cut", Start: model.NewDate(2024, 1, 1), End: model.NewDate(2024, 1, 1), Dependencies: []int{2}},
		{ID: 2, Name: "B", Start: model.NewDate(2024, 1, 1), End: model.NewDate(2024, 1, 2), Dependencies: []int{1}},
	}
	chart, err := timeline.NewChart(tasks, timeline.DefaultGeometry(), timeline.LayoutOptions{})
	require.NoError(t, err)

	var buf bytes.Buffer
	p := printer.NewGanttTextPrinter(&buf)
	err = p.PrintChart(chart)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "     1 A very long task na~ |# |\n")
	assert.Contains(t, out, "     2 B")
	assert.Contains(t, out, "Warning: ")
	assert.NotContains(t, out, "*    ")
}

func TestGanttTextPrinterPrintEmptyChart(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewGanttTextPrinter(&buf)

	err := p.PrintChart(timeline.Chart{Geometry: timeline.DefaultGeometry()})
	require.NoError(t, err)
	assert.Equal(t, "No tasks\n", buf.String())
}

func TestSVGPrinterPrintChart(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewSVGPrinter(&buf)

	err := p.PrintChart(chartFixture(t))
	require.NoError(t, err)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.True(t, strings.HasSuffix(out, "</svg>\n"))
	assert.Contains(t, out, `<svg width="1000" height="76" viewBox="0 0 1000 76"`)
	assert.Equal(t, 2, strings.Count(out, `class="weekend"`))
	assert.Equal(t, 2, strings.Count(out, `class="bar"`))
	assert.Equal(t, 1, strings.Count(out, `class="progress"`))
	assert.Contains(t, out, `fill="#4a90d9"`)
	assert.Contains(t, out, `fill="#d9534f"`)
	assert.Contains(t, out, "<title>Slab &amp; Walls</title>")
	assert.NotContains(t, out, "Slab & Walls")
	assert.Contains(t, out, `class="connector critical" data-from="1" data-to="2"`)
	assert.Contains(t, out, `marker-end="url(#arrow-critical)"`)
	assert.Contains(t, out, `<line class="today"`)
}

func TestSVGPrinterEscapesTaskNames(t *testing.T) {
	task := model.Task{ID: 1, Name: "Pour \"A\" <level>\x0b", Start: model.NewDate(2024, 1, 1), End: model.NewDate(2024, 1, 2)}
	task.Recompute()
	chart, err := timeline.NewChart([]model.Task{task}, timeline.DefaultGeometry(), timeline.LayoutOptions{})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, printer.NewSVGPrinter(&buf).PrintChart(chart))

	out := buf.String()
	assert.NotContains(t, out, "\x0b")
	assert.Contains(t, out, "&lt;level&gt;")

	// The document should be well formed.
	dec := xml.NewDecoder(strings.NewReader(out))
	for {
		_, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
	}
}

func TestSVGPrinterPrintEmptyChart(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewSVGPrinter(&buf)

	err := p.PrintChart(timeline.Chart{Geometry: timeline.DefaultGeometry()})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "No tasks")
	assert.NotContains(t, out, `class="bar"`)
}
