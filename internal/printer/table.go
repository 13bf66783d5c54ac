package printer

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/slok/fourd/internal/importer"
	"github.com/slok/fourd/internal/model"
)

// TablePrinter prints schedule information in a table format.
type TablePrinter struct {
	writer  io.Writer
	timeNow func() time.Time
}

// NewTablePrinter creates a new table printer.
func NewTablePrinter(w io.Writer) *TablePrinter {
	return &TablePrinter{writer: w, timeNow: time.Now}
}

// PrintTasks prints tasks in a table format.
func (t *TablePrinter) PrintTasks(tasks []model.Task) error {
	if len(tasks) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	// Print header.
	fmt.Fprintln(tw, "ID\tNAME\tTYPE\tSTART\tEND\tDAYS\tREMAINING\t%\tDEPS\tELEMENTS")

	// Print rows.
	for _, task := range tasks {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%d\t%d\t%s\t%s\t%s\n",
			task.ID,
			task.Name,
			taskType(task.Type),
			model.FormatDate(task.Start),
			model.FormatDate(task.End),
			task.OriginalDuration,
			task.RemainingDuration,
			FormatPercent(task.PercentComplete),
			FormatIDs(task.Dependencies),
			FormatIDs(task.Elements),
		)
	}

	return nil
}

// PrintTask prints the details of a task.
func (t *TablePrinter) PrintTask(task model.Task) error {
	fmt.Fprintf(t.writer, "ID:           %d\n", task.ID)
	if task.ExternalID != "" {
		fmt.Fprintf(t.writer, "External ID:  %s\n", task.ExternalID)
	}
	fmt.Fprintf(t.writer, "Name:         %s\n", task.Name)
	fmt.Fprintf(t.writer, "Type:         %s\n", taskType(task.Type))
	fmt.Fprintf(t.writer, "Start:        %s\n", model.FormatDate(task.Start))
	fmt.Fprintf(t.writer, "End:          %s\n", model.FormatDate(task.End))
	fmt.Fprintf(t.writer, "Duration:     %s\n", FormatDays(task.OriginalDuration))
	fmt.Fprintf(t.writer, "Remaining:    %s\n", FormatDays(task.RemainingDuration))
	fmt.Fprintf(t.writer, "Complete:     %s\n", FormatPercent(task.PercentComplete))
	fmt.Fprintf(t.writer, "Depends on:   %s\n", FormatIDs(task.Dependencies))
	fmt.Fprintf(t.writer, "Elements:     %s\n", FormatIDs(task.Elements))

	return nil
}

// PrintSchedules prints stored schedules in a table format.
func (t *TablePrinter) PrintSchedules(schedules []model.ScheduleSummary) error {
	if len(schedules) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	// Print header.
	fmt.Fprintln(tw, "MODEL\tTASKS\tREVISION\tUPDATED")

	// Print rows.
	now := t.timeNow()
	for _, s := range schedules {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", s.ModelID, s.TaskCount, s.Revision, TimeAgo(s.UpdatedAt, now))
	}

	return nil
}

// PrintSchedule prints a schedule summary followed by its tasks.
func (t *TablePrinter) PrintSchedule(schedule model.Schedule) error {
	fmt.Fprintf(t.writer, "Model:      %s\n", schedule.ModelID)
	fmt.Fprintf(t.writer, "Revision:   %s\n", schedule.Revision)
	fmt.Fprintf(t.writer, "Updated:    %s\n", FormatTimestamp(schedule.UpdatedAt))
	fmt.Fprintf(t.writer, "Tasks:      %d\n", len(schedule.Tasks))

	if len(schedule.Tasks) == 0 {
		return nil
	}

	fmt.Fprintln(t.writer)
	return t.PrintTasks(schedule.Tasks)
}

// PrintImportReport prints the result of a schedule import.
func (t *TablePrinter) PrintImportReport(schedule model.ScheduleSummary, report importer.Report) error {
	fmt.Fprintf(t.writer, "Model:      %s\n", schedule.ModelID)
	fmt.Fprintf(t.writer, "Revision:   %s\n", schedule.Revision)
	fmt.Fprintf(t.writer, "Imported:   %d\n", len(report.Created))
	if len(report.Updated) > 0 || report.Removed > 0 {
		fmt.Fprintf(t.writer, "Updated:    %d\n", len(report.Updated))
		fmt.Fprintf(t.writer, "Removed:    %d\n", report.Removed)
	}
	fmt.Fprintf(t.writer, "Skipped:    %d\n", report.Skipped)
	fmt.Fprintf(t.writer, "Failed:     %d\n", len(report.Errors))
	fmt.Fprintf(t.writer, "Tasks:      %d\n", schedule.TaskCount)

	for _, e := range report.Errors {
		fmt.Fprintf(t.writer, "Error:      %s\n", e.Error())
	}
	for _, w := range report.Warnings {
		fmt.Fprintf(t.writer, "Warning:    %s\n", w)
	}

	return nil
}

// PrintCriticalPath prints the critical tasks and the total duration.
func (t *TablePrinter) PrintCriticalPath(tasks []model.Task, days int) error {
	if len(tasks) == 0 {
		fmt.Fprintln(t.writer, "No critical path")
		return nil
	}

	if err := t.PrintTasks(tasks); err != nil {
		return err
	}
	fmt.Fprintf(t.writer, "\nCritical path: %d tasks, %s\n", len(tasks), FormatDays(days))

	return nil
}

// PrintMessage prints a simple text message.
func (t *TablePrinter) PrintMessage(msg string) error {
	fmt.Fprintln(t.writer, msg)
	return nil
}
