package lib

import (
	"time"

	"github.com/slok/fourd/internal/importer"
	"github.com/slok/fourd/internal/model"
	"github.com/slok/fourd/internal/playback"
)

// TaskType represents the kind of construction work a task models.
type TaskType string

const (
	// TaskTypeBuild adds elements to the model.
	TaskTypeBuild TaskType = "Build"
	// TaskTypeDemolish removes elements from the model.
	TaskTypeDemolish TaskType = "Demolish"
	// TaskTypeTemporary elements exist only while the task is active (scaffolding, formwork...).
	TaskTypeTemporary TaskType = "Temporary"
)

// ElementID is an opaque handle to an element of the 3D model, the viewer database ID.
type ElementID int

// Task is a scheduled unit of work returned by the SDK.
//
// This is a snapshot of the stored task at the time of the API call, changing
// it doesn't change the schedule.
type Task struct {
	// ID is the task ID, unique on its schedule and never reused.
	ID int
	// ExternalID is the ID the task had on the imported schedule, if any.
	ExternalID string
	Name       string
	// Type is empty when the task doesn't have one.
	Type TaskType
	// Start and End are calendar days, both included.
	Start time.Time
	End   time.Time
	// Dependencies are the IDs of the tasks that must finish before this one starts.
	Dependencies []int
	// Elements are the model elements the task affects.
	Elements []ElementID
	// PercentComplete is nil when the progress is not tracked.
	PercentComplete *int
	// OriginalDuration is the task length in days.
	OriginalDuration int
	// RemainingDuration is the part of OriginalDuration not completed yet.
	RemainingDuration int
}

// Schedule is the stored task list of a model.
type Schedule struct {
	ModelID string
	Tasks   []Task
	// Revision changes on every stored change of the schedule.
	Revision  string
	UpdatedAt time.Time
}

// ScheduleSummary is the listing information of a schedule.
type ScheduleSummary struct {
	ModelID   string
	TaskCount int
	Revision  string
	UpdatedAt time.Time
}

// TaskOpts are the task fields used to create and update tasks.
//
// Nil fields are not provided: on create they take the default value, on
// update they keep the current one.
type TaskOpts struct {
	ExternalID      *string
	Name            *string
	Type            *TaskType
	Start           *time.Time
	End             *time.Time
	Dependencies    []int
	Elements        []ElementID
	PercentComplete *int
	// ClearPercent stops tracking the progress of the task on updates.
	ClearPercent bool
	// Selection, when set, takes the task elements from the current viewer
	// selection, replacing Elements.
	Selection Selection
}

// ListTasksOpts filters the listed tasks.
type ListTasksOpts struct {
	// ActiveOn keeps the tasks active on that day.
	ActiveOn *time.Time
	// Element keeps the tasks that affect the element.
	Element *ElementID
}

// ImportFormat is the format of an imported schedule.
type ImportFormat string

const (
	// ImportFormatCSV is a CSV export of a scheduling tool, one task per row.
	ImportFormatCSV ImportFormat = "csv"
	// ImportFormatJSON is a JSON task list.
	ImportFormatJSON ImportFormat = "json"
)

// ImportOpts configures a schedule import.
type ImportOpts struct {
	// Format of the source. Default: [ImportFormatCSV].
	Format ImportFormat
	// Replace makes the schedule match the source instead of merging into it.
	// Tasks are matched by source ID and keep their ID and elements, the ones
	// missing from the source are removed.
	Replace bool
	// Columns are extra accepted header names of the source columns, they take
	// priority over the default ones. The keys are the column names: id, name,
	// start, finish, type, predecessors, percent_complete and elements.
	Columns map[string][]string
}

// ImportRowError is a source row that could not be imported.
type ImportRowError struct {
	// Row is the 1-based data row of the source.
	Row  int
	Name string
	Err  error
}

// ImportResult is the result of an import.
type ImportResult struct {
	Schedule Schedule
	// Created are the tasks created by the import.
	Created []Task
	// Updated are the tasks matched by source ID on a replace.
	Updated []Task
	// Removed is the number of tasks dropped on a replace.
	Removed int
	// Skipped are the rows without name or dates.
	Skipped  int
	Errors   []ImportRowError
	Warnings []string
}

// CriticalPath is the longest dependency chain of a schedule.
type CriticalPath struct {
	// Tasks lying on the critical path, in schedule order.
	Tasks []Task
	// Days is the length of the longest chain.
	Days int
}

// PlayProgress is the state of a playback after a simulated day.
type PlayProgress struct {
	Date time.Time
	// Index is the 0-based position of Date on the schedule range.
	Index int
	Total int
	// Fraction is the completed part of the playback, from 0 to 1.
	Fraction float64
	// Active are the IDs of the tasks active on Date.
	Active   []int
	Elements []ElementID
}

// PlayResult is the result of a playback.
type PlayResult struct {
	// Days is the number of simulated days.
	Days int
	// Finished is true when the playback reached the last day of the schedule.
	Finished bool
}

func fromInternalTask(t model.Task) Task {
	out := Task{
		ID:                t.ID,
		ExternalID:        t.ExternalID,
		Name:              t.Name,
		Type:              TaskType(t.Type),
		Start:             t.Start,
		End:               t.End,
		Dependencies:      append([]int{}, t.Dependencies...),
		Elements:          fromInternalElements(t.Elements),
		OriginalDuration:  t.OriginalDuration,
		RemainingDuration: t.RemainingDuration,
	}

	if t.PercentComplete != nil {
		p := *t.PercentComplete
		out.PercentComplete = &p
	}

	return out
}

func fromInternalTaskList(ts []model.Task) []Task {
	result := make([]Task, len(ts))
	for i, t := range ts {
		result[i] = fromInternalTask(t)
	}
	return result
}

func fromInternalSchedule(s model.Schedule) Schedule {
	return Schedule{
		ModelID:   s.ModelID,
		Tasks:     fromInternalTaskList(s.Tasks),
		Revision:  s.Revision,
		UpdatedAt: s.UpdatedAt,
	}
}

func fromInternalScheduleSummary(s model.ScheduleSummary) ScheduleSummary {
	return ScheduleSummary{
		ModelID:   s.ModelID,
		TaskCount: s.TaskCount,
		Revision:  s.Revision,
		UpdatedAt: s.UpdatedAt,
	}
}

func fromInternalScheduleSummaryList(ss []model.ScheduleSummary) []ScheduleSummary {
	result := make([]ScheduleSummary, len(ss))
	for i, s := range ss {
		result[i] = fromInternalScheduleSummary(s)
	}
	return result
}

func fromInternalImportReport(s model.Schedule, r importer.Report) ImportResult {
	res := ImportResult{
		Schedule: fromInternalSchedule(s),
		Created:  fromInternalTaskList(r.Created),
		Updated:  fromInternalTaskList(r.Updated),
		Removed:  r.Removed,
		Skipped:  r.Skipped,
		Warnings: append([]string{}, r.Warnings...),
	}

	for _, e := range r.Errors {
		res.Errors = append(res.Errors, ImportRowError{Row: e.Row, Name: e.Name, Err: mapError(e.Err)})
	}

	return res
}

func fromInternalProgress(p playback.Progress) PlayProgress {
	active := make([]int, 0, len(p.Active))
	for _, t := range p.Active {
		active = append(active, t.ID)
	}

	return PlayProgress{
		Date:     p.Date,
		Index:    p.Index,
		Total:    p.Total,
		Fraction: p.Fraction,
		Active:   active,
		Elements: fromInternalElements(p.Elements),
	}
}

func fromInternalElements(es []model.ElementID) []ElementID {
	result := make([]ElementID, len(es))
	for i, e := range es {
		result[i] = ElementID(e)
	}
	return result
}

func toInternalElements(es []ElementID) []model.ElementID {
	if es == nil {
		return nil
	}

	result := make([]model.ElementID, len(es))
	for i, e := range es {
		result[i] = model.ElementID(e)
	}
	return result
}

func toInternalTaskFields(opts TaskOpts) model.TaskFields {
	f := model.TaskFields{
		ExternalID:      opts.ExternalID,
		Name:            opts.Name,
		Start:           opts.Start,
		End:             opts.End,
		Dependencies:    opts.Dependencies,
		Elements:        toInternalElements(opts.Elements),
		PercentComplete: opts.PercentComplete,
		ClearPercent:    opts.ClearPercent,
	}

	if opts.Type != nil {
		t := model.TaskType(*opts.Type)
		f.Type = &t
	}

	return f
}
