package model

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"
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

// Known returns true if the type is one of the recognized task types.
func (t TaskType) Known() bool {
	switch t {
	case TaskTypeBuild, TaskTypeDemolish, TaskTypeTemporary:
		return true
	}
	return false
}

// ElementID is an opaque handle to an element of the external 3D model.
type ElementID int

// Task is a scheduled unit of work with a date range, its dependencies and the
// model elements it affects.
type Task struct {
	ID           int
	ExternalID   string
	Name         string
	Type         TaskType
	Start        time.Time
	End          time.Time
	Dependencies []int
	Elements     []ElementID

	// PercentComplete is optional, nil means not tracked.
	PercentComplete *int

	// Derived fields, recomputed on every change.
	OriginalDuration  int
	RemainingDuration int
}

// Validate validates the task.
func (t Task) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("name is required: %w", ErrNotValid)
	}
	if t.Start.IsZero() {
		return fmt.Errorf("start is required: %w", ErrNotValid)
	}
	if t.End.IsZero() {
		return fmt.Errorf("end is required: %w", ErrNotValid)
	}
	if Day(t.End).Before(Day(t.Start)) {
		return fmt.Errorf("end %s is before start %s: %w", FormatDate(t.End), FormatDate(t.Start), ErrNotValid)
	}
	if t.PercentComplete != nil && (*t.PercentComplete < 0 || *t.PercentComplete > 100) {
		return fmt.Errorf("percent complete must be between 0 and 100, got %d: %w", *t.PercentComplete, ErrNotValid)
	}
	for _, dep := range t.Dependencies {
		if dep <= 0 {
			return fmt.Errorf("dependency id must be positive, got %d: %w", dep, ErrNotValid)
		}
	}
	return nil
}

// Recompute normalizes the dates to calendar days and updates the derived durations.
func (t *Task) Recompute() {
	t.Start = Day(t.Start)
	t.End = Day(t.End)
	t.OriginalDuration = DaysBetween(t.Start, t.End) + 1

	t.RemainingDuration = t.OriginalDuration
	if t.PercentComplete != nil {
		remaining := float64(t.OriginalDuration) * (1 - float64(*t.PercentComplete)/100)
		t.RemainingDuration = int(math.Ceil(remaining))
	}
}

// ActiveOn returns true if the day falls inside the task inclusive date range.
func (t Task) ActiveOn(day time.Time) bool {
	d := Day(day)
	return !d.Before(Day(t.Start)) && !d.After(Day(t.End))
}

// Clone returns a deep copy of the task.
func (t Task) Clone() Task {
	c := t
	c.Dependencies = slices.Clone(t.Dependencies)
	c.Elements = slices.Clone(t.Elements)
	if t.PercentComplete != nil {
		p := *t.PercentComplete
		c.PercentComplete = &p
	}
	return c
}

// TaskFields are the task fields used on create and update operations. Nil
// fields are not provided and on updates keep the previous value.
type TaskFields struct {
	ExternalID      *string
	Name            *string
	Type            *TaskType
	Start           *time.Time
	End             *time.Time
	Dependencies    []int
	Elements        []ElementID
	PercentComplete *int

	// ClearPercent removes the percent complete tracking on updates.
	ClearPercent bool
}

// Apply merges the provided fields into a copy of the task.
func (f TaskFields) Apply(t Task) Task {
	t = t.Clone()
	if f.ExternalID != nil {
		t.ExternalID = *f.ExternalID
	}
	if f.Name != nil {
		t.Name = strings.TrimSpace(*f.Name)
	}
	if f.Type != nil {
		t.Type = *f.Type
	}
	if f.Start != nil {
		t.Start = Day(*f.Start)
	}
	if f.End != nil {
		t.End = Day(*f.End)
	}
	if f.Dependencies != nil {
		t.Dependencies = slices.Clone(f.Dependencies)
	}
	if f.Elements != nil {
		t.Elements = slices.Clone(f.Elements)
	}
	if f.PercentComplete != nil {
		p := *f.PercentComplete
		t.PercentComplete = &p
	}
	if f.ClearPercent {
		t.PercentComplete = nil
	}
	return t
}

// Task field keys used by ParseTaskFields.
const (
	FieldExternalID      = "external-id"
	FieldName            = "name"
	FieldType            = "type"
	FieldStart           = "start"
	FieldEnd             = "end"
	FieldDependencies    = "dependencies"
	FieldElements        = "elements"
	FieldPercentComplete = "percent-complete"
)

// ParseTaskFields coerces raw string values into task fields. Keys not present
// in the map are not provided. Values that can't be coerced are rejected.
func ParseTaskFields(raw map[string]string) (TaskFields, error) {
	var f TaskFields

	if v, ok := raw[FieldExternalID]; ok {
		v = strings.TrimSpace(v)
		f.ExternalID = &v
	}
	if v, ok := raw[FieldName]; ok {
		f.Name = &v
	}
	if v, ok := raw[FieldType]; ok {
		tt := TaskType(strings.TrimSpace(v))
		f.Type = &tt
	}
	if v, ok := raw[FieldStart]; ok {
		d, err := ParseDate(v)
		if err != nil {
			return TaskFields{}, fmt.Errorf("start: %w", err)
		}
		f.Start = &d
	}
	if v, ok := raw[FieldEnd]; ok {
		d, err := ParseDate(v)
		if err != nil {
			return TaskFields{}, fmt.Errorf("end: %w", err)
		}
		f.End = &d
	}
	if v, ok := raw[FieldDependencies]; ok {
		ids, err := ParseIDList(v)
		if err != nil {
			return TaskFields{}, fmt.Errorf("dependencies: %w", err)
		}
		f.Dependencies = ids
	}
	if v, ok := raw[FieldElements]; ok {
		ids, err := ParseIDList(v)
		if err != nil {
			return TaskFields{}, fmt.Errorf("elements: %w", err)
		}
		f.Elements = make([]ElementID, 0, len(ids))
		for _, id := range ids {
			f.Elements = append(f.Elements, ElementID(id))
		}
	}
	if v, ok := raw[FieldPercentComplete]; ok {
		if strings.TrimSpace(v) == "" {
			f.ClearPercent = true
		} else {
			p, err := ParsePercent(v)
			if err != nil {
				return TaskFields{}, fmt.Errorf("percent complete: %w", err)
			}
			f.PercentComplete = &p
		}
	}

	return f, nil
}

// ParsePercent parses an integer percentage, accepting a trailing "%".
// Decimal values are rounded.
func ParsePercent(s string) (int, error) {
	v := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	if n, err := strconv.Atoi(v); err == nil {
		return n, nil
	}
	fl, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number: %w", s, ErrNotValid)
	}
	return int(math.Round(fl)), nil
}

// ParseIDList parses a comma, semicolon or space separated list of integer ids.
// An empty string returns an empty (not nil) list.
func ParseIDList(s string) ([]int, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';' || r == ' ' || r == '\t'
	})

	ids := make([]int, 0, len(fields))
	for _, field := range fields {
		id, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("%q is not a valid id: %w", field, ErrNotValid)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
