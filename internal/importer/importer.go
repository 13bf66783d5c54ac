package importer

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/slok/fourd/internal/log"
	"github.com/slok/fourd/internal/model"
)

// TaskStore is the task store the importer merges the rows into.
type TaskStore interface {
	Create(fields model.TaskFields) (model.Task, error)
	Update(id int, fields model.TaskFields) (model.Task, error)
	Delete(id int) error
	List() []model.Task
}

// RowError is the failure of a single row, the rest of the rows are imported anyway.
type RowError struct {
	// Row is the 1 based position of the row on the source, without the header.
	Row  int
	Name string
	Err  error
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d (%s): %s", e.Row, e.Name, e.Err)
}

func (e RowError) Unwrap() error { return e.Err }

// Report is the result of an import.
type Report struct {
	Created []model.Task
	// Updated are the tasks matched by source ID on a replace.
	Updated []model.Task
	// Removed is the number of tasks dropped on a replace, not present on the rows.
	Removed  int
	Skipped  int
	Errors   []RowError
	Warnings []string
}

// ImporterConfig is the configuration for the schedule importer.
type ImporterConfig struct {
	// Columns are extra header names, they take priority over the default ones.
	Columns map[string][]string
	Logger  log.Logger
}

func (c *ImporterConfig) defaults() error {
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "importer.Importer"})

	for k := range c.Columns {
		if _, ok := DefaultColumns()[k]; !ok {
			return fmt.Errorf("unknown column %q", k)
		}
	}

	return nil
}

// Importer converts tabular schedule rows into tasks.
type Importer struct {
	columns Columns
	logger  log.Logger
}

// NewImporter returns a new importer.
func NewImporter(cfg ImporterConfig) (*Importer, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Importer{
		columns: DefaultColumns().Merge(cfg.Columns),
		logger:  cfg.Logger,
	}, nil
}

type pendingDeps struct {
	taskID int
	row    int
	raw    string
}

// Import creates a task on the store for every valid row, with a fresh ID.
//
// Rows without name, start or finish are skipped. Rows with invalid values are
// reported and skipped, they don't abort the import. Once all rows are created,
// predecessors are resolved by the source ID (or name) of the tasks.
func (i *Importer) Import(ctx context.Context, store TaskStore, rows []Row) (*Report, error) {
	return i.importRows(ctx, store, rows, false)
}

// Replace makes the store tasks match the rows. A row whose source ID matches a
// stored task updates it in place, keeping its ID and, unless the row sets them,
// its elements and progress. The rest of the rows are created and the stored
// tasks missing from the rows are deleted. A failed row keeps its matched task.
func (i *Importer) Replace(ctx context.Context, store TaskStore, rows []Row) (*Report, error) {
	return i.importRows(ctx, store, rows, true)
}

func (i *Importer) importRows(ctx context.Context, store TaskStore, rows []Row, replace bool) (*Report, error) {
	report := &Report{Created: []model.Task{}, Updated: []model.Task{}}

	// Source ID -> stored task IDs, in store order so duplicated source IDs match in order.
	existing := map[string][]int{}
	var existingOrder []int
	if replace {
		for _, t := range store.List() {
			existing[t.ExternalID] = append(existing[t.ExternalID], t.ID)
			existingOrder = append(existingOrder, t.ID)
		}
	}
	kept := map[int]bool{}

	var pending []pendingDeps
	for idx, row := range rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rowN := idx + 1
		name := i.columns.value(row, ColumnName)
		start := i.columns.value(row, ColumnStart)
		finish := i.columns.value(row, ColumnFinish)
		if name == "" || start == "" || finish == "" {
			report.Skipped++
			i.logger.Debugf("Row %d skipped, missing name, start or finish", rowN)
			continue
		}

		matchID := 0
		if key := i.externalID(row, name); len(existing[key]) > 0 {
			matchID = existing[key][0]
			existing[key] = existing[key][1:]
			kept[matchID] = true
		}

		fields, err := i.rowFields(row, name, start, finish)
		if err != nil {
			report.Errors = append(report.Errors, RowError{Row: rowN, Name: name, Err: err})
			i.logger.Warningf("Row %d (%s) not imported: %s", rowN, name, err)
			continue
		}

		var t model.Task
		if matchID != 0 {
			if i.columns.value(row, ColumnElements) == "" {
				fields.Elements = nil
			}
			fields.Dependencies = []int{}
			t, err = store.Update(matchID, fields)
		} else {
			t, err = store.Create(fields)
		}
		if err != nil {
			report.Errors = append(report.Errors, RowError{Row: rowN, Name: name, Err: err})
			i.logger.Warningf("Row %d (%s) not imported: %s", rowN, name, err)
			continue
		}
		if matchID != 0 {
			report.Updated = append(report.Updated, t)
		} else {
			report.Created = append(report.Created, t)
		}

		if raw := i.columns.value(row, ColumnPredecessors); raw != "" {
			pending = append(pending, pendingDeps{taskID: t.ID, row: rowN, raw: raw})
		}
	}

	// Removed before resolving so predecessors can't point to dropped tasks.
	for _, id := range existingOrder {
		if kept[id] {
			continue
		}
		if err := store.Delete(id); err != nil {
			return nil, fmt.Errorf("could not remove task %d: %w", id, err)
		}
		report.Removed++
	}

	if len(pending) > 0 {
		if err := i.resolveDependencies(store, pending, report); err != nil {
			return nil, err
		}
	}

	i.logger.Infof("Imported %d tasks (%d updated, %d removed, %d skipped, %d failed)",
		len(report.Created), len(report.Updated), report.Removed, report.Skipped, len(report.Errors))

	return report, nil
}

// externalID is the source ID of a row, the task name when the source has no IDs.
func (i *Importer) externalID(row Row, name string) string {
	if id := i.columns.value(row, ColumnID); id != "" {
		return id
	}
	return name
}

func (i *Importer) rowFields(row Row, name, start, finish string) (model.TaskFields, error) {
	startDate, err := model.ParseDate(start)
	if err != nil {
		return model.TaskFields{}, fmt.Errorf("start: %w", err)
	}
	endDate, err := model.ParseDate(finish)
	if err != nil {
		return model.TaskFields{}, fmt.Errorf("finish: %w", err)
	}

	externalID := i.externalID(row, name)

	fields := model.TaskFields{
		ExternalID: &externalID,
		Name:       &name,
		Start:      &startDate,
		End:        &endDate,
		Elements:   []model.ElementID{},
	}

	if v := i.columns.value(row, ColumnType); v != "" {
		tt := model.TaskType(v)
		fields.Type = &tt
	}

	if v := i.columns.value(row, ColumnPercentComplete); v != "" {
		p, err := model.ParsePercent(v)
		if err != nil {
			return model.TaskFields{}, fmt.Errorf("percent complete: %w", err)
		}
		fields.PercentComplete = &p
	}

	if v := i.columns.value(row, ColumnElements); v != "" {
		ids, err := model.ParseIDList(v)
		if err != nil {
			return model.TaskFields{}, fmt.Errorf("elements: %w", err)
		}
		for _, id := range ids {
			fields.Elements = append(fields.Elements, model.ElementID(id))
		}
	}

	return fields, nil
}

// predecessorSuffix matches the relation type and lag that scheduling tools
// append to predecessor references, e.g. "3FS+2 days".
var predecessorSuffix = regexp.MustCompile(`^(.*?)\s*(?:FS|SS|FF|SF)?\s*(?:[+-]\s*\d+(?:\.\d+)?\s*[A-Za-z ]*)?$`)

func (i *Importer) resolveDependencies(store TaskStore, pending []pendingDeps, report *Report) error {
	// Later tasks win on duplicated source IDs, so the just imported rows take
	// priority over the tasks that were already on the store.
	byExternal := map[string]int{}
	for _, t := range store.List() {
		if t.ExternalID != "" {
			byExternal[t.ExternalID] = t.ID
		}
	}

	for _, p := range pending {
		var deps []int
		for _, ref := range strings.FieldsFunc(p.raw, func(r rune) bool { return r == ',' || r == ';' }) {
			ref = strings.TrimSpace(ref)
			if ref == "" {
				continue
			}

			id, ok := byExternal[ref]
			if !ok {
				if m := predecessorSuffix.FindStringSubmatch(ref); m != nil && m[1] != "" {
					id, ok = byExternal[m[1]]
				}
			}
			if !ok {
				msg := fmt.Sprintf("row %d: predecessor %q not found", p.row, ref)
				report.Warnings = append(report.Warnings, msg)
				i.logger.Warningf("Predecessor not resolved: %s", msg)
				continue
			}
			deps = append(deps, id)
		}

		if len(deps) == 0 {
			continue
		}

		t, err := store.Update(p.taskID, model.TaskFields{Dependencies: deps})
		if err != nil {
			return fmt.Errorf("could not set dependencies of task %d: %w", p.taskID, err)
		}
		for _, list := range [][]model.Task{report.Created, report.Updated} {
			for j := range list {
				if list[j].ID == t.ID {
					list[j] = t
				}
			}
		}
	}

	return nil
}
