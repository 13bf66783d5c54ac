package importer

import (
	"maps"
	"slices"
	"strings"
)

// Logical columns of a schedule row.
const (
	ColumnID              = "id"
	ColumnName            = "name"
	ColumnStart           = "start"
	ColumnFinish          = "finish"
	ColumnType            = "type"
	ColumnPredecessors    = "predecessors"
	ColumnPercentComplete = "percent_complete"
	ColumnElements        = "elements"
)

// DefaultColumns are the header names accepted for every logical column, in
// priority order. They match the usual scheduling tool CSV exports.
func DefaultColumns() Columns {
	return Columns{
		ColumnID:              {"ID", "Task ID", "Unique ID"},
		ColumnName:            {"Task Name", "Name"},
		ColumnStart:           {"Start", "Start Date"},
		ColumnFinish:          {"Finish", "End", "Finish Date", "End Date"},
		ColumnType:            {"Type", "Task Type"},
		ColumnPredecessors:    {"Predecessors", "Dependencies"},
		ColumnPercentComplete: {"% Complete", "Percent Complete"},
		ColumnElements:        {"Elements"},
	}
}

// Columns maps logical columns to the accepted row header names.
type Columns map[string][]string

// Merge returns a copy of the columns with the extra header names taking
// priority over the current ones.
func (c Columns) Merge(extra map[string][]string) Columns {
	merged := Columns{}
	for k, v := range c {
		merged[k] = append([]string{}, v...)
	}
	for k, v := range extra {
		merged[k] = append(append([]string{}, v...), merged[k]...)
	}
	return merged
}

// value returns the trimmed value of the first non empty header of a logical
// column. Exact header names win, then they are matched case insensitively in
// sorted row header order.
func (c Columns) value(row map[string]string, column string) string {
	for _, header := range c[column] {
		if v, ok := row[header]; ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}

	rowHeaders := slices.Sorted(maps.Keys(row))
	for _, header := range c[column] {
		for _, k := range rowHeaders {
			if v := strings.TrimSpace(row[k]); v != "" && strings.EqualFold(strings.TrimSpace(k), header) {
				return v
			}
		}
	}

	return ""
}
