package importer

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Row is a schedule source row, header name to raw value.
type Row = map[string]string

// ReadCSV reads delimited rows, the first record is the header. Ragged records
// are tolerated and empty records are ignored.
func ReadCSV(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return []Row{}, nil
		}
		return nil, fmt.Errorf("could not read header: %w", err)
	}
	for i, h := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}

	rows := []Row{}
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("could not read record: %w", err)
		}

		row := Row{}
		empty := true
		for i, v := range record {
			if i >= len(header) || header[i] == "" {
				continue
			}
			v = strings.TrimSpace(v)
			if v != "" {
				empty = false
			}
			row[header[i]] = v
		}
		if !empty {
			rows = append(rows, row)
		}
	}

	return rows, nil
}

type jsonSchedule struct {
	ModelID string     `json:"modelId"`
	URN     string     `json:"urn"`
	Tasks   []jsonTask `json:"tasks"`
}

type jsonTask struct {
	ID              any    `json:"id"`
	Name            string `json:"name"`
	Type            string `json:"type"`
	Start           string `json:"start"`
	End             string `json:"end"`
	Dependencies    []any  `json:"dependencies"`
	Elements        []int  `json:"elements"`
	PercentComplete *int   `json:"percentComplete"`
}

// ReadJSON reads the tasks of a previously exported schedule JSON record as
// rows using the default header names. Returns the model ID of the record too.
func ReadJSON(r io.Reader) (modelID string, rows []Row, err error) {
	var s jsonSchedule
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return "", nil, fmt.Errorf("could not decode schedule JSON: %w", err)
	}

	cols := DefaultColumns()
	rows = make([]Row, 0, len(s.Tasks))
	for _, t := range s.Tasks {
		row := Row{
			cols[ColumnName][0]:   t.Name,
			cols[ColumnStart][0]:  t.Start,
			cols[ColumnFinish][0]: t.End,
			cols[ColumnType][0]:   t.Type,
		}
		if id := jsonValue(t.ID); id != "" {
			row[cols[ColumnID][0]] = id
		}

		deps := make([]string, 0, len(t.Dependencies))
		for _, d := range t.Dependencies {
			deps = append(deps, jsonValue(d))
		}
		row[cols[ColumnPredecessors][0]] = strings.Join(deps, ",")

		elements := make([]string, 0, len(t.Elements))
		for _, e := range t.Elements {
			elements = append(elements, strconv.Itoa(e))
		}
		row[cols[ColumnElements][0]] = strings.Join(elements, ",")

		if t.PercentComplete != nil {
			row[cols[ColumnPercentComplete][0]] = strconv.Itoa(*t.PercentComplete)
		}

		rows = append(rows, row)
	}

	modelID = s.ModelID
	if modelID == "" {
		modelID = s.URN
	}

	return modelID, rows, nil
}

func jsonValue(v any) string {
	switch vv := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(vv)
	case float64:
		return strconv.FormatFloat(vv, 'f', -1, 64)
	default:
		return fmt.Sprint(vv)
	}
}
