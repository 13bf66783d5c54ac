package commands

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/fourd/internal/app/importschedule"
	"github.com/slok/fourd/internal/importer"
	"github.com/slok/fourd/internal/model"
	"github.com/slok/fourd/internal/printer"
	"github.com/slok/fourd/internal/viewer"
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatText  = "text"
	formatSVG   = "svg"
	formatAuto  = "auto"
	formatCSV   = "csv"
)

// taskFieldFlags are the task field flags shared by the task create and update commands.
type taskFieldFlags struct {
	values map[string]*string
	set    map[string]*bool
}

var taskFieldFlagHelp = []struct {
	name string
	help string
}{
	{name: model.FieldName, help: "Task name."},
	{name: model.FieldExternalID, help: "Task ID on the source schedule."},
	{name: model.FieldType, help: "Task type (Build, Demolish, Temporary)."},
	{name: model.FieldStart, help: "Start date."},
	{name: model.FieldEnd, help: "End date."},
	{name: model.FieldDependencies, help: "Comma separated IDs of the predecessor tasks."},
	{name: model.FieldElements, help: "Comma separated model element IDs."},
	{name: model.FieldPercentComplete, help: "Percent complete, empty clears it."},
}

func newTaskFieldFlags(cmd *kingpin.CmdClause) *taskFieldFlags {
	f := &taskFieldFlags{
		values: map[string]*string{},
		set:    map[string]*bool{},
	}

	for _, fl := range taskFieldFlagHelp {
		value, set := new(string), new(bool)
		cmd.Flag(fl.name, fl.help).IsSetByUser(set).StringVar(value)
		f.values[fl.name] = value
		f.set[fl.name] = set
	}

	return f
}

// fields returns the task fields set by the user, the rest are left unset.
func (f *taskFieldFlags) fields() (model.TaskFields, error) {
	raw := map[string]string{}
	for name, set := range f.set {
		if *set {
			raw[name] = *f.values[name]
		}
	}

	fields, err := model.ParseTaskFields(raw)
	if err != nil {
		return model.TaskFields{}, fmt.Errorf("invalid task flags: %w", err)
	}

	return fields, nil
}

// parseSelection returns the viewer selection of a comma separated element ID list.
func parseSelection(s string) (viewer.StaticSelection, error) {
	ids, err := model.ParseIDList(s)
	if err != nil {
		return nil, fmt.Errorf("invalid selection: %w", err)
	}

	sel := make(viewer.StaticSelection, 0, len(ids))
	for _, id := range ids {
		sel = append(sel, model.ElementID(id))
	}
	return sel, nil
}

// parseColumnSpecs parses `column=header` specs into importer column aliases,
// repeated columns accumulate their headers.
func parseColumnSpecs(specs []string) (map[string][]string, error) {
	columns := map[string][]string{}
	for _, spec := range specs {
		column, header, ok := strings.Cut(spec, "=")
		column, header = strings.TrimSpace(column), strings.TrimSpace(header)
		if !ok || column == "" || header == "" {
			return nil, fmt.Errorf("invalid column %q, must be column=header", spec)
		}
		if _, ok := importer.DefaultColumns()[column]; !ok {
			return nil, fmt.Errorf("unknown column %q", column)
		}
		columns[column] = append(columns[column], header)
	}

	return columns, nil
}

// importFormat resolves the source format, auto uses the file extension.
func importFormat(path, format string) importschedule.Format {
	switch format {
	case formatCSV:
		return importschedule.FormatCSV
	case formatJSON:
		return importschedule.FormatJSON
	}

	if strings.EqualFold(filepath.Ext(path), ".json") {
		return importschedule.FormatJSON
	}
	return importschedule.FormatCSV
}

func newPrinter(format string, w io.Writer) printer.Printer {
	switch format {
	case formatJSON:
		return printer.NewJSONPrinter(w)
	default: // table
		return printer.NewTablePrinter(w)
	}
}

func newChartPrinter(format string, w io.Writer) printer.ChartPrinter {
	switch format {
	case formatSVG:
		return printer.NewSVGPrinter(w)
	case formatJSON:
		return printer.NewJSONPrinter(w)
	default: // text
		return printer.NewGanttTextPrinter(w)
	}
}
