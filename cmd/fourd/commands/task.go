package commands

import (
	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/fourd/internal/viewer"
)

// NewTaskCommand returns the task parent command.
func NewTaskCommand(app *kingpin.Application) *kingpin.CmdClause {
	return app.Command("task", "Manage the tasks of a model schedule.")
}

// selectionFlag is the optional viewer selection of the task commands, the
// CLI has no viewer attached so the selection is received as a flag.
type selectionFlag struct {
	value string
	set   bool
}

func newSelectionFlag(cmd *kingpin.CmdClause) *selectionFlag {
	f := &selectionFlag{}
	cmd.Flag("selection", "Comma separated element IDs selected on the viewer, they replace the task elements.").IsSetByUser(&f.set).StringVar(&f.value)
	return f
}

// selection returns the selection, nil when the flag is not used.
func (f *selectionFlag) selection() (viewer.Selection, error) {
	if !f.set {
		return nil, nil
	}

	sel, err := parseSelection(f.value)
	if err != nil {
		return nil, err
	}
	return sel, nil
}
