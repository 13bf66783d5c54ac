package commands

import "github.com/alecthomas/kingpin/v2"

// NewScheduleCommand returns the schedule parent command.
func NewScheduleCommand(app *kingpin.Application) *kingpin.CmdClause {
	return app.Command("schedule", "Manage the stored model schedules.")
}
