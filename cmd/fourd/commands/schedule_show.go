package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/fourd/internal/app/scheduleshow"
)

// ScheduleShowCommand shows a stored schedule.
type ScheduleShowCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	modelID string
	output  string
}

// NewScheduleShowCommand returns the schedule show command.
func NewScheduleShowCommand(rootCmd *RootCommand, scheduleCmd *kingpin.CmdClause) *ScheduleShowCommand {
	c := &ScheduleShowCommand{rootCmd: rootCmd}

	c.Cmd = scheduleCmd.Command("show", "Show a stored schedule with its tasks.")
	c.Cmd.Arg("model", "Model ID.").Required().StringVar(&c.modelID)
	c.Cmd.Flag("output", "Output format (table, json).").Short('o').Default(formatTable).EnumVar(&c.output, formatTable, formatJSON)

	return c
}

func (c ScheduleShowCommand) Name() string { return c.Cmd.FullCommand() }

func (c ScheduleShowCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	repo, err := c.rootCmd.newRepository(ctx)
	if err != nil {
		return err
	}

	svc, err := scheduleshow.NewService(scheduleshow.ServiceConfig{
		Repository: repo,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	schedule, err := svc.Run(ctx, scheduleshow.Request{ModelID: c.modelID})
	if err != nil {
		return fmt.Errorf("could not get schedule: %w", err)
	}

	if err := newPrinter(c.output, c.rootCmd.Stdout).PrintSchedule(*schedule); err != nil {
		return fmt.Errorf("could not print schedule: %w", err)
	}

	return nil
}
