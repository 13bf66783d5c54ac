package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/fourd/internal/app/schedulelist"
)

// ScheduleListCommand lists the stored schedules.
type ScheduleListCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	output string
}

// NewScheduleListCommand returns the schedule list command.
func NewScheduleListCommand(rootCmd *RootCommand, scheduleCmd *kingpin.CmdClause) *ScheduleListCommand {
	c := &ScheduleListCommand{rootCmd: rootCmd}

	c.Cmd = scheduleCmd.Command("list", "List the stored schedules.")
	c.Cmd.Flag("output", "Output format (table, json).").Short('o').Default(formatTable).EnumVar(&c.output, formatTable, formatJSON)

	return c
}

func (c ScheduleListCommand) Name() string { return c.Cmd.FullCommand() }

func (c ScheduleListCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	repo, err := c.rootCmd.newRepository(ctx)
	if err != nil {
		return err
	}

	svc, err := schedulelist.NewService(schedulelist.ServiceConfig{
		Repository: repo,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	schedules, err := svc.Run(ctx, schedulelist.Request{})
	if err != nil {
		return fmt.Errorf("could not list schedules: %w", err)
	}

	if err := newPrinter(c.output, c.rootCmd.Stdout).PrintSchedules(schedules); err != nil {
		return fmt.Errorf("could not print schedules: %w", err)
	}

	return nil
}
