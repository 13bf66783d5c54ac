package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/fourd/internal/app/scheduleremove"
)

// ScheduleRmCommand removes stored schedules.
type ScheduleRmCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	modelID string
	output  string
}

// NewScheduleRmCommand returns the schedule rm command.
func NewScheduleRmCommand(rootCmd *RootCommand, scheduleCmd *kingpin.CmdClause) *ScheduleRmCommand {
	c := &ScheduleRmCommand{rootCmd: rootCmd}

	c.Cmd = scheduleCmd.Command("rm", "Remove a stored schedule.")
	c.Cmd.Arg("model", "Model ID.").Required().StringVar(&c.modelID)
	c.Cmd.Flag("output", "Output format (table, json).").Short('o').Default(formatTable).EnumVar(&c.output, formatTable, formatJSON)

	return c
}

func (c ScheduleRmCommand) Name() string { return c.Cmd.FullCommand() }

func (c ScheduleRmCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	repo, err := c.rootCmd.newRepository(ctx)
	if err != nil {
		return err
	}

	svc, err := scheduleremove.NewService(scheduleremove.ServiceConfig{
		Repository: repo,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	summary, err := svc.Run(ctx, scheduleremove.Request{ModelID: c.modelID})
	if err != nil {
		return fmt.Errorf("could not remove schedule: %w", err)
	}

	msg := fmt.Sprintf("Schedule %s removed (%d tasks)", summary.ModelID, summary.TaskCount)
	if err := newPrinter(c.output, c.rootCmd.Stdout).PrintMessage(msg); err != nil {
		return fmt.Errorf("could not print message: %w", err)
	}

	return nil
}
