package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/fourd/internal/app/criticalpath"
)

// CriticalPathCommand shows the critical path of a model schedule.
type CriticalPathCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	modelID string
	output  string
}

// NewCriticalPathCommand returns the critical path command.
func NewCriticalPathCommand(rootCmd *RootCommand, app *kingpin.Application) *CriticalPathCommand {
	c := &CriticalPathCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("critical-path", "Show the tasks on the longest dependency chain of a model schedule.")
	c.Cmd.Arg("model", "Model ID.").Required().StringVar(&c.modelID)
	c.Cmd.Flag("output", "Output format (table, json).").Short('o').Default(formatTable).EnumVar(&c.output, formatTable, formatJSON)

	return c
}

func (c CriticalPathCommand) Name() string { return c.Cmd.FullCommand() }

func (c CriticalPathCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	repo, err := c.rootCmd.newRepository(ctx)
	if err != nil {
		return err
	}

	svc, err := criticalpath.NewService(criticalpath.ServiceConfig{
		Repository: repo,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	res, err := svc.Run(ctx, criticalpath.Request{ModelID: c.modelID})
	if err != nil {
		return fmt.Errorf("could not compute critical path: %w", err)
	}

	if err := newPrinter(c.output, c.rootCmd.Stdout).PrintCriticalPath(res.Tasks, res.Days); err != nil {
		return fmt.Errorf("could not print critical path: %w", err)
	}

	return nil
}
