package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/fourd/internal/app/taskcreate"
)

// TaskCreateCommand creates tasks.
type TaskCreateCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	modelID   string
	fields    *taskFieldFlags
	selection *selectionFlag
	output    string
}

// NewTaskCreateCommand returns the task create command.
func NewTaskCreateCommand(rootCmd *RootCommand, taskCmd *kingpin.CmdClause) *TaskCreateCommand {
	c := &TaskCreateCommand{rootCmd: rootCmd}

	c.Cmd = taskCmd.Command("create", "Create a task on a model schedule.")
	c.Cmd.Arg("model", "Model ID.").Required().StringVar(&c.modelID)
	c.fields = newTaskFieldFlags(c.Cmd)
	c.selection = newSelectionFlag(c.Cmd)
	c.Cmd.Flag("output", "Output format (table, json).").Short('o').Default(formatTable).EnumVar(&c.output, formatTable, formatJSON)

	return c
}

func (c TaskCreateCommand) Name() string { return c.Cmd.FullCommand() }

func (c TaskCreateCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	fields, err := c.fields.fields()
	if err != nil {
		return err
	}

	sel, err := c.selection.selection()
	if err != nil {
		return err
	}

	repo, err := c.rootCmd.newRepository(ctx)
	if err != nil {
		return err
	}

	svc, err := taskcreate.NewService(taskcreate.ServiceConfig{
		Repository: repo,
		Selection:  sel,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	task, err := svc.Run(ctx, taskcreate.Request{
		ModelID:      c.modelID,
		Fields:       fields,
		UseSelection: sel != nil,
	})
	if err != nil {
		return fmt.Errorf("could not create task: %w", err)
	}

	if err := newPrinter(c.output, c.rootCmd.Stdout).PrintTask(*task); err != nil {
		return fmt.Errorf("could not print task: %w", err)
	}

	return nil
}
