package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/fourd/internal/app/taskupdate"
)

// TaskUpdateCommand updates tasks.
type TaskUpdateCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	modelID   string
	taskID    int
	fields    *taskFieldFlags
	selection *selectionFlag
	output    string
}

// NewTaskUpdateCommand returns the task update command.
func NewTaskUpdateCommand(rootCmd *RootCommand, taskCmd *kingpin.CmdClause) *TaskUpdateCommand {
	c := &TaskUpdateCommand{rootCmd: rootCmd}

	c.Cmd = taskCmd.Command("update", "Update the fields of a task, the fields not set are kept.")
	c.Cmd.Arg("model", "Model ID.").Required().StringVar(&c.modelID)
	c.Cmd.Arg("id", "Task ID.").Required().IntVar(&c.taskID)
	c.fields = newTaskFieldFlags(c.Cmd)
	c.selection = newSelectionFlag(c.Cmd)
	c.Cmd.Flag("output", "Output format (table, json).").Short('o').Default(formatTable).EnumVar(&c.output, formatTable, formatJSON)

	return c
}

func (c TaskUpdateCommand) Name() string { return c.Cmd.FullCommand() }

func (c TaskUpdateCommand) Run(ctx context.Context) error {
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

	svc, err := taskupdate.NewService(taskupdate.ServiceConfig{
		Repository: repo,
		Selection:  sel,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	task, err := svc.Run(ctx, taskupdate.Request{
		ModelID:      c.modelID,
		TaskID:       c.taskID,
		Fields:       fields,
		UseSelection: sel != nil,
	})
	if err != nil {
		return fmt.Errorf("could not update task: %w", err)
	}

	if err := newPrinter(c.output, c.rootCmd.Stdout).PrintTask(*task); err != nil {
		return fmt.Errorf("could not print task: %w", err)
	}

	return nil
}
