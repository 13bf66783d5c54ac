package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/fourd/internal/app/tasklist"
	"github.com/slok/fourd/internal/model"
)

// TaskListCommand lists the tasks of a model schedule.
type TaskListCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	modelID  string
	activeOn string
	element  int
	output   string
}

// NewTaskListCommand returns the task list command.
func NewTaskListCommand(rootCmd *RootCommand, taskCmd *kingpin.CmdClause) *TaskListCommand {
	c := &TaskListCommand{rootCmd: rootCmd}

	c.Cmd = taskCmd.Command("list", "List the tasks of a model schedule.")
	c.Cmd.Arg("model", "Model ID.").Required().StringVar(&c.modelID)
	c.Cmd.Flag("active-on", "Only the tasks active on this date.").StringVar(&c.activeOn)
	c.Cmd.Flag("element", "Only the tasks that affect this model element.").IntVar(&c.element)
	c.Cmd.Flag("output", "Output format (table, json).").Short('o').Default(formatTable).EnumVar(&c.output, formatTable, formatJSON)

	return c
}

func (c TaskListCommand) Name() string { return c.Cmd.FullCommand() }

func (c TaskListCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	req := tasklist.Request{ModelID: c.modelID}
	if c.activeOn != "" {
		day, err := model.ParseDate(c.activeOn)
		if err != nil {
			return fmt.Errorf("invalid active on date: %w", err)
		}
		req.ActiveOn = &day
	}
	if c.element != 0 {
		id := model.ElementID(c.element)
		req.Element = &id
	}

	repo, err := c.rootCmd.newRepository(ctx)
	if err != nil {
		return err
	}

	svc, err := tasklist.NewService(tasklist.ServiceConfig{
		Repository: repo,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	tasks, err := svc.Run(ctx, req)
	if err != nil {
		return fmt.Errorf("could not list tasks: %w", err)
	}

	if err := newPrinter(c.output, c.rootCmd.Stdout).PrintTasks(tasks); err != nil {
		return fmt.Errorf("could not print tasks: %w", err)
	}

	return nil
}
