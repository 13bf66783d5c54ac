package lib

import (
	"context"
	"fmt"

	"github.com/slok/fourd/internal/app/criticalpath"
	"github.com/slok/fourd/internal/app/taskcreate"
	"github.com/slok/fourd/internal/app/taskdelete"
	"github.com/slok/fourd/internal/app/tasklist"
	"github.com/slok/fourd/internal/app/taskupdate"
	"github.com/slok/fourd/internal/model"
)

// CreateTask creates a task on the model schedule, the schedule is created if
// it doesn't exist.
//
// Name, Start and End are required. Returns [ErrNotValid] on invalid fields,
// like a task that ends before it starts. Dependencies on missing tasks are
// kept, they are ignored when drawing.
func (c *Client) CreateTask(ctx context.Context, modelID string, opts TaskOpts) (*Task, error) {
	svc, err := taskcreate.NewService(taskcreate.ServiceConfig{
		Repository: c.repo,
		Selection:  toInternalSelection(opts.Selection),
		TimeNow:    c.timeNow,
		Logger:     c.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create service: %w", err)
	}

	task, err := svc.Run(ctx, taskcreate.Request{
		ModelID:      modelID,
		Fields:       toInternalTaskFields(opts),
		UseSelection: opts.Selection != nil,
	})
	if err != nil {
		return nil, mapError(err)
	}

	out := fromInternalTask(*task)
	return &out, nil
}

// UpdateTask changes the provided fields of a task, the rest are kept.
//
// A failed update leaves the schedule untouched. Returns [ErrNotFound] if the
// schedule or the task does not exist.
func (c *Client) UpdateTask(ctx context.Context, modelID string, taskID int, opts TaskOpts) (*Task, error) {
	svc, err := taskupdate.NewService(taskupdate.ServiceConfig{
		Repository: c.repo,
		Selection:  toInternalSelection(opts.Selection),
		TimeNow:    c.timeNow,
		Logger:     c.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create service: %w", err)
	}

	task, err := svc.Run(ctx, taskupdate.Request{
		ModelID:      modelID,
		TaskID:       taskID,
		Fields:       toInternalTaskFields(opts),
		UseSelection: opts.Selection != nil,
	})
	if err != nil {
		return nil, mapError(err)
	}

	out := fromInternalTask(*task)
	return &out, nil
}

// DeleteTask removes a task and returns it. The dependencies on it from other
// tasks are kept, they are ignored when drawing.
//
// Returns [ErrNotFound] if the schedule or the task does not exist.
func (c *Client) DeleteTask(ctx context.Context, modelID string, taskID int) (*Task, error) {
	svc, err := taskdelete.NewService(taskdelete.ServiceConfig{
		Repository: c.repo,
		TimeNow:    c.timeNow,
		Logger:     c.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create service: %w", err)
	}

	task, err := svc.Run(ctx, taskdelete.Request{ModelID: modelID, TaskID: taskID})
	if err != nil {
		return nil, mapError(err)
	}

	out := fromInternalTask(*task)
	return &out, nil
}

// ListTasks returns the tasks of a model schedule in schedule order.
//
// Pass nil opts to list all the tasks. Returns [ErrNotFound] if the schedule
// does not exist.
func (c *Client) ListTasks(ctx context.Context, modelID string, opts *ListTasksOpts) ([]Task, error) {
	svc, err := tasklist.NewService(tasklist.ServiceConfig{
		Repository: c.repo,
		Logger:     c.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create service: %w", err)
	}

	req := tasklist.Request{ModelID: modelID}
	if opts != nil {
		req.ActiveOn = opts.ActiveOn
		if opts.Element != nil {
			e := model.ElementID(*opts.Element)
			req.Element = &e
		}
	}

	tasks, err := svc.Run(ctx, req)
	if err != nil {
		return nil, mapError(err)
	}

	return fromInternalTaskList(tasks), nil
}

// CriticalPath returns the tasks on the longest dependency chain of a model
// schedule. When more than one chain has the maximum length all of them are
// returned.
//
// Returns [ErrNotFound] if the schedule does not exist or [ErrCyclicDependency]
// if the stored dependencies form a cycle.
func (c *Client) CriticalPath(ctx context.Context, modelID string) (*CriticalPath, error) {
	svc, err := criticalpath.NewService(criticalpath.ServiceConfig{
		Repository: c.repo,
		Logger:     c.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create service: %w", err)
	}

	res, err := svc.Run(ctx, criticalpath.Request{ModelID: modelID})
	if err != nil {
		return nil, mapError(err)
	}

	return &CriticalPath{
		Tasks: fromInternalTaskList(res.Tasks),
		Days:  res.Days,
	}, nil
}
