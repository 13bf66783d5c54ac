package taskupdate

import (
	"context"
	"fmt"
	"time"

	"github.com/slok/fourd/internal/log"
	"github.com/slok/fourd/internal/model"
	"github.com/slok/fourd/internal/storage"
	"github.com/slok/fourd/internal/taskstore"
	"github.com/slok/fourd/internal/viewer"
)

// ServiceConfig is the configuration for the task update service.
type ServiceConfig struct {
	Repository storage.ScheduleRepository
	// Selection is optional, required only by the requests that take the elements from it.
	Selection viewer.Selection
	TimeNow   func() time.Time
	Logger    log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Repository == nil {
		return fmt.Errorf("repository is required")
	}
	if c.TimeNow == nil {
		c.TimeNow = time.Now
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.TaskUpdate"})
	return nil
}

// Service updates schedule tasks.
type Service struct {
	repo      storage.ScheduleRepository
	selection viewer.Selection
	timeNow   func() time.Time
	logger    log.Logger
}

// NewService creates a new task update service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		repo:      cfg.Repository,
		selection: cfg.Selection,
		timeNow:   cfg.TimeNow,
		logger:    cfg.Logger,
	}, nil
}

// Request represents the task update request parameters.
type Request struct {
	ModelID string
	TaskID  int
	// Fields are the fields to change, the unset ones are kept.
	Fields model.TaskFields
	// UseSelection replaces the task elements with the current viewer selection.
	UseSelection bool
}

// Run updates a task of the model schedule. A failed update leaves the stored
// schedule untouched.
func (s *Service) Run(ctx context.Context, req Request) (*model.Task, error) {
	fields := req.Fields
	if req.UseSelection {
		if s.selection == nil {
			return nil, fmt.Errorf("no viewer selection available: %w", model.ErrPrecondition)
		}
		ids, err := s.selection.CurrentSelection(ctx)
		if err != nil {
			return nil, fmt.Errorf("could not get viewer selection: %w", err)
		}
		fields.Elements = ids
	}

	current, err := s.repo.GetSchedule(ctx, req.ModelID)
	if err != nil {
		return nil, fmt.Errorf("could not get schedule: %w", err)
	}

	store, err := taskstore.NewFromSchedule(taskstore.StoreConfig{Logger: s.logger}, *current)
	if err != nil {
		return nil, fmt.Errorf("could not load schedule tasks: %w", err)
	}

	task, err := store.Update(req.TaskID, fields)
	if err != nil {
		return nil, fmt.Errorf("could not update task: %w", err)
	}

	schedule := store.Snapshot(req.ModelID)
	schedule.Stamp(s.timeNow())
	if err := s.repo.SaveSchedule(ctx, schedule); err != nil {
		return nil, fmt.Errorf("could not save schedule: %w", err)
	}

	s.logger.Infof("Updated task %d (%s) on schedule %s", task.ID, task.Name, req.ModelID)

	return &task, nil
}
