package taskdelete

import (
	"context"
	"fmt"
	"time"

	"github.com/slok/fourd/internal/log"
	"github.com/slok/fourd/internal/model"
	"github.com/slok/fourd/internal/storage"
	"github.com/slok/fourd/internal/taskstore"
)

// ServiceConfig is the configuration for the task delete service.
type ServiceConfig struct {
	Repository storage.ScheduleRepository
	TimeNow    func() time.Time
	Logger     log.Logger
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
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.TaskDelete"})
	return nil
}

// Service deletes schedule tasks.
type Service struct {
	repo    storage.ScheduleRepository
	timeNow func() time.Time
	logger  log.Logger
}

// NewService creates a new task delete service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		repo:    cfg.Repository,
		timeNow: cfg.TimeNow,
		logger:  cfg.Logger,
	}, nil
}

// Request represents the task delete request parameters.
type Request struct {
	ModelID string
	TaskID  int
}

// Run deletes a task of the model schedule and returns it. The dependencies of
// other tasks on the deleted one are kept, they are ignored when drawing.
func (s *Service) Run(ctx context.Context, req Request) (*model.Task, error) {
	current, err := s.repo.GetSchedule(ctx, req.ModelID)
	if err != nil {
		return nil, fmt.Errorf("could not get schedule: %w", err)
	}

	store, err := taskstore.NewFromSchedule(taskstore.StoreConfig{Logger: s.logger}, *current)
	if err != nil {
		return nil, fmt.Errorf("could not load schedule tasks: %w", err)
	}

	task, err := store.Get(req.TaskID)
	if err != nil {
		return nil, fmt.Errorf("could not get task: %w", err)
	}
	if err := store.Delete(req.TaskID); err != nil {
		return nil, fmt.Errorf("could not delete task: %w", err)
	}

	schedule := store.Snapshot(req.ModelID)
	schedule.Stamp(s.timeNow())
	if err := s.repo.SaveSchedule(ctx, schedule); err != nil {
		return nil, fmt.Errorf("could not save schedule: %w", err)
	}

	s.logger.Infof("Deleted task %d (%s) from schedule %s", task.ID, task.Name, req.ModelID)

	return &task, nil
}
