package tasklist

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/slok/fourd/internal/log"
	"github.com/slok/fourd/internal/model"
	"github.com/slok/fourd/internal/storage"
)

// ServiceConfig is the configuration for the task list service.
type ServiceConfig struct {
	Repository storage.ScheduleRepository
	Logger     log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Repository == nil {
		return fmt.Errorf("repository is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.TaskList"})
	return nil
}

// Service lists schedule tasks with optional filtering.
type Service struct {
	repo   storage.ScheduleRepository
	logger log.Logger
}

// NewService creates a new task list service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		repo:   cfg.Repository,
		logger: cfg.Logger,
	}, nil
}

// Request represents the task list request parameters.
type Request struct {
	ModelID string
	// ActiveOn is an optional filter to only show the tasks active on a day.
	ActiveOn *time.Time
	// Element is an optional filter to only show the tasks that affect a model element.
	Element *model.ElementID
}

// Run lists the tasks of a model schedule in schedule order.
func (s *Service) Run(ctx context.Context, req Request) ([]model.Task, error) {
	schedule, err := s.repo.GetSchedule(ctx, req.ModelID)
	if err != nil {
		return nil, fmt.Errorf("could not get schedule: %w", err)
	}

	tasks := make([]model.Task, 0, len(schedule.Tasks))
	for _, t := range schedule.Tasks {
		if req.ActiveOn != nil && !t.ActiveOn(*req.ActiveOn) {
			continue
		}
		if req.Element != nil && !slices.Contains(t.Elements, *req.Element) {
			continue
		}
		tasks = append(tasks, t)
	}

	s.logger.Debugf("found %d tasks", len(tasks))
	return tasks, nil
}
