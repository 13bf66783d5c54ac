package taskcreate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/slok/fourd/internal/log"
	"github.com/slok/fourd/internal/model"
	"github.com/slok/fourd/internal/storage"
	"github.com/slok/fourd/internal/taskstore"
	"github.com/slok/fourd/internal/viewer"
)

// ServiceConfig is the configuration for the task create service.
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
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.TaskCreate"})
	return nil
}

// Service creates schedule tasks.
type Service struct {
	repo      storage.ScheduleRepository
	selection viewer.Selection
	timeNow   func() time.Time
	logger    log.Logger
}

// NewService creates a new task create service.
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

// Request represents the task create request parameters.
type Request struct {
	ModelID string
	Fields  model.TaskFields
	// UseSelection takes the task elements from the current viewer selection.
	UseSelection bool
}

// Run creates a task on the model schedule, the schedule is created if missing.
func (s *Service) Run(ctx context.Context, req Request) (*model.Task, error) {
	modelID := strings.TrimSpace(req.ModelID)
	if modelID == "" {
		return nil, fmt.Errorf("model id is required: %w", model.ErrNotValid)
	}

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

	current, err := s.repo.GetSchedule(ctx, modelID)
	if err != nil {
		if !errors.Is(err, model.ErrNotFound) {
			return nil, fmt.Errorf("could not get schedule: %w", err)
		}
		current = &model.Schedule{ModelID: modelID}
	}

	store, err := taskstore.NewFromSchedule(taskstore.StoreConfig{Logger: s.logger}, *current)
	if err != nil {
		return nil, fmt.Errorf("could not load schedule tasks: %w", err)
	}

	task, err := store.Create(fields)
	if err != nil {
		return nil, fmt.Errorf("could not create task: %w", err)
	}

	schedule := store.Snapshot(modelID)
	schedule.Stamp(s.timeNow())
	if err := s.repo.SaveSchedule(ctx, schedule); err != nil {
		return nil, fmt.Errorf("could not save schedule: %w", err)
	}

	s.logger.Infof("Created task %d (%s) on schedule %s", task.ID, task.Name, modelID)

	return &task, nil
}
