package scheduleremove

import (
	"context"
	"fmt"

	"github.com/slok/fourd/internal/log"
	"github.com/slok/fourd/internal/model"
	"github.com/slok/fourd/internal/storage"
)

// ServiceConfig is the configuration for the schedule remove service.
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

	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.ScheduleRemove"})
	return nil
}

// Service removes stored schedules.
type Service struct {
	repo   storage.ScheduleRepository
	logger log.Logger
}

// NewService creates a new schedule remove service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		repo:   cfg.Repository,
		logger: cfg.Logger,
	}, nil
}

// Request represents the schedule remove request parameters.
type Request struct {
	ModelID string
}

// Run removes the schedule of a model with all its tasks and returns its summary.
func (s *Service) Run(ctx context.Context, req Request) (*model.ScheduleSummary, error) {
	schedule, err := s.repo.GetSchedule(ctx, req.ModelID)
	if err != nil {
		return nil, fmt.Errorf("could not get schedule: %w", err)
	}

	if err := s.repo.DeleteSchedule(ctx, req.ModelID); err != nil {
		return nil, fmt.Errorf("could not delete schedule from repository: %w", err)
	}

	summary := schedule.Summary()
	s.logger.Infof("removed schedule: %s (%d tasks)", summary.ModelID, summary.TaskCount)
	return &summary, nil
}
