package schedulelist

import (
	"context"
	"fmt"

	"github.com/slok/fourd/internal/log"
	"github.com/slok/fourd/internal/model"
	"github.com/slok/fourd/internal/storage"
)

// ServiceConfig is the configuration for the schedule list service.
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

	return nil
}

// Service lists the stored schedules.
type Service struct {
	repo   storage.ScheduleRepository
	logger log.Logger
}

// NewService creates a new schedule list service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		repo:   cfg.Repository,
		logger: cfg.Logger,
	}, nil
}

// Request represents the schedule list request parameters.
type Request struct{}

// Run lists the summaries of all the stored schedules.
func (s *Service) Run(ctx context.Context, req Request) ([]model.ScheduleSummary, error) {
	summaries, err := s.repo.ListSchedules(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not list schedules: %w", err)
	}

	s.logger.Debugf("found %d schedules", len(summaries))
	return summaries, nil
}
