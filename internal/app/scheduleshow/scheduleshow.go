package scheduleshow

import (
	"context"
	"fmt"

	"github.com/slok/fourd/internal/log"
	"github.com/slok/fourd/internal/model"
	"github.com/slok/fourd/internal/storage"
)

// ServiceConfig is the configuration for the schedule show service.
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
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.ScheduleShow"})
	return nil
}

// Service gets stored schedules.
type Service struct {
	repo   storage.ScheduleRepository
	logger log.Logger
}

// NewService creates a new schedule show service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		repo:   cfg.Repository,
		logger: cfg.Logger,
	}, nil
}

// Request represents the schedule show request parameters.
type Request struct {
	ModelID string
}

// Run returns the whole schedule of a model.
func (s *Service) Run(ctx context.Context, req Request) (*model.Schedule, error) {
	schedule, err := s.repo.GetSchedule(ctx, req.ModelID)
	if err != nil {
		return nil, fmt.Errorf("could not get schedule: %w", err)
	}

	return schedule, nil
}
