package layout

import (
	"context"
	"fmt"
	"time"

	"github.com/slok/fourd/internal/log"
	"github.com/slok/fourd/internal/model"
	"github.com/slok/fourd/internal/storage"
	"github.com/slok/fourd/internal/timeline"
)

// ServiceConfig is the configuration for the layout service.
type ServiceConfig struct {
	Repository storage.ScheduleRepository
	Geometry   timeline.Geometry
	TimeNow    func() time.Time
	Logger     log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Repository == nil {
		return fmt.Errorf("repository is required")
	}
	if c.Geometry == (timeline.Geometry{}) {
		c.Geometry = timeline.DefaultGeometry()
	}
	if c.Geometry.Width <= 0 || c.Geometry.RowHeight <= 0 || c.Geometry.BarHeight <= 0 {
		return fmt.Errorf("geometry sizes must be positive")
	}
	if c.TimeNow == nil {
		c.TimeNow = time.Now
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Layout"})
	return nil
}

// Service computes the timeline chart of the stored schedules.
type Service struct {
	repo     storage.ScheduleRepository
	geometry timeline.Geometry
	timeNow  func() time.Time
	logger   log.Logger
}

// NewService creates a new layout service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		repo:     cfg.Repository,
		geometry: cfg.Geometry,
		timeNow:  cfg.TimeNow,
		logger:   cfg.Logger,
	}, nil
}

// Request represents the layout request parameters.
type Request struct {
	ModelID string
	// NoToday omits the today marker.
	NoToday bool
}

// Run lays out the model schedule. Dependency cycles are logged and the chart
// is returned without critical path.
func (s *Service) Run(ctx context.Context, req Request) (*timeline.Chart, error) {
	schedule, err := s.repo.GetSchedule(ctx, req.ModelID)
	if err != nil {
		return nil, fmt.Errorf("could not get schedule: %w", err)
	}

	opts := timeline.LayoutOptions{}
	if !req.NoToday {
		opts.Today = model.Day(s.timeNow())
	}

	chart, err := timeline.NewChart(schedule.Tasks, s.geometry, opts)
	if err != nil {
		return nil, fmt.Errorf("could not build chart: %w", err)
	}
	for _, w := range chart.Warnings {
		s.logger.Warningf("Schedule %s: %s", req.ModelID, w)
	}

	s.logger.Debugf("Schedule %s laid out: %d bars over %d days, %d connectors", req.ModelID, len(chart.Layout.Bars), chart.Layout.Range.Len(), len(chart.Connectors))

	return &chart, nil
}
