package play

import (
	"context"
	"fmt"
	"time"

	"github.com/slok/fourd/internal/log"
	"github.com/slok/fourd/internal/model"
	"github.com/slok/fourd/internal/playback"
	"github.com/slok/fourd/internal/storage"
	"github.com/slok/fourd/internal/taskstore"
	"github.com/slok/fourd/internal/viewer"
)

// ServiceConfig is the configuration for the play service.
type ServiceConfig struct {
	Repository storage.ScheduleRepository
	Viewer     viewer.Viewer
	// Scheduler is the tick source, defaults to the wall clock.
	Scheduler playback.Scheduler
	Logger    log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Repository == nil {
		return fmt.Errorf("repository is required")
	}
	if c.Viewer == nil {
		return fmt.Errorf("viewer is required")
	}
	if c.Scheduler == nil {
		c.Scheduler = playback.WallClock
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Play"})
	return nil
}

// Service plays the stored schedules on a viewer.
type Service struct {
	repo      storage.ScheduleRepository
	viewer    viewer.Viewer
	scheduler playback.Scheduler
	logger    log.Logger
}

// NewService creates a new play service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		repo:      cfg.Repository,
		viewer:    cfg.Viewer,
		scheduler: cfg.Scheduler,
		logger:    cfg.Logger,
	}, nil
}

// Request represents the play request parameters.
type Request struct {
	ModelID     string
	Interval    time.Duration
	Theming     bool
	ActiveColor *viewer.Color
	// Progress is optional, receives every simulated day.
	Progress playback.ProgressReporter
}

// Result is the summary of a playback.
type Result struct {
	// Days is the number of simulated days.
	Days int
	// Finished is true only when the playback ran past the last day by itself.
	Finished bool
}

// Run plays the model schedule until the last day or until the context is
// cancelled, in that case the playback is stopped and the viewer restored.
func (s *Service) Run(ctx context.Context, req Request) (*Result, error) {
	schedule, err := s.repo.GetSchedule(ctx, req.ModelID)
	if err != nil {
		return nil, fmt.Errorf("could not get schedule: %w", err)
	}
	if len(schedule.Tasks) == 0 {
		return nil, fmt.Errorf("schedule %s has no tasks: %w", req.ModelID, model.ErrPrecondition)
	}

	store, err := taskstore.NewFromSchedule(taskstore.StoreConfig{Logger: s.logger}, *schedule)
	if err != nil {
		return nil, fmt.Errorf("could not load schedule tasks: %w", err)
	}

	// Progress is reported with the controller lock held, it doesn't need extra sync.
	res := &Result{}
	reporter := playback.ProgressReporterFunc(func(p playback.Progress) {
		res.Days++
		if req.Progress != nil {
			req.Progress.ReportProgress(p)
		}
	})

	ctrl, err := playback.NewController(playback.ControllerConfig{
		Tasks:       store,
		Viewer:      s.viewer,
		Scheduler:   s.scheduler,
		Interval:    req.Interval,
		Theming:     req.Theming,
		ActiveColor: req.ActiveColor,
		Progress:    reporter,
		Logger:      s.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create playback controller: %w", err)
	}

	if err := ctrl.Start(); err != nil {
		return nil, fmt.Errorf("could not start playback: %w", err)
	}

	select {
	case <-ctrl.Done():
	case <-ctx.Done():
		s.logger.Infof("Playback of schedule %s cancelled", req.ModelID)
	}

	// Stopping takes the controller lock, no progress is reported after it.
	ctrl.Stop()
	res.Finished = ctrl.Finished()

	return res, nil
}
