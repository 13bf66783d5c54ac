package criticalpath

import (
	"context"
	"fmt"

	"github.com/slok/fourd/internal/log"
	"github.com/slok/fourd/internal/model"
	"github.com/slok/fourd/internal/storage"
	"github.com/slok/fourd/internal/timeline"
)

// ServiceConfig is the configuration for the critical path service.
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
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.CriticalPath"})
	return nil
}

// Service computes the critical path of the stored schedules.
type Service struct {
	repo   storage.ScheduleRepository
	logger log.Logger
}

// NewService creates a new critical path service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		repo:   cfg.Repository,
		logger: cfg.Logger,
	}, nil
}

// Request represents the critical path request parameters.
type Request struct {
	ModelID string
}

// Result is the critical path of a schedule.
type Result struct {
	// Tasks are the critical tasks in schedule order.
	Tasks []model.Task
	// Days is the total duration in days of the longest chain.
	Days int
}

// Run returns the critical tasks of the model schedule. Dependency cycles fail
// with an error wrapping model.ErrCyclicDependency.
func (s *Service) Run(ctx context.Context, req Request) (*Result, error) {
	schedule, err := s.repo.GetSchedule(ctx, req.ModelID)
	if err != nil {
		return nil, fmt.Errorf("could not get schedule: %w", err)
	}

	critical, err := timeline.CriticalPath(schedule.Tasks)
	if err != nil {
		return nil, fmt.Errorf("could not compute critical path: %w", err)
	}

	res := &Result{Tasks: []model.Task{}}
	for _, t := range schedule.Tasks {
		if critical[t.ID] {
			res.Tasks = append(res.Tasks, t)
		}
	}
	res.Days = longestChain(schedule.Tasks, critical)

	s.logger.Debugf("Schedule %s has %d critical tasks (%d days)", req.ModelID, len(res.Tasks), res.Days)

	return res, nil
}

// longestChain returns the total duration of the longest chain made of critical
// tasks, critical sets are closed under the chains they belong to.
func longestChain(tasks []model.Task, critical map[int]bool) int {
	byID := map[int]model.Task{}
	for _, t := range tasks {
		if critical[t.ID] {
			byID[t.ID] = t
		}
	}

	memo := map[int]int{}
	var finish func(id int) int
	finish = func(id int) int {
		if v, ok := memo[id]; ok {
			return v
		}
		t := byID[id]
		best := 0
		for _, dep := range t.Dependencies {
			if _, ok := byID[dep]; ok && dep != id {
				best = max(best, finish(dep))
			}
		}
		memo[id] = best + model.DaysBetween(t.Start, t.End) + 1
		return memo[id]
	}

	total := 0
	for id := range byID {
		total = max(total, finish(id))
	}
	return total
}
