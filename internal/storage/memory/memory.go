package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/slok/fourd/internal/log"
	"github.com/slok/fourd/internal/model"
)

// RepositoryConfig is the configuration for the memory repository.
type RepositoryConfig struct {
	Logger log.Logger
}

func (c *RepositoryConfig) defaults() error {
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.Memory"})
	return nil
}

// Repository is an in-memory implementation of storage.ScheduleRepository.
type Repository struct {
	schedules map[string]model.Schedule
	mu        sync.RWMutex
	logger    log.Logger
}

// NewRepository creates a new memory repository.
func NewRepository(cfg RepositoryConfig) (*Repository, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Repository{
		schedules: make(map[string]model.Schedule),
		logger:    cfg.Logger,
	}, nil
}

// SaveSchedule creates or replaces the schedule of a model.
func (r *Repository) SaveSchedule(ctx context.Context, s model.Schedule) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("invalid schedule: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.schedules[s.ModelID] = s.Clone()
	r.logger.Debugf("Saved schedule in repository: %s", s.ModelID)

	return nil
}

// GetSchedule retrieves the schedule of a model.
func (r *Repository) GetSchedule(ctx context.Context, modelID string) (*model.Schedule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.schedules[modelID]
	if !ok {
		return nil, fmt.Errorf("schedule %s: %w", modelID, model.ErrNotFound)
	}

	c := s.Clone()
	return &c, nil
}

// ListSchedules returns the summaries of all schedules sorted by model ID.
func (r *Repository) ListSchedules(ctx context.Context) ([]model.ScheduleSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	summaries := make([]model.ScheduleSummary, 0, len(r.schedules))
	for _, s := range r.schedules {
		summaries = append(summaries, s.Summary())
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].ModelID < summaries[j].ModelID })

	return summaries, nil
}

// DeleteSchedule deletes the schedule of a model.
func (r *Repository) DeleteSchedule(ctx context.Context, modelID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.schedules[modelID]; !ok {
		return fmt.Errorf("schedule %s: %w", modelID, model.ErrNotFound)
	}

	delete(r.schedules, modelID)
	r.logger.Debugf("Deleted schedule from repository: %s", modelID)

	return nil
}
