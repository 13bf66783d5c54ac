package storage

import (
	"context"

	"github.com/slok/fourd/internal/model"
)

// ScheduleRepository is the interface for schedule persistence.
type ScheduleRepository interface {
	// SaveSchedule creates or replaces the whole schedule of a model.
	SaveSchedule(ctx context.Context, s model.Schedule) error
	GetSchedule(ctx context.Context, modelID string) (*model.Schedule, error)
	ListSchedules(ctx context.Context) ([]model.ScheduleSummary, error)
	DeleteSchedule(ctx context.Context, modelID string) error
}
