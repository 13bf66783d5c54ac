package model

import (
	"crypto/rand"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// Schedule is the persisted bundle of tasks attached to a 3D model.
type Schedule struct {
	ModelID    string
	Tasks      []Task
	NextTaskID int
	Revision   string
	UpdatedAt  time.Time
}

// Validate validates the schedule.
func (s Schedule) Validate() error {
	if strings.TrimSpace(s.ModelID) == "" {
		return fmt.Errorf("model id is required: %w", ErrNotValid)
	}

	ids := map[int]struct{}{}
	for _, t := range s.Tasks {
		if t.ID <= 0 {
			return fmt.Errorf("task %q has an invalid id %d: %w", t.Name, t.ID, ErrNotValid)
		}
		if _, ok := ids[t.ID]; ok {
			return fmt.Errorf("task id %d is duplicated: %w", t.ID, ErrNotValid)
		}
		ids[t.ID] = struct{}{}

		if err := t.Validate(); err != nil {
			return fmt.Errorf("task %d: %w", t.ID, err)
		}
	}

	return nil
}

// ScheduleSummary is the light representation of a schedule used on listings.
type ScheduleSummary struct {
	ModelID   string
	TaskCount int
	Revision  string
	UpdatedAt time.Time
}

// Clone returns a deep copy of the schedule.
func (s Schedule) Clone() Schedule {
	c := s
	c.Tasks = make([]Task, 0, len(s.Tasks))
	for _, t := range s.Tasks {
		c.Tasks = append(c.Tasks, t.Clone())
	}
	return c
}

// Summary returns the listing representation of the schedule.
func (s Schedule) Summary() ScheduleSummary {
	return ScheduleSummary{
		ModelID:   s.ModelID,
		TaskCount: len(s.Tasks),
		Revision:  s.Revision,
		UpdatedAt: s.UpdatedAt,
	}
}

// Stamp marks the schedule as a new revision saved at the received time.
func (s *Schedule) Stamp(now time.Time) {
	s.Revision = ulid.MustNew(ulid.Timestamp(now), rand.Reader).String()
	s.UpdatedAt = now.UTC().Truncate(time.Second)
}
