package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/slok/fourd/internal/log"
	"github.com/slok/fourd/internal/model"
	utilsfile "github.com/slok/fourd/internal/utils/file"
)

const recordExt = ".json"

// RepositoryConfig is the configuration for the file repository.
type RepositoryConfig struct {
	// Dir is the directory where the schedule records are stored, one JSON file per model.
	Dir    string
	Logger log.Logger
}

func (c *RepositoryConfig) defaults() error {
	if c.Dir == "" {
		return fmt.Errorf("dir is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.File"})
	return nil
}

// Repository is a JSON file implementation of storage.ScheduleRepository.
type Repository struct {
	dir    string
	mu     sync.RWMutex
	logger log.Logger
}

// NewRepository creates a new file repository, the directory is created if missing.
func NewRepository(cfg RepositoryConfig) (*Repository, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	if err := os.MkdirAll(cfg.Dir, 0755); err != nil {
		return nil, fmt.Errorf("could not create schedules directory: %w", err)
	}

	return &Repository{dir: cfg.Dir, logger: cfg.Logger}, nil
}

// SaveSchedule writes the schedule record atomically, replacing the previous one.
func (r *Repository) SaveSchedule(ctx context.Context, s model.Schedule) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("invalid schedule: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(toRecord(s), "", "  ")
	if err != nil {
		return fmt.Errorf("could not marshal schedule: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := utilsfile.AtomicWrite(r.path(s.ModelID), data); err != nil {
		return fmt.Errorf("could not write schedule: %w", err)
	}

	r.logger.Debugf("Saved schedule %s on %s", s.ModelID, r.path(s.ModelID))
	return nil
}

// GetSchedule reads the schedule record of a model.
func (r *Repository) GetSchedule(ctx context.Context, modelID string) (*model.Schedule, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, err := readRecord(r.path(modelID))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("schedule %s: %w", modelID, model.ErrNotFound)
		}
		return nil, err
	}

	// Different model IDs can share a sanitized file name.
	if rec.ModelID != modelID {
		return nil, fmt.Errorf("schedule %s: %w", modelID, model.ErrNotFound)
	}

	s, err := rec.toModel()
	if err != nil {
		return nil, fmt.Errorf("invalid schedule record %s: %w", modelID, err)
	}

	return s, nil
}

// ListSchedules returns the summaries of all the records of the directory sorted by model ID.
// Unreadable records are logged and ignored.
func (r *Repository) ListSchedules(ctx context.Context) ([]model.ScheduleSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, fmt.Errorf("could not read schedules directory: %w", err)
	}

	summaries := []model.ScheduleSummary{}
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if e.IsDir() || filepath.Ext(e.Name()) != recordExt || strings.HasPrefix(e.Name(), ".") {
			continue
		}

		rec, err := readRecord(filepath.Join(r.dir, e.Name()))
		if err != nil {
			r.logger.Warningf("Ignoring schedule record %s: %s", e.Name(), err)
			continue
		}
		summaries = append(summaries, model.ScheduleSummary{
			ModelID:   rec.ModelID,
			TaskCount: len(rec.Tasks),
			Revision:  rec.Revision,
			UpdatedAt: rec.UpdatedAt.UTC(),
		})
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].ModelID < summaries[j].ModelID })

	return summaries, nil
}

// DeleteSchedule removes the schedule record of a model.
func (r *Repository) DeleteSchedule(ctx context.Context, modelID string) error {
	if _, err := r.GetSchedule(ctx, modelID); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := os.Remove(r.path(modelID)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("schedule %s: %w", modelID, model.ErrNotFound)
		}
		return fmt.Errorf("could not delete schedule: %w", err)
	}

	r.logger.Debugf("Deleted schedule from repository: %s", modelID)
	return nil
}

func (r *Repository) path(modelID string) string {
	return filepath.Join(r.dir, FileName(modelID))
}

// FileName returns the record file name of a model, characters that are not
// safe on file names are replaced.
func FileName(modelID string) string {
	var b strings.Builder
	for _, c := range modelID {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_':
			b.WriteRune(c)
		default:
			b.WriteRune('_')
		}
	}
	return b.String() + recordExt
}

func readRecord(path string) (*record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("could not decode %s: %w", filepath.Base(path), err)
	}

	return &rec, nil
}

type record struct {
	ModelID    string       `json:"modelId"`
	Tasks      []taskRecord `json:"tasks"`
	NextTaskID int          `json:"nextTaskId,omitempty"`
	Revision   string       `json:"revision,omitempty"`
	UpdatedAt  time.Time    `json:"updatedAt"`
}

type taskRecord struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	Start           string `json:"start"`
	End             string `json:"end"`
	Elements        []int  `json:"elements"`
	ExternalID      string `json:"externalId,omitempty"`
	Type            string `json:"type,omitempty"`
	Dependencies    []int  `json:"dependencies,omitempty"`
	PercentComplete *int   `json:"percentComplete,omitempty"`
}

func toRecord(s model.Schedule) record {
	rec := record{
		ModelID:    s.ModelID,
		Tasks:      make([]taskRecord, 0, len(s.Tasks)),
		NextTaskID: s.NextTaskID,
		Revision:   s.Revision,
		UpdatedAt:  s.UpdatedAt.UTC(),
	}

	for _, t := range s.Tasks {
		elements := make([]int, 0, len(t.Elements))
		for _, e := range t.Elements {
			elements = append(elements, int(e))
		}
		rec.Tasks = append(rec.Tasks, taskRecord{
			ID:              t.ID,
			Name:            t.Name,
			Start:           model.FormatDate(t.Start),
			End:             model.FormatDate(t.End),
			Elements:        elements,
			ExternalID:      t.ExternalID,
			Type:            string(t.Type),
			Dependencies:    t.Dependencies,
			PercentComplete: t.PercentComplete,
		})
	}

	return rec
}

func (r record) toModel() (*model.Schedule, error) {
	s := &model.Schedule{
		ModelID:    r.ModelID,
		Tasks:      make([]model.Task, 0, len(r.Tasks)),
		NextTaskID: r.NextTaskID,
		Revision:   r.Revision,
		UpdatedAt:  r.UpdatedAt.UTC(),
	}

	maxID := 0
	for _, tr := range r.Tasks {
		start, err := model.ParseDate(tr.Start)
		if err != nil {
			return nil, fmt.Errorf("task %d start: %w", tr.ID, err)
		}
		end, err := model.ParseDate(tr.End)
		if err != nil {
			return nil, fmt.Errorf("task %d end: %w", tr.ID, err)
		}

		t := model.Task{
			ID:              tr.ID,
			ExternalID:      tr.ExternalID,
			Name:            tr.Name,
			Type:            model.TaskType(tr.Type),
			Start:           start,
			End:             end,
			Dependencies:    tr.Dependencies,
			Elements:        make([]model.ElementID, 0, len(tr.Elements)),
			PercentComplete: tr.PercentComplete,
		}
		for _, e := range tr.Elements {
			t.Elements = append(t.Elements, model.ElementID(e))
		}
		t.Recompute()
		s.Tasks = append(s.Tasks, t)

		maxID = max(maxID, t.ID)
	}

	// Records written by other tools don't carry the ID counter.
	if s.NextTaskID <= maxID {
		s.NextTaskID = maxID + 1
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	return s, nil
}
