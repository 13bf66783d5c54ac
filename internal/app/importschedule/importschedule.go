package importschedule

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/slok/fourd/internal/importer"
	"github.com/slok/fourd/internal/log"
	"github.com/slok/fourd/internal/model"
	"github.com/slok/fourd/internal/storage"
	"github.com/slok/fourd/internal/taskstore"
)

// Format is the format of a schedule source.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// ServiceConfig is the configuration for the import service.
type ServiceConfig struct {
	Repository storage.ScheduleRepository
	// Columns are extra header names for the importer columns.
	Columns map[string][]string
	TimeNow func() time.Time
	Logger  log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Repository == nil {
		return fmt.Errorf("repository is required")
	}
	if c.TimeNow == nil {
		c.TimeNow = time.Now
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.ImportSchedule"})
	return nil
}

// Service imports schedule sources into the stored schedules.
type Service struct {
	repo     storage.ScheduleRepository
	importer *importer.Importer
	timeNow  func() time.Time
	logger   log.Logger
}

// NewService creates a new import service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	imp, err := importer.NewImporter(importer.ImporterConfig{Columns: cfg.Columns, Logger: cfg.Logger})
	if err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		repo:     cfg.Repository,
		importer: imp,
		timeNow:  cfg.TimeNow,
		logger:   cfg.Logger,
	}, nil
}

// Request represents the import request parameters.
type Request struct {
	// ModelID is the model the schedule belongs to. JSON sources can carry it.
	ModelID string
	Source  io.Reader
	Format  Format
	// Replace makes the schedule match the source instead of merging into it.
	// Tasks are matched by source ID and keep their ID and elements, the ones
	// missing from the source are removed. IDs of removed tasks are not reused.
	Replace bool
}

// Result is the result of an import.
type Result struct {
	Schedule model.Schedule
	Report   importer.Report
}

// Run imports the source rows into the model schedule and saves it as a new revision.
func (s *Service) Run(ctx context.Context, req Request) (*Result, error) {
	if req.Source == nil {
		return nil, fmt.Errorf("source is required: %w", model.ErrNotValid)
	}

	modelID := strings.TrimSpace(req.ModelID)
	var rows []importer.Row
	switch req.Format {
	case FormatCSV, "":
		r, err := importer.ReadCSV(req.Source)
		if err != nil {
			return nil, fmt.Errorf("could not read CSV source: %w", err)
		}
		rows = r
	case FormatJSON:
		id, r, err := importer.ReadJSON(req.Source)
		if err != nil {
			return nil, fmt.Errorf("could not read JSON source: %w", err)
		}
		if modelID == "" {
			modelID = strings.TrimSpace(id)
		}
		rows = r
	default:
		return nil, fmt.Errorf("unknown source format %q: %w", req.Format, model.ErrNotValid)
	}

	if modelID == "" {
		return nil, fmt.Errorf("model id is required: %w", model.ErrNotValid)
	}

	current, err := s.repo.GetSchedule(ctx, modelID)
	if err != nil {
		if !errors.Is(err, model.ErrNotFound) {
			return nil, fmt.Errorf("could not get schedule: %w", err)
		}
		current = &model.Schedule{ModelID: modelID}
	}

	store, err := taskstore.NewFromSchedule(taskstore.StoreConfig{Logger: s.logger}, *current)
	if err != nil {
		return nil, fmt.Errorf("could not load schedule tasks: %w", err)
	}

	importRows := s.importer.Import
	if req.Replace {
		importRows = s.importer.Replace
	}
	report, err := importRows(ctx, store, rows)
	if err != nil {
		return nil, fmt.Errorf("could not import schedule: %w", err)
	}

	schedule := store.Snapshot(modelID)
	schedule.Stamp(s.timeNow())
	if err := s.repo.SaveSchedule(ctx, schedule); err != nil {
		return nil, fmt.Errorf("could not save schedule: %w", err)
	}

	s.logger.Infof("Imported %d new and %d updated tasks into schedule %s (revision %s)", len(report.Created), len(report.Updated), modelID, schedule.Revision)

	return &Result{Schedule: schedule, Report: *report}, nil
}
