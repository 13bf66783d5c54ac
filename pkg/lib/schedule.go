package lib

import (
	"context"
	"fmt"
	"io"

	"github.com/slok/fourd/internal/app/importschedule"
	"github.com/slok/fourd/internal/app/schedulelist"
	"github.com/slok/fourd/internal/app/scheduleremove"
	"github.com/slok/fourd/internal/app/scheduleshow"
)

// ImportSchedule imports the tasks of a scheduling tool export into the model
// schedule.
//
// By default the imported tasks are merged into the current ones, set
// opts.Replace to sync the schedule with the source, keeping the IDs and
// elements of the tasks matched by source ID. Rows that can't be imported are returned on
// the result instead of failing the import. JSON sources can carry the model ID,
// in that case modelID can be empty.
//
// Pass nil opts to import a CSV source with the default columns.
func (c *Client) ImportSchedule(ctx context.Context, modelID string, source io.Reader, opts *ImportOpts) (*ImportResult, error) {
	if opts == nil {
		opts = &ImportOpts{}
	}

	format := importschedule.FormatCSV
	switch opts.Format {
	case "", ImportFormatCSV:
	case ImportFormatJSON:
		format = importschedule.FormatJSON
	default:
		return nil, fmt.Errorf("unsupported import format: %s: %w", opts.Format, ErrNotValid)
	}

	svc, err := importschedule.NewService(importschedule.ServiceConfig{
		Repository: c.repo,
		Columns:    opts.Columns,
		TimeNow:    c.timeNow,
		Logger:     c.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create service: %w", err)
	}

	res, err := svc.Run(ctx, importschedule.Request{
		ModelID: modelID,
		Source:  source,
		Format:  format,
		Replace: opts.Replace,
	})
	if err != nil {
		return nil, mapError(err)
	}

	out := fromInternalImportReport(res.Schedule, res.Report)
	return &out, nil
}

// ListSchedules returns the summary of all the stored schedules ordered by model ID.
func (c *Client) ListSchedules(ctx context.Context) ([]ScheduleSummary, error) {
	svc, err := schedulelist.NewService(schedulelist.ServiceConfig{
		Repository: c.repo,
		Logger:     c.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create service: %w", err)
	}

	result, err := svc.Run(ctx, schedulelist.Request{})
	if err != nil {
		return nil, mapError(err)
	}

	return fromInternalScheduleSummaryList(result), nil
}

// GetSchedule returns the schedule of a model.
//
// Returns [ErrNotFound] if the schedule does not exist.
func (c *Client) GetSchedule(ctx context.Context, modelID string) (*Schedule, error) {
	svc, err := scheduleshow.NewService(scheduleshow.ServiceConfig{
		Repository: c.repo,
		Logger:     c.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create service: %w", err)
	}

	result, err := svc.Run(ctx, scheduleshow.Request{ModelID: modelID})
	if err != nil {
		return nil, mapError(err)
	}

	out := fromInternalSchedule(*result)
	return &out, nil
}

// RemoveSchedule removes the schedule of a model with all its tasks and returns
// its summary.
//
// Returns [ErrNotFound] if the schedule does not exist.
func (c *Client) RemoveSchedule(ctx context.Context, modelID string) (*ScheduleSummary, error) {
	svc, err := scheduleremove.NewService(scheduleremove.ServiceConfig{
		Repository: c.repo,
		Logger:     c.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create service: %w", err)
	}

	result, err := svc.Run(ctx, scheduleremove.Request{ModelID: modelID})
	if err != nil {
		return nil, mapError(err)
	}

	out := fromInternalScheduleSummary(*result)
	return &out, nil
}
