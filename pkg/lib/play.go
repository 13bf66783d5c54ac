package lib

import (
	"context"
	"fmt"
	"time"

	"github.com/slok/fourd/internal/app/play"
	"github.com/slok/fourd/internal/playback"
	"github.com/slok/fourd/internal/viewer"
)

// PlayOpts configures a schedule playback.
type PlayOpts struct {
	// Interval is the time between simulated days. Default: 500ms.
	Interval time.Duration
	// NoTheming doesn't color the elements of the active tasks.
	NoTheming bool
	// ActiveColor is the color of the active elements. Default: semi transparent blue.
	ActiveColor *Color
	// OnProgress is called after every simulated day, from the playback goroutine.
	OnProgress func(p PlayProgress)
}

// Play simulates the model schedule day by day on the viewer, isolating the
// elements of the tasks active on each day.
//
// The first day is shown immediately, Play blocks until the last day is shown
// or ctx is cancelled. On both cases the viewer is restored before returning.
// Cancelling ctx is not an error, check [PlayResult].Finished.
//
// Pass nil opts to use the defaults. Returns [ErrNotFound] if the schedule does
// not exist or [ErrPrecondition] if it has no tasks.
func (c *Client) Play(ctx context.Context, modelID string, v Viewer, opts *PlayOpts) (*PlayResult, error) {
	if v == nil {
		return nil, fmt.Errorf("viewer is required: %w", ErrNotValid)
	}
	if opts == nil {
		opts = &PlayOpts{}
	}

	var color *viewer.Color
	if opts.ActiveColor != nil {
		color = &viewer.Color{R: opts.ActiveColor.R, G: opts.ActiveColor.G, B: opts.ActiveColor.B, A: opts.ActiveColor.A}
	}

	var progress playback.ProgressReporter
	if opts.OnProgress != nil {
		progress = playback.ProgressReporterFunc(func(p playback.Progress) {
			opts.OnProgress(fromInternalProgress(p))
		})
	}

	svc, err := play.NewService(play.ServiceConfig{
		Repository: c.repo,
		Viewer:     viewerAdapter{v: v},
		Logger:     c.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create service: %w", err)
	}

	res, err := svc.Run(ctx, play.Request{
		ModelID:     modelID,
		Interval:    opts.Interval,
		Theming:     !opts.NoTheming,
		ActiveColor: color,
		Progress:    progress,
	})
	if err != nil {
		return nil, mapError(err)
	}

	return &PlayResult{Days: res.Days, Finished: res.Finished}, nil
}
