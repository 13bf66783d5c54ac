package lib

import (
	"context"
	"fmt"
	"io"

	"github.com/slok/fourd/internal/app/layout"
	"github.com/slok/fourd/internal/printer"
	"github.com/slok/fourd/internal/timeline"
)

// ChartFormat is the output format of a rendered Gantt chart.
type ChartFormat string

const (
	// ChartFormatText is a plain text chart, one character per day.
	ChartFormatText ChartFormat = "text"
	// ChartFormatSVG is an SVG document with the bars and the dependency connectors.
	ChartFormatSVG ChartFormat = "svg"
	// ChartFormatJSON is the chart geometry as JSON, for custom renderers.
	ChartFormatJSON ChartFormat = "json"
)

// RenderOpts configures a Gantt chart render.
type RenderOpts struct {
	// Format of the output. Default: [ChartFormatSVG].
	Format ChartFormat
	// Width is the pixel width of the day area. Default: 1000.
	Width float64
	// RowHeight is the pixel height of a task row. Default: 28.
	RowHeight float64
	// BarHeight is the pixel height of a task bar. Default: 18.
	BarHeight float64
	// NoToday omits the today marker.
	NoToday bool
}

// RenderGantt lays out the model schedule as a Gantt chart and writes it to w.
//
// Dependency cycles don't fail the render, the chart is drawn without critical
// path and with a warning. Pass nil opts to render the default SVG chart.
//
// Returns [ErrNotFound] if the schedule does not exist.
func (c *Client) RenderGantt(ctx context.Context, modelID string, w io.Writer, opts *RenderOpts) error {
	if opts == nil {
		opts = &RenderOpts{}
	}

	var p printer.ChartPrinter
	switch opts.Format {
	case "", ChartFormatSVG:
		p = printer.NewSVGPrinter(w)
	case ChartFormatText:
		p = printer.NewGanttTextPrinter(w)
	case ChartFormatJSON:
		p = printer.NewJSONPrinter(w)
	default:
		return fmt.Errorf("unsupported chart format: %s: %w", opts.Format, ErrNotValid)
	}

	g := timeline.DefaultGeometry()
	if opts.Width > 0 {
		g.Width = opts.Width
	}
	if opts.RowHeight > 0 {
		g.RowHeight = opts.RowHeight
	}
	if opts.BarHeight > 0 {
		g.BarHeight = opts.BarHeight
	}

	svc, err := layout.NewService(layout.ServiceConfig{
		Repository: c.repo,
		Geometry:   g,
		TimeNow:    c.timeNow,
		Logger:     c.logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	chart, err := svc.Run(ctx, layout.Request{ModelID: modelID, NoToday: opts.NoToday})
	if err != nil {
		return mapError(err)
	}

	if err := p.PrintChart(*chart); err != nil {
		return fmt.Errorf("could not print chart: %w", err)
	}

	return nil
}
