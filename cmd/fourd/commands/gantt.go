package commands

import (
	"bytes"
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/fourd/internal/app/layout"
	utilsfile "github.com/slok/fourd/internal/utils/file"
)

// GanttCommand draws the timeline chart of a model schedule.
type GanttCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	modelID string
	format  string
	out     string
	noToday bool
}

// NewGanttCommand returns the gantt command.
func NewGanttCommand(rootCmd *RootCommand, app *kingpin.Application) *GanttCommand {
	c := &GanttCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("gantt", "Draw the Gantt chart of a model schedule.")
	c.Cmd.Arg("model", "Model ID.").Required().StringVar(&c.modelID)
	c.Cmd.Flag("format", "Chart format (text, svg, json).").Short('f').Default(formatText).EnumVar(&c.format, formatText, formatSVG, formatJSON)
	c.Cmd.Flag("out", "Write the chart to this file instead of the standard output.").StringVar(&c.out)
	c.Cmd.Flag("no-today", "Don't mark the current day.").BoolVar(&c.noToday)

	return c
}

func (c GanttCommand) Name() string { return c.Cmd.FullCommand() }

func (c GanttCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	cfg, err := c.rootCmd.loadConfig(ctx)
	if err != nil {
		return err
	}

	repo, err := c.rootCmd.newRepository(ctx)
	if err != nil {
		return err
	}

	svc, err := layout.NewService(layout.ServiceConfig{
		Repository: repo,
		Geometry:   geometry(cfg.Layout),
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	return drawChart(ctx, svc, layout.Request{ModelID: c.modelID, NoToday: c.noToday}, c.format, c.out, c.rootCmd)
}

// drawChart draws the chart of the request on the output file or the standard
// output when there is no file.
func drawChart(ctx context.Context, svc *layout.Service, req layout.Request, format, out string, rootCmd *RootCommand) error {
	chart, err := svc.Run(ctx, req)
	if err != nil {
		return fmt.Errorf("could not compute chart: %w", err)
	}

	if out == "" {
		if err := newChartPrinter(format, rootCmd.Stdout).PrintChart(*chart); err != nil {
			return fmt.Errorf("could not print chart: %w", err)
		}
		return nil
	}

	var buf bytes.Buffer
	if err := newChartPrinter(format, &buf).PrintChart(*chart); err != nil {
		return fmt.Errorf("could not print chart: %w", err)
	}
	if err := utilsfile.AtomicWrite(out, buf.Bytes()); err != nil {
		return fmt.Errorf("could not write chart: %w", err)
	}
	rootCmd.Logger.Infof("Chart written to %s", out)

	return nil
}
