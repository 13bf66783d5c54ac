package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/fourd/internal/app/importschedule"
	"github.com/slok/fourd/internal/app/layout"
	"github.com/slok/fourd/internal/watch"
)

// WatchCommand re-imports a schedule file every time it changes and redraws its chart.
type WatchCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	path     string
	modelID  string
	format   string
	merge    bool
	chart    string
	out      string
	debounce time.Duration
}

// NewWatchCommand returns the watch command.
func NewWatchCommand(rootCmd *RootCommand, app *kingpin.Application) *WatchCommand {
	c := &WatchCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("watch", "Watch a schedule file, re-importing it and redrawing the chart on every change.")
	c.Cmd.Arg("file", "Schedule file.").Required().StringVar(&c.path)
	c.Cmd.Flag("model", "Model ID, JSON schedules can carry it.").Short('m').StringVar(&c.modelID)
	c.Cmd.Flag("format", "Source format (auto, csv, json).").Default(formatAuto).EnumVar(&c.format, formatAuto, formatCSV, formatJSON)
	c.Cmd.Flag("merge", "Merge the changes into the current model tasks instead of replacing them.").BoolVar(&c.merge)
	c.Cmd.Flag("chart", "Chart format (text, svg, json).").Default(formatText).EnumVar(&c.chart, formatText, formatSVG, formatJSON)
	c.Cmd.Flag("out", "Write the chart to this file instead of the standard output.").StringVar(&c.out)
	c.Cmd.Flag("debounce", "Time to group file changes.").Default("100ms").DurationVar(&c.debounce)

	return c
}

func (c WatchCommand) Name() string { return c.Cmd.FullCommand() }

func (c WatchCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	cfg, err := c.rootCmd.loadConfig(ctx)
	if err != nil {
		return err
	}

	repo, err := c.rootCmd.newRepository(ctx)
	if err != nil {
		return err
	}

	importSvc, err := importschedule.NewService(importschedule.ServiceConfig{
		Repository: repo,
		Columns:    cfg.Import.Columns,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("could not create import service: %w", err)
	}

	layoutSvc, err := layout.NewService(layout.ServiceConfig{
		Repository: repo,
		Geometry:   geometry(cfg.Layout),
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("could not create layout service: %w", err)
	}

	refresh := func(ctx context.Context) error {
		f, err := os.Open(c.path)
		if err != nil {
			return fmt.Errorf("could not open schedule file: %w", err)
		}
		defer f.Close()

		res, err := importSvc.Run(ctx, importschedule.Request{
			ModelID: c.modelID,
			Source:  f,
			Format:  importFormat(c.path, c.format),
			Replace: !c.merge,
		})
		if err != nil {
			return fmt.Errorf("could not import schedule: %w", err)
		}
		for _, e := range res.Report.Errors {
			logger.Warningf("Row not imported: %s", e)
		}
		logger.Infof("Imported %d tasks into %s (revision %s)", len(res.Report.Created), res.Schedule.ModelID, res.Schedule.Revision)

		return drawChart(ctx, layoutSvc, layout.Request{ModelID: res.Schedule.ModelID}, c.chart, c.out, c.rootCmd)
	}

	// Start the watch before the first import so no change is lost.
	w, err := watch.NewWatcher(watch.WatcherConfig{
		Path:     c.path,
		Debounce: c.debounce,
		OnChange: refresh,
		Logger:   logger,
	})
	if err != nil {
		return fmt.Errorf("could not create watcher: %w", err)
	}

	if err := refresh(ctx); err != nil {
		logger.Errorf("Could not refresh schedule: %s", err)
	}

	logger.Infof("Watching %s", c.path)
	return w.Run(ctx)
}
