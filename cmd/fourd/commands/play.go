package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/fourd/internal/app/play"
	"github.com/slok/fourd/internal/playback"
	"github.com/slok/fourd/internal/printer"
	"github.com/slok/fourd/internal/viewer"
	"github.com/slok/fourd/internal/viewer/term"
)

// PlayCommand plays a model schedule day by day.
type PlayCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	modelID   string
	interval  time.Duration
	noTheming bool
	verbose   bool
}

// NewPlayCommand returns the play command.
func NewPlayCommand(rootCmd *RootCommand, app *kingpin.Application) *PlayCommand {
	c := &PlayCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("play", "Play a model schedule day by day, the viewer commands are written to the standard output.")
	c.Cmd.Arg("model", "Model ID.").Required().StringVar(&c.modelID)
	c.Cmd.Flag("interval", "Time between simulated days, the configured one by default.").DurationVar(&c.interval)
	c.Cmd.Flag("no-theming", "Don't color the elements of the active tasks.").BoolVar(&c.noTheming)
	c.Cmd.Flag("verbose", "Write the theming commands too.").BoolVar(&c.verbose)

	return c
}

func (c PlayCommand) Name() string { return c.Cmd.FullCommand() }

func (c PlayCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger
	out := c.rootCmd.Stdout

	cfg, err := c.rootCmd.loadConfig(ctx)
	if err != nil {
		return err
	}

	interval := cfg.Playback.Interval
	if c.interval > 0 {
		interval = c.interval
	}

	repo, err := c.rootCmd.newRepository(ctx)
	if err != nil {
		return err
	}

	svc, err := play.NewService(play.ServiceConfig{
		Repository: repo,
		Viewer:     term.NewViewer(out, c.verbose),
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	color := viewer.ColorFromArray(cfg.Playback.ActiveColor)
	res, err := svc.Run(ctx, play.Request{
		ModelID:     c.modelID,
		Interval:    interval,
		Theming:     cfg.Playback.Theming && !c.noTheming,
		ActiveColor: &color,
		Progress: playback.ProgressReporterFunc(func(p playback.Progress) {
			fmt.Fprintln(out, printer.FormatProgress(p))
		}),
	})
	if err != nil {
		return fmt.Errorf("could not play schedule: %w", err)
	}

	if !res.Finished {
		fmt.Fprintf(out, "Playback stopped after %s\n", printer.FormatDays(res.Days))
		return nil
	}
	fmt.Fprintf(out, "Playback finished, %s simulated\n", printer.FormatDays(res.Days))

	return nil
}
