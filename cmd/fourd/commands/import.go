package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/fourd/internal/app/importschedule"
	"github.com/slok/fourd/internal/importer"
)

// ImportCommand imports a tabular schedule into a model schedule.
type ImportCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	path    string
	modelID string
	format  string
	replace bool
	columns []string
	output  string
}

// NewImportCommand returns the import command.
func NewImportCommand(rootCmd *RootCommand, app *kingpin.Application) *ImportCommand {
	c := &ImportCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("import", "Import a schedule (CSV or JSON) into a model.")
	c.Cmd.Arg("file", "Schedule file, use '-' for the standard input.").Required().StringVar(&c.path)
	c.Cmd.Flag("model", "Model ID, JSON schedules can carry it.").Short('m').StringVar(&c.modelID)
	c.Cmd.Flag("format", "Source format (auto, csv, json).").Default(formatAuto).EnumVar(&c.format, formatAuto, formatCSV, formatJSON)
	c.Cmd.Flag("replace", "Sync the model tasks with the file (matched by source ID) instead of merging into them.").BoolVar(&c.replace)
	c.Cmd.Flag("column", "Extra header name for a column as column=header (can be repeated).").StringsVar(&c.columns)
	c.Cmd.Flag("output", "Output format (table, json).").Short('o').Default(formatTable).EnumVar(&c.output, formatTable, formatJSON)

	return c
}

func (c ImportCommand) Name() string { return c.Cmd.FullCommand() }

func (c ImportCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	cfg, err := c.rootCmd.loadConfig(ctx)
	if err != nil {
		return err
	}

	flagColumns, err := parseColumnSpecs(c.columns)
	if err != nil {
		return err
	}

	repo, err := c.rootCmd.newRepository(ctx)
	if err != nil {
		return err
	}

	svc, err := importschedule.NewService(importschedule.ServiceConfig{
		Repository: repo,
		Columns:    importer.Columns(cfg.Import.Columns).Merge(flagColumns),
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	var src io.Reader = c.rootCmd.Stdin
	if c.path != "-" {
		f, err := os.Open(c.path)
		if err != nil {
			return fmt.Errorf("could not open schedule file: %w", err)
		}
		defer f.Close()
		src = f
	}

	res, err := svc.Run(ctx, importschedule.Request{
		ModelID: c.modelID,
		Source:  src,
		Format:  importFormat(c.path, c.format),
		Replace: c.replace,
	})
	if err != nil {
		return fmt.Errorf("could not import schedule: %w", err)
	}

	p := newPrinter(c.output, c.rootCmd.Stdout)
	if err := p.PrintImportReport(res.Schedule.Summary(), res.Report); err != nil {
		return fmt.Errorf("could not print report: %w", err)
	}

	return nil
}
