package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/alecthomas/kingpin/v2"
	"k8s.io/client-go/util/homedir"

	"github.com/slok/fourd/internal/conventions"
	"github.com/slok/fourd/internal/log"
	"github.com/slok/fourd/internal/model"
	"github.com/slok/fourd/internal/storage"
	"github.com/slok/fourd/internal/storage/file"
	storageio "github.com/slok/fourd/internal/storage/io"
	"github.com/slok/fourd/internal/storage/sqlite"
	"github.com/slok/fourd/internal/timeline"
)

const (
	// LoggerTypeDefault is the logger default type.
	LoggerTypeDefault = "default"
	// LoggerTypeJSON is the logger json type.
	LoggerTypeJSON = "json"
)

const (
	// StorageSQLite stores the schedules on a SQLite database.
	StorageSQLite = "sqlite"
	// StorageFile stores every schedule as a JSON file on a directory.
	StorageFile = "file"
)

// Command represents an application command, all commands that want to be executed
// should implement and setup on main.
type Command interface {
	Name() string
	Run(ctx context.Context) error
}

// RootCommand represents the root command configuration and global configuration
// for all the commands.
type RootCommand struct {
	// Global flags.
	Debug        bool
	NoLog        bool
	NoColor      bool
	LoggerType   string
	Storage      string
	DBPath       string
	SchedulesDir string
	ConfigPath   string

	// Global instances.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger log.Logger
}

// NewRootCommand initializes the main root configuration.
func NewRootCommand(app *kingpin.Application) *RootCommand {
	c := &RootCommand{}

	app.Flag("debug", "Enable debug mode.").BoolVar(&c.Debug)
	app.Flag("no-log", "Disable logger.").Envar("FOURD_NO_LOG").BoolVar(&c.NoLog)
	app.Flag("no-color", "Disable logger color.").BoolVar(&c.NoColor)
	app.Flag("logger", "Selects the logger type.").Default(LoggerTypeDefault).EnumVar(&c.LoggerType, LoggerTypeDefault, LoggerTypeJSON)
	app.Flag("storage", "Selects the schedule storage.").Default(StorageSQLite).EnumVar(&c.Storage, StorageSQLite, StorageFile)

	dataDir := filepath.Join(homedir.HomeDir(), conventions.DefaultDataDir)
	defaultDBPath := conventions.DBPath(dataDir)
	app.Flag("db-path", "Path to the SQLite database file.").Envar("FOURD_DB_PATH").Default(defaultDBPath).StringVar(&c.DBPath)

	defaultSchedulesDir := conventions.SchedulesPath(dataDir)
	app.Flag("schedules-dir", "Directory of the schedule JSON files, used by the file storage.").Default(defaultSchedulesDir).StringVar(&c.SchedulesDir)

	app.Flag("config", "Path to the engine YAML configuration file.").StringVar(&c.ConfigPath)

	return c
}

// newRepository returns the schedule repository selected by the global flags.
func (c RootCommand) newRepository(ctx context.Context) (storage.ScheduleRepository, error) {
	switch c.Storage {
	case StorageFile:
		repo, err := file.NewRepository(file.RepositoryConfig{
			Dir:    c.SchedulesDir,
			Logger: c.Logger,
		})
		if err != nil {
			return nil, fmt.Errorf("could not create file repository: %w", err)
		}
		return repo, nil
	default:
		repo, err := sqlite.NewRepository(ctx, sqlite.RepositoryConfig{
			DBPath: c.DBPath,
			Logger: c.Logger,
		})
		if err != nil {
			return nil, fmt.Errorf("could not create repository: %w", err)
		}
		return repo, nil
	}
}

// loadConfig returns the engine configuration, the defaults are used when no
// configuration file is set.
func (c RootCommand) loadConfig(ctx context.Context) (model.EngineConfig, error) {
	if c.ConfigPath == "" {
		return model.DefaultEngineConfig(), nil
	}

	configPath := c.ConfigPath
	if !filepath.IsAbs(configPath) {
		absPath, err := filepath.Abs(configPath)
		if err != nil {
			return model.EngineConfig{}, fmt.Errorf("could not resolve config path: %w", err)
		}
		configPath = absPath
	}

	configRepo := storageio.NewConfigYAMLRepository(os.DirFS("/"))
	cfg, err := configRepo.GetConfig(ctx, configPath[1:])
	if err != nil {
		return model.EngineConfig{}, fmt.Errorf("could not load config: %w", err)
	}

	return cfg, nil
}

// geometry returns the timeline geometry of the layout configuration.
func geometry(cfg model.LayoutConfig) timeline.Geometry {
	g := timeline.DefaultGeometry()
	g.Width = cfg.Width
	g.RowHeight = cfg.RowHeight
	g.BarHeight = cfg.BarHeight
	return g
}
