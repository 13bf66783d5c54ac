package lib

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/slok/fourd/internal/conventions"
	"github.com/slok/fourd/internal/log"
	"github.com/slok/fourd/internal/storage"
	"github.com/slok/fourd/internal/storage/file"
	"github.com/slok/fourd/internal/storage/sqlite"
)

// StorageType identifies where the schedules are stored.
type StorageType string

const (
	// StorageSQLite stores the schedules on a SQLite database.
	StorageSQLite StorageType = "sqlite"

	// StorageFile stores every schedule as a JSON file on a directory.
	// Useful to keep the schedules under version control.
	StorageFile StorageType = "file"
)

// Config configures the SDK client.
//
// All fields are optional and have sensible defaults. An empty Config{} will
// use ~/.fourd/fourd.db for storage.
type Config struct {
	// DataDir is the base directory for fourd data.
	// Default: ~/.fourd.
	DataDir string

	// Storage selects the schedule storage.
	// Default: [StorageSQLite].
	Storage StorageType

	// DBPath is the SQLite database path, used by [StorageSQLite].
	// Default: ~/.fourd/fourd.db.
	DBPath string

	// SchedulesDir is the schedule records directory, used by [StorageFile].
	// Default: ~/.fourd/schedules.
	SchedulesDir string

	// Logger receives structured log output from the SDK.
	// Default: noop (silent). See the log sub-package for the interface.
	Logger log.Logger

	// TimeNow returns the current time, it stamps the schedule revisions and
	// places the today marker on the charts.
	// Default: time.Now.
	TimeNow func() time.Time
}

func (c *Config) defaults() error {
	if c.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("could not get user home dir: %w", err)
		}
		c.DataDir = filepath.Join(home, conventions.DefaultDataDir)
	}

	if c.Storage == "" {
		c.Storage = StorageSQLite
	}

	if c.DBPath == "" {
		c.DBPath = conventions.DBPath(c.DataDir)
	}

	if c.SchedulesDir == "" {
		c.SchedulesDir = conventions.SchedulesPath(c.DataDir)
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}

	if c.TimeNow == nil {
		c.TimeNow = time.Now
	}

	return nil
}

// Client is the main SDK entry point for managing construction schedules
// programmatically.
//
// Create a Client with [New] and release its resources with [Client.Close].
// A Client is safe for concurrent use.
type Client struct {
	repo    storage.ScheduleRepository
	logger  log.Logger
	timeNow func() time.Time
	closeFn func() error
}

// New creates a new SDK client backed by the configured storage.
//
// The caller must call [Client.Close] when done to release the storage.
// Typically used with defer:
//
//	client, err := lib.New(ctx, lib.Config{})
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
func New(ctx context.Context, cfg Config) (*Client, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	switch cfg.Storage {
	case StorageSQLite:
		repo, err := sqlite.NewRepository(ctx, sqlite.RepositoryConfig{
			DBPath: cfg.DBPath,
			Logger: cfg.Logger,
		})
		if err != nil {
			return nil, fmt.Errorf("could not create repository: %w", err)
		}

		return &Client{
			repo:    repo,
			logger:  cfg.Logger,
			timeNow: cfg.TimeNow,
			closeFn: repo.Close,
		}, nil

	case StorageFile:
		repo, err := file.NewRepository(file.RepositoryConfig{
			Dir:    cfg.SchedulesDir,
			Logger: cfg.Logger,
		})
		if err != nil {
			return nil, fmt.Errorf("could not create repository: %w", err)
		}

		return &Client{
			repo:    repo,
			logger:  cfg.Logger,
			timeNow: cfg.TimeNow,
		}, nil

	default:
		return nil, fmt.Errorf("unsupported storage type: %s: %w", cfg.Storage, ErrNotValid)
	}
}

// Close releases resources held by the client, including the database connection.
// After Close returns, the client must not be used.
func (c *Client) Close() error {
	if c.closeFn != nil {
		return c.closeFn()
	}
	return nil
}
