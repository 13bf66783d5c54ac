// Package watch runs a callback every time a schedule source file changes.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/slok/fourd/internal/log"
)

// WatcherConfig is the configuration for the file watcher.
type WatcherConfig struct {
	// Path is the watched file, its directory must exist.
	Path string
	// Debounce groups the changes received in this window into a single callback.
	Debounce time.Duration
	// OnChange is called after every group of changes.
	OnChange func(ctx context.Context) error
	Logger   log.Logger
}

func (c *WatcherConfig) defaults() error {
	if c.Path == "" {
		return fmt.Errorf("path is required")
	}
	if c.OnChange == nil {
		return fmt.Errorf("on change callback is required")
	}
	if c.Debounce <= 0 {
		c.Debounce = 100 * time.Millisecond
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "watch.Watcher"})

	return nil
}

// Watcher watches a file and notifies its changes.
type Watcher struct {
	path     string
	debounce time.Duration
	onChange func(ctx context.Context) error
	watcher  *fsnotify.Watcher
	logger   log.Logger
}

// NewWatcher returns a new watcher. The watch starts right away, changes made
// before Run is called are notified once Run starts.
func NewWatcher(cfg WatcherConfig) (*Watcher, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	path, err := filepath.Abs(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("could not resolve path: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}

	// Editors replace files instead of writing them, the directory keeps the
	// watch alive across those replacements.
	if err := fw.Add(filepath.Dir(path)); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}

	return &Watcher{
		path:     path,
		debounce: cfg.Debounce,
		onChange: cfg.OnChange,
		watcher:  fw,
		logger:   cfg.Logger,
	}, nil
}

// Run processes the file events until the context is cancelled. Callback
// errors are logged, they don't stop the watch.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() { _ = w.watcher.Close() }()

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			w.logger.Debugf("fsnotify event=%s file=%s", event.Op, event.Name)
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Errorf("fsnotify error: %s", err)

		case <-fire:
			fire = nil
			w.logger.Infof("%s changed", w.path)
			if err := w.onChange(ctx); err != nil {
				w.logger.Errorf("could not process change: %s", err)
			}
		}
	}
}
