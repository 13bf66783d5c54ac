package playback

import (
	"fmt"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/slok/fourd/internal/log"
	"github.com/slok/fourd/internal/model"
	"github.com/slok/fourd/internal/timeline"
	"github.com/slok/fourd/internal/viewer"
)

// State is the playback state. There is no paused state, stopping discards the
// playback position.
type State string

const (
	StateStopped State = "stopped"
	StatePlaying State = "playing"
)

// DefaultInterval is the default time between simulated days.
const DefaultInterval = 500 * time.Millisecond

// TaskSource returns the current schedule tasks, it's read on every step so
// edits during a playback affect the next simulated day.
type TaskSource interface {
	List() []model.Task
}

// TaskRef is the light representation of a task active on a playback step.
type TaskRef struct {
	ID    int
	Name  string
	Start time.Time
	End   time.Time
}

// Progress is the playback position reported on every simulated day.
type Progress struct {
	Date     time.Time
	Index    int
	Total    int
	Fraction float64
	Active   []TaskRef
	Elements []model.ElementID
}

// ProgressReporter receives the playback progress. Reporters must not call the
// controller back.
type ProgressReporter interface {
	ReportProgress(p Progress)
}

// ProgressReporterFunc is a helper to use functions as ProgressReporters.
type ProgressReporterFunc func(p Progress)

// ReportProgress satisfies ProgressReporter.
func (f ProgressReporterFunc) ReportProgress(p Progress) { f(p) }

var noopReporter = ProgressReporterFunc(func(Progress) {})

// ControllerConfig is the configuration for the playback controller.
type ControllerConfig struct {
	Tasks       TaskSource
	Viewer      viewer.Viewer
	Scheduler   Scheduler
	Interval    time.Duration
	Theming     bool
	ActiveColor *viewer.Color
	Progress    ProgressReporter
	Logger      log.Logger
}

func (c *ControllerConfig) defaults() error {
	if c.Tasks == nil {
		return fmt.Errorf("task source is required")
	}

	if c.Viewer == nil {
		return fmt.Errorf("viewer is required")
	}

	if c.Scheduler == nil {
		c.Scheduler = WallClock
	}

	if c.Interval < 0 {
		return fmt.Errorf("interval can't be negative")
	}

	if c.Interval == 0 {
		c.Interval = DefaultInterval
	}

	if c.ActiveColor == nil {
		c.ActiveColor = &viewer.ActiveColor
	}

	if c.Progress == nil {
		c.Progress = noopReporter
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "playback.Controller"})

	return nil
}

// Controller is the day stepped schedule playback. While playing, every tick
// isolates on the viewer the elements of the tasks active on the simulated day
// and advances one day, once past the last day it stops by itself.
type Controller struct {
	tasks       TaskSource
	viewer      viewer.Viewer
	scheduler   Scheduler
	interval    time.Duration
	theming     bool
	activeColor viewer.Color
	progress    ProgressReporter
	logger      log.Logger

	mu      sync.Mutex
	state   State
	rng     timeline.Range
	current time.Time
	timer   Timer
	gen     uint64
	done    chan struct{}
	// finished is set when the playback ran past the last day by itself.
	finished bool
	runLog  log.Logger
}

// NewController returns a new stopped playback controller.
func NewController(cfg ControllerConfig) (*Controller, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	done := make(chan struct{})
	close(done)

	return &Controller{
		tasks:       cfg.Tasks,
		viewer:      cfg.Viewer,
		scheduler:   cfg.Scheduler,
		interval:    cfg.Interval,
		theming:     cfg.Theming,
		activeColor: *cfg.ActiveColor,
		progress:    cfg.Progress,
		logger:      cfg.Logger,
		state:       StateStopped,
		done:        done,
		runLog:      cfg.Logger,
	}, nil
}

// Start starts a playback from the first day of the schedule. The first day is
// shown immediately. Starting without tasks or while playing fails without
// changing the state.
func (c *Controller) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.startLocked()
}

// Stop cancels the playback, clears any isolation and discards the position.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopLocked("stopped")
}

// Toggle stops the playback when playing and starts it when stopped.
func (c *Controller) Toggle() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StatePlaying {
		c.stopLocked("stopped")
		return nil
	}
	return c.startLocked()
}

// State returns the playback state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state
}

// Current returns the next simulated day, false when stopped.
func (c *Controller) Current() (time.Time, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StatePlaying {
		return time.Time{}, false
	}
	return c.current, true
}

// Done returns a channel that is closed when the current playback stops.
func (c *Controller) Done() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.done
}

// Finished returns true when the last playback stopped by itself after showing
// the last day, false when it was stopped before or is still playing.
func (c *Controller) Finished() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.finished
}

func (c *Controller) startLocked() error {
	if c.state == StatePlaying {
		return fmt.Errorf("playback already playing: %w", model.ErrPrecondition)
	}

	tasks := c.tasks.List()
	if len(tasks) == 0 {
		return fmt.Errorf("playback needs at least one task: %w", model.ErrPrecondition)
	}

	rng, err := timeline.ComputeRange(tasks)
	if err != nil {
		return fmt.Errorf("could not compute date range: %w", err)
	}

	c.gen++
	c.state = StatePlaying
	c.rng = rng
	c.current = rng.Min
	c.finished = false
	c.done = make(chan struct{})
	c.runLog = c.logger.WithValues(log.Kv{"run": ulid.Make().String()})
	c.runLog.Infof("Playback started from %s to %s (%d days)", model.FormatDate(rng.Min), model.FormatDate(rng.Max), rng.Len())

	c.stepLocked(c.gen)

	return nil
}

func (c *Controller) stopLocked(reason string) {
	if c.state == StateStopped {
		return
	}

	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	// Invalidate any callback that was already on its way.
	c.gen++
	c.state = StateStopped
	c.current = time.Time{}

	if err := c.viewer.ShowAll(); err != nil {
		c.runLog.Warningf("Could not clear isolation: %s", err)
	}
	if c.theming {
		if err := c.viewer.ClearTheming(); err != nil {
			c.runLog.Warningf("Could not clear theming: %s", err)
		}
	}

	close(c.done)
	c.runLog.Infof("Playback %s", reason)
}

// stepLocked simulates the current day and schedules the next one.
func (c *Controller) stepLocked(gen uint64) {
	if gen != c.gen || c.state != StatePlaying {
		return
	}

	if c.current.After(c.rng.Max) {
		c.finished = true
		c.stopLocked("finished")
		return
	}

	var (
		active   []TaskRef
		elements []model.ElementID
		seen     = map[model.ElementID]bool{}
	)
	for _, t := range c.tasks.List() {
		if !t.ActiveOn(c.current) {
			continue
		}
		active = append(active, TaskRef{ID: t.ID, Name: t.Name, Start: t.Start, End: t.End})
		for _, e := range t.Elements {
			if seen[e] {
				continue
			}
			seen[e] = true
			elements = append(elements, e)
		}
	}

	c.show(elements)

	idx := c.rng.Index(c.current)
	total := c.rng.Len()
	c.progress.ReportProgress(Progress{
		Date:     c.current,
		Index:    idx,
		Total:    total,
		Fraction: float64(idx+1) / float64(total),
		Active:   active,
		Elements: elements,
	})
	c.runLog.Debugf("Simulated %s: %d active tasks, %d elements", model.FormatDate(c.current), len(active), len(elements))

	c.current = model.AddDays(c.current, 1)
	c.timer = c.scheduler.AfterFunc(c.interval, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.stepLocked(gen)
	})
}

// show isolates the elements. No elements means show everything, not isolate
// an empty set.
func (c *Controller) show(elements []model.ElementID) {
	if len(elements) == 0 {
		if err := c.viewer.ShowAll(); err != nil {
			c.runLog.Warningf("Could not show all elements: %s", err)
		}
	} else if err := c.viewer.Isolate(elements); err != nil {
		c.runLog.Warningf("Could not isolate elements: %s", err)
	}

	if !c.theming {
		return
	}
	if err := c.viewer.ClearTheming(); err != nil {
		c.runLog.Warningf("Could not clear theming: %s", err)
	}
	for _, e := range elements {
		if err := c.viewer.SetThemingColor(e, c.activeColor); err != nil {
			c.runLog.Warningf("Could not color element %d: %s", e, err)
		}
	}
}
