package playback

import (
	"sync"
	"time"
)

// Timer is a pending scheduled function.
type Timer interface {
	// Stop cancels the function, returns false if it already fired or was stopped.
	Stop() bool
}

// Scheduler schedules functions to be run after a delay. It's the tick source of
// the playback.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// SchedulerFunc is a helper to use functions as Schedulers.
type SchedulerFunc func(d time.Duration, f func()) Timer

// AfterFunc satisfies Scheduler.
func (s SchedulerFunc) AfterFunc(d time.Duration, f func()) Timer { return s(d, f) }

// WallClock is the scheduler backed by the wall clock timers.
var WallClock Scheduler = SchedulerFunc(func(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
})

// ManualScheduler is a Scheduler that only runs the scheduled functions when
// fired, so playbacks can be driven step by step without real delays.
type ManualScheduler struct {
	pending []*manualTimer
	mu      sync.Mutex
}

// NewManualScheduler returns a new manual scheduler.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

type manualTimer struct {
	d       time.Duration
	f       func()
	stopped bool
	fired   bool
	mu      sync.Mutex
}

func (t *manualTimer) Stop() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// AfterFunc satisfies Scheduler.
func (s *ManualScheduler) AfterFunc(d time.Duration, f func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := &manualTimer{d: d, f: f}
	s.pending = append(s.pending, t)
	return t
}

// Fire runs the oldest pending function that has not been stopped. Returns
// false when there was nothing to run.
func (s *ManualScheduler) Fire() bool {
	for {
		s.mu.Lock()
		if len(s.pending) == 0 {
			s.mu.Unlock()
			return false
		}
		t := s.pending[0]
		s.pending = s.pending[1:]
		s.mu.Unlock()

		t.mu.Lock()
		if t.stopped {
			t.mu.Unlock()
			continue
		}
		t.fired = true
		t.mu.Unlock()

		t.f()
		return true
	}
}

// FireAll fires pending functions until there are none left, including the
// ones scheduled while firing. Returns the number of fired functions.
func (s *ManualScheduler) FireAll() int {
	n := 0
	for s.Fire() {
		n++
	}
	return n
}

// Pending returns the number of scheduled functions not fired nor stopped.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, t := range s.pending {
		t.mu.Lock()
		if !t.stopped {
			n++
		}
		t.mu.Unlock()
	}
	return n
}

// LastDelay returns the delay of the last scheduled function.
func (s *ManualScheduler) LastDelay() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.pending) == 0 {
		return 0
	}
	return s.pending[len(s.pending)-1].d
}
