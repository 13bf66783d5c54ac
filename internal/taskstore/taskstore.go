package taskstore

import (
	"fmt"
	"sync"

	"github.com/slok/fourd/internal/log"
	"github.com/slok/fourd/internal/model"
)

// StoreConfig is the configuration for the task store.
type StoreConfig struct {
	Logger log.Logger
}

func (c *StoreConfig) defaults() error {
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "taskstore.Store"})
	return nil
}

// Store is the in-memory ordered collection of schedule tasks. It owns the
// task records and hands out copies, so readers never observe a partial write.
//
// Task IDs come from a monotonic counter and are never reused after a delete.
type Store struct {
	tasks  []model.Task
	index  map[int]int // Task ID -> position on tasks.
	nextID int
	mu     sync.RWMutex
	logger log.Logger
}

// New returns an empty task store.
func New(cfg StoreConfig) (*Store, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Store{
		index:  map[int]int{},
		nextID: 1,
		logger: cfg.Logger,
	}, nil
}

// NewFromSchedule returns a task store hydrated with the tasks of a persisted
// schedule, keeping their IDs and order.
func NewFromSchedule(cfg StoreConfig, s model.Schedule) (*Store, error) {
	st, err := New(cfg)
	if err != nil {
		return nil, err
	}

	st.nextID = max(s.NextTaskID, 1)
	for _, t := range s.Tasks {
		if t.ID <= 0 {
			return nil, fmt.Errorf("task %q has an invalid id %d: %w", t.Name, t.ID, model.ErrNotValid)
		}
		if _, ok := st.index[t.ID]; ok {
			return nil, fmt.Errorf("task id %d is duplicated: %w", t.ID, model.ErrNotValid)
		}

		t = t.Clone()
		t.Recompute()
		st.index[t.ID] = len(st.tasks)
		st.tasks = append(st.tasks, t)
		st.nextID = max(st.nextID, t.ID+1)
	}

	st.logger.Debugf("Task store hydrated with %d tasks from schedule %s", len(st.tasks), s.ModelID)

	return st, nil
}

// Create validates and stores a new task, assigning it a fresh ID.
func (s *Store) Create(fields model.TaskFields) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := fields.Apply(model.Task{})
	if t.Elements == nil {
		t.Elements = []model.ElementID{}
	}
	if err := t.Validate(); err != nil {
		return model.Task{}, fmt.Errorf("invalid task: %w", err)
	}

	t.ID = s.nextID
	s.nextID++
	t.Recompute()

	s.index[t.ID] = len(s.tasks)
	s.tasks = append(s.tasks, t)
	s.logger.Debugf("Created task %d (%s)", t.ID, t.Name)

	return t.Clone(), nil
}

// Update merges the provided fields into an existing task. Fields not provided
// keep their previous value, including the associated elements.
func (s *Store) Update(id int, fields model.TaskFields) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pos, ok := s.index[id]
	if !ok {
		return model.Task{}, fmt.Errorf("task %d: %w", id, model.ErrNotFound)
	}

	t := fields.Apply(s.tasks[pos])
	if err := t.Validate(); err != nil {
		return model.Task{}, fmt.Errorf("invalid task: %w", err)
	}
	t.ID = id
	t.Recompute()

	s.tasks[pos] = t
	s.logger.Debugf("Updated task %d (%s)", t.ID, t.Name)

	return t.Clone(), nil
}

// Delete removes a task. Other tasks depending on it keep the dangling reference.
func (s *Store) Delete(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	pos, ok := s.index[id]
	if !ok {
		return fmt.Errorf("task %d: %w", id, model.ErrNotFound)
	}

	s.tasks = append(s.tasks[:pos], s.tasks[pos+1:]...)
	delete(s.index, id)
	for i := pos; i < len(s.tasks); i++ {
		s.index[s.tasks[i].ID] = i
	}
	s.logger.Debugf("Deleted task %d", id)

	return nil
}

// Get returns a task by ID.
func (s *Store) Get(id int) (model.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pos, ok := s.index[id]
	if !ok {
		return model.Task{}, fmt.Errorf("task %d: %w", id, model.ErrNotFound)
	}

	return s.tasks[pos].Clone(), nil
}

// List returns all the tasks in insertion order.
func (s *Store) List() []model.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks := make([]model.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		tasks = append(tasks, t.Clone())
	}
	return tasks
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.tasks)
}

// NextID returns the ID that the next created task will get.
func (s *Store) NextID() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.nextID
}

// Snapshot returns the persistable schedule of the store contents.
func (s *Store) Snapshot(modelID string) model.Schedule {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks := make([]model.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		tasks = append(tasks, t.Clone())
	}

	return model.Schedule{
		ModelID:    modelID,
		Tasks:      tasks,
		NextTaskID: s.nextID,
	}
}
