package taskstore_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/fourd/internal/log"
	"github.com/slok/fourd/internal/model"
	"github.com/slok/fourd/internal/taskstore"
)

func strPtr(s string) *string        { return &s }
func datePtr(t time.Time) *time.Time { return &t }
func intPtr(i int) *int              { return &i }

func taskFields(name string, start, end time.Time) model.TaskFields {
	return model.TaskFields{Name: strPtr(name), Start: datePtr(start), End: datePtr(end)}
}

func newStore(t *testing.T) *taskstore.Store {
	t.Helper()
	s, err := taskstore.New(taskstore.StoreConfig{Logger: log.Noop})
	require.NoError(t, err)
	return s
}

func TestStoreCreate(t *testing.T) {
	d1 := model.NewDate(2024, 1, 1)
	d2 := model.NewDate(2024, 1, 4)

	tests := map[string]struct {
		fields  model.TaskFields
		expTask model.Task
		expErr  error
	}{
		"A valid task should be created with derived durations": {
			fields: model.TaskFields{
				Name:            strPtr("Slab"),
				Start:           datePtr(d1),
				End:             datePtr(d2),
				PercentComplete: intPtr(25),
				Dependencies:    []int{7},
			},
			expTask: model.Task{
				ID:                1,
				Name:              "Slab",
				Start:             d1,
				End:               d2,
				PercentComplete:   intPtr(25),
				Dependencies:      []int{7},
				Elements:          []model.ElementID{},
				OriginalDuration:  4,
				RemainingDuration: 3,
			},
		},

		"Missing name should fail": {
			fields: model.TaskFields{Start: datePtr(d1), End: datePtr(d2)},
			expErr: model.ErrNotValid,
		},

		"Missing start should fail": {
			fields: model.TaskFields{Name: strPtr("Slab"), End: datePtr(d2)},
			expErr: model.ErrNotValid,
		},

		"End before start should fail": {
			fields: taskFields("Slab", d2, d1),
			expErr: model.ErrNotValid,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			s := newStore(t)
			got, err := s.Create(test.fields)

			if test.expErr != nil {
				require.Error(err)
				assert.True(errors.Is(err, test.expErr))
				assert.Equal(0, s.Len(), "failed creates should not mutate the store")
				assert.Equal(1, s.NextID(), "failed creates should not consume ids")
				return
			}
			require.NoError(err)
			assert.Equal(test.expTask, got)
			assert.Equal([]model.Task{test.expTask}, s.List())
		})
	}
}

func TestStoreUpdate(t *testing.T) {
	d1 := model.NewDate(2024, 1, 1)
	d2 := model.NewDate(2024, 1, 4)
	d3 := model.NewDate(2024, 1, 10)

	tests := map[string]struct {
		id     int
		fields model.TaskFields
		exp    func(t *testing.T, got model.Task)
		expErr error
	}{
		"Updating the name should keep the elements": {
			id:     1,
			fields: model.TaskFields{Name: strPtr("Slab L2")},
			exp: func(t *testing.T, got model.Task) {
				assert.Equal(t, "Slab L2", got.Name)
				assert.Equal(t, []model.ElementID{100, 101}, got.Elements)
			},
		},

		"Updating the end should recompute durations": {
			id:     1,
			fields: model.TaskFields{End: datePtr(d3)},
			exp: func(t *testing.T, got model.Task) {
				assert.Equal(t, 10, got.OriginalDuration)
				assert.Equal(t, 10, got.RemainingDuration)
			},
		},

		"Providing elements should replace them": {
			id:     1,
			fields: model.TaskFields{Elements: []model.ElementID{5}},
			exp: func(t *testing.T, got model.Task) {
				assert.Equal(t, []model.ElementID{5}, got.Elements)
			},
		},

		"Moving the start after the end should fail": {
			id:     1,
			fields: model.TaskFields{Start: datePtr(d3)},
			expErr: model.ErrNotValid,
		},

		"Updating a missing task should fail": {
			id:     42,
			fields: model.TaskFields{Name: strPtr("x")},
			expErr: model.ErrNotFound,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			require := require.New(t)

			s := newStore(t)
			f := taskFields("Slab", d1, d2)
			f.Elements = []model.ElementID{100, 101}
			original, err := s.Create(f)
			require.NoError(err)

			got, err := s.Update(test.id, test.fields)

			if test.expErr != nil {
				require.Error(err)
				assert.True(t, errors.Is(err, test.expErr))
				assert.Equal(t, []model.Task{original}, s.List(), "failed updates should not mutate the store")
				return
			}
			require.NoError(err)
			test.exp(t, got)

			stored, err := s.Get(test.id)
			require.NoError(err)
			assert.Equal(t, got, stored)
		})
	}
}

func TestStoreDeleteNeverReusesIDs(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	s := newStore(t)
	d := model.NewDate(2024, 1, 1)

	t1, err := s.Create(taskFields("a", d, d))
	require.NoError(err)
	f := taskFields("b", d, d)
	f.Dependencies = []int{t1.ID}
	t2, err := s.Create(f)
	require.NoError(err)

	require.NoError(s.Delete(t1.ID))
	err = s.Delete(t1.ID)
	assert.True(errors.Is(err, model.ErrNotFound))

	t3, err := s.Create(taskFields("c", d, d))
	require.NoError(err)
	assert.Equal(3, t3.ID)

	got, err := s.Get(t2.ID)
	require.NoError(err)
	assert.Equal([]int{t1.ID}, got.Dependencies, "dangling dependencies should be kept")

	var names []string
	for _, task := range s.List() {
		names = append(names, task.Name)
	}
	assert.Equal([]string{"b", "c"}, names)
}

func TestStoreListReturnsCopies(t *testing.T) {
	s := newStore(t)
	d := model.NewDate(2024, 1, 1)
	f := taskFields("a", d, d)
	f.Elements = []model.ElementID{1}
	_, err := s.Create(f)
	require.NoError(t, err)

	tasks := s.List()
	tasks[0].Elements[0] = 99
	tasks[0].Name = "mutated"

	got := s.List()
	assert.Equal(t, "a", got[0].Name)
	assert.Equal(t, []model.ElementID{1}, got[0].Elements)
}

func TestNewFromSchedule(t *testing.T) {
	d := model.NewDate(2024, 1, 1)

	tests := map[string]struct {
		schedule  model.Schedule
		expNextID int
		expErr    bool
	}{
		"The counter should continue after the persisted counter": {
			schedule: model.Schedule{
				ModelID:    "urn:1",
				NextTaskID: 10,
				Tasks:      []model.Task{{ID: 3, Name: "a", Start: d, End: d}},
			},
			expNextID: 10,
		},

		"The counter should continue after the biggest id": {
			schedule: model.Schedule{
				ModelID: "urn:1",
				Tasks: []model.Task{
					{ID: 3, Name: "a", Start: d, End: d},
					{ID: 7, Name: "b", Start: d, End: d},
				},
			},
			expNextID: 8,
		},

		"Duplicated ids should fail": {
			schedule: model.Schedule{
				ModelID: "urn:1",
				Tasks: []model.Task{
					{ID: 3, Name: "a", Start: d, End: d},
					{ID: 3, Name: "b", Start: d, End: d},
				},
			},
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			s, err := taskstore.NewFromSchedule(taskstore.StoreConfig{}, test.schedule)

			if test.expErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.expNextID, s.NextID())

			snap := s.Snapshot("urn:1")
			assert.Equal(t, test.expNextID, snap.NextTaskID)
			assert.Len(t, snap.Tasks, len(test.schedule.Tasks))
		})
	}
}
