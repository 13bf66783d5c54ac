package model_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/fourd/internal/model"
)

func intPtr(i int) *int { return &i }

func TestTaskValidate(t *testing.T) {
	d1 := model.NewDate(2024, 1, 1)
	d2 := model.NewDate(2024, 1, 3)

	tests := map[string]struct {
		task   model.Task
		expErr bool
	}{
		"A valid task should not fail": {
			task: model.Task{Name: "Foundations", Start: d1, End: d2},
		},

		"A single day task should not fail": {
			task: model.Task{Name: "Foundations", Start: d1, End: d1},
		},

		"Missing name should fail": {
			task:   model.Task{Name: "  ", Start: d1, End: d2},
			expErr: true,
		},

		"Missing start should fail": {
			task:   model.Task{Name: "Foundations", End: d2},
			expErr: true,
		},

		"Missing end should fail": {
			task:   model.Task{Name: "Foundations", Start: d1},
			expErr: true,
		},

		"End before start should fail": {
			task:   model.Task{Name: "Foundations", Start: d2, End: d1},
			expErr: true,
		},

		"Percent out of range should fail": {
			task:   model.Task{Name: "Foundations", Start: d1, End: d2, PercentComplete: intPtr(101)},
			expErr: true,
		},

		"Non positive dependency should fail": {
			task:   model.Task{Name: "Foundations", Start: d1, End: d2, Dependencies: []int{0}},
			expErr: true,
		},

		"Dangling dependencies are allowed": {
			task: model.Task{Name: "Foundations", Start: d1, End: d2, Dependencies: []int{999}},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			err := test.task.Validate()

			if test.expErr {
				assert.Error(t, err)
				assert.True(t, errors.Is(err, model.ErrNotValid))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTaskRecompute(t *testing.T) {
	tests := map[string]struct {
		start, end   time.Time
		percent      *int
		expOriginal  int
		expRemaining int
	}{
		"Without percent the remaining duration is the original one": {
			start:        model.NewDate(2024, 1, 1),
			end:          model.NewDate(2024, 1, 10),
			expOriginal:  10,
			expRemaining: 10,
		},

		"Remaining duration should be rounded up": {
			start:        model.NewDate(2024, 1, 1),
			end:          model.NewDate(2024, 1, 3),
			percent:      intPtr(50),
			expOriginal:  3,
			expRemaining: 2,
		},

		"A completed task should not have remaining duration": {
			start:        model.NewDate(2024, 1, 1),
			end:          model.NewDate(2024, 1, 3),
			percent:      intPtr(100),
			expOriginal:  3,
			expRemaining: 0,
		},

		"Time of day should be discarded": {
			start:        time.Date(2024, 1, 1, 18, 0, 0, 0, time.UTC),
			end:          time.Date(2024, 1, 2, 8, 0, 0, 0, time.UTC),
			expOriginal:  2,
			expRemaining: 2,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			task := model.Task{Name: "t", Start: test.start, End: test.end, PercentComplete: test.percent}
			task.Recompute()

			assert.Equal(t, test.expOriginal, task.OriginalDuration)
			assert.Equal(t, test.expRemaining, task.RemainingDuration)
		})
	}
}

func TestTaskActiveOn(t *testing.T) {
	task := model.Task{Start: model.NewDate(2024, 1, 2), End: model.NewDate(2024, 1, 3)}

	assert.False(t, task.ActiveOn(model.NewDate(2024, 1, 1)))
	assert.True(t, task.ActiveOn(model.NewDate(2024, 1, 2)))
	assert.True(t, task.ActiveOn(time.Date(2024, 1, 3, 23, 59, 0, 0, time.UTC)))
	assert.False(t, task.ActiveOn(model.NewDate(2024, 1, 4)))
}

func TestTaskFieldsApply(t *testing.T) {
	base := model.Task{
		ID:       1,
		Name:     "Walls",
		Start:    model.NewDate(2024, 1, 1),
		End:      model.NewDate(2024, 1, 2),
		Elements: []model.ElementID{10, 11},
	}

	name := "Walls L2"
	got := model.TaskFields{Name: &name}.Apply(base)

	assert.Equal(t, "Walls L2", got.Name)
	assert.Equal(t, []model.ElementID{10, 11}, got.Elements, "elements not provided should be preserved")
	assert.Equal(t, "Walls", base.Name, "original task should not be mutated")

	got = model.TaskFields{Elements: []model.ElementID{}}.Apply(base)
	assert.Empty(t, got.Elements, "an explicit empty element list should clear elements")
}

func TestParseTaskFields(t *testing.T) {
	tests := map[string]struct {
		raw    map[string]string
		exp    func(t *testing.T, f model.TaskFields)
		expErr error
	}{
		"All fields should be coerced": {
			raw: map[string]string{
				model.FieldName:            "Slab",
				model.FieldType:            "Build",
				model.FieldStart:           "2024-01-01",
				model.FieldEnd:             "01/05/2024",
				model.FieldDependencies:    "1, 2;3",
				model.FieldElements:        "100 101",
				model.FieldPercentComplete: "40%",
			},
			exp: func(t *testing.T, f model.TaskFields) {
				assert.Equal(t, "Slab", *f.Name)
				assert.Equal(t, model.TaskTypeBuild, *f.Type)
				assert.Equal(t, model.NewDate(2024, 1, 1), *f.Start)
				assert.Equal(t, model.NewDate(2024, 1, 5), *f.End)
				assert.Equal(t, []int{1, 2, 3}, f.Dependencies)
				assert.Equal(t, []model.ElementID{100, 101}, f.Elements)
				assert.Equal(t, 40, *f.PercentComplete)
			},
		},

		"Missing keys should not be provided": {
			raw: map[string]string{model.FieldName: "Slab"},
			exp: func(t *testing.T, f model.TaskFields) {
				assert.Nil(t, f.Start)
				assert.Nil(t, f.End)
				assert.Nil(t, f.Elements)
				assert.Nil(t, f.Dependencies)
			},
		},

		"Empty percent should clear it": {
			raw: map[string]string{model.FieldPercentComplete: ""},
			exp: func(t *testing.T, f model.TaskFields) {
				assert.True(t, f.ClearPercent)
			},
		},

		"Invalid date should fail": {
			raw:    map[string]string{model.FieldStart: "not a date"},
			expErr: model.ErrInvalidDate,
		},

		"Non numeric percent should fail": {
			raw:    map[string]string{model.FieldPercentComplete: "half"},
			expErr: model.ErrNotValid,
		},

		"Non numeric element should fail": {
			raw:    map[string]string{model.FieldElements: "1,a"},
			expErr: model.ErrNotValid,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			f, err := model.ParseTaskFields(test.raw)

			if test.expErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, test.expErr))
				return
			}
			require.NoError(t, err)
			test.exp(t, f)
		})
	}
}
