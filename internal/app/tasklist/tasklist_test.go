package tasklist_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/slok/fourd/internal/app/tasklist"
	"github.com/slok/fourd/internal/log"
	"github.com/slok/fourd/internal/model"
	"github.com/slok/fourd/internal/storage/storagemock"
)

func TestService_Run(t *testing.T) {
	a := model.Task{ID: 1, Name: "A", Start: model.NewDate(2024, 1, 1), End: model.NewDate(2024, 1, 4), Elements: []model.ElementID{1, 2}}
	b := model.Task{ID: 2, Name: "B", Start: model.NewDate(2024, 1, 3), End: model.NewDate(2024, 1, 6), Elements: []model.ElementID{2}}
	c := model.Task{ID: 3, Name: "C", Start: model.NewDate(2024, 1, 7), End: model.NewDate(2024, 1, 7), Elements: []model.ElementID{}}
	s := &model.Schedule{ModelID: "m1", Tasks: []model.Task{a, b, c}}

	day := func(d int) *time.Time { v := model.NewDate(2024, 1, d); return &v }
	element := func(id int) *model.ElementID { e := model.ElementID(id); return &e }

	tests := map[string]struct {
		mock   func(m *storagemock.MockScheduleRepository)
		req    tasklist.Request
		expIDs []int
		expErr bool
	}{
		"listing without filters should return all tasks in order": {
			mock: func(m *storagemock.MockScheduleRepository) {
				m.On("GetSchedule", mock.Anything, "m1").Once().Return(s, nil)
			},
			req:    tasklist.Request{ModelID: "m1"},
			expIDs: []int{1, 2, 3},
		},

		"filtering by day should return the active tasks": {
			mock: func(m *storagemock.MockScheduleRepository) {
				m.On("GetSchedule", mock.Anything, "m1").Once().Return(s, nil)
			},
			req:    tasklist.Request{ModelID: "m1", ActiveOn: day(4)},
			expIDs: []int{1, 2},
		},

		"filtering by element should return the tasks affecting it": {
			mock: func(m *storagemock.MockScheduleRepository) {
				m.On("GetSchedule", mock.Anything, "m1").Once().Return(s, nil)
			},
			req:    tasklist.Request{ModelID: "m1", Element: element(2), ActiveOn: day(5)},
			expIDs: []int{2},
		},

		"filters without matches should return an empty list": {
			mock: func(m *storagemock.MockScheduleRepository) {
				m.On("GetSchedule", mock.Anything, "m1").Once().Return(s, nil)
			},
			req:    tasklist.Request{ModelID: "m1", ActiveOn: day(20)},
			expIDs: []int{},
		},

		"repository error should propagate": {
			mock: func(m *storagemock.MockScheduleRepository) {
				m.On("GetSchedule", mock.Anything, "m1").Once().Return(nil, fmt.Errorf("database error"))
			},
			req:    tasklist.Request{ModelID: "m1"},
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			m := storagemock.NewMockScheduleRepository(t)
			test.mock(m)

			svc, err := tasklist.NewService(tasklist.ServiceConfig{Repository: m, Logger: log.Noop})
			require.NoError(t, err)

			tasks, err := svc.Run(context.Background(), test.req)

			if test.expErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			ids := []int{}
			for _, task := range tasks {
				ids = append(ids, task.ID)
			}
			assert.Equal(t, test.expIDs, ids)
		})
	}
}
