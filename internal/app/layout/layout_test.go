package layout_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/slok/fourd/internal/app/layout"
	"github.com/slok/fourd/internal/log"
	"github.com/slok/fourd/internal/model"
	"github.com/slok/fourd/internal/storage/storagemock"
	"github.com/slok/fourd/internal/timeline"
)

func task(id, start, end int, deps ...int) model.Task {
	t := model.Task{ID: id, Name: fmt.Sprintf("t%d", id), Start: model.NewDate(2024, 1, start), End: model.NewDate(2024, 1, end), Dependencies: deps, Elements: []model.ElementID{}}
	t.Recompute()
	return t
}

func TestNewService(t *testing.T) {
	tests := map[string]struct {
		config layout.ServiceConfig
		expErr bool
	}{
		"valid config should create service": {
			config: layout.ServiceConfig{Repository: &storagemock.MockScheduleRepository{}},
		},
		"missing repository should fail": {
			config: layout.ServiceConfig{},
			expErr: true,
		},
		"invalid geometry should fail": {
			config: layout.ServiceConfig{
				Repository: &storagemock.MockScheduleRepository{},
				Geometry:   timeline.Geometry{Width: -1, RowHeight: 10, BarHeight: 5},
			},
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			svc, err := layout.NewService(test.config)

			if test.expErr {
				require.Error(t, err)
				require.Nil(t, svc)
			} else {
				require.NoError(t, err)
				require.NotNil(t, svc)
			}
		})
	}
}

func TestService_Run(t *testing.T) {
	tests := map[string]struct {
		mock     func(m *storagemock.MockScheduleRepository)
		req      layout.Request
		expChart func(t *testing.T, c *timeline.Chart)
		expErr   bool
	}{
		"a schedule should be laid out with its critical path and today marker": {
			mock: func(m *storagemock.MockScheduleRepository) {
				m.On("GetSchedule", mock.Anything, "m1").Once().Return(&model.Schedule{ModelID: "m1", Tasks: []model.Task{
					task(1, 1, 4),
					task(2, 5, 10, 1),
					task(3, 5, 6, 1),
				}}, nil)
			},
			req: layout.Request{ModelID: "m1"},
			expChart: func(t *testing.T, c *timeline.Chart) {
				assert.Equal(t, 10, c.Layout.Range.Len())
				assert.Len(t, c.Layout.Bars, 3)
				assert.Equal(t, map[int]bool{1: true, 2: true}, c.Critical)
				assert.Len(t, c.Connectors, 2)
				require.NotNil(t, c.Layout.Today)
				assert.Equal(t, 2, c.Layout.Today.Index)
				assert.Empty(t, c.Warnings)
			},
		},

		"the today marker should be omitted on request": {
			mock: func(m *storagemock.MockScheduleRepository) {
				m.On("GetSchedule", mock.Anything, "m1").Once().Return(&model.Schedule{ModelID: "m1", Tasks: []model.Task{task(1, 1, 4)}}, nil)
			},
			req: layout.Request{ModelID: "m1", NoToday: true},
			expChart: func(t *testing.T, c *timeline.Chart) {
				assert.Nil(t, c.Layout.Today)
			},
		},

		"a cyclic schedule should be laid out without critical path": {
			mock: func(m *storagemock.MockScheduleRepository) {
				m.On("GetSchedule", mock.Anything, "m1").Once().Return(&model.Schedule{ModelID: "m1", Tasks: []model.Task{
					task(1, 1, 4, 2),
					task(2, 5, 10, 1),
				}}, nil)
			},
			req: layout.Request{ModelID: "m1"},
			expChart: func(t *testing.T, c *timeline.Chart) {
				assert.Len(t, c.Layout.Bars, 2)
				assert.Empty(t, c.Critical)
				assert.Len(t, c.Warnings, 1)
			},
		},

		"an empty schedule should return an empty chart": {
			mock: func(m *storagemock.MockScheduleRepository) {
				m.On("GetSchedule", mock.Anything, "m1").Once().Return(&model.Schedule{ModelID: "m1"}, nil)
			},
			req: layout.Request{ModelID: "m1"},
			expChart: func(t *testing.T, c *timeline.Chart) {
				assert.True(t, c.Layout.Empty())
				assert.Empty(t, c.Connectors)
			},
		},

		"a missing schedule should fail": {
			mock: func(m *storagemock.MockScheduleRepository) {
				m.On("GetSchedule", mock.Anything, "m1").Once().Return(nil, model.ErrNotFound)
			},
			req:    layout.Request{ModelID: "m1"},
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			m := storagemock.NewMockScheduleRepository(t)
			test.mock(m)

			svc, err := layout.NewService(layout.ServiceConfig{
				Repository: m,
				TimeNow:    func() time.Time { return time.Date(2024, 1, 3, 15, 0, 0, 0, time.UTC) },
				Logger:     log.Noop,
			})
			require.NoError(t, err)

			chart, err := svc.Run(context.Background(), test.req)

			if test.expErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			test.expChart(t, chart)
		})
	}
}
