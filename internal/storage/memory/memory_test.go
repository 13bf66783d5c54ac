package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/fourd/internal/log"
	"github.com/slok/fourd/internal/model"
	"github.com/slok/fourd/internal/storage/memory"
)

func scheduleFixture(modelID string) model.Schedule {
	t := model.Task{
		ID:       1,
		Name:     "Excavation",
		Start:    model.NewDate(2024, 1, 1),
		End:      model.NewDate(2024, 1, 3),
		Elements: []model.ElementID{1, 2},
	}
	t.Recompute()

	return model.Schedule{
		ModelID:    modelID,
		Tasks:      []model.Task{t},
		NextTaskID: 2,
		Revision:   "rev-1",
		UpdatedAt:  time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
	}
}

func TestRepositoryCRUD(t *testing.T) {
	tests := map[string]struct {
		actions func(ctx context.Context, t *testing.T, repo *memory.Repository) error
		expErr  error
	}{
		"Saving and getting a schedule should work": {
			actions: func(ctx context.Context, t *testing.T, repo *memory.Repository) error {
				s := scheduleFixture("m1")
				require.NoError(t, repo.SaveSchedule(ctx, s))

				got, err := repo.GetSchedule(ctx, "m1")
				require.NoError(t, err)
				assert.Equal(t, s, *got)
				return nil
			},
		},

		"Stored schedules should not be mutated through returned copies": {
			actions: func(ctx context.Context, t *testing.T, repo *memory.Repository) error {
				s := scheduleFixture("m1")
				require.NoError(t, repo.SaveSchedule(ctx, s))
				s.Tasks[0].Elements[0] = 99

				got, err := repo.GetSchedule(ctx, "m1")
				require.NoError(t, err)
				got.Tasks[0].Name = "changed"

				got, err = repo.GetSchedule(ctx, "m1")
				require.NoError(t, err)
				assert.Equal(t, "Excavation", got.Tasks[0].Name)
				assert.Equal(t, []model.ElementID{1, 2}, got.Tasks[0].Elements)
				return nil
			},
		},

		"Listing schedules should return summaries sorted by model": {
			actions: func(ctx context.Context, t *testing.T, repo *memory.Repository) error {
				require.NoError(t, repo.SaveSchedule(ctx, scheduleFixture("b")))
				require.NoError(t, repo.SaveSchedule(ctx, scheduleFixture("a")))

				all, err := repo.ListSchedules(ctx)
				require.NoError(t, err)
				require.Len(t, all, 2)
				assert.Equal(t, "a", all[0].ModelID)
				assert.Equal(t, 1, all[0].TaskCount)
				assert.Equal(t, "b", all[1].ModelID)
				return nil
			},
		},

		"Deleting a schedule should remove it": {
			actions: func(ctx context.Context, t *testing.T, repo *memory.Repository) error {
				require.NoError(t, repo.SaveSchedule(ctx, scheduleFixture("m1")))
				require.NoError(t, repo.DeleteSchedule(ctx, "m1"))

				_, err := repo.GetSchedule(ctx, "m1")
				return err
			},
			expErr: model.ErrNotFound,
		},

		"Deleting a missing schedule should fail": {
			actions: func(ctx context.Context, t *testing.T, repo *memory.Repository) error {
				return repo.DeleteSchedule(ctx, "missing")
			},
			expErr: model.ErrNotFound,
		},

		"Saving an invalid schedule should fail": {
			actions: func(ctx context.Context, t *testing.T, repo *memory.Repository) error {
				return repo.SaveSchedule(ctx, scheduleFixture(" "))
			},
			expErr: model.ErrNotValid,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			repo, err := memory.NewRepository(memory.RepositoryConfig{Logger: log.Noop})
			require.NoError(t, err)

			err = test.actions(context.Background(), t, repo)
			if test.expErr != nil {
				assert.ErrorIs(t, err, test.expErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
