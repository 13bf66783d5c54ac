package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/fourd/internal/log"
	"github.com/slok/fourd/internal/model"
	"github.com/slok/fourd/internal/storage/file"
)

func scheduleFixture(modelID string) model.Schedule {
	excavation := model.Task{
		ID:         1,
		ExternalID: "A1",
		Name:       "Excavation",
		Type:       model.TaskTypeBuild,
		Start:      model.NewDate(2024, 1, 1),
		End:        model.NewDate(2024, 1, 3),
		Elements:   []model.ElementID{5, 3},
	}
	excavation.Recompute()

	p := 25
	footings := model.Task{
		ID:              3,
		Name:            "Footings",
		Start:           model.NewDate(2024, 1, 4),
		End:             model.NewDate(2024, 1, 7),
		Dependencies:    []int{1},
		Elements:        []model.ElementID{},
		PercentComplete: &p,
	}
	footings.Recompute()

	return model.Schedule{
		ModelID:    modelID,
		Tasks:      []model.Task{excavation, footings},
		NextTaskID: 4,
		Revision:   "rev-1",
		UpdatedAt:  time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC),
	}
}

func newRepo(t *testing.T) (*file.Repository, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "schedules")
	repo, err := file.NewRepository(file.RepositoryConfig{Dir: dir, Logger: log.Noop})
	require.NoError(t, err)
	return repo, dir
}

func TestRepositoryCRUD(t *testing.T) {
	ctx := context.Background()
	repo, dir := newRepo(t)

	s := scheduleFixture("dXJuOmFkc2s/model=1")
	require.NoError(t, repo.SaveSchedule(ctx, s))
	assert.FileExists(t, filepath.Join(dir, "dXJuOmFkc2s_model_1.json"))

	got, err := repo.GetSchedule(ctx, s.ModelID)
	require.NoError(t, err)
	assert.Equal(t, s, *got)

	all, err := repo.ListSchedules(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.ScheduleSummary{s.Summary()}, all)

	require.NoError(t, repo.DeleteSchedule(ctx, s.ModelID))
	_, err = repo.GetSchedule(ctx, s.ModelID)
	assert.ErrorIs(t, err, model.ErrNotFound)
	assert.ErrorIs(t, repo.DeleteSchedule(ctx, s.ModelID), model.ErrNotFound)

	// No temporary files are left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRepositoryReadsPlainRecords(t *testing.T) {
	ctx := context.Background()
	repo, dir := newRepo(t)

	data := `{
  "modelId": "m1",
  "tasks": [
    {"id": 7, "name": "Slab", "start": "2024-02-01", "end": "2024-02-02", "elements": [1]}
  ]
}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "m1.json"), []byte(data), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))

	got, err := repo.GetSchedule(ctx, "m1")
	require.NoError(t, err)
	require.Len(t, got.Tasks, 1)
	assert.Equal(t, 8, got.NextTaskID)
	assert.Equal(t, 2, got.Tasks[0].OriginalDuration)
	assert.Equal(t, []model.ElementID{1}, got.Tasks[0].Elements)

	all, err := repo.ListSchedules(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "m1", all[0].ModelID)
}

func TestRepositorySanitizedNameCollision(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRepo(t)

	require.NoError(t, repo.SaveSchedule(ctx, scheduleFixture("a:b")))

	_, err := repo.GetSchedule(ctx, "a/b")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestRepositoryInvalid(t *testing.T) {
	repo, _ := newRepo(t)

	err := repo.SaveSchedule(context.Background(), scheduleFixture(""))
	assert.ErrorIs(t, err, model.ErrNotValid)

	_, err = file.NewRepository(file.RepositoryConfig{})
	assert.Error(t, err)
}

func TestFileName(t *testing.T) {
	tests := map[string]struct {
		modelID string
		exp     string
	}{
		"Safe IDs should be kept":              {modelID: "model-1_a", exp: "model-1_a.json"},
		"Unsafe characters should be replaced": {modelID: "urn:a/b=", exp: "urn_a_b_.json"},
		"Path traversal should be neutralized": {modelID: "../x", exp: "___x.json"},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.exp, file.FileName(test.modelID))
		})
	}
}
