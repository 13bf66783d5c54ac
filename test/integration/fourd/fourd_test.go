package fourd_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	intfourd "github.com/slok/fourd/test/integration/fourd"
)

const scheduleCSV = `ID,Task Name,Start,Finish,Type,Predecessors,Elements
10,Excavation,2024-01-01,2024-01-03,Build,,"1,2"
20,Foundations,2024-01-04,2024-01-08,Build,10FS+0 days,3
30,Scaffolding,2024-01-02,2024-01-04,Temporary,,4
`

// newTestDB returns a fresh SQLite database path for test isolation.
func newTestDB(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "test-fourd.db")
}

// writeSchedule writes a schedule source file and returns its path.
func writeSchedule(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "schedule.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// taskItem matches the task JSON outputs.
type taskItem struct {
	ID           int    `json:"id"`
	ExternalID   string `json:"external_id"`
	Name         string `json:"name"`
	Start        string `json:"start"`
	End          string `json:"end"`
	Dependencies []int  `json:"dependencies"`
	Elements     []int  `json:"elements"`
}

// importOutput matches the JSON output of `fourd import --output json`.
type importOutput struct {
	ModelID string     `json:"model_id"`
	Tasks   int        `json:"tasks"`
	Created []taskItem `json:"created"`
}

// criticalPathOutput matches the JSON output of `fourd critical-path --output json`.
type criticalPathOutput struct {
	Days  int        `json:"days"`
	Tasks []taskItem `json:"tasks"`
}

// chartOutput matches the JSON output of `fourd gantt --format json`.
type chartOutput struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Bars  []struct {
		TaskID int    `json:"task_id"`
		Name   string `json:"name"`
	} `json:"bars"`
	Critical []int `json:"critical"`
}

func TestScheduleLifecycle(t *testing.T) {
	config := intfourd.NewConfig(t)
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	dir := t.TempDir()
	dbPath := newTestDB(t)
	source := writeSchedule(t, dir, scheduleCSV)

	// Import.
	stdout, stderr, err := intfourd.RunImport(ctx, config, dbPath, "tower", source)
	require.NoError(t, err, "stderr: %s", stderr)
	var imported importOutput
	require.NoError(t, json.Unmarshal(stdout, &imported))
	assert.Equal(t, "tower", imported.ModelID)
	assert.Equal(t, 3, imported.Tasks)
	assert.Len(t, imported.Created, 3)

	// Create a task with spaces on its name.
	_, stderr, err = intfourd.RunTaskCreate(ctx, config, dbPath, "tower", "Roof and cladding", "2024-01-09", "2024-01-10")
	require.NoError(t, err, "stderr: %s", stderr)

	// List.
	stdout, stderr, err = intfourd.RunTaskList(ctx, config, dbPath, "tower")
	require.NoError(t, err, "stderr: %s", stderr)
	var tasks []taskItem
	require.NoError(t, json.Unmarshal(stdout, &tasks))
	require.Len(t, tasks, 4)
	assert.Equal(t, []int{1}, tasks[1].Dependencies)
	assert.Equal(t, "Roof and cladding", tasks[3].Name)
	assert.Equal(t, 4, tasks[3].ID)

	// Critical path.
	stdout, stderr, err = intfourd.RunCriticalPath(ctx, config, dbPath, "tower")
	require.NoError(t, err, "stderr: %s", stderr)
	var cp criticalPathOutput
	require.NoError(t, json.Unmarshal(stdout, &cp))
	assert.Equal(t, 8, cp.Days)
	require.Len(t, cp.Tasks, 2)
	assert.Equal(t, "Excavation", cp.Tasks[0].Name)
	assert.Equal(t, "Foundations", cp.Tasks[1].Name)

	// Gantt.
	svgPath := filepath.Join(dir, "tower.svg")
	_, stderr, err = intfourd.RunGantt(ctx, config, dbPath, "tower", "svg", svgPath)
	require.NoError(t, err, "stderr: %s", stderr)
	svg, err := os.ReadFile(svgPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(svg), "<?xml"))
	assert.Contains(t, string(svg), `data-task="4"`)

	// Play.
	stdout, stderr, err = intfourd.RunPlay(ctx, config, dbPath, "tower")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, string(stdout), "(10/10)")
	assert.Contains(t, string(stdout), "Playback finished, 10 days simulated")

	// Remove.
	_, stderr, err = intfourd.RunScheduleRm(ctx, config, dbPath, "tower")
	require.NoError(t, err, "stderr: %s", stderr)

	_, _, err = intfourd.RunTaskList(ctx, config, dbPath, "tower")
	assert.Error(t, err)
}

func TestWatchRefreshesChart(t *testing.T) {
	config := intfourd.NewConfig(t)

	dir := t.TempDir()
	dbPath := newTestDB(t)
	source := writeSchedule(t, dir, scheduleCSV)
	chartPath := filepath.Join(dir, "chart.json")

	watchCtx, watchCancel := context.WithCancel(context.Background())
	watchDone := make(chan struct{})
	go func() {
		defer close(watchDone)
		_, _, _ = intfourd.RunWatch(watchCtx, config, dbPath, "tower", source, chartPath)
	}()
	t.Cleanup(func() {
		watchCancel()
		<-watchDone
	})

	readChart := func() (chartOutput, bool) {
		data, err := os.ReadFile(chartPath)
		if err != nil {
			return chartOutput{}, false
		}
		var c chartOutput
		if err := json.Unmarshal(data, &c); err != nil {
			return chartOutput{}, false
		}
		return c, true
	}

	// Initial refresh.
	require.Eventually(t, func() bool {
		c, ok := readChart()
		return ok && len(c.Bars) == 3
	}, 30*time.Second, 100*time.Millisecond)

	// Changing the source replaces the model tasks.
	writeSchedule(t, dir, `Task Name,Start,Finish
Excavation,2024-02-01,2024-02-03
`)
	require.Eventually(t, func() bool {
		c, ok := readChart()
		return ok && len(c.Bars) == 1 && c.Start == "2024-02-01"
	}, 30*time.Second, 100*time.Millisecond)
}
