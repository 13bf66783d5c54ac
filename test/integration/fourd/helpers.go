package fourd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/slok/fourd/test/integration/testutils"
)

// Config holds integration test configuration loaded from environment variables.
type Config struct {
	Binary string
}

func (c *Config) defaults() error {
	if c.Binary == "" {
		c.Binary = "fourd"
	}

	// go test changes the CWD to the test package directory, relative paths
	// would point to the wrong place.
	if !filepath.IsAbs(c.Binary) {
		return fmt.Errorf("FOURD_INTEGRATION_BINARY must be an absolute path, got %q", c.Binary)
	}
	if _, err := os.Stat(c.Binary); err != nil {
		return fmt.Errorf("fourd binary not found at %q: %w", c.Binary, err)
	}

	return nil
}

// NewConfig loads integration test configuration from environment variables.
// If the config is invalid or the activation env var is not set, the test is skipped.
func NewConfig(t *testing.T) Config {
	t.Helper()

	const (
		envActivation = "FOURD_INTEGRATION"
		envBinary     = "FOURD_INTEGRATION_BINARY"
	)

	if os.Getenv(envActivation) != "true" {
		t.Skipf("Skipping integration test: %s is not set to 'true'", envActivation)
	}

	c := Config{
		Binary: os.Getenv(envBinary),
	}

	if err := c.defaults(); err != nil {
		t.Skipf("Skipping due to invalid config: %s", err)
	}

	return c
}

// RunFourdCmd runs a fourd command with the given arguments and a specific db path.
// It suppresses logging output for cleaner test output.
func RunFourdCmd(ctx context.Context, config Config, dbPath, cmdArgs string) (stdout, stderr []byte, err error) {
	args := fmt.Sprintf("--db-path %s %s", dbPath, cmdArgs)
	return testutils.Fourd(config.Binary).Run(ctx, args)
}

// RunImport imports a schedule file into a model.
func RunImport(ctx context.Context, config Config, dbPath, modelID, path string) (stdout, stderr []byte, err error) {
	return RunFourdCmd(ctx, config, dbPath, fmt.Sprintf("import %s --model %s --output json", path, modelID))
}

// RunTaskCreate creates a task, the name can have spaces.
func RunTaskCreate(ctx context.Context, config Config, dbPath, modelID, name, start, end string) (stdout, stderr []byte, err error) {
	args := []string{"--db-path", dbPath, "task", "create", modelID, "--name", name, "--start", start, "--end", end}
	return testutils.Fourd(config.Binary).RunArgs(ctx, args...)
}

// RunTaskList lists the tasks of a model in JSON format.
func RunTaskList(ctx context.Context, config Config, dbPath, modelID string) (stdout, stderr []byte, err error) {
	return RunFourdCmd(ctx, config, dbPath, fmt.Sprintf("task list %s --output json", modelID))
}

// RunCriticalPath gets the critical path of a model in JSON format.
func RunCriticalPath(ctx context.Context, config Config, dbPath, modelID string) (stdout, stderr []byte, err error) {
	return RunFourdCmd(ctx, config, dbPath, fmt.Sprintf("critical-path %s --output json", modelID))
}

// RunGantt draws the Gantt chart of a model.
func RunGantt(ctx context.Context, config Config, dbPath, modelID, format, out string) (stdout, stderr []byte, err error) {
	return RunFourdCmd(ctx, config, dbPath, fmt.Sprintf("gantt %s --format %s --out %s", modelID, format, out))
}

// RunPlay plays a model schedule with a fast interval.
func RunPlay(ctx context.Context, config Config, dbPath, modelID string) (stdout, stderr []byte, err error) {
	return RunFourdCmd(ctx, config, dbPath, fmt.Sprintf("play %s --interval 1ms", modelID))
}

// RunScheduleRm removes the schedule of a model.
func RunScheduleRm(ctx context.Context, config Config, dbPath, modelID string) (stdout, stderr []byte, err error) {
	return RunFourdCmd(ctx, config, dbPath, fmt.Sprintf("schedule rm %s", modelID))
}

// RunWatch watches a schedule file (blocks until context is cancelled).
func RunWatch(ctx context.Context, config Config, dbPath, modelID, path, out string) (stdout, stderr []byte, err error) {
	return RunFourdCmd(ctx, config, dbPath, fmt.Sprintf("watch %s --model %s --chart json --out %s --debounce 50ms", path, modelID, out))
}
