package conventions

import "path/filepath"

const (
	// DefaultDataDir is the default fourd data directory name (relative to home).
	DefaultDataDir = ".fourd"
	// DBFile is the SQLite database filename.
	DBFile = "fourd.db"
	// SchedulesDir is the subdirectory for the file storage schedule records.
	SchedulesDir = "schedules"
)

// DBPath returns the SQLite database path for a data directory.
func DBPath(dataDir string) string {
	return filepath.Join(dataDir, DBFile)
}

// SchedulesPath returns the file storage directory for a data directory.
func SchedulesPath(dataDir string) string {
	return filepath.Join(dataDir, SchedulesDir)
}
