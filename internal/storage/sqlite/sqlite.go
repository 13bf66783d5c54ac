package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/slok/fourd/internal/log"
	"github.com/slok/fourd/internal/model"
	"github.com/slok/fourd/internal/storage/sqlite/migrations"
)

// RepositoryConfig is the configuration for the SQLite repository.
type RepositoryConfig struct {
	DBPath string
	Logger log.Logger
}

func (c *RepositoryConfig) defaults() error {
	if c.DBPath == "" {
		return fmt.Errorf("db path is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.SQLite"})
	return nil
}

// Repository is a SQLite implementation of storage.ScheduleRepository.
type Repository struct {
	db     *sql.DB
	logger log.Logger
}

// NewRepository creates a new SQLite repository.
func NewRepository(ctx context.Context, cfg RepositoryConfig) (*Repository, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	dir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("could not create db directory: %w", err)
	}

	dsn := fmt.Sprintf("%s?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)", cfg.DBPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("could not open database: %w", err)
	}

	migrator, err := migrations.NewMigrator(db, cfg.Logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("could not create migrator: %w", err)
	}
	if err := migrator.Up(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not run migrations: %w", err)
	}

	cfg.Logger.Debugf("SQLite repository initialized at %s", cfg.DBPath)

	return &Repository{db: db, logger: cfg.Logger}, nil
}

// Close closes the database connection.
func (r *Repository) Close() error { return r.db.Close() }

// SaveSchedule replaces the whole schedule of a model in a single transaction.
func (r *Repository) SaveSchedule(ctx context.Context, s model.Schedule) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("invalid schedule: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }() // Rollback is safe to call after Commit

	if err := deleteTasks(ctx, tx, s.ModelID); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO schedules (model_id, next_task_id, revision, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(model_id) DO UPDATE SET
			next_task_id = excluded.next_task_id,
			revision = excluded.revision,
			updated_at = excluded.updated_at
	`, s.ModelID, s.NextTaskID, s.Revision, s.UpdatedAt.Unix())
	if err != nil {
		return fmt.Errorf("could not upsert schedule: %w", err)
	}

	taskStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO tasks (model_id, id, position, external_id, name, type, start_date, end_date, percent_complete)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("could not prepare statement: %w", err)
	}
	defer taskStmt.Close()

	depStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO task_dependencies (model_id, task_id, position, depends_on_id) VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("could not prepare statement: %w", err)
	}
	defer depStmt.Close()

	elemStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO task_elements (model_id, task_id, position, element_id) VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("could not prepare statement: %w", err)
	}
	defer elemStmt.Close()

	for pos, t := range s.Tasks {
		var percent *int64
		if t.PercentComplete != nil {
			p := int64(*t.PercentComplete)
			percent = &p
		}

		_, err := taskStmt.ExecContext(ctx, s.ModelID, t.ID, pos, t.ExternalID, t.Name, string(t.Type),
			model.FormatDate(t.Start), model.FormatDate(t.End), percent)
		if err != nil {
			return fmt.Errorf("could not insert task %d: %w", t.ID, err)
		}

		for i, dep := range t.Dependencies {
			if _, err := depStmt.ExecContext(ctx, s.ModelID, t.ID, i, dep); err != nil {
				return fmt.Errorf("could not insert task %d dependency: %w", t.ID, err)
			}
		}
		for i, e := range t.Elements {
			if _, err := elemStmt.ExecContext(ctx, s.ModelID, t.ID, i, int64(e)); err != nil {
				return fmt.Errorf("could not insert task %d element: %w", t.ID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}

	r.logger.Debugf("Saved schedule %s with %d tasks (revision %s)", s.ModelID, len(s.Tasks), s.Revision)
	return nil
}

// GetSchedule retrieves the schedule of a model.
func (r *Repository) GetSchedule(ctx context.Context, modelID string) (*model.Schedule, error) {
	s := model.Schedule{ModelID: modelID, Tasks: []model.Task{}}
	var updatedAt int64

	err := r.db.QueryRowContext(ctx, `
		SELECT next_task_id, revision, updated_at FROM schedules WHERE model_id = ?
	`, modelID).Scan(&s.NextTaskID, &s.Revision, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("schedule %s: %w", modelID, model.ErrNotFound)
		}
		return nil, fmt.Errorf("could not query schedule: %w", err)
	}
	s.UpdatedAt = timeFromUnix(updatedAt)

	tasks, err := r.queryTasks(ctx, modelID)
	if err != nil {
		return nil, err
	}

	index := make(map[int]int, len(tasks))
	for i, t := range tasks {
		index[t.ID] = i
	}

	err = r.queryRelation(ctx, `
		SELECT task_id, depends_on_id FROM task_dependencies WHERE model_id = ? ORDER BY task_id, position
	`, modelID, func(taskID int, v int64) {
		if i, ok := index[taskID]; ok {
			tasks[i].Dependencies = append(tasks[i].Dependencies, int(v))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("could not query dependencies: %w", err)
	}

	err = r.queryRelation(ctx, `
		SELECT task_id, element_id FROM task_elements WHERE model_id = ? ORDER BY task_id, position
	`, modelID, func(taskID int, v int64) {
		if i, ok := index[taskID]; ok {
			tasks[i].Elements = append(tasks[i].Elements, model.ElementID(v))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("could not query elements: %w", err)
	}

	s.Tasks = tasks
	return &s, nil
}

func (r *Repository) queryTasks(ctx context.Context, modelID string) ([]model.Task, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, external_id, name, type, start_date, end_date, percent_complete
		FROM tasks
		WHERE model_id = ?
		ORDER BY position ASC
	`, modelID)
	if err != nil {
		return nil, fmt.Errorf("could not query tasks: %w", err)
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		var t model.Task
		var taskType, start, end string
		var percent sql.NullInt64
		if err := rows.Scan(&t.ID, &t.ExternalID, &t.Name, &taskType, &start, &end, &percent); err != nil {
			return nil, fmt.Errorf("could not scan row: %w", err)
		}

		t.Type = model.TaskType(taskType)
		if t.Start, err = time.Parse(model.DateLayout, start); err != nil {
			return nil, fmt.Errorf("task %d has an invalid start: %w", t.ID, err)
		}
		if t.End, err = time.Parse(model.DateLayout, end); err != nil {
			return nil, fmt.Errorf("task %d has an invalid end: %w", t.ID, err)
		}
		if percent.Valid {
			p := int(percent.Int64)
			t.PercentComplete = &p
		}
		t.Elements = []model.ElementID{}
		t.Recompute()

		tasks = append(tasks, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return tasks, nil
}

func (r *Repository) queryRelation(ctx context.Context, query, modelID string, add func(taskID int, v int64)) error {
	rows, err := r.db.QueryContext(ctx, query, modelID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var taskID int
		var v int64
		if err := rows.Scan(&taskID, &v); err != nil {
			return err
		}
		add(taskID, v)
	}

	return rows.Err()
}

// ListSchedules returns the summaries of all stored schedules sorted by model ID.
func (r *Repository) ListSchedules(ctx context.Context) ([]model.ScheduleSummary, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT s.model_id, COUNT(t.id), s.revision, s.updated_at
		FROM schedules s
		LEFT JOIN tasks t ON t.model_id = s.model_id
		GROUP BY s.model_id
		ORDER BY s.model_id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("could not query schedules: %w", err)
	}
	defer rows.Close()

	summaries := []model.ScheduleSummary{}
	for rows.Next() {
		var s model.ScheduleSummary
		var updatedAt int64
		if err := rows.Scan(&s.ModelID, &s.TaskCount, &s.Revision, &updatedAt); err != nil {
			return nil, fmt.Errorf("could not scan row: %w", err)
		}
		s.UpdatedAt = timeFromUnix(updatedAt)
		summaries = append(summaries, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return summaries, nil
}

// DeleteSchedule deletes the schedule of a model with all its tasks.
func (r *Repository) DeleteSchedule(ctx context.Context, modelID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := deleteTasks(ctx, tx, modelID); err != nil {
		return err
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM schedules WHERE model_id = ?`, modelID)
	if err != nil {
		return fmt.Errorf("could not delete schedule: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("schedule %s: %w", modelID, model.ErrNotFound)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}

	r.logger.Debugf("Deleted schedule from repository: %s", modelID)
	return nil
}

func deleteTasks(ctx context.Context, tx *sql.Tx, modelID string) error {
	for _, table := range []string{"task_elements", "task_dependencies", "tasks"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE model_id = ?", modelID); err != nil {
			return fmt.Errorf("could not delete %s: %w", table, err)
		}
	}
	return nil
}

func timeFromUnix(unix int64) time.Time { return time.Unix(unix, 0).UTC() }
