package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/openshelf/libra-api/internal/platform/logger"
	"github.com/openshelf/libra-api/internal/store"
	"github.com/openshelf/libra-api/internal/task"
)

// TaskExecutor rebuilds the execution logic for a task recovered from the
// database, given its serialized payload.
type TaskExecutor func(ctx context.Context, payload []byte) error

// PostgresTaskStore persists background tasks and rebinds their execution
// functions on recovery through a per-type executor registry.
type PostgresTaskStore struct {
	db        store.DBTX
	executors map[string]TaskExecutor
}

var _ task.TaskStore = (*PostgresTaskStore)(nil)

// NewPostgresTaskStore creates a task store with an empty executor registry.
func NewPostgresTaskStore(db store.DBTX) *PostgresTaskStore {
	return &PostgresTaskStore{
		db:        db,
		executors: make(map[string]TaskExecutor),
	}
}

// RegisterExecutor binds a task type to the function that runs recovered
// tasks of that type. Recovered tasks of unregistered types fail on
// execution.
func (s *PostgresTaskStore) RegisterExecutor(taskType string, executor TaskExecutor) {
	s.executors[taskType] = executor
}

// SaveTask inserts a new task row.
func (s *PostgresTaskStore) SaveTask(ctx context.Context, t task.Task) error {
	const query = `
		INSERT INTO tasks (id, type, payload, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	now := time.Now().UTC()
	if _, err := s.db.ExecContext(ctx, query,
		t.ID(), t.Type(), t.Payload(), t.Status(), now, now,
	); err != nil {
		logger.FromContext(ctx).Error("failed to save task",
			"task_id", t.ID(),
			"task_type", t.Type(),
			"error", err)
		return fmt.Errorf("failed to save task to database: %w", err)
	}
	return nil
}

// UpdateTaskStatus sets a task's status and error message. A missing task
// is logged and treated as a no-op rather than an error, since the runner
// may race with manual cleanup.
func (s *PostgresTaskStore) UpdateTaskStatus(
	ctx context.Context,
	taskID uuid.UUID,
	status task.TaskStatus,
	errorMsg string,
) error {
	const query = `
		UPDATE tasks
		SET status = $1, error_message = $2, updated_at = $3
		WHERE id = $4
	`

	result, err := s.db.ExecContext(ctx, query, status, errorMsg, time.Now().UTC(), taskID)
	if err != nil {
		logger.FromContext(ctx).Error("failed to update task status",
			"task_id", taskID,
			"status", status,
			"error", err)
		return fmt.Errorf("failed to update task status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		logger.FromContext(ctx).Warn("no task found with ID to update status", "task_id", taskID)
	}
	return nil
}

// GetPendingTasks returns every task still waiting to run.
func (s *PostgresTaskStore) GetPendingTasks(ctx context.Context) ([]task.Task, error) {
	return s.getTasksByStatus(ctx, task.TaskStatusPending, 0)
}

// GetProcessingTasks returns tasks stuck in the processing state longer
// than olderThan.
func (s *PostgresTaskStore) GetProcessingTasks(ctx context.Context, olderThan time.Duration) ([]task.Task, error) {
	return s.getTasksByStatus(ctx, task.TaskStatusProcessing, olderThan)
}

// WithTx returns a store bound to tx. The executor registry is shared
// with the parent store.
func (s *PostgresTaskStore) WithTx(tx *sql.Tx) task.TaskStore {
	return &PostgresTaskStore{db: tx, executors: s.executors}
}

func (s *PostgresTaskStore) getTasksByStatus(
	ctx context.Context,
	status task.TaskStatus,
	olderThan time.Duration,
) ([]task.Task, error) {
	query := `
		SELECT id, type, payload, status
		FROM tasks
		WHERE status = $1
	`
	args := []any{status}
	if olderThan > 0 {
		query += ` AND updated_at < $2`
		args = append(args, time.Now().UTC().Add(-olderThan))
	}
	query += ` ORDER BY created_at ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Error("failed to query tasks by status",
			"status", status,
			"error", err)
		return nil, fmt.Errorf("failed to query tasks by status: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var tasks []task.Task
	for rows.Next() {
		t := &databaseTask{}
		if err := rows.Scan(&t.id, &t.taskType, &t.payload, &t.status); err != nil {
			return nil, fmt.Errorf("failed to scan task row: %w", err)
		}
		if executor, ok := s.executors[t.taskType]; ok {
			payload := t.payload
			t.executeFn = func(ctx context.Context) error {
				return executor(ctx, payload)
			}
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating task rows: %w", err)
	}
	return tasks, nil
}

// databaseTask is a task.Task rehydrated from a database row. Recovery
// binds executeFn via the store's executor registry; types without a
// registered executor cannot run.
type databaseTask struct {
	id        uuid.UUID
	taskType  string
	payload   []byte
	status    task.TaskStatus
	executeFn func(ctx context.Context) error
}

func (t *databaseTask) ID() uuid.UUID           { return t.id }
func (t *databaseTask) Type() string            { return t.taskType }
func (t *databaseTask) Payload() []byte         { return t.payload }
func (t *databaseTask) Status() task.TaskStatus { return t.status }

func (t *databaseTask) Execute(ctx context.Context) error {
	if t.executeFn == nil {
		return errors.New("no execution function registered for recovered task")
	}
	return t.executeFn(ctx)
}
