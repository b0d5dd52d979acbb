package task

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// TaskStatus tracks a task through its lifecycle.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusProcessing TaskStatus = "processing"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusFailed     TaskStatus = "failed"
)

// TaskTypeOverdueScan identifies the periodic overdue loan scan.
const TaskTypeOverdueScan = "overdue_scan"

// Task is a unit of background work. Implementations carry their own
// dependencies; the runner only persists, schedules, and executes them.
type Task interface {
	ID() uuid.UUID

	// Type identifies the kind of work, used to pick an executor when a
	// persisted task is loaded without its in-memory dependencies.
	Type() string

	// Payload is the task's data serialized for persistence.
	Payload() []byte

	Status() TaskStatus

	Execute(ctx context.Context) error
}

// TaskStore persists tasks so queued work survives a restart.
type TaskStore interface {
	// SaveTask writes the task with its current status.
	SaveTask(ctx context.Context, task Task) error

	// UpdateTaskStatus records a status transition, with an optional
	// message for failures and resets.
	UpdateTaskStatus(ctx context.Context, taskID uuid.UUID, status TaskStatus, errorMsg string) error

	// GetPendingTasks loads every task still waiting for a worker.
	GetPendingTasks(ctx context.Context) ([]Task, error)

	// GetProcessingTasks loads tasks in the processing state. A non-zero
	// olderThan restricts the result to tasks that entered the state at
	// least that long ago.
	GetProcessingTasks(ctx context.Context, olderThan time.Duration) ([]Task, error)

	// WithTx returns a TaskStore bound to the given transaction.
	WithTx(tx *sql.Tx) TaskStore
}
