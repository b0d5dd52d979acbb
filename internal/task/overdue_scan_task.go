package task

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Common errors
var (
	ErrNilFineAssessor = errors.New("fine assessor cannot be nil")
	ErrNilLogger       = errors.New("logger cannot be nil")
)

// FineAssessor defines the interface for assessing fines on overdue loans.
// The loan service implements it.
type FineAssessor interface {
	// AssessOverdueFines charges the configured fine on every active loan
	// whose due date is before now, and returns the number of loans fined.
	AssessOverdueFines(ctx context.Context, now time.Time) (int, error)
}

// overdueScanPayload represents the serialized data stored in the task
type overdueScanPayload struct {
	ScheduledAt time.Time `json:"scheduled_at"`
}

// OverdueScanTask implements the Task interface for scanning overdue loans
// and assessing fines on them.
type OverdueScanTask struct {
	id          uuid.UUID
	scheduledAt time.Time
	assessor    FineAssessor
	logger      *slog.Logger
	status      TaskStatus
}

// NewOverdueScanTask creates a new overdue scan task scheduled for the
// given time.
func NewOverdueScanTask(
	scheduledAt time.Time,
	assessor FineAssessor,
	logger *slog.Logger,
) (*OverdueScanTask, error) {
	if assessor == nil {
		return nil, ErrNilFineAssessor
	}
	if logger == nil {
		return nil, ErrNilLogger
	}

	return &OverdueScanTask{
		id:          uuid.New(),
		scheduledAt: scheduledAt,
		assessor:    assessor,
		logger:      logger.With("task_type", TaskTypeOverdueScan),
		status:      TaskStatusPending,
	}, nil
}

// ID returns the task's unique identifier
func (t *OverdueScanTask) ID() uuid.UUID {
	return t.id
}

// Type returns the task type identifier
func (t *OverdueScanTask) Type() string {
	return TaskTypeOverdueScan
}

// Payload returns the task data as a byte slice
func (t *OverdueScanTask) Payload() []byte {
	payload := overdueScanPayload{
		ScheduledAt: t.scheduledAt,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		t.logger.Error("failed to marshal task payload", "error", err)
		return []byte{}
	}

	return data
}

// Status returns the current task status
func (t *OverdueScanTask) Status() TaskStatus {
	return t.status
}

// Execute runs the overdue scan. The scan is idempotent: loans that already
// carry a fine are skipped by the assessor, so re-running a recovered task
// never double-charges a patron.
func (t *OverdueScanTask) Execute(ctx context.Context) error {
	t.status = TaskStatusProcessing
	t.logger.Info("starting overdue loan scan", "scheduled_at", t.scheduledAt)

	if err := ctx.Err(); err != nil {
		t.status = TaskStatusFailed
		return fmt.Errorf("task cancelled by context: %w", err)
	}

	fined, err := t.assessor.AssessOverdueFines(ctx, time.Now().UTC())
	if err != nil {
		t.status = TaskStatusFailed
		t.logger.Error("overdue scan failed", "error", err)
		return fmt.Errorf("failed to assess overdue fines: %w", err)
	}

	t.status = TaskStatusCompleted
	t.logger.Info("overdue loan scan completed", "loans_fined", fined)
	return nil
}
