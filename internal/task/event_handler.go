package task

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/openshelf/libra-api/internal/events"
)

// TaskFactoryEventHandler implements the events.EventHandler interface
// to handle task creation events and delegate them to the appropriate
// task factory. It lets services trigger an immediate overdue scan
// without importing this package.
type TaskFactoryEventHandler struct {
	factory *OverdueScanTaskFactory
	runner  *TaskRunner
	logger  *slog.Logger
}

// NewTaskFactoryEventHandler creates a new event handler that uses the given
// task factory to create tasks, and submits them to the provided task runner.
func NewTaskFactoryEventHandler(
	factory *OverdueScanTaskFactory,
	runner *TaskRunner,
	logger *slog.Logger,
) *TaskFactoryEventHandler {
	return &TaskFactoryEventHandler{
		factory: factory,
		runner:  runner,
		logger:  logger.With("component", "task_factory_event_handler"),
	}
}

// HandleEvent processes events by creating and submitting tasks.
func (h *TaskFactoryEventHandler) HandleEvent(
	ctx context.Context,
	event *events.TaskRequestEvent,
) error {
	if event.Type != TaskTypeOverdueScan {
		h.logger.Debug("ignoring event with unsupported type",
			"event_type", event.Type,
			"event_id", event.ID)
		return nil
	}

	var payload struct {
		ScheduledAt time.Time `json:"scheduled_at"`
	}
	if err := event.UnmarshalPayload(&payload); err != nil {
		h.logger.Error("failed to unmarshal payload", "error", err, "event_id", event.ID)
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	scheduledAt := payload.ScheduledAt
	if scheduledAt.IsZero() {
		scheduledAt = time.Now().UTC()
	}

	scan, err := h.factory.CreateTask(scheduledAt)
	if err != nil {
		h.logger.Error("failed to create task", "error", err, "event_id", event.ID)
		return fmt.Errorf("failed to create task: %w", err)
	}

	if err := h.runner.Submit(ctx, scan); err != nil {
		h.logger.Error("failed to submit task",
			"error", err,
			"task_id", scan.ID(),
			"event_id", event.ID)
		return fmt.Errorf("failed to submit task: %w", err)
	}

	h.logger.Info("task created and submitted successfully",
		"task_id", scan.ID(),
		"event_id", event.ID)
	return nil
}

// Ensure TaskFactoryEventHandler implements events.EventHandler
var _ events.EventHandler = (*TaskFactoryEventHandler)(nil)
