package task

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// TaskRunnerConfig tunes the background worker pool.
type TaskRunnerConfig struct {
	// WorkerCount is the number of goroutines draining the queue.
	WorkerCount int

	// QueueSize bounds the in-memory task queue.
	QueueSize int

	// StuckTaskAge is how long a task may sit in the processing state
	// before the monitor resets it to pending.
	StuckTaskAge time.Duration

	// StuckTaskCheckInterval is how often the monitor looks for stuck
	// tasks. Zero means every 5 minutes.
	StuckTaskCheckInterval time.Duration
}

// DefaultTaskRunnerConfig returns the settings used when nothing is
// configured.
func DefaultTaskRunnerConfig() TaskRunnerConfig {
	return TaskRunnerConfig{
		WorkerCount:            2,
		QueueSize:              100,
		StuckTaskAge:           30 * time.Minute,
		StuckTaskCheckInterval: 5 * time.Minute,
	}
}

// TaskRunner persists submitted tasks and executes them on a fixed worker
// pool. Tasks interrupted by a crash are requeued on the next Start.
type TaskRunner struct {
	store      TaskStore
	queue      *TaskQueue
	config     TaskRunnerConfig
	logger     *slog.Logger
	ctx        context.Context
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
	errHandler func(task Task, err error)
}

// NewTaskRunner creates a runner backed by the given store.
func NewTaskRunner(store TaskStore, config TaskRunnerConfig, logger *slog.Logger) *TaskRunner {
	if config.StuckTaskCheckInterval == 0 {
		config.StuckTaskCheckInterval = 5 * time.Minute
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &TaskRunner{
		store:      store,
		queue:      NewTaskQueue(config.QueueSize, logger),
		config:     config,
		logger:     logger,
		ctx:        ctx,
		cancelFunc: cancel,
		errHandler: func(task Task, err error) {
			logger.Error("task execution failed",
				"task_id", task.ID(),
				"task_type", task.Type(),
				"error", err)
		},
	}
}

// SetErrorHandler replaces the default failure callback.
func (r *TaskRunner) SetErrorHandler(handler func(task Task, err error)) {
	r.errHandler = handler
}

// Submit persists the task and hands it to the worker pool. Persisting
// first means a crash between the two steps leaves a pending row that the
// next Start requeues.
func (r *TaskRunner) Submit(ctx context.Context, task Task) error {
	if err := r.store.SaveTask(ctx, task); err != nil {
		return fmt.Errorf("failed to save task: %w", err)
	}

	if err := r.queue.Enqueue(task); err != nil {
		return fmt.Errorf("failed to enqueue task: %w", err)
	}
	return nil
}

// Start requeues unfinished tasks and launches the workers and the stuck
// task monitor.
func (r *TaskRunner) Start() error {
	if err := r.Recover(); err != nil {
		return fmt.Errorf("failed to recover tasks: %w", err)
	}

	for i := 0; i < r.config.WorkerCount; i++ {
		r.wg.Add(1)
		go r.worker(i)
	}

	r.wg.Add(1)
	go r.stuckTaskMonitor()

	return nil
}

// Stop shuts the pool down. Queued tasks are drained before the workers
// exit; the next Start picks up anything persisted but not yet executed.
func (r *TaskRunner) Stop() {
	r.queue.Close()
	r.cancelFunc()
	r.wg.Wait()
}

// Recover requeues tasks left over from a previous process: pending rows
// that never reached a worker, and processing rows interrupted mid-run.
func (r *TaskRunner) Recover() error {
	ctx := context.Background()

	pending, err := r.store.GetPendingTasks(ctx)
	if err != nil {
		return fmt.Errorf("failed to get pending tasks: %w", err)
	}

	interrupted, err := r.store.GetProcessingTasks(ctx, 0)
	if err != nil {
		return fmt.Errorf("failed to get processing tasks: %w", err)
	}

	r.logger.Info("recovering unfinished tasks",
		"pending_count", len(pending),
		"processing_count", len(interrupted))

	for _, t := range pending {
		r.requeue(t)
	}

	for _, t := range interrupted {
		if err := r.store.UpdateTaskStatus(ctx, t.ID(), TaskStatusPending, "Reset after recovery"); err != nil {
			r.logger.Error("failed to reset interrupted task",
				"task_id", t.ID(),
				"task_type", t.Type(),
				"error", err)
			continue
		}
		r.requeue(t)
	}

	return nil
}

func (r *TaskRunner) requeue(t Task) {
	if err := r.queue.Enqueue(t); err != nil {
		// The row stays pending, so a later recovery gets another chance.
		r.logger.Error("failed to requeue task",
			"task_id", t.ID(),
			"task_type", t.Type(),
			"error", err)
	}
}

func (r *TaskRunner) worker(id int) {
	defer r.wg.Done()

	r.logger.Debug("worker started", "worker_id", id)

	for t := range r.queue.GetChannel() {
		r.processTask(t, id)
	}

	r.logger.Debug("worker stopped", "worker_id", id)
}

func (r *TaskRunner) processTask(t Task, workerID int) {
	ctx := context.Background()
	logger := r.logger.With(
		"task_id", t.ID(),
		"task_type", t.Type(),
		"worker_id", workerID,
	)

	if err := r.store.UpdateTaskStatus(ctx, t.ID(), TaskStatusProcessing, ""); err != nil {
		logger.Error("failed to mark task processing", "error", err)
		return
	}

	logger.Info("processing task")

	if err := t.Execute(ctx); err != nil {
		logger.Error("task execution failed", "error", err)
		if updateErr := r.store.UpdateTaskStatus(ctx, t.ID(), TaskStatusFailed, err.Error()); updateErr != nil {
			logger.Error("failed to mark task failed", "error", updateErr)
		}
		r.errHandler(t, err)
		return
	}

	logger.Info("task completed")
	if err := r.store.UpdateTaskStatus(ctx, t.ID(), TaskStatusCompleted, ""); err != nil {
		logger.Error("failed to mark task completed", "error", err)
	}
}

// stuckTaskMonitor resets tasks that have sat in the processing state
// longer than StuckTaskAge. A worker killed mid-task leaves such a row;
// without the reset it would never run again.
func (r *TaskRunner) stuckTaskMonitor() {
	defer r.wg.Done()

	ticker := time.NewTicker(r.config.StuckTaskCheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.ctx.Done():
			return
		case <-ticker.C:
			r.resetStuckTasks()
		}
	}
}

func (r *TaskRunner) resetStuckTasks() {
	ctx := context.Background()

	stuck, err := r.store.GetProcessingTasks(ctx, r.config.StuckTaskAge)
	if err != nil {
		r.logger.Error("failed to check for stuck tasks", "error", err)
		return
	}
	if len(stuck) == 0 {
		return
	}

	r.logger.Info("found stuck tasks", "count", len(stuck))

	for _, t := range stuck {
		if err := r.store.UpdateTaskStatus(ctx, t.ID(), TaskStatusPending,
			"Reset after being stuck in processing state"); err != nil {
			r.logger.Error("failed to reset stuck task",
				"task_id", t.ID(),
				"task_type", t.Type(),
				"error", err)
			continue
		}
		r.requeue(t)
	}
}
