package task

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// Queue submission errors
var (
	ErrQueueClosed = errors.New("task queue is closed")
	ErrQueueFull   = errors.New("task queue is full")
)

// TaskQueue is a bounded in-memory queue feeding the runner's workers.
// Enqueue never blocks: when the buffer is full the caller gets ErrQueueFull
// and decides whether to retry.
type TaskQueue struct {
	mu     sync.Mutex
	tasks  chan Task
	closed bool
	logger *slog.Logger
}

// NewTaskQueue creates a queue holding at most size tasks.
func NewTaskQueue(size int, logger *slog.Logger) *TaskQueue {
	return &TaskQueue{
		tasks:  make(chan Task, size),
		logger: logger,
	}
}

// Enqueue offers a task to the queue without blocking.
func (q *TaskQueue) Enqueue(task Task) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrQueueClosed
	}

	select {
	case q.tasks <- task:
	default:
		return fmt.Errorf("%w: capacity %d reached", ErrQueueFull, cap(q.tasks))
	}

	q.logger.Debug("task enqueued",
		"task_id", task.ID(),
		"task_type", task.Type(),
		"queue_len", len(q.tasks))
	return nil
}

// Close rejects further submissions and lets consumers drain what remains.
// Safe to call more than once.
func (q *TaskQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	q.closed = true
	close(q.tasks)
	q.logger.Info("task queue closed")
}

// GetChannel exposes the consumer side of the queue.
func (q *TaskQueue) GetChannel() <-chan Task {
	return q.tasks
}
