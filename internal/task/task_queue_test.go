package task

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTask implements the Task interface for queue tests.
type fakeTask struct {
	id uuid.UUID
}

func newFakeTask() *fakeTask {
	return &fakeTask{id: uuid.New()}
}

func (t *fakeTask) ID() uuid.UUID                  { return t.id }
func (t *fakeTask) Type() string                   { return "fake" }
func (t *fakeTask) Payload() []byte                { return []byte("{}") }
func (t *fakeTask) Status() TaskStatus             { return TaskStatusPending }
func (t *fakeTask) Execute(ctx context.Context) error { return nil }

func TestTaskQueueEnqueueAndConsume(t *testing.T) {
	t.Parallel()

	queue := NewTaskQueue(2, discardLogger())

	first := newFakeTask()
	second := newFakeTask()
	require.NoError(t, queue.Enqueue(first))
	require.NoError(t, queue.Enqueue(second))

	got := <-queue.GetChannel()
	assert.Equal(t, first.ID(), got.ID())
	got = <-queue.GetChannel()
	assert.Equal(t, second.ID(), got.ID())
}

func TestTaskQueueFull(t *testing.T) {
	t.Parallel()

	queue := NewTaskQueue(1, discardLogger())

	require.NoError(t, queue.Enqueue(newFakeTask()))
	err := queue.Enqueue(newFakeTask())
	assert.ErrorIs(t, err, ErrQueueFull)
}

func TestTaskQueueClosed(t *testing.T) {
	t.Parallel()

	queue := NewTaskQueue(1, discardLogger())
	queue.Close()

	err := queue.Enqueue(newFakeTask())
	assert.ErrorIs(t, err, ErrQueueClosed)

	// Closing twice must not panic
	queue.Close()

	_, open := <-queue.GetChannel()
	assert.False(t, open, "channel should be closed")
}
