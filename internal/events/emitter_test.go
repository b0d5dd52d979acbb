package events

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingHandler struct {
	events []*TaskRequestEvent
	err    error
}

func (h *recordingHandler) HandleEvent(ctx context.Context, event *TaskRequestEvent) error {
	h.events = append(h.events, event)
	return h.err
}

func testEmitter() *InMemoryEventEmitter {
	return NewInMemoryEventEmitter(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestNewTaskRequestEvent(t *testing.T) {
	t.Parallel()

	event, err := NewTaskRequestEvent("overdue_scan", map[string]string{"key": "value"})
	require.NoError(t, err)
	assert.Equal(t, "overdue_scan", event.Type)
	assert.False(t, event.CreatedAt.IsZero())

	var payload map[string]string
	require.NoError(t, event.UnmarshalPayload(&payload))
	assert.Equal(t, "value", payload["key"])
}

func TestEmitEvent(t *testing.T) {
	t.Parallel()

	emitter := testEmitter()
	first := &recordingHandler{}
	second := &recordingHandler{}
	emitter.RegisterHandler(first)
	emitter.RegisterHandler(second)

	event, err := NewTaskRequestEvent("overdue_scan", nil)
	require.NoError(t, err)

	require.NoError(t, emitter.EmitEvent(context.Background(), event))
	assert.Len(t, first.events, 1)
	assert.Len(t, second.events, 1)
}

func TestEmitEventNoHandlers(t *testing.T) {
	t.Parallel()

	event, err := NewTaskRequestEvent("overdue_scan", nil)
	require.NoError(t, err)

	assert.NoError(t, testEmitter().EmitEvent(context.Background(), event))
}

func TestEmitEventHandlerError(t *testing.T) {
	t.Parallel()

	emitter := testEmitter()
	failing := &recordingHandler{err: assert.AnError}
	after := &recordingHandler{}
	emitter.RegisterHandler(failing)
	emitter.RegisterHandler(after)

	event, err := NewTaskRequestEvent("overdue_scan", nil)
	require.NoError(t, err)

	err = emitter.EmitEvent(context.Background(), event)
	assert.ErrorIs(t, err, assert.AnError)
	assert.Len(t, after.events, 1, "later handlers still receive the event")
}
