package task

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAssessor implements FineAssessor for testing.
type stubAssessor struct {
	fined   int
	err     error
	gotTime time.Time
}

func (s *stubAssessor) AssessOverdueFines(ctx context.Context, now time.Time) (int, error) {
	s.gotTime = now
	return s.fined, s.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewOverdueScanTask(t *testing.T) {
	t.Parallel()

	t.Run("valid task", func(t *testing.T) {
		scanTask, err := NewOverdueScanTask(time.Now().UTC(), &stubAssessor{}, discardLogger())
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, scanTask.ID())
		assert.Equal(t, TaskTypeOverdueScan, scanTask.Type())
		assert.Equal(t, TaskStatusPending, scanTask.Status())
	})

	t.Run("nil assessor", func(t *testing.T) {
		_, err := NewOverdueScanTask(time.Now().UTC(), nil, discardLogger())
		assert.ErrorIs(t, err, ErrNilFineAssessor)
	})

	t.Run("nil logger", func(t *testing.T) {
		_, err := NewOverdueScanTask(time.Now().UTC(), &stubAssessor{}, nil)
		assert.ErrorIs(t, err, ErrNilLogger)
	})
}

func TestOverdueScanTaskPayload(t *testing.T) {
	t.Parallel()

	scheduledAt := time.Date(2025, 6, 1, 3, 0, 0, 0, time.UTC)
	scanTask, err := NewOverdueScanTask(scheduledAt, &stubAssessor{}, discardLogger())
	require.NoError(t, err)

	var payload struct {
		ScheduledAt time.Time `json:"scheduled_at"`
	}
	require.NoError(t, json.Unmarshal(scanTask.Payload(), &payload))
	assert.True(t, scheduledAt.Equal(payload.ScheduledAt))
}

func TestOverdueScanTaskExecute(t *testing.T) {
	t.Parallel()

	t.Run("successful scan", func(t *testing.T) {
		assessor := &stubAssessor{fined: 3}
		scanTask, err := NewOverdueScanTask(time.Now().UTC(), assessor, discardLogger())
		require.NoError(t, err)

		err = scanTask.Execute(context.Background())
		require.NoError(t, err)
		assert.Equal(t, TaskStatusCompleted, scanTask.Status())
		assert.False(t, assessor.gotTime.IsZero(), "assessor should receive the scan time")
	})

	t.Run("assessor error", func(t *testing.T) {
		assessor := &stubAssessor{err: assert.AnError}
		scanTask, err := NewOverdueScanTask(time.Now().UTC(), assessor, discardLogger())
		require.NoError(t, err)

		err = scanTask.Execute(context.Background())
		assert.ErrorIs(t, err, assert.AnError)
		assert.Equal(t, TaskStatusFailed, scanTask.Status())
	})

	t.Run("cancelled context", func(t *testing.T) {
		assessor := &stubAssessor{}
		scanTask, err := NewOverdueScanTask(time.Now().UTC(), assessor, discardLogger())
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err = scanTask.Execute(ctx)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, TaskStatusFailed, scanTask.Status())
		assert.True(t, assessor.gotTime.IsZero(), "assessor should not run after cancellation")
	})
}
